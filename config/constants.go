package config

import "time"

// Video File Constants
const (
	// DefaultVideoPrefix is the filename prefix of rendered challenge videos
	DefaultVideoPrefix = "challenge_final_"

	// DefaultVideoSuffix is the filename suffix of rendered challenge videos
	DefaultVideoSuffix = ".mp4"

	// DefaultVideosDir is where rendered videos are looked up when none is configured
	DefaultVideosDir = "videos"

	// DefaultChallengesFile holds the catalog groups when none is configured
	DefaultChallengesFile = "challenges.json"
)

// Title and Metadata Constants
const (
	// MaxTitleLength is the character budget for synthesized titles
	MaxTitleLength = 90

	// TitleSuffix is appended to every synthesized title
	TitleSuffix = " | Breathing Technique & Meditation"

	// DefaultTitle is used when a challenge has no main title
	DefaultTitle = "Breathing Exercise"

	// HashtagLine always closes a synthesized description
	HashtagLine = "#breathing #meditation #calm #focus #breathwork"
)

// YouTube Constants
const (
	// YouTubeCategoryID for Education
	YouTubeCategoryID = "27"

	// YouTubePrivacyStatus is used for every upload; visibility flips at publishAt
	YouTubePrivacyStatus = "private"

	// YouTubeDefaultLanguage is set on the video snippet
	YouTubeDefaultLanguage = "en"

	// PlaylistPageSize is the page size used when searching playlists by name
	PlaylistPageSize = 50

	// DefaultClientSecretsFile holds the OAuth client for the installed-app flow
	DefaultClientSecretsFile = "client_secret.json"

	// DefaultTokenFile caches the authorized user token between runs
	DefaultTokenFile = "youtube_token.json"
)

// Run Constants
const (
	// DefaultMaxUploadsPerRun bounds API quota usage per invocation
	DefaultMaxUploadsPerRun = 30

	// DefaultStateFile is the progress record on local disk
	DefaultStateFile = "upload_state.json"

	// DefaultActiveChannel is the profile used when none is selected
	DefaultActiveChannel = "default"

	// DryRunVideoPrefix prefixes the placeholder video id recorded in dry-run mode
	DryRunVideoPrefix = "dry_"

	// DateLayout is the accepted format for schedule start dates
	DateLayout = "2006-01-02"

	// TimeLayout is the accepted format for fixed publish times
	TimeLayout = "15:04"
)

// Server Constants
const (
	// DefaultServerPort is the status API port
	DefaultServerPort = "8080"

	// MaxStatusLogs is the size of the in-memory log ring served by the status API
	MaxStatusLogs = 50

	// DefaultFormLogFile receives logs while the terminal form owns the screen
	DefaultFormLogFile = "breathbot-form.log"

	// DefaultEventsGroup is the consumer group of the events command
	DefaultEventsGroup = "breathbot-events"

	// ShutdownTimeout bounds graceful server shutdown
	ShutdownTimeout = 10 * time.Second
)

// Backend Constants
const (
	// StoreTimeout bounds a single remote progress read or write
	StoreTimeout = 15 * time.Second

	// DefaultRedisKey holds the whole progress document as one JSON string
	DefaultRedisKey = "breathbot:progress"

	// DefaultKafkaTopic receives release events
	DefaultKafkaTopic = "breathbot-releases"

	// DefaultRabbitExchange receives release events
	DefaultRabbitExchange = "breathbot"
)
