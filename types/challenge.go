package types

import (
	"strconv"
	"time"
)

// VariantMarker is the trailing filename character that flags a variant rendering.
const VariantMarker = "c"

// Challenge represents one breathing challenge definition from the catalog
type Challenge struct {
	ID            int      `json:"id"`
	MainTitle     string   `json:"mainTitle"`
	Cycle         []string `json:"cycle,omitempty"`
	Level         []string `json:"level,omitempty"`
	HookText      string   `json:"hookText,omitempty"`
	SuccessText   string   `json:"successText,omitempty"`
	ChallengeText string   `json:"challengeText,omitempty"`
	InitialScript string   `json:"initialScript,omitempty"`
}

// Override holds hand-written SEO copy that replaces synthesized metadata
type Override struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// WorkItem is a single video discovered for publishing
type WorkItem struct {
	Path    string `json:"path"`
	ID      int    `json:"id"`
	Variant bool   `json:"variant"`
}

// Key returns the progress key for the item: "12" for base content, "12c" for a variant.
func (w WorkItem) Key() string {
	return ItemKey(w.ID, w.Variant)
}

// ItemKey builds the canonical progress key for an id and variant flag.
func ItemKey(id int, variant bool) string {
	key := strconv.Itoa(id)
	if variant {
		key += VariantMarker
	}
	return key
}

// VideoMetadata is what gets sent to the hosting platform for one upload
type VideoMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	CategoryID  string   `json:"category_id"`
}

// ReleaseScheduled is emitted after a video has been uploaded and scheduled
type ReleaseScheduled struct {
	EventID   string    `json:"event_id"`
	RunID     string    `json:"run_id"`
	Profile   string    `json:"profile"`
	Key       string    `json:"key"`
	VideoID   string    `json:"video_id"`
	Title     string    `json:"title"`
	PublishAt time.Time `json:"publish_at"`
	DryRun    bool      `json:"dry_run"`
}
