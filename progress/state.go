// Package progress records which videos have been published per channel
// profile and decides where the next run resumes.
package progress

import (
	"time"
)

// ChannelState is the progress record of one channel profile.
// Keys are work item keys: the decimal id for base content ("12") and the id
// plus the variant marker for variants ("12c"), so a base video and its
// variant are tracked separately. Records keyed by bare ids for variant files
// do not match and those variants are published again.
type ChannelState struct {
	LastPublished *string `json:"last_uploaded_challenge_id"`
	// Published maps a work item key ("12", "12c") to the platform video id.
	Published map[string]string `json:"uploaded"`
	LastRun   time.Time         `json:"last_run,omitzero"`
}

// State is the whole progress document keyed by profile name.
type State map[string]*ChannelState

// NewState returns an empty progress document.
func NewState() State {
	return State{}
}

// Channel returns the record for a profile, creating an empty one when absent.
func (s State) Channel(profile string) *ChannelState {
	cs, ok := s[profile]
	if !ok || cs == nil {
		cs = &ChannelState{}
		s[profile] = cs
	}
	if cs.Published == nil {
		cs.Published = map[string]string{}
	}
	return cs
}

// IsDone reports whether key already has a recorded publish.
func (c *ChannelState) IsDone(key string) bool {
	_, ok := c.Published[key]
	return ok
}

// VideoID returns the recorded platform id for key.
func (c *ChannelState) VideoID(key string) (string, bool) {
	id, ok := c.Published[key]
	return id, ok
}

// RecordSuccess stores the platform id for key and moves the resume marker to it.
func (c *ChannelState) RecordSuccess(key, videoID string) {
	if c.Published == nil {
		c.Published = map[string]string{}
	}
	c.Published[key] = videoID
	last := key
	c.LastPublished = &last
}

// Count is the number of successful publishes ever made for the profile.
func (c *ChannelState) Count() int {
	return len(c.Published)
}

// Touch stamps the record with the time of the current save.
func (c *ChannelState) Touch(now time.Time) {
	c.LastRun = now.UTC()
}

// Clone returns a deep copy, safe to hand to readers while a run mutates the original.
func (c *ChannelState) Clone() *ChannelState {
	out := &ChannelState{
		Published: make(map[string]string, len(c.Published)),
		LastRun:   c.LastRun,
	}
	for k, v := range c.Published {
		out.Published[k] = v
	}
	if c.LastPublished != nil {
		last := *c.LastPublished
		out.LastPublished = &last
	}
	return out
}
