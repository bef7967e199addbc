// Package schedule computes the publish instant for each newly uploaded video:
// one release per calendar day starting at the profile's start date, at a
// random time inside the profile's daily hour window.
package schedule

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// Profile is the scheduling part of a channel profile, already parsed
type Profile struct {
	// StartDate is the day of the very first release; only its calendar date in Location is used
	StartDate time.Time
	// HourStart and HourEnd bound the publish hour, both inclusive
	HourStart int
	HourEnd   int
	Location  *time.Location
}

// Validate checks the hour window and location.
func (p Profile) Validate() error {
	if p.Location == nil {
		return fmt.Errorf("schedule profile has no location")
	}
	if p.HourStart < 0 || p.HourEnd > 23 || p.HourStart > p.HourEnd {
		return fmt.Errorf("invalid publish hour window [%d, %d]", p.HourStart, p.HourEnd)
	}
	return nil
}

// Scheduler draws publish times. It is not safe for concurrent use.
type Scheduler struct {
	rng *rand.Rand
}

// New creates a scheduler from the given random source; nil seeds from the runtime.
func New(src rand.Source) *Scheduler {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Scheduler{rng: rand.New(src)}
}

// PublishTime returns the release instant for the globalIndex-th upload of a profile.
// globalIndex counts every successful upload ever made for the profile, so the
// day offset keeps advancing across runs. The result is in the profile's location;
// call UTC() before sending it anywhere.
func (s *Scheduler) PublishTime(p Profile, globalIndex int) time.Time {
	hour := p.HourStart + s.rng.IntN(p.HourEnd-p.HourStart+1)
	minute := s.rng.IntN(60)
	return At(p, globalIndex, hour, minute)
}

// At composes day globalIndex of the profile with a fixed hour and minute.
func At(p Profile, globalIndex, hour, minute int) time.Time {
	y, m, d := p.StartDate.In(p.Location).Date()
	return time.Date(y, m, d+globalIndex, hour, minute, 0, 0, p.Location)
}

// FormatPublishAt renders an instant the way the YouTube API expects publishAt.
func FormatPublishAt(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseDate parses a YYYY-MM-DD start date in the given location.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}
	return t, nil
}

// ParseClock parses a HH:MM publish time.
func ParseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q (want HH:MM): %w", value, err)
	}
	return t.Hour(), t.Minute(), nil
}

// ParseZone accepts a fixed offset such as "+05:30", "-0400" or "UTC", or an IANA zone name.
func ParseZone(value string) (*time.Location, error) {
	v := strings.TrimSpace(value)
	switch strings.ToUpper(v) {
	case "", "Z", "UTC", "+00:00":
		return time.UTC, nil
	}

	if v[0] == '+' || v[0] == '-' {
		sign := 1
		if v[0] == '-' {
			sign = -1
		}
		digits := strings.ReplaceAll(v[1:], ":", "")
		if len(digits) != 2 && len(digits) != 4 {
			return nil, fmt.Errorf("invalid timezone offset %q", value)
		}
		hours, err := strconv.Atoi(digits[:2])
		if err != nil {
			return nil, fmt.Errorf("invalid timezone offset %q: %w", value, err)
		}
		minutes := 0
		if len(digits) == 4 {
			minutes, err = strconv.Atoi(digits[2:])
			if err != nil {
				return nil, fmt.Errorf("invalid timezone offset %q: %w", value, err)
			}
		}
		if hours > 14 || minutes > 59 {
			return nil, fmt.Errorf("invalid timezone offset %q", value)
		}
		return time.FixedZone(v, sign*(hours*3600+minutes*60)), nil
	}

	loc, err := time.LoadLocation(v)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", value, err)
	}
	return loc, nil
}
