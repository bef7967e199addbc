package catalog

import (
	"fmt"
	"strings"

	"breathbot/config"
	"breathbot/types"
)

// Resolution is the outcome of resolving one work item.
type Resolution struct {
	Challenge   types.Challenge
	Metadata    types.VideoMetadata
	HasOverride bool
}

// Resolve finds the challenge for a work item and builds its upload metadata.
// Override fields win field by field; anything missing is synthesized.
func (c *Catalog) Resolve(item types.WorkItem, categoryID string) (Resolution, error) {
	ch, ok := c.FindContent(item.ID, item.Variant)
	if !ok {
		return Resolution{}, fmt.Errorf("%w: id=%d variant=%t", ErrNotFound, item.ID, item.Variant)
	}

	ov, hasOverride := c.FindOverride(item.ID, item.Variant)
	meta := BuildMetadata(ch, ov)
	meta.CategoryID = categoryID

	return Resolution{Challenge: ch, Metadata: meta, HasOverride: hasOverride}, nil
}

// BuildMetadata merges an override (possibly zero) with synthesized fallbacks.
func BuildMetadata(ch types.Challenge, ov types.Override) types.VideoMetadata {
	title := ov.Title
	if title == "" {
		title = FallbackTitle(ch)
	}

	description := ov.Description
	if description == "" {
		description = FallbackDescription(ch)
	}

	tags := ov.Tags
	if tags == nil {
		tags = ExtractTags(description)
	}

	return types.VideoMetadata{
		Title:       title,
		Description: description,
		Tags:        tags,
	}
}

// FallbackTitle builds "<main title> - <hook> | Breathing Technique & Meditation",
// cut to MaxTitleLength characters.
func FallbackTitle(ch types.Challenge) string {
	mainTitle := strings.TrimSpace(ch.MainTitle)
	hook := strings.TrimSpace(ch.HookText)

	var parts []string
	if mainTitle != "" {
		parts = append(parts, mainTitle)
	}
	if hook != "" {
		parts = append(parts, "- "+hook)
	}

	base := strings.Join(parts, " ")
	if base == "" {
		base = config.DefaultTitle
	}

	return Truncate(strings.TrimSpace(base+config.TitleSuffix), config.MaxTitleLength)
}

// FallbackDescription joins the non-empty challenge fields with blank lines and
// always ends with the hashtag line.
func FallbackDescription(ch types.Challenge) string {
	var parts []string

	if s := strings.TrimSpace(ch.InitialScript); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(ch.SuccessText); s != "" {
		parts = append(parts, "Success Message: "+s)
	}
	if s := strings.TrimSpace(ch.ChallengeText); s != "" {
		parts = append(parts, "Challenge: "+s)
	}
	if len(ch.Cycle) > 0 {
		parts = append(parts, "Breathing Cycles: "+strings.Join(ch.Cycle, ", "))
	}
	if len(ch.Level) > 0 {
		parts = append(parts, "Difficulty Levels: "+strings.Join(ch.Level, ", "))
	}

	parts = append(parts, config.HashtagLine)
	return strings.Join(parts, "\n\n")
}

// ExtractTags turns every whitespace-delimited "#word" token into the tag "word".
func ExtractTags(description string) []string {
	tags := []string{}
	for _, tok := range strings.Fields(description) {
		if !strings.HasPrefix(tok, "#") {
			continue
		}
		if tag := strings.TrimLeft(tok, "#"); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Truncate cuts s to max runes, replacing the tail with "..." when it is too long.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
