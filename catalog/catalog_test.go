package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"breathbot/config"
	"breathbot/types"
)

func boxBreath() types.Challenge {
	return types.Challenge{
		ID:            7,
		MainTitle:     "Box Breath",
		Cycle:         []string{"4-4-4-4", "5-5-5-5"},
		Level:         []string{"Beginner", "Intermediate"},
		HookText:      "Prove your calm now",
		SuccessText:   "You held it together",
		ChallengeText: "Can you keep the box?",
		InitialScript: "Sit tall and breathe in.",
	}
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	groups := [][]types.Challenge{
		{{ID: 5, MainTitle: "Base Five"}, {ID: 7, MainTitle: "Base Seven"}},
		{{ID: 7, MainTitle: "Variant Seven"}},
		{},
		{{ID: 9, MainTitle: "Deep Nine"}},
	}
	overrides := []map[int]types.Override{
		{5: {Title: "Five SEO"}},
		{7: {Title: "Seven Variant SEO", Tags: []string{}}},
	}
	c, err := New(groups, overrides)
	require.NoError(t, err)
	return c
}

func TestFindContentVariantPolicy(t *testing.T) {
	c := testCatalog(t)

	ch, ok := c.FindContent(7, false)
	require.True(t, ok)
	assert.Equal(t, "Base Seven", ch.MainTitle)

	ch, ok = c.FindContent(7, true)
	require.True(t, ok)
	assert.Equal(t, "Variant Seven", ch.MainTitle)

	_, ok = c.FindContent(5, true)
	assert.False(t, ok, "group 0 must never satisfy a variant lookup")

	ch, ok = c.FindContent(9, false)
	require.True(t, ok)
	assert.Equal(t, "Deep Nine", ch.MainTitle)

	_, ok = c.FindContent(42, false)
	assert.False(t, ok)
}

func TestFindOverrideVariantPolicy(t *testing.T) {
	c := testCatalog(t)

	ov, ok := c.FindOverride(5, false)
	require.True(t, ok)
	assert.Equal(t, "Five SEO", ov.Title)

	_, ok = c.FindOverride(5, true)
	assert.False(t, ok)

	ov, ok = c.FindOverride(7, true)
	require.True(t, ok)
	assert.Equal(t, "Seven Variant SEO", ov.Title)

	ov, ok = c.FindOverride(7, false)
	require.True(t, ok)
	assert.Equal(t, "Seven Variant SEO", ov.Title)
}

func TestNewCopiesInput(t *testing.T) {
	groups := [][]types.Challenge{{{ID: 1, MainTitle: "One"}}}
	overrides := []map[int]types.Override{{1: {Title: "One SEO"}}}

	c, err := New(groups, overrides)
	require.NoError(t, err)

	groups[0][0].MainTitle = "mutated"
	overrides[0][1] = types.Override{Title: "mutated"}

	ch, _ := c.FindContent(1, false)
	assert.Equal(t, "One", ch.MainTitle)
	ov, _ := c.FindOverride(1, false)
	assert.Equal(t, "One SEO", ov.Title)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Groups())
}

func TestNewRejectsTooManyGroups(t *testing.T) {
	_, err := New(make([][]types.Challenge, MaxGroups+1), nil)
	assert.Error(t, err)
}

func TestFallbackTitle(t *testing.T) {
	assert.Equal(t, "Box Breath - Prove your calm now | Breathing Technique & Meditation", FallbackTitle(boxBreath()))
	assert.Equal(t, "Breathing Exercise | Breathing Technique & Meditation", FallbackTitle(types.Challenge{ID: 1}))
	assert.Equal(t, "Solo | Breathing Technique & Meditation", FallbackTitle(types.Challenge{MainTitle: "  Solo  "}))

	long := types.Challenge{MainTitle: strings.Repeat("Ω", 80), HookText: "hook"}
	got := FallbackTitle(long)
	assert.Equal(t, config.MaxTitleLength, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestFallbackDescription(t *testing.T) {
	got := FallbackDescription(boxBreath())
	want := strings.Join([]string{
		"Sit tall and breathe in.",
		"Success Message: You held it together",
		"Challenge: Can you keep the box?",
		"Breathing Cycles: 4-4-4-4, 5-5-5-5",
		"Difficulty Levels: Beginner, Intermediate",
		config.HashtagLine,
	}, "\n\n")
	assert.Equal(t, want, got)

	assert.Equal(t, config.HashtagLine, FallbackDescription(types.Challenge{ID: 3, InitialScript: "   "}))
}

func TestExtractTags(t *testing.T) {
	assert.Equal(t, []string{"breathing", "calm", "x"}, ExtractTags("Try this #breathing\nand ##calm now #x # end"))
	assert.Empty(t, ExtractTags("no tags here"))
}

func TestResolve(t *testing.T) {
	groups := [][]types.Challenge{{boxBreath()}}
	c, err := New(groups, nil)
	require.NoError(t, err)

	res, err := c.Resolve(types.WorkItem{ID: 7}, "27")
	require.NoError(t, err)
	assert.False(t, res.HasOverride)
	assert.Equal(t, "Box Breath - Prove your calm now | Breathing Technique & Meditation", res.Metadata.Title)
	assert.Equal(t, []string{"breathing", "meditation", "calm", "focus", "breathwork"}, res.Metadata.Tags)
	assert.Equal(t, "27", res.Metadata.CategoryID)

	_, err = c.Resolve(types.WorkItem{ID: 7, Variant: true}, "27")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestBuildMetadataFieldByField(t *testing.T) {
	ch := boxBreath()

	meta := BuildMetadata(ch, types.Override{Description: "Custom #one #two"})
	assert.Equal(t, FallbackTitle(ch), meta.Title)
	assert.Equal(t, "Custom #one #two", meta.Description)
	assert.Equal(t, []string{"one", "two"}, meta.Tags)

	meta = BuildMetadata(ch, types.Override{Title: "Mine", Tags: []string{"explicit"}})
	assert.Equal(t, "Mine", meta.Title)
	assert.Equal(t, FallbackDescription(ch), meta.Description)
	assert.Equal(t, []string{"explicit"}, meta.Tags)

	meta = BuildMetadata(ch, types.Override{Title: "Mine", Description: "#ignored", Tags: []string{}})
	assert.Empty(t, meta.Tags)
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	challenges := filepath.Join(dir, "challenges.json")
	overrides := filepath.Join(dir, "overrides.json")

	require.NoError(t, os.WriteFile(challenges, []byte(`[
		[{"id": 1, "mainTitle": "One", "cycle": ["4-7-8"]}],
		[{"id": 1, "mainTitle": "One Variant"}]
	]`), 0o644))
	require.NoError(t, os.WriteFile(overrides, []byte(`[
		{"1": {"title": "One SEO", "tags": ["a"]}},
		{}
	]`), 0o644))

	c, err := Load(challenges, overrides)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	ov, ok := c.FindOverride(1, false)
	require.True(t, ok)
	assert.Equal(t, "One SEO", ov.Title)

	c, err = Load(challenges, "")
	require.NoError(t, err)
	_, ok = c.FindOverride(1, false)
	assert.False(t, ok)
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	_, err := ParseChallenges([]byte(`[[{"mainTitle": "missing id"}]]`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors)

	_, err = ParseChallenges([]byte(`[[{"id": "7", "mainTitle": "string id"}]]`))
	assert.ErrorAs(t, err, &verr)

	_, err = ParseOverrides([]byte(`[{"seven": {"title": "x"}}]`))
	assert.ErrorAs(t, err, &verr)
}

func TestParseBatchSortsByName(t *testing.T) {
	entries, err := ParseBatch([]byte(`{
		"zeta": {"title": "Z"},
		"alpha": {"title": "A", "description": "first", "tags": ["t"]}
	}`))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "alpha", entries[0].Name)
	assert.Equal(t, "first", entries[0].Override.Description)
	assert.Equal(t, "zeta", entries[1].Name)

	_, err = ParseBatch([]byte(`{"x": {"description": "no title"}}`))
	assert.Error(t, err)
}
