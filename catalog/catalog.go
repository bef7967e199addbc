// Package catalog holds the read-only challenge definitions and SEO override
// tables, and resolves a scanned video to the metadata it is published with.
package catalog

import (
	"errors"
	"fmt"

	"breathbot/types"
)

// MaxGroups is the number of catalog groups searched during lookups.
const MaxGroups = 5

// ErrNotFound is returned when no challenge matches an id in the searched groups.
var ErrNotFound = errors.New("challenge not found")

// Catalog is an immutable set of challenge groups and their parallel override tables.
type Catalog struct {
	groups    [][]types.Challenge
	overrides []map[int]types.Override
}

// New builds a catalog from ordered challenge groups and override tables.
// Both slices are copied; the override table at index i belongs to group i.
func New(groups [][]types.Challenge, overrides []map[int]types.Override) (*Catalog, error) {
	if len(groups) > MaxGroups {
		return nil, fmt.Errorf("catalog has %d challenge groups, at most %d are supported", len(groups), MaxGroups)
	}
	if len(overrides) > MaxGroups {
		return nil, fmt.Errorf("catalog has %d override tables, at most %d are supported", len(overrides), MaxGroups)
	}

	c := &Catalog{
		groups:    make([][]types.Challenge, len(groups)),
		overrides: make([]map[int]types.Override, len(overrides)),
	}
	for i, g := range groups {
		c.groups[i] = append([]types.Challenge(nil), g...)
	}
	for i, table := range overrides {
		copied := make(map[int]types.Override, len(table))
		for id, ov := range table {
			copied[id] = ov
		}
		c.overrides[i] = copied
	}
	return c, nil
}

// searchOrder returns the group indices consulted for a lookup. Variant files
// never match the first group, which holds base content only.
func searchOrder(variant bool) []int {
	if variant {
		return []int{1, 2, 3, 4}
	}
	return []int{0, 1, 2, 3, 4}
}

// FindContent returns the first challenge with the given id across the searched groups.
func (c *Catalog) FindContent(id int, variant bool) (types.Challenge, bool) {
	for _, i := range searchOrder(variant) {
		if i >= len(c.groups) {
			continue
		}
		for _, ch := range c.groups[i] {
			if ch.ID == id {
				return ch, true
			}
		}
	}
	return types.Challenge{}, false
}

// FindOverride returns the first SEO override for the id, using the same group policy as FindContent.
func (c *Catalog) FindOverride(id int, variant bool) (types.Override, bool) {
	for _, i := range searchOrder(variant) {
		if i >= len(c.overrides) {
			continue
		}
		if ov, ok := c.overrides[i][id]; ok {
			return ov, true
		}
	}
	return types.Override{}, false
}

// Flatten returns every challenge in group order.
func (c *Catalog) Flatten() []types.Challenge {
	var all []types.Challenge
	for _, g := range c.groups {
		all = append(all, g...)
	}
	return all
}

// Len is the number of challenges across all groups.
func (c *Catalog) Len() int {
	n := 0
	for _, g := range c.groups {
		n += len(g)
	}
	return n
}

// Groups is the number of challenge groups.
func (c *Catalog) Groups() int {
	return len(c.groups)
}
