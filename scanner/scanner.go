// Package scanner discovers rendered challenge videos on disk and turns their
// filenames into ordered work items.
package scanner

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"breathbot/types"
)

// ErrMalformedName is returned by ParseName when the id part is not a plain decimal number.
var ErrMalformedName = errors.New("malformed video filename")

// Scanner lists a directory for files named <prefix><digits>[c]<suffix>.
type Scanner struct {
	Prefix string
	Suffix string
	logger *slog.Logger
}

// New creates a scanner. A nil logger falls back to slog.Default().
func New(prefix, suffix string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{Prefix: prefix, Suffix: suffix, logger: logger}
}

// Scan returns the matching files in dir ordered by id, base content before variant.
// Files with the right prefix and suffix but an unparsable id are logged and skipped.
func (s *Scanner) Scan(dir string) ([]types.WorkItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read videos directory: %w", err)
	}

	var items []types.WorkItem
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !s.matches(name) {
			continue
		}

		id, variant, err := s.ParseName(name)
		if err != nil {
			s.logger.Warn("⚠️ Skipping malformed video filename", "file", name, "error", err)
			continue
		}

		items = append(items, types.WorkItem{
			Path:    filepath.Join(dir, name),
			ID:      id,
			Variant: variant,
		})
	}

	SortItems(items)

	s.logger.Debug("Scanned videos directory", "dir", dir, "items", len(items))
	return items, nil
}

func (s *Scanner) matches(name string) bool {
	return len(name) >= len(s.Prefix)+len(s.Suffix) &&
		strings.HasPrefix(name, s.Prefix) &&
		strings.HasSuffix(name, s.Suffix)
}

// ParseName extracts the numeric id and variant flag from a filename.
func (s *Scanner) ParseName(name string) (int, bool, error) {
	if !s.matches(name) {
		return 0, false, fmt.Errorf("%w: %q lacks %q...%q", ErrMalformedName, name, s.Prefix, s.Suffix)
	}

	core := name[len(s.Prefix) : len(name)-len(s.Suffix)]

	variant := false
	if strings.HasSuffix(core, types.VariantMarker) {
		variant = true
		core = strings.TrimSuffix(core, types.VariantMarker)
	}

	if core == "" || strings.TrimLeft(core, "0123456789") != "" {
		return 0, false, fmt.Errorf("%w: %q", ErrMalformedName, name)
	}

	id, err := strconv.Atoi(core)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q: %v", ErrMalformedName, name, err)
	}

	return id, variant, nil
}

// SortItems orders items by id ascending, base content before its variant.
func SortItems(items []types.WorkItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ID != items[j].ID {
			return items[i].ID < items[j].ID
		}
		return !items[i].Variant && items[j].Variant
	})
}
