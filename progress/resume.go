package progress

import (
	"breathbot/types"
)

// Resume configures where a run starts and stops inside the ordered work list.
type Resume struct {
	// StartFrom is an explicit starting key; it overrides LastPublished.
	StartFrom string
	// StartExclusive skips the StartFrom item itself.
	StartExclusive bool
	// StopAt is processed and then the run ends.
	StopAt string
	// LastPublished is the stored resume marker; the run begins right after it.
	LastPublished *string
}

// Bounds describes how a Resume was applied to a work list.
type Bounds struct {
	Start        int
	End          int
	StartMissing bool
	StopMissing  bool
}

// Window returns the slice of items a run should walk. A start or stop key
// that is not present in items leaves the corresponding bound open.
func Window(items []types.WorkItem, r Resume) ([]types.WorkItem, Bounds) {
	b := Bounds{Start: 0, End: len(items)}

	switch {
	case r.StartFrom != "":
		if idx := indexOf(items, r.StartFrom); idx >= 0 {
			b.Start = idx
			if r.StartExclusive {
				b.Start = idx + 1
			}
		} else {
			b.StartMissing = true
		}
	case r.LastPublished != nil && *r.LastPublished != "":
		if idx := indexOf(items, *r.LastPublished); idx >= 0 {
			b.Start = idx + 1
		} else {
			b.StartMissing = true
		}
	}

	if r.StopAt != "" {
		if idx := indexOf(items, r.StopAt); idx >= 0 {
			b.End = idx + 1
		} else {
			b.StopMissing = true
		}
	}

	if b.Start >= b.End {
		return nil, b
	}
	return items[b.Start:b.End], b
}

func indexOf(items []types.WorkItem, key string) int {
	for i, it := range items {
		if it.Key() == key {
			return i
		}
	}
	return -1
}
