package planner

import (
	"sort"
	"time"
)

// TimeRange is a half-open interval [Start, End) of absolute timestamps.
// It is used uniformly for busy intervals, free intervals, and candidate
// slots.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two half-open ranges share any instant.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Subtract removes the blocking intervals from the window and returns the
// maximal free sub-intervals, sorted by start. Blocks that do not overlap
// the window are ignored. The result is empty when the blocks fully cover
// the window, and the whole window when there are no blocks.
func Subtract(window TimeRange, blocks []TimeRange) []TimeRange {
	sorted := make([]TimeRange, len(blocks))
	copy(sorted, blocks)
	// Stable keeps input order for identical starts; the cursor advance
	// below is idempotent under overlap, so the result is unaffected.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var free []TimeRange
	cursor := window.Start

	for _, block := range sorted {
		if !block.End.After(window.Start) || !block.Start.Before(window.End) {
			continue
		}

		if cursor.Before(block.Start) {
			end := block.Start
			if window.End.Before(end) {
				end = window.End
			}
			free = append(free, TimeRange{Start: cursor, End: end})
		}

		if block.End.After(cursor) {
			cursor = block.End
		}
	}

	if cursor.Before(window.End) {
		free = append(free, TimeRange{Start: cursor, End: window.End})
	}

	return free
}

// subtractAll subtracts the blocking set from every interval in free,
// concatenating the results in order.
func subtractAll(free []TimeRange, blocks []TimeRange) []TimeRange {
	if len(blocks) == 0 {
		return free
	}
	var out []TimeRange
	for _, interval := range free {
		out = append(out, Subtract(interval, blocks)...)
	}
	return out
}
