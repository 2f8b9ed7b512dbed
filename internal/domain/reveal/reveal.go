// Package reveal tracks which items of a static list have scrolled into
// view. Once an item has been revealed it stays revealed; the set only
// grows until the tracker is discarded.
package reveal

import "sort"

// DefaultThreshold is the intersection ratio at which an item counts as
// visible: a tenth of the element inside the viewport.
const DefaultThreshold = 0.1

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithThreshold sets the intersection ratio required to reveal an item.
// Ignored unless 0 < threshold <= 1.
func WithThreshold(threshold float64) Option {
	return func(t *Tracker) {
		if threshold > 0 && threshold <= 1 {
			t.threshold = threshold
		}
	}
}

// Tracker is the monotonic revealed-set over a fixed item count. It is not
// safe for concurrent use; the owning session serializes access.
type Tracker struct {
	revealed  map[int]struct{}
	itemCount int
	threshold float64
}

// NewTracker creates a tracker for itemCount items, none revealed.
func NewTracker(itemCount int, opts ...Option) *Tracker {
	t := &Tracker{
		revealed:  make(map[int]struct{}),
		itemCount: itemCount,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Observe reports an intersection ratio for the item at index and returns
// whether the item is revealed afterwards. Ratios below the threshold never
// un-reveal an item; out-of-range indices are ignored.
func (t *Tracker) Observe(index int, ratio float64) bool {
	if index < 0 || index >= t.itemCount {
		return false
	}
	if ratio >= t.threshold {
		t.revealed[index] = struct{}{}
	}
	_, ok := t.revealed[index]
	return ok
}

// Revealed reports whether the item at index has been revealed.
func (t *Tracker) Revealed(index int) bool {
	_, ok := t.revealed[index]
	return ok
}

// Count returns how many items have been revealed.
func (t *Tracker) Count() int {
	return len(t.revealed)
}

// ItemCount returns the size of the tracked list.
func (t *Tracker) ItemCount() int {
	return t.itemCount
}

// Indices returns the revealed indices in ascending order.
func (t *Tracker) Indices() []int {
	out := make([]int, 0, len(t.revealed))
	for i := range t.revealed {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
