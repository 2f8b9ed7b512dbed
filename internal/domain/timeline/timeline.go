// Package timeline computes the age-segment model behind the visualization:
// every year of a life span gets a share of the strip proportional to 1/age,
// so later years shrink the way subjective time does.
package timeline

import (
	"fmt"
	"math"
)

// Default span and rendering constants.
const (
	// DefaultMinAge and DefaultMaxAge bound the rendered life span.
	DefaultMinAge = 5
	DefaultMaxAge = 80

	// percentScale converts a normalized weight into a percentage.
	percentScale = 100

	// baseHue and hueStep derive a deterministic HSL hue per segment index.
	baseHue = 200
	hueStep = 5
)

// LifeEvent is a labeled milestone pinned to an exact age.
type LifeEvent struct {
	Age   int    `json:"age"`
	Label string `json:"label"`
}

// defaultLifeEvents are the milestones shown on the strip out of the box.
var defaultLifeEvents = []LifeEvent{
	{Age: 18, Label: "Adulthood"},
	{Age: 40, Label: "Half-life"},
	{Age: 65, Label: "Retirement"},
}

// DefaultLifeEvents returns a copy of the built-in milestone list.
func DefaultLifeEvents() []LifeEvent {
	out := make([]LifeEvent, len(defaultLifeEvents))
	copy(out, defaultLifeEvents)
	return out
}

// Span is an inclusive integer age range, fixed at construction.
type Span struct {
	MinAge int `json:"min_age"`
	MaxAge int `json:"max_age"`
}

// DefaultSpan returns the standard 5..80 span.
func DefaultSpan() Span {
	return Span{MinAge: DefaultMinAge, MaxAge: DefaultMaxAge}
}

// Len returns the number of integer ages the span covers.
func (s Span) Len() int {
	return s.MaxAge - s.MinAge + 1
}

// Clamp forces age into the span.
func (s Span) Clamp(age int) int {
	if age < s.MinAge {
		return s.MinAge
	}
	if age > s.MaxAge {
		return s.MaxAge
	}
	return age
}

// Segment is one year of the strip. WidthPercent values across a build sum
// to 100; RawWeight is the unnormalized 1/age share it was derived from.
type Segment struct {
	Age          int        `json:"age"`
	RawWeight    float64    `json:"raw_weight"`
	WidthPercent float64    `json:"width_percent"`
	Visible      bool       `json:"visible"`
	Event        *LifeEvent `json:"event,omitempty"`
}

// Option applies a configuration option to the Model.
type Option func(*Model)

// WithSpan sets a custom age span. Ignored unless 0 < min <= max.
func WithSpan(span Span) Option {
	return func(m *Model) {
		if span.MinAge > 0 && span.MinAge <= span.MaxAge {
			m.span = span
		}
	}
}

// WithLifeEvents replaces the built-in milestone list. Events outside the
// span are kept; they simply never match a segment.
func WithLifeEvents(events []LifeEvent) Option {
	return func(m *Model) {
		m.events = make(map[int]LifeEvent, len(events))
		for _, ev := range events {
			m.events[ev.Age] = ev
		}
	}
}

// Model produces segment sequences for a fixed span and milestone list.
// It is immutable after construction and safe for concurrent use.
type Model struct {
	span   Span
	events map[int]LifeEvent
	// total is the sum of 1/age over the span, computed once so every
	// build normalizes against the same denominator.
	total float64
}

// New constructs a Model with configuration options.
func New(opts ...Option) *Model {
	m := &Model{
		span: DefaultSpan(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.events == nil {
		m.events = make(map[int]LifeEvent, len(defaultLifeEvents))
		for _, ev := range defaultLifeEvents {
			m.events[ev.Age] = ev
		}
	}
	for age := m.span.MinAge; age <= m.span.MaxAge; age++ {
		m.total += 1 / float64(age)
	}
	return m
}

// Span returns the model's age span.
func (m *Model) Span() Span {
	return m.span
}

// Build returns a fresh segment per integer age in the span, ascending.
// Widths are normalized sum-then-divide against the whole span, so they sum
// to 100 regardless of currentAge; only visibility depends on it.
func (m *Model) Build(currentAge int) []Segment {
	currentAge = m.span.Clamp(currentAge)
	segments := make([]Segment, 0, m.span.Len())
	for age := m.span.MinAge; age <= m.span.MaxAge; age++ {
		raw := 1 / float64(age)
		seg := Segment{
			Age:          age,
			RawWeight:    raw,
			WidthPercent: raw / m.total * percentScale,
			Visible:      age <= currentAge,
		}
		if ev, ok := m.events[age]; ok {
			seg.Event = &ev
		}
		segments = append(segments, seg)
	}
	return segments
}

// Event returns the milestone pinned to age, if any.
func (m *Model) Event(age int) (LifeEvent, bool) {
	ev, ok := m.events[age]
	return ev, ok
}

// AgeForFraction maps a scroll fraction to an age: floor(fraction*MaxAge)
// clamped into the span. NaN and negative fractions clamp low, fractions
// above 1 clamp high, so a zero scroll range (document height == viewport
// height) never surfaces an error.
func (m *Model) AgeForFraction(fraction float64) int {
	if math.IsNaN(fraction) || fraction < 0 {
		return m.span.MinAge
	}
	if fraction > 1 {
		return m.span.MaxAge
	}
	return m.span.Clamp(int(math.Floor(fraction * float64(m.span.MaxAge))))
}

// YearPercent formats the share one year holds of a whole life lived to that
// age, 1/age as a percentage with two decimals. This is the figure shown in
// the tooltip; it is independent of the normalized strip widths and does not
// sum to 100 across the span.
func YearPercent(age int) string {
	return fmt.Sprintf("%.2f", 1/float64(age)*percentScale)
}

// Hue returns the deterministic HSL hue for the segment at index.
func Hue(index int) int {
	return baseHue + hueStep*index
}
