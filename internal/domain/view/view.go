// Package view holds the per-viewer interaction state: the current age
// derived from scroll position and the hovered age derived from the pointer.
package view

import (
	"github.com/eden-chan/life-flies/internal/domain/timeline"
)

// View is a single viewer's interaction state. It keeps no history: every
// scroll fully replaces the current age, every hover fully replaces the
// hovered age. A View is not safe for concurrent use; the owning session
// serializes access.
type View struct {
	model      *timeline.Model
	currentAge int
	hoveredAge int
	hovered    bool
}

// New creates a View at the top of the page: current age at the span floor,
// nothing hovered.
func New(model *timeline.Model) *View {
	return &View{
		model:      model,
		currentAge: model.Span().MinAge,
	}
}

// Scroll recomputes the current age from a scroll fraction and returns it.
// Degenerate fractions clamp to the span; the call is idempotent.
func (v *View) Scroll(fraction float64) int {
	v.currentAge = v.model.AgeForFraction(fraction)
	return v.currentAge
}

// HoverEnter records the pointer entering a segment. Last write wins under
// rapid movement; ages outside the span clamp in.
func (v *View) HoverEnter(age int) {
	v.hoveredAge = v.model.Span().Clamp(age)
	v.hovered = true
}

// HoverLeave clears the hovered age.
func (v *View) HoverLeave() {
	v.hovered = false
	v.hoveredAge = 0
}

// CurrentAge returns the scroll-derived age.
func (v *View) CurrentAge() int {
	return v.currentAge
}

// HoveredAge returns the hovered age and whether a segment is hovered.
func (v *View) HoveredAge() (int, bool) {
	return v.hoveredAge, v.hovered
}

// TooltipAge returns the age the hover tooltip should show, if any. The
// tooltip is suppressed when the hovered age equals the current age, which
// already has its own always-visible callout.
func (v *View) TooltipAge() (int, bool) {
	if !v.hovered || v.hoveredAge == v.currentAge {
		return 0, false
	}
	return v.hoveredAge, true
}

// Snapshot is the read model handed to the render layer.
type Snapshot struct {
	CurrentAge   int  `json:"current_age"`
	HoveredAge   *int `json:"hovered_age,omitempty"`
	TooltipAge   *int `json:"tooltip_age,omitempty"`
	VisibleCount int  `json:"visible_count"`
}

// Snapshot captures the current state for readers.
func (v *View) Snapshot() Snapshot {
	s := Snapshot{
		CurrentAge:   v.currentAge,
		VisibleCount: v.currentAge - v.model.Span().MinAge + 1,
	}
	if age, ok := v.HoveredAge(); ok {
		s.HoveredAge = &age
	}
	if age, ok := v.TooltipAge(); ok {
		s.TooltipAge = &age
	}
	return s
}
