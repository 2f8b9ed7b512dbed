// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"math"
)

// EventKind names the interaction signals the page can report.
type EventKind string

// Interaction event kinds.
const (
	// KindScroll carries a scroll fraction to recompute the current age.
	KindScroll EventKind = "scroll"
	// KindHover carries the age of the segment under the pointer.
	KindHover EventKind = "hover"
	// KindUnhover reports the pointer leaving the strip.
	KindUnhover EventKind = "unhover"
	// KindReveal carries an intersection ratio for a fact-list item.
	KindReveal EventKind = "reveal"
)

// Validation errors.
var (
	ErrUnknownKind     = errors.New("unknown event kind")
	ErrInvalidFraction = errors.New("scroll fraction must be a finite number")
	ErrInvalidIndex    = errors.New("reveal index must be non-negative")
	ErrInvalidRatio    = errors.New("reveal ratio must be within [0, 1]")
)

// Event is one viewer interaction reported by the page. Only the fields the
// kind needs are meaningful; the rest stay at their zero values.
type Event struct {
	Kind     EventKind // which signal fired
	Fraction float64   // scroll: vertical scroll fraction, typically [0,1]
	Age      int       // hover: age of the segment under the pointer
	Index    int       // reveal: index into the fact list
	Ratio    float64   // reveal: intersection ratio observed
}

// Validate checks the kind-specific fields. Scroll fractions outside [0,1]
// pass validation since the domain clamps them; only non-finite values are
// rejected at the boundary.
func (e Event) Validate() error {
	switch e.Kind {
	case KindScroll:
		if math.IsNaN(e.Fraction) || math.IsInf(e.Fraction, 0) {
			return ErrInvalidFraction
		}
	case KindHover, KindUnhover:
		// Hover ages clamp in the domain; nothing to validate.
	case KindReveal:
		if e.Index < 0 {
			return ErrInvalidIndex
		}
		if math.IsNaN(e.Ratio) || e.Ratio < 0 || e.Ratio > 1 {
			return ErrInvalidRatio
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, e.Kind)
	}
	return nil
}
