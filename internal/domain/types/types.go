// Package types contains common types used across the application
package types

import "github.com/eden-chan/life-flies/internal/domain/view"

// ViewerState is the combined read model for one viewer session: the
// interaction snapshot plus the fact-list indices revealed so far.
type ViewerState struct {
	view.Snapshot
	RevealedIndices []int `json:"revealed_indices"`
}
