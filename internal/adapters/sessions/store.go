// Package sessions defines the per-viewer session store and errors.
package sessions

import (
	"context"
	"time"

	"github.com/eden-chan/life-flies/internal/domain/reveal"
	"github.com/eden-chan/life-flies/internal/domain/view"
)

// Store provides access to per-viewer interaction state keyed by session ID.
type Store interface {
	// Create makes a fresh session and returns it.
	Create(ctx context.Context) (*Session, error)

	// Get returns the session for id.
	// Returns ErrNotFound if the session is unknown or expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Count returns the number of live sessions.
	Count(ctx context.Context) int

	// Sweep evicts sessions idle longer than the TTL and returns how many
	// were dropped.
	Sweep(ctx context.Context, now time.Time) int
}

// Factory builds the state a new session owns.
type Factory func() (*view.View, *reveal.Tracker)
