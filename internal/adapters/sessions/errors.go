package sessions

import "errors"

// Sentinel errors for session lookups.
var (
	ErrNotFound = errors.New("session not found")
)
