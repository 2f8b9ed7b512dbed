package sessions

import "time"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithTTL sets how long a session may stay idle before Sweep drops it.
// Ignored unless ttl > 0.
func WithTTL(ttl time.Duration) Option {
	return func(s *MemStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithMaxSessions caps the number of live sessions. When the cap is hit,
// Create evicts the idlest session first. Ignored unless maxSessions > 0.
func WithMaxSessions(maxSessions int) Option {
	return func(s *MemStore) {
		if maxSessions > 0 {
			s.maxSessions = maxSessions
		}
	}
}
