package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eden-chan/life-flies/internal/domain/reveal"
	"github.com/eden-chan/life-flies/internal/domain/view"
)

// Default store configuration constants.
const (
	defaultTTL         = 30 * time.Minute
	defaultMaxSessions = 10_000
)

// Session owns one viewer's interaction state. All access to the state goes
// through Update or Read, which serialize under the session mutex so event
// application for a viewer is strictly ordered even when the transport
// delivers requests in parallel.
type Session struct {
	id string

	mu       sync.Mutex
	view     *view.View
	tracker  *reveal.Tracker
	lastSeen time.Time
}

// ID returns the session's identifier.
func (s *Session) ID() string {
	return s.id
}

// Update runs fn with exclusive access to the session state and marks the
// session as recently seen.
func (s *Session) Update(fn func(v *view.View, tr *reveal.Tracker)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	fn(s.view, s.tracker)
}

// Read runs fn with access to the session state without refreshing the
// idle clock.
func (s *Session) Read(fn func(v *view.View, tr *reveal.Tracker)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.view, s.tracker)
}

// MemStore implements Store with a plain map guarded by a RWMutex. Session
// state itself is guarded per session, so two viewers never contend beyond
// the map lookup.
type MemStore struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	factory     Factory
	ttl         time.Duration
	maxSessions int
}

// NewMemStore creates an in-memory session store. factory supplies the
// state each new session starts with.
func NewMemStore(factory Factory, opts ...Option) *MemStore {
	s := &MemStore{
		sessions:    make(map[string]*Session),
		factory:     factory,
		ttl:         defaultTTL,
		maxSessions: defaultMaxSessions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create makes a fresh session keyed by a new UUID.
func (s *MemStore) Create(_ context.Context) (*Session, error) {
	v, tr := s.factory()
	sess := &Session{
		id:       uuid.NewString(),
		view:     v,
		tracker:  tr,
		lastSeen: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) >= s.maxSessions {
		s.evictIdlestLocked()
	}
	s.sessions[sess.id] = sess
	return sess, nil
}

// Get returns the session for id or ErrNotFound.
func (s *MemStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Count returns the number of live sessions.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle longer than the TTL.
func (s *MemStore) Sweep(_ context.Context, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.lastSeen)
		sess.mu.Unlock()
		if idle > s.ttl {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// evictIdlestLocked removes the session with the oldest lastSeen. Caller
// holds the store lock.
func (s *MemStore) evictIdlestLocked() {
	var (
		oldestID   string
		oldestSeen time.Time
	)
	for id, sess := range s.sessions {
		sess.mu.Lock()
		seen := sess.lastSeen
		sess.mu.Unlock()
		if oldestID == "" || seen.Before(oldestSeen) {
			oldestID = id
			oldestSeen = seen
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}
