// Package service provides the core application service that implements
// the dependencies required by the HTTP layer: the age-segment model, the
// fact list, and per-viewer interaction sessions.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/eden-chan/life-flies/internal/adapters/sessions"
	"github.com/eden-chan/life-flies/internal/domain/facts"
	"github.com/eden-chan/life-flies/internal/domain/model"
	"github.com/eden-chan/life-flies/internal/domain/reveal"
	"github.com/eden-chan/life-flies/internal/domain/timeline"
	"github.com/eden-chan/life-flies/internal/domain/types"
	"github.com/eden-chan/life-flies/internal/domain/view"
	"github.com/eden-chan/life-flies/pkg/logger"
	"github.com/eden-chan/life-flies/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultSweepInterval = time.Minute
	millisPerNanosecond  = 1e-6
)

// Snapshot is the combined read model for one viewer: the interaction state
// plus which fact-list items have been revealed so far.
type Snapshot = types.ViewerState

// Service owns the timeline model, the fact list, and the session store.
type Service struct {
	mu sync.RWMutex

	model    *timeline.Model
	factList []string
	store    sessions.Store

	// Configuration applied before Start.
	spanOpts        []timeline.Option
	revealThreshold float64
	sessionTTL      time.Duration
	maxSessions     int
	sweepInterval   time.Duration

	// State
	started bool
	stopCh  chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSpan sets the age span rendered by the timeline model.
func WithSpan(span timeline.Span) Option {
	return func(s *Service) {
		s.spanOpts = append(s.spanOpts, timeline.WithSpan(span))
	}
}

// WithLifeEvents replaces the built-in milestone list.
func WithLifeEvents(events []timeline.LifeEvent) Option {
	return func(s *Service) {
		if len(events) > 0 {
			s.spanOpts = append(s.spanOpts, timeline.WithLifeEvents(events))
		}
	}
}

// WithFacts replaces the built-in fact list.
func WithFacts(list []string) Option {
	return func(s *Service) {
		if len(list) > 0 {
			s.factList = list
		}
	}
}

// WithRevealThreshold sets the intersection ratio that reveals a fact item.
func WithRevealThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold > 0 && threshold <= 1 {
			s.revealThreshold = threshold
		}
	}
}

// WithSessionTTL sets how long idle viewer sessions survive.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithMaxSessions caps concurrent viewer sessions.
func WithMaxSessions(maxSessions int) Option {
	return func(s *Service) {
		if maxSessions > 0 {
			s.maxSessions = maxSessions
		}
	}
}

// WithSweepInterval sets how often idle sessions are swept.
func WithSweepInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		factList:        facts.Defaults(),
		revealThreshold: reveal.DefaultThreshold,
		sessionTTL:      30 * time.Minute,
		maxSessions:     10_000,
		sweepInterval:   defaultSweepInterval,
		stopCh:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.model = timeline.New(s.spanOpts...)
	s.store = sessions.NewMemStore(
		s.sessionFactory(),
		sessions.WithTTL(s.sessionTTL),
		sessions.WithMaxSessions(s.maxSessions),
	)
	return s
}

// sessionFactory builds the fresh state every viewer starts with.
func (s *Service) sessionFactory() sessions.Factory {
	return func() (*view.View, *reveal.Tracker) {
		return view.New(s.model), reveal.NewTracker(len(s.factList), reveal.WithThreshold(s.revealThreshold))
	}
}

// Start begins background session sweeping. Safe to call once.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	s.started = true

	go s.sweepLoop(ctx)

	if s.logger != nil {
		s.logger.Info(ctx, "service started",
			logger.Int("min_age", s.model.Span().MinAge),
			logger.Int("max_age", s.model.Span().MaxAge),
			logger.Int("facts", len(s.factList)))
	}
	return nil
}

// Stop halts background work.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	close(s.stopCh)
}

// sweepLoop evicts idle sessions until the service stops.
func (s *Service) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			evicted := s.store.Sweep(ctx, time.Now())
			if evicted > 0 {
				metrics.RecordSessionsExpired(evicted)
				if s.logger != nil {
					s.logger.Debug(ctx, "swept idle sessions", logger.Int("evicted", evicted))
				}
			}
			metrics.UpdateActiveSessions(s.store.Count(ctx))
		}
	}
}

// StartSession creates a viewer session at the top of the page.
func (s *Service) StartSession(ctx context.Context) (string, Snapshot, error) {
	sess, err := s.store.Create(ctx)
	if err != nil {
		return "", Snapshot{}, err
	}
	metrics.RecordSessionCreated()
	metrics.UpdateActiveSessions(s.store.Count(ctx))
	return sess.ID(), snapshotOf(sess), nil
}

// ApplyEvent applies one interaction event to its session and returns the
// resulting snapshot. Past validation there is no failure mode: degenerate
// values clamp inside the domain.
func (s *Service) ApplyEvent(ctx context.Context, sessionID string, e model.Event) (Snapshot, error) {
	if err := e.Validate(); err != nil {
		return Snapshot{}, err
	}
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	sess.Update(func(v *view.View, tr *reveal.Tracker) {
		switch e.Kind {
		case model.KindScroll:
			v.Scroll(e.Fraction)
			metrics.RecordScrollEvent()
		case model.KindHover:
			v.HoverEnter(e.Age)
			metrics.RecordHoverEvent()
		case model.KindUnhover:
			v.HoverLeave()
			metrics.RecordUnhoverEvent()
		case model.KindReveal:
			before := tr.Count()
			tr.Observe(e.Index, e.Ratio)
			metrics.RecordRevealEvent()
			if tr.Count() > before {
				metrics.RecordItemRevealed()
			}
		}
		snap = Snapshot{Snapshot: v.Snapshot(), RevealedIndices: tr.Indices()}
	})
	return snap, nil
}

// SessionSnapshot returns the current snapshot without mutating anything.
func (s *Service) SessionSnapshot(ctx context.Context, sessionID string) (Snapshot, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return snapshotOf(sess), nil
}

// Timeline builds the segment sequence for a current age.
func (s *Service) Timeline(ctx context.Context, currentAge int) []timeline.Segment {
	start := time.Now()
	segments := s.model.Build(currentAge)
	metrics.RecordTimelineBuildDuration(float64(time.Since(start).Nanoseconds()) * millisPerNanosecond)
	return segments
}

// Span returns the configured age span.
func (s *Service) Span() timeline.Span {
	return s.model.Span()
}

// Facts returns the static fact list in order.
func (s *Service) Facts(ctx context.Context) []string {
	out := make([]string, len(s.factList))
	copy(out, s.factList)
	return out
}

// SessionCount returns the number of live sessions.
func (s *Service) SessionCount(ctx context.Context) int {
	return s.store.Count(ctx)
}

// GetStats returns a stats map for the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	span := s.model.Span()
	return map[string]interface{}{
		"minAge":          span.MinAge,
		"maxAge":          span.MaxAge,
		"segmentCount":    span.Len(),
		"factCount":       len(s.factList),
		"activeSessions":  s.store.Count(ctx),
		"sessionTTL":      s.sessionTTL.String(),
		"revealThreshold": s.revealThreshold,
	}
}

// snapshotOf reads a combined snapshot under the session lock.
func snapshotOf(sess *sessions.Session) Snapshot {
	var snap Snapshot
	sess.Read(func(v *view.View, tr *reveal.Tracker) {
		snap = Snapshot{Snapshot: v.Snapshot(), RevealedIndices: tr.Indices()}
	})
	return snap
}
