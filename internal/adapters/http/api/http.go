// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/eden-chan/life-flies/internal/adapters/sessions"
	"github.com/eden-chan/life-flies/internal/domain/model"
	"github.com/eden-chan/life-flies/internal/domain/timeline"
	"github.com/eden-chan/life-flies/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// StartSession creates a viewer session and returns its id and
	// initial state.
	StartSession(ctx context.Context) (string, ViewerState, error)

	// ApplyEvent applies one interaction event to its session.
	ApplyEvent(ctx context.Context, sessionID string, e model.Event) (ViewerState, error)

	// Timeline builds the segment sequence for a current age.
	Timeline(ctx context.Context, currentAge int) []timeline.Segment

	// Span exposes the configured age range.
	Span() timeline.Span

	// Facts returns the static fact list.
	Facts(ctx context.Context) []string
}

// ViewerState mirrors the read shape returned by session operations.
type ViewerState = types.ViewerState

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	sessionHandler  *SessionHandler
	eventsHandler   *EventsHandler
	timelineHandler *TimelineHandler
	factsHandler    *FactsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		sessionHandler:  NewSessionHandler(deps),
		eventsHandler:   NewEventsHandler(deps),
		timelineHandler: NewTimelineHandler(deps),
		factsHandler:    NewFactsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/session", MetricsMiddleware(s.sessionHandler.HandlePostSession, "session"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events"))
	mux.HandleFunc("/timeline", MetricsMiddleware(s.timelineHandler.HandleGetTimeline, "timeline"))
	mux.HandleFunc("/facts", MetricsMiddleware(s.factsHandler.HandleGetFacts, "facts"))
}

// eventRequest mirrors the OpenAPI schema for POST /events.
type eventRequest struct {
	SessionID string  `json:"session_id"`
	Kind      string  `json:"kind"`
	Fraction  float64 `json:"fraction"`
	Age       int     `json:"age"`
	Index     int     `json:"index"`
	Ratio     float64 `json:"ratio"`
}

func (e eventRequest) complete() bool {
	return strings.TrimSpace(e.SessionID) != "" && strings.TrimSpace(e.Kind) != ""
}

// toModel converts the transport shape into the domain event.
func (e eventRequest) toModel() model.Event {
	return model.Event{
		Kind:     model.EventKind(e.Kind),
		Fraction: e.Fraction,
		Age:      e.Age,
		Index:    e.Index,
		Ratio:    e.Ratio,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, sessions.ErrNotFound)
}
