// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/eden-chan/life-flies/internal/domain/model"
)

// EventDependencies defines the interface for event application.
type EventDependencies interface {
	ApplyEvent(ctx context.Context, sessionID string, e model.Event) (ViewerState, error)
}

// EventsHandler handles interaction event requests.
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandlePostEvent handles POST /events requests. The response carries the
// viewer state after the event, so the page can redraw from it directly.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if !req.complete() {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	state, err := h.deps.ApplyEvent(r.Context(), req.SessionID, req.toModel())
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "unknown_session", WrapKind(op, ErrNotFound, err))
			return
		}
		// Anything else from ApplyEvent is a validation failure; the
		// domain itself never errors.
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, state)
}
