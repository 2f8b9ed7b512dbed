// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// SessionDependencies defines the interface for session creation.
type SessionDependencies interface {
	StartSession(ctx context.Context) (string, ViewerState, error)
}

// SessionHandler handles session creation requests.
type SessionHandler struct {
	deps SessionDependencies
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps SessionDependencies) *SessionHandler {
	return &SessionHandler{deps: deps}
}

// sessionResponse is the created-session payload.
type sessionResponse struct {
	SessionID string      `json:"session_id"`
	State     ViewerState `json:"state"`
}

// HandlePostSession handles POST /session requests.
func (h *SessionHandler) HandlePostSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_session"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	id, state, err := h.deps.StartSession(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: id, State: state})
}
