// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// FactsDependencies defines the interface for fact list reads.
type FactsDependencies interface {
	Facts(ctx context.Context) []string
}

// FactsHandler handles fact list requests.
type FactsHandler struct {
	deps FactsDependencies
}

// NewFactsHandler creates a new facts handler.
func NewFactsHandler(deps FactsDependencies) *FactsHandler {
	return &FactsHandler{deps: deps}
}

// factsResponse is the GET /facts payload.
type factsResponse struct {
	Facts []string `json:"facts"`
}

// HandleGetFacts handles GET /facts requests.
func (h *FactsHandler) HandleGetFacts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, factsResponse{Facts: h.deps.Facts(r.Context())})
}
