// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/eden-chan/life-flies/internal/domain/timeline"
)

// TimelineDependencies defines the interface for timeline reads.
type TimelineDependencies interface {
	Timeline(ctx context.Context, currentAge int) []timeline.Segment
	Span() timeline.Span
}

// TimelineHandler handles segment sequence requests.
type TimelineHandler struct {
	deps TimelineDependencies
}

// NewTimelineHandler creates a new timeline handler.
func NewTimelineHandler(deps TimelineDependencies) *TimelineHandler {
	return &TimelineHandler{deps: deps}
}

// segmentPayload decorates a segment with its render hints.
type segmentPayload struct {
	timeline.Segment
	Hue         int    `json:"hue"`
	YearPercent string `json:"year_percent"`
}

// timelineResponse is the GET /timeline payload.
type timelineResponse struct {
	Span       timeline.Span    `json:"span"`
	CurrentAge int              `json:"current_age"`
	Segments   []segmentPayload `json:"segments"`
}

// HandleGetTimeline handles GET /timeline?age=N requests. A missing or
// malformed age falls back to the span floor, matching the initial page
// state; out-of-range ages clamp rather than fail.
func (h *TimelineHandler) HandleGetTimeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	span := h.deps.Span()
	currentAge := span.MinAge
	if ageStr := r.URL.Query().Get("age"); ageStr != "" {
		if age, err := strconv.Atoi(ageStr); err == nil {
			currentAge = span.Clamp(age)
		}
	}

	segments := h.deps.Timeline(r.Context(), currentAge)
	payload := make([]segmentPayload, 0, len(segments))
	for i, seg := range segments {
		payload = append(payload, segmentPayload{
			Segment:     seg,
			Hue:         timeline.Hue(i),
			YearPercent: timeline.YearPercent(seg.Age),
		})
	}
	writeJSON(w, http.StatusOK, timelineResponse{
		Span:       span,
		CurrentAge: currentAge,
		Segments:   payload,
	})
}
