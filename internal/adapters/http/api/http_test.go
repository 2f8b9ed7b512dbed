package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eden-chan/life-flies/internal/adapters/http/api"
	"github.com/eden-chan/life-flies/internal/adapters/sessions"
	"github.com/eden-chan/life-flies/internal/domain/model"
	"github.com/eden-chan/life-flies/internal/domain/reveal"
	"github.com/eden-chan/life-flies/internal/domain/timeline"
	"github.com/eden-chan/life-flies/internal/domain/view"
	. "github.com/smartystreets/goconvey/convey"
)

// stubDeps backs the handlers with real domain state behind a fixed session id.
type stubDeps struct {
	model   *timeline.Model
	view    *view.View
	tracker *reveal.Tracker
	id      string
	facts   []string
}

func newStubDeps() *stubDeps {
	m := timeline.New()
	return &stubDeps{
		model:   m,
		view:    view.New(m),
		tracker: reveal.NewTracker(3),
		id:      "sess-1",
		facts:   []string{"one", "two", "three"},
	}
}

func (d *stubDeps) state() api.ViewerState {
	return api.ViewerState{Snapshot: d.view.Snapshot(), RevealedIndices: d.tracker.Indices()}
}

func (d *stubDeps) StartSession(_ context.Context) (string, api.ViewerState, error) {
	return d.id, d.state(), nil
}

func (d *stubDeps) ApplyEvent(_ context.Context, sessionID string, e model.Event) (api.ViewerState, error) {
	if sessionID != d.id {
		return api.ViewerState{}, sessions.ErrNotFound
	}
	if err := e.Validate(); err != nil {
		return api.ViewerState{}, err
	}
	switch e.Kind {
	case model.KindScroll:
		d.view.Scroll(e.Fraction)
	case model.KindHover:
		d.view.HoverEnter(e.Age)
	case model.KindUnhover:
		d.view.HoverLeave()
	case model.KindReveal:
		d.tracker.Observe(e.Index, e.Ratio)
	}
	return d.state(), nil
}

func (d *stubDeps) Timeline(_ context.Context, currentAge int) []timeline.Segment {
	return d.model.Build(currentAge)
}

func (d *stubDeps) Span() timeline.Span {
	return d.model.Span()
}

func (d *stubDeps) Facts(_ context.Context) []string {
	return d.facts
}

func (d *stubDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"activeSessions": 1}
}

func newTestMux(deps *stubDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, deps).Register(context.Background(), mux)
	return mux
}

func TestSessionEndpoint(t *testing.T) {
	Convey("Given the API routes", t, func() {
		deps := newStubDeps()
		mux := newTestMux(deps)

		Convey("When POSTing /session", func() {
			req := httptest.NewRequest(http.MethodPost, "/session", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then a session with initial state should come back", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				var resp struct {
					SessionID string          `json:"session_id"`
					State     api.ViewerState `json:"state"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.SessionID, ShouldEqual, "sess-1")
				So(resp.State.CurrentAge, ShouldEqual, 5)
			})
		})

		Convey("When GETting /session", func() {
			req := httptest.NewRequest(http.MethodGet, "/session", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the method should not be found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestEventsEndpoint(t *testing.T) {
	Convey("Given the API routes", t, func() {
		deps := newStubDeps()
		mux := newTestMux(deps)

		post := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			return w
		}

		Convey("When posting a scroll event", func() {
			w := post(`{"session_id":"sess-1","kind":"scroll","fraction":0.5}`)

			Convey("Then the new state should come back", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var state api.ViewerState
				So(json.Unmarshal(w.Body.Bytes(), &state), ShouldBeNil)
				So(state.CurrentAge, ShouldEqual, 40)
			})
		})

		Convey("When posting a hover event for another age", func() {
			post(`{"session_id":"sess-1","kind":"scroll","fraction":0.5}`)
			w := post(`{"session_id":"sess-1","kind":"hover","age":60}`)

			Convey("Then the tooltip should be present", func() {
				var state api.ViewerState
				So(json.Unmarshal(w.Body.Bytes(), &state), ShouldBeNil)
				So(state.TooltipAge, ShouldNotBeNil)
				So(*state.TooltipAge, ShouldEqual, 60)
			})
		})

		Convey("When hovering the current age itself", func() {
			post(`{"session_id":"sess-1","kind":"scroll","fraction":0.5}`)
			w := post(`{"session_id":"sess-1","kind":"hover","age":40}`)

			Convey("Then the tooltip should be suppressed", func() {
				var state api.ViewerState
				So(json.Unmarshal(w.Body.Bytes(), &state), ShouldBeNil)
				So(state.HoveredAge, ShouldNotBeNil)
				So(state.TooltipAge, ShouldBeNil)
			})
		})

		Convey("When posting a reveal event", func() {
			w := post(`{"session_id":"sess-1","kind":"reveal","index":1,"ratio":0.2}`)

			Convey("Then the revealed set should grow", func() {
				var state api.ViewerState
				So(json.Unmarshal(w.Body.Bytes(), &state), ShouldBeNil)
				So(state.RevealedIndices, ShouldResemble, []int{1})
			})
		})

		Convey("When posting to an unknown session", func() {
			w := post(`{"session_id":"who","kind":"scroll","fraction":0.1}`)

			Convey("Then it should 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When posting malformed JSON", func() {
			w := post(`{"session_id":`)

			Convey("Then it should 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting an unknown kind", func() {
			w := post(`{"session_id":"sess-1","kind":"drag"}`)

			Convey("Then it should 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When omitting the session id", func() {
			w := post(`{"kind":"scroll","fraction":0.1}`)

			Convey("Then it should 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When omitting the kind", func() {
			w := post(`{"session_id":"sess-1","fraction":0.1}`)

			Convey("Then it should 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestTimelineEndpoint(t *testing.T) {
	Convey("Given the API routes", t, func() {
		deps := newStubDeps()
		mux := newTestMux(deps)

		get := func(target string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			return w
		}

		type timelineResp struct {
			Span       timeline.Span `json:"span"`
			CurrentAge int           `json:"current_age"`
			Segments   []struct {
				Age          int     `json:"age"`
				WidthPercent float64 `json:"width_percent"`
				Visible      bool    `json:"visible"`
				Hue          int     `json:"hue"`
				YearPercent  string  `json:"year_percent"`
			} `json:"segments"`
		}

		Convey("When requesting the timeline for age 40", func() {
			w := get("/timeline?age=40")

			Convey("Then the full decorated sequence should come back", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp timelineResp
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.CurrentAge, ShouldEqual, 40)
				So(len(resp.Segments), ShouldEqual, 76)
				So(resp.Segments[0].Age, ShouldEqual, 5)
				So(resp.Segments[0].Hue, ShouldEqual, 200)
				So(resp.Segments[0].YearPercent, ShouldEqual, "20.00")
				So(resp.Segments[75].YearPercent, ShouldEqual, "1.25")

				sum := 0.0
				for _, seg := range resp.Segments {
					sum += seg.WidthPercent
				}
				So(sum, ShouldAlmostEqual, 100, 1e-6)
			})
		})

		Convey("When the age parameter is missing", func() {
			w := get("/timeline")

			Convey("Then the span floor should be assumed", func() {
				var resp timelineResp
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.CurrentAge, ShouldEqual, 5)
			})
		})

		Convey("When the age parameter is out of range", func() {
			w := get("/timeline?age=500")

			Convey("Then it should clamp instead of failing", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp timelineResp
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.CurrentAge, ShouldEqual, 80)
			})
		})
	})
}

func TestFactsAndStatsEndpoints(t *testing.T) {
	Convey("Given the API routes", t, func() {
		deps := newStubDeps()
		mux := newTestMux(deps)

		Convey("When requesting /facts", func() {
			req := httptest.NewRequest(http.MethodGet, "/facts", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the ordered list should come back", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Facts []string `json:"facts"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Facts, ShouldResemble, []string{"one", "two", "three"})
			})
		})

		Convey("When requesting /stats", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the stats map should come back as JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
			})
		})

		Convey("When requesting /healthz", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the metrics scrape should answer", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}
