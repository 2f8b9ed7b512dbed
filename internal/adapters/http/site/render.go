// Package site renders the visualization page and serves its static assets.
package site

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/eden-chan/life-flies/internal/domain/timeline"
	"github.com/eden-chan/life-flies/pkg/metrics"
)

// Error constants.
var (
	ErrRender = errors.New("page render failed")
)

// Layout variant names. They match the config values and become CSS classes
// on the page body.
const (
	LayoutVertical   = "vertical"
	LayoutHorizontal = "horizontal"
)

// Dependencies required by the page renderer.
type Dependencies interface {
	// Timeline builds the segment sequence for a current age.
	Timeline(ctx context.Context, currentAge int) []timeline.Segment

	// Span exposes the configured age range.
	Span() timeline.Span

	// Facts returns the static fact list.
	Facts(ctx context.Context) []string
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithLayout selects the strip placement. Unknown names keep the default.
func WithLayout(layout string) Option {
	return func(r *Renderer) {
		if layout == LayoutVertical || layout == LayoutHorizontal {
			r.layout = layout
		}
	}
}

// WithInfoBox toggles the explanatory box.
func WithInfoBox(enabled bool) Option {
	return func(r *Renderer) {
		r.infoBox = enabled
	}
}

// Renderer serves the visualization page. The page is rendered server-side
// with the viewer at the top of the strip; the embedded script then drives
// updates through the events API.
type Renderer struct {
	deps    Dependencies
	layout  string
	infoBox bool
	tmpl    *template.Template
}

// NewRenderer creates a page renderer.
func NewRenderer(deps Dependencies, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		deps:    deps,
		layout:  LayoutVertical,
		infoBox: true,
	}
	for _, opt := range opts {
		opt(r)
	}

	tmpl, err := template.New("page").Funcs(pageFuncMap()).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Register attaches the page and static asset routes to mux.
func (r *Renderer) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(FS())))
	mux.HandleFunc("/", r.HandlePage)
}

// pageFuncMap holds the template helpers the page markup leans on.
func pageFuncMap() template.FuncMap {
	return template.FuncMap{
		"hue":     timeline.Hue,
		"yearpct": timeline.YearPercent,
		"pct":     func(v float64) string { return fmt.Sprintf("%.4f", v) },
	}
}

// segmentView is one strip segment prepared for the template.
type segmentView struct {
	Age          int
	WidthPercent float64
	Hue          int
	YearPercent  string
	Visible      bool
	EventLabel   string
}

// pageData feeds the page template.
type pageData struct {
	Layout     string
	InfoBox    bool
	Span       timeline.Span
	CurrentAge int
	Segments   []segmentView
	Facts      []string
}

// HandlePage handles GET / requests.
func (r *Renderer) HandlePage(w http.ResponseWriter, req *http.Request) {
	// The "/" pattern matches everything; anything but the root itself is
	// an unknown path.
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}
	if req.Method != http.MethodGet {
		http.NotFound(w, req)
		return
	}

	span := r.deps.Span()
	segments := r.deps.Timeline(req.Context(), span.MinAge)
	views := make([]segmentView, 0, len(segments))
	for i, seg := range segments {
		sv := segmentView{
			Age:          seg.Age,
			WidthPercent: seg.WidthPercent,
			Hue:          timeline.Hue(i),
			YearPercent:  timeline.YearPercent(seg.Age),
			Visible:      seg.Visible,
		}
		if seg.Event != nil {
			sv.EventLabel = seg.Event.Label
		}
		views = append(views, sv)
	}

	data := pageData{
		Layout:     r.layout,
		InfoBox:    r.infoBox,
		Span:       span,
		CurrentAge: span.MinAge,
		Segments:   views,
		Facts:      r.deps.Facts(req.Context()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.tmpl.Execute(w, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	metrics.RecordPageRender(r.layout)
}
