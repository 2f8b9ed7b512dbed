package simulate

import "time"

// Config holds configuration for the viewer simulation
type Config struct {
	BaseURL          string        // Base URL of the service
	NumSessions      int           // Number of viewer sessions to simulate
	EventsPerSession int           // Number of interaction events per session
	Workers          int           // Number of concurrent workers
	Timeout          time.Duration // HTTP request timeout
	OutputFile       string        // Output file for generated scripts
	LogFile          string        // Log file for simulation output
	Verbose          bool          // Enable verbose logging
}

// Event represents one interaction event to be submitted
type Event struct {
	SessionID string  `json:"session_id"`
	Kind      string  `json:"kind"`
	Fraction  float64 `json:"fraction,omitempty"`
	Age       int     `json:"age,omitempty"`
	Index     int     `json:"index,omitempty"`
	Ratio     float64 `json:"ratio,omitempty"`
}

// ViewerState mirrors the state payload returned by the service
type ViewerState struct {
	CurrentAge      int   `json:"current_age"`
	HoveredAge      *int  `json:"hovered_age,omitempty"`
	TooltipAge      *int  `json:"tooltip_age,omitempty"`
	VisibleCount    int   `json:"visible_count"`
	RevealedIndices []int `json:"revealed_indices"`
}

// SessionCreated mirrors the POST /session response
type SessionCreated struct {
	SessionID string      `json:"session_id"`
	State     ViewerState `json:"state"`
}

// Span mirrors the age range of the rendered timeline
type Span struct {
	MinAge int `json:"min_age"`
	MaxAge int `json:"max_age"`
}

// Milestone mirrors a life event annotation on a segment
type Milestone struct {
	Age   int    `json:"age"`
	Label string `json:"label"`
}

// Segment mirrors one year of the timeline payload
type Segment struct {
	Age          int        `json:"age"`
	RawWeight    float64    `json:"raw_weight"`
	WidthPercent float64    `json:"width_percent"`
	Visible      bool       `json:"visible"`
	Event        *Milestone `json:"event,omitempty"`
	Hue          int        `json:"hue"`
	YearPercent  string     `json:"year_percent"`
}

// TimelineResponse mirrors the GET /timeline payload
type TimelineResponse struct {
	Span       Span      `json:"span"`
	CurrentAge int        `json:"current_age"`
	Segments   []Segment `json:"segments"`
}

// FactsResponse mirrors the GET /facts payload
type FactsResponse struct {
	Facts []string `json:"facts"`
}

// Stats holds simulation statistics
type Stats struct {
	SessionsCreated   int
	SessionsFailed    int
	EventsGenerated   int
	EventsSubmitted   int
	EventsSuccessful  int
	EventsFailed      int
	TimelinesVerified int
	FactsRetrieved    int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
