package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// runSessions plays every script against the service concurrently, one
// worker per session at a time. Events within a session are submitted in
// order, matching how a single browser tab behaves.
func runSessions(ctx context.Context, config *Config, scripts [][]Event, stats *Stats) ([]ViewerState, error) {
	log.Printf("🎬 Running %d sessions with %d workers...", len(scripts), config.Workers)

	client := newHTTPClient(config.Timeout)

	// Final state per session; zero-valued entries mark failures.
	finalStates := make([]ViewerState, len(scripts))

	// Counters for statistics
	var (
		sessionsOK     int64
		sessionsFailed int64
		submitted      int64
		successful     int64
		failed         int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	sessionChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range sessionChan {
				select {
				case <-ctx.Done():
					return
				default:
					state, ok := playSession(ctx, client, config, scripts[index], &submitted, &successful, &failed)
					if ok {
						finalStates[index] = state
						atomic.AddInt64(&sessionsOK, 1)
					} else {
						atomic.AddInt64(&sessionsFailed, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						done := atomic.LoadInt64(&sessionsOK) + atomic.LoadInt64(&sessionsFailed)
						sub := atomic.LoadInt64(&submitted)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d sessions (events: %d, failed events: %d)",
								done, len(scripts), sub, fail)
						} else {
							fmt.Printf("\r🎬 Sessions: %d/%d (events: %d, failed events: %d)",
								done, len(scripts), sub, fail)
						}
					}
				}
			}
		}()
	}

	// Send session indices to workers
	go func() {
		defer close(sessionChan)
		for i := range scripts {
			select {
			case <-ctx.Done():
				return
			case sessionChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.SessionsCreated = int(atomic.LoadInt64(&sessionsOK))
	stats.SessionsFailed = int(atomic.LoadInt64(&sessionsFailed))
	stats.EventsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.EventsSuccessful = int(atomic.LoadInt64(&successful))
	stats.EventsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Session playback completed:
   Sessions: %d
   Session failures: %d
   Events successful: %d
   Events failed: %d
`, stats.SessionsCreated, stats.SessionsFailed, stats.EventsSuccessful, stats.EventsFailed)

	return finalStates, nil
}

// playSession creates one session and submits its script in order,
// returning the final viewer state.
func playSession(ctx context.Context, client *HTTPClient, config *Config, script []Event, submitted, successful, failed *int64) (ViewerState, bool) {
	created, err := createSession(ctx, client, config.BaseURL)
	if err != nil {
		if config.Verbose {
			log.Printf("⚠️  Failed to create session: %v", err)
		}
		return ViewerState{}, false
	}

	state := created.State
	prevRevealed := len(state.RevealedIndices)

	for _, event := range script {
		select {
		case <-ctx.Done():
			return state, false
		default:
		}

		event.SessionID = created.SessionID
		next, err := submitSingleEvent(ctx, client, config.BaseURL+"/events", event)
		atomic.AddInt64(submitted, 1)
		if err != nil {
			atomic.AddInt64(failed, 1)
			if config.Verbose {
				log.Printf("⚠️  Event %q failed for %s: %v", event.Kind, created.SessionID, err)
			}
			continue
		}
		atomic.AddInt64(successful, 1)

		// Revealed items never un-reveal.
		if len(next.RevealedIndices) < prevRevealed {
			log.Printf("⚠️  Session %s lost revealed items: %d -> %d",
				created.SessionID, prevRevealed, len(next.RevealedIndices))
		}
		prevRevealed = len(next.RevealedIndices)
		state = next
	}

	return state, true
}

// createSession starts a new viewer session.
func createSession(ctx context.Context, client *HTTPClient, baseURL string) (SessionCreated, error) {
	resp, err := client.Post(ctx, baseURL+"/session", struct{}{})
	if err != nil {
		return SessionCreated{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return SessionCreated{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusCreated {
		return SessionCreated{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var created SessionCreated
	if err := unmarshalJSON(body, &created); err != nil {
		return SessionCreated{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if created.SessionID == "" {
		return SessionCreated{}, fmt.Errorf("response missing session id")
	}

	return created, nil
}

// submitSingleEvent submits a single event and returns the resulting state.
func submitSingleEvent(ctx context.Context, client *HTTPClient, url string, event Event) (ViewerState, error) {
	resp, err := client.Post(ctx, url, event)
	if err != nil {
		return ViewerState{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return ViewerState{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return ViewerState{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var state ViewerState
	if err := unmarshalJSON(body, &state); err != nil {
		return ViewerState{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return state, nil
}

// fetchSpan reads the configured age range from the timeline endpoint.
func fetchSpan(ctx context.Context, client *HTTPClient, baseURL string) (Span, error) {
	timeline, err := fetchTimeline(ctx, client, baseURL, -1)
	if err != nil {
		return Span{}, err
	}
	return timeline.Span, nil
}

// fetchTimeline retrieves the segment sequence for a current age. A
// negative age omits the query parameter.
func fetchTimeline(ctx context.Context, client *HTTPClient, baseURL string, age int) (TimelineResponse, error) {
	url := baseURL + "/timeline"
	if age >= 0 {
		url = fmt.Sprintf("%s?age=%d", url, age)
	}

	resp, err := client.Get(ctx, url)
	if err != nil {
		return TimelineResponse{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return TimelineResponse{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return TimelineResponse{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var timeline TimelineResponse
	if err := unmarshalJSON(body, &timeline); err != nil {
		return TimelineResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return timeline, nil
}

// fetchFacts retrieves the fact list.
func fetchFacts(ctx context.Context, config *Config, stats *Stats) ([]string, error) {
	log.Println("📜 Getting fact list...")

	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(ctx, config.BaseURL+"/facts")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var facts FactsResponse
	if err := unmarshalJSON(body, &facts); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.FactsRetrieved = len(facts.Facts)
	log.Printf("✅ Retrieved %d facts", len(facts.Facts))

	return facts.Facts, nil
}
