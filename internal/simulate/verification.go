package simulate

import (
	"context"
	"fmt"
	"log"
	"math"
)

// verifyResults checks the timeline endpoint against its documented
// behavior and sanity-checks the final session states.
func verifyResults(ctx context.Context, config *Config, span Span, finalStates []ViewerState, facts []string, stats *Stats) error {
	log.Println("🔍 Verifying results...")

	client := newHTTPClient(config.Timeout)

	// Probe the timeline at the edges, the middle, and with no age at all.
	probes := []int{span.MinAge, (span.MinAge + span.MaxAge) / 2, span.MaxAge, -1}
	for _, age := range probes {
		timeline, err := fetchTimeline(ctx, client, config.BaseURL, age)
		if err != nil {
			return fmt.Errorf("timeline probe at age %d failed: %w", age, err)
		}

		expectedAge := age
		if age < 0 {
			// A missing age falls back to the span floor.
			expectedAge = span.MinAge
		}
		if err := verifyTimeline(timeline, span, expectedAge); err != nil {
			return fmt.Errorf("timeline at age %d: %w", expectedAge, err)
		}
		stats.TimelinesVerified++
	}
	log.Printf("✅ Verified %d timeline probes", stats.TimelinesVerified)

	// Drive one extra session through the scroll extremes.
	if err := verifyFractionEndpoints(ctx, client, config, span); err != nil {
		return fmt.Errorf("fraction endpoint check: %w", err)
	}
	log.Println("✅ Verified scroll fraction endpoints")

	// Check every surviving session's final state.
	checked := 0
	for i, state := range finalStates {
		if state.CurrentAge == 0 {
			continue // playback failed for this one
		}
		if err := verifyViewerState(state, span, len(facts)); err != nil {
			log.Printf("⚠️  Session %d final state warning: %v", i, err)
			continue
		}
		checked++
	}
	log.Printf("✅ Verified %d session final states", checked)

	displayStateSummary(finalStates, config.Verbose)

	log.Println("✅ Result verification completed")
	return nil
}

// verifyTimeline checks one timeline payload for internal consistency.
func verifyTimeline(timeline TimelineResponse, span Span, currentAge int) error {
	if timeline.CurrentAge != currentAge {
		return fmt.Errorf("current age %d does not match requested %d", timeline.CurrentAge, currentAge)
	}

	wantCount := span.MaxAge - span.MinAge + 1
	if len(timeline.Segments) != wantCount {
		return fmt.Errorf("expected %d segments, got %d", wantCount, len(timeline.Segments))
	}

	sum := 0.0
	for i, seg := range timeline.Segments {
		if seg.Age != span.MinAge+i {
			return fmt.Errorf("segment %d has age %d, expected %d", i, seg.Age, span.MinAge+i)
		}
		if seg.Event != nil && seg.Event.Age != seg.Age {
			return fmt.Errorf("segment for age %d carries milestone for age %d", seg.Age, seg.Event.Age)
		}
		if seg.Visible != (seg.Age <= currentAge) {
			return fmt.Errorf("segment for age %d has visible=%v at current age %d", seg.Age, seg.Visible, currentAge)
		}
		// Older years render narrower.
		if i > 0 && seg.WidthPercent >= timeline.Segments[i-1].WidthPercent {
			return fmt.Errorf("segment for age %d is not narrower than the year before", seg.Age)
		}
		if seg.YearPercent == "" {
			return fmt.Errorf("segment for age %d has empty year percent", seg.Age)
		}
		sum += seg.WidthPercent
	}

	if math.Abs(sum-widthSumTarget) > widthSumTolerance {
		return fmt.Errorf("segment widths sum to %.9f, expected %.1f", sum, widthSumTarget)
	}

	return nil
}

// verifyFractionEndpoints creates a throwaway session and scrolls it to the
// top, the middle, and the bottom of the page, checking the resulting ages
// against the fraction-to-age mapping.
func verifyFractionEndpoints(ctx context.Context, client *HTTPClient, config *Config, span Span) error {
	created, err := createSession(ctx, client, config.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to create probe session: %w", err)
	}

	for _, fraction := range []float64{0, 0.5, 1} {
		state, err := submitSingleEvent(ctx, client, config.BaseURL+"/events", Event{
			SessionID: created.SessionID,
			Kind:      "scroll",
			Fraction:  fraction,
		})
		if err != nil {
			return fmt.Errorf("scroll to %.1f failed: %w", fraction, err)
		}
		if want := ageForFraction(fraction, span); state.CurrentAge != want {
			return fmt.Errorf("scroll to %.1f landed on age %d, expected %d", fraction, state.CurrentAge, want)
		}
	}

	return nil
}

// verifyViewerState sanity-checks one session's final state.
func verifyViewerState(state ViewerState, span Span, factCount int) error {
	if state.CurrentAge < span.MinAge || state.CurrentAge > span.MaxAge {
		return fmt.Errorf("current age %d outside span [%d, %d]", state.CurrentAge, span.MinAge, span.MaxAge)
	}

	wantVisible := state.CurrentAge - span.MinAge + 1
	if state.VisibleCount != wantVisible {
		return fmt.Errorf("visible count %d does not match current age %d", state.VisibleCount, state.CurrentAge)
	}

	// The tooltip never points at the current year.
	if state.TooltipAge != nil && *state.TooltipAge == state.CurrentAge {
		return fmt.Errorf("tooltip shown for the current age %d", state.CurrentAge)
	}

	for i, index := range state.RevealedIndices {
		if index < 0 || (factCount > 0 && index >= factCount) {
			return fmt.Errorf("revealed index %d outside fact list of %d", index, factCount)
		}
		if i > 0 && index <= state.RevealedIndices[i-1] {
			return fmt.Errorf("revealed indices not strictly increasing at position %d", i)
		}
	}

	return nil
}

// displayStateSummary shows aggregate statistics over the final states.
func displayStateSummary(finalStates []ViewerState, verbose bool) {
	var (
		count       int
		ageSum      int
		maxAge      int
		revealedSum int
		finished    int
	)

	for _, state := range finalStates {
		if state.CurrentAge == 0 {
			continue
		}
		count++
		ageSum += state.CurrentAge
		revealedSum += len(state.RevealedIndices)
		if state.CurrentAge > maxAge {
			maxAge = state.CurrentAge
			finished = 1
		} else if state.CurrentAge == maxAge {
			finished++
		}
	}

	if count == 0 {
		log.Println("⚠️  No session states to summarize")
		return
	}

	log.Printf("📈 %d sessions finished; deepest scroll reached age %d (%d sessions)", count, maxAge, finished)

	if verbose {
		log.Printf(`📊 Session statistics:
   Average final age: %.1f
   Average facts revealed: %.1f
`, float64(ageSum)/float64(count), float64(revealedSum)/float64(count))
	}
}
