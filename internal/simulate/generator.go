package simulate

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/eden-chan/life-flies/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	actionTypeDivisor  = 10
)

// Constants for the interaction mix. A scripted viewer mostly scrolls
// downward; now and then it pauses to hover a segment or a fact item
// drifts into view.
const (
	caseHoverSegment = 7
	caseHoverCurrent = 8
	caseRevealFact   = 9

	scrollStepMax     = 0.08
	revealRatioMin    = 0.1
	revealRatioRange  = 0.9
	simulatedFactRows = 8
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, max) using crypto/rand.
func getRandomInt(max int64) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(max))
	return int(n.Int64())
}

// generateScripts creates one interaction script per session. Session IDs
// are assigned later, once the sessions exist.
func generateScripts(ctx context.Context, config *Config, span Span, stats *Stats) ([][]Event, error) {
	logger.Get().Info(ctx, "generating session scripts",
		logger.Int("numSessions", config.NumSessions),
		logger.Int("eventsPerSession", config.EventsPerSession))

	scripts := make([][]Event, config.NumSessions)

	type scriptResult struct {
		index  int
		script []Event
		err    error
	}

	resultChan := make(chan scriptResult, config.NumSessions)

	// Use worker pool for script generation
	workerCount := minInt(config.Workers, config.NumSessions)
	sessionsPerWorker := config.NumSessions / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * sessionsPerWorker
		end := start + sessionsPerWorker
		if worker == workerCount-1 {
			end = config.NumSessions // Last worker gets remaining sessions
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- scriptResult{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- scriptResult{index: i, script: generateSessionScript(config.EventsPerSession, span)}
				}
			}
		}(start, end)
	}

	// Collect results
	total := 0
	for i := 0; i < config.NumSessions; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during script generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate script %d: %w", result.index, result.err)
			}
			scripts[result.index] = result.script
			total += len(result.script)
		}
	}

	stats.EventsGenerated = total
	logger.Get().Info(ctx, "generated scripts successfully",
		logger.Int("sessions", len(scripts)),
		logger.Int("events", total))

	return scripts, nil
}

// generateSessionScript builds one viewer's interaction sequence: a
// downward scroll walk with hover episodes and fact reveals mixed in.
func generateSessionScript(numEvents int, span Span) []Event {
	script := make([]Event, 0, numEvents)
	fraction := 0.0
	currentAge := span.MinAge
	hovering := false

	for len(script) < numEvents {
		switch getRandomInt(actionTypeDivisor) {
		case caseHoverSegment:
			// Hover a random year at or below the scroll position,
			// then move off it.
			age := span.MinAge
			if currentAge > span.MinAge {
				age += getRandomInt(int64(currentAge - span.MinAge + 1))
			}
			script = append(script, Event{Kind: "hover", Age: age})
			hovering = true
		case caseHoverCurrent:
			// Hover the current year; the tooltip stays hidden for it.
			script = append(script, Event{Kind: "hover", Age: currentAge})
			hovering = true
		case caseRevealFact:
			script = append(script, Event{
				Kind:  "reveal",
				Index: getRandomInt(simulatedFactRows),
				Ratio: revealRatioMin + getRandomFloat()*revealRatioRange,
			})
		default:
			// Scroll downward a little. Leave any hover first, the way
			// a pointer loses its target when the page moves.
			if hovering {
				script = append(script, Event{Kind: "unhover"})
				hovering = false
				continue
			}
			fraction += getRandomFloat() * scrollStepMax
			if fraction > 1.0 {
				fraction = 1.0
			}
			script = append(script, Event{Kind: "scroll", Fraction: fraction})
			currentAge = ageForFraction(fraction, span)
		}
	}

	return script[:numEvents]
}

// ageForFraction mirrors the service's fraction-to-age mapping so the
// generator can track where its scripted viewer is on the page.
func ageForFraction(fraction float64, span Span) int {
	age := int(fraction * float64(span.MaxAge))
	if age < span.MinAge {
		return span.MinAge
	}
	if age > span.MaxAge {
		return span.MaxAge
	}
	return age
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
