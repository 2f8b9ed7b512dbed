// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading layers defaults, an optional YAML file, then environment.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/eden-chan/life-flies/internal/domain/reveal"
	"github.com/eden-chan/life-flies/internal/domain/timeline"
)

// Layout variant names for the rendered page.
const (
	LayoutVertical   = "vertical"
	LayoutHorizontal = "horizontal"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MinAge and MaxAge bound the rendered life span.
	MinAge int `koanf:"min_age"`
	MaxAge int `koanf:"max_age"`

	// Layout selects the strip placement: vertical (left edge) or
	// horizontal (bottom).
	Layout string `koanf:"layout"`

	// InfoBox toggles the explanatory box on the rendered page.
	InfoBox bool `koanf:"info_box"`

	// RevealThreshold is the intersection ratio that reveals a fact item.
	RevealThreshold float64 `koanf:"reveal_threshold"`

	// SessionTTLMinutes is how long an idle viewer session survives.
	SessionTTLMinutes int `koanf:"session_ttl_minutes"`

	// SweepIntervalSeconds is how often idle sessions are swept.
	SweepIntervalSeconds int `koanf:"sweep_interval_seconds"`

	// MaxSessions caps concurrent viewer sessions.
	MaxSessions int `koanf:"max_sessions"`

	// Facts overrides the built-in fact list when non-empty.
	Facts []string `koanf:"facts"`

	// LifeEvents maps ages (as string keys) to milestone labels,
	// overriding the built-in list when non-empty.
	LifeEvents map[string]string `koanf:"life_events"`
}

// New creates a Config with defaults. The age span and reveal threshold
// default to the domain constants so the page matches the model out of the
// box.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		MinAge:               timeline.DefaultMinAge,
		MaxAge:               timeline.DefaultMaxAge,
		Layout:               LayoutVertical,
		InfoBox:              true,
		RevealThreshold:      reveal.DefaultThreshold,
		SessionTTLMinutes:    30,
		SweepIntervalSeconds: 60,
		MaxSessions:          10_000,
	}
}
