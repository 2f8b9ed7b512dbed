package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if LIFEFLIES_CONFIG is set
//  3. env (prefix LIFEFLIES_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("LIFEFLIES_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: LIFEFLIES_ADDR, LIFEFLIES_MAX_AGE, ...
	// Map env keys like LIFEFLIES_MAX_AGE -> max_age (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("LIFEFLIES_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "lifeflies_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the domain cannot clamp its way out of.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MinAge < 1:
		return fmt.Errorf("%w: min_age must be at least 1", ErrInvalidConfig)
	case c.MinAge > c.MaxAge:
		return fmt.Errorf("%w: min_age %d exceeds max_age %d", ErrInvalidConfig, c.MinAge, c.MaxAge)
	case c.Layout != LayoutVertical && c.Layout != LayoutHorizontal:
		return fmt.Errorf("%w: layout must be %q or %q", ErrInvalidConfig, LayoutVertical, LayoutHorizontal)
	case c.RevealThreshold <= 0 || c.RevealThreshold > 1:
		return fmt.Errorf("%w: reveal_threshold must be within (0, 1]", ErrInvalidConfig)
	case c.SessionTTLMinutes < 1:
		return fmt.Errorf("%w: session_ttl_minutes must be positive", ErrInvalidConfig)
	case c.SweepIntervalSeconds < 1:
		return fmt.Errorf("%w: sweep_interval_seconds must be positive", ErrInvalidConfig)
	case c.MaxSessions < 1:
		return fmt.Errorf("%w: max_sessions must be positive", ErrInvalidConfig)
	}
	return nil
}
