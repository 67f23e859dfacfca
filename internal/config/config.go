// Package config reads runtime settings from the environment.
//
// All settings are optional. Unset variables fall back to defaults; set but
// malformed variables are reported as errors rather than silently ignored.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvLogLevel      = "NERINE_LOG_LEVEL"
	EnvSeed          = "NERINE_SEED"
	EnvDominantCount = "NERINE_DOMINANT_COUNT"
	EnvLoupeRadius   = "NERINE_LOUPE_RADIUS"
)

// Defaults applied when a variable is unset.
const (
	DefaultDominantCount = 5
	DefaultLoupeRadius   = 8
)

// MaxLoupeRadius bounds the loupe radius so a magnified view stays small.
const MaxLoupeRadius = 64

// Config holds the server settings.
type Config struct {
	// LogLevel is the minimum level written to the log.
	LogLevel slog.Level

	// Seed fixes the random sampler when HasSeed is true, making
	// image_sample_random reproducible across runs.
	Seed    uint64
	HasSeed bool

	// DominantCount is the palette size used when a request omits count.
	DominantCount int

	// LoupeRadius is the loupe radius used when a request omits radius.
	LoupeRadius int
}

// Default returns the configuration used when no variables are set.
func Default() *Config {
	return &Config{
		LogLevel:      slog.LevelInfo,
		DominantCount: DefaultDominantCount,
		LoupeRadius:   DefaultLoupeRadius,
	}
}

// Load builds a Config from getenv, usually os.Getenv.
func Load(getenv func(string) string) (*Config, error) {
	cfg := Default()

	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}

	if v := strings.TrimSpace(getenv(EnvSeed)); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed, cfg.HasSeed = seed, true
	}

	var err error
	if cfg.DominantCount, err = boundedInt(getenv, EnvDominantCount, DefaultDominantCount, 1, math.MaxInt); err != nil {
		return nil, err
	}
	if cfg.LoupeRadius, err = boundedInt(getenv, EnvLoupeRadius, DefaultLoupeRadius, 0, MaxLoupeRadius); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewLogger returns a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: c.LogLevel,
	}))
}

func boundedInt(getenv func(string) string, name string, def, min, max int) (int, error) {
	v := strings.TrimSpace(getenv(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if n < min {
		return 0, fmt.Errorf("%s: must be >= %d, got %d", name, min, n)
	}
	if n > max {
		return 0, fmt.Errorf("%s: must be <= %d, got %d", name, max, n)
	}
	return n, nil
}
