// Package config loads process configuration from MATHSHEET_* environment
// variables. Command-line flags override these values in cmd.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every variable name.
const Prefix = "MATHSHEET_"

// Config is the engine and CLI configuration.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// DBPath overrides the default SQLite location.
	DBPath string `env:"DB"`

	// Lang selects the worksheet label catalog.
	Lang string `env:"LANG" envDefault:"en"`

	PDFLaTeX       string        `env:"PDFLATEX" envDefault:"pdflatex"`
	CompileTimeout time.Duration `env:"COMPILE_TIMEOUT" envDefault:"5s"`

	NarrateTimeout time.Duration `env:"NARRATE_TIMEOUT" envDefault:"15s"`

	// MaxAttempts bounds resampling per generated problem.
	MaxAttempts int `env:"MAX_ATTEMPTS" envDefault:"50"`

	// Tracing is enabled only when an endpoint is set.
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(nil)
}

func parse(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix, Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxAttempts < 1 {
		return Config{}, fmt.Errorf("%sMAX_ATTEMPTS must be positive, got %d", Prefix, cfg.MaxAttempts)
	}
	return cfg, nil
}

// TracingEnabled reports whether spans should be exported.
func (c Config) TracingEnabled() bool {
	return c.OTelEnabled && c.OTelEndpoint != ""
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%sLOG_LEVEL: %w", Prefix, err)
	}
	return l, nil
}

// NewLogger builds a text logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
