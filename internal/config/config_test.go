package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := parse(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, "pdflatex", cfg.PDFLaTeX)
	assert.Equal(t, 5*time.Second, cfg.CompileTimeout)
	assert.Equal(t, 15*time.Second, cfg.NarrateTimeout)
	assert.Equal(t, 50, cfg.MaxAttempts)
	assert.Empty(t, cfg.DBPath)
	assert.False(t, cfg.TracingEnabled())
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := parse(map[string]string{
		"MATHSHEET_LANG":            "et",
		"MATHSHEET_COMPILE_TIMEOUT": "12s",
		"MATHSHEET_OTEL_ENDPOINT":   "http://localhost:4318",
		"MATHSHEET_DB":              "/tmp/x.db",
		"LANG":                      "C.UTF-8",
	})
	require.NoError(t, err)

	assert.Equal(t, "et", cfg.Lang)
	assert.Equal(t, 12*time.Second, cfg.CompileTimeout)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.True(t, cfg.TracingEnabled())
}

func TestParse_TracingDisabledExplicitly(t *testing.T) {
	cfg, err := parse(map[string]string{
		"MATHSHEET_OTEL_ENDPOINT": "http://localhost:4318",
		"MATHSHEET_OTEL_ENABLED":  "false",
	})
	require.NoError(t, err)
	assert.False(t, cfg.TracingEnabled())
}

func TestParse_Errors(t *testing.T) {
	_, err := parse(map[string]string{"MATHSHEET_COMPILE_TIMEOUT": "forever"})
	assert.Error(t, err)

	_, err = parse(map[string]string{"MATHSHEET_MAX_ATTEMPTS": "0"})
	assert.ErrorContains(t, err, "MAX_ATTEMPTS")
}

func TestLoad_ReadsProcessEnv(t *testing.T) {
	t.Setenv("MATHSHEET_LOG_LEVEL", "debug")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Config{LogLevel: "warn"}.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "family", "linear-equation")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "family=linear-equation"), out)

	level, err := Config{LogLevel: " DEBUG "}.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = Config{LogLevel: "loud"}.NewLogger(&buf)
	assert.Error(t, err)
}
