package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level    string
		wantSeen []string
		wantGone []string
	}{
		{level: "debug", wantSeen: []string{"debug message", "warn message"}},
		{level: "warn", wantSeen: []string{"warn message"}, wantGone: []string{"debug message", "info message"}},
		{level: "", wantSeen: []string{"warn message"}, wantGone: []string{"info message"}},
		{level: "bogus", wantSeen: []string{"warn message"}, wantGone: []string{"info message"}},
		{level: "disabled", wantGone: []string{"warn message", "error message"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.level, Output: &buf})

			logger.Debug().Msg("debug message")
			logger.Info().Msg("info message")
			logger.Warn().Msg("warn message")
			logger.Error().Msg("error message")

			for _, s := range tt.wantSeen {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.wantGone {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestNewWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithComponent(Config{Level: "info", Output: &buf}, "profiler")

	logger.Info().Int("line", 12).Msg("hello")

	out := buf.String()
	assert.Contains(t, out, `"component":"profiler"`)
	assert.Contains(t, out, `"line":12`)
}

func TestPrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Pretty: true, Output: &buf})

	logger.Info().Msg("pretty message")

	out := buf.String()
	assert.Contains(t, out, "pretty message")
	assert.False(t, strings.HasPrefix(out, "{"), "console output should not be JSON")
}

func TestIsTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))

	f, err := os.CreateTemp(t.TempDir(), "diag")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	defer f.Close()
	assert.False(t, IsTerminal(f))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "warn", cfg.Level)
	assert.Same(t, os.Stderr, cfg.Output)
	assert.Equal(t, IsTerminal(os.Stderr), cfg.Pretty)
}
