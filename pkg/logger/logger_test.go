package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alexiusacademia/gopyramid/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_JSON checks that fields and accumulated context reach the output.
func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(logger.Config{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)

	log.With("run_id", "abc").Named("sweep").Info("Sweep finished", "evaluated", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "sweep", entry["logger"])
	assert.Equal(t, "Sweep finished", entry["msg"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.Equal(t, 3.0, entry["evaluated"])
}

// TestNew_LevelFilter drops entries below the configured level.
func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := logger.MustNew(logger.Config{Level: "warn", Format: "console", Output: &buf})

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.True(t, strings.Contains(buf.String(), "shown"))
}

// TestNew_Development adds stack traces to warnings only in development mode.
func TestNew_Development(t *testing.T) {
	for _, dev := range []bool{false, true} {
		var buf bytes.Buffer
		log := logger.MustNew(logger.Config{Level: "debug", Format: "json", Development: dev, Output: &buf})
		log.Warn("careful")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		_, hasStack := entry["stacktrace"]
		assert.Equal(t, dev, hasStack, "development=%v", dev)
	}
}

// TestNew_BadLevel rejects unknown levels.
func TestNew_BadLevel(t *testing.T) {
	_, err := logger.New(logger.Config{Level: "loud"})
	assert.Error(t, err)
}

// TestGlobal swaps the global logger.
func TestGlobal(t *testing.T) {
	prev := logger.Global()
	defer logger.SetGlobal(prev)

	nop := logger.Nop()
	logger.SetGlobal(nop)
	assert.Same(t, nop, logger.Global())
}
