package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLogLevel("Error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestNewLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "WARN")

	logger.Info("hidden")
	logger.Warn("shown", "page", 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, float64(2), record["page"])
}

func TestSetupLogger_WritesSessionToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reel.log")

	logger, closeLog, err := SetupLogger(&config.LoggingConfig{File: path, Level: "INFO"})
	require.NoError(t, err)

	logger.Info("starting reel")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "starting reel", record["msg"])
	assert.NotEmpty(t, record["session"])
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandHome("~/logs/reel.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "reel.log"), got)

	got, err = expandHome("/var/log/reel.log")
	require.NoError(t, err)
	assert.Equal(t, "/var/log/reel.log", got)
}
