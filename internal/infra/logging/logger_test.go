package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := New(dir, slog.LevelInfo)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	logger.Info("planned release", "package", "api", "version", "1.1.0")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "planned release")
	assert.Contains(t, string(data), "package=api")
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := New(dir, slog.LevelInfo)
	require.NoError(t, err)

	logger.Debug("noisy detail")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "noisy detail")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("unknown"))
}

func TestDiscard_Close(t *testing.T) {
	logger := Discard()

	logger.Info("goes nowhere")

	assert.NoError(t, logger.Close())
}
