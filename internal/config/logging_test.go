package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFansOutToBothOutputs(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("listing published", "name", "Mario's Pizza", "score", 90)

	// Human-readable text on stderr.
	assert.Contains(t, stderr.String(), "listing published")
	assert.Contains(t, stderr.String(), "Mario's Pizza")

	// Structured JSON in the file stream.
	var entry map[string]any
	require.NoError(t, json.Unmarshal(file.Bytes(), &entry))
	assert.Equal(t, "listing published", entry["msg"])
	assert.Equal(t, "Mario's Pizza", entry["name"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelWarn)

	logger.Debug("chat read ended")
	logger.Info("server listening")

	assert.Empty(t, stderr.String())
	assert.Empty(t, file.String())

	logger.Warn("slow request")
	assert.Contains(t, stderr.String(), "slow request")
	assert.Contains(t, file.String(), "slow request")
}
