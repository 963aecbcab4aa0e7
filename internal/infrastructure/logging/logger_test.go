package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"loan-offer-service/internal/config"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, expected := range tests {
		assert.Equal(t, expected, parseLevel(input), input)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := newLogger(config.LoggerConfig{Level: "warn", Encoding: "json"}, buf)

	logger.Info("dropped")
	logger.WarnContext(context.Background(), "Loan offer file not found", "bank", "BNP")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "Loan offer file not found", entry["msg"])
	assert.Equal(t, "BNP", entry["bank"])
}

func TestNewLoggerText(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := newLogger(config.LoggerConfig{Level: "info", Encoding: "text"}, buf)

	logger.Info("Application starting...")

	assert.Contains(t, buf.String(), `msg="Application starting..."`)
}

func TestNewLoggerSetsDefault(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	logger := NewLogger(config.LoggerConfig{Level: "error"})

	assert.Same(t, logger, slog.Default())
}
