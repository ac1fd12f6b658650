package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected charmlog.Level
	}{
		{"debug", charmlog.DebugLevel},
		{"info", charmlog.InfoLevel},
		{"warn", charmlog.WarnLevel},
		{"WARNING", charmlog.WarnLevel},
		{"error", charmlog.ErrorLevel},
		{"unknown", charmlog.InfoLevel}, // default
		{"", charmlog.InfoLevel},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, charmlog.JSONFormatter, ParseFormat("json"))
	assert.Equal(t, charmlog.LogfmtFormatter, ParseFormat("logfmt"))
	assert.Equal(t, charmlog.TextFormatter, ParseFormat("text"))
	assert.Equal(t, charmlog.TextFormatter, ParseFormat("xml"))
}

func TestValid(t *testing.T) {
	assert.True(t, ValidLevel("debug"))
	assert.False(t, ValidLevel("loud"))
	assert.True(t, ValidFormat("logfmt"))
	assert.False(t, ValidFormat("xml"))
}

func TestNew_Writer(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Level: "info"})
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	logger.Info("task added", "id", "abc")
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "task added")
	assert.Contains(t, out, "id=abc")
	assert.NotContains(t, out, "hidden")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Level: "debug", Format: "json"})
	require.NoError(t, err)

	logger.Error("save tasks", "key", "todos")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "save tasks", entry["msg"])
	assert.Equal(t, "todos", entry["key"])
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "duelist.log")

	logger, err := New(Options{Path: path, Level: "warn"})
	require.NoError(t, err)
	logger.Warn("first")
	logger.Info("skipped")
	require.NoError(t, logger.Close())

	// Appends across instances
	logger, err = New(Options{Path: path, Level: "warn"})
	require.NoError(t, err)
	logger.Error("second")
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "first")
	assert.Contains(t, string(content), "second")
	assert.NotContains(t, string(content), "skipped")
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(string(content)), "\n")+1)
}

func TestLogger_CloseWithoutFile(t *testing.T) {
	logger, err := New(Options{Writer: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}
