// Package logging builds the slog logger used across duelist.
// Records are rendered by charmbracelet/log, either to stderr for CLI
// commands or to an append-only file while the TUI owns the terminal.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Format names accepted by ParseFormat.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// Options configures a logger.
// Fields are ordered to minimize memory padding.
type Options struct {
	Writer io.Writer // Destination when Path is empty (default os.Stderr)
	Path   string    // Log file path; takes precedence over Writer
	Level  string    // debug, info, warn, error
	Format string    // text, json, logfmt
}

// Logger is a slog.Logger plus the file it may own.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New creates a logger from opts.
func New(opts Options) (*Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	var file *os.File
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o750); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		file, w = f, f
	}

	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormat(opts.Format),
		ReportTimestamp: file != nil,
		Prefix:          "duelist",
	})

	return &Logger{Logger: slog.New(handler), file: file}, nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// ParseLevel parses a log level string. Unknown values mean info.
func ParseLevel(levelStr string) charmlog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return charmlog.DebugLevel
	case "warn", "warning":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// ParseFormat parses a formatter name. Unknown values mean text.
func ParseFormat(format string) charmlog.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return charmlog.JSONFormatter
	case FormatLogfmt:
		return charmlog.LogfmtFormatter
	default:
		return charmlog.TextFormatter
	}
}

// ValidLevel reports whether levelStr names a level ParseLevel understands.
func ValidLevel(levelStr string) bool {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// ValidFormat reports whether format names a formatter ParseFormat understands.
func ValidFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText, FormatJSON, FormatLogfmt:
		return true
	}
	return false
}
