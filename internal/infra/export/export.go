// Package export reads and writes the exchange formats: iCalendar VTODO
// files, PDF checklists and YAML task lists.
package export

import (
	"fmt"
	"strings"

	"github.com/runoshun/duelist/internal/domain"
)

// Format is an exchange format.
type Format string

// Supported formats.
const (
	FormatICS  Format = "ics"
	FormatPDF  Format = "pdf"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. "yml" and "ical" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ics", "ical":
		return FormatICS, nil
	case "pdf":
		return FormatPDF, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownFormat, s)
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	dot := strings.LastIndex(path, ".")
	if dot < 0 {
		return "", fmt.Errorf("%w: %s has no extension", domain.ErrUnknownFormat, path)
	}
	return ParseFormat(path[dot+1:])
}
