// Package duedate turns the due expressions typed on the command line or in
// the TUI into points in time.
//
// Recognized forms, each optionally followed by a HH:MM time of day:
//
//	now
//	today
//	tomorrow
//	in N day(s)|week(s)|month(s)|year(s)
//
// Anything else is handed to dateparse in now's location. Results are
// truncated to the minute.
package duedate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/runoshun/duelist/internal/domain"
)

// Parse resolves expr relative to now. An empty expression means now.
func Parse(expr string, now time.Time) (time.Time, error) {
	fields := strings.Fields(strings.ToLower(expr))
	if len(fields) == 0 {
		return now.Truncate(time.Minute), nil
	}

	day, rest, ok, err := relativeDay(fields, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", domain.ErrInvalidDue, expr, err)
	}
	if !ok {
		t, err := dateparse.ParseIn(strings.TrimSpace(expr), now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDue, expr)
		}
		return t.Truncate(time.Minute), nil
	}

	switch len(rest) {
	case 0:
		return day.Truncate(time.Minute), nil
	case 1:
		hour, minute, err := clock(rest[0])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q: %w", domain.ErrInvalidDue, expr, err)
		}
		y, m, d := day.Date()
		return time.Date(y, m, d, hour, minute, 0, 0, day.Location()), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q: unexpected %q", domain.ErrInvalidDue, expr, strings.Join(rest, " "))
	}
}

// relativeDay matches the keyword forms. It returns the shifted time and the
// fields left over. ok is false when fields do not start with a keyword.
func relativeDay(fields []string, now time.Time) (day time.Time, rest []string, ok bool, err error) {
	switch fields[0] {
	case "now", "today":
		return now, fields[1:], true, nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), fields[1:], true, nil
	case "in":
		if len(fields) < 3 {
			return time.Time{}, nil, true, fmt.Errorf("want \"in N unit\"")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 {
			return time.Time{}, nil, true, fmt.Errorf("bad count %q", fields[1])
		}
		switch fields[2] {
		case "day", "days":
			day = now.AddDate(0, 0, n)
		case "week", "weeks":
			day = now.AddDate(0, 0, n*7)
		case "month", "months":
			day = now.AddDate(0, n, 0)
		case "year", "years":
			day = now.AddDate(n, 0, 0)
		default:
			return time.Time{}, nil, true, fmt.Errorf("unknown unit %q", fields[2])
		}
		return day, fields[3:], true, nil
	}
	return time.Time{}, nil, false, nil
}

// clock parses HH:MM.
func clock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("bad time of day %q", s)
	}
	return t.Hour(), t.Minute(), nil
}
