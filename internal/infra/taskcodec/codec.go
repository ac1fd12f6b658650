// Package taskcodec serializes the task collection stored in the key-value store.
//
// The stored value is a JSON array of records:
//
//	[{"id":"…","task":"Buy milk","dateTime":"2020-01-01T10:00:00.000Z","completed":false}]
//
// dateTime is an ISO-8601 timestamp in UTC with millisecond precision.
package taskcodec

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/runoshun/duelist/internal/domain"
)

// TimeLayout is the layout of the dateTime field.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

//go:embed schema.json
var schemaSource string

var schema = jsonschema.MustCompileString("duelist-tasks.schema.json", schemaSource)

// record is the stored representation of a task.
type record struct {
	ID        string `json:"id"`
	Task      string `json:"task"`
	DateTime  string `json:"dateTime"`
	Completed bool   `json:"completed"`
}

// Encode serializes tasks. A nil slice encodes as an empty array.
func Encode(tasks []domain.Task) (string, error) {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, record{
			ID:        t.ID,
			Task:      t.Text,
			DateTime:  FormatTime(t.DueAt),
			Completed: t.Completed,
		})
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshal tasks: %w", err)
	}
	return string(b), nil
}

// Decode parses a stored value. A blank value decodes to an empty collection.
func Decode(value string) ([]domain.Task, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	var raw any
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedStorage, err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrMalformedStorage, schemaMessage(err))
	}

	var records []record
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedStorage, err)
	}

	tasks := make([]domain.Task, 0, len(records))
	for i, r := range records {
		due, err := ParseTime(r.DateTime)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", domain.ErrMalformedStorage, i, err)
		}
		tasks = append(tasks, domain.Task{
			ID:        r.ID,
			Text:      r.Task,
			DueAt:     due,
			Completed: r.Completed,
		})
	}
	return tasks, nil
}

// FormatTime renders t the way it is stored.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a stored dateTime. RFC 3339 is tried first; anything else
// (timestamps written by older builds or edited by hand) goes through dateparse.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse dateTime %q: %w", s, err)
	}
	return t.UTC(), nil
}

// schemaMessage returns the innermost validation message.
func schemaMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return ve.Message
	}
	return ve.InstanceLocation + ": " + ve.Message
}
