package export

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"github.com/runoshun/duelist/internal/domain"
)

// ProductID identifies duelist in generated calendars.
const ProductID = "-//duelist//tasks//EN"

const (
	statusCompleted   = "COMPLETED"
	statusNeedsAction = "NEEDS-ACTION"
)

// WriteICS writes tasks as VTODO components. stamp is used for DTSTAMP.
func WriteICS(w io.Writer, tasks []domain.Task, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	for _, t := range tasks {
		todo := ical.NewComponent(ical.CompToDo)
		todo.Props.SetText(ical.PropUID, t.ID)
		todo.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		todo.Props.SetText(ical.PropSummary, t.Text)
		todo.Props.SetDateTime(ical.PropDue, t.DueAt.UTC())
		if t.Completed {
			todo.Props.SetText(ical.PropStatus, statusCompleted)
		} else {
			todo.Props.SetText(ical.PropStatus, statusNeedsAction)
		}
		cal.Children = append(cal.Children, todo)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

// ReadICS reads the VTODO components of every calendar in r.
// Components without a summary are skipped; a missing DUE leaves Due empty.
func ReadICS(r io.Reader, loc *time.Location) ([]domain.TaskDraft, error) {
	dec := ical.NewDecoder(r)

	var drafts []domain.TaskDraft
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompToDo {
				continue
			}
			draft, ok, err := todoDraft(comp, loc)
			if err != nil {
				return nil, err
			}
			if ok {
				drafts = append(drafts, draft)
			}
		}
	}
	return drafts, nil
}

func todoDraft(comp *ical.Component, loc *time.Location) (domain.TaskDraft, bool, error) {
	summary, err := comp.Props.Text(ical.PropSummary)
	if err != nil {
		return domain.TaskDraft{}, false, fmt.Errorf("read summary: %w", err)
	}
	if summary == "" {
		return domain.TaskDraft{}, false, nil
	}

	draft := domain.TaskDraft{Text: summary}
	if prop := comp.Props.Get(ical.PropDue); prop != nil {
		due, err := prop.DateTime(loc)
		if err != nil {
			return domain.TaskDraft{}, false, fmt.Errorf("read due of %q: %w", summary, err)
		}
		draft.Due = due.Format(time.RFC3339)
	}
	if prop := comp.Props.Get(ical.PropStatus); prop != nil && prop.Value == statusCompleted {
		draft.Completed = true
	}
	return draft, true, nil
}
