// Package ical converts todos to and from iCalendar feeds. Each todo with a
// due date becomes a VEVENT starting at the due instant.
package ical

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"extras-cli/internal/model"

	ics "github.com/arran4/golang-ical"
)

const (
	productID = "-//extras//todos//EN"
	uidSuffix = "@extras"

	// EventLength is the duration given to exported events.
	EventLength = 30 * time.Minute
)

type ExportOptions struct {
	IncludeCompleted bool
	// Now stamps DTSTAMP. Defaults to time.Now.
	Now func() time.Time
}

// UID is the iCalendar UID for a todo id.
func UID(todoID string) string { return todoID + uidSuffix }

// TodoID recovers the todo id from a UID minted by UID, or "".
func TodoID(uid string) string {
	if id, ok := strings.CutSuffix(uid, uidSuffix); ok {
		return id
	}
	return ""
}

// Export writes todos that have a due date as a VCALENDAR.
func Export(w io.Writer, todos []model.Todo, opts ExportOptions) error {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName("Todos")

	for _, t := range todos {
		if t.Completed && !opts.IncludeCompleted {
			continue
		}
		due, ok := t.Due()
		if !ok {
			continue
		}
		ev := cal.AddEvent(UID(t.ID))
		ev.SetDtStampTime(now().UTC())
		ev.SetCreatedTime(t.CreatedAt.UTC())
		ev.SetModifiedAt(t.UpdatedAt.UTC())
		ev.SetStartAt(due.UTC())
		ev.SetEndAt(due.UTC().Add(EventLength))
		ev.SetSummary(t.Title)
		if t.Description != "" {
			ev.SetDescription(t.Description)
		}
		ev.SetProperty(ics.ComponentPropertyPriority, strconv.Itoa(priorityNumber(t.Priority)))
		if t.Completed {
			ev.SetProperty(ics.ComponentPropertyStatus, "CANCELLED")
		} else {
			ev.SetProperty(ics.ComponentPropertyStatus, "CONFIRMED")
		}
		if t.Repeat != "" {
			ev.SetProperty(ics.ComponentPropertyRrule, t.Repeat)
		}
	}
	return cal.SerializeTo(w)
}

// ExportString is Export into a string.
func ExportString(todos []model.Todo, opts ExportOptions) (string, error) {
	var buf bytes.Buffer
	if err := Export(&buf, todos, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Imported is one event read back as a todo. SourceID is set when the event
// was exported from a todo.
type Imported struct {
	UID      string
	SourceID string
	Todo     model.Todo
}

// Import parses VEVENTs into todos. Events without a summary or start are
// skipped; the second return value counts them.
func Import(r io.Reader) ([]Imported, int, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, 0, fmt.Errorf("parse calendar: %w", err)
	}
	out := []Imported{}
	skipped := 0
	for _, ve := range cal.Events() {
		it, err := importEvent(ve)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, it)
	}
	return out, skipped, nil
}

func importEvent(ve *ics.VEvent) (Imported, error) {
	var it Imported
	if p := ve.GetProperty(ics.ComponentPropertyUniqueId); p != nil {
		it.UID = p.Value
		it.SourceID = TodoID(p.Value)
	}
	p := ve.GetProperty(ics.ComponentPropertySummary)
	if p == nil || strings.TrimSpace(p.Value) == "" {
		return it, errors.New("missing SUMMARY")
	}
	it.Todo.Title = strings.TrimSpace(p.Value)
	if d := ve.GetProperty(ics.ComponentPropertyDescription); d != nil {
		it.Todo.Description = d.Value
	}
	start, err := ve.GetStartAt()
	if err != nil {
		return it, fmt.Errorf("DTSTART: %w", err)
	}
	it.Todo.DueDate = start.UTC().Truncate(time.Minute).Format(time.RFC3339)
	it.Todo.Priority = model.PriorityMedium
	if pr := ve.GetProperty(ics.ComponentPropertyPriority); pr != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(pr.Value)); err == nil {
			it.Todo.Priority = priorityFromNumber(n)
		}
	}
	if rr := ve.GetProperty(ics.ComponentPropertyRrule); rr != nil {
		it.Todo.Repeat = rr.Value
	}
	if st := ve.GetProperty(ics.ComponentPropertyStatus); st != nil && strings.EqualFold(st.Value, "CANCELLED") {
		it.Todo.Completed = true
	}
	return it, nil
}

// priorityNumber maps to RFC 5545 PRIORITY (1 highest, 9 lowest).
func priorityNumber(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return 1
	case model.PriorityLow:
		return 9
	default:
		return 5
	}
}

func priorityFromNumber(n int) model.Priority {
	switch {
	case n >= 1 && n <= 4:
		return model.PriorityHigh
	case n >= 6 && n <= 9:
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}
