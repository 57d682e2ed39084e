package todos

import (
	"fmt"
	"strings"
	"time"

	"extras-cli/internal/model"

	"github.com/teambition/rrule-go"
)

// NormalizeRepeat trims an optional "RRULE:" prefix and checks the rule parses.
func NormalizeRepeat(s string) (string, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "RRULE:"), "rrule:")
	if s == "" {
		return "", nil
	}
	if _, err := rrule.StrToRRule(s); err != nil {
		return "", &model.ValidationError{Field: "repeat", Msg: fmt.Sprintf("invalid rule %q: %v", s, err)}
	}
	return s, nil
}

// NextDue returns the first occurrence of t.Repeat strictly after both the
// current due date and now. The series is anchored on the due date (or now,
// when unset). ok is false when t does not repeat or the rule is exhausted.
func NextDue(t model.Todo, now time.Time) (next time.Time, ok bool) {
	if strings.TrimSpace(t.Repeat) == "" {
		return time.Time{}, false
	}
	r, err := rrule.StrToRRule(t.Repeat)
	if err != nil {
		return time.Time{}, false
	}
	now = now.UTC().Truncate(time.Minute)
	anchor, hasDue := t.Due()
	if !hasDue {
		anchor = now
	}
	r.DTStart(anchor.UTC())

	after := anchor
	if now.After(after) {
		after = now
	}
	next = r.After(after, false)
	if next.IsZero() {
		return time.Time{}, false
	}
	return next.UTC(), true
}

// CompletionPatch is the update that marks t done. A repeating todo with a
// further occurrence is instead kept open and moved to its next due date.
func CompletionPatch(t model.Todo, now time.Time) model.TodoPatch {
	if next, ok := NextDue(t, now); ok {
		open := false
		due := next.Format(time.RFC3339)
		return model.TodoPatch{Completed: &open, DueDate: &due}
	}
	done := true
	return model.TodoPatch{Completed: &done}
}

// TogglePatch flips completion, honoring recurrence when completing.
func TogglePatch(t model.Todo, now time.Time) model.TodoPatch {
	if t.Completed {
		open := false
		return model.TodoPatch{Completed: &open}
	}
	return CompletionPatch(t, now)
}
