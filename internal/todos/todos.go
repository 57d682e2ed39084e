// Package todos holds the pure task-list rules shared by the CLI, the TUI and
// the HTTP API: filtering, statistics, overdue detection and recurrence.
package todos

import (
	"fmt"
	"strings"
	"time"

	"extras-cli/internal/model"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	}
	return "", &model.ValidationError{Field: "filter", Msg: fmt.Sprintf("unknown filter %q (want all, active or completed)", s)}
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	for i, x := range Filters {
		if x == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

func (f Filter) Title() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All Tasks"
	}
}

func (f Filter) Match(t model.Todo) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Apply returns the todos matching f, preserving order.
func Apply(list []model.Todo, f Filter) []model.Todo {
	out := make([]model.Todo, 0, len(list))
	for _, t := range list {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// IsOverdue reports whether an open todo's due date has passed.
func IsOverdue(t model.Todo, now time.Time) bool {
	if t.Completed {
		return false
	}
	due, ok := t.Due()
	return ok && due.Before(now)
}

func Overdue(list []model.Todo, now time.Time) []model.Todo {
	out := []model.Todo{}
	for _, t := range list {
		if IsOverdue(t, now) {
			out = append(out, t)
		}
	}
	return out
}

// DueWithin returns open todos due in [now, now+window).
func DueWithin(list []model.Todo, now time.Time, window time.Duration) []model.Todo {
	out := []model.Todo{}
	end := now.Add(window)
	for _, t := range list {
		if t.Completed {
			continue
		}
		due, ok := t.Due()
		if !ok || due.Before(now) || !due.Before(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

type Stats struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	HighPriority int `json:"highPriority"`
	Overdue      int `json:"overdue"`
}

func ComputeStats(list []model.Todo, now time.Time) Stats {
	var s Stats
	for _, t := range list {
		s.Total++
		if t.Completed {
			s.Completed++
			continue
		}
		if t.Priority == model.PriorityHigh {
			s.HighPriority++
		}
		if IsOverdue(t, now) {
			s.Overdue++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}
