// Package reminder periodically reports open todos that are coming due.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	applog "extras-cli/internal/log"
	"extras-cli/internal/model"
	"extras-cli/internal/todos"

	"github.com/robfig/cron/v3"
)

type Lister interface {
	ListTodos(ctx context.Context) ([]model.Todo, error)
}

// Notify receives each todo once per due date.
type Notify func(t model.Todo)

type Options struct {
	// Spec is a standard five-field cron schedule.
	Spec   string
	Window time.Duration
	Notify Notify
	Now    func() time.Time
}

type Reminder struct {
	todos  Lister
	spec   string
	window time.Duration
	notify Notify
	now    func() time.Time

	mu   sync.Mutex
	seen map[string]string // todo id -> due date already reported
	cron *cron.Cron
}

func New(l Lister, opts Options) (*Reminder, error) {
	if _, err := cron.ParseStandard(opts.Spec); err != nil {
		return nil, fmt.Errorf("reminder schedule %q: %w", opts.Spec, err)
	}
	r := &Reminder{
		todos:  l,
		spec:   opts.Spec,
		window: opts.Window,
		notify: opts.Notify,
		now:    opts.Now,
		seen:   map[string]string{},
	}
	if r.notify == nil {
		r.notify = logNotify
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r, nil
}

func logNotify(t model.Todo) {
	applog.Info("todo due soon", "id", t.ID, "title", t.Title, "due", t.DueDate, "priority", t.Priority)
}

// Scan returns the open todos due within the window that have not been
// reported for their current due date, and marks them reported. Rescheduled
// todos are reported again.
func (r *Reminder) Scan(list []model.Todo, now time.Time) []model.Todo {
	r.mu.Lock()
	defer r.mu.Unlock()

	live := make(map[string]bool, len(list))
	out := []model.Todo{}
	for _, t := range todos.DueWithin(list, now, r.window) {
		live[t.ID] = true
		if r.seen[t.ID] == t.DueDate {
			continue
		}
		r.seen[t.ID] = t.DueDate
		out = append(out, t)
	}
	for id := range r.seen {
		if !live[id] {
			delete(r.seen, id)
		}
	}
	return out
}

// RunOnce loads todos and notifies for every newly due one.
func (r *Reminder) RunOnce(ctx context.Context) (int, error) {
	list, err := r.todos.ListTodos(ctx)
	if err != nil {
		return 0, err
	}
	due := r.Scan(list, r.now())
	for _, t := range due {
		r.notify(t)
	}
	return len(due), nil
}

// Start schedules RunOnce on the cron spec. It returns immediately.
func (r *Reminder) Start(ctx context.Context) error {
	c := cron.New()
	_, err := c.AddFunc(r.spec, func() {
		n, err := r.RunOnce(ctx)
		if err != nil {
			applog.Error("reminder scan failed", err)
			return
		}
		applog.Debug("reminder scan", "notified", n)
	})
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.cron = c
	r.mu.Unlock()
	c.Start()
	applog.Info("reminders started", "schedule", r.spec, "window", r.window)
	return nil
}

// Stop halts the schedule and waits for a running scan to finish.
func (r *Reminder) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
}
