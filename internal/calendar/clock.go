package calendar

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidClock = errors.New("invalid time (expected HH:MM, 24h)")

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

var DefaultClock = Clock{Hour: 12}

func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseClock parses "HH:MM" (24h). "9:05" is accepted; seconds are not.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || hh == "" || len(mm) != 2 || len(hh) > 2 {
		return Clock{}, ErrInvalidClock
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return Clock{}, ErrInvalidClock
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return Clock{}, ErrInvalidClock
	}
	return Clock{Hour: h, Minute: m}, nil
}

func (c Clock) String() string {
	return fmt2(c.Hour) + ":" + fmt2(c.Minute)
}

// Wrap folds overflowing minutes into hours and hours into a single day.
func (c Clock) Wrap() Clock {
	total := (c.Hour*60 + c.Minute) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return Clock{Hour: total / 60, Minute: total % 60}
}

// Combine places clock on the calendar day of date, in loc.
func Combine(date time.Time, c Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	date = date.In(loc)
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, loc)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func fmt2(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 99 {
		n = 99
	}
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
