package calendar

import (
	"testing"
	"time"
)

func TestDaysInMonth_KnownLengths(t *testing.T) {
	cases := []struct {
		y    int
		m    time.Month
		want int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2000, time.February, 29},
		{1900, time.February, 28},
		{2025, time.January, 31},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.y, tc.m); got != tc.want {
			t.Fatalf("DaysInMonth(%d, %s)=%d, want %d", tc.y, tc.m, got, tc.want)
		}
	}
}

func TestNewGrid_AlwaysFortyTwoCellsWithEveryDay(t *testing.T) {
	for y := 1999; y <= 2031; y++ {
		for m := time.January; m <= time.December; m++ {
			g := NewGrid(Month{Year: y, Month: m})
			if len(g.Cells) != GridCells {
				t.Fatalf("%d-%02d: expected %d cells, got %d", y, m, GridCells, len(g.Cells))
			}
			if g.LeadingBlanks+g.DaysInMonth > GridCells {
				t.Fatalf("%d-%02d: leading=%d days=%d overflows grid", y, m, g.LeadingBlanks, g.DaysInMonth)
			}
			days := 0
			next := 1
			for i, c := range g.Cells {
				if c.Blank() {
					continue
				}
				days++
				if c.Day != next {
					t.Fatalf("%d-%02d: cell %d has day %d, want %d", y, m, i, c.Day, next)
				}
				next++
			}
			if days != DaysInMonth(y, m) {
				t.Fatalf("%d-%02d: %d day cells, want %d", y, m, days, DaysInMonth(y, m))
			}
			if g.Cells[g.LeadingBlanks].Day != 1 {
				t.Fatalf("%d-%02d: expected day 1 after %d blanks", y, m, g.LeadingBlanks)
			}
		}
	}
}

func TestNewGrid_SixRowMonth(t *testing.T) {
	// August 2026 starts on a Saturday and has 31 days.
	g := NewGrid(Month{Year: 2026, Month: time.August})
	if g.LeadingBlanks != 6 {
		t.Fatalf("expected 6 leading blanks, got %d", g.LeadingBlanks)
	}
	if g.Rows() != 6 {
		t.Fatalf("expected 6 rows, got %d", g.Rows())
	}
	if c := g.At(5, 1); c.Day != 31 {
		t.Fatalf("expected day 31 at row 5 col 1, got %d", c.Day)
	}
}

func TestFirstWeekday(t *testing.T) {
	// 2024-02-01 was a Thursday.
	if got := FirstWeekday(2024, time.February); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	g := NewGrid(Month{Year: 2024, Month: time.February})
	if g.Index(1) != 4 || g.Index(29) != 32 || g.Index(30) != -1 {
		t.Fatalf("unexpected indexes: 1=>%d 29=>%d 30=>%d", g.Index(1), g.Index(29), g.Index(30))
	}
}

func TestMonth_NextTwelveTimesAdvancesOneYear(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		start := Month{Year: 2025, Month: m}
		cur := start
		for i := 0; i < 12; i++ {
			cur = cur.Next()
		}
		if cur.Month != start.Month || cur.Year != start.Year+1 {
			t.Fatalf("from %v: expected %s %d, got %v", start, start.Month, start.Year+1, cur)
		}
	}
}

func TestMonth_WrapsYearBoundaries(t *testing.T) {
	dec := Month{Year: 2025, Month: time.December}
	if got := dec.Next(); got != (Month{Year: 2026, Month: time.January}) {
		t.Fatalf("Dec.Next()=%v", got)
	}
	jan := Month{Year: 2026, Month: time.January}
	if got := jan.Prev(); got != dec {
		t.Fatalf("Jan.Prev()=%v", got)
	}
	if got := jan.Add(-25); got != (Month{Year: 2023, Month: time.December}) {
		t.Fatalf("Jan.Add(-25)=%v", got)
	}
	if got := (Month{Year: 2025, Month: 14}).Normalize(); got != (Month{Year: 2026, Month: time.February}) {
		t.Fatalf("Normalize(2025-14)=%v", got)
	}
}

func TestParseClock(t *testing.T) {
	ok := map[string]Clock{
		"00:00": {0, 0},
		"09:05": {9, 5},
		"9:05":  {9, 5},
		"23:59": {23, 59},
		" 15:00 ": {15, 0},
	}
	for in, want := range ok {
		got, err := ParseClock(in)
		if err != nil || got != want {
			t.Fatalf("ParseClock(%q)=%v,%v want %v", in, got, err, want)
		}
		if in == "09:05" && got.String() != "09:05" {
			t.Fatalf("String()=%q", got.String())
		}
	}
	for _, in := range []string{"", "24:00", "12:60", "12", "12:5", "ab:cd", "12:00:00", "123:00"} {
		if _, err := ParseClock(in); err == nil {
			t.Fatalf("ParseClock(%q): expected error", in)
		}
	}
}

func TestClockWrap(t *testing.T) {
	if got := (Clock{Hour: 23, Minute: 65}).Wrap(); got != (Clock{Hour: 0, Minute: 5}) {
		t.Fatalf("got %v", got)
	}
	if got := (Clock{Hour: 0, Minute: -5}).Wrap(); got != (Clock{Hour: 23, Minute: 55}) {
		t.Fatalf("got %v", got)
	}
}

func TestCombine_KeepsDayAndSetsClock(t *testing.T) {
	loc := time.FixedZone("X", -5*3600)
	d := time.Date(2026, time.October, 15, 22, 41, 13, 0, loc)
	got := Combine(d, Clock{Hour: 15}, loc)
	want := time.Date(2026, time.October, 15, 15, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
