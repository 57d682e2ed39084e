// Package calendar holds the month arithmetic behind the date picker: month
// navigation, day counts and the fixed 6x7 day grid.
package calendar

import (
	"fmt"
	"time"
)

const (
	GridRows  = 6
	GridCols  = 7
	GridCells = GridRows * GridCols
)

// Month identifies a calendar month independent of any day or time.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Normalize folds out-of-range months into the neighbouring years.
func (m Month) Normalize() Month {
	mo := int(m.Month) - 1
	y := m.Year + mo/12
	mo %= 12
	if mo < 0 {
		mo += 12
		y--
	}
	return Month{Year: y, Month: time.Month(mo + 1)}
}

func (m Month) Add(n int) Month {
	return Month{Year: m.Year, Month: m.Month + time.Month(n)}.Normalize()
}

func (m Month) Next() Month { return m.Add(1) }

func (m Month) Prev() Month { return m.Add(-1) }

func (m Month) Days() int { return DaysInMonth(m.Year, m.Month) }

// Date returns midnight of the given day of the month in loc.
func (m Month) Date(day int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, loc)
}

func (m Month) String() string {
	return fmt.Sprintf("%s %d", m.Month.String(), m.Year)
}

func DaysInMonth(y int, m time.Month) int {
	// Day 0 of next month is last day of this month.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday is the weekday index (0=Sunday) of the 1st of the month.
func FirstWeekday(y int, m time.Month) int {
	return int(time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

func ClampDay(y int, m time.Month, d int) int {
	if d < 1 {
		return 1
	}
	max := DaysInMonth(y, m)
	if d > max {
		return max
	}
	return d
}

// Cell is one slot of the month grid. Day is 0 for blank cells.
type Cell struct {
	Day int
}

func (c Cell) Blank() bool { return c.Day == 0 }

// Grid is the fixed 42-cell layout of a month: leading blanks, the days of the
// month, then trailing blanks.
type Grid struct {
	Month         Month
	LeadingBlanks int
	DaysInMonth   int
	Cells         [GridCells]Cell
}

func NewGrid(m Month) Grid {
	m = m.Normalize()
	g := Grid{
		Month:         m,
		LeadingBlanks: FirstWeekday(m.Year, m.Month),
		DaysInMonth:   DaysInMonth(m.Year, m.Month),
	}
	// At most 6 leading blanks + 31 days, so every day fits in 42 cells.
	for d := 1; d <= g.DaysInMonth; d++ {
		g.Cells[g.LeadingBlanks+d-1] = Cell{Day: d}
	}
	return g
}

// Index returns the cell index holding day, or -1 if day is outside the month.
func (g Grid) Index(day int) int {
	if day < 1 || day > g.DaysInMonth {
		return -1
	}
	return g.LeadingBlanks + day - 1
}

// At returns the cell at row/col; out-of-range positions are blank.
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= GridRows || col < 0 || col >= GridCols {
		return Cell{}
	}
	return g.Cells[row*GridCols+col]
}

// Rows returns the number of rows that actually contain days (4..6).
func (g Grid) Rows() int {
	n := g.LeadingBlanks + g.DaysInMonth
	return (n + GridCols - 1) / GridCols
}
