package picker

import (
	"fmt"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/selection"
)

const (
	DaysInWeek = 7
	TotalCells = 35
)

type Cell struct {
	Day  int           `json:"day"`
	Date calendar.Date `json:"date"`

	IsCurrentMonth bool `json:"isCurrentMonth"`
	IsPrevMonth    bool `json:"isPrevMonth"`
	IsNextMonth    bool `json:"isNextMonth"`
	IsToday        bool `json:"isToday"`
	IsDisabled     bool `json:"isDisabled"`
	IsSelected     bool `json:"isSelected"`
	IsInRange      bool `json:"isInRange"`
	IsRangeStart   bool `json:"isRangeStart"`
	IsRangeEnd     bool `json:"isRangeEnd"`
}

type Grid struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Leap  bool   `json:"leap,omitempty"`
	Cells []Cell `json:"cells"`
}

// Weeks chunks the cells into rows of DaysInWeek.
func (g Grid) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, len(g.Cells)/DaysInWeek)
	for i := 0; i < len(g.Cells); i += DaysInWeek {
		weeks = append(weeks, g.Cells[i:min(i+DaysInWeek, len(g.Cells))])
	}
	return weeks
}

// BuildGrid lays out the month starting on Saturday. Leading cells come from the previous
// month, trailing cells from the next one, up to at least TotalCells and always whole
// weeks. sel and cons may be nil.
func BuildGrid(cal calendar.Calendar, year, month int, leap bool, sel selection.Strategy, cons *Constraints) (Grid, error) {
	first := calendar.Date{Year: year, Month: month, Day: 1, Leap: leap}

	dim, err := calendar.MonthLength(cal, year, month, leap)
	if err != nil {
		return Grid{}, err
	}
	t0, err := cal.ToTime(first)
	if err != nil {
		return Grid{}, err
	}
	lead := int(calendar.WeekdayOf(t0))

	weeks := (lead + dim + DaysInWeek - 1) / DaysInWeek
	total := max(TotalCells, weeks*DaysInWeek)

	today, err := cal.Today()
	hasToday := err == nil

	cells := make([]Cell, 0, total)
	for i := 0; i < total; i++ {
		c := Cell{
			IsCurrentMonth: i >= lead && i < lead+dim,
			IsPrevMonth:    i < lead,
			IsNextMonth:    i >= lead+dim,
		}

		d, err := cal.FromTime(t0.AddDate(0, 0, i-lead))
		if err != nil {
			if c.IsCurrentMonth {
				return Grid{}, fmt.Errorf("cell %d of %d-%02d: %w", i, year, month, err)
			}
			// Padding beyond the supported range of the calendar.
			c.IsDisabled = true
			cells = append(cells, c)
			continue
		}

		c.Day, c.Date = d.Day, d
		c.IsToday = hasToday && calendar.Same(d, today)
		if cons != nil {
			c.IsDisabled = cons.IsDisabled(&d)
		}
		if sel != nil {
			c.IsSelected = sel.IsSelected(d)
			c.IsInRange = sel.IsInRange(d)
			c.IsRangeStart = sel.IsRangeStart(d)
			c.IsRangeEnd = sel.IsRangeEnd(d)
		}
		cells = append(cells, c)
	}

	return Grid{Year: year, Month: month, Leap: leap, Cells: cells}, nil
}
