package picker

import (
	"testing"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countCells(g Grid, f func(Cell) bool) int {
	n := 0
	for _, c := range g.Cells {
		if f(c) {
			n++
		}
	}
	return n
}

func TestBuildGrid_layout(t *testing.T) {
	tbl := []struct {
		name        string
		cal         calendar.Type
		year, month int
		total, lead int
		first, last calendar.Date
	}{
		{
			name: "jalali 1403-07 starts on sunday", cal: calendar.Jalali, year: 1403, month: 7,
			total: 35, lead: 1, first: d(1403, 6, 31), last: d(1403, 8, 4),
		},
		{
			name: "jalali 1404-01 needs six weeks", cal: calendar.Jalali, year: 1404, month: 1,
			total: 42, lead: 6, first: d(1403, 12, 25), last: d(1404, 2, 5),
		},
		{
			name: "jalali 1403-01 fills five weeks exactly", cal: calendar.Jalali, year: 1403, month: 1,
			total: 35, lead: 4, first: d(1402, 12, 26), last: d(1403, 1, 31),
		},
		{
			name: "gregorian 2024-06 starts on saturday", cal: calendar.Gregorian, year: 2024, month: 6,
			total: 35, lead: 0, first: d(2024, 6, 1), last: d(2024, 7, 5),
		},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildGrid(cal(tt.cal), tt.year, tt.month, false, nil, nil)
			require.NoError(t, err)

			require.Len(t, g.Cells, tt.total)
			assert.Equal(t, tt.lead, countCells(g, func(c Cell) bool { return c.IsPrevMonth }))
			assert.Equal(t, tt.first, g.Cells[0].Date)
			assert.Equal(t, tt.last, g.Cells[tt.total-1].Date)

			first := g.Cells[tt.lead]
			assert.True(t, first.IsCurrentMonth)
			assert.Equal(t, 1, first.Day)
		})
	}
}

func TestBuildGrid_invariants(t *testing.T) {
	j := cal(calendar.Jalali)

	for y := 1395; y <= 1410; y++ {
		for m := 1; m <= 12; m++ {
			g, err := BuildGrid(j, y, m, false, nil, nil)
			require.NoError(t, err)

			dim, err := j.DaysInMonth(y, m)
			require.NoError(t, err)
			wd, err := j.Weekday(d(y, m, 1))
			require.NoError(t, err)

			assert.GreaterOrEqual(t, len(g.Cells), TotalCells)
			assert.Zero(t, len(g.Cells)%DaysInWeek)
			assert.Equal(t, dim, countCells(g, func(c Cell) bool { return c.IsCurrentMonth }))
			assert.Equal(t, int(wd), countCells(g, func(c Cell) bool { return c.IsPrevMonth }))

			for _, c := range g.Cells {
				n, err := j.DaysInMonth(c.Date.Year, c.Date.Month)
				require.NoError(t, err)
				assert.LessOrEqual(t, c.Day, n)
			}
		}
	}
}

func TestBuildGrid_flags(t *testing.T) {
	j := cal(calendar.Jalali)

	sel := selection.NewRange(&calendar.Range{Start: ptr(d(1403, 1, 5)), End: ptr(d(1403, 1, 8))})
	cons, err := NewConstraints(j, ptr(d(1403, 1, 3)), nil)
	require.NoError(t, err)

	g, err := BuildGrid(j, 1403, 1, false, sel, cons)
	require.NoError(t, err)

	// Four leading cells: day N is at index N+3.
	cell := func(day int) Cell { return g.Cells[day+3] }

	assert.True(t, cell(1).IsToday)
	assert.False(t, cell(2).IsToday)

	assert.True(t, cell(2).IsDisabled)
	assert.False(t, cell(3).IsDisabled)
	assert.True(t, g.Cells[0].IsDisabled)

	assert.True(t, cell(5).IsRangeStart)
	assert.True(t, cell(5).IsSelected)
	assert.False(t, cell(5).IsInRange)
	assert.True(t, cell(6).IsInRange)
	assert.True(t, cell(7).IsInRange)
	assert.True(t, cell(8).IsRangeEnd)
	assert.False(t, cell(9).IsInRange)

	weeks := g.Weeks()
	require.Len(t, weeks, 5)
	for _, w := range weeks {
		assert.Len(t, w, DaysInWeek)
	}
	assert.Equal(t, cell(1), weeks[0][4])
}

func TestBuildGrid_leapMonth(t *testing.T) {
	// The repeated second month of 2023 starts on Wednesday 2023-03-22.
	g, err := BuildGrid(cal(calendar.Chinese), 2023, 2, true, nil, nil)
	require.NoError(t, err)

	require.Len(t, g.Cells, 35)
	assert.True(t, g.Leap)
	assert.Equal(t, 4, countCells(g, func(c Cell) bool { return c.IsPrevMonth }))
	assert.Equal(t, 29, countCells(g, func(c Cell) bool { return c.IsCurrentMonth }))

	for _, c := range g.Cells {
		if c.IsCurrentMonth {
			assert.True(t, c.Date.Leap)
		}
	}
	assert.Equal(t, d(2023, 3, 1), g.Cells[33].Date)
	assert.Equal(t, d(2023, 3, 2), g.Cells[34].Date)
}

func TestBuildGrid_errors(t *testing.T) {
	_, err := BuildGrid(cal(calendar.Jalali), 1403, 13, false, nil, nil)
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)

	_, err = BuildGrid(cal(calendar.Gregorian), 2024, 2, true, nil, nil)
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
}

func TestBuildGrid_rangeEdge(t *testing.T) {
	// The day before lunar 1900-01-01 cannot be represented.
	g, err := BuildGrid(cal(calendar.Chinese), 1900, 1, false, nil, nil)
	require.NoError(t, err)

	lead := countCells(g, func(c Cell) bool { return c.IsPrevMonth })
	for _, c := range g.Cells[:lead] {
		assert.True(t, c.IsDisabled)
		assert.Zero(t, c.Day)
	}
	assert.Equal(t, 1, g.Cells[lead].Day)
}
