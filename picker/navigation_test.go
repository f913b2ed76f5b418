package picker

import (
	"testing"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNavigation(t *testing.T) {
	n, err := NewNavigation(cal(calendar.Jalali), nil, DefaultYearsBefore, DefaultYearsAfter)
	require.NoError(t, err)

	assert.Equal(t, 1403, n.Year())
	assert.Equal(t, 1, n.Month())
	assert.Equal(t, DaysView, n.View())
	min, max := n.YearRange()
	assert.Equal(t, 1353, min)
	assert.Equal(t, 1453, max)

	n, err = NewNavigation(cal(calendar.Jalali), ptr(d(1399, 8, 20)), DefaultYearsBefore, DefaultYearsAfter)
	require.NoError(t, err)
	assert.Equal(t, NavState{Year: 1399, Month: 8, View: DaysView, MinYear: 1353, MaxYear: 1453}, n.State())

	days, err := n.DaysInCurrentMonth()
	require.NoError(t, err)
	assert.Equal(t, 30, days)
}

func TestNavigation_months(t *testing.T) {
	n, err := NewNavigation(cal(calendar.Jalali), ptr(d(1403, 2, 1)), 50, 50)
	require.NoError(t, err)

	n.PrevMonth()
	n.PrevMonth()
	assert.Equal(t, [2]int{1402, 12}, [2]int{n.Year(), n.Month()})

	n.NextMonth()
	assert.Equal(t, [2]int{1403, 1}, [2]int{n.Year(), n.Month()})

	n.GoToDate(d(1403, 12, 5))
	n.NextMonth()
	assert.Equal(t, [2]int{1404, 1}, [2]int{n.Year(), n.Month()})
}

func TestNavigation_yearBounds(t *testing.T) {
	n, err := NewNavigation(cal(calendar.Jalali), nil, 0, 1)
	require.NoError(t, err)

	n.PrevMonth()
	assert.Equal(t, [2]int{1403, 1}, [2]int{n.Year(), n.Month()})
	n.PrevYear()
	assert.Equal(t, 1403, n.Year())

	n.NextYear()
	n.NextYear()
	assert.Equal(t, 1404, n.Year())

	require.NoError(t, n.SetMonth(12))
	n.NextMonth()
	assert.Equal(t, [2]int{1404, 12}, [2]int{n.Year(), n.Month()})

	assert.ErrorIs(t, n.SetYear(1405), calendar.ErrOutOfRange)
	assert.ErrorIs(t, n.SetMonth(0), calendar.ErrInvalidDate)

	// Clamped into the range.
	n.GoToDate(d(1300, 5, 1))
	assert.Equal(t, [2]int{1403, 5}, [2]int{n.Year(), n.Month()})
}

func TestNavigation_views(t *testing.T) {
	n, err := NewNavigation(cal(calendar.Jalali), nil, 50, 50)
	require.NoError(t, err)

	require.NoError(t, n.SetView(YearsView))
	assert.Equal(t, YearsView, n.View())
	assert.Equal(t, []int{1399, 1400, 1401, 1402, 1403, 1404, 1405, 1406, 1407, 1408, 1409, 1410}, n.YearPage())

	require.NoError(t, n.SetYear(1410))
	assert.Equal(t, DaysView, n.View())

	require.NoError(t, n.ToggleView(MonthsView))
	assert.Equal(t, MonthsView, n.View())
	require.NoError(t, n.ToggleView(MonthsView))
	assert.Equal(t, DaysView, n.View())

	require.NoError(t, n.SetView(MonthsView))
	require.NoError(t, n.SetMonth(7))
	assert.Equal(t, DaysView, n.View())

	var cfgErr *calendar.ConfigurationError
	assert.ErrorAs(t, n.SetView("decades"), &cfgErr)
	assert.ErrorAs(t, n.ToggleView("decades"), &cfgErr)
}

func TestNavigation_Reset(t *testing.T) {
	n, err := NewNavigation(cal(calendar.Jalali), ptr(d(1400, 6, 1)), 50, 50)
	require.NoError(t, err)

	n.NextMonth()
	require.NoError(t, n.SetView(YearsView))
	require.NoError(t, n.Reset())
	assert.Equal(t, [2]int{1400, 6}, [2]int{n.Year(), n.Month()})
	assert.Equal(t, DaysView, n.View())

	require.NoError(t, n.GoToToday())
	assert.Equal(t, [2]int{1403, 1}, [2]int{n.Year(), n.Month()})
}

func TestNavigation_leapMonths(t *testing.T) {
	n, err := NewNavigation(cal(calendar.Chinese), ptr(d(2023, 2, 1)), 50, 50)
	require.NoError(t, err)

	n.NextMonth()
	assert.Equal(t, 2, n.Month())
	assert.True(t, n.Leap())
	days, err := n.DaysInCurrentMonth()
	require.NoError(t, err)
	assert.Equal(t, 29, days)

	n.NextMonth()
	assert.Equal(t, 3, n.Month())
	assert.False(t, n.Leap())

	n.PrevMonth()
	assert.Equal(t, 2, n.Month())
	assert.True(t, n.Leap())

	// 2024 has no leap second month.
	n.NextYear()
	assert.Equal(t, 2024, n.Year())
	assert.False(t, n.Leap())

	n.GoToDate(calendar.Date{Year: 2023, Month: 2, Day: 5, Leap: true})
	assert.True(t, n.Leap())
	n.PrevMonth()
	n.PrevMonth()
	assert.Equal(t, 1, n.Month())
}

func TestNavigation_SetCalendar(t *testing.T) {
	n, err := NewNavigation(cal(calendar.Jalali), ptr(d(1403, 1, 10)), 50, 50)
	require.NoError(t, err)
	require.NoError(t, n.SetView(MonthsView))

	require.NoError(t, n.SetCalendar(cal(calendar.Gregorian)))
	assert.Equal(t, calendar.Gregorian, n.Calendar().Type())
	assert.Equal(t, [2]int{2024, 3}, [2]int{n.Year(), n.Month()})
	assert.Equal(t, MonthsView, n.View())
	min, max := n.YearRange()
	assert.Equal(t, [2]int{1974, 2074}, [2]int{min, max})

	// The initial date moved along: 1403-01-10 is 2024-03-29.
	n.NextMonth()
	require.NoError(t, n.Reset())
	assert.Equal(t, [2]int{2024, 3}, [2]int{n.Year(), n.Month()})
}

func TestNavigation_calendarBounds(t *testing.T) {
	n, err := NewNavigation(cal(calendar.Chinese), nil, 200, 200)
	require.NoError(t, err)

	min, max := n.YearRange()
	assert.Equal(t, 1900, min)
	assert.Equal(t, 2100, max)

	assert.ErrorIs(t, n.SetYear(1850), calendar.ErrOutOfRange)
	assert.ErrorIs(t, n.SetYear(2101), calendar.ErrOutOfRange)

	n.GoToDate(d(1850, 9, 1))
	assert.Equal(t, [2]int{1900, 9}, [2]int{n.Year(), n.Month()})

	require.NoError(t, n.SetYear(1900))
	require.NoError(t, n.SetMonth(1))
	n.PrevMonth()
	n.PrevYear()
	assert.Equal(t, [2]int{1900, 1}, [2]int{n.Year(), n.Month()})

	// Snapshots with a wider window are narrowed.
	s := n.State()
	s.MinYear = 1826
	require.NoError(t, n.restore(s))
	min, _ = n.YearRange()
	assert.Equal(t, 1900, min)

	s.Year = 1850
	var cfgErr *calendar.ConfigurationError
	assert.ErrorAs(t, n.restore(s), &cfgErr)
}
