package picker

import (
	"testing"
	"time"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Nowruz 1403, 2024-03-20.
var testNow = time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

func testRegistry() *calendar.Registry {
	now := func() time.Time { return testNow }

	j, g, h, c := calendar.NewJalali(), calendar.NewGregorian(), calendar.NewHijri(), calendar.NewChinese()
	j.Now, g.Now, h.Now, c.Now = now, now, now, now
	return calendar.NewRegistry(j, g, h, c)
}

func cal(t calendar.Type) calendar.Calendar {
	return testRegistry().Get(t)
}

func d(y, m, day int) calendar.Date {
	return calendar.NewDate(y, m, day)
}

func ptr(date calendar.Date) *calendar.Date {
	return &date
}

func TestNewConstraints(t *testing.T) {
	_, err := NewConstraints(cal(calendar.Jalali), ptr(d(1403, 5, 1)), ptr(d(1403, 4, 1)))
	var cfgErr *calendar.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "minDate", cfgErr.Field)

	c, err := NewConstraints(cal(calendar.Jalali), ptr(d(1403, 5, 1)), ptr(d(1403, 5, 1)))
	require.NoError(t, err)
	assert.True(t, c.HasConstraints())

	c, err = NewConstraints(cal(calendar.Jalali), nil, nil)
	require.NoError(t, err)
	assert.False(t, c.HasConstraints())
	assert.False(t, c.IsDisabled(ptr(d(1, 1, 1))))
	assert.True(t, c.IsDisabled(nil))
}

func TestConstraints_IsDisabled(t *testing.T) {
	c, err := NewConstraints(cal(calendar.Jalali), ptr(d(1403, 3, 15)), ptr(d(1403, 5, 10)))
	require.NoError(t, err)

	tbl := []struct {
		date     calendar.Date
		disabled bool
	}{
		{d(1403, 3, 14), true},
		{d(1403, 3, 15), false},
		{d(1403, 3, 15).WithTime(23, 59), false},
		{d(1403, 4, 1), false},
		{d(1403, 5, 10), false},
		{d(1403, 5, 11), true},
		{d(1402, 4, 1), true},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.disabled, c.IsDisabled(&tt.date), tt.date.String())
		assert.Equal(t, !tt.disabled, c.IsEnabled(&tt.date), tt.date.String())
		assert.Equal(t, !tt.disabled, c.IsInAllowedRange(tt.date), tt.date.String())
	}

	// Bounds are copies.
	min := c.Min()
	min.Day = 1
	assert.True(t, c.IsDisabled(ptr(d(1403, 3, 1))))
	assert.Equal(t, ptr(d(1403, 5, 10)), c.Max())
}

func TestConstraints_IsMonthDisabled(t *testing.T) {
	c, err := NewConstraints(cal(calendar.Jalali), ptr(d(1403, 3, 31)), ptr(d(1403, 5, 1)))
	require.NoError(t, err)

	assert.True(t, c.IsMonthDisabled(1403, 2))
	assert.False(t, c.IsMonthDisabled(1403, 3))
	assert.False(t, c.IsMonthDisabled(1403, 4))
	assert.False(t, c.IsMonthDisabled(1403, 5))
	assert.True(t, c.IsMonthDisabled(1403, 6))
	assert.True(t, c.IsMonthDisabled(1403, 13))

	assert.True(t, c.IsYearDisabled(1402))
	assert.False(t, c.IsYearDisabled(1403))
	assert.True(t, c.IsYearDisabled(1404))

	open, err := NewConstraints(cal(calendar.Jalali), nil, ptr(d(1403, 1, 1)))
	require.NoError(t, err)
	assert.False(t, open.IsYearDisabled(1300))
	assert.True(t, open.IsMonthDisabled(1403, 2))
}

func TestConstraints_leapMonth(t *testing.T) {
	// 2023 repeats the second month.
	min := calendar.Date{Year: 2023, Month: 2, Day: 10, Leap: true}
	c, err := NewConstraints(cal(calendar.Chinese), &min, nil)
	require.NoError(t, err)

	assert.True(t, c.IsMonthDisabled(2023, 1))
	assert.False(t, c.IsMonthDisabled(2023, 2))
	assert.True(t, c.IsDisabled(ptr(d(2023, 2, 29))))
	assert.False(t, c.IsDisabled(ptr(d(2023, 3, 1))))
}

func TestConstraints_ClampDate(t *testing.T) {
	c, err := NewConstraints(cal(calendar.Jalali), ptr(d(1403, 3, 15)), ptr(d(1403, 5, 10)))
	require.NoError(t, err)

	assert.Equal(t, d(1403, 3, 15), c.ClampDate(d(1400, 1, 1)))
	assert.Equal(t, d(1403, 5, 10).WithTime(8, 0), c.ClampDate(d(1403, 12, 1).WithTime(8, 0)))
	assert.Equal(t, d(1403, 4, 4), c.ClampDate(d(1403, 4, 4)))

	once := c.ClampDate(d(1399, 1, 1))
	assert.Equal(t, once, c.ClampDate(once))
}
