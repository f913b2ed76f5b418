package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGregorian_DaysInMonth(t *testing.T) {
	g := NewGregorian()

	tests := []struct {
		y, m, exp int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{1900, 2, 28},
		{2000, 2, 29},
		{2024, 4, 30},
		{2024, 12, 31},
	}
	for _, tt := range tests {
		n, err := g.DaysInMonth(tt.y, tt.m)
		require.NoError(t, err)
		assert.Equal(t, tt.exp, n, "%d-%d", tt.y, tt.m)
	}

	_, err := g.DaysInMonth(2024, 0)
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = g.DaysInMonth(10000, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestGregorian_jdn(t *testing.T) {
	assert.Equal(t, 2440588, gregorianToJDN(1970, 1, 1))
	assert.Equal(t, 2451545, gregorianToJDN(2000, 1, 1))

	y, m, d := jdnToGregorian(2451545)
	assert.Equal(t, []int{2000, 1, 1}, []int{y, m, d})

	assert.Equal(t, 2440588, jdnFromTime(time.Unix(0, 0).UTC()))
	assert.Equal(t, gdate(1970, time.January, 1), timeFromJDN(2440588))
}

func TestGregorian_FromTime_location(t *testing.T) {
	g := NewGregorian()
	tehran := time.FixedZone("IRST", 3*3600+1800)

	// 22:00 UTC is already the next day in Tehran.
	ts := time.Date(2024, time.March, 19, 22, 0, 0, 0, time.UTC).In(tehran)
	d, err := g.FromTime(ts)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, 3, 20), d)
}

func TestGregorian_Weekday(t *testing.T) {
	g := NewGregorian()

	cases := map[Date]Weekday{
		NewDate(2024, 6, 1):   Saturday,
		NewDate(2024, 9, 1):   Sunday,
		NewDate(2026, 2, 1):   Sunday,
		NewDate(2025, 3, 1):   Saturday,
		NewDate(2026, 10, 14): Wednesday,
	}
	for d, exp := range cases {
		got, err := g.Weekday(d)
		require.NoError(t, err)
		assert.Equal(t, exp, got, "%v", d)
	}
}

func TestGregorian_AddMonths(t *testing.T) {
	g := NewGregorian()

	res, err := g.AddMonths(gdate(2024, time.January, 31), 1)
	require.NoError(t, err)
	assert.Equal(t, gdate(2024, time.February, 29), res)

	res, err = g.AddMonths(gdate(2024, time.January, 31), -2)
	require.NoError(t, err)
	assert.Equal(t, gdate(2023, time.November, 30), res)

	res, err = g.AddYears(gdate(2024, time.February, 29), 1)
	require.NoError(t, err)
	assert.Equal(t, gdate(2025, time.February, 28), res)

	_, err = g.AddYears(gdate(9999, time.June, 1), 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestGregorian_Parse(t *testing.T) {
	g := NewGregorian()

	got, err := g.Parse("2024/06/01")
	require.NoError(t, err)
	assert.Equal(t, gdate(2024, time.June, 1), got)

	got, err = g.Parse("2024-06-01T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 1, 10, 30, 0, 0, time.UTC), got)

	_, err = g.Parse("June 1st")
	assert.ErrorIs(t, err, ErrFormat)

	_, err = g.Parse("2023-02-29")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestConvert(t *testing.T) {
	reg := DefaultRegistry()
	j, g, h := reg.Get(Jalali), reg.Get(Gregorian), reg.Get(Hijri)

	res, err := Convert(j, g, NewDate(1403, 1, 1).WithTime(9, 15))
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, 3, 20).WithTime(9, 15), res)

	res, err = Convert(g, h, NewDate(2024, 7, 8))
	require.NoError(t, err)
	assert.Equal(t, NewDate(1446, 1, 1), res)

	_, err = Convert(g, reg.Get(Chinese), NewDate(1800, 1, 1))
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Convert(j, g, NewDate(1404, 12, 30))
	assert.ErrorIs(t, err, ErrInvalidDate)
}
