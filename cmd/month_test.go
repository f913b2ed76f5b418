package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMonth(t *testing.T, m *Month) []string {
	var buf bytes.Buffer
	m.out = &buf
	m.cals = testCalendars()
	require.NoError(t, m.Execute(nil))
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestMonthCmd(t *testing.T) {
	m := &Month{Calendar: "jalali", Locale: "en"}
	m.Args.Year, m.Args.Month = 1403, 7

	lines := runMonth(t, m)
	require.Len(t, lines, 7)
	assert.Equal(t, "Mehr 1403", lines[0])
	assert.Equal(t, "Sat Sun Mon Tue Wed Thu Fri", lines[1])
	assert.Equal(t, "      1   2   3   4   5   6", lines[2])
	assert.Equal(t, "  7   8   9  10  11  12  13", lines[3])
	assert.Equal(t, " 28  29  30", lines[6])
}

func TestMonthCmd_defaults(t *testing.T) {
	lines := runMonth(t, &Month{Calendar: "jalali", Locale: "en"})
	assert.Equal(t, "Farvardin 1403", lines[0])

	lines = runMonth(t, &Month{Calendar: "jalali", Locale: "fa"})
	assert.Equal(t, "فروردین ۱۴۰۳", lines[0])
	assert.Contains(t, lines[len(lines)-1], "۳۱")
}

func TestMonthCmd_leap(t *testing.T) {
	m := &Month{Calendar: "chinese", Locale: "en", Leap: true}
	m.Args.Year, m.Args.Month = 2023, 2

	lines := runMonth(t, m)
	assert.Equal(t, "Eryue (leap) 2023", lines[0])
	assert.Equal(t, "                  1   2   3", lines[2])
}

func TestMonthCmd_fail(t *testing.T) {
	m := &Month{Calendar: "jalali", Locale: "xx", cals: testCalendars()}
	assert.ErrorContains(t, m.Execute(nil), "unknown locale")

	m = &Month{Calendar: "mayan", Locale: "en", cals: testCalendars()}
	assert.ErrorContains(t, m.Execute(nil), "unknown calendar")

	m = &Month{Calendar: "jalali", Locale: "en", cals: testCalendars()}
	m.Args.Year, m.Args.Month = 1403, 13
	assert.Error(t, m.Execute(nil))

	m = &Month{Calendar: "gregorian", Locale: "en", Leap: true, cals: testCalendars()}
	m.Args.Year, m.Args.Month = 2024, 2
	assert.Error(t, m.Execute(nil))
}
