package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/locale"
	"github.com/nvkalinin/datepicker/picker"
)

// Month prints one month grid. Days of the neighbouring months are left blank.
type Month struct {
	Calendar string `long:"calendar" short:"c" env:"CALENDAR" choice:"jalali" choice:"gregorian" choice:"hijri" choice:"chinese" default:"jalali" description:"Calendar system."`
	Locale   string `long:"locale" short:"l" env:"LOCALE" default:"fa" description:"Locale of names and digits."`
	Leap     bool   `long:"leap" description:"Show the intercalary month (Chinese calendar)."`

	Args struct {
		Year  int `positional-arg-name:"year" description:"Defaults to the current year."`
		Month int `positional-arg-name:"month" description:"Defaults to the current month."`
	} `positional-args:"yes"`

	cals *calendar.Registry
	out  io.Writer
}

func (m *Month) Execute(args []string) error {
	cals := m.cals
	if cals == nil {
		cals = calendar.DefaultRegistry()
	}
	cal, l, err := lookup(cals, m.Calendar, m.Locale)
	if err != nil {
		return err
	}

	y, mon := m.Args.Year, m.Args.Month
	if y == 0 || mon == 0 {
		today, err := cal.Today()
		if err != nil {
			return err
		}
		if y == 0 {
			y = today.Year
		}
		if mon == 0 {
			mon = today.Month
		}
	}

	g, err := picker.BuildGrid(cal, y, mon, m.Leap, nil, nil)
	if err != nil {
		return err
	}

	out := m.out
	if out == nil {
		out = os.Stdout
	}
	_, err = io.WriteString(out, renderMonth(g, cal.Type(), l))
	return err
}

func renderMonth(g picker.Grid, t calendar.Type, l locale.Locale) string {
	width := 2
	for _, w := range l.Weekdays {
		width = max(width, utf8.RuneCountInString(w))
	}

	var b strings.Builder

	title := l.MonthName(t, g.Month)
	if g.Leap {
		title += " (leap)"
	}
	fmt.Fprintf(&b, "%s %s\n", title, locale.ToLocalDigits(strconv.Itoa(g.Year), l.NumberSystem))

	writeRow(&b, l.Weekdays, width)
	for _, week := range g.Weeks() {
		row := make([]string, len(week))
		for i, c := range week {
			if c.IsCurrentMonth {
				row[i] = locale.ToLocalDigits(strconv.Itoa(c.Day), l.NumberSystem)
			}
		}
		writeRow(&b, row, width)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, width int) {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = fmt.Sprintf("%*s", width, c)
	}
	b.WriteString(strings.TrimRight(strings.Join(padded, " "), " "))
	b.WriteByte('\n')
}
