package calendar

import "time"

const (
	gregorianMinYear = 1
	gregorianMaxYear = 9999
)

var gregorianMonths = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// GregorianCalendar additionally understands RFC 3339 timestamps in Parse.
type GregorianCalendar struct {
	*Adapter
}

func NewGregorian() *GregorianCalendar {
	return &GregorianCalendar{Adapter: &Adapter{typ: Gregorian, sys: gregorianSystem{}}}
}

func (g *GregorianCalendar) Parse(s string) (time.Time, error) {
	t, err := g.Adapter.Parse(s)
	if err == nil {
		return t, nil
	}
	if ts, tsErr := time.Parse(time.RFC3339, s); tsErr == nil {
		return ts, nil
	}
	return time.Time{}, err
}

type gregorianSystem struct{}

func (gregorianSystem) yearBounds() (int, int) {
	return gregorianMinYear, gregorianMaxYear
}

func (gregorianSystem) daysInMonth(year, month int) int {
	if month == 2 && IsGregorianLeapYear(year) {
		return 29
	}
	return gregorianMonths[month-1]
}

func (gregorianSystem) isLeapYear(year int) bool {
	return IsGregorianLeapYear(year)
}

func (gregorianSystem) toJDN(d Date) int {
	return gregorianToJDN(d.Year, d.Month, d.Day)
}

func (gregorianSystem) fromJDN(jdn int) (Date, bool) {
	y, m, d := jdnToGregorian(jdn)
	if y < gregorianMinYear || y > gregorianMaxYear {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d}, true
}

func IsGregorianLeapYear(y int) bool {
	return (y%4 == 0 && y%100 != 0) || y%400 == 0
}
