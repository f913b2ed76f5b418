// Package calendar implements the calendar systems supported by the picker and the
// arithmetic shared by all of them.
//
// Every calendar converts its own year/month/day triples to and from a universal
// instant (time.Time at midnight UTC of the proleptic Gregorian day). Conversions go
// through Julian Day Numbers, so weekday computation and cross-calendar conversion
// are calendar-agnostic.
package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Calendar is the capability set of one calendar system.
type Calendar interface {
	Type() Type

	// Today converts the current real-world date.
	Today() (Date, error)
	DaysInMonth(year, month int) (int, error)

	// ToTime converts a date to the universal instant. The time of day of d is ignored.
	ToTime(d Date) (time.Time, error)

	// FromTime converts the calendar day of t (in t's location) to a date.
	FromTime(t time.Time) (Date, error)

	// AddMonths and AddYears clamp the day to the length of the destination month.
	AddMonths(t time.Time, n int) (time.Time, error)
	AddYears(t time.Time, n int) (time.Time, error)

	// Parse accepts YYYY-MM-DD, YYYY/MM/DD and YYYY.MM.DD in this calendar's numbering.
	Parse(s string) (time.Time, error)

	// Format renders t as YYYY-MM-DD in this calendar's numbering.
	Format(t time.Time) (string, error)

	Weekday(d Date) (Weekday, error)
	IsLeapYear(year int) bool

	// YearBounds is the closed interval of years the calendar can represent.
	YearBounds() (min, max int)
}

// LeapMonther is implemented by calendars with intercalary months.
type LeapMonther interface {
	// LeapMonth returns the number of the month repeated in year and the length of the
	// repetition. Month is 0 if the year has no leap month.
	LeapMonth(year int) (month, days int)
}

// MonthLength returns the length of a regular month, or of the intercalary month when leap
// is set. Leap months are rejected for calendars without them.
func MonthLength(c Calendar, year, month int, leap bool) (int, error) {
	if !leap {
		return c.DaysInMonth(year, month)
	}

	lm, ok := c.(LeapMonther)
	if !ok {
		return 0, dateErr(c.Type(), Date{Year: year, Month: month, Leap: true}, ErrInvalidDate)
	}
	m, days := lm.LeapMonth(year)
	if m == 0 || m != month {
		return 0, dateErr(c.Type(), Date{Year: year, Month: month, Leap: true}, ErrInvalidDate)
	}
	return days, nil
}

// Convert re-expresses d, a date of calendar from, in calendar to. The time of day is kept.
func Convert(from, to Calendar, d Date) (Date, error) {
	t, err := from.ToTime(d)
	if err != nil {
		return Date{}, err
	}
	res, err := to.FromTime(t)
	if err != nil {
		return Date{}, err
	}
	if d.Time != nil {
		tod := *d.Time
		res.Time = &tod
	}
	return res, nil
}

// system is the arithmetic core of one calendar.
type system interface {
	yearBounds() (min, max int)
	daysInMonth(year, month int) int
	isLeapYear(year int) bool
	toJDN(d Date) int // d is already validated
	fromJDN(jdn int) (Date, bool)
}

// leapSystem is a system with intercalary months.
type leapSystem interface {
	leapMonth(year int) (month, days int)
}

// Adapter implements Calendar on top of a system.
type Adapter struct {
	typ Type
	sys system

	// Now is the clock used by Today. Nil means time.Now.
	Now func() time.Time
}

func (a *Adapter) Type() Type {
	return a.typ
}

func (a *Adapter) Today() (Date, error) {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	return a.FromTime(now())
}

func (a *Adapter) DaysInMonth(year, month int) (int, error) {
	if err := a.checkYearMonth(year, month); err != nil {
		return 0, err
	}
	return a.sys.daysInMonth(year, month), nil
}

func (a *Adapter) YearBounds() (min, max int) {
	return a.sys.yearBounds()
}

func (a *Adapter) IsLeapYear(year int) bool {
	min, max := a.sys.yearBounds()
	if year < min || year > max {
		return false
	}
	return a.sys.isLeapYear(year)
}

func (a *Adapter) ToTime(d Date) (time.Time, error) {
	if err := a.check(d.DateOnly()); err != nil {
		return time.Time{}, err
	}
	return timeFromJDN(a.sys.toJDN(d)), nil
}

func (a *Adapter) FromTime(t time.Time) (Date, error) {
	d, ok := a.sys.fromJDN(jdnFromTime(t))
	if !ok {
		y, m, day := t.Date()
		return Date{}, dateErr(a.typ, Date{Year: y, Month: int(m), Day: day}, ErrOutOfRange)
	}
	return d, nil
}

func (a *Adapter) AddMonths(t time.Time, n int) (time.Time, error) {
	d, err := a.FromTime(t)
	if err != nil {
		return time.Time{}, err
	}

	total := d.Year*12 + (d.Month - 1) + n
	y, m := floorDiv(total, 12), floorMod(total, 12)+1
	return a.shift(t, y, m, d.Day)
}

func (a *Adapter) AddYears(t time.Time, n int) (time.Time, error) {
	d, err := a.FromTime(t)
	if err != nil {
		return time.Time{}, err
	}
	return a.shift(t, d.Year+n, d.Month, d.Day)
}

// shift moves to (y, m) keeping the day when possible and the wall clock of t.
func (a *Adapter) shift(t time.Time, y, m, day int) (time.Time, error) {
	dim, err := a.DaysInMonth(y, m)
	if err != nil {
		return time.Time{}, err
	}
	res, err := a.ToTime(Date{Year: y, Month: m, Day: min(day, dim)})
	if err != nil {
		return time.Time{}, err
	}
	gy, gm, gd := res.Date()
	return time.Date(gy, gm, gd, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()), nil
}

var ymdRe = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})$`)

func (a *Adapter) Parse(s string) (time.Time, error) {
	y, m, d, ok := splitYMD(s)
	if !ok {
		return time.Time{}, fmt.Errorf("%s calendar: %w: %q", a.typ, ErrFormat, s)
	}
	return a.ToTime(Date{Year: y, Month: m, Day: d})
}

func (a *Adapter) Format(t time.Time) (string, error) {
	d, err := a.FromTime(t)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day), nil
}

func (a *Adapter) Weekday(d Date) (Weekday, error) {
	t, err := a.ToTime(d)
	if err != nil {
		return 0, err
	}
	return WeekdayOf(t), nil
}

func (a *Adapter) checkYearMonth(year, month int) error {
	min, max := a.sys.yearBounds()
	if year < min || year > max {
		return dateErr(a.typ, Date{Year: year, Month: month}, ErrOutOfRange)
	}
	if month < 1 || month > 12 {
		return dateErr(a.typ, Date{Year: year, Month: month}, ErrInvalidDate)
	}
	return nil
}

func (a *Adapter) check(d Date) error {
	if err := a.checkYearMonth(d.Year, d.Month); err != nil {
		return dateErr(a.typ, d, unwrapDateErr(err))
	}

	n := a.sys.daysInMonth(d.Year, d.Month)
	if d.Leap {
		ls, ok := a.sys.(leapSystem)
		if !ok {
			return dateErr(a.typ, d, ErrInvalidDate)
		}
		m, days := ls.leapMonth(d.Year)
		if m != d.Month {
			return dateErr(a.typ, d, ErrInvalidDate)
		}
		n = days
	}

	if d.Day < 1 || d.Day > n {
		return dateErr(a.typ, d, ErrInvalidDate)
	}
	return nil
}

func unwrapDateErr(err error) error {
	if de, ok := err.(*DateError); ok {
		return de.Err
	}
	return err
}

// splitYMD matches the three supported separators.
func splitYMD(s string) (y, m, d int, ok bool) {
	match := ymdRe.FindStringSubmatch(s)
	if match == nil {
		return 0, 0, 0, false
	}
	y, _ = strconv.Atoi(match[1])
	m, _ = strconv.Atoi(match[2])
	d, _ = strconv.Atoi(match[3])
	return y, m, d, true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
