package calendar

import (
	"fmt"
	"time"
)

// Type identifies a calendar system.
type Type string

const (
	Jalali    Type = "jalali"
	Gregorian Type = "gregorian"
	Hijri     Type = "hijri"
	Chinese   Type = "chinese"
)

// ParseType returns the Type for a code. Codes are case-sensitive.
func ParseType(code string) (Type, bool) {
	// @formatter:off
	switch Type(code) {
	case Jalali:    return Jalali,    true
	case Gregorian: return Gregorian, true
	case Hijri:     return Hijri,     true
	case Chinese:   return Chinese,   true
	default:        return "",        false
	}
	// @formatter:on
}

// TimeOfDay is an optional wall-clock time attached to a Date.
type TimeOfDay struct {
	Hour   int `json:"hour" yaml:"hour"`
	Minute int `json:"minute" yaml:"minute"`
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Date is a year/month/day triple in some calendar system. The system itself is not
// stored: a Date only makes sense together with the Calendar that produced it.
type Date struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
	Day   int `json:"day" yaml:"day"`

	// Leap marks an intercalary month (Chinese calendar only).
	Leap bool `json:"leap,omitempty" yaml:"leap,omitempty"`

	Time *TimeOfDay `json:"time,omitempty" yaml:"time,omitempty"`
}

func NewDate(y, m, d int) Date {
	return Date{Year: y, Month: m, Day: d}
}

// WithTime returns a copy of d carrying the given time of day.
func (d Date) WithTime(hour, minute int) Date {
	d.Time = &TimeOfDay{Hour: hour, Minute: minute}
	return d
}

// DateOnly returns a copy of d without the time of day.
func (d Date) DateOnly() Date {
	d.Time = nil
	return d
}

// Copy returns a deep copy (Time is a pointer).
func (d Date) Copy() Date {
	if d.Time != nil {
		t := *d.Time
		d.Time = &t
	}
	return d
}

func (d Date) String() string {
	s := fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	if d.Leap {
		s += " (leap)"
	}
	if d.Time != nil {
		s += " " + d.Time.String()
	}
	return s
}

// Range is a pair of dates. Either bound may be nil while a range is being selected.
type Range struct {
	Start *Date `json:"start"`
	End   *Date `json:"end"`
}

// Complete reports whether both bounds are set.
func (r Range) Complete() bool {
	return r.Start != nil && r.End != nil
}

// Weekday uses the Persian week: 0 = Saturday ... 6 = Friday.
type Weekday int

const (
	Saturday Weekday = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
)

var weekdayNames = [...]string{"Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

func (w Weekday) String() string {
	if w < Saturday || w > Friday {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// WeekdayOf shifts time.Weekday (0 = Sunday) to the Saturday-first numbering.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 1) % 7)
}
