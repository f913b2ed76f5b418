package picker

import "github.com/nvkalinin/datepicker/calendar"

// Constraints bound the selectable dates. Both bounds are optional and inclusive.
type Constraints struct {
	cal      calendar.Calendar
	min, max *calendar.Date
}

func NewConstraints(cal calendar.Calendar, min, max *calendar.Date) (*Constraints, error) {
	if min != nil && max != nil && calendar.After(*min, *max) {
		return nil, calendar.NewConfigurationError("minDate", "%s is after maxDate %s", min, max)
	}
	return &Constraints{cal: cal, min: datePtr(min), max: datePtr(max)}, nil
}

func (c *Constraints) Min() *calendar.Date { return datePtr(c.min) }
func (c *Constraints) Max() *calendar.Date { return datePtr(c.max) }

func (c *Constraints) HasConstraints() bool {
	return c.min != nil || c.max != nil
}

// IsDisabled is true for nil and for dates outside [min, max].
func (c *Constraints) IsDisabled(d *calendar.Date) bool {
	if d == nil {
		return true
	}
	return !c.IsInAllowedRange(*d)
}

func (c *Constraints) IsEnabled(d *calendar.Date) bool {
	return !c.IsDisabled(d)
}

func (c *Constraints) IsInAllowedRange(d calendar.Date) bool {
	if c.min != nil && calendar.Before(d, *c.min) {
		return false
	}
	if c.max != nil && calendar.After(d, *c.max) {
		return false
	}
	return true
}

// IsMonthDisabled is true when no day of the month is allowed. For calendars with
// intercalary months the month includes its leap repetition.
func (c *Constraints) IsMonthDisabled(year, month int) bool {
	last, err := c.lastOfMonth(year, month)
	if err != nil {
		return true
	}
	return c.outside(calendar.NewDate(year, month, 1), last)
}

// IsYearDisabled is true when no day of the year is allowed.
func (c *Constraints) IsYearDisabled(year int) bool {
	last, err := c.lastOfMonth(year, 12)
	if err != nil {
		return true
	}
	return c.outside(calendar.NewDate(year, 1, 1), last)
}

func (c *Constraints) outside(first, last calendar.Date) bool {
	if c.min != nil && calendar.Before(last, *c.min) {
		return true
	}
	if c.max != nil && calendar.After(first, *c.max) {
		return true
	}
	return false
}

func (c *Constraints) lastOfMonth(year, month int) (calendar.Date, error) {
	if lm, ok := c.cal.(calendar.LeapMonther); ok {
		if m, days := lm.LeapMonth(year); m == month {
			return calendar.Date{Year: year, Month: month, Day: days, Leap: true}, nil
		}
	}
	dim, err := c.cal.DaysInMonth(year, month)
	if err != nil {
		return calendar.Date{}, err
	}
	return calendar.NewDate(year, month, dim), nil
}

// ClampDate moves d onto the nearest bound when it falls outside them. The time of day of d is kept.
func (c *Constraints) ClampDate(d calendar.Date) calendar.Date {
	var bound *calendar.Date
	switch {
	case c.min != nil && calendar.Before(d, *c.min):
		bound = c.min
	case c.max != nil && calendar.After(d, *c.max):
		bound = c.max
	default:
		return d.Copy()
	}

	res := bound.DateOnly()
	if d.Time != nil {
		t := *d.Time
		res.Time = &t
	}
	return res
}

// convert re-expresses the bounds in calendar to.
func (c *Constraints) convert(to calendar.Calendar) (*Constraints, error) {
	conv := func(d *calendar.Date) (*calendar.Date, error) {
		if d == nil {
			return nil, nil
		}
		res, err := calendar.Convert(c.cal, to, *d)
		if err != nil {
			return nil, err
		}
		return &res, nil
	}

	min, err := conv(c.min)
	if err != nil {
		return nil, err
	}
	max, err := conv(c.max)
	if err != nil {
		return nil, err
	}
	return &Constraints{cal: to, min: min, max: max}, nil
}

func datePtr(d *calendar.Date) *calendar.Date {
	if d == nil {
		return nil
	}
	c := d.Copy()
	return &c
}
