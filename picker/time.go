package picker

import (
	"fmt"

	"github.com/nvkalinin/datepicker/calendar"
)

type TimeFormat int

const (
	Clock24 TimeFormat = 24
	Clock12 TimeFormat = 12
)

type Period string

const (
	AM Period = "AM"
	PM Period = "PM"
)

// TimeSelection is the hour and minute picked next to the dates. The hour is kept on
// the 24-hour clock; on a 12-hour clock the period decides which half of the day it is in.
type TimeSelection struct {
	format TimeFormat
	hour   *int
	minute *int
	period Period
}

// TimeState is a snapshot of a TimeSelection.
type TimeState struct {
	Hour   *int   `json:"hour,omitempty"`
	Minute *int   `json:"minute,omitempty"`
	Period Period `json:"period"`
}

func NewTimeSelection(format TimeFormat, initial *calendar.TimeOfDay) (*TimeSelection, error) {
	if format != Clock12 {
		format = Clock24
	}
	t := &TimeSelection{format: format, period: AM}
	if initial != nil {
		if err := t.SetValue(*initial); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *TimeSelection) Format() TimeFormat { return t.format }
func (t *TimeSelection) Period() Period     { return t.period }

// SelectHour takes 0-23 on a 24-hour clock and 1-12 on a 12-hour clock.
func (t *TimeSelection) SelectHour(h int) error {
	if t.format == Clock24 {
		if h < 0 || h > 23 {
			return fmt.Errorf("hour %d: %w", h, calendar.ErrInvalidDate)
		}
		t.hour = &h
		return nil
	}

	if h < 1 || h > 12 {
		return fmt.Errorf("hour %d: %w", h, calendar.ErrInvalidDate)
	}
	h %= 12
	if t.period == PM {
		h += 12
	}
	t.hour = &h
	return nil
}

func (t *TimeSelection) SelectMinute(m int) error {
	if m < 0 || m > 59 {
		return fmt.Errorf("minute %d: %w", m, calendar.ErrInvalidDate)
	}
	t.minute = &m
	return nil
}

// TogglePeriod moves the selected hour to the other half of the day. No-op on a 24-hour clock.
func (t *TimeSelection) TogglePeriod() {
	if t.format != Clock12 {
		return
	}

	if t.period == AM {
		t.period = PM
	} else {
		t.period = AM
	}

	if t.hour != nil {
		h := *t.hour
		switch {
		case t.period == PM && h < 12:
			h += 12
		case t.period == AM && h >= 12:
			h -= 12
		}
		t.hour = &h
	}
}

func (t *TimeSelection) SetPeriod(p Period) {
	if p != t.period {
		t.TogglePeriod()
	}
}

// DisplayHour is the hour as shown on the clock face, false if none is selected.
func (t *TimeSelection) DisplayHour() (int, bool) {
	if t.hour == nil {
		return 0, false
	}
	if t.format == Clock12 {
		if h := *t.hour % 12; h != 0 {
			return h, true
		}
		return 12, true
	}
	return *t.hour, true
}

// Hours lists the clock face: 12, 1 ... 11 or 0 ... 23.
func (t *TimeSelection) Hours() []int {
	if t.format == Clock12 {
		hours := make([]int, 12)
		hours[0] = 12
		for i := 1; i < 12; i++ {
			hours[i] = i
		}
		return hours
	}

	hours := make([]int, 24)
	for i := range hours {
		hours[i] = i
	}
	return hours
}

func (t *TimeSelection) Minutes() []int {
	minutes := make([]int, 60)
	for i := range minutes {
		minutes[i] = i
	}
	return minutes
}

// IsValid reports whether both hour and minute are selected.
func (t *TimeSelection) IsValid() bool {
	return t.hour != nil && t.minute != nil
}

// Value is nil until both hour and minute are selected.
func (t *TimeSelection) Value() *calendar.TimeOfDay {
	if !t.IsValid() {
		return nil
	}
	return &calendar.TimeOfDay{Hour: *t.hour, Minute: *t.minute}
}

// SetValue takes a 24-hour time and derives the period from it.
func (t *TimeSelection) SetValue(v calendar.TimeOfDay) error {
	if v.Hour < 0 || v.Hour > 23 || v.Minute < 0 || v.Minute > 59 {
		return fmt.Errorf("time %s: %w", v, calendar.ErrInvalidDate)
	}
	h, m := v.Hour, v.Minute
	t.hour, t.minute = &h, &m
	if t.format == Clock12 {
		t.period = AM
		if h >= 12 {
			t.period = PM
		}
	}
	return nil
}

func (t *TimeSelection) Reset() {
	t.hour, t.minute = nil, nil
	t.period = AM
}

// IsHourSelected compares against the clock face value.
func (t *TimeSelection) IsHourSelected(h int) bool {
	dh, ok := t.DisplayHour()
	return ok && dh == h
}

func (t *TimeSelection) IsMinuteSelected(m int) bool {
	return t.minute != nil && *t.minute == m
}

func (t *TimeSelection) State() TimeState {
	return TimeState{Hour: intPtr(t.hour), Minute: intPtr(t.minute), Period: t.period}
}

func (t *TimeSelection) restore(s TimeState) error {
	t.Reset()
	if s.Period == PM && t.format == Clock12 {
		t.period = PM
	}
	if s.Hour != nil {
		if *s.Hour < 0 || *s.Hour > 23 {
			return fmt.Errorf("hour %d: %w", *s.Hour, calendar.ErrInvalidDate)
		}
		t.hour = intPtr(s.Hour)
	}
	if s.Minute != nil {
		if err := t.SelectMinute(*s.Minute); err != nil {
			return err
		}
	}
	return nil
}

func intPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
