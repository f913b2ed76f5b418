// Package locale holds the text tables of the picker: month and weekday names, text
// direction, digit system and UI strings.
package locale

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/nvkalinin/datepicker/calendar"
	"gopkg.in/yaml.v3"
)

type Direction string

const (
	RTL Direction = "rtl"
	LTR Direction = "ltr"
)

// Text keys known to the picker.
const (
	TextToday        = "today"
	TextSelectDate   = "selectDate"
	TextSelectTime   = "selectTime"
	TextConfirm      = "confirm"
	TextCancel       = "cancel"
	TextClear        = "clear"
	TextHour         = "hour"
	TextMinute       = "minute"
	TextPeriod       = "period"
	TextSelectedTime = "selectedTime"
	TextStartDate    = "startDate"
	TextEndDate      = "endDate"
)

// Locale is one registered text table. Weekdays start on Saturday.
type Locale struct {
	Code string `yaml:"code" json:"code"`

	// Months are the names used for the locale's own calendar. CalendarMonths overrides
	// them for other calendar systems.
	Months         []string                   `yaml:"months" json:"months" validate:"len=12,dive,required"`
	CalendarMonths map[calendar.Type][]string `yaml:"calendarMonths,omitempty" json:"calendarMonths,omitempty" validate:"omitempty,dive,keys,oneof=jalali gregorian hijri chinese,endkeys,len=12,dive,required"`

	Weekdays     []string `yaml:"weekdays" json:"weekdays" validate:"len=7,dive,required"`
	WeekdaysFull []string `yaml:"weekdaysFull,omitempty" json:"weekdaysFull,omitempty" validate:"omitempty,len=7,dive,required"`

	Direction    Direction     `yaml:"direction" json:"direction" validate:"required,oneof=rtl ltr"`
	NumberSystem NumberSystem  `yaml:"numberSystem,omitempty" json:"numberSystem" validate:"omitempty,oneof=latin persian arabic chinese"`
	Calendar     calendar.Type `yaml:"calendar,omitempty" json:"calendar" validate:"omitempty,oneof=jalali gregorian hijri chinese"`

	Texts map[string]string `yaml:"texts,omitempty" json:"texts,omitempty"`
}

var validate = validator.New()

// Validate reports the first missing or malformed field as a *calendar.ConfigurationError.
func (l Locale) Validate() error {
	err := validate.Struct(l)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return calendar.NewConfigurationError("locale "+l.Code, "%s fails %q", fe.Namespace(), ruleOf(fe))
	}
	return calendar.NewConfigurationError("locale "+l.Code, "%v", err)
}

func ruleOf(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
}

// Parse reads one locale from YAML and applies defaults. The result is not validated.
func Parse(data []byte) (Locale, error) {
	var l Locale
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Locale{}, fmt.Errorf("cannot parse locale yaml: %w", err)
	}
	return l.withDefaults(), nil
}

func (l Locale) withDefaults() Locale {
	if l.NumberSystem == "" {
		l.NumberSystem = Persian
	}
	if l.Calendar == "" {
		l.Calendar = calendar.Jalali
	}
	return l
}

// MonthName returns the name of month (1-12) in calendar c, or "" if out of range.
func (l Locale) MonthName(c calendar.Type, month int) string {
	names := l.Months
	if c != l.Calendar {
		if override, ok := l.CalendarMonths[c]; ok {
			names = override
		}
	}
	if month < 1 || month > len(names) {
		return ""
	}
	return names[month-1]
}

// WeekdayName is the short name, 0 = Saturday.
func (l Locale) WeekdayName(w calendar.Weekday) string {
	if int(w) < 0 || int(w) >= len(l.Weekdays) {
		return ""
	}
	return l.Weekdays[w]
}

// WeekdayFullName falls back to the short name.
func (l Locale) WeekdayFullName(w calendar.Weekday) string {
	if int(w) >= 0 && int(w) < len(l.WeekdaysFull) {
		return l.WeekdaysFull[w]
	}
	return l.WeekdayName(w)
}

// Text returns the UI string for key, or the key itself.
func (l Locale) Text(key string) string {
	if s, ok := l.Texts[key]; ok {
		return s
	}
	return key
}

func (l Locale) clone() Locale {
	l.Months = slices.Clone(l.Months)
	l.Weekdays = slices.Clone(l.Weekdays)
	l.WeekdaysFull = slices.Clone(l.WeekdaysFull)
	l.Texts = maps.Clone(l.Texts)
	if l.CalendarMonths != nil {
		cm := make(map[calendar.Type][]string, len(l.CalendarMonths))
		for k, v := range l.CalendarMonths {
			cm[k] = slices.Clone(v)
		}
		l.CalendarMonths = cm
	}
	return l
}
