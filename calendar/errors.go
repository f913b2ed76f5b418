package calendar

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrOutOfRange  = errors.New("date out of supported range")
	ErrFormat      = errors.New("unrecognized date format")
)

// DateError is returned by calendars for dates they cannot represent.
type DateError struct {
	Calendar Type
	Date     Date
	Err      error
}

func (e *DateError) Error() string {
	if e.Date.Day == 0 {
		return fmt.Sprintf("%s calendar: %v: %d-%02d", e.Calendar, e.Err, e.Date.Year, e.Date.Month)
	}
	return fmt.Sprintf("%s calendar: %v: %d-%02d-%02d", e.Calendar, e.Err, e.Date.Year, e.Date.Month, e.Date.Day)
}

func (e *DateError) Unwrap() error {
	return e.Err
}

func dateErr(t Type, d Date, err error) error {
	return &DateError{Calendar: t, Date: d, Err: err}
}

// ConfigurationError reports invalid construction input: unknown modes, incomplete
// locale tables, contradictory bounds and the like.
type ConfigurationError struct {
	Field string
	Msg   string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Msg
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Msg)
}

func NewConfigurationError(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}
