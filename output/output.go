// Package output converts a confirmed selection into the representation requested by
// the caller: structured dates, epoch values, ISO strings or token layouts.
package output

import (
	"fmt"
	"time"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/locale"
	"github.com/nvkalinin/datepicker/selection"
)

type Format string

const (
	Object    Format = "object"
	Timestamp Format = "timestamp" // epoch milliseconds
	Unix      Format = "unix"      // epoch seconds
	ISO       Format = "iso"
	String    Format = "string"
)

const (
	DefaultLayout = "YYYY/MM/DD"
	isoLayout     = "2006-01-02T15:04:05.000Z"
)

func (f Format) Valid() bool {
	switch f {
	case Object, Timestamp, Unix, ISO, String:
		return true
	default:
		return false
	}
}

type Options struct {
	Format Format
	Layout string // for String, DefaultLayout if empty

	// Location is the zone of the date's wall clock for the epoch formats. Nil means UTC.
	Location *time.Location

	// Names resolves MMMM and dddd in layouts.
	Names *locale.Locale
}

// Range is a transformed range value.
type Range[T any] struct {
	Start T `json:"start"`
	End   T `json:"end"`
}

// Transform renders v with opts. The result is nil for a nil value, one converted date
// for single mode, a Range for range mode and a slice for multiple mode. Dates are
// interpreted in calendar cal.
func Transform(cal calendar.Calendar, v *selection.Value, opts Options) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch opts.Format {
	case Object, "":
		return mapValue(v, func(d calendar.Date) (calendar.Date, error) { return d.Copy(), nil })
	case Timestamp:
		return mapValue(v, func(d calendar.Date) (int64, error) { return ToTimestamp(cal, d, opts.Location) })
	case Unix:
		return mapValue(v, func(d calendar.Date) (int64, error) { return ToUnix(cal, d, opts.Location) })
	case ISO:
		return mapValue(v, func(d calendar.Date) (string, error) { return ToISO(cal, d, opts.Location) })
	case String:
		layout := opts.Layout
		if layout == "" {
			layout = DefaultLayout
		}
		return mapValue(v, func(d calendar.Date) (string, error) { return FormatDate(cal, d, layout, opts.Names) })
	default:
		return nil, calendar.NewConfigurationError("output", "unknown format %q", opts.Format)
	}
}

func mapValue[T any](v *selection.Value, f func(calendar.Date) (T, error)) (any, error) {
	switch v.Mode {
	case selection.Single:
		if v.Date == nil {
			return nil, nil
		}
		return f(*v.Date)

	case selection.Range:
		if v.Range == nil || !v.Range.Complete() {
			return nil, nil
		}
		start, err := f(*v.Range.Start)
		if err != nil {
			return nil, err
		}
		end, err := f(*v.Range.End)
		if err != nil {
			return nil, err
		}
		return Range[T]{Start: start, End: end}, nil

	case selection.Multiple:
		res := make([]T, 0, len(v.Dates))
		for _, d := range v.Dates {
			x, err := f(d)
			if err != nil {
				return nil, err
			}
			res = append(res, x)
		}
		return res, nil

	default:
		return nil, fmt.Errorf("output: unknown selection mode %q", v.Mode)
	}
}

// Instant is the real-time point of d's wall clock (00:00 without a time) in loc.
func Instant(cal calendar.Calendar, d calendar.Date, loc *time.Location) (time.Time, error) {
	day, err := cal.ToTime(d)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}

	var hour, minute int
	if d.Time != nil {
		hour, minute = d.Time.Hour, d.Time.Minute
	}
	y, m, dd := day.Date()
	return time.Date(y, m, dd, hour, minute, 0, 0, loc), nil
}

func ToTimestamp(cal calendar.Calendar, d calendar.Date, loc *time.Location) (int64, error) {
	t, err := Instant(cal, d, loc)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

func ToUnix(cal calendar.Calendar, d calendar.Date, loc *time.Location) (int64, error) {
	t, err := Instant(cal, d, loc)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}

// ToISO renders the instant in UTC with millisecond precision.
func ToISO(cal calendar.Calendar, d calendar.Date, loc *time.Location) (string, error) {
	t, err := Instant(cal, d, loc)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(isoLayout), nil
}
