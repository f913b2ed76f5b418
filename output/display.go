package output

import (
	"fmt"
	"strings"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/locale"
	"github.com/nvkalinin/datepicker/selection"
)

const (
	RangeSeparator    = " - "
	MultipleSeparator = "، "
)

type DisplayOptions struct {
	Layout     string // DefaultLayout if empty
	TwelveHour bool
	Locale     *locale.Locale // names and digits, Latin digits if nil
}

// Display renders the human-readable text of a selection draft. An incomplete range
// shows its start only. Empty values give "".
func Display(cal calendar.Calendar, v selection.Value, opts DisplayOptions) (string, error) {
	var parts []string
	var sep string

	switch v.Mode {
	case selection.Single:
		if v.Date != nil {
			s, err := displayDate(cal, *v.Date, opts)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
	case selection.Range:
		sep = RangeSeparator
		if v.Range != nil {
			for _, d := range []*calendar.Date{v.Range.Start, v.Range.End} {
				if d == nil {
					continue
				}
				s, err := displayDate(cal, *d, opts)
				if err != nil {
					return "", err
				}
				parts = append(parts, s)
			}
		}
	case selection.Multiple:
		sep = MultipleSeparator
		for _, d := range v.Dates {
			s, err := displayDate(cal, d, opts)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
	default:
		return "", fmt.Errorf("output: unknown selection mode %q", v.Mode)
	}

	s := strings.Join(parts, sep)
	if opts.Locale != nil {
		s = locale.ToLocalDigits(s, opts.Locale.NumberSystem)
	}
	return s, nil
}

func displayDate(cal calendar.Calendar, d calendar.Date, opts DisplayOptions) (string, error) {
	layout := opts.Layout
	if layout == "" {
		layout = DefaultLayout
	}

	s, err := FormatDate(cal, d.DateOnly(), layout, opts.Locale)
	if err != nil {
		return "", err
	}
	if d.Time != nil {
		s += " " + FormatTime(*d.Time, opts.TwelveHour)
	}
	return s, nil
}

// FormatTime gives HH:MM, or HH:MM AM/PM on a 12-hour clock where 0 and 12 show as 12.
func FormatTime(t calendar.TimeOfDay, twelveHour bool) string {
	if !twelveHour {
		return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
	}

	period := "AM"
	if t.Hour >= 12 {
		period = "PM"
	}
	h := t.Hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h, t.Minute, period)
}
