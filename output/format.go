package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/locale"
)

// Layout tokens, longest first so that MMMM wins over MM and M.
var tokens = []string{"YYYY", "MMMM", "dddd", "YY", "MM", "DD", "HH", "mm", "M", "D", "H", "m"}

func isTimeToken(tok string) bool {
	switch tok {
	case "HH", "H", "mm", "m":
		return true
	default:
		return false
	}
}

// FormatDate renders d with a token layout in a single left-to-right pass:
//
//	YYYY  year           YY  two-digit year
//	MMMM  month name     MM  zero-padded month   M  month
//	DD    zero-padded    D   day
//	HH    padded hour    H   hour
//	mm    padded minute  m   minute
//	dddd  weekday name
//
// Time tokens stay literal when d has no time. Name tokens stay literal when names is nil.
// Everything else is copied as is. Digits are Latin.
func FormatDate(cal calendar.Calendar, d calendar.Date, layout string, names *locale.Locale) (string, error) {
	var b strings.Builder
	b.Grow(len(layout) + 8)

	for i := 0; i < len(layout); {
		tok := matchToken(layout[i:])
		if tok == "" {
			b.WriteByte(layout[i])
			i++
			continue
		}
		i += len(tok)

		s, ok, err := render(cal, d, tok, names)
		if err != nil {
			return "", err
		}
		if !ok {
			s = tok
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func matchToken(s string) string {
	for _, tok := range tokens {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

func render(cal calendar.Calendar, d calendar.Date, tok string, names *locale.Locale) (string, bool, error) {
	if isTimeToken(tok) && d.Time == nil {
		return "", false, nil
	}

	switch tok {
	case "YYYY":
		return strconv.Itoa(d.Year), true, nil
	case "YY":
		return fmt.Sprintf("%02d", d.Year%100), true, nil
	case "MM":
		return fmt.Sprintf("%02d", d.Month), true, nil
	case "M":
		return strconv.Itoa(d.Month), true, nil
	case "DD":
		return fmt.Sprintf("%02d", d.Day), true, nil
	case "D":
		return strconv.Itoa(d.Day), true, nil
	case "HH":
		return fmt.Sprintf("%02d", d.Time.Hour), true, nil
	case "H":
		return strconv.Itoa(d.Time.Hour), true, nil
	case "mm":
		return fmt.Sprintf("%02d", d.Time.Minute), true, nil
	case "m":
		return strconv.Itoa(d.Time.Minute), true, nil

	case "MMMM":
		if names == nil {
			return "", false, nil
		}
		name := names.MonthName(cal.Type(), d.Month)
		return name, name != "", nil

	case "dddd":
		if names == nil {
			return "", false, nil
		}
		w, err := cal.Weekday(d)
		if err != nil {
			return "", false, err
		}
		name := names.WeekdayFullName(w)
		return name, name != "", nil
	}
	return "", false, nil
}
