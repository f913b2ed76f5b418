// Package parse normalizes raw date input (strings, structured values, decoded JSON)
// into validated dates of one calendar system.
package parse

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/locale"
)

// DateParseError is returned in strict mode only. Input is the value as it was given.
type DateParseError struct {
	Input  any
	Reason string
	Err    error
}

func (e *DateParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot parse date %v: %s: %v", e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot parse date %v: %s", e.Input, e.Reason)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// Parser parses dates for one calendar. A lenient parser (Strict == false) returns a nil
// date instead of an error.
type Parser struct {
	Cal    calendar.Calendar
	Strict bool
}

var sepRe = regexp.MustCompile(`[/\-.]`)

// Field names of structured input, in lookup order.
var (
	yearKeys  = []string{"year", "jy", "y"}
	monthKeys = []string{"month", "jm", "m"}
	dayKeys   = []string{"day", "jd", "d"}
)

// Parse accepts nil, a string (YYYY-MM-DD with /, - or . separators, any digit system),
// a calendar.Date or *calendar.Date, a time.Time, or a map with year/month/day fields
// (jy/jm/jd and y/m/d also work) and optional leap, hour and minute.
// Nil input yields a nil date in both modes.
func (p Parser) Parse(input any) (*calendar.Date, error) {
	d, reason, err := p.parse(input)
	if reason == "" {
		return d, nil
	}
	if !p.Strict {
		return nil, nil
	}
	return nil, &DateParseError{Input: input, Reason: reason, Err: err}
}

func (p Parser) parse(input any) (d *calendar.Date, reason string, err error) {
	switch v := input.(type) {
	case nil:
		return nil, "", nil
	case string:
		return p.parseString(v)
	case calendar.Date:
		return p.validated(v.Copy(), "invalid date value")
	case *calendar.Date:
		if v == nil {
			return nil, "", nil
		}
		return p.validated(v.Copy(), "invalid date value")
	case time.Time:
		res, err := p.Cal.FromTime(v)
		if err != nil {
			return nil, "time outside calendar range", err
		}
		return &res, "", nil
	case map[string]any:
		return p.parseMap(v)
	default:
		return nil, fmt.Sprintf("unsupported date type %T", input), nil
	}
}

func (p Parser) parseString(s string) (*calendar.Date, string, error) {
	parts := sepRe.Split(locale.ToLatinDigits(strings.TrimSpace(s)), -1)
	if len(parts) != 3 {
		return nil, "invalid date string", nil
	}

	var ymd [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, "invalid date string", nil
		}
		ymd[i] = n
	}
	return p.validated(calendar.NewDate(ymd[0], ymd[1], ymd[2]), "invalid date string")
}

func (p Parser) parseMap(m map[string]any) (*calendar.Date, string, error) {
	y, okY := lookupInt(m, yearKeys...)
	mon, okM := lookupInt(m, monthKeys...)
	day, okD := lookupInt(m, dayKeys...)
	if !okY || !okM || !okD {
		return nil, "invalid date object", nil
	}

	d := calendar.NewDate(y, mon, day)
	if leap, ok := m["leap"].(bool); ok {
		d.Leap = leap
	}

	hour, hasHour := lookupInt(m, "hour")
	minute, hasMinute := lookupInt(m, "minute")
	if hasHour || hasMinute {
		d = d.WithTime(hour, minute)
	}
	return p.validated(d, "invalid date object")
}

func (p Parser) validated(d calendar.Date, reason string) (*calendar.Date, string, error) {
	if err := calendar.Validate(p.Cal, d); err != nil {
		return nil, reason, err
	}
	return &d, "", nil
}

// ParseRange accepts a calendar.Range, a map with start/end, or a two-element slice.
// Each bound is parsed with Parse. The result is nil when both bounds are missing.
func (p Parser) ParseRange(input any) (*calendar.Range, error) {
	var start, end any

	switch v := input.(type) {
	case nil:
		return nil, nil
	case calendar.Range:
		start, end = v.Start, v.End
	case *calendar.Range:
		if v == nil {
			return nil, nil
		}
		start, end = v.Start, v.End
	case map[string]any:
		start, end = v["start"], v["end"]
	case []any:
		if len(v) != 2 {
			return p.fail(input, "range must have two bounds")
		}
		start, end = v[0], v[1]
	default:
		return p.fail(input, fmt.Sprintf("unsupported range type %T", input))
	}

	s, err := p.Parse(start)
	if err != nil {
		return nil, err
	}
	e, err := p.Parse(end)
	if err != nil {
		return nil, err
	}
	if s == nil && e == nil {
		return nil, nil
	}
	return &calendar.Range{Start: s, End: e}, nil
}

func (p Parser) fail(input any, reason string) (*calendar.Range, error) {
	if !p.Strict {
		return nil, nil
	}
	return nil, &DateParseError{Input: input, Reason: reason}
}

// ParseMultiple parses every element of a slice. A lenient parser skips the elements it
// cannot parse, a strict one stops at the first.
func (p Parser) ParseMultiple(input any) ([]calendar.Date, error) {
	if input == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(input)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		if p.Strict {
			return nil, &DateParseError{Input: input, Reason: fmt.Sprintf("unsupported list type %T", input)}
		}
		return []calendar.Date{}, nil
	}

	dates := make([]calendar.Date, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		d, err := p.Parse(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		if d != nil {
			dates = append(dates, *d)
		}
	}
	return dates, nil
}

func lookupInt(m map[string]any, keys ...string) (int, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return toInt(v)
		}
	}
	return 0, false
}

// toInt accepts integers, integral floats (decoded JSON) and json.Number.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
