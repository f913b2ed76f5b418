package selection

import "github.com/nvkalinin/datepicker/calendar"

type RangeState string

const (
	RangeEmpty     RangeState = "empty"
	RangeSelecting RangeState = "selecting"
	RangeComplete  RangeState = "complete"
)

// RangeSelection is the empty -> selecting -> complete state machine. Once both bounds
// are set, start <= end.
type RangeSelection struct {
	start, end *calendar.Date
}

// NewRange seeds the selection from r. A lone end becomes the start, reversed bounds are swapped.
func NewRange(r *calendar.Range) *RangeSelection {
	s := &RangeSelection{}
	if r == nil {
		return s
	}

	s.start, s.end = copyPtr(r.Start), copyPtr(r.End)
	switch {
	case s.start == nil:
		s.start, s.end = s.end, nil
	case s.end != nil && calendar.Before(*s.end, *s.start):
		s.start, s.end = s.end, s.start
	}
	return s
}

func (s *RangeSelection) Mode() Mode {
	return Range
}

func (s *RangeSelection) State() RangeState {
	switch {
	case s.start == nil:
		return RangeEmpty
	case s.end == nil:
		return RangeSelecting
	default:
		return RangeComplete
	}
}

func (s *RangeSelection) Select(d calendar.Date) {
	date := copyPtr(&d)

	if s.start == nil || s.end != nil {
		s.start, s.end = date, nil
		return
	}

	switch c := calendar.Compare(d, *s.start); {
	case c < 0:
		s.start, s.end = date, s.start
	case c == 0:
		s.start, s.end = nil, nil
	default:
		s.end = date
	}
}

func (s *RangeSelection) IsSelected(d calendar.Date) bool {
	return s.IsRangeStart(d) || s.IsRangeEnd(d)
}

// IsInRange excludes the bounds.
func (s *RangeSelection) IsInRange(d calendar.Date) bool {
	if s.start == nil || s.end == nil {
		return false
	}
	return calendar.BetweenExclusive(d, *s.start, *s.end)
}

func (s *RangeSelection) IsRangeStart(d calendar.Date) bool {
	return same(s.start, d)
}

func (s *RangeSelection) IsRangeEnd(d calendar.Date) bool {
	return same(s.end, d)
}

func (s *RangeSelection) Value() *Value {
	if s.State() != RangeComplete {
		return nil
	}
	v := s.Draft()
	return &v
}

func (s *RangeSelection) Draft() Value {
	if s.start == nil {
		return Value{Mode: Range}
	}
	return Value{Mode: Range, Range: &calendar.Range{Start: copyPtr(s.start), End: copyPtr(s.end)}}
}

func (s *RangeSelection) Clear() {
	s.start, s.end = nil, nil
}
