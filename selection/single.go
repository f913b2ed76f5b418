package selection

import "github.com/nvkalinin/datepicker/calendar"

// SingleSelection replaces the date on every Select.
type SingleSelection struct {
	selected *calendar.Date
}

func NewSingle(initial *calendar.Date) *SingleSelection {
	return &SingleSelection{selected: copyPtr(initial)}
}

func (s *SingleSelection) Mode() Mode {
	return Single
}

func (s *SingleSelection) Select(d calendar.Date) {
	s.selected = copyPtr(&d)
}

func (s *SingleSelection) IsSelected(d calendar.Date) bool {
	return same(s.selected, d)
}

func (s *SingleSelection) IsInRange(calendar.Date) bool    { return false }
func (s *SingleSelection) IsRangeStart(calendar.Date) bool { return false }
func (s *SingleSelection) IsRangeEnd(calendar.Date) bool   { return false }

func (s *SingleSelection) Value() *Value {
	if s.selected == nil {
		return nil
	}
	v := s.Draft()
	return &v
}

func (s *SingleSelection) Draft() Value {
	return Value{Mode: Single, Date: copyPtr(s.selected)}
}

func (s *SingleSelection) Clear() {
	s.selected = nil
}
