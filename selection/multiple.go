package selection

import (
	"slices"

	"github.com/nvkalinin/datepicker/calendar"
)

// MultipleSelection toggles dates in a set. Dates are equal when their day is.
type MultipleSelection struct {
	dates []calendar.Date // insertion order
}

func NewMultiple(initial []calendar.Date) *MultipleSelection {
	s := &MultipleSelection{dates: make([]calendar.Date, 0, len(initial))}
	for _, d := range initial {
		if s.index(d) < 0 {
			s.dates = append(s.dates, d.Copy())
		}
	}
	return s
}

func (s *MultipleSelection) Mode() Mode {
	return Multiple
}

func (s *MultipleSelection) Select(d calendar.Date) {
	if i := s.index(d); i >= 0 {
		s.dates = slices.Delete(s.dates, i, i+1)
		return
	}
	s.dates = append(s.dates, d.Copy())
}

func (s *MultipleSelection) Remove(d calendar.Date) {
	s.dates = slices.DeleteFunc(s.dates, func(x calendar.Date) bool {
		return calendar.Same(x, d)
	})
}

func (s *MultipleSelection) Count() int {
	return len(s.dates)
}

func (s *MultipleSelection) IsSelected(d calendar.Date) bool {
	return s.index(d) >= 0
}

func (s *MultipleSelection) IsInRange(calendar.Date) bool    { return false }
func (s *MultipleSelection) IsRangeStart(calendar.Date) bool { return false }
func (s *MultipleSelection) IsRangeEnd(calendar.Date) bool   { return false }

// Value lists the dates in ascending order.
func (s *MultipleSelection) Value() *Value {
	if len(s.dates) == 0 {
		return nil
	}
	v := s.Draft()
	return &v
}

func (s *MultipleSelection) Draft() Value {
	dates := make([]calendar.Date, len(s.dates))
	for i, d := range s.dates {
		dates[i] = d.Copy()
	}
	return Value{Mode: Multiple, Dates: calendar.Sort(dates, false)}
}

func (s *MultipleSelection) Clear() {
	s.dates = s.dates[:0]
}

func (s *MultipleSelection) index(d calendar.Date) int {
	return slices.IndexFunc(s.dates, func(x calendar.Date) bool {
		return calendar.Same(x, d)
	})
}
