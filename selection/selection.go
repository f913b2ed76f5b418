// Package selection implements the selection modes of the picker. Each strategy owns
// its state and is mutated only through Select, Clear (and Remove for multiple mode).
package selection

import (
	"fmt"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/parse"
)

type Mode string

const (
	Single   Mode = "single"
	Range    Mode = "range"
	Multiple Mode = "multiple"
)

func (m Mode) Valid() bool {
	switch m {
	case Single, Range, Multiple:
		return true
	default:
		return false
	}
}

// Value is the selection of one strategy. Exactly one of Date, Range, Dates is used,
// depending on Mode.
type Value struct {
	Mode  Mode            `json:"mode"`
	Date  *calendar.Date  `json:"date,omitempty"`
	Range *calendar.Range `json:"range,omitempty"`
	Dates []calendar.Date `json:"dates,omitempty"`
}

// Strategy is the behaviour shared by all modes.
type Strategy interface {
	Mode() Mode
	Select(d calendar.Date)
	IsSelected(d calendar.Date) bool
	IsInRange(d calendar.Date) bool
	IsRangeStart(d calendar.Date) bool
	IsRangeEnd(d calendar.Date) bool

	// Value is the committed selection, nil while nothing can be confirmed.
	Value() *Value

	// Draft is the working state, including an unfinished range.
	Draft() Value
	Clear()
}

// New creates the strategy for mode, seeded from initial. The initial value goes
// through p: a single date for single mode, a range for range mode, a list otherwise.
func New(mode Mode, p parse.Parser, initial any) (Strategy, error) {
	switch mode {
	case Single:
		d, err := p.Parse(initial)
		if err != nil {
			return nil, err
		}
		return NewSingle(d), nil
	case Range:
		r, err := p.ParseRange(initial)
		if err != nil {
			return nil, err
		}
		return NewRange(r), nil
	case Multiple:
		dates, err := p.ParseMultiple(initial)
		if err != nil {
			return nil, err
		}
		return NewMultiple(dates), nil
	default:
		return nil, unknownMode(mode)
	}
}

// FromDraft rebuilds a strategy from a saved Draft.
func FromDraft(v Value) (Strategy, error) {
	switch v.Mode {
	case Single:
		return NewSingle(v.Date), nil
	case Range:
		return NewRange(v.Range), nil
	case Multiple:
		return NewMultiple(v.Dates), nil
	default:
		return nil, unknownMode(v.Mode)
	}
}

func unknownMode(m Mode) error {
	return calendar.NewConfigurationError("mode", "unknown selection mode %q, valid modes: %s, %s, %s", m, Single, Range, Multiple)
}

func copyPtr(d *calendar.Date) *calendar.Date {
	if d == nil {
		return nil
	}
	c := d.Copy()
	return &c
}

func same(a *calendar.Date, b calendar.Date) bool {
	return a != nil && calendar.Same(*a, b)
}

func (v Value) String() string {
	switch v.Mode {
	case Single:
		if v.Date == nil {
			return "single: none"
		}
		return "single: " + v.Date.String()
	case Range:
		if v.Range == nil {
			return "range: none"
		}
		return fmt.Sprintf("range: %v - %v", v.Range.Start, v.Range.End)
	default:
		return fmt.Sprintf("%s: %v", v.Mode, v.Dates)
	}
}
