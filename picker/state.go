package picker

import (
	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/selection"
)

// State is a serializable snapshot of a picker. Dates are in Options.Calendar; raw
// initial and bound input is not kept, only its parsed form.
type State struct {
	Options    Options          `json:"options"`
	Initial    *calendar.Date   `json:"initial,omitempty"`
	Min        *calendar.Date   `json:"min,omitempty"`
	Max        *calendar.Date   `json:"max,omitempty"`
	Selection  selection.Value  `json:"selection"`
	Navigation NavState         `json:"navigation"`
	Time       *TimeState       `json:"time,omitempty"`
	Confirmed  *selection.Value `json:"confirmed,omitempty"`
}

// Copy is deep except for the raw input fields of Options.
func (s State) Copy() State {
	s.Initial, s.Min, s.Max = datePtr(s.Initial), datePtr(s.Min), datePtr(s.Max)
	s.Selection = *copyValue(&s.Selection)
	s.Confirmed = copyValue(s.Confirmed)
	if s.Time != nil {
		ts := TimeState{Hour: intPtr(s.Time.Hour), Minute: intPtr(s.Time.Minute), Period: s.Time.Period}
		s.Time = &ts
	}
	return s
}

func (p *Picker) Snapshot() State {
	opts := p.opts
	opts.Initial, opts.MinDate, opts.MaxDate = nil, nil, nil

	s := State{
		Options:    opts,
		Initial:    datePtr(p.nav.initial),
		Min:        p.cons.Min(),
		Max:        p.cons.Max(),
		Selection:  p.sel.Draft(),
		Navigation: p.nav.State(),
		Confirmed:  copyValue(p.confirmed),
	}
	if p.tm != nil {
		ts := p.tm.State()
		s.Time = &ts
	}
	return s
}

// Restore rebuilds a picker from a snapshot. Calendars are looked up in cals.
func Restore(cals *calendar.Registry, s State) (*Picker, error) {
	opts := s.Options.withDefaults()
	if err := opts.check(); err != nil {
		return nil, err
	}

	p, err := newBare(cals, opts)
	if err != nil {
		return nil, err
	}

	if p.cons, err = NewConstraints(p.cal, s.Min, s.Max); err != nil {
		return nil, err
	}
	if p.sel, err = selection.FromDraft(s.Selection); err != nil {
		return nil, err
	}
	if p.sel.Mode() != opts.Mode {
		return nil, calendar.NewConfigurationError("mode", "selection is %s, picker is %s", p.sel.Mode(), opts.Mode)
	}

	p.nav = &Navigation{
		cal:         p.cal,
		initial:     datePtr(s.Initial),
		yearsBefore: opts.YearsBefore,
		yearsAfter:  opts.YearsAfter,
	}
	if err := p.nav.restore(s.Navigation); err != nil {
		return nil, err
	}

	if opts.EnableTime {
		if p.tm, err = NewTimeSelection(opts.TimeFormat, nil); err != nil {
			return nil, err
		}
		if s.Time != nil {
			if err := p.tm.restore(*s.Time); err != nil {
				return nil, err
			}
		}
	}
	p.confirmed = copyValue(s.Confirmed)
	return p, nil
}
