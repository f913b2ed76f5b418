// Package picker combines navigation, selection, constraints and time of day into one
// date picker instance.
//
// A Picker is not safe for concurrent use. Callers serialize access, as store.Sessions does.
package picker

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/locale"
	"github.com/nvkalinin/datepicker/output"
	"github.com/nvkalinin/datepicker/parse"
	"github.com/nvkalinin/datepicker/selection"
)

// ErrDisabled is returned for dates outside the constraints.
var ErrDisabled = errors.New("date is disabled")

// Options configure a new picker. Zero values mean the defaults: single mode, Jalali
// calendar, 24-hour clock, object output, 50 navigable years before and after today.
type Options struct {
	Mode     selection.Mode `json:"mode,omitempty"`
	Calendar calendar.Type  `json:"calendar,omitempty" validate:"omitempty,oneof=jalali gregorian hijri chinese"`
	Locale   string         `json:"locale,omitempty"`

	// Initial, MinDate and MaxDate accept everything parse.Parser does.
	Initial any  `json:"initial,omitempty"`
	MinDate any  `json:"minDate,omitempty"`
	MaxDate any  `json:"maxDate,omitempty"`
	Strict  bool `json:"strict,omitempty"`

	EnableTime bool       `json:"enableTime,omitempty"`
	TimeFormat TimeFormat `json:"timeFormat,omitempty" validate:"omitempty,oneof=12 24"`

	Output   output.Format `json:"output,omitempty" validate:"omitempty,oneof=object timestamp unix iso string"`
	Layout   string        `json:"layout,omitempty"`
	Location string        `json:"location,omitempty" validate:"omitempty,timezone"`

	YearsBefore int `json:"yearsBefore,omitempty" validate:"gte=0"`
	YearsAfter  int `json:"yearsAfter,omitempty" validate:"gte=0"`
}

var validate = validator.New()

func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = selection.Single
	}
	if o.Calendar == "" {
		o.Calendar = calendar.Jalali
	}
	if o.TimeFormat == 0 {
		o.TimeFormat = Clock24
	}
	if o.Output == "" {
		o.Output = output.Object
	}
	if o.Layout == "" {
		o.Layout = output.DefaultLayout
	}
	if o.YearsBefore == 0 {
		o.YearsBefore = DefaultYearsBefore
	}
	if o.YearsAfter == 0 {
		o.YearsAfter = DefaultYearsAfter
	}
	return o
}

func (o Options) check() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return calendar.NewConfigurationError(fe.Field(), "value %v fails %q", fe.Value(), fe.Tag())
	}
	return calendar.NewConfigurationError("options", "%v", err)
}

type Picker struct {
	opts Options
	cals *calendar.Registry

	cal    calendar.Calendar
	parser parse.Parser
	loc    *time.Location

	nav  *Navigation
	sel  selection.Strategy
	cons *Constraints
	tm   *TimeSelection // nil unless EnableTime

	confirmed *selection.Value
}

// New builds a picker. Calendars are looked up in cals; an unregistered calendar is a
// configuration error.
func New(cals *calendar.Registry, opts Options) (*Picker, error) {
	opts = opts.withDefaults()
	if err := opts.check(); err != nil {
		return nil, err
	}

	p, err := newBare(cals, opts)
	if err != nil {
		return nil, err
	}

	min, err := p.parser.Parse(opts.MinDate)
	if err != nil {
		return nil, err
	}
	max, err := p.parser.Parse(opts.MaxDate)
	if err != nil {
		return nil, err
	}
	if p.cons, err = NewConstraints(p.cal, min, max); err != nil {
		return nil, err
	}

	if p.sel, err = selection.New(opts.Mode, p.parser, opts.Initial); err != nil {
		return nil, err
	}

	first := firstDate(p.sel.Draft())
	if p.nav, err = NewNavigation(p.cal, first, opts.YearsBefore, opts.YearsAfter); err != nil {
		return nil, err
	}

	if opts.EnableTime {
		var initial *calendar.TimeOfDay
		if first != nil {
			initial = first.Time
		}
		if p.tm, err = NewTimeSelection(opts.TimeFormat, initial); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func newBare(cals *calendar.Registry, opts Options) (*Picker, error) {
	cal, ok := cals.Lookup(opts.Calendar)
	if !ok {
		return nil, calendar.NewConfigurationError("calendar", "calendar %q is not registered", opts.Calendar)
	}

	loc := time.UTC
	if opts.Location != "" {
		var err error
		if loc, err = time.LoadLocation(opts.Location); err != nil {
			return nil, calendar.NewConfigurationError("location", "%v", err)
		}
	}

	return &Picker{
		opts:   opts,
		cals:   cals,
		cal:    cal,
		parser: parse.Parser{Cal: cal, Strict: opts.Strict},
		loc:    loc,
	}, nil
}

// firstDate is the earliest date of a selection, nil if there is none.
func firstDate(v selection.Value) *calendar.Date {
	switch {
	case v.Date != nil:
		return v.Date
	case v.Range != nil && v.Range.Start != nil:
		return v.Range.Start
	case len(v.Dates) > 0:
		return &v.Dates[0]
	}
	return nil
}

func (p *Picker) Options() Options              { return p.opts }
func (p *Picker) Calendar() calendar.Calendar   { return p.cal }
func (p *Picker) Navigation() *Navigation       { return p.nav }
func (p *Picker) Selection() selection.Strategy { return p.sel }
func (p *Picker) Constraints() *Constraints     { return p.cons }
func (p *Picker) Time() *TimeSelection          { return p.tm }
func (p *Picker) Confirmed() *selection.Value   { return copyValue(p.confirmed) }

// OutputOptions describes the result format. l resolves month and weekday names.
func (p *Picker) OutputOptions(l *locale.Locale) output.Options {
	return output.Options{Format: p.opts.Output, Layout: p.opts.Layout, Location: p.loc, Names: l}
}

// Grid is the displayed month.
func (p *Picker) Grid() (Grid, error) {
	return BuildGrid(p.cal, p.nav.Year(), p.nav.Month(), p.nav.Leap(), p.sel, p.cons)
}

// SelectDay handles a click on a grid cell. Disabled cells are ignored, cells of the
// neighbouring months move the display to their month first. It reports whether the
// selection changed.
func (p *Picker) SelectDay(c Cell) bool {
	if c.IsDisabled || p.cons.IsDisabled(&c.Date) {
		return false
	}
	if c.IsPrevMonth || c.IsNextMonth {
		p.nav.GoToDate(c.Date)
	}
	p.sel.Select(c.Date)
	return true
}

// SelectDate selects d as if its cell were clicked.
func (p *Picker) SelectDate(d calendar.Date) error {
	if err := calendar.Validate(p.cal, d); err != nil {
		return err
	}
	if p.cons.IsDisabled(&d) {
		return fmt.Errorf("%s: %w", d, ErrDisabled)
	}
	if d.Year != p.nav.Year() || d.Month != p.nav.Month() || d.Leap != p.nav.Leap() {
		p.nav.GoToDate(d)
	}
	p.sel.Select(d)
	return nil
}

// SetCalendar switches the picker to calendar t. Selection, bounds, the confirmed value
// and the displayed month are converted. On error nothing changes.
func (p *Picker) SetCalendar(t calendar.Type) error {
	if t == p.cal.Type() {
		return nil
	}
	to, ok := p.cals.Lookup(t)
	if !ok {
		return calendar.NewConfigurationError("calendar", "calendar %q is not registered", t)
	}

	draft, err := convertValue(p.cal, to, p.sel.Draft())
	if err != nil {
		return err
	}
	sel, err := selection.FromDraft(draft)
	if err != nil {
		return err
	}
	cons, err := p.cons.convert(to)
	if err != nil {
		return err
	}
	var confirmed *selection.Value
	if p.confirmed != nil {
		v, err := convertValue(p.cal, to, *p.confirmed)
		if err != nil {
			return err
		}
		confirmed = &v
	}
	if err := p.nav.SetCalendar(to); err != nil {
		return err
	}

	p.cal, p.sel, p.cons, p.confirmed = to, sel, cons, confirmed
	p.parser.Cal = to
	p.opts.Calendar = t
	return nil
}

func convertValue(from, to calendar.Calendar, v selection.Value) (selection.Value, error) {
	conv := func(d *calendar.Date) (*calendar.Date, error) {
		if d == nil {
			return nil, nil
		}
		res, err := calendar.Convert(from, to, *d)
		if err != nil {
			return nil, err
		}
		return &res, nil
	}

	res := selection.Value{Mode: v.Mode}
	var err error
	if res.Date, err = conv(v.Date); err != nil {
		return selection.Value{}, err
	}
	if v.Range != nil {
		res.Range = &calendar.Range{}
		if res.Range.Start, err = conv(v.Range.Start); err != nil {
			return selection.Value{}, err
		}
		if res.Range.End, err = conv(v.Range.End); err != nil {
			return selection.Value{}, err
		}
	}
	for _, d := range v.Dates {
		c, err := conv(&d)
		if err != nil {
			return selection.Value{}, err
		}
		res.Dates = append(res.Dates, *c)
	}
	return res, nil
}

// Confirm commits the current selection. With time enabled, the selected time (00:00 if
// none) is set on every date. It returns nil when nothing can be confirmed yet.
func (p *Picker) Confirm() *selection.Value {
	v := p.sel.Value()
	if v == nil {
		p.confirmed = nil
		return nil
	}
	if p.tm != nil {
		tod := calendar.TimeOfDay{}
		if t := p.tm.Value(); t != nil {
			tod = *t
		}
		withTime(v, tod)
	}
	p.confirmed = v
	return copyValue(v)
}

func withTime(v *selection.Value, tod calendar.TimeOfDay) {
	set := func(d *calendar.Date) {
		if d != nil {
			*d = d.WithTime(tod.Hour, tod.Minute)
		}
	}
	set(v.Date)
	if v.Range != nil {
		set(v.Range.Start)
		set(v.Range.End)
	}
	for i := range v.Dates {
		set(&v.Dates[i])
	}
}

// Result is the confirmed value in the configured output format, nil before Confirm.
// l resolves month and weekday names of string layouts.
func (p *Picker) Result(l *locale.Locale) (any, error) {
	return output.Transform(p.cal, p.confirmed, p.OutputOptions(l))
}

// Display is the text of the current selection. The selected time is included when time is enabled.
func (p *Picker) Display(l *locale.Locale) (string, error) {
	v := p.sel.Draft()
	if p.tm != nil {
		if t := p.tm.Value(); t != nil {
			withTime(&v, *t)
		}
	}
	return output.Display(p.cal, v, output.DisplayOptions{
		Layout:     p.opts.Layout,
		TwelveHour: p.opts.TimeFormat == Clock12,
		Locale:     l,
	})
}

// Reset clears the selection and time, and shows the initial month again.
func (p *Picker) Reset() error {
	p.sel.Clear()
	if p.tm != nil {
		p.tm.Reset()
	}
	p.confirmed = nil
	return p.nav.Reset()
}

func copyValue(v *selection.Value) *selection.Value {
	if v == nil {
		return nil
	}
	res := *v
	res.Date = datePtr(v.Date)
	if v.Range != nil {
		res.Range = &calendar.Range{Start: datePtr(v.Range.Start), End: datePtr(v.Range.End)}
	}
	if v.Dates != nil {
		res.Dates = make([]calendar.Date, len(v.Dates))
		for i, d := range v.Dates {
			res.Dates[i] = d.Copy()
		}
	}
	return &res
}
