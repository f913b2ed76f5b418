package picker

import (
	"fmt"

	"github.com/nvkalinin/datepicker/calendar"
)

type View string

const (
	DaysView   View = "days"
	MonthsView View = "months"
	YearsView  View = "years"
)

func (v View) Valid() bool {
	switch v {
	case DaysView, MonthsView, YearsView:
		return true
	default:
		return false
	}
}

const (
	DefaultYearsBefore = 50
	DefaultYearsAfter  = 50

	yearPageSize   = 12
	yearPageOffset = 4
)

// Navigation is the displayed month and view of a picker. The displayed year never
// leaves YearRange.
type Navigation struct {
	cal     calendar.Calendar
	initial *calendar.Date

	year, month int
	leap        bool
	view        View

	yearsBefore, yearsAfter int
	minYear, maxYear        int
}

// NavState is a snapshot of the displayed month.
type NavState struct {
	Year    int  `json:"year"`
	Month   int  `json:"month"`
	Leap    bool `json:"leap,omitempty"`
	View    View `json:"view"`
	MinYear int  `json:"minYear"`
	MaxYear int  `json:"maxYear"`
}

// NewNavigation shows the month of initial, or of today when initial is nil.
func NewNavigation(cal calendar.Calendar, initial *calendar.Date, yearsBefore, yearsAfter int) (*Navigation, error) {
	n := &Navigation{
		cal:         cal,
		initial:     datePtr(initial),
		yearsBefore: yearsBefore,
		yearsAfter:  yearsAfter,
	}
	if err := n.updateYearRange(); err != nil {
		return nil, err
	}
	if err := n.Reset(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Navigation) updateYearRange() error {
	today, err := n.cal.Today()
	if err != nil {
		return fmt.Errorf("cannot resolve today: %w", err)
	}
	lo, hi := n.cal.YearBounds()
	n.minYear = max(today.Year-n.yearsBefore, lo)
	n.maxYear = min(today.Year+n.yearsAfter, hi)
	return nil
}

func (n *Navigation) Year() int  { return n.year }
func (n *Navigation) Month() int { return n.month }
func (n *Navigation) Leap() bool { return n.leap }
func (n *Navigation) View() View { return n.view }

func (n *Navigation) Calendar() calendar.Calendar {
	return n.cal
}

// YearRange is the closed interval of navigable years.
func (n *Navigation) YearRange() (min, max int) {
	return n.minYear, n.maxYear
}

// YearPage lists the years of the year view around the displayed year.
func (n *Navigation) YearPage() []int {
	years := make([]int, yearPageSize)
	for i := range years {
		years[i] = n.year - yearPageOffset + i
	}
	return years
}

func (n *Navigation) DaysInCurrentMonth() (int, error) {
	return calendar.MonthLength(n.cal, n.year, n.month, n.leap)
}

func (n *Navigation) leapMonth(year int) int {
	lm, ok := n.cal.(calendar.LeapMonther)
	if !ok {
		return 0
	}
	m, _ := lm.LeapMonth(year)
	return m
}

// NextMonth visits an intercalary month right after its regular month. Stepping past
// the year range is a no-op.
func (n *Navigation) NextMonth() {
	if !n.leap && n.leapMonth(n.year) == n.month {
		n.leap = true
		return
	}

	if n.month == 12 {
		if n.year+1 > n.maxYear {
			return
		}
		n.year, n.month = n.year+1, 1
	} else {
		n.month++
	}
	n.leap = false
}

func (n *Navigation) PrevMonth() {
	if n.leap {
		n.leap = false
		return
	}

	if n.month == 1 {
		if n.year-1 < n.minYear {
			return
		}
		n.year, n.month = n.year-1, 12
	} else {
		n.month--
	}
	n.leap = n.leapMonth(n.year) == n.month
}

func (n *Navigation) NextYear() {
	if n.year+1 <= n.maxYear {
		n.year++
		n.fixLeap()
	}
}

func (n *Navigation) PrevYear() {
	if n.year-1 >= n.minYear {
		n.year--
		n.fixLeap()
	}
}

func (n *Navigation) fixLeap() {
	n.leap = n.leap && n.leapMonth(n.year) == n.month
}

// SetMonth shows the regular month m of the displayed year and switches to the day view.
func (n *Navigation) SetMonth(m int) error {
	if m < 1 || m > 12 {
		return fmt.Errorf("month %d: %w", m, calendar.ErrInvalidDate)
	}
	n.month, n.leap = m, false
	n.view = DaysView
	return nil
}

// SetYear switches to the day view.
func (n *Navigation) SetYear(y int) error {
	if y < n.minYear || y > n.maxYear {
		return fmt.Errorf("year %d not in [%d, %d]: %w", y, n.minYear, n.maxYear, calendar.ErrOutOfRange)
	}
	n.year = y
	n.fixLeap()
	n.view = DaysView
	return nil
}

func (n *Navigation) SetView(v View) error {
	if !v.Valid() {
		return calendar.NewConfigurationError("view", "unknown view %q", v)
	}
	n.view = v
	return nil
}

// ToggleView switches to v, or back to the day view if v is already shown.
func (n *Navigation) ToggleView(v View) error {
	if !v.Valid() {
		return calendar.NewConfigurationError("view", "unknown view %q", v)
	}
	if n.view == v {
		n.view = DaysView
	} else {
		n.view = v
	}
	return nil
}

// GoToDate shows the month of d in the day view. The year is clamped to YearRange.
func (n *Navigation) GoToDate(d calendar.Date) {
	n.year = min(max(d.Year, n.minYear), n.maxYear)
	n.month = d.Month
	n.leap = d.Leap && n.leapMonth(n.year) == d.Month
	n.view = DaysView
}

func (n *Navigation) GoToToday() error {
	today, err := n.cal.Today()
	if err != nil {
		return err
	}
	n.GoToDate(today)
	return nil
}

// Reset goes back to the initial date, or today.
func (n *Navigation) Reset() error {
	if n.initial != nil {
		n.GoToDate(*n.initial)
		return nil
	}
	return n.GoToToday()
}

// SetCalendar re-expresses the displayed month and the initial date in cal, and
// recomputes the year range from today in cal.
func (n *Navigation) SetCalendar(cal calendar.Calendar) error {
	shown, err := calendar.Convert(n.cal, cal, calendar.Date{Year: n.year, Month: n.month, Day: 1, Leap: n.leap})
	if err != nil {
		return err
	}

	var initial *calendar.Date
	if n.initial != nil {
		d, err := calendar.Convert(n.cal, cal, *n.initial)
		if err != nil {
			return err
		}
		initial = &d
	}

	prev := *n
	n.cal, n.initial = cal, initial
	if err := n.updateYearRange(); err != nil {
		*n = prev
		return err
	}
	view := n.view
	n.GoToDate(shown)
	n.view = view
	return nil
}

func (n *Navigation) State() NavState {
	return NavState{
		Year:    n.year,
		Month:   n.month,
		Leap:    n.leap,
		View:    n.view,
		MinYear: n.minYear,
		MaxYear: n.maxYear,
	}
}

// restore applies a snapshot taken with State. The year range is kept from s, narrowed
// to the years the calendar can represent.
func (n *Navigation) restore(s NavState) error {
	if !s.View.Valid() {
		return calendar.NewConfigurationError("view", "unknown view %q", s.View)
	}
	if s.Month < 1 || s.Month > 12 || s.MinYear > s.MaxYear || s.Year < s.MinYear || s.Year > s.MaxYear {
		return calendar.NewConfigurationError("navigation", "invalid state %+v", s)
	}
	lo, hi := n.cal.YearBounds()
	if s.Year < lo || s.Year > hi {
		return calendar.NewConfigurationError("navigation", "year %d not supported by %s calendar", s.Year, n.cal.Type())
	}
	n.year, n.month, n.view = s.Year, s.Month, s.View
	n.minYear, n.maxYear = max(s.MinYear, lo), min(s.MaxYear, hi)
	n.leap = s.Leap && n.leapMonth(s.Year) == s.Month
	return nil
}
