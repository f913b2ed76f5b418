package rest

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/locale"
	"github.com/nvkalinin/datepicker/parse"
	"github.com/nvkalinin/datepicker/picker"
)

type dateResp struct {
	Calendar calendar.Type    `json:"calendar"`
	Date     calendar.Date    `json:"date"`
	Weekday  calendar.Weekday `json:"weekday"`
}

type monthResp struct {
	Calendar calendar.Type   `json:"calendar"`
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Leap     bool            `json:"leap,omitempty"`
	Weeks    [][]picker.Cell `json:"weeks"`
}

func (s *Server) lookupCalendar(code string) (calendar.Calendar, error) {
	t, ok := calendar.ParseType(code)
	if !ok {
		return nil, calendar.NewConfigurationError("calendar", "unknown calendar %q", code)
	}
	cal, ok := s.Calendars.Lookup(t)
	if !ok {
		return nil, calendar.NewConfigurationError("calendar", "calendar %q is not registered", code)
	}
	return cal, nil
}

func (s *Server) calendarsCtrl(w http.ResponseWriter, r *http.Request) {
	sendJsonResponse(w, map[string]any{"calendars": s.Calendars.Types()})
}

func (s *Server) todayCtrl(w http.ResponseWriter, r *http.Request) {
	cal, err := s.lookupCalendar(chi.URLParam(r, "type"))
	if err != nil {
		sendError(w, err)
		return
	}

	today, err := cal.Today()
	if err != nil {
		sendError(w, err)
		return
	}
	s.sendDate(w, cal, today)
}

func (s *Server) sendDate(w http.ResponseWriter, cal calendar.Calendar, d calendar.Date) {
	wd, err := cal.Weekday(d)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJsonResponse(w, dateResp{Calendar: cal.Type(), Date: d, Weekday: wd})
}

func (s *Server) monthCtrl(w http.ResponseWriter, r *http.Request) {
	cal, err := s.lookupCalendar(chi.URLParam(r, "type"))
	if err != nil {
		sendError(w, err)
		return
	}

	y, err1 := intParam(r, "y")
	m, err2 := intParam(r, "m")
	if err := combineErrors(err1, err2); err != nil {
		sendErrorJson(w, 400, "invalid year or month")
		return
	}
	q := r.URL.Query()
	leap := q.Get("leap") == "1" || q.Get("leap") == "true"

	p := parse.Parser{Cal: cal, Strict: true}
	min, err := p.Parse(optional(q.Get("min")))
	if err != nil {
		sendError(w, err)
		return
	}
	max, err := p.Parse(optional(q.Get("max")))
	if err != nil {
		sendError(w, err)
		return
	}
	cons, err := picker.NewConstraints(cal, min, max)
	if err != nil {
		sendError(w, err)
		return
	}

	g, err := picker.BuildGrid(cal, y, m, leap, nil, cons)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJsonResponse(w, monthResp{Calendar: cal.Type(), Year: g.Year, Month: g.Month, Leap: g.Leap, Weeks: g.Weeks()})
}

func (s *Server) convertCtrl(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err1 := s.lookupCalendar(q.Get("from"))
	to, err2 := s.lookupCalendar(q.Get("to"))
	if err := combineErrors(err1, err2); err != nil {
		sendErrorJson(w, 400, fmt.Sprintf("invalid calendar: %v", err))
		return
	}

	d, err := parse.Parser{Cal: from, Strict: true}.Parse(optional(q.Get("date")))
	if err != nil {
		sendError(w, err)
		return
	}
	if d == nil {
		sendErrorJson(w, 400, "date is required")
		return
	}

	res, err := calendar.Convert(from, to, *d)
	if err != nil {
		sendError(w, err)
		return
	}
	s.sendDate(w, to, res)
}

func (s *Server) localeCtrl(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		code = s.Locales.Match(r.Header.Get("Accept-Language"))
	} else if !s.Locales.Has(code) {
		sendErrorJson(w, 404, fmt.Sprintf("locale %q not found", code))
		return
	}

	l, ok := s.Locales.Get(code)
	if !ok {
		sendErrorJson(w, 404, "no locales registered")
		return
	}
	sendJsonResponse(w, l)
}

func (s *Server) locale(code string) *locale.Locale {
	if s.Locales == nil {
		return nil
	}
	l, ok := s.Locales.Get(code)
	if !ok {
		return nil
	}
	return &l
}

// optional maps an empty query value to no input.
func optional(v string) any {
	if v == "" {
		return nil
	}
	return v
}
