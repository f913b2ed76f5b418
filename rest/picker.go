package rest

import (
	"compress/gzip"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/log"
	"github.com/nvkalinin/datepicker/parse"
	"github.com/nvkalinin/datepicker/picker"
	"github.com/nvkalinin/datepicker/store"
)

// pickerResp is returned by every picker endpoint. Result is set once a value is confirmed.
type pickerResp struct {
	ID      string          `json:"id"`
	State   picker.State    `json:"state"`
	Grid    [][]picker.Cell `json:"grid"`
	Display string          `json:"display"`
	Result  any             `json:"result,omitempty"`
}

// Navigation actions of /nav.
const (
	navNextMonth  = "nextMonth"
	navPrevMonth  = "prevMonth"
	navNextYear   = "nextYear"
	navPrevYear   = "prevYear"
	navMonth      = "month"
	navYear       = "year"
	navView       = "view"
	navToggleView = "toggleView"
	navToday      = "today"
)

type navReq struct {
	Action string      `json:"action"`
	View   picker.View `json:"view"`
	Year   int         `json:"year"`
	Month  int         `json:"month"`
}

type timeReq struct {
	Hour   *int          `json:"hour"`
	Minute *int          `json:"minute"`
	Period picker.Period `json:"period"`
}

func (s *Server) sendPicker(w http.ResponseWriter, sess *store.Session, p *picker.Picker) {
	g, err := p.Grid()
	if err != nil {
		sendError(w, err)
		return
	}
	l := s.locale(p.Options().Locale)
	display, err := p.Display(l)
	if err != nil {
		sendError(w, err)
		return
	}
	res, err := p.Result(l)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJsonResponse(w, pickerResp{
		ID:      sess.ID,
		State:   sess.State,
		Grid:    g.Weeks(),
		Display: display,
		Result:  res,
	})
}

// update runs f on session {id} and answers with the new picker state.
func (s *Server) update(w http.ResponseWriter, r *http.Request, f func(p *picker.Picker) error) {
	sess, p, err := s.Sessions.Update(chi.URLParam(r, "id"), f)
	if err != nil {
		sendError(w, err)
		return
	}
	s.sendPicker(w, sess, p)
}

func (s *Server) createPickerCtrl(w http.ResponseWriter, r *http.Request) {
	var opts picker.Options
	if err := decodeBody(r, &opts); err != nil {
		sendErrorJson(w, 400, fmt.Sprintf("invalid options: %v", err))
		return
	}
	if opts.YearsBefore == 0 {
		opts.YearsBefore = s.Opts.YearsBefore
	}
	if opts.YearsAfter == 0 {
		opts.YearsAfter = s.Opts.YearsAfter
	}

	sess, p, err := s.Sessions.Create(opts)
	if err != nil {
		sendError(w, err)
		return
	}
	s.sendPicker(w, sess, p)
}

func (s *Server) getPickerCtrl(w http.ResponseWriter, r *http.Request) {
	sess, p, err := s.Sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, err)
		return
	}
	s.sendPicker(w, sess, p)
}

func (s *Server) deletePickerCtrl(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(chi.URLParam(r, "id")); err != nil {
		sendError(w, err)
		return
	}
	sendJsonResponse(w, map[string]bool{"deleted": true})
}

func (s *Server) selectCtrl(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date any `json:"date"`
	}
	if err := decodeBody(r, &req); err != nil {
		sendErrorJson(w, 400, fmt.Sprintf("invalid request: %v", err))
		return
	}

	s.update(w, r, func(p *picker.Picker) error {
		d, err := parse.Parser{Cal: p.Calendar(), Strict: true}.Parse(req.Date)
		if err != nil {
			return err
		}
		if d == nil {
			return calendar.NewConfigurationError("date", "date is required")
		}
		return p.SelectDate(*d)
	})
}

func (s *Server) navCtrl(w http.ResponseWriter, r *http.Request) {
	var req navReq
	if err := decodeBody(r, &req); err != nil {
		sendErrorJson(w, 400, fmt.Sprintf("invalid request: %v", err))
		return
	}

	s.update(w, r, func(p *picker.Picker) error {
		nav := p.Navigation()
		switch req.Action {
		case navNextMonth:
			nav.NextMonth()
		case navPrevMonth:
			nav.PrevMonth()
		case navNextYear:
			nav.NextYear()
		case navPrevYear:
			nav.PrevYear()
		case navMonth:
			return nav.SetMonth(req.Month)
		case navYear:
			return nav.SetYear(req.Year)
		case navView:
			return nav.SetView(req.View)
		case navToggleView:
			return nav.ToggleView(req.View)
		case navToday:
			return nav.GoToToday()
		default:
			return calendar.NewConfigurationError("action", "unknown navigation action %q", req.Action)
		}
		return nil
	})
}

func (s *Server) calendarCtrl(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string `json:"type"`
	}
	if err := decodeBody(r, &req); err != nil {
		sendErrorJson(w, 400, fmt.Sprintf("invalid request: %v", err))
		return
	}

	s.update(w, r, func(p *picker.Picker) error {
		t, ok := calendar.ParseType(req.Type)
		if !ok {
			return calendar.NewConfigurationError("calendar", "unknown calendar %q", req.Type)
		}
		return p.SetCalendar(t)
	})
}

func (s *Server) timeCtrl(w http.ResponseWriter, r *http.Request) {
	var req timeReq
	if err := decodeBody(r, &req); err != nil {
		sendErrorJson(w, 400, fmt.Sprintf("invalid request: %v", err))
		return
	}

	s.update(w, r, func(p *picker.Picker) error {
		tm := p.Time()
		if tm == nil {
			return calendar.NewConfigurationError("enableTime", "time selection is disabled")
		}

		switch req.Period {
		case "":
		case picker.AM, picker.PM:
			tm.SetPeriod(req.Period)
		default:
			return calendar.NewConfigurationError("period", "unknown period %q", req.Period)
		}
		if req.Hour != nil {
			if err := tm.SelectHour(*req.Hour); err != nil {
				return err
			}
		}
		if req.Minute != nil {
			if err := tm.SelectMinute(*req.Minute); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Server) confirmCtrl(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(p *picker.Picker) error {
		if p.Confirm() == nil {
			return calendar.NewConfigurationError("selection", "nothing to confirm")
		}
		return nil
	})
}

func (s *Server) resetCtrl(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(p *picker.Picker) error {
		return p.Reset()
	})
}

func (s *Server) backupCtrl(w http.ResponseWriter, r *http.Request) {
	if s.Backuper == nil {
		sendErrorJson(w, 400, "the store does not support backups")
		return
	}

	fname := fmt.Sprintf("sessions_%s.bolt.gz", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fname))

	gz := gzip.NewWriter(w)
	if err := s.Backuper.Backup(gz); err != nil {
		log.Printf("[ERROR] backup failed: %v", err)
		return
	}
	if err := gz.Close(); err != nil {
		log.Printf("[ERROR] cannot finish backup: %v", err)
	}
}
