// Package rest is the HTTP API over the date picker: stateless calendar lookups and
// picker sessions kept in a store.
package rest

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/locale"
	"github.com/nvkalinin/datepicker/log"
	"github.com/nvkalinin/datepicker/parse"
	"github.com/nvkalinin/datepicker/picker"
	"github.com/nvkalinin/datepicker/store"
)

type Sessions interface {
	Create(opts picker.Options) (*store.Session, *picker.Picker, error)
	Get(id string) (*store.Session, *picker.Picker, error)
	Update(id string, f func(p *picker.Picker) error) (*store.Session, *picker.Picker, error)
	Delete(id string) error
}

type Backuper interface {
	Backup(w io.Writer) error
}

type Server struct {
	Sessions  Sessions
	Calendars *calendar.Registry
	Locales   *locale.Registry
	Backuper  Backuper // nil when the store cannot be backed up
	Opts      Opts

	mu   sync.Mutex
	http *http.Server
}

type Opts struct {
	Listen      string
	LogRequests bool
	AdminPasswd string // empty disables /api/admin

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	RateLimiter bool
	ReqLimit    int
	LimitWindow time.Duration

	// Navigable years for pickers created without their own window.
	YearsBefore int
	YearsAfter  int
}

// Run serves until Shutdown is called. It returns http.ErrServerClosed after a shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Opts.Listen,
		Handler:           s.routes(),
		ReadTimeout:       s.Opts.ReadTimeout,
		ReadHeaderTimeout: s.Opts.ReadHeaderTimeout,
		WriteTimeout:      s.Opts.WriteTimeout,
		IdleTimeout:       s.Opts.IdleTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	s.mu.Lock()
	s.http = srv
	s.mu.Unlock()

	log.Printf("[INFO] rest server listening on %s", s.Opts.Listen)
	return srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.http
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("rest shutdown: %w", err)
	}
	log.Printf("[INFO] rest server stopped")
	return nil
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	if s.Opts.LogRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	r.Route("/api", func(r chi.Router) {
		if s.Opts.RateLimiter {
			r.Use(httprate.LimitByIP(s.Opts.ReqLimit, s.Opts.LimitWindow))
		}

		r.Get("/calendars", s.calendarsCtrl)
		r.Get("/cal/{type}/today", s.todayCtrl)
		r.Get("/cal/{type}/{y}/{m}", s.monthCtrl)
		r.Get("/convert", s.convertCtrl)
		r.Get("/locale", s.localeCtrl)

		r.Post("/picker", s.createPickerCtrl)
		r.Route("/picker/{id}", func(r chi.Router) {
			r.Get("/", s.getPickerCtrl)
			r.Delete("/", s.deletePickerCtrl)
			r.Post("/select", s.selectCtrl)
			r.Post("/nav", s.navCtrl)
			r.Post("/calendar", s.calendarCtrl)
			r.Post("/time", s.timeCtrl)
			r.Post("/confirm", s.confirmCtrl)
			r.Post("/reset", s.resetCtrl)
		})

		if s.Opts.AdminPasswd != "" {
			r.Route("/admin", func(r chi.Router) {
				r.Use(s.adminOnly)
				r.Get("/backup", s.backupCtrl)
			})
		}
	})

	return r
}

func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || subtle.ConstantTimeCompare([]byte(pass), []byte(s.Opts.AdminPasswd)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
			sendErrorJson(w, 401, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func intParam(r *http.Request, param string) (int, error) {
	strVal := chi.URLParam(r, param)
	return strconv.Atoi(strVal)
}

func combineErrors(err ...error) error {
	nonNil := make([]error, 0, len(err))
	for _, e := range err {
		if e != nil {
			nonNil = append(nonNil, e)
		}
	}

	if len(nonNil) == 0 {
		return nil
	}
	return fmt.Errorf("%+v", nonNil)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func sendJsonResponse(w http.ResponseWriter, data any) {
	respJson, err := json.Marshal(data)
	if err != nil {
		log.Printf("[WARN] cannot marshal response data: %+v", err)
		sendErrorJson(w, 500, "cannot marshal response data")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if _, err = w.Write(respJson); err != nil {
		log.Printf("[WARN] cannot write response data: %+v", err)
	}
}

func sendErrorJson(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	restErr := &struct {
		Msg string `json:"msg"`
	}{msg}

	errJson, err := json.Marshal(restErr)
	if err != nil {
		log.Printf("[WARN] cannot marshal rest error: %+v", err)
		return
	}

	if _, err = w.Write(errJson); err != nil {
		log.Printf("[WARN] cannot write rest error: %+v", err)
	}
}

// sendError picks the status from the kind of err: bad input is 400, a missing session
// 404, anything else 500.
func sendError(w http.ResponseWriter, err error) {
	var (
		cfgErr   *calendar.ConfigurationError
		dateErr  *calendar.DateError
		parseErr *parse.DateParseError
	)

	switch {
	case errors.Is(err, store.ErrNotFound):
		sendErrorJson(w, 404, err.Error())
	case errors.As(err, &cfgErr), errors.As(err, &dateErr), errors.As(err, &parseErr),
		errors.Is(err, calendar.ErrInvalidDate), errors.Is(err, calendar.ErrOutOfRange),
		errors.Is(err, calendar.ErrFormat), errors.Is(err, picker.ErrDisabled):
		sendErrorJson(w, 400, err.Error())
	default:
		log.Printf("[WARN] rest: %+v", err)
		sendErrorJson(w, 500, err.Error())
	}
}
