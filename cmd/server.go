package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/locale"
	"github.com/nvkalinin/datepicker/log"
	"github.com/nvkalinin/datepicker/rest"
	"github.com/nvkalinin/datepicker/store"
	"github.com/nvkalinin/datepicker/store/engine"
	"golang.org/x/sync/errgroup"
)

type EngineType string

var (
	EngineMemory EngineType = "memory"
	EngineBolt   EngineType = "bolt"
)

type Server struct {
	Web struct {
		Listen      string `long:"listen" env:"LISTEN" value-name:"addr" default:"0.0.0.0:80" description:"Network address of the web server."`
		AccessLog   bool   `long:"access-log" env:"ACCESS_LOG" description:"Log every HTTP request."`
		AdminPasswd string `long:"admin-passwd" env:"ADMIN_PASSWD" description:"Password of the admin user for /api/admin/*. Empty disables the admin API."`

		ReadTimeout       time.Duration `long:"read-timeout" env:"READ_TIMEOUT" value-name:"duration" default:"5s" description:"http.Server ReadTimeout"`
		ReadHeaderTimeout time.Duration `long:"read-header-timeout" env:"READ_HEADER_TIMEOUT" value-name:"duration" default:"5s" description:"http.Server ReadHeaderTimeout"`
		IdleTimeout       time.Duration `long:"idle-timeout" env:"IDLE_TIMEOUT" value-name:"duration" default:"30s" description:"http.Server IdleTimeout"`

		// Backups are streamed through /api/admin, so the write timeout must leave room for them.
		WriteTimeout time.Duration `long:"write-timeout" env:"WRITE_TIMEOUT" value-name:"duration" default:"60s" description:"http.Server WriteTimeout"`

		RateLimiter struct {
			ReqLimit    int           `long:"reqs" env:"REQS" value-name:"num" default:"100" description:"Requests allowed from one IP. 0 disables the rate limiter."`
			LimitWindow time.Duration `long:"window" env:"WINDOW" value-name:"duration" default:"1s" description:"Time window of the request limit."`
		} `group:"Rate Limiter" namespace:"ratelim" env-namespace:"RATE_LIM"`
	} `group:"Web" namespace:"web" env-namespace:"WEB"`

	Store struct {
		Engine EngineType `long:"engine" env:"ENGINE" value-name:"type" choice:"memory" choice:"bolt" default:"bolt" description:"Storage of picker sessions."`

		Bolt struct {
			File string `long:"file" env:"FILE" value-name:"path" default:"sessions.bolt" description:"Path to the database file."`
		} `group:"Bolt store" namespace:"bolt" env-namespace:"BOLT"`

		TTL           time.Duration `long:"ttl" env:"TTL" value-name:"duration" default:"24h" description:"Sessions untouched for this long expire. 0 keeps them forever."`
		SweepInterval time.Duration `long:"sweep-interval" env:"SWEEP_INTERVAL" value-name:"duration" default:"10m" description:"How often expired sessions are removed."`
	} `group:"Store" namespace:"store" env-namespace:"STORE"`

	Locale struct {
		Files   []string `long:"file" env:"FILE" env-delim:"," value-name:"path.yml" description:"Extra locale table in YAML. Can be repeated; a file replaces a builtin locale with the same code."`
		Default string   `long:"default" env:"DEFAULT" value-name:"code" default:"fa" description:"Locale used when a request names none or an unknown one."`
	} `group:"Locales" namespace:"locale" env-namespace:"LOCALE"`

	Picker struct {
		YearsBefore int `long:"years-before" env:"YEARS_BEFORE" value-name:"num" default:"50" description:"Navigable years before today for pickers that set no window."`
		YearsAfter  int `long:"years-after" env:"YEARS_AFTER" value-name:"num" default:"50" description:"Navigable years after today for pickers that set no window."`
	} `group:"Picker" namespace:"picker" env-namespace:"PICKER"`
}

func (s *Server) Execute(args []string) error {
	a, err := s.makeApp()
	if err != nil {
		return err
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		a.shutdown()
	}()

	a.run()
	a.wait()
	return nil
}

type app struct {
	srv     *rest.Server
	janitor *store.Janitor
	closer  io.Closer // bolt store, nil for memory

	mu      sync.Mutex
	stopped bool
}

func (s *Server) makeApp() (*app, error) {
	if s.Picker.YearsBefore < 0 || s.Picker.YearsAfter < 0 {
		return nil, fmt.Errorf("years window cannot be negative")
	}

	locales, err := s.makeLocales()
	if err != nil {
		return nil, fmt.Errorf("locales: %w", err)
	}

	cals := calendar.DefaultRegistry()
	a := &app{}

	eng, backuper, err := s.makeStore()
	if err != nil {
		return nil, err
	}
	if backuper != nil {
		a.closer = backuper
	}

	sessions := store.NewSessions(eng, cals, s.Store.TTL)
	if s.Store.TTL > 0 {
		if s.Store.SweepInterval <= 0 {
			return nil, fmt.Errorf("sweep interval must be positive")
		}
		a.janitor = store.NewJanitor(sessions, s.Store.SweepInterval)
	}

	a.srv = &rest.Server{
		Sessions:  sessions,
		Calendars: cals,
		Locales:   locales,
		Opts: rest.Opts{
			Listen:      s.Web.Listen,
			LogRequests: s.Web.AccessLog,
			AdminPasswd: s.Web.AdminPasswd,

			ReadTimeout:       s.Web.ReadTimeout,
			ReadHeaderTimeout: s.Web.ReadHeaderTimeout,
			WriteTimeout:      s.Web.WriteTimeout,
			IdleTimeout:       s.Web.IdleTimeout,

			RateLimiter: s.Web.RateLimiter.ReqLimit > 0,
			ReqLimit:    s.Web.RateLimiter.ReqLimit,
			LimitWindow: s.Web.RateLimiter.LimitWindow,

			YearsBefore: s.Picker.YearsBefore,
			YearsAfter:  s.Picker.YearsAfter,
		},
	}
	if backuper != nil {
		a.srv.Backuper = backuper
	}

	return a, nil
}

func (s *Server) makeStore() (store.Engine, *engine.Bolt, error) {
	switch s.Store.Engine {
	case EngineMemory:
		return engine.NewMemory(), nil, nil
	case EngineBolt:
		b, err := engine.NewBolt(s.Store.Bolt.File)
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil
	default:
		return nil, nil, fmt.Errorf("unknown store engine %s", s.Store.Engine)
	}
}

func (s *Server) makeLocales() (*locale.Registry, error) {
	reg, err := locale.Builtin()
	if err != nil {
		return nil, err
	}
	for _, f := range s.Locale.Files {
		if _, err := reg.LoadFile(f); err != nil {
			return nil, err
		}
	}
	if s.Locale.Default != "" {
		if err := reg.SetDefault(s.Locale.Default); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (a *app) run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, _ := errgroup.WithContext(ctx)

	if a.janitor != nil {
		g.Go(func() error {
			a.janitor.Run()
			return nil
		})
	}

	g.Go(func() error {
		if err := a.srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] startup: %v", err)
			go a.shutdown()
			return err
		}
		return nil
	})

	_ = g.Wait()
}

func (a *app) shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}

	log.Printf("[INFO] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	g, _ := errgroup.WithContext(ctx)

	if a.janitor != nil {
		g.Go(func() error {
			return a.janitor.Shutdown(ctx)
		})
	}
	g.Go(func() error {
		return a.srv.Shutdown(ctx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("[ERROR] app shutdown: %v", err)
	}
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			log.Printf("[ERROR] app shutdown: %v", err)
		}
	}
	a.stopped = true
}

func (a *app) isStopped() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stopped
}

func (a *app) wait() {
	for !a.isStopped() {
		time.Sleep(10 * time.Millisecond)
	}
}
