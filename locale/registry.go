package locale

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/log"
	"golang.org/x/text/language"
)

const DefaultCode = "fa"

// Registry keeps the registered locales. It is read-mostly: registration happens at
// start-up and the last registration of a code wins.
type Registry struct {
	mu      sync.RWMutex
	locales map[string]Locale
	def     string
}

func NewRegistry() *Registry {
	return &Registry{
		locales: make(map[string]Locale, 2),
		def:     DefaultCode,
	}
}

// Register validates l and stores it under code.
func (r *Registry) Register(code string, l Locale) error {
	if code == "" {
		return calendar.NewConfigurationError("locale", "empty code")
	}
	l.Code = code
	l = l.withDefaults()
	if err := l.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.locales[code] = l.clone()
	log.Printf("[DEBUG] locale %s registered", code)
	return nil
}

// Get returns the locale for code, or the default locale. ok is false if neither is registered.
func (r *Registry) Get(code string) (l Locale, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if l, ok = r.locales[code]; ok {
		return l.clone(), true
	}
	if l, ok = r.locales[r.def]; ok {
		return l.clone(), true
	}
	return Locale{}, false
}

func (r *Registry) Has(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.locales[code]
	return ok
}

func (r *Registry) SetDefault(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.locales[code]; !ok {
		return calendar.NewConfigurationError("locale", "%q is not registered", code)
	}
	r.def = code
	return nil
}

func (r *Registry) DefaultCode() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.def
}

// List returns the registered codes, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, 0, len(r.locales))
	for c := range r.locales {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

func (r *Registry) MonthName(code string, c calendar.Type, month int) string {
	l, ok := r.Get(code)
	if !ok {
		return ""
	}
	return l.MonthName(c, month)
}

func (r *Registry) WeekdayName(code string, w calendar.Weekday) string {
	l, ok := r.Get(code)
	if !ok {
		return ""
	}
	return l.WeekdayName(w)
}

func (r *Registry) Text(code, key string) string {
	l, ok := r.Get(code)
	if !ok {
		return key
	}
	return l.Text(key)
}

// LoadFile registers a locale from a YAML file. Without a code field in the file the
// file name (sans extension) is the code.
func (r *Registry) LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read locale file: %w", err)
	}

	l, err := Parse(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	code := l.Code
	if code == "" {
		code = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := r.Register(code, l); err != nil {
		return "", err
	}
	log.Printf("[INFO] locale %s loaded from %s", code, path)
	return code, nil
}

// Match picks the registered locale that best serves an Accept-Language header value.
// It returns the default code when nothing matches.
func (r *Registry) Match(acceptLanguage string) string {
	def := r.DefaultCode()

	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return def
	}

	// The default goes first: the matcher falls back to the first supported tag.
	codes := []string{def}
	for _, c := range r.List() {
		if c != def {
			codes = append(codes, c)
		}
	}

	supported := make([]language.Tag, 0, len(codes))
	for _, c := range codes {
		tag, err := language.Parse(c)
		if err != nil {
			tag = language.Und
		}
		supported = append(supported, tag)
	}

	_, idx, conf := language.NewMatcher(supported).Match(prefs...)
	if conf == language.No || idx < 0 || idx >= len(codes) {
		return def
	}
	return codes[idx]
}
