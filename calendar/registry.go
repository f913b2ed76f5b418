package calendar

import (
	"sort"
	"sync"
)

// Fallback is used by Registry.Get for unknown codes.
const Fallback = Jalali

// Registry maps calendar types to adapters. Lookups may run concurrently with Register,
// the last registration of a type wins.
type Registry struct {
	mu   sync.RWMutex
	cals map[Type]Calendar
}

func NewRegistry(cals ...Calendar) *Registry {
	r := &Registry{cals: make(map[Type]Calendar, len(cals))}
	for _, c := range cals {
		r.cals[c.Type()] = c
	}
	return r
}

// DefaultRegistry returns a new registry with all built-in calendars.
func DefaultRegistry() *Registry {
	return NewRegistry(NewJalali(), NewGregorian(), NewHijri(), NewChinese())
}

func (r *Registry) Register(c Calendar) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cals[c.Type()] = c
}

func (r *Registry) Lookup(t Type) (Calendar, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cals[t]
	return c, ok
}

// Get returns the calendar for t, or the Jalali calendar if t is not registered.
// It returns nil only if the registry has neither.
func (r *Registry) Get(t Type) Calendar {
	if c, ok := r.Lookup(t); ok {
		return c
	}
	c, _ := r.Lookup(Fallback)
	return c
}

func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]Type, 0, len(r.cals))
	for t := range r.cals {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
