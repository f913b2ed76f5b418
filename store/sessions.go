// Package store keeps picker sessions between requests.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/log"
	"github.com/nvkalinin/datepicker/picker"
)

var ErrNotFound = errors.New("session not found")

// Engine persists sessions. Find returns a copy.
type Engine interface {
	Find(id string) (*Session, bool)
	Put(s Session) error
	Delete(id string) error
	DeleteOlder(t time.Time) (int, error)
}

// lockStripes is the number of mutexes session IDs are hashed onto.
const lockStripes = 64

// Sessions runs picker operations against stored state. Operations on one session
// are serialized. Sessions hashed onto different stripes don't block each other.
type Sessions struct {
	Engine    Engine
	Calendars *calendar.Registry
	TTL       time.Duration // zero keeps sessions forever

	now   func() time.Time
	locks [lockStripes]sync.Mutex
}

func NewSessions(e Engine, cals *calendar.Registry, ttl time.Duration) *Sessions {
	return &Sessions{Engine: e, Calendars: cals, TTL: ttl, now: time.Now}
}

func stripe(id string) int {
	return int(xxhash.Sum64String(id) % lockStripes)
}

func (s *Sessions) lock(id string) func() {
	mu := &s.locks[stripe(id)]
	mu.Lock()
	return mu.Unlock
}

// lockAll holds every stripe, in order.
func (s *Sessions) lockAll() func() {
	for i := range s.locks {
		s.locks[i].Lock()
	}
	return func() {
		for i := range s.locks {
			s.locks[i].Unlock()
		}
	}
}

// Create builds a picker from opts and stores it under a new random ID.
func (s *Sessions) Create(opts picker.Options) (*Session, *picker.Picker, error) {
	p, err := picker.New(s.Calendars, opts)
	if err != nil {
		return nil, nil, err
	}

	now := s.now().UTC()
	sess := Session{
		ID:      uuid.NewString(),
		Created: now,
		Updated: now,
		State:   p.Snapshot(),
	}
	if err := s.Engine.Put(sess); err != nil {
		return nil, nil, fmt.Errorf("cannot store session: %w", err)
	}
	log.Printf("[DEBUG] store/sessions created %s", sess.ID)
	return &sess, p, nil
}

// Get restores the picker of session id. Expired sessions are not found.
func (s *Sessions) Get(id string) (*Session, *picker.Picker, error) {
	unlock := s.lock(id)
	defer unlock()
	return s.load(id)
}

func (s *Sessions) load(id string) (*Session, *picker.Picker, error) {
	sess, ok := s.Engine.Find(id)
	if !ok || sess.Expired(s.now(), s.TTL) {
		return nil, nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	p, err := picker.Restore(s.Calendars, sess.State)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot restore session %s: %w", id, err)
	}
	return sess, p, nil
}

// Update applies f to the picker of session id and stores the result. When f fails
// nothing is stored and its error is returned.
func (s *Sessions) Update(id string, f func(p *picker.Picker) error) (*Session, *picker.Picker, error) {
	unlock := s.lock(id)
	defer unlock()

	sess, p, err := s.load(id)
	if err != nil {
		return nil, nil, err
	}
	if err := f(p); err != nil {
		return nil, nil, err
	}

	sess.State = p.Snapshot()
	sess.Updated = s.now().UTC()
	if err := s.Engine.Put(*sess); err != nil {
		return nil, nil, fmt.Errorf("cannot store session: %w", err)
	}
	return sess, p, nil
}

func (s *Sessions) Delete(id string) error {
	unlock := s.lock(id)
	defer unlock()

	if _, ok := s.Engine.Find(id); !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err := s.Engine.Delete(id); err != nil {
		return err
	}
	log.Printf("[DEBUG] store/sessions deleted %s", id)
	return nil
}

// Sweep deletes the sessions not touched within TTL. Running operations finish first,
// so an update in progress is either kept as fresh or not stored at all.
func (s *Sessions) Sweep() (int, error) {
	if s.TTL <= 0 {
		return 0, nil
	}
	unlock := s.lockAll()
	defer unlock()
	return s.Engine.DeleteOlder(s.now().Add(-s.TTL))
}
