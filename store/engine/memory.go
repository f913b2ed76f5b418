package engine

import (
	"sync"
	"time"

	"github.com/nvkalinin/datepicker/store"
)

type Memory struct {
	mu    sync.RWMutex
	store map[string]store.Session
}

func NewMemory() *Memory {
	return &Memory{
		store: make(map[string]store.Session),
	}
}

func (m *Memory) Find(id string) (*store.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.store[id]
	if !ok {
		return nil, false
	}

	s = s.Copy()
	return &s, true
}

func (m *Memory) Put(s store.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[s.ID] = s.Copy()
	return nil
}

func (m *Memory) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

func (m *Memory) DeleteOlder(t time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, s := range m.store {
		if s.Updated.Before(t) {
			delete(m.store, id)
			n++
		}
	}
	return n, nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}
