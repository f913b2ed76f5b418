package store

import (
	"time"

	"github.com/nvkalinin/datepicker/picker"
)

// Session is one stored picker.
type Session struct {
	ID      string       `json:"id"`
	Created time.Time    `json:"created"`
	Updated time.Time    `json:"updated"`
	State   picker.State `json:"state"`
}

func (s Session) Copy() Session {
	s.State = s.State.Copy()
	return s
}

// Expired reports whether the session was last touched before now-ttl. A zero ttl never expires.
func (s Session) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && s.Updated.Before(now.Add(-ttl))
}
