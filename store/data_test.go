package store

import (
	"testing"
	"time"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/picker"
	"github.com/nvkalinin/datepicker/selection"
	"github.com/stretchr/testify/assert"
)

func TestSession_Copy(t *testing.T) {
	d := calendar.NewDate(1403, 1, 1)
	orig := Session{ID: "a", State: picker.State{
		Selection: selection.Value{Mode: selection.Single, Date: &d},
		Min:       &d,
	}}

	cp := orig.Copy()
	cp.State.Selection.Date.Day = 2
	cp.State.Min.Day = 3

	assert.Equal(t, 1, orig.State.Selection.Date.Day)
	assert.Equal(t, 1, orig.State.Min.Day)
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	s := Session{Updated: now.Add(-2 * time.Hour)}

	assert.True(t, s.Expired(now, time.Hour))
	assert.False(t, s.Expired(now, 3*time.Hour))
	assert.False(t, s.Expired(now, 0))
}
