package picker

import (
	"testing"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSelection_24h(t *testing.T) {
	ts, err := NewTimeSelection(Clock24, nil)
	require.NoError(t, err)
	assert.False(t, ts.IsValid())
	assert.Nil(t, ts.Value())
	_, ok := ts.DisplayHour()
	assert.False(t, ok)

	require.NoError(t, ts.SelectHour(0))
	assert.Nil(t, ts.Value())
	require.NoError(t, ts.SelectMinute(45))
	assert.Equal(t, &calendar.TimeOfDay{Hour: 0, Minute: 45}, ts.Value())

	assert.ErrorIs(t, ts.SelectHour(24), calendar.ErrInvalidDate)
	assert.ErrorIs(t, ts.SelectMinute(60), calendar.ErrInvalidDate)
	assert.ErrorIs(t, ts.SelectMinute(-1), calendar.ErrInvalidDate)

	ts.TogglePeriod()
	assert.Equal(t, AM, ts.Period())
	assert.Equal(t, 0, ts.Value().Hour)

	assert.Len(t, ts.Hours(), 24)
	assert.Equal(t, 0, ts.Hours()[0])
	assert.Len(t, ts.Minutes(), 60)
	assert.True(t, ts.IsHourSelected(0))
	assert.True(t, ts.IsMinuteSelected(45))
}

func TestTimeSelection_12h(t *testing.T) {
	ts, err := NewTimeSelection(Clock12, nil)
	require.NoError(t, err)
	assert.Equal(t, Clock12, ts.Format())
	assert.Equal(t, []int{12, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, ts.Hours())

	require.NoError(t, ts.SelectHour(12))
	require.NoError(t, ts.SelectMinute(0))
	assert.Equal(t, 0, ts.Value().Hour)
	h, ok := ts.DisplayHour()
	require.True(t, ok)
	assert.Equal(t, 12, h)
	assert.True(t, ts.IsHourSelected(12))

	ts.TogglePeriod()
	assert.Equal(t, PM, ts.Period())
	assert.Equal(t, 12, ts.Value().Hour)

	require.NoError(t, ts.SelectHour(3))
	assert.Equal(t, 15, ts.Value().Hour)

	ts.SetPeriod(PM)
	assert.Equal(t, 15, ts.Value().Hour)
	ts.SetPeriod(AM)
	assert.Equal(t, 3, ts.Value().Hour)

	assert.ErrorIs(t, ts.SelectHour(0), calendar.ErrInvalidDate)
	assert.ErrorIs(t, ts.SelectHour(13), calendar.ErrInvalidDate)
}

func TestTimeSelection_SetValue(t *testing.T) {
	ts, err := NewTimeSelection(Clock12, &calendar.TimeOfDay{Hour: 18, Minute: 5})
	require.NoError(t, err)
	assert.Equal(t, PM, ts.Period())
	h, _ := ts.DisplayHour()
	assert.Equal(t, 6, h)

	assert.Error(t, ts.SetValue(calendar.TimeOfDay{Hour: 25}))
	assert.Equal(t, &calendar.TimeOfDay{Hour: 18, Minute: 5}, ts.Value())

	ts.Reset()
	assert.Nil(t, ts.Value())
	assert.Equal(t, AM, ts.Period())

	// Anything but 12 is a 24-hour clock.
	ts, err = NewTimeSelection(0, nil)
	require.NoError(t, err)
	assert.Equal(t, Clock24, ts.Format())

	_, err = NewTimeSelection(Clock24, &calendar.TimeOfDay{Hour: 30})
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
}

func TestTimeSelection_state(t *testing.T) {
	ts, err := NewTimeSelection(Clock12, &calendar.TimeOfDay{Hour: 13, Minute: 30})
	require.NoError(t, err)
	s := ts.State()

	restored, err := NewTimeSelection(Clock12, nil)
	require.NoError(t, err)
	require.NoError(t, restored.restore(s))
	assert.Equal(t, ts.Value(), restored.Value())
	assert.Equal(t, PM, restored.Period())

	// Snapshot pointers are copies.
	*s.Hour = 1
	assert.Equal(t, 13, ts.Value().Hour)

	bad := 61
	assert.Error(t, restored.restore(TimeState{Minute: &bad}))
}
