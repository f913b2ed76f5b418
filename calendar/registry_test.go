package calendar

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Get(t *testing.T) {
	reg := DefaultRegistry()

	assert.Equal(t, []Type{Chinese, Gregorian, Hijri, Jalali}, reg.Types())
	assert.Equal(t, Gregorian, reg.Get(Gregorian).Type())
	assert.Equal(t, Jalali, reg.Get("mayan").Type())

	_, ok := reg.Lookup("mayan")
	assert.False(t, ok)

	empty := NewRegistry()
	assert.Nil(t, empty.Get(Jalali))
}

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry(NewGregorian())
	require.Nil(t, reg.Get("x"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Register(NewJalali())
			_ = reg.Get(Hijri)
		}()
	}
	wg.Wait()

	assert.Equal(t, Jalali, reg.Get(Hijri).Type())
}

func TestParseType(t *testing.T) {
	for _, code := range []string{"jalali", "gregorian", "hijri", "chinese"} {
		typ, ok := ParseType(code)
		assert.True(t, ok)
		assert.Equal(t, Type(code), typ)
	}

	_, ok := ParseType("Jalali")
	assert.False(t, ok)
}

func TestDate_String(t *testing.T) {
	assert.Equal(t, "1403-01-05", NewDate(1403, 1, 5).String())
	assert.Equal(t, "1403-01-05 09:05", NewDate(1403, 1, 5).WithTime(9, 5).String())
	assert.Equal(t, "2023-02-01 (leap)", Date{Year: 2023, Month: 2, Day: 1, Leap: true}.String())
	assert.Equal(t, "Friday", Friday.String())
	assert.Equal(t, "Weekday(9)", Weekday(9).String())
}

func TestDate_Copy(t *testing.T) {
	d := NewDate(1403, 1, 1).WithTime(10, 0)
	c := d.Copy()
	c.Time.Hour = 11

	assert.Equal(t, 10, d.Time.Hour)
	assert.Nil(t, d.DateOnly().Time)
}
