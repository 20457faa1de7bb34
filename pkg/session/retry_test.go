package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSchedule(t *testing.T) {
	s := DefaultSchedule()

	assert.Equal(t, 5, s.Attempts)
	assert.Equal(t, 100*time.Millisecond, s.Interval)
	assert.Equal(t, 100*time.Millisecond, s.InitialDelay)
}

func TestSchedule_DelayBefore(t *testing.T) {
	s := Schedule{
		Attempts:     3,
		Interval:     50 * time.Millisecond,
		InitialDelay: 200 * time.Millisecond,
	}

	delay, ok := s.DelayBefore(1)
	assert.True(t, ok)
	assert.Equal(t, 200*time.Millisecond, delay, "first attempt waits the initial delay")

	delay, ok = s.DelayBefore(2)
	assert.True(t, ok)
	assert.Equal(t, 50*time.Millisecond, delay)

	delay, ok = s.DelayBefore(3)
	assert.True(t, ok)
	assert.Equal(t, 50*time.Millisecond, delay)

	_, ok = s.DelayBefore(4)
	assert.False(t, ok, "attempts beyond the budget are refused")

	_, ok = s.DelayBefore(0)
	assert.False(t, ok)

	_, ok = s.DelayBefore(-1)
	assert.False(t, ok)
}

func TestSchedule_ZeroValueNormalized(t *testing.T) {
	var s Schedule

	// Unset attempts and interval fall back to the defaults
	delay, ok := s.DelayBefore(2)
	assert.True(t, ok)
	assert.Equal(t, DefaultInterval, delay)

	_, ok = s.DelayBefore(DefaultAttempts)
	assert.True(t, ok)

	_, ok = s.DelayBefore(DefaultAttempts + 1)
	assert.False(t, ok)

	// A zero initial delay means poll immediately, it is a legitimate
	// setting rather than an unset field
	delay, ok = s.DelayBefore(1)
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), delay)
}

func TestSchedule_NegativeInitialDelayTreatedAsZero(t *testing.T) {
	s := Schedule{Attempts: 2, Interval: time.Millisecond, InitialDelay: -time.Second}

	delay, ok := s.DelayBefore(1)
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), delay)
}
