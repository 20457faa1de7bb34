package session

import "time"

// Default polling budget for dismissing authenticated views.
const (
	DefaultAttempts     = 5
	DefaultInterval     = 100 * time.Millisecond
	DefaultInitialDelay = 100 * time.Millisecond
)

// Schedule is a bounded retry budget: a fixed number of attempts, the wait
// between them, and a separate wait before the first one. The browser needs
// a moment to open the view at all, which is what the initial delay covers.
type Schedule struct {
	Attempts     int
	Interval     time.Duration
	InitialDelay time.Duration
}

// DefaultSchedule returns the standard polling budget.
func DefaultSchedule() Schedule {
	return Schedule{
		Attempts:     DefaultAttempts,
		Interval:     DefaultInterval,
		InitialDelay: DefaultInitialDelay,
	}
}

// normalized fills unset fields with defaults so a zero value behaves like
// DefaultSchedule. A negative initial delay is treated as zero.
func (s Schedule) normalized() Schedule {
	if s.Attempts <= 0 {
		s.Attempts = DefaultAttempts
	}
	if s.Interval <= 0 {
		s.Interval = DefaultInterval
	}
	if s.InitialDelay < 0 {
		s.InitialDelay = 0
	}
	return s
}

// DelayBefore returns the wait preceding the given 1-based attempt and
// whether that attempt is still within budget. Attempt 1 waits the initial
// delay; later attempts wait the interval.
func (s Schedule) DelayBefore(attempt int) (time.Duration, bool) {
	n := s.normalized()
	if attempt < 1 || attempt > n.Attempts {
		return 0, false
	}
	if attempt == 1 {
		return n.InitialDelay, true
	}
	return n.Interval, true
}
