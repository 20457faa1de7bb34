package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/gobwas/glob"
)

const (
	// SectionIDSession is the identifier for the session settings section
	SectionIDSession = "session"

	// Default values for session establishment settings
	defaultDismissAttempts = 5
	defaultDismissInterval = 100 * time.Millisecond
	defaultInitialDelay    = 100 * time.Millisecond
	defaultHeadless        = true
)

// SessionSection manages how authentication sessions are established: the
// dismissal polling budget, the browser visibility, and which hosts may be
// authorized against at all.
type SessionSection struct {
	DismissAttempts int           `json:"dismiss_attempts"`
	DismissInterval time.Duration `json:"dismiss_interval"`
	InitialDelay    time.Duration `json:"initial_delay"`
	Headless        bool          `json:"headless"`
	AllowedHosts    []string      `json:"allowed_hosts"`
	mu              sync.RWMutex
}

// NewSessionSection creates a new session section with default settings.
// The allowed-host list starts empty, which permits every host.
func NewSessionSection() *SessionSection {
	return &SessionSection{
		DismissAttempts: defaultDismissAttempts,
		DismissInterval: defaultDismissInterval,
		InitialDelay:    defaultInitialDelay,
		Headless:        defaultHeadless,
	}
}

// ID returns the section identifier.
func (s *SessionSection) ID() string {
	return SectionIDSession
}

// Title returns the section title.
func (s *SessionSection) Title() string {
	return "Session Settings"
}

// Description returns the section description.
func (s *SessionSection) Description() string {
	return "Configure session establishment: dismissal polling, browser visibility and host restrictions."
}

// Data returns the current configuration data.
func (s *SessionSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hosts := make([]interface{}, len(s.AllowedHosts))
	for i, host := range s.AllowedHosts {
		hosts[i] = host
	}

	return map[string]interface{}{
		"dismiss_attempts": s.DismissAttempts,
		"dismiss_interval": s.DismissInterval.String(),
		"initial_delay":    s.InitialDelay.String(),
		"headless":         s.Headless,
		"allowed_hosts":    hosts,
	}
}

// SetData updates the configuration from the provided data.
func (s *SessionSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "dismiss_attempts":
			// JSON numbers come as float64
			switch v := value.(type) {
			case float64:
				s.DismissAttempts = int(v)
			case int:
				s.DismissAttempts = v
			case int64:
				s.DismissAttempts = int(v)
			default:
				return fmt.Errorf("invalid value type for dismiss_attempts: expected number, got %T", value)
			}

		case "dismiss_interval":
			interval, err := parseDurationValue(value)
			if err != nil {
				return fmt.Errorf("invalid dismiss_interval: %w", err)
			}
			s.DismissInterval = interval

		case "initial_delay":
			delay, err := parseDurationValue(value)
			if err != nil {
				return fmt.Errorf("invalid initial_delay: %w", err)
			}
			s.InitialDelay = delay

		case "headless":
			if headless, ok := value.(bool); ok {
				s.Headless = headless
			} else {
				return fmt.Errorf("invalid value type for headless: expected bool, got %T", value)
			}

		case "allowed_hosts":
			hostsSlice, ok := value.([]interface{})
			if !ok {
				return fmt.Errorf("invalid value type for allowed_hosts: expected []interface{}, got %T", value)
			}
			hosts := make([]string, 0, len(hostsSlice))
			for i, item := range hostsSlice {
				host, ok := item.(string)
				if !ok {
					return fmt.Errorf("invalid allowed host at index %d: expected string, got %T", i, item)
				}
				hosts = append(hosts, host)
			}
			s.AllowedHosts = hosts

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// parseDurationValue accepts duration strings and raw nanosecond numbers.
func parseDurationValue(value interface{}) (time.Duration, error) {
	switch v := value.(type) {
	case string:
		duration, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid duration string: %w", err)
		}
		return duration, nil
	case float64:
		// JSON numbers come as float64
		return time.Duration(v), nil
	case int64:
		return time.Duration(v), nil
	default:
		return 0, fmt.Errorf("expected string or number, got %T", value)
	}
}

// Validate validates the current configuration.
func (s *SessionSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.DismissAttempts < 1 || s.DismissAttempts > 50 {
		return fmt.Errorf("dismiss_attempts must be between 1 and 50, got %d", s.DismissAttempts)
	}

	if s.DismissInterval < 10*time.Millisecond || s.DismissInterval > 10*time.Second {
		return fmt.Errorf("dismiss_interval must be between 10ms and 10s, got %v", s.DismissInterval)
	}

	if s.InitialDelay < 0 || s.InitialDelay > 30*time.Second {
		return fmt.Errorf("initial_delay must be between 0 and 30s, got %v", s.InitialDelay)
	}

	for i, host := range s.AllowedHosts {
		if _, err := glob.Compile(host); err != nil {
			return fmt.Errorf("invalid allowed host pattern at index %d: %w", i, err)
		}
	}

	return nil
}

// Reset resets the section to default configuration.
func (s *SessionSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.DismissAttempts = defaultDismissAttempts
	s.DismissInterval = defaultDismissInterval
	s.InitialDelay = defaultInitialDelay
	s.Headless = defaultHeadless
	s.AllowedHosts = nil
}

// GetSchedule returns the dismissal polling settings.
// Returns (attempts, interval, initialDelay).
func (s *SessionSection) GetSchedule() (int, time.Duration, time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.DismissAttempts, s.DismissInterval, s.InitialDelay
}

// IsHeadless reports whether browser views run without a visible window.
func (s *SessionSection) IsHeadless() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Headless
}

// SetHeadless sets whether browser views run without a visible window.
func (s *SessionSection) SetHeadless(headless bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Headless = headless
}

// GetAllowedHosts returns a copy of the allowed-host patterns. An empty
// list permits every host.
func (s *SessionSection) GetAllowedHosts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hosts := make([]string, len(s.AllowedHosts))
	copy(hosts, s.AllowedHosts)
	return hosts
}

// SetAllowedHosts replaces the allowed-host patterns.
func (s *SessionSection) SetAllowedHosts(hosts []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.AllowedHosts = make([]string, len(hosts))
	copy(s.AllowedHosts, hosts)
}

// SetDismissAttempts sets the dismissal polling budget.
func (s *SessionSection) SetDismissAttempts(attempts int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DismissAttempts = attempts
}

// SetDismissInterval sets the wait between dismissal polls.
func (s *SessionSection) SetDismissInterval(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DismissInterval = interval
}

// SetInitialDelay sets the wait before the first dismissal poll.
func (s *SessionSection) SetInitialDelay(delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InitialDelay = delay
}
