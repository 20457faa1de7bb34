package config

import (
	"testing"
	"time"
)

func TestNewSessionSection(t *testing.T) {
	section := NewSessionSection()

	if section.ID() != SectionIDSession {
		t.Errorf("Expected ID %q, got %q", SectionIDSession, section.ID())
	}

	attempts, interval, delay := section.GetSchedule()
	if attempts != 5 {
		t.Errorf("Expected default 5 attempts, got %d", attempts)
	}
	if interval != 100*time.Millisecond {
		t.Errorf("Expected default 100ms interval, got %v", interval)
	}
	if delay != 100*time.Millisecond {
		t.Errorf("Expected default 100ms initial delay, got %v", delay)
	}

	if !section.IsHeadless() {
		t.Error("Expected headless by default")
	}

	if len(section.GetAllowedHosts()) != 0 {
		t.Error("Expected empty allowed-host list by default")
	}
}

func TestSessionSection_SetData(t *testing.T) {
	t.Run("applies all known keys", func(t *testing.T) {
		section := NewSessionSection()

		err := section.SetData(map[string]interface{}{
			"dismiss_attempts": float64(8),
			"dismiss_interval": "250ms",
			"initial_delay":    "1s",
			"headless":         false,
			"allowed_hosts":    []interface{}{"*.internal", "dav.example.com"},
		})
		if err != nil {
			t.Fatalf("SetData failed: %v", err)
		}

		attempts, interval, delay := section.GetSchedule()
		if attempts != 8 {
			t.Errorf("Expected 8 attempts, got %d", attempts)
		}
		if interval != 250*time.Millisecond {
			t.Errorf("Expected 250ms interval, got %v", interval)
		}
		if delay != time.Second {
			t.Errorf("Expected 1s delay, got %v", delay)
		}
		if section.IsHeadless() {
			t.Error("Expected headless false")
		}

		hosts := section.GetAllowedHosts()
		if len(hosts) != 2 || hosts[0] != "*.internal" {
			t.Errorf("Allowed hosts not applied: %v", hosts)
		}
	})

	t.Run("accepts numeric durations", func(t *testing.T) {
		section := NewSessionSection()

		err := section.SetData(map[string]interface{}{
			"dismiss_interval": float64(500 * time.Millisecond),
		})
		if err != nil {
			t.Fatalf("SetData failed: %v", err)
		}

		_, interval, _ := section.GetSchedule()
		if interval != 500*time.Millisecond {
			t.Errorf("Expected 500ms, got %v", interval)
		}
	})

	t.Run("rejects wrong types", func(t *testing.T) {
		section := NewSessionSection()

		if err := section.SetData(map[string]interface{}{"dismiss_attempts": "five"}); err == nil {
			t.Error("Expected error for string dismiss_attempts")
		}
		if err := section.SetData(map[string]interface{}{"headless": "yes"}); err == nil {
			t.Error("Expected error for string headless")
		}
		if err := section.SetData(map[string]interface{}{"dismiss_interval": true}); err == nil {
			t.Error("Expected error for bool dismiss_interval")
		}
		if err := section.SetData(map[string]interface{}{"allowed_hosts": "single"}); err == nil {
			t.Error("Expected error for string allowed_hosts")
		}
	})

	t.Run("rejects malformed duration strings", func(t *testing.T) {
		section := NewSessionSection()

		if err := section.SetData(map[string]interface{}{"initial_delay": "soon"}); err == nil {
			t.Error("Expected error for malformed duration")
		}
	})

	t.Run("ignores unknown keys", func(t *testing.T) {
		section := NewSessionSection()

		if err := section.SetData(map[string]interface{}{"future_setting": 1}); err != nil {
			t.Errorf("Unknown keys should be ignored: %v", err)
		}
	})

	t.Run("nil data keeps defaults", func(t *testing.T) {
		section := NewSessionSection()

		if err := section.SetData(nil); err != nil {
			t.Fatalf("SetData failed: %v", err)
		}

		attempts, _, _ := section.GetSchedule()
		if attempts != 5 {
			t.Error("Defaults changed on nil data")
		}
	})
}

func TestSessionSection_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		section := NewSessionSection()

		if err := section.Validate(); err != nil {
			t.Errorf("Defaults failed validation: %v", err)
		}
	})

	t.Run("rejects attempts out of range", func(t *testing.T) {
		section := NewSessionSection()
		section.SetDismissAttempts(0)

		if err := section.Validate(); err == nil {
			t.Error("Expected error for 0 attempts")
		}

		section.SetDismissAttempts(51)
		if err := section.Validate(); err == nil {
			t.Error("Expected error for 51 attempts")
		}
	})

	t.Run("rejects interval out of range", func(t *testing.T) {
		section := NewSessionSection()
		section.SetDismissInterval(time.Millisecond)

		if err := section.Validate(); err == nil {
			t.Error("Expected error for 1ms interval")
		}

		section.SetDismissInterval(time.Minute)
		if err := section.Validate(); err == nil {
			t.Error("Expected error for 1m interval")
		}
	})

	t.Run("rejects negative initial delay", func(t *testing.T) {
		section := NewSessionSection()
		section.SetInitialDelay(-time.Second)

		if err := section.Validate(); err == nil {
			t.Error("Expected error for negative delay")
		}
	})

	t.Run("rejects malformed host patterns", func(t *testing.T) {
		section := NewSessionSection()
		section.SetAllowedHosts([]string{"[invalid"})

		if err := section.Validate(); err == nil {
			t.Error("Expected error for malformed glob pattern")
		}
	})

	t.Run("accepts valid host patterns", func(t *testing.T) {
		section := NewSessionSection()
		section.SetAllowedHosts([]string{"*.internal", "dav.example.com", "files.*"})

		if err := section.Validate(); err != nil {
			t.Errorf("Valid patterns failed validation: %v", err)
		}
	})
}

func TestSessionSection_Reset(t *testing.T) {
	section := NewSessionSection()
	section.SetDismissAttempts(10)
	section.SetDismissInterval(time.Second)
	section.SetInitialDelay(2 * time.Second)
	section.SetHeadless(false)
	section.SetAllowedHosts([]string{"*.internal"})

	section.Reset()

	attempts, interval, delay := section.GetSchedule()
	if attempts != 5 || interval != 100*time.Millisecond || delay != 100*time.Millisecond {
		t.Errorf("Schedule not reset: %d %v %v", attempts, interval, delay)
	}
	if !section.IsHeadless() {
		t.Error("Headless not reset")
	}
	if len(section.GetAllowedHosts()) != 0 {
		t.Error("Allowed hosts not reset")
	}
}

func TestSessionSection_DataRoundTrip(t *testing.T) {
	section := NewSessionSection()
	section.SetDismissAttempts(3)
	section.SetDismissInterval(50 * time.Millisecond)
	section.SetHeadless(false)
	section.SetAllowedHosts([]string{"*.internal"})

	data := section.Data()

	loaded := NewSessionSection()
	if err := loaded.SetData(data); err != nil {
		t.Fatalf("SetData failed: %v", err)
	}

	attempts, interval, _ := loaded.GetSchedule()
	if attempts != 3 {
		t.Errorf("Attempts not round-tripped, got %d", attempts)
	}
	if interval != 50*time.Millisecond {
		t.Errorf("Interval not round-tripped, got %v", interval)
	}
	if loaded.IsHeadless() {
		t.Error("Headless not round-tripped")
	}
	if hosts := loaded.GetAllowedHosts(); len(hosts) != 1 || hosts[0] != "*.internal" {
		t.Errorf("Allowed hosts not round-tripped: %v", hosts)
	}
}
