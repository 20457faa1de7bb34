package config

import (
	"strings"
	"testing"
)

func TestNewServersSection(t *testing.T) {
	section := NewServersSection()

	if section.ID() != SectionIDServers {
		t.Errorf("Expected ID %q, got %q", SectionIDServers, section.ID())
	}

	if section.Title() == "" {
		t.Error("Expected non-empty title")
	}

	if section.Description() == "" {
		t.Error("Expected non-empty description")
	}

	// Registry starts empty
	if section.Count() != 0 {
		t.Errorf("Expected empty registry, got %d servers", section.Count())
	}
}

func TestServersSection_AddServer(t *testing.T) {
	t.Run("adds valid server", func(t *testing.T) {
		section := NewServersSection()

		if err := section.AddServer("https://dav.example.com"); err != nil {
			t.Fatalf("AddServer failed: %v", err)
		}

		servers := section.Servers()
		if len(servers) != 1 || servers[0] != "https://dav.example.com" {
			t.Errorf("Server not added correctly, got %v", servers)
		}
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		section := NewServersSection()

		section.AddServer("https://first.example.com")
		section.AddServer("https://second.example.com")
		section.AddServer("http://third.example.com:8080")

		servers := section.Servers()
		if len(servers) != 3 {
			t.Fatalf("Expected 3 servers, got %d", len(servers))
		}
		if servers[0] != "https://first.example.com" ||
			servers[1] != "https://second.example.com" ||
			servers[2] != "http://third.example.com:8080" {
			t.Errorf("Servers not in insertion order: %v", servers)
		}
	})

	t.Run("trims whitespace", func(t *testing.T) {
		section := NewServersSection()

		if err := section.AddServer("  https://dav.example.com  "); err != nil {
			t.Fatalf("AddServer failed: %v", err)
		}

		if section.Servers()[0] != "https://dav.example.com" {
			t.Errorf("Whitespace not trimmed: %q", section.Servers()[0])
		}
	})

	t.Run("rejects empty URL", func(t *testing.T) {
		section := NewServersSection()

		if err := section.AddServer("   "); err == nil {
			t.Error("Expected error for empty URL")
		}

		if section.Count() != 0 {
			t.Error("Registry should be unchanged after rejected add")
		}
	})

	t.Run("rejects URL without scheme", func(t *testing.T) {
		section := NewServersSection()

		if err := section.AddServer("not-a-url"); err == nil {
			t.Error("Expected error for URL without scheme")
		}
	})

	t.Run("rejects non-http scheme", func(t *testing.T) {
		section := NewServersSection()

		if err := section.AddServer("ftp://files.example.com"); err == nil {
			t.Error("Expected error for ftp scheme")
		}
	})

	t.Run("rejects URL without host", func(t *testing.T) {
		section := NewServersSection()

		if err := section.AddServer("https://"); err == nil {
			t.Error("Expected error for URL without host")
		}
	})

	t.Run("rejects duplicate and leaves registry unchanged", func(t *testing.T) {
		section := NewServersSection()

		if err := section.AddServer("https://dav.example.com"); err != nil {
			t.Fatalf("First add failed: %v", err)
		}

		err := section.AddServer("https://dav.example.com")
		if err == nil {
			t.Fatal("Expected error for duplicate server")
		}
		if !strings.Contains(err.Error(), "already registered") {
			t.Errorf("Unexpected error message: %v", err)
		}

		if section.Count() != 1 {
			t.Errorf("Registry changed after rejected add, got %d servers", section.Count())
		}
	})

	t.Run("keeps path and port in the entry", func(t *testing.T) {
		section := NewServersSection()

		if err := section.AddServer("https://dav.example.com:8443/remote.php/dav"); err != nil {
			t.Fatalf("AddServer failed: %v", err)
		}

		if section.Servers()[0] != "https://dav.example.com:8443/remote.php/dav" {
			t.Errorf("Entry altered: %q", section.Servers()[0])
		}
	})
}

func TestServersSection_UpdateServer(t *testing.T) {
	t.Run("updates server at index", func(t *testing.T) {
		section := NewServersSection()
		section.AddServer("https://old.example.com")

		if err := section.UpdateServer(0, "https://new.example.com"); err != nil {
			t.Fatalf("UpdateServer failed: %v", err)
		}

		if section.Servers()[0] != "https://new.example.com" {
			t.Errorf("Server not updated, got %q", section.Servers()[0])
		}
	})

	t.Run("rejects invalid index", func(t *testing.T) {
		section := NewServersSection()

		if err := section.UpdateServer(0, "https://new.example.com"); err == nil {
			t.Error("Expected error for invalid index")
		}
		if err := section.UpdateServer(-1, "https://new.example.com"); err == nil {
			t.Error("Expected error for negative index")
		}
	})

	t.Run("rejects duplicate of another entry", func(t *testing.T) {
		section := NewServersSection()
		section.AddServer("https://a.example.com")
		section.AddServer("https://b.example.com")

		if err := section.UpdateServer(1, "https://a.example.com"); err == nil {
			t.Error("Expected error for duplicate server")
		}
	})

	t.Run("allows re-saving same entry at same index", func(t *testing.T) {
		section := NewServersSection()
		section.AddServer("https://a.example.com")

		if err := section.UpdateServer(0, "https://a.example.com"); err != nil {
			t.Errorf("Updating entry to itself should succeed: %v", err)
		}
	})

	t.Run("rejects invalid URL", func(t *testing.T) {
		section := NewServersSection()
		section.AddServer("https://a.example.com")

		if err := section.UpdateServer(0, "not-a-url"); err == nil {
			t.Error("Expected error for invalid URL")
		}

		if section.Servers()[0] != "https://a.example.com" {
			t.Error("Entry changed after rejected update")
		}
	})
}

func TestServersSection_RemoveServer(t *testing.T) {
	t.Run("removes exactly one entry", func(t *testing.T) {
		section := NewServersSection()
		section.AddServer("https://a.example.com")
		section.AddServer("https://b.example.com")
		section.AddServer("https://c.example.com")

		if err := section.RemoveServer(1); err != nil {
			t.Fatalf("RemoveServer failed: %v", err)
		}

		servers := section.Servers()
		if len(servers) != 2 {
			t.Fatalf("Expected 2 servers, got %d", len(servers))
		}
		if servers[0] != "https://a.example.com" || servers[1] != "https://c.example.com" {
			t.Errorf("Wrong entry removed: %v", servers)
		}
	})

	t.Run("rejects invalid index", func(t *testing.T) {
		section := NewServersSection()

		if err := section.RemoveServer(0); err == nil {
			t.Error("Expected error for invalid index")
		}
	})
}

func TestServersSection_Data(t *testing.T) {
	section := NewServersSection()
	section.AddServer("https://dav.example.com")
	section.AddServer("http://files.internal:8080")

	data := section.Data()

	serversData, ok := data[serversDataKey].([]interface{})
	if !ok {
		t.Fatalf("Expected []interface{} under %q, got %T", serversDataKey, data[serversDataKey])
	}

	if len(serversData) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(serversData))
	}

	if serversData[0] != "https://dav.example.com" || serversData[1] != "http://files.internal:8080" {
		t.Errorf("Data not in registry order: %v", serversData)
	}
}

func TestServersSection_SetData(t *testing.T) {
	t.Run("loads servers from data", func(t *testing.T) {
		section := NewServersSection()

		err := section.SetData(map[string]interface{}{
			serversDataKey: []interface{}{
				"https://dav.example.com",
				"http://files.internal:8080",
			},
		})
		if err != nil {
			t.Fatalf("SetData failed: %v", err)
		}

		servers := section.Servers()
		if len(servers) != 2 {
			t.Fatalf("Expected 2 servers, got %d", len(servers))
		}
	})

	t.Run("nil data keeps current list", func(t *testing.T) {
		section := NewServersSection()
		section.AddServer("https://keep.example.com")

		if err := section.SetData(nil); err != nil {
			t.Fatalf("SetData failed: %v", err)
		}

		if section.Count() != 1 {
			t.Error("List changed on nil data")
		}
	})

	t.Run("missing key keeps current list", func(t *testing.T) {
		section := NewServersSection()
		section.AddServer("https://keep.example.com")

		if err := section.SetData(map[string]interface{}{"other": "value"}); err != nil {
			t.Fatalf("SetData failed: %v", err)
		}

		if section.Count() != 1 {
			t.Error("List changed when authServers key missing")
		}
	})

	t.Run("rejects non-list value", func(t *testing.T) {
		section := NewServersSection()

		err := section.SetData(map[string]interface{}{serversDataKey: "https://dav.example.com"})
		if err == nil {
			t.Error("Expected error for non-list authServers")
		}
	})

	t.Run("rejects non-string entry", func(t *testing.T) {
		section := NewServersSection()

		err := section.SetData(map[string]interface{}{
			serversDataKey: []interface{}{"https://dav.example.com", 42},
		})
		if err == nil {
			t.Error("Expected error for non-string entry")
		}
	})

	t.Run("drops duplicates and empty strings on load", func(t *testing.T) {
		section := NewServersSection()

		err := section.SetData(map[string]interface{}{
			serversDataKey: []interface{}{
				"https://dav.example.com",
				"",
				"https://dav.example.com",
				"https://other.example.com",
			},
		})
		if err != nil {
			t.Fatalf("SetData failed: %v", err)
		}

		servers := section.Servers()
		if len(servers) != 2 {
			t.Fatalf("Expected 2 distinct servers, got %v", servers)
		}
		if servers[0] != "https://dav.example.com" || servers[1] != "https://other.example.com" {
			t.Errorf("First occurrence order not kept: %v", servers)
		}
	})
}

func TestServersSection_Validate(t *testing.T) {
	t.Run("empty registry is valid", func(t *testing.T) {
		section := NewServersSection()

		if err := section.Validate(); err != nil {
			t.Errorf("Empty registry should validate: %v", err)
		}
	})

	t.Run("valid entries pass", func(t *testing.T) {
		section := NewServersSection()
		section.AddServer("https://dav.example.com")
		section.AddServer("http://files.internal:8080/share")

		if err := section.Validate(); err != nil {
			t.Errorf("Valid registry failed validation: %v", err)
		}
	})

	t.Run("invalid entry fails", func(t *testing.T) {
		section := NewServersSection()
		// Bypass AddServer validation to simulate a hand-edited config
		section.servers = []string{"not-a-url"}

		if err := section.Validate(); err == nil {
			t.Error("Expected validation error for invalid entry")
		}
	})
}

func TestServersSection_Reset(t *testing.T) {
	section := NewServersSection()
	section.AddServer("https://dav.example.com")

	section.Reset()

	if section.Count() != 0 {
		t.Errorf("Expected empty registry after reset, got %d", section.Count())
	}
}

func TestServersSection_ServersReturnsCopy(t *testing.T) {
	section := NewServersSection()
	section.AddServer("https://dav.example.com")

	servers := section.Servers()
	servers[0] = "https://modified.example.com"

	if section.Servers()[0] != "https://dav.example.com" {
		t.Error("External modification affected registry")
	}
}
