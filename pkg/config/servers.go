package config

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// SectionIDServers is the identifier for the auth server registry section
	SectionIDServers = "servers"

	// serversDataKey is the key the registry list is persisted under
	serversDataKey = "authServers"
)

// ServersSection manages the registry of servers that sessions can be
// established against. The registry is an ordered list of distinct base
// URLs; order is preserved because it is what the user sees in the list.
type ServersSection struct {
	servers []string
}

// NewServersSection creates a new server registry section. The registry
// starts empty; servers are added by the user.
func NewServersSection() *ServersSection {
	return &ServersSection{
		servers: []string{},
	}
}

// ID returns the section identifier.
func (s *ServersSection) ID() string {
	return SectionIDServers
}

// Title returns the section title.
func (s *ServersSection) Title() string {
	return "Auth Servers"
}

// Description returns the section description.
func (s *ServersSection) Description() string {
	return "Servers to establish HTTP Basic Auth sessions against"
}

// Data returns the current configuration data.
func (s *ServersSection) Data() map[string]interface{} {
	serversData := make([]interface{}, len(s.servers))
	for i, server := range s.servers {
		serversData[i] = server
	}

	return map[string]interface{}{
		serversDataKey: serversData,
	}
}

// SetData updates the registry from persisted data. A missing authServers
// key keeps the current list, so defaults survive partial configs. Entries
// that are not strings are rejected; duplicate and empty entries are
// silently dropped to keep the list distinct.
func (s *ServersSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	serversData, ok := data[serversDataKey]
	if !ok {
		return nil
	}

	serversSlice, ok := serversData.([]interface{})
	if !ok {
		return fmt.Errorf("invalid authServers type: expected []interface{}, got %T", serversData)
	}

	servers := make([]string, 0, len(serversSlice))
	seen := make(map[string]bool, len(serversSlice))
	for i, item := range serversSlice {
		server, ok := item.(string)
		if !ok {
			return fmt.Errorf("invalid server at index %d: expected string, got %T", i, item)
		}

		server = strings.TrimSpace(server)
		if server == "" || seen[server] {
			continue
		}
		seen[server] = true
		servers = append(servers, server)
	}

	s.servers = servers
	return nil
}

// Validate validates the current configuration.
func (s *ServersSection) Validate() error {
	seen := make(map[string]bool, len(s.servers))
	for i, server := range s.servers {
		if err := validateServerURL(server); err != nil {
			return fmt.Errorf("server at index %d: %w", i, err)
		}
		if seen[server] {
			return fmt.Errorf("duplicate server at index %d: %s", i, server)
		}
		seen[server] = true
	}
	return nil
}

// Reset resets the section to an empty registry.
func (s *ServersSection) Reset() {
	s.servers = []string{}
}

// AddServer appends a server URL to the registry. The URL must be an
// absolute http or https URL and must not already be registered.
func (s *ServersSection) AddServer(server string) error {
	server = strings.TrimSpace(server)
	if server == "" {
		return fmt.Errorf("server URL cannot be empty")
	}

	if err := validateServerURL(server); err != nil {
		return err
	}

	for _, existing := range s.servers {
		if existing == server {
			return fmt.Errorf("server '%s' is already registered", server)
		}
	}

	s.servers = append(s.servers, server)
	return nil
}

// UpdateServer replaces the server URL at the given index, applying the same
// checks as AddServer against the rest of the list.
func (s *ServersSection) UpdateServer(index int, server string) error {
	if index < 0 || index >= len(s.servers) {
		return fmt.Errorf("invalid server index: %d", index)
	}

	server = strings.TrimSpace(server)
	if server == "" {
		return fmt.Errorf("server URL cannot be empty")
	}

	if err := validateServerURL(server); err != nil {
		return err
	}

	for i, existing := range s.servers {
		if i != index && existing == server {
			return fmt.Errorf("server '%s' is already registered", server)
		}
	}

	s.servers[index] = server
	return nil
}

// RemoveServer removes the server at the given index.
func (s *ServersSection) RemoveServer(index int) error {
	if index < 0 || index >= len(s.servers) {
		return fmt.Errorf("invalid server index: %d", index)
	}

	s.servers = append(s.servers[:index], s.servers[index+1:]...)
	return nil
}

// Servers returns a copy of the registry.
func (s *ServersSection) Servers() []string {
	servers := make([]string, len(s.servers))
	copy(servers, s.servers)
	return servers
}

// Count returns the number of registered servers.
func (s *ServersSection) Count() int {
	return len(s.servers)
}

// validateServerURL checks that a registry entry is an absolute http(s) URL.
func validateServerURL(server string) error {
	u, err := url.Parse(server)
	if err != nil {
		return fmt.Errorf("invalid server URL '%s': %w", server, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server URL must use http or https: '%s'", server)
	}
	if u.Host == "" {
		return fmt.Errorf("server URL must include a host: '%s'", server)
	}
	return nil
}
