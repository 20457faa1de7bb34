package config

import (
	"fmt"
	"sync"
)

// Section is a typed view over one named blob of configuration data.
// Sections own their defaults and validation; the manager moves their data
// in and out of the store.
type Section interface {
	// ID returns the stable identifier the section is stored under
	ID() string

	// Title returns a human-readable name for settings UIs
	Title() string

	// Description returns a short explanation of what the section controls
	Description() string

	// Data returns the current configuration as a serializable map
	Data() map[string]interface{}

	// SetData applies persisted data over the section's current values
	SetData(data map[string]interface{}) error

	// Validate checks the current values for consistency
	Validate() error

	// Reset restores the section to its defaults
	Reset()
}

// Manager coordinates configuration sections with a backing store. Sections
// are kept in registration order so settings UIs render them predictably.
type Manager struct {
	store    Store
	mu       sync.RWMutex
	sections map[string]Section
	order    []string
}

// NewManager creates a manager on top of the given store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sections: make(map[string]Section),
	}
}

// Store returns the backing store.
func (m *Manager) Store() Store {
	return m.store
}

// RegisterSection adds a section to the manager. Section IDs must be unique.
func (m *Manager) RegisterSection(section Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := section.ID()
	if _, exists := m.sections[id]; exists {
		return fmt.Errorf("section '%s' is already registered", id)
	}

	m.sections[id] = section
	m.order = append(m.order, id)
	return nil
}

// GetSection returns the section with the given ID.
func (m *Manager) GetSection(id string) (Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	section, ok := m.sections[id]
	return section, ok
}

// GetSections returns all sections in registration order.
func (m *Manager) GetSections() []Section {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sections := make([]Section, 0, len(m.order))
	for _, id := range m.order {
		sections = append(sections, m.sections[id])
	}
	return sections
}

// LoadAll reads the store and applies each section's persisted data over its
// defaults. Sections with no persisted data keep their defaults.
func (m *Manager) LoadAll() error {
	if err := m.store.Load(); err != nil {
		return fmt.Errorf("failed to load config store: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		data, err := m.store.GetSection(id)
		if err != nil {
			return fmt.Errorf("failed to read section '%s': %w", id, err)
		}
		if len(data) == 0 {
			continue
		}
		if err := m.sections[id].SetData(data); err != nil {
			return fmt.Errorf("failed to apply section '%s': %w", id, err)
		}
	}

	return nil
}

// SaveAll validates every section, then writes them all to the store. No
// data is written if any section fails validation.
func (m *Manager) SaveAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		if err := m.sections[id].Validate(); err != nil {
			return fmt.Errorf("section '%s' failed validation: %w", id, err)
		}
	}

	for _, id := range m.order {
		if err := m.store.SetSection(id, m.sections[id].Data()); err != nil {
			return fmt.Errorf("failed to write section '%s': %w", id, err)
		}
	}

	if err := m.store.Save(); err != nil {
		return fmt.Errorf("failed to save config store: %w", err)
	}

	return nil
}

// ResetAll restores every section to its defaults. The store is not touched
// until the next SaveAll.
func (m *Manager) ResetAll() {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		m.sections[id].Reset()
	}
}
