package config

import (
	"sync"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// Initialize creates and initializes the global configuration manager.
// This should be called once at application startup.
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}

	manager := NewManager(store)

	// Register default sections
	if err := manager.RegisterSection(NewServersSection()); err != nil {
		return err
	}

	if err := manager.RegisterSection(NewSessionSection()); err != nil {
		return err
	}

	// Load configuration
	if err := manager.LoadAll(); err != nil {
		return err
	}

	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}

	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

// GetServers returns the server registry section from global config.
// Returns nil if config is not initialized.
func GetServers() *ServersSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDServers)
	if !ok {
		return nil
	}

	servers, ok := section.(*ServersSection)
	if !ok {
		return nil
	}

	return servers
}

// GetSession returns the session settings section from global config.
// Returns nil if config is not initialized.
func GetSession() *SessionSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDSession)
	if !ok {
		return nil
	}

	session, ok := section.(*SessionSection)
	if !ok {
		return nil
	}

	return session
}

// Path returns the location of the config file backing the global manager.
// Returns "" if config is not initialized or backed by another store.
func Path() string {
	if !IsInitialized() {
		return ""
	}

	fs, ok := Global().Store().(*FileStore)
	if !ok {
		return ""
	}

	return fs.Path()
}

// IsServerRegistered checks if a server URL is present in the registry.
// Returns false if config is not initialized.
func IsServerRegistered(server string) bool {
	servers := GetServers()
	if servers == nil {
		return false
	}
	for _, existing := range servers.Servers() {
		if existing == server {
			return true
		}
	}
	return false
}
