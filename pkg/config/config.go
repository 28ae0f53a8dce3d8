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

	// Create file store
	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}

	// Create manager
	manager := NewManager(store)

	// Register default sections
	if err := manager.RegisterSection(NewLauncherSection()); err != nil {
		return err
	}

	if err := manager.RegisterSection(NewGridSection()); err != nil {
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

// GetLauncher returns the launcher section from global config.
// Returns nil if config is not initialized.
func GetLauncher() *LauncherSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDLauncher)
	if !ok {
		return nil
	}

	launcher, ok := section.(*LauncherSection)
	if !ok {
		return nil
	}

	return launcher
}

// GetGrid returns the grid section from global config.
// Returns nil if config is not initialized.
func GetGrid() *GridSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDGrid)
	if !ok {
		return nil
	}

	grid, ok := section.(*GridSection)
	if !ok {
		return nil
	}

	return grid
}
