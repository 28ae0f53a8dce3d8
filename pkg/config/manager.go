package config

import (
	"fmt"
	"sync"
)

// Section is a logical group of related settings that knows how to
// serialize itself to and from a Store.
type Section interface {
	// ID returns the unique section identifier used as the storage key
	ID() string

	// Title returns a human-readable section title
	Title() string

	// Description returns a human-readable section description
	Description() string

	// Data returns the current configuration data
	Data() map[string]interface{}

	// SetData updates the configuration from the provided data
	SetData(data map[string]interface{}) error

	// Validate validates the current configuration
	Validate() error

	// Reset resets the section to default configuration
	Reset()
}

// Manager coordinates configuration sections with a backing store.
type Manager struct {
	store    Store
	sections map[string]Section
	order    []string
	mu       sync.RWMutex
}

// NewManager creates a new configuration manager backed by the given store.
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

// RegisterSection registers a configuration section with the manager.
// Returns an error if a section with the same ID is already registered.
func (m *Manager) RegisterSection(section Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := section.ID()
	if _, exists := m.sections[id]; exists {
		return fmt.Errorf("section %q is already registered", id)
	}

	m.sections[id] = section
	m.order = append(m.order, id)
	return nil
}

// GetSection retrieves a registered section by ID.
func (m *Manager) GetSection(id string) (Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	section, ok := m.sections[id]
	return section, ok
}

// GetSections returns all registered sections in registration order.
func (m *Manager) GetSections() []Section {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sections := make([]Section, 0, len(m.order))
	for _, id := range m.order {
		sections = append(sections, m.sections[id])
	}
	return sections
}

// LoadAll loads the store from disk and pushes each section's stored
// data into the registered sections.
func (m *Manager) LoadAll() error {
	if err := m.store.Load(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		section := m.sections[id]
		data, err := m.store.GetSection(id)
		if err != nil {
			return fmt.Errorf("failed to read section %q: %w", id, err)
		}
		if err := section.SetData(data); err != nil {
			return fmt.Errorf("failed to apply section %q: %w", id, err)
		}
	}

	return nil
}

// SaveAll validates every registered section, writes their data to the
// store, and persists the store to disk. Validation failures abort the
// save before anything is written.
func (m *Manager) SaveAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		if err := m.sections[id].Validate(); err != nil {
			return fmt.Errorf("section %q failed validation: %w", id, err)
		}
	}

	for _, id := range m.order {
		if err := m.store.SetSection(id, m.sections[id].Data()); err != nil {
			return fmt.Errorf("failed to stage section %q: %w", id, err)
		}
	}

	if err := m.store.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	return nil
}

// ResetAll resets every registered section to its default configuration.
// The store is not touched; call SaveAll to persist the defaults.
func (m *Manager) ResetAll() {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		m.sections[id].Reset()
	}
}
