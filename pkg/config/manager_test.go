package config

import (
	"fmt"
	"testing"
)

// stubSection is a minimal Section implementation for manager tests.
type stubSection struct {
	id          string
	title       string
	data        map[string]interface{}
	setDataErr  error
	validateErr error
}

func (s *stubSection) ID() string          { return s.id }
func (s *stubSection) Title() string       { return s.title }
func (s *stubSection) Description() string { return "stub section for tests" }
func (s *stubSection) Data() map[string]interface{} {
	return s.data
}
func (s *stubSection) SetData(data map[string]interface{}) error {
	if s.setDataErr != nil {
		return s.setDataErr
	}
	s.data = data
	return nil
}
func (s *stubSection) Validate() error { return s.validateErr }
func (s *stubSection) Reset()          { s.data = make(map[string]interface{}) }

// stubStore is an in-memory Store implementation for manager tests.
type stubStore struct {
	sections map[string]map[string]interface{}
	loadErr  error
	saveErr  error
	saves    int
}

func newStubStore() *stubStore {
	return &stubStore{sections: make(map[string]map[string]interface{})}
}

func (s *stubStore) Load() error { return s.loadErr }

func (s *stubStore) Save() error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	return nil
}

func (s *stubStore) GetSection(sectionID string) (map[string]interface{}, error) {
	if data, exists := s.sections[sectionID]; exists {
		return data, nil
	}
	return make(map[string]interface{}), nil
}

func (s *stubStore) SetSection(sectionID string, data map[string]interface{}) error {
	s.sections[sectionID] = data
	return nil
}

func (s *stubStore) GetAll() (map[string]map[string]interface{}, error) {
	return s.sections, nil
}

func (s *stubStore) SetAll(data map[string]map[string]interface{}) error {
	s.sections = data
	return nil
}

func TestNewManager(t *testing.T) {
	store := newStubStore()
	manager := NewManager(store)

	if manager == nil {
		t.Fatal("NewManager returned nil")
	}

	if manager.Store() != store {
		t.Error("Manager does not reference the store it was built with")
	}

	if len(manager.GetSections()) != 0 {
		t.Error("New manager should have no sections")
	}
}

func TestManager_RegisterSection(t *testing.T) {
	t.Run("registers and retrieves a section", func(t *testing.T) {
		manager := NewManager(newStubStore())
		section := &stubSection{id: "launcher", title: "Launcher"}

		if err := manager.RegisterSection(section); err != nil {
			t.Fatalf("RegisterSection failed: %v", err)
		}

		retrieved, ok := manager.GetSection("launcher")
		if !ok {
			t.Fatal("Section not found after registration")
		}
		if retrieved.ID() != "launcher" {
			t.Errorf("Retrieved section has ID %q, want launcher", retrieved.ID())
		}
	})

	t.Run("rejects duplicate section IDs", func(t *testing.T) {
		manager := NewManager(newStubStore())

		if err := manager.RegisterSection(&stubSection{id: "grid"}); err != nil {
			t.Fatalf("First registration failed: %v", err)
		}

		if err := manager.RegisterSection(&stubSection{id: "grid"}); err == nil {
			t.Error("Expected error for duplicate registration")
		}
	})

	t.Run("preserves registration order", func(t *testing.T) {
		manager := NewManager(newStubStore())

		for _, id := range []string{"launcher", "grid", "devices"} {
			if err := manager.RegisterSection(&stubSection{id: id}); err != nil {
				t.Fatalf("RegisterSection(%q) failed: %v", id, err)
			}
		}

		sections := manager.GetSections()
		if len(sections) != 3 {
			t.Fatalf("Expected 3 sections, got %d", len(sections))
		}
		for i, want := range []string{"launcher", "grid", "devices"} {
			if sections[i].ID() != want {
				t.Errorf("sections[%d].ID() = %q, want %q", i, sections[i].ID(), want)
			}
		}
	})
}

func TestManager_GetSection(t *testing.T) {
	manager := NewManager(newStubStore())
	manager.RegisterSection(&stubSection{id: "launcher"})

	if _, ok := manager.GetSection("launcher"); !ok {
		t.Error("Registered section not found")
	}

	if _, ok := manager.GetSection("telemetry"); ok {
		t.Error("GetSection should report false for unknown IDs")
	}
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("pushes stored data into sections", func(t *testing.T) {
		store := newStubStore()
		store.sections["launcher"] = map[string]interface{}{
			"browser":  "firefox",
			"headless": true,
		}

		manager := NewManager(store)
		section := &stubSection{id: "launcher", data: make(map[string]interface{})}
		manager.RegisterSection(section)

		if err := manager.LoadAll(); err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}

		if section.data["browser"] != "firefox" {
			t.Errorf("browser = %v, want firefox", section.data["browser"])
		}
		if section.data["headless"] != true {
			t.Errorf("headless = %v, want true", section.data["headless"])
		}
	})

	t.Run("propagates store load errors", func(t *testing.T) {
		store := newStubStore()
		store.loadErr = fmt.Errorf("disk unreadable")

		manager := NewManager(store)
		if err := manager.LoadAll(); err == nil {
			t.Error("Expected store load error")
		}
	})

	t.Run("propagates section SetData errors", func(t *testing.T) {
		store := newStubStore()
		store.sections["grid"] = map[string]interface{}{"max_sessions": "ten"}

		manager := NewManager(store)
		manager.RegisterSection(&stubSection{
			id:         "grid",
			setDataErr: fmt.Errorf("max_sessions must be a number"),
		})

		if err := manager.LoadAll(); err == nil {
			t.Error("Expected SetData error to propagate")
		}
	})

	t.Run("loads every registered section", func(t *testing.T) {
		store := newStubStore()
		store.sections["launcher"] = map[string]interface{}{"browser": "webkit"}
		store.sections["grid"] = map[string]interface{}{"factory": "local"}

		manager := NewManager(store)
		launcher := &stubSection{id: "launcher", data: make(map[string]interface{})}
		grid := &stubSection{id: "grid", data: make(map[string]interface{})}
		manager.RegisterSection(launcher)
		manager.RegisterSection(grid)

		if err := manager.LoadAll(); err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}

		if launcher.data["browser"] != "webkit" {
			t.Error("launcher section not loaded")
		}
		if grid.data["factory"] != "local" {
			t.Error("grid section not loaded")
		}
	})
}

func TestManager_SaveAll(t *testing.T) {
	t.Run("writes section data through the store", func(t *testing.T) {
		store := newStubStore()
		manager := NewManager(store)
		manager.RegisterSection(&stubSection{
			id:   "launcher",
			data: map[string]interface{}{"device": "Pixel 7"},
		})

		if err := manager.SaveAll(); err != nil {
			t.Fatalf("SaveAll failed: %v", err)
		}

		if store.sections["launcher"]["device"] != "Pixel 7" {
			t.Error("Section data not written to store")
		}
		if store.saves != 1 {
			t.Errorf("store.Save called %d times, want 1", store.saves)
		}
	})

	t.Run("validation failure aborts before anything is staged", func(t *testing.T) {
		store := newStubStore()
		manager := NewManager(store)
		manager.RegisterSection(&stubSection{
			id:   "launcher",
			data: map[string]interface{}{"browser": "chromium"},
		})
		manager.RegisterSection(&stubSection{
			id:          "grid",
			data:        map[string]interface{}{"max_sessions": -1},
			validateErr: fmt.Errorf("max_sessions must be at least 1"),
		})

		if err := manager.SaveAll(); err == nil {
			t.Fatal("Expected validation error")
		}

		if len(store.sections) != 0 {
			t.Error("No section should be staged when validation fails")
		}
		if store.saves != 0 {
			t.Error("store.Save should not run when validation fails")
		}
	})

	t.Run("propagates store save errors", func(t *testing.T) {
		store := newStubStore()
		store.saveErr = fmt.Errorf("disk full")

		manager := NewManager(store)
		manager.RegisterSection(&stubSection{id: "launcher", data: make(map[string]interface{})})

		if err := manager.SaveAll(); err == nil {
			t.Error("Expected store save error")
		}
	})
}

func TestManager_ResetAll(t *testing.T) {
	manager := NewManager(newStubStore())

	launcher := &stubSection{id: "launcher", data: map[string]interface{}{"browser": "firefox"}}
	grid := &stubSection{id: "grid", data: map[string]interface{}{"max_sessions": 3}}
	manager.RegisterSection(launcher)
	manager.RegisterSection(grid)

	manager.ResetAll()

	if len(launcher.data) != 0 {
		t.Error("launcher section not reset")
	}
	if len(grid.data) != 0 {
		t.Error("grid section not reset")
	}

	// Resetting an empty manager must not panic.
	NewManager(newStubStore()).ResetAll()
}

func TestManager_Concurrency(t *testing.T) {
	t.Run("concurrent reads are safe", func(t *testing.T) {
		manager := NewManager(newStubStore())
		manager.RegisterSection(&stubSection{id: "launcher"})

		done := make(chan bool)
		for i := 0; i < 10; i++ {
			go func() {
				manager.GetSection("launcher")
				manager.GetSections()
				done <- true
			}()
		}
		for i := 0; i < 10; i++ {
			<-done
		}
	})

	t.Run("concurrent registrations are safe", func(t *testing.T) {
		manager := NewManager(newStubStore())

		done := make(chan bool)
		for i := 0; i < 10; i++ {
			i := i
			go func() {
				manager.RegisterSection(&stubSection{id: fmt.Sprintf("section%d", i)})
				done <- true
			}()
		}
		for i := 0; i < 10; i++ {
			<-done
		}

		if got := len(manager.GetSections()); got != 10 {
			t.Errorf("Expected 10 sections, got %d", got)
		}
	})
}
