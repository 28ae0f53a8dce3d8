package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetGlobal() {
	globalMu.Lock()
	globalManager = nil
	globalMu.Unlock()
}

func TestInitialize(t *testing.T) {
	t.Run("initializes global manager with default sections", func(t *testing.T) {
		resetGlobal()
		configPath := filepath.Join(t.TempDir(), "config.yaml")

		if err := Initialize(configPath); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}

		if !IsInitialized() {
			t.Error("Global manager should be initialized")
		}

		manager := Global()
		if _, ok := manager.GetSection(SectionIDLauncher); !ok {
			t.Error("launcher section not registered")
		}
		if _, ok := manager.GetSection(SectionIDGrid); !ok {
			t.Error("grid section not registered")
		}
	})

	t.Run("applies stored values to sections", func(t *testing.T) {
		resetGlobal()
		configPath := filepath.Join(t.TempDir(), "config.yaml")

		content := strings.Join([]string{
			"version: \"1.0\"",
			"sections:",
			"  launcher:",
			"    browser: firefox",
			"    timeout_ms: 25000",
			"  grid:",
			"    max_sessions: 2",
			"    idle_ttl: 90s",
		}, "\n")
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		if err := Initialize(configPath); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}

		launcher := GetLauncher()
		if launcher == nil {
			t.Fatal("GetLauncher returned nil")
		}
		if launcher.GetBrowser() != "firefox" {
			t.Errorf("browser = %q, want firefox", launcher.GetBrowser())
		}
		if launcher.GetTimeoutMS() != 25000 {
			t.Errorf("timeout_ms = %d, want 25000", launcher.GetTimeoutMS())
		}

		grid := GetGrid()
		if grid == nil {
			t.Fatal("GetGrid returned nil")
		}
		if grid.GetMaxSessions() != 2 {
			t.Errorf("max_sessions = %d, want 2", grid.GetMaxSessions())
		}
	})

	t.Run("rejects malformed config file", func(t *testing.T) {
		resetGlobal()
		configPath := filepath.Join(t.TempDir(), "config.yaml")

		// Tab indentation is never legal YAML.
		if err := os.WriteFile(configPath, []byte("\tversion: \"1.0\"\n"), 0644); err != nil {
			t.Fatal(err)
		}

		if err := Initialize(configPath); err == nil {
			t.Error("Expected error for malformed config")
		}
	})
}

func TestGlobal_PanicsBeforeInitialize(t *testing.T) {
	resetGlobal()

	defer func() {
		if recover() == nil {
			t.Error("Global() should panic before Initialize")
		}
	}()

	Global()
}

func TestTypedGetters_NilBeforeInitialize(t *testing.T) {
	resetGlobal()

	if GetLauncher() != nil {
		t.Error("GetLauncher should return nil before Initialize")
	}
	if GetGrid() != nil {
		t.Error("GetGrid should return nil before Initialize")
	}
}

func TestSaveAndReload(t *testing.T) {
	resetGlobal()
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	if err := Initialize(configPath); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	GetLauncher().SetBrowser("webkit")
	GetGrid().SetMaxSessions(7)

	if err := Global().SaveAll(); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	resetGlobal()
	if err := Initialize(configPath); err != nil {
		t.Fatalf("Re-initialize failed: %v", err)
	}

	if GetLauncher().GetBrowser() != "webkit" {
		t.Errorf("browser = %q after reload, want webkit", GetLauncher().GetBrowser())
	}
	if GetGrid().GetMaxSessions() != 7 {
		t.Errorf("max_sessions = %d after reload, want 7", GetGrid().GetMaxSessions())
	}
}
