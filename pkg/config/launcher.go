package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDLauncher is the identifier for the launcher settings section
	SectionIDLauncher = "launcher"

	// Default values for launcher settings
	defaultBrowser   = "chromium"
	defaultHeadless  = false
	defaultTimeoutMS = 10000
	defaultDevice    = ""
)

// LauncherSection manages default settings for launching browser sessions.
// Values here seed the CLI flags; explicit flags always win.
type LauncherSection struct {
	Browser   string `yaml:"browser"`
	Headless  bool   `yaml:"headless"`
	TimeoutMS int    `yaml:"timeout_ms"`
	Device    string `yaml:"device"`
	mu        sync.RWMutex
}

// NewLauncherSection creates a new launcher section with default settings.
func NewLauncherSection() *LauncherSection {
	return &LauncherSection{
		Browser:   defaultBrowser,
		Headless:  defaultHeadless,
		TimeoutMS: defaultTimeoutMS,
		Device:    defaultDevice,
	}
}

// ID returns the section identifier.
func (s *LauncherSection) ID() string {
	return SectionIDLauncher
}

// Title returns the section title.
func (s *LauncherSection) Title() string {
	return "Launcher Settings"
}

// Description returns the section description.
func (s *LauncherSection) Description() string {
	return "Configure default browser, headless mode, device emulation and action timeout for new sessions."
}

// Data returns the current configuration data.
func (s *LauncherSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"browser":    s.Browser,
		"headless":   s.Headless,
		"timeout_ms": s.TimeoutMS,
		"device":     s.Device,
	}
}

// SetData updates the configuration from the provided data.
func (s *LauncherSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "browser":
			if name, ok := value.(string); ok {
				s.Browser = name
			} else {
				return fmt.Errorf("invalid value type for browser: expected string, got %T", value)
			}

		case "headless":
			if enabled, ok := value.(bool); ok {
				s.Headless = enabled
			} else {
				return fmt.Errorf("invalid value type for headless: expected bool, got %T", value)
			}

		case "timeout_ms":
			// YAML decodes integers as int, JSON as float64
			switch v := value.(type) {
			case int:
				s.TimeoutMS = v
			case int64:
				s.TimeoutMS = int(v)
			case float64:
				s.TimeoutMS = int(v)
			default:
				return fmt.Errorf("invalid value type for timeout_ms: expected number, got %T", value)
			}

		case "device":
			if name, ok := value.(string); ok {
				s.Device = name
			} else {
				return fmt.Errorf("invalid value type for device: expected string, got %T", value)
			}

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *LauncherSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.Browser {
	case "", "chromium", "firefox", "webkit", "cr", "ff", "wk":
	default:
		return fmt.Errorf("browser must be chromium, firefox or webkit, got %q", s.Browser)
	}

	if s.TimeoutMS < 0 {
		return fmt.Errorf("timeout_ms must not be negative, got %d", s.TimeoutMS)
	}

	return nil
}

// Reset resets the section to default configuration.
func (s *LauncherSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Browser = defaultBrowser
	s.Headless = defaultHeadless
	s.TimeoutMS = defaultTimeoutMS
	s.Device = defaultDevice
}

// GetBrowser returns the default browser engine name.
func (s *LauncherSection) GetBrowser() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Browser
}

// SetBrowser sets the default browser engine name.
func (s *LauncherSection) SetBrowser(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Browser = name
}

// GetHeadless returns whether sessions launch headless by default.
func (s *LauncherSection) GetHeadless() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Headless
}

// SetHeadless sets whether sessions launch headless by default.
func (s *LauncherSection) SetHeadless(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Headless = enabled
}

// GetTimeoutMS returns the default action timeout in milliseconds.
func (s *LauncherSection) GetTimeoutMS() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.TimeoutMS
}

// SetTimeoutMS sets the default action timeout in milliseconds.
func (s *LauncherSection) SetTimeoutMS(ms int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TimeoutMS = ms
}

// GetDevice returns the default device profile name. Empty means none.
func (s *LauncherSection) GetDevice() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Device
}

// SetDevice sets the default device profile name.
func (s *LauncherSection) SetDevice(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Device = name
}
