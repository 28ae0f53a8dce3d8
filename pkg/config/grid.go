package config

import (
	"fmt"
	"sync"
	"time"
)

const (
	// SectionIDGrid is the identifier for the grid server settings section
	SectionIDGrid = "grid"

	// Default values for grid settings
	defaultGridBindAddress = "127.0.0.1:22222"
	defaultGridFactory     = "local"
	defaultGridMaxSessions = 10
	defaultGridIdleTTL     = 5 * time.Minute
)

// GridSection manages settings for the session grid server.
type GridSection struct {
	BindAddress    string        `yaml:"bind_address"`
	AuthToken      string        `yaml:"auth_token"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	MaxSessions    int           `yaml:"max_sessions"`
	IdleTTL        time.Duration `yaml:"idle_ttl"`
	Factory        string        `yaml:"factory"`
	mu             sync.RWMutex
}

// NewGridSection creates a new grid section with default settings.
func NewGridSection() *GridSection {
	return &GridSection{
		BindAddress: defaultGridBindAddress,
		MaxSessions: defaultGridMaxSessions,
		IdleTTL:     defaultGridIdleTTL,
		Factory:     defaultGridFactory,
	}
}

// ID returns the section identifier.
func (s *GridSection) ID() string {
	return SectionIDGrid
}

// Title returns the section title.
func (s *GridSection) Title() string {
	return "Grid Settings"
}

// Description returns the section description.
func (s *GridSection) Description() string {
	return "Configure the session grid server: bind address, access token, allowed origins and capacity."
}

// Data returns the current configuration data.
func (s *GridSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	origins := make([]interface{}, len(s.AllowedOrigins))
	for i, origin := range s.AllowedOrigins {
		origins[i] = origin
	}

	return map[string]interface{}{
		"bind_address":    s.BindAddress,
		"auth_token":      s.AuthToken,
		"allowed_origins": origins,
		"max_sessions":    s.MaxSessions,
		"idle_ttl":        s.IdleTTL.String(),
		"factory":         s.Factory,
	}
}

// SetData updates the configuration from the provided data.
func (s *GridSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "bind_address":
			if addr, ok := value.(string); ok {
				s.BindAddress = addr
			} else {
				return fmt.Errorf("invalid value type for bind_address: expected string, got %T", value)
			}

		case "auth_token":
			if token, ok := value.(string); ok {
				s.AuthToken = token
			} else {
				return fmt.Errorf("invalid value type for auth_token: expected string, got %T", value)
			}

		case "allowed_origins":
			items, ok := value.([]interface{})
			if !ok {
				return fmt.Errorf("invalid value type for allowed_origins: expected list, got %T", value)
			}
			origins := make([]string, 0, len(items))
			for _, item := range items {
				origin, ok := item.(string)
				if !ok {
					return fmt.Errorf("invalid allowed_origins entry: expected string, got %T", item)
				}
				origins = append(origins, origin)
			}
			s.AllowedOrigins = origins

		case "max_sessions":
			switch v := value.(type) {
			case int:
				s.MaxSessions = v
			case int64:
				s.MaxSessions = int(v)
			case float64:
				s.MaxSessions = int(v)
			default:
				return fmt.Errorf("invalid value type for max_sessions: expected number, got %T", value)
			}

		case "idle_ttl":
			// Handle both string and numeric duration values
			switch v := value.(type) {
			case string:
				duration, err := time.ParseDuration(v)
				if err != nil {
					return fmt.Errorf("invalid duration string for idle_ttl: %w", err)
				}
				s.IdleTTL = duration
			case int:
				s.IdleTTL = time.Duration(v)
			case int64:
				s.IdleTTL = time.Duration(v)
			case float64:
				s.IdleTTL = time.Duration(v)
			default:
				return fmt.Errorf("invalid value type for idle_ttl: expected string or number, got %T", value)
			}

		case "factory":
			if name, ok := value.(string); ok {
				s.Factory = name
			} else {
				return fmt.Errorf("invalid value type for factory: expected string, got %T", value)
			}

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *GridSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.BindAddress == "" {
		return fmt.Errorf("bind_address must not be empty")
	}

	if s.MaxSessions < 1 {
		return fmt.Errorf("max_sessions must be at least 1, got %d", s.MaxSessions)
	}

	if s.IdleTTL < 0 {
		return fmt.Errorf("idle_ttl must not be negative, got %v", s.IdleTTL)
	}

	return nil
}

// Reset resets the section to default configuration.
func (s *GridSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.BindAddress = defaultGridBindAddress
	s.AuthToken = ""
	s.AllowedOrigins = nil
	s.MaxSessions = defaultGridMaxSessions
	s.IdleTTL = defaultGridIdleTTL
	s.Factory = defaultGridFactory
}

// GetBindAddress returns the grid bind address.
func (s *GridSection) GetBindAddress() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.BindAddress
}

// SetBindAddress sets the grid bind address.
func (s *GridSection) SetBindAddress(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.BindAddress = addr
}

// GetAuthToken returns the configured access token. Empty means no auth.
func (s *GridSection) GetAuthToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.AuthToken
}

// SetAuthToken sets the access token clients must present.
func (s *GridSection) SetAuthToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AuthToken = token
}

// GetAllowedOrigins returns the allowed origin patterns.
func (s *GridSection) GetAllowedOrigins() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	origins := make([]string, len(s.AllowedOrigins))
	copy(origins, s.AllowedOrigins)
	return origins
}

// SetAllowedOrigins sets the allowed origin patterns.
func (s *GridSection) SetAllowedOrigins(origins []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.AllowedOrigins = make([]string, len(origins))
	copy(s.AllowedOrigins, origins)
}

// GetMaxSessions returns the maximum number of concurrent sessions.
func (s *GridSection) GetMaxSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.MaxSessions
}

// SetMaxSessions sets the maximum number of concurrent sessions.
func (s *GridSection) SetMaxSessions(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MaxSessions = n
}

// GetIdleTTL returns how long an unconnected target may idle before reaping.
func (s *GridSection) GetIdleTTL() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.IdleTTL
}

// SetIdleTTL sets how long an unconnected target may idle before reaping.
func (s *GridSection) SetIdleTTL(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.IdleTTL = ttl
}

// GetFactory returns the session factory identifier.
func (s *GridSection) GetFactory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Factory
}

// SetFactory sets the session factory identifier.
func (s *GridSection) SetFactory(identifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Factory = identifier
}
