package launcher

import (
	"fmt"
	"sort"
	"strings"
)

// DeviceProfile is a named bundle of session defaults emulating a specific
// hardware and browser combination.
type DeviceProfile struct {
	UserAgent         string
	Viewport          *Size
	DeviceScaleFactor float64
	IsMobile          bool
	HasTouch          bool

	// DefaultBrowser is the session host that renders this device
	// faithfully; it overrides any explicit browser selection.
	DefaultBrowser string
}

// DeviceRegistry maps device names to their profiles.
type DeviceRegistry map[string]DeviceProfile

// Lookup returns the profile for name.
func (r DeviceRegistry) Lookup(name string) (DeviceProfile, bool) {
	profile, ok := r[name]
	return profile, ok
}

// Names returns all registered device names, sorted.
func (r DeviceRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// deviceNotFoundError builds the guidance message enumerating every known
// device so the operator can pick one.
func deviceNotFoundError(name string, devices DeviceRegistry) *GuidanceError {
	var b strings.Builder
	fmt.Fprintf(&b, "Device descriptor not found: '%s', available devices are:", name)
	for _, known := range devices.Names() {
		fmt.Fprintf(&b, "\n  '%s'", known)
	}
	return &GuidanceError{Message: b.String()}
}

// sessionFromDevice seeds a session configuration from a device profile.
func sessionFromDevice(d DeviceProfile) SessionConfig {
	cfg := SessionConfig{
		DeviceScaleFactor: float64Ptr(d.DeviceScaleFactor),
		IsMobile:          boolPtr(d.IsMobile),
		HasTouch:          boolPtr(d.HasTouch),
	}
	if d.UserAgent != "" {
		cfg.UserAgent = stringPtr(d.UserAgent)
	}
	if d.Viewport != nil {
		viewport := *d.Viewport
		cfg.Viewport = &viewport
	}
	return cfg
}

// resolveBrowserName picks the session host. A device profile's default host
// wins over the explicit selection; short aliases are expanded.
func resolveBrowserName(explicit string, device *DeviceProfile) (string, error) {
	name := explicit
	if name == "" {
		name = DefaultBrowser
	}
	if device != nil && device.DefaultBrowser != "" {
		name = device.DefaultBrowser
	}
	switch name {
	case "chromium", "cr":
		return "chromium", nil
	case "firefox", "ff":
		return "firefox", nil
	case "webkit", "wk":
		return "webkit", nil
	}
	return "", &ConfigurationError{
		Message: fmt.Sprintf("unsupported browser %q, must be one of: chromium, firefox, webkit", name),
	}
}

// applyHostOverrides clears session fields the selected host cannot honor on
// the given platform. The table is static: these are engine limitations, not
// something worth probing at runtime.
func applyHostOverrides(browserName, platform string, cfg *SessionConfig) {
	// WebKit GTK scrolling breaks under touch and mobile emulation.
	if browserName == "webkit" && platform == "linux" {
		cfg.HasTouch = nil
		cfg.IsMobile = nil
	}
	// Firefox has no mobile emulation.
	if browserName == "firefox" {
		cfg.IsMobile = nil
	}
}

// headedScaleFactor is the device scale applied when a visible UI is shown,
// so pages render at the host display's native density.
func headedScaleFactor(platform string) float64 {
	if platform == "darwin" {
		return 2
	}
	return 1
}
