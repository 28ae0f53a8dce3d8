package launcher

// Options carries the flat operator-supplied configuration for one session.
// String fields that encode numbers ("W,H", "lat,long", milliseconds) are
// kept raw here and parsed by Normalize so malformed input produces operator
// guidance instead of a flag-parsing failure.
type Options struct {
	// Browser selects the session host: chromium, firefox or webkit.
	// The short aliases cr, ff and wk are accepted. Empty means chromium.
	Browser string

	// Channel selects a browser distribution channel (chrome, msedge, ...).
	Channel string

	// ExecutablePath points at an explicit browser binary instead of the
	// managed one.
	ExecutablePath string

	// Headless controls whether the session host runs without a visible UI.
	Headless bool

	// Device names a device profile to emulate. Must exist in the registry.
	Device string

	// ColorScheme is "light" or "dark" when set.
	ColorScheme string

	// Geolocation is a "latitude,longitude" pair. Setting it also grants the
	// geolocation permission to the session.
	Geolocation string

	// IgnoreHTTPSErrors disables TLS certificate checks for the session.
	IgnoreHTTPSErrors bool

	// Lang sets the session locale, for example "en-GB".
	Lang string

	// ProxyServer routes session traffic through the given proxy.
	ProxyServer string

	// ProxyBypass lists comma-separated domains that skip the proxy.
	ProxyBypass string

	// LoadStorage reads a storage state snapshot from this path at session
	// creation.
	LoadStorage string

	// SaveStorage writes a storage state snapshot to this path at teardown.
	SaveStorage string

	// SaveTrace writes the session trace to this path at teardown. Tracing
	// starts before the first view opens so the earliest actions are captured.
	SaveTrace string

	// Timezone sets the session timezone, for example "Europe/Rome".
	Timezone string

	// Timeout is the default action and navigation timeout in milliseconds.
	// Empty means DefaultTimeoutMS.
	Timeout string

	// UserAgent overrides the session user agent string.
	UserAgent string

	// ViewportSize is a "width,height" pair in pixels.
	ViewportSize string
}

// LaunchConfig describes how to start a session host. Immutable once the
// session exists.
type LaunchConfig struct {
	Headless       bool
	ExecutablePath string
	Channel        string
	Proxy          *Proxy
}

// Echo returns a copy with presentation-only fields stripped, suitable for
// handing back to callers that should only see operator-intentional settings.
func (c LaunchConfig) Echo() LaunchConfig {
	c.Headless = false
	c.ExecutablePath = ""
	return c
}

// Proxy configures outbound traffic routing for the session host.
type Proxy struct {
	Server string
	Bypass string
}

// SessionConfig describes the behavioral settings of a session. Built once
// by Normalize (device profile overlaid with explicit flags), then treated
// as immutable.
type SessionConfig struct {
	Viewport          *Size
	DeviceScaleFactor *float64
	Geolocation       *Geolocation
	Permissions       []string
	UserAgent         *string
	Locale            *string
	ColorScheme       string
	TimezoneID        *string
	StorageStatePath  *string
	IgnoreHTTPSErrors bool
	IsMobile          *bool
	HasTouch          *bool
}

// Echo returns a copy with the computed device scale factor stripped.
func (c SessionConfig) Echo() SessionConfig {
	c.DeviceScaleFactor = nil
	return c
}

// Size is a viewport size in pixels.
type Size struct {
	Width  int
	Height int
}

// Geolocation is a coordinate pair emulated for the session.
type Geolocation struct {
	Latitude  float64
	Longitude float64
}

// Normalized is the output of the Option Normalizer: everything the
// lifecycle manager needs to acquire and later tear down a session.
type Normalized struct {
	// BrowserName is the resolved session host name. A device profile's
	// default host wins over the explicit browser selection.
	BrowserName string

	// Launch configures host acquisition.
	Launch LaunchConfig

	// Session configures the browsing session.
	Session SessionConfig

	// TraceFile is the trace artifact destination, empty when tracing is off.
	TraceFile string

	// StorageFile is the storage snapshot destination, empty when off.
	StorageFile string

	// TimeoutMS is the default action and navigation timeout in milliseconds.
	TimeoutMS float64
}

// Default values for session options
const (
	DefaultBrowser   = "chromium"
	DefaultTimeoutMS = 10000.0 // 10 seconds in milliseconds
)

func boolPtr(b bool) *bool          { return &b }
func stringPtr(s string) *string    { return &s }
func float64Ptr(f float64) *float64 { return &f }
