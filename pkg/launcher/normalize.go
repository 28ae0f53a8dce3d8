package launcher

import (
	"strconv"
	"strings"
)

// Normalize validates raw options and maps them into a launch configuration
// and a session configuration. It is a pure function: the device registry
// and platform are parameters, and validation failures are returned as typed
// errors rather than acted on.
//
// GuidanceError results mean the operator has to pick a valid value; the
// process must not proceed with partially parsed state.
func Normalize(opts Options, devices DeviceRegistry, platform string) (*Normalized, error) {
	var device *DeviceProfile
	if opts.Device != "" {
		profile, ok := devices.Lookup(opts.Device)
		if !ok {
			return nil, deviceNotFoundError(opts.Device, devices)
		}
		device = &profile
	}

	if opts.ColorScheme != "" && opts.ColorScheme != "light" && opts.ColorScheme != "dark" {
		return nil, &GuidanceError{Message: `Invalid color scheme, should be one of "light", "dark"`}
	}

	browserName, err := resolveBrowserName(opts.Browser, device)
	if err != nil {
		return nil, err
	}

	launch := LaunchConfig{
		Headless:       opts.Headless,
		ExecutablePath: opts.ExecutablePath,
		Channel:        opts.Channel,
	}
	if opts.ProxyServer != "" {
		launch.Proxy = &Proxy{Server: opts.ProxyServer, Bypass: opts.ProxyBypass}
	}

	var session SessionConfig
	if device != nil {
		session = sessionFromDevice(*device)
	}

	// In headed mode, use the host display scale so pages look right on the
	// operator's screen. Headless keeps whatever the profile says.
	if !opts.Headless {
		session.DeviceScaleFactor = float64Ptr(headedScaleFactor(platform))
	}

	if opts.ViewportSize != "" {
		viewport, err := parseViewport(opts.ViewportSize)
		if err != nil {
			return nil, err
		}
		session.Viewport = viewport
	}

	if opts.Geolocation != "" {
		geo, err := parseGeolocation(opts.Geolocation)
		if err != nil {
			return nil, err
		}
		session.Geolocation = geo
		session.Permissions = []string{"geolocation"}
	}

	if opts.UserAgent != "" {
		session.UserAgent = stringPtr(opts.UserAgent)
	}
	if opts.Lang != "" {
		session.Locale = stringPtr(opts.Lang)
	}
	if opts.ColorScheme != "" {
		session.ColorScheme = opts.ColorScheme
	}
	if opts.Timezone != "" {
		session.TimezoneID = stringPtr(opts.Timezone)
	}
	if opts.LoadStorage != "" {
		session.StorageStatePath = stringPtr(opts.LoadStorage)
	}
	session.IgnoreHTTPSErrors = opts.IgnoreHTTPSErrors

	applyHostOverrides(browserName, platform, &session)

	timeoutMS := DefaultTimeoutMS
	if opts.Timeout != "" {
		timeoutMS, err = parseTimeout(opts.Timeout)
		if err != nil {
			return nil, err
		}
	}

	return &Normalized{
		BrowserName: browserName,
		Launch:      launch,
		Session:     session,
		TraceFile:   opts.SaveTrace,
		StorageFile: opts.SaveStorage,
		TimeoutMS:   timeoutMS,
	}, nil
}

func parseViewport(value string) (*Size, error) {
	guidance := &GuidanceError{
		Message: `Invalid viewport size format: use "width,height", for example --viewport-size="800,600"`,
	}
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return nil, guidance
	}
	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, guidance
	}
	height, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, guidance
	}
	return &Size{Width: width, Height: height}, nil
}

func parseGeolocation(value string) (*Geolocation, error) {
	guidance := &GuidanceError{
		Message: `Invalid geolocation format, should be "lat,long". For example --geolocation="37.819722,-122.478611"`,
	}
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return nil, guidance
	}
	latitude, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, guidance
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, guidance
	}
	return &Geolocation{Latitude: latitude, Longitude: longitude}, nil
}

func parseTimeout(value string) (float64, error) {
	ms, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || ms < 0 {
		return 0, &GuidanceError{
			Message: "Invalid timeout format: use milliseconds, for example --timeout=10000",
		}
	}
	return float64(ms), nil
}
