package launcher

import (
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"

	"github.com/rr13k/playwright/pkg/logging"
)

// Launcher owns the automation engine for the lifetime of the process and
// turns normalized options into live sessions.
type Launcher struct {
	pw  *playwright.Playwright
	log *logging.Logger
}

// New installs the engine driver if needed and starts it. Driver output is
// discarded so it never interferes with the operator's terminal; use Install
// for a verbose installation.
func New(log *logging.Logger) (*Launcher, error) {
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(opts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}
	pw, err := playwright.Run(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	log.Debugf("automation engine started")
	return &Launcher{pw: pw, log: log}, nil
}

// Install performs a verbose driver and browser installation. An empty
// browser list installs the defaults.
func Install(browsers []string) error {
	opts := &playwright.RunOptions{Verbose: true}
	if len(browsers) > 0 {
		opts.Browsers = browsers
	}
	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}
	return nil
}

// Close stops the automation engine.
func (l *Launcher) Close() error {
	return l.pw.Stop()
}

// Devices returns the engine's device registry.
func (l *Launcher) Devices() DeviceRegistry {
	return deviceRegistry(l.pw)
}

// LaunchSession acquires a session host, creates a session inside it and
// registers the exactly-once teardown plumbing. The returned session carries
// stripped LaunchConfig and SessionConfig echoes.
func (l *Launcher) LaunchSession(n *Normalized) (*Session, error) {
	host, err := l.acquireHost(n)
	if err != nil {
		return nil, err
	}
	l.log.Infof("session host %s acquired", n.BrowserName)
	return newSession(host, n, l.log)
}

// acquireHost starts the browser process described by the launch config.
// Failures are fatal: nothing has been committed yet.
func (l *Launcher) acquireHost(n *Normalized) (SessionHost, error) {
	browserType, err := l.browserType(n.BrowserName)
	if err != nil {
		return nil, err
	}
	browser, err := browserType.Launch(launchOptions(n.Launch))
	if err != nil {
		return nil, &AcquisitionError{Browser: n.BrowserName, Err: err}
	}
	return &playwrightHost{browser: browser}, nil
}

func (l *Launcher) browserType(name string) (playwright.BrowserType, error) {
	switch name {
	case "chromium":
		return l.pw.Chromium, nil
	case "firefox":
		return l.pw.Firefox, nil
	case "webkit":
		return l.pw.WebKit, nil
	}
	return nil, &ConfigurationError{
		Message: fmt.Sprintf("unsupported browser %q, must be one of: chromium, firefox, webkit", name),
	}
}
