package main

import (
	"flag"
	"strconv"

	appconfig "github.com/rr13k/playwright/pkg/config"
	"github.com/rr13k/playwright/pkg/launcher"
)

// sessionFlags registers the option flags shared by open, screenshot and pdf
// and resolves them against the config file. Precedence: explicit flags win
// over config file values, which win over built-in defaults.
type sessionFlags struct {
	fs         *flag.FlagSet
	opts       launcher.Options
	configPath string

	// capture commands run headless unless the operator says otherwise
	headlessDefault bool
}

func newSessionFlags(fs *flag.FlagSet, headlessDefault bool) *sessionFlags {
	sf := &sessionFlags{fs: fs, headlessDefault: headlessDefault}

	fs.StringVar(&sf.opts.Browser, "b", "", "browser to use: chromium, firefox or webkit (aliases: cr, ff, wk)")
	fs.StringVar(&sf.opts.Browser, "browser", "", "browser to use: chromium, firefox or webkit (aliases: cr, ff, wk)")
	fs.StringVar(&sf.opts.Channel, "channel", "", "browser distribution channel, for example chrome or msedge")
	fs.StringVar(&sf.opts.ExecutablePath, "executable-path", "", "path to a browser executable to run instead of the managed one")
	fs.BoolVar(&sf.opts.Headless, "headless", headlessDefault, "run the browser without a visible UI")
	fs.StringVar(&sf.opts.Device, "device", "", "device profile to emulate, see 'playwright devices'")
	fs.StringVar(&sf.opts.ColorScheme, "color-scheme", "", "emulated color scheme: light or dark")
	fs.StringVar(&sf.opts.Geolocation, "geolocation", "", "geolocation as \"latitude,longitude\", grants the geolocation permission")
	fs.BoolVar(&sf.opts.IgnoreHTTPSErrors, "ignore-https-errors", false, "ignore HTTPS certificate errors")
	fs.StringVar(&sf.opts.Lang, "lang", "", "language locale, for example en-GB")
	fs.StringVar(&sf.opts.ProxyServer, "proxy-server", "", "proxy server, for example http://myproxy:3128")
	fs.StringVar(&sf.opts.ProxyBypass, "proxy-bypass", "", "comma-separated domains that bypass the proxy")
	fs.StringVar(&sf.opts.LoadStorage, "load-storage", "", "load context storage state from this file")
	fs.StringVar(&sf.opts.SaveStorage, "save-storage", "", "save context storage state to this file at close")
	fs.StringVar(&sf.opts.SaveTrace, "save-trace", "", "record a trace and save it to this file at close")
	fs.StringVar(&sf.opts.Timezone, "timezone", "", "timezone identifier, for example Europe/Rome")
	fs.StringVar(&sf.opts.Timeout, "timeout", "", "default action and navigation timeout in milliseconds")
	fs.StringVar(&sf.opts.UserAgent, "user-agent", "", "user agent string")
	fs.StringVar(&sf.opts.ViewportSize, "viewport-size", "", "viewport size as \"width,height\" in pixels")
	fs.StringVar(&sf.configPath, "config", "", "config file path (default ~/.playwright-cli/config.yaml)")

	return sf
}

// options initializes the config file and returns the resolved launcher
// options. Must be called after fs.Parse.
func (sf *sessionFlags) options() (launcher.Options, error) {
	if err := appconfig.Initialize(sf.configPath); err != nil {
		return launcher.Options{}, err
	}

	explicit := make(map[string]bool)
	sf.fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	cfg := appconfig.GetLauncher()
	if cfg == nil {
		return sf.opts, nil
	}

	if !explicit["b"] && !explicit["browser"] {
		sf.opts.Browser = cfg.GetBrowser()
	}
	if !explicit["headless"] && !sf.headlessDefault {
		sf.opts.Headless = cfg.GetHeadless()
	}
	if !explicit["device"] && cfg.GetDevice() != "" {
		sf.opts.Device = cfg.GetDevice()
	}
	if !explicit["timeout"] {
		sf.opts.Timeout = strconv.Itoa(cfg.GetTimeoutMS())
	}

	return sf.opts, nil
}

// captureFlags registers the flags specific to the one-shot capture commands.
type captureFlags struct {
	waitForSelector string
	waitForTimeout  float64
	fullPage        bool
}

func newCaptureFlags(fs *flag.FlagSet, screenshot bool) *captureFlags {
	cf := &captureFlags{}
	fs.StringVar(&cf.waitForSelector, "wait-for-selector", "", "wait for an element matching this selector before capturing")
	fs.Float64Var(&cf.waitForTimeout, "wait-for-timeout", 0, "wait this many milliseconds before capturing")
	if screenshot {
		fs.BoolVar(&cf.fullPage, "full-page", false, "capture the whole scrollable page, not just the viewport")
	}
	return cf
}

func (cf *captureFlags) options() launcher.CaptureOptions {
	return launcher.CaptureOptions{
		WaitForSelector: cf.waitForSelector,
		WaitForTimeout:  cf.waitForTimeout,
		FullPage:        cf.fullPage,
	}
}
