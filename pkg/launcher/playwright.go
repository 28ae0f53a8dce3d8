package launcher

import (
	"github.com/playwright-community/playwright-go"
)

// Adapters binding the session-host interfaces to playwright-go. Everything
// engine-specific (option shapes, enum pointers, event signatures) stays in
// this file.

func launchOptions(cfg LaunchConfig) playwright.BrowserTypeLaunchOptions {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	}
	if cfg.ExecutablePath != "" {
		opts.ExecutablePath = playwright.String(cfg.ExecutablePath)
	}
	if cfg.Channel != "" {
		opts.Channel = playwright.String(cfg.Channel)
	}
	if cfg.Proxy != nil {
		proxy := &playwright.Proxy{Server: cfg.Proxy.Server}
		if cfg.Proxy.Bypass != "" {
			proxy.Bypass = playwright.String(cfg.Proxy.Bypass)
		}
		opts.Proxy = proxy
	}
	return opts
}

func contextOptions(cfg SessionConfig) playwright.BrowserNewContextOptions {
	opts := playwright.BrowserNewContextOptions{}
	if cfg.Viewport != nil {
		opts.Viewport = &playwright.Size{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height}
	}
	if cfg.DeviceScaleFactor != nil {
		opts.DeviceScaleFactor = playwright.Float(*cfg.DeviceScaleFactor)
	}
	if cfg.Geolocation != nil {
		opts.Geolocation = &playwright.Geolocation{
			Latitude:  cfg.Geolocation.Latitude,
			Longitude: cfg.Geolocation.Longitude,
		}
	}
	if len(cfg.Permissions) > 0 {
		opts.Permissions = cfg.Permissions
	}
	if cfg.UserAgent != nil {
		opts.UserAgent = cfg.UserAgent
	}
	if cfg.Locale != nil {
		opts.Locale = cfg.Locale
	}
	switch cfg.ColorScheme {
	case "light":
		opts.ColorScheme = playwright.ColorSchemeLight
	case "dark":
		opts.ColorScheme = playwright.ColorSchemeDark
	}
	if cfg.TimezoneID != nil {
		opts.TimezoneId = cfg.TimezoneID
	}
	if cfg.StorageStatePath != nil {
		opts.StorageStatePath = cfg.StorageStatePath
	}
	if cfg.IgnoreHTTPSErrors {
		opts.IgnoreHttpsErrors = playwright.Bool(true)
	}
	if cfg.IsMobile != nil {
		opts.IsMobile = cfg.IsMobile
	}
	if cfg.HasTouch != nil {
		opts.HasTouch = cfg.HasTouch
	}
	return opts
}

// deviceRegistry converts the engine's device descriptors into the
// registry the normalizer consumes.
func deviceRegistry(pw *playwright.Playwright) DeviceRegistry {
	registry := make(DeviceRegistry, len(pw.Devices))
	for name, descriptor := range pw.Devices {
		profile := DeviceProfile{
			UserAgent:         descriptor.UserAgent,
			DeviceScaleFactor: descriptor.DeviceScaleFactor,
			IsMobile:          descriptor.IsMobile,
			HasTouch:          descriptor.HasTouch,
			DefaultBrowser:    descriptor.DefaultBrowserType,
		}
		if descriptor.Viewport != nil {
			profile.Viewport = &Size{
				Width:  descriptor.Viewport.Width,
				Height: descriptor.Viewport.Height,
			}
		}
		registry[name] = profile
	}
	return registry
}

type playwrightHost struct {
	browser playwright.Browser
}

func (h *playwrightHost) NewSession(cfg SessionConfig) (SessionContext, error) {
	ctx, err := h.browser.NewContext(contextOptions(cfg))
	if err != nil {
		return nil, err
	}
	return &playwrightSession{ctx: ctx}, nil
}

func (h *playwrightHost) Sessions() []SessionContext {
	contexts := h.browser.Contexts()
	sessions := make([]SessionContext, 0, len(contexts))
	for _, ctx := range contexts {
		sessions = append(sessions, &playwrightSession{ctx: ctx})
	}
	return sessions
}

func (h *playwrightHost) Release() error {
	return h.browser.Close()
}

type playwrightSession struct {
	ctx playwright.BrowserContext
}

func (s *playwrightSession) NewView() (View, error) {
	page, err := s.ctx.NewPage()
	if err != nil {
		return nil, err
	}
	return &playwrightView{page: page}, nil
}

func (s *playwrightSession) Views() []View {
	pages := s.ctx.Pages()
	views := make([]View, 0, len(pages))
	for _, page := range pages {
		views = append(views, &playwrightView{page: page})
	}
	return views
}

func (s *playwrightSession) OnView(fn func(View)) {
	s.ctx.OnPage(func(page playwright.Page) {
		fn(&playwrightView{page: page})
	})
}

func (s *playwrightSession) SetTimeouts(ms float64) {
	s.ctx.SetDefaultTimeout(ms)
	s.ctx.SetDefaultNavigationTimeout(ms)
}

func (s *playwrightSession) StartTracing() error {
	return s.ctx.Tracing().Start(playwright.TracingStartOptions{
		Screenshots: playwright.Bool(true),
		Snapshots:   playwright.Bool(true),
	})
}

func (s *playwrightSession) StopTracing(path string) error {
	return s.ctx.Tracing().Stop(path)
}

func (s *playwrightSession) SaveStorage(path string) error {
	_, err := s.ctx.StorageState(path)
	return err
}

type playwrightView struct {
	page playwright.Page
}

func (v *playwrightView) OnClose(fn func()) {
	v.page.OnClose(func(playwright.Page) {
		fn()
	})
}

func (v *playwrightView) OnDialog(fn func()) {
	v.page.OnDialog(func(playwright.Dialog) {
		fn()
	})
}

func (v *playwrightView) Navigate(address string) error {
	_, err := v.page.Goto(address)
	return err
}

func (v *playwrightView) WaitForSelector(selector string) error {
	_, err := v.page.WaitForSelector(selector)
	return err
}

func (v *playwrightView) WaitFor(ms float64) {
	v.page.WaitForTimeout(ms)
}

func (v *playwrightView) Screenshot(path string, fullPage bool) error {
	_, err := v.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(fullPage),
	})
	return err
}

func (v *playwrightView) PDF(path string) error {
	_, err := v.page.PDF(playwright.PagePdfOptions{
		Path: playwright.String(path),
	})
	return err
}

func (v *playwrightView) Address() string {
	return v.page.URL()
}

func (v *playwrightView) Close() error {
	return v.page.Close()
}
