package launcher

// SessionHost is the running automation engine instance. It owns the browser
// process and every session created inside it. The lifecycle manager is its
// only caller; tests substitute fakes.
type SessionHost interface {
	// NewSession creates an isolated browsing session inside the host.
	NewSession(cfg SessionConfig) (SessionContext, error)

	// Sessions returns every live session owned by this host.
	Sessions() []SessionContext

	// Release shuts the host down, invalidating all of its sessions.
	Release() error
}

// SessionContext is one isolated browsing session: its own cookies and
// storage, owning zero or more views.
type SessionContext interface {
	// NewView opens a view (page) inside the session.
	NewView() (View, error)

	// Views returns the live views of this session.
	Views() []View

	// OnView fires for every view opened in the session, including views the
	// session opens on its own. Handlers run before the view can navigate.
	OnView(fn func(View))

	// SetTimeouts applies the default action timeout and the navigation
	// timeout together.
	SetTimeouts(ms float64)

	// StartTracing begins trace capture with screenshots and DOM snapshots.
	StartTracing() error

	// StopTracing flushes the trace to path. Invalid once the host is
	// released.
	StopTracing(path string) error

	// SaveStorage writes the session's storage state snapshot to path.
	// Invalid once the host is released.
	SaveStorage(path string) error
}

// View is a single navigable page within a session.
type View interface {
	// OnClose fires once when the view closes.
	OnClose(fn func())

	// OnDialog observes dialogs raised by the page. Registering any handler
	// keeps dialogs open instead of auto-dismissed by the engine.
	OnDialog(fn func())

	// Navigate drives the view to the given address.
	Navigate(address string) error

	// WaitForSelector blocks until an element matching selector appears.
	WaitForSelector(selector string) error

	// WaitFor blocks for the given number of milliseconds.
	WaitFor(ms float64)

	// Screenshot captures the view to an image file.
	Screenshot(path string, fullPage bool) error

	// PDF renders the view to a PDF file. Chromium only.
	PDF(path string) error

	// Address returns the view's current address.
	Address() string

	// Close closes the view.
	Close() error
}
