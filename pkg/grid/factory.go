package grid

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// SessionLauncher is the capability a session factory must provide: turning
// a launch request into a running browser target.
type SessionLauncher interface {
	Launch(ctx context.Context, req LaunchRequest) (*Target, error)
}

// Namer is optionally implemented by factories that want to report a
// display name different from the identifier they were resolved under.
type Namer interface {
	Name() string
}

// LaunchRequest describes the browser a client wants.
type LaunchRequest struct {
	Browser  string `json:"browser,omitempty"`
	Headless *bool  `json:"headless,omitempty"`
}

// Target is a running browser reachable over a WebSocket DevTools endpoint.
type Target struct {
	ID        string    `json:"id"`
	Browser   string    `json:"browser"`
	Endpoint  string    `json:"endpoint"`
	CreatedAt time.Time `json:"createdAt"`

	// Close shuts the browser down and releases its resources.
	Close func() error `json:"-"`
}

// Handle is a validated factory bound under a display name.
type Handle struct {
	name     string
	launcher SessionLauncher
}

// Name returns the factory's display name.
func (h *Handle) Name() string { return h.name }

// Launch delegates to the underlying factory.
func (h *Handle) Launch(ctx context.Context, req LaunchRequest) (*Target, error) {
	return h.launcher.Launch(ctx, req)
}

// CapabilityError reports a resolved candidate that cannot launch sessions.
type CapabilityError struct {
	Identifier string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("factory %q does not implement session launching", e.Identifier)
}

// Validate checks that candidate can launch sessions and binds it under
// identifier. Plugin symbols arrive as pointers to the exported variable,
// so up to two levels of indirection are unwrapped before the capability
// check.
func Validate(identifier string, candidate any) (*Handle, error) {
	for i := 0; i < 2; i++ {
		if _, ok := candidate.(SessionLauncher); ok {
			break
		}
		value := reflect.ValueOf(candidate)
		if value.Kind() != reflect.Pointer || value.IsNil() {
			break
		}
		candidate = value.Elem().Interface()
	}
	launcher, ok := candidate.(SessionLauncher)
	if !ok {
		return nil, &CapabilityError{Identifier: identifier}
	}
	name := identifier
	if namer, ok := candidate.(Namer); ok && namer.Name() != "" {
		name = namer.Name()
	}
	return &Handle{name: name, launcher: launcher}, nil
}
