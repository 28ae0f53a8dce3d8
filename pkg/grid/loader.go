package grid

import (
	"errors"
	"fmt"
	"path/filepath"
	"plugin"
	"strings"
)

// Load resolves identifier to a session factory. A compiled Go plugin path
// is tried first, then the process registry. A candidate found by either
// resolver must pass Validate; a candidate without the launching capability
// fails immediately instead of falling through to the next resolver.
func Load(identifier string) (*Handle, error) {
	var errs []error

	candidate, err := resolvePlugin(identifier)
	if err == nil {
		return Validate(identifier, candidate)
	}
	errs = append(errs, err)

	candidate, err = resolveRegistered(identifier)
	if err == nil {
		return Validate(identifier, candidate)
	}
	errs = append(errs, err)

	return nil, fmt.Errorf("no session factory for %q: %w", identifier, errors.Join(errs...))
}

// resolvePlugin opens identifier as a Go plugin and returns its exported
// factory symbol. Factory takes precedence over Default.
func resolvePlugin(identifier string) (any, error) {
	if !strings.HasSuffix(identifier, ".so") {
		return nil, fmt.Errorf("not a plugin path: %s", identifier)
	}
	path, err := filepath.Abs(identifier)
	if err != nil {
		return nil, err
	}
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plugin %s: %w", path, err)
	}
	for _, symbol := range []string{"Factory", "Default"} {
		if sym, err := p.Lookup(symbol); err == nil {
			return sym, nil
		}
	}
	return nil, fmt.Errorf("plugin %s exports neither Factory nor Default", path)
}

func resolveRegistered(identifier string) (any, error) {
	launcher, ok := lookupRegistered(identifier)
	if !ok {
		known := Registered()
		if len(known) == 0 {
			return nil, fmt.Errorf("no factory registered as %q", identifier)
		}
		return nil, fmt.Errorf("no factory registered as %q, registered factories are: %s",
			identifier, strings.Join(known, ", "))
	}
	return launcher, nil
}
