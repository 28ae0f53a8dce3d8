package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OpenInitialView opens the first view of the session. When an address is
// supplied the view is navigated to its resolved form; an empty address
// yields a blank view.
func (s *Session) OpenInitialView(address string) (View, error) {
	view, err := s.context.NewView()
	if err != nil {
		return nil, fmt.Errorf("failed to open view: %w", err)
	}
	if address == "" {
		return view, nil
	}
	resolved := ResolveAddress(address)
	s.log.Infof("navigating to %s", resolved)
	if err := view.Navigate(resolved); err != nil {
		return nil, &NavigationError{Address: resolved, Err: err}
	}
	return view, nil
}

// ResolveAddress classifies an address argument. An existing local file wins
// over anything scheme-like, so a relative path that happens to look like a
// scheme is still opened from disk. Bare hosts get an http prefix.
func ResolveAddress(address string) string {
	if _, err := os.Stat(address); err == nil {
		if abs, err := filepath.Abs(address); err == nil {
			return "file://" + abs
		}
	}
	// "http" intentionally covers https as well.
	for _, prefix := range []string{"http", "file://", "about:", "data:"} {
		if strings.HasPrefix(address, prefix) {
			return address
		}
	}
	return "http://" + address
}
