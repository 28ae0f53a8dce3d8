package grid

import (
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]SessionLauncher)
)

// Register makes a factory resolvable under the given name. It follows the
// database/sql driver convention: registering nil or registering the same
// name twice panics, since both indicate a wiring bug at startup.
func Register(name string, launcher SessionLauncher) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if launcher == nil {
		panic("grid: Register launcher is nil")
	}
	if _, dup := registry[name]; dup {
		panic("grid: Register called twice for factory " + name)
	}
	registry[name] = launcher
}

// Registered returns the names of all registered factories, sorted.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupRegistered(name string) (SessionLauncher, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	launcher, ok := registry[name]
	return launcher, ok
}
