package bot

import (
	"slices"
	"sync"
)

// Modules self-register from their package init functions; cmd/minstrel
// pulls them in with blank imports, so the set is fixed by the time
// LoadModules runs.
var (
	registryMu sync.Mutex
	registered []Module
)

// Register records a module for the bot to load. Called from module init().
func Register(m Module) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registered = append(registered, m)
}

// Modules returns the registered modules in registration order. The returned
// slice is a copy.
func Modules() []Module {
	registryMu.Lock()
	defer registryMu.Unlock()
	return slices.Clone(registered)
}
