// Package loader holds the static, in-memory registry of available game
// modules (§4.7). Modules register themselves from an init function in
// their own package; the registry's order is the registration order, which
// is what a client's module index (as used in /create/:moduleIndex) counts
// against.
package loader

import (
	"fmt"
	"sync"

	"github.com/Seednode/cardhub/internal/module"
)

// Entry names one registered module and how to construct a fresh instance
// of it.
type Entry struct {
	Name string
	New  module.Factory
}

var (
	mu       sync.Mutex
	registry []Entry
)

// Register adds a module to the registry. Called from the init function of
// each module's package; panics on a duplicate name, since that can only
// be a build-time mistake.
func Register(name string, factory module.Factory) {
	mu.Lock()
	defer mu.Unlock()

	for _, e := range registry {
		if e.Name == name {
			panic(fmt.Sprintf("loader: module %q registered twice", name))
		}
	}
	registry = append(registry, Entry{Name: name, New: factory})
}

// List returns the registered modules in registration order.
func List() []Entry {
	mu.Lock()
	defer mu.Unlock()

	out := make([]Entry, len(registry))
	copy(out, registry)
	return out
}

// At returns the module registered at index, as addressed by
// /create/:moduleIndex.
func At(index int) (Entry, bool) {
	mu.Lock()
	defer mu.Unlock()

	if index < 0 || index >= len(registry) {
		return Entry{}, false
	}
	return registry[index], true
}
