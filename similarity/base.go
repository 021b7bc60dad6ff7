// Package similarity computes pairwise similarity between two ontology
// terms under a named kernel. Kernels are pluggable: each one registers
// itself under a string key at init time, mirroring pyhpo's
// similarity-score registry, so callers select a kernel by name (as
// they would from a CLI flag or config file) without a type switch.
package similarity

import (
	"sync"

	"github.com/hpokit/gohpo/ontology"
	"github.com/hpokit/gohpo/ontology/hpoerr"
)

// Kernel computes a similarity score between two terms of the ontology
// they both belong to, for the given annotation kind ("gene", "omim",
// "orpha", "decipher"). Implementations must be pure functions of their
// arguments: no shared mutable state, so a Kernel is safe to call from
// many goroutines at once.
type Kernel func(o *ontology.Ontology, a, b *ontology.Term, kind string) (float64, error)

var (
	mu       sync.RWMutex
	registry = make(map[string]Kernel)
)

// Register installs kernel under name, replacing any prior registration.
// Called from init() by every kernel in defaults.go; exported so callers
// can add their own.
func Register(name string, kernel Kernel) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = kernel
}

// Get looks up a registered kernel by name.
func Get(name string) (Kernel, error) {
	mu.RLock()
	defer mu.RUnlock()
	k, ok := registry[name]
	if !ok {
		return nil, hpoerr.NotFound("similarity kernel", name)
	}
	return k, nil
}

// Names returns every registered kernel name, for CLI help text and
// tests that want to exercise all of them.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// Score resolves kernel by name and applies it to a and b.
func Score(o *ontology.Ontology, name string, a, b *ontology.Term, kind string) (float64, error) {
	k, err := Get(name)
	if err != nil {
		return 0, err
	}
	return k(o, a, b, kind)
}
