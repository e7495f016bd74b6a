package outcome

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotRegistered is returned by Registry.Lookup when no dispatcher covers
// the requested (method, path).
var ErrNotRegistered = errors.New("no dispatcher registered")

// Registry maps (method, path) to each operation's dispatcher so callers can
// resolve one without naming it per call. Populate it once at initialization;
// lookups are O(1) and safe for concurrent use after registration is done. Do
// not register after lookups begin.
type Registry struct {
	dispatchers map[registryKey]Dispatcher
}

type registryKey struct {
	method string
	path   string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{dispatchers: make(map[registryKey]Dispatcher)}
}

// Register adds operations under their own (method, path). Registering the
// same key twice replaces the earlier dispatcher, so repeating an
// initialization call is safe.
func (r *Registry) Register(ops ...*Operation) {
	for _, op := range ops {
		r.Add(op.method, op.path, op)
	}
}

// Add registers an arbitrary dispatcher (e.g. Structural) under a key.
func (r *Registry) Add(method, path string, d Dispatcher) {
	r.dispatchers[registryKey{method: strings.ToUpper(method), path: path}] = d
}

// Lookup resolves the dispatcher for a (method, path). A miss is a
// configuration error, reported loudly rather than falling back to a guess.
func (r *Registry) Lookup(method, path string) (Dispatcher, error) {
	d, ok := r.dispatchers[registryKey{method: strings.ToUpper(method), path: path}]
	if !ok {
		return nil, fmt.Errorf("%w for %s %s", ErrNotRegistered, strings.ToUpper(method), path)
	}
	return d, nil
}

// Len reports how many dispatchers are registered.
func (r *Registry) Len() int {
	return len(r.dispatchers)
}
