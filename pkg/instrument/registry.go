package instrument

import "sync"

// DescribeFunc derives a call Descriptor from the raw call arguments, e.g.
// pulling a collection name out of a store reference or building a document
// path from parent and id fields.
type DescribeFunc func(args ...any) Descriptor

// Registry is an explicit table mapping operation keys to descriptor
// derivers. It replaces dynamic interception of an entire client's method
// set: callers look a key up first and only wrap the call when the key is
// registered.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]DescribeFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]DescribeFunc)}
}

// Register adds a descriptor deriver under the given key, replacing any
// previous registration. Panics on an empty key or nil deriver to enforce
// fail-fast wiring at startup.
func (r *Registry) Register(key string, fn DescribeFunc) {
	if key == "" {
		panic("instrument: registry key cannot be empty")
	}
	if fn == nil {
		panic("instrument: descriptor deriver cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = fn
}

// Describe derives the Descriptor for the given operation key. The second
// return value reports whether the key is registered; an unregistered key
// means the call must not be wrapped through the registry path.
func (r *Registry) Describe(key string, args ...any) (Descriptor, bool) {
	r.mu.RLock()
	fn, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return Descriptor{}, false
	}
	return fn(args...), true
}

// Has reports whether the key is registered.
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}
