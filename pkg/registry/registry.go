package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/chartify/pkg/errors"
)

// Registry is a generic, thread-safe registry for storing and retrieving items by name
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// New creates a new Registry instance
func New[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register adds an item, refusing to replace an existing one
func (r *Registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "item '%s' is already registered", name)
	}

	r.items[name] = item
	return nil
}

// Put inserts or overwrites an item
func (r *Registry[T]) Put(name string, item T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[name] = item
}

// Get retrieves an item, failing with ErrNotFound when absent
func (r *Registry[T]) Get(name string) (T, error) {
	item, ok := r.Lookup(name)
	if !ok {
		return item, errors.Newf(errors.ErrNotFound, "item '%s' not found in registry", name)
	}
	return item, nil
}

// Lookup retrieves an item without side effects
func (r *Registry[T]) Lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[name]
	return item, ok
}

// Delete removes an item and reports whether it was present
func (r *Registry[T]) Delete(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[name]
	delete(r.items, name)
	return ok
}

// List returns all registered names in sorted order
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Snapshot returns a copy of the registry contents
func (r *Registry[T]) Snapshot() map[string]T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]T, len(r.items))
	for name, item := range r.items {
		out[name] = item
	}
	return out
}

// Has checks if an item is registered
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[name]
	return exists
}

// Count returns the number of registered items
func (r *Registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// MustRegister registers an item and panics if registration fails.
// Used for built-in entries where a failure is a programming error.
func MustRegister[T any](reg *Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}
