package provider

import (
	"sort"
	"sync"

	apperrors "github.com/Rakk301/speech-to-text-app/internal/errors"
)

// Registry maps provider kind names to factories. Instances are never
// cached: each Create pays full construction cost, so replaced providers
// carry no hidden shared state.
type Registry[T Provider] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
	info      map[string]Info
}

// NewRegistry creates a new empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{
		factories: make(map[string]Factory[T]),
		info:      make(map[string]Info),
	}
}

// Register registers a named factory with descriptive metadata.
func (r *Registry[T]) Register(name string, info Info, factory Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	info.Name = name
	r.factories[name] = factory
	r.info[name] = info
}

// Create instantiates a provider using the named factory and options.
// Unknown names fail with an UnsupportedProvider error.
func (r *Registry[T]) Create(name string, opts map[string]any) (T, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, apperrors.UnsupportedProvider(name)
	}
	return factory(opts)
}

// Has reports whether a factory is registered under the given name.
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// List returns metadata for all registered provider kinds, sorted by name.
func (r *Registry[T]) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]Info, 0, len(r.info))
	for _, info := range r.info {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
