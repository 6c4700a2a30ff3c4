// Package registry owns the named cache instances of one process.
//
// A Registry replaces module-level singleton caches: main builds one,
// registers every cache it needs ("products", "users", ...), passes it to
// the components that use them, and calls StopAll on shutdown. Tests build
// their own Registry and never see another test's state.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	cache "github.com/krisalay/smart-cache"
	"github.com/krisalay/smart-cache/api"
	"github.com/krisalay/smart-cache/types"
)

var (
	// ErrEmptyName indicates a registration without a name.
	ErrEmptyName = errors.New("cache name is empty")

	// ErrDuplicateName indicates a name that is already registered.
	ErrDuplicateName = errors.New("cache name already registered")
)

// Registry maps names to cache handles. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	caches map[string]api.Handle
	logger zerolog.Logger
}

// New returns an empty registry.
func New(logger zerolog.Logger) *Registry {
	return &Registry{
		caches: make(map[string]api.Handle),
		logger: logger,
	}
}

// Register adds h under its own name.
func (r *Registry) Register(h api.Handle) error {
	name := h.Name()
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.caches[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	r.caches[name] = h
	r.logger.Debug().Str("cache", name).Msg("registered cache")
	return nil
}

// Get returns the handle registered under name.
func (r *Registry) Get(name string) (api.Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.caches[name]
	return h, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.caches))
	for name := range r.caches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stats returns a snapshot of every registered cache, sorted by name.
func (r *Registry) Stats() []types.Stats {
	names := r.Names()
	out := make([]types.Stats, 0, len(names))
	for _, name := range names {
		if h, ok := r.Get(name); ok {
			out = append(out, h.Stats())
		}
	}
	return out
}

// StopAll stops background cleanup of every registered cache.
// Handles stay registered and usable; StopAll is safe to call twice.
func (r *Registry) StopAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, h := range r.caches {
		h.Stop()
		r.logger.Debug().Str("cache", name).Msg("stopped cache")
	}
}

// Lookup returns the typed cache registered under name. It reports false if
// the name is unknown or the cache holds a different payload type.
func Lookup[T any](r *Registry, name string) (*cache.Cache[T], bool) {
	h, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	c, ok := h.(*cache.Cache[T])
	return c, ok
}

// Create builds a cache with cfg, names it, and registers it. On a
// registration error the new cache is stopped before returning.
func Create[T any](r *Registry, name string, cfg cache.Config, opts ...cache.Option) (*cache.Cache[T], error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	all := make([]cache.Option, 0, len(opts)+2)
	all = append(all, cache.WithLogger(r.logger))
	all = append(all, opts...)
	all = append(all, cache.WithName(name))

	c, err := cache.New[T](cfg, all...)
	if err != nil {
		return nil, fmt.Errorf("create cache %s: %w", name, err)
	}
	if err := r.Register(c); err != nil {
		c.Stop()
		return nil, err
	}
	return c, nil
}
