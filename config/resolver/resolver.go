// Package resolver selects the configuration source able to serve a locator.
package resolver

import (
	"sync"

	"github.com/kkarski/appconfig/config"
	"github.com/kkarski/appconfig/config/location"
)

// kindOrder fixes the preference used when a request accepts several kinds.
var kindOrder = []config.Kind{config.KindFile, config.KindEmbedded, config.KindHTTPS} //nolint:gochecknoglobals // immutable lookup order

// Resolver holds at most one source per kind. It is safe for concurrent use.
type Resolver struct {
	mu      sync.RWMutex
	sources map[config.Kind]config.Source
}

// New creates a resolver. A later source replaces an earlier one of the same kind.
func New(sources ...config.Source) *Resolver {
	resolver := &Resolver{sources: make(map[config.Kind]config.Source, len(sources))}

	for _, source := range sources {
		resolver.Register(source)
	}

	return resolver
}

// Register adds source, replacing any source of the same kind. Nil sources are ignored.
func (r *Resolver) Register(source config.Source) {
	if source == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sources[source.Kind()] = source
}

// Resolve returns the registered source for the first acceptable kind, in the order
// file, embedded, https. The boolean is false when none of the kinds is registered.
func (r *Resolver) Resolve(kinds ...config.Kind) (config.Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, kind := range kindOrder {
		if !contains(kinds, kind) {
			continue
		}

		if source, ok := r.sources[kind]; ok {
			return source, true
		}
	}

	return nil, false
}

// ForLocation returns the source matching loc's scheme.
func (r *Resolver) ForLocation(loc location.Path) (config.Source, bool) {
	kind := config.KindOf(loc)
	if kind == config.KindUnknown {
		return nil, false
	}

	return r.Resolve(kind)
}

// Kinds lists the registered kinds in preference order.
func (r *Resolver) Kinds() []config.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]config.Kind, 0, len(r.sources))

	for _, kind := range kindOrder {
		if _, ok := r.sources[kind]; ok {
			kinds = append(kinds, kind)
		}
	}

	return kinds
}

func contains(kinds []config.Kind, kind config.Kind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}

	return false
}
