package hosts

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/kkarski/appconfig/config/location"
	"github.com/kkarski/appconfig/config/resolver"
)

// Wildcard is the registry key applied when a host has no entry of its own.
const Wildcard = "*"

var (
	// ErrNoSource is returned when no registered source serves the registry locator.
	ErrNoSource = errors.New("no source for hosts registry")
	// ErrNoMapping is returned when neither the host nor the wildcard has an entry.
	ErrNoMapping = errors.New("no hosts entry")
)

// Registry is an immutable snapshot of one hosts file.
type Registry struct {
	locator    location.Path
	entries    map[string]string
	shortNames bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithShortNames lets a fully qualified host fall back to the entry of its short name
// (the text before the first '.') before the wildcard applies.
func WithShortNames() Option {
	return func(r *Registry) {
		r.shortNames = true
	}
}

// New builds a registry from entries read at locator. Keys are matched case-insensitively,
// like DNS names; entries with blank keys or values are dropped.
func New(locator location.Path, entries map[string]string, opts ...Option) *Registry {
	registry := &Registry{
		locator: locator,
		entries: make(map[string]string, len(entries)),
	}

	for _, apply := range opts {
		apply(registry)
	}

	for host, value := range entries {
		host = strings.ToLower(strings.TrimSpace(host))
		value = strings.TrimSpace(value)

		if host == "" || value == "" {
			continue
		}

		registry.entries[host] = value
	}

	return registry
}

// Load fetches and parses the registry at loc. A missing registry is an error: without
// it no host can be mapped.
func Load(ctx context.Context, r *resolver.Resolver, loc location.Path, opts ...Option) (*Registry, error) {
	source, ok := r.ForLocation(loc)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSource, loc.String())
	}

	entries, err := source.Fetch(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("load hosts registry: %w", err)
	}

	return New(loc, entries, opts...), nil
}

// Locator returns where the registry was read from.
func (r *Registry) Locator() location.Path {
	return r.locator
}

// Hosts returns the registered keys, wildcard included, sorted.
func (r *Registry) Hosts() []string {
	return slices.Sorted(maps.Keys(r.entries))
}

// Match returns the registry key and raw value selected for host: its own entry, then
// its short name's entry when enabled, then the wildcard.
func (r *Registry) Match(host string) (string, string, bool) {
	host = strings.ToLower(strings.TrimSpace(host))

	candidates := []string{host}
	if short, _, found := strings.Cut(host, "."); r.shortNames && found && short != "" {
		candidates = append(candidates, short)
	}

	candidates = append(candidates, Wildcard)

	for _, key := range candidates {
		if key == "" {
			continue
		}

		if value, ok := r.entries[key]; ok {
			return key, value, true
		}
	}

	return "", "", false
}

// Lookup returns the base locator configured for host.
func (r *Registry) Lookup(host string) (location.Path, error) {
	_, value, ok := r.Match(host)
	if !ok {
		return location.Path{}, fmt.Errorf("%w for host %q in %s", ErrNoMapping, host, r.locator.String())
	}

	base, err := r.locator.ResolveReference(value)
	if err != nil {
		return location.Path{}, fmt.Errorf("hosts entry for %q: %w", host, err)
	}

	return base, nil
}
