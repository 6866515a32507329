package engine

import (
	"maps"
	"slices"
	"time"
)

// State describes the engine's cache cell.
type State int

// Cache states.
const (
	// StateEmpty means no resolution has succeeded yet.
	StateEmpty State = iota
	// StateFresh means the snapshot is younger than the TTL.
	StateFresh
	// StateStale means the snapshot has outlived the TTL; the next read reloads it.
	StateStale
	// StateReloading means a resolution is in progress.
	StateReloading
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateFresh:
		return "fresh"
	case StateStale:
		return "stale"
	case StateReloading:
		return "reloading"
	default:
		return "unknown"
	}
}

// Snapshot is one immutable resolution result.
type Snapshot struct {
	values     map[string]string
	host       string
	base       string
	resolvedAt time.Time
	ttl        time.Duration
}

// Lookup returns the raw value of key.
func (s *Snapshot) Lookup(key string) (string, bool) {
	value, ok := s.values[key]

	return value, ok
}

// Values returns a copy of every resolved key.
func (s *Snapshot) Values() map[string]string {
	return maps.Clone(s.values)
}

// Keys returns the resolved keys sorted.
func (s *Snapshot) Keys() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Len returns the number of resolved keys.
func (s *Snapshot) Len() int {
	return len(s.values)
}

// Host is the host identity the snapshot was resolved for.
func (s *Snapshot) Host() string {
	return s.host
}

// Base is the locator the merge walk started from.
func (s *Snapshot) Base() string {
	return s.base
}

// ResolvedAt is when the merge completed.
func (s *Snapshot) ResolvedAt() time.Time {
	return s.resolvedAt
}

// TTL is the time-to-live in effect when the snapshot was stored.
func (s *Snapshot) TTL() time.Duration {
	return s.ttl
}
