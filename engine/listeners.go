package engine

import (
	"log/slog"
	"slices"
	"sync"
)

// ChangeKind classifies a key change between two snapshots.
type ChangeKind int

// Change kinds.
const (
	ChangeAdded ChangeKind = iota + 1
	ChangeUpdated
	ChangeRemoved
)

// String returns the change kind name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeUpdated:
		return "updated"
	case ChangeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Change describes how one key differs after a reload.
type Change struct {
	Key      string
	Kind     ChangeKind
	OldValue string
	NewValue string
}

// ChangeListener is notified after a reload changed a key it is registered for.
// OnChange runs on the reloading goroutine; a panic is recovered and logged.
type ChangeListener interface {
	OnChange(change Change)
}

type listenerRegistry struct {
	mu        sync.RWMutex
	listeners map[string][]ChangeListener
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{listeners: make(map[string][]ChangeListener)}
}

func (r *listenerRegistry) register(key string, listener ChangeListener) {
	if listener == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.Contains(r.listeners[key], listener) {
		return
	}

	r.listeners[key] = append(r.listeners[key], listener)
}

func (r *listenerRegistry) deregister(key string, listener ChangeListener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := slices.DeleteFunc(slices.Clone(r.listeners[key]), func(l ChangeListener) bool {
		return l == listener
	})

	if len(remaining) == 0 {
		delete(r.listeners, key)

		return
	}

	r.listeners[key] = remaining
}

func (r *listenerRegistry) subscribed() map[string][]ChangeListener {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]ChangeListener, len(r.listeners))
	for key, listeners := range r.listeners {
		out[key] = slices.Clone(listeners)
	}

	return out
}

// dispatch notifies listeners of keys whose value differs between previous and next.
func (r *listenerRegistry) dispatch(logger *slog.Logger, previous, next map[string]string) {
	for key, listeners := range r.subscribed() {
		change, changed := diff(key, previous, next)
		if !changed {
			continue
		}

		for _, listener := range listeners {
			notify(logger, listener, change)
		}
	}
}

func diff(key string, previous, next map[string]string) (Change, bool) {
	oldValue, hadOld := previous[key]
	newValue, hasNew := next[key]

	change := Change{Key: key, OldValue: oldValue, NewValue: newValue}

	switch {
	case !hadOld && hasNew:
		change.Kind = ChangeAdded
	case hadOld && !hasNew:
		change.Kind = ChangeRemoved
	case hadOld && hasNew && oldValue != newValue:
		change.Kind = ChangeUpdated
	default:
		return Change{}, false
	}

	return change, true
}

func notify(logger *slog.Logger, listener ChangeListener, change Change) {
	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Error("change listener panicked", "key", change.Key, "panic", recovered)
		}
	}()

	listener.OnChange(change)
}
