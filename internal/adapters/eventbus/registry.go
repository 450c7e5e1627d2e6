package eventbus

import (
	"sync"

	"github.com/google/uuid"
)

type entry[V any] struct {
	id    uuid.UUID
	value V
}

// Registry keeps, per key, an ordered list of subscribed values.
// It is safe for concurrent use. Lookups return copies, so a dispatch
// iterating over a snapshot is never affected by later Add/Remove calls.
type Registry[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K][]entry[V]
	count   int
}

// NewRegistry creates an empty registry.
func NewRegistry[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		entries: make(map[K][]entry[V]),
	}
}

// Add appends v to the list for key and returns its handle id.
// Adding the same value twice is allowed and yields two entries.
func (r *Registry[K, V]) Add(key K, v V) uuid.UUID {
	id := uuid.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[key] = append(r.entries[key], entry[V]{id: id, value: v})
	r.count++
	return id
}

// Remove deletes the entry with the given id. It returns false if the
// entry was not present.
func (r *Registry[K, V]) Remove(key K, id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.removeLocked(key, func(e entry[V]) bool { return e.id == id })
}

// RemoveFunc deletes the first entry for key whose value satisfies match.
func (r *Registry[K, V]) RemoveFunc(key K, match func(V) bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.removeLocked(key, func(e entry[V]) bool { return match(e.value) })
}

func (r *Registry[K, V]) removeLocked(key K, match func(entry[V]) bool) bool {
	list := r.entries[key]
	for i, e := range list {
		if !match(e) {
			continue
		}
		next := append(list[:i], list[i+1:]...)
		if len(next) == 0 {
			delete(r.entries, key)
		} else {
			r.entries[key] = next
		}
		r.count--
		return true
	}
	return false
}

// Lookup returns a snapshot of the values registered for key, in
// registration order. It returns nil when there are none.
func (r *Registry[K, V]) Lookup(key K) []V {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.entries[key]
	if len(list) == 0 {
		return nil
	}

	result := make([]V, len(list))
	for i, e := range list {
		result[i] = e.value
	}
	return result
}

// Contains reports whether the entry with id is still registered for key.
func (r *Registry[K, V]) Contains(key K, id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries[key] {
		if e.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of entries registered for key.
func (r *Registry[K, V]) Len(key K) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries[key])
}

// Count returns the number of entries across all keys.
func (r *Registry[K, V]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.count
}

// Keys returns every key that currently has at least one entry.
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.entries) == 0 {
		return nil
	}

	keys := make([]K, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	return keys
}
