package store

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/krisalay/smart-cache/types"
)

// maxSizeHint bounds how many slots are reserved before the first insert.
const maxSizeHint = 1024

/*
This file defines how entries are actually held for one cache instance.

Store keeps entries in a go-cache map with expiration turned off and no
janitor: liveness is decided by the engine against the injected clock, and
the owning cache runs its own cleanup loop so Stop can end it. go-cache only
ever sees entries that never expire on their own.

Store does NOT make compound operations atomic: the owning cache serializes
every call under its own mutex, and the background cleanup pass takes the
same mutex, so eviction and cleanup scan and delete in one critical section.
*/
type Store[T any] struct {
	items *gocache.Cache
	seq   uint64
}

// New returns an empty store sized for up to capacity entries.
// The up-front reservation is capped so a large capacity costs nothing until used.
func New[T any](capacity int) *Store[T] {
	hint := min(max(capacity, 0), maxSizeHint)
	return &Store[T]{
		items: gocache.NewFrom(gocache.NoExpiration, 0, make(map[string]gocache.Item, hint)),
	}
}

// Get retrieves an entry by key without any liveness check.
func (s *Store[T]) Get(key string) (*types.CacheEntry[T], bool) {
	v, ok := s.items.Get(key)
	if !ok {
		return nil, false
	}
	ent, ok := v.(*types.CacheEntry[T])
	return ent, ok
}

// Put inserts or replaces the entry for key. The entry gets the next
// insertion sequence number, so a replaced key counts as newly inserted.
func (s *Store[T]) Put(ent *types.CacheEntry[T]) {
	s.seq++
	ent.Seq = s.seq
	s.items.Set(ent.Key, ent, gocache.NoExpiration)
}

// Delete removes key and reports whether it was present.
func (s *Store[T]) Delete(key string) bool {
	if _, ok := s.items.Get(key); !ok {
		return false
	}
	s.items.Delete(key)
	return true
}

// Clear drops every entry. The sequence counter keeps counting.
func (s *Store[T]) Clear() {
	s.items.Flush()
}

// Len returns how many entries are physically stored, expired or not.
func (s *Store[T]) Len() int {
	return s.items.ItemCount()
}

// Range calls fn for every entry until fn returns false. Order is unspecified.
// It walks a snapshot, so fn may delete any entry, including the one it visits.
func (s *Store[T]) Range(fn func(*types.CacheEntry[T]) bool) {
	for _, it := range s.items.Items() {
		ent, ok := it.Object.(*types.CacheEntry[T])
		if !ok {
			continue
		}
		if !fn(ent) {
			return
		}
	}
}
