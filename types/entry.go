package types

import "time"

/*
Meta is the bookkeeping the cache keeps next to every payload.
It is deliberately non-generic so expiration strategies and eviction
policies can reason about entries without knowing the payload type.
*/
type Meta struct {
	// CreatedAt is set when the entry is written and never changes afterwards.
	// An overwrite of the same key is a new write and resets it.
	CreatedAt time.Time

	// LastAccessedAt starts equal to CreatedAt and moves on every successful read.
	LastAccessedAt time.Time

	// TTL is the lifetime of this entry.
	TTL time.Duration

	// AccessCount is the number of successful (non-expired) reads.
	AccessCount uint64

	// Seq is the insertion sequence number. It breaks CreatedAt ties so
	// "inserted first" is well defined even when the clock did not move.
	Seq uint64
}

// Touch records a successful read at now.
func (m *Meta) Touch(now time.Time) {
	m.AccessCount++
	m.LastAccessedAt = now
}

// CacheEntry is one keyed payload held by the cache.
type CacheEntry[T any] struct {
	Key  string
	Data T
	Meta
}
