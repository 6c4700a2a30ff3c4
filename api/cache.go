package api

import (
	"context"
	"time"

	"github.com/krisalay/smart-cache/types"
)

/*
Cache defines the PUBLIC API of one typed cache instance.
This is a contract that guarantees certain behaviors, without exposing internals.
Storage, eviction, expiration, background cleanup and locking are all hidden
behind this interface.
*/
type Cache[T any] interface {
	Handle

	/*
		Get retrieves the value associated with the given key.

		BEHAVIOR:
		-------------------
		1. If the key exists and is live:
		   - Bump its access count and last-access time
		   - Return the value (cache hit)

		2. If the key does NOT exist or is expired:
		   - Delete the expired entry, if any (lazy expiry)
		   - Return false (cache miss). A miss is never an error.
	*/
	Get(key string) (T, bool)

	/*
		Set stores a key-value pair using the default TTL.

		BEHAVIOR:
		---------
		- Rejects an empty key
		- Frees a slot first if the cache is full and the key is new
		- Always overwrites: creation time and access count are reset
	*/
	Set(key string, value T) error

	/*
		SetWithTTL stores a key-value pair with an explicit time-to-live.
		A TTL that is zero or negative is a caller error.
	*/
	SetWithTTL(key string, value T, ttl time.Duration) error

	/*
		GetOrLoad returns the cached value, or asks the loader to produce it
		on a miss and caches the result. Concurrent misses for one key share
		a single loader call.
	*/
	GetOrLoad(ctx context.Context, key string, loader types.Loader[T]) (T, error)
}

/*
Handle is the type-erased part of a cache: everything that does not touch
a payload. Registries and admin surfaces hold caches of different payload
types side by side through this interface.
*/
type Handle interface {

	// Name is the instance name used in logs and registries.
	Name() string

	// Has reports whether key is live without counting as a read.
	Has(key string) bool

	/*
		TTL returns the remaining lifetime of a live key.
		Like Has, it does not count as a read.
	*/
	TTL(key string) (time.Duration, bool)

	/*
		Delete removes a key immediately and reports whether it was present.

		This operation is idempotent:
		- Removing a non-existing key is safe
	*/
	Delete(key string) bool

	// Clear removes every entry.
	Clear()

	// Cleanup runs one expiry pass now and returns how many entries it removed.
	Cleanup() int

	// Len is the physical entry count, including expired entries not yet reclaimed.
	Len() int

	// Stats returns a snapshot of occupancy and hit statistics.
	Stats() types.Stats

	/*
		Stop cancels background cleanup.

		BEHAVIOR:
		---------
		- Safe to call more than once
		- No cleanup pass starts after Stop returns
		- Reads keep expiring entries lazily; the cache stays usable

		WHEN TO CALL:
		-------------
		- Application shutdown
		- Tests cleanup
	*/
	Stop()
}
