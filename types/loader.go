package types

import "context"

// Loader is the contract between the cache and whatever produces values
// (a database query, a remote API, or an expensive computation).
type Loader[T any] interface {

	/*
		Load is called when the cache misses. The key was not found in memory
		(or was expired), so the cache asks the Loader to produce it.
		1. Cache checks memory → key not found
		2. Cache calls Load(key), once per key even under concurrent misses
		3. Cache stores the result with its default TTL
		4. Cache returns the value

		A returned error is handed back to the caller and nothing is cached.
	*/
	Load(ctx context.Context, key string) (T, error)
}

// LoaderFunc adapts an ordinary function to the Loader interface.
type LoaderFunc[T any] func(ctx context.Context, key string) (T, error)

// Load calls f(ctx, key).
func (f LoaderFunc[T]) Load(ctx context.Context, key string) (T, error) {
	return f(ctx, key)
}
