package types

// This file defines how the cache reports what it is doing.

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the cache lifecycle. The cache calls these
methods while holding its own lock, so implementations must be fast and must
never call back into the cache.
*/
type Metrics interface {

	// Hit is called when Get returns a live value.
	Hit()

	// Miss is called when Get finds nothing, or finds an expired entry.
	Miss()

	// Eviction is called when a live key is removed because the cache is full.
	Eviction()

	// Expire is called for every entry removed because its TTL elapsed,
	// whether it was noticed lazily by a lookup or by a cleanup pass.
	Expire()
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

The cache always holds a non-nil Metrics so callers who do not care
about metrics do not need to provide one, and the cache does not need
nil checks on every event.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Eviction() {}
func (NoopMetrics) Expire()   {}
