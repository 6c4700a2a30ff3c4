package engine

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/krisalay/smart-cache/eviction"
	"github.com/krisalay/smart-cache/expiration"
	"github.com/krisalay/smart-cache/store"
	"github.com/krisalay/smart-cache/types"
)

/*
Engine is the "brain" of the cache system.
It is responsible for the "behavior" of the cache, NOT storage.
This acts as the policy layer.

It decides:
- When an entry is no longer live
- What a successful read does to an entry's bookkeeping
- Which entry goes when the store is full
- Which entries a cleanup pass reclaims
- How those events are recorded and logged

It does NOT:
- Store data
- Handle locking (every call happens under the owning cache's mutex)
- Schedule cleanup
*/
type Engine struct {

	// Expiration controls when an entry is considered "too old".
	Expiration expiration.Strategy

	// Eviction decides which live entry is dropped when the store is full.
	Eviction eviction.Policy

	// Metrics is how we keep track of what the cache is doing.
	Metrics types.Metrics

	// Logger receives debug events for evictions and cleanup passes.
	Logger zerolog.Logger
}

/*
New creates an Engine. A nil strategy or policy selects the defaults
(fixed TTL, LFU); nil metrics become NoopMetrics so callers never need
nil checks on the hot path.
*/
func New(
	exp expiration.Strategy,
	ev eviction.Policy,
	metrics types.Metrics,
	logger zerolog.Logger,
) *Engine {
	if exp == nil {
		exp = expiration.FixedTTL{}
	}
	if ev == nil {
		ev, _ = eviction.NewEvictionPolicy(eviction.LFU)
	}
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}

	return &Engine{
		Expiration: exp,
		Eviction:   ev,
		Metrics:    metrics,
		Logger:     logger,
	}
}

// IsExpired delegates the liveness decision to the configured strategy.
func (e *Engine) IsExpired(m *types.Meta, now time.Time) bool {
	return e.Expiration.IsExpired(m, now)
}

// Remaining returns how long the entry stays live after now.
func (e *Engine) Remaining(m *types.Meta, now time.Time) time.Duration {
	return e.Expiration.Deadline(m).Sub(now)
}

/*
OnRead is called every time the cache successfully returns a value.
It bumps the access count (which LFU reads) and LastAccessedAt
(which LRU and sliding expiration read).
*/
func (e *Engine) OnRead(m *types.Meta, now time.Time) {
	m.Touch(now)
	e.Metrics.Hit()
}

/*
Expire removes an entry that a lookup found expired (lazy expiry).
It reports whether an entry was removed.
*/
func Expire[T any](e *Engine, s *store.Store[T], key string) bool {
	if !s.Delete(key) {
		return false
	}
	e.Metrics.Expire()
	return true
}

/*
EvictOne frees exactly one slot: it scans the live entries and removes the
one the eviction policy ranks first. Expired entries are not candidates,
they belong to Cleanup.

Calling it on a store with no live entries is a no-op; the boolean reports
whether anything was evicted.
*/
func EvictOne[T any](e *Engine, s *store.Store[T], now time.Time) (string, bool) {
	candidates := make([]eviction.Candidate, 0, s.Len())
	s.Range(func(ent *types.CacheEntry[T]) bool {
		if !e.IsExpired(&ent.Meta, now) {
			candidates = append(candidates, eviction.Candidate{Key: ent.Key, Meta: &ent.Meta})
		}
		return true
	})

	key, ok := eviction.Victim(e.Eviction, candidates)
	if !ok {
		return "", false
	}

	s.Delete(key)
	e.Metrics.Eviction()
	e.Logger.Debug().
		Str("key", key).
		Str("policy", string(e.Eviction.Type())).
		Msg("evicted entry")
	return key, true
}

/*
Cleanup removes every non-live entry in one pass and returns how many it removed.
It only ever touches entries that are already logically gone, so it can run
between any two caller operations without changing what a caller observes.
*/
func Cleanup[T any](e *Engine, s *store.Store[T], now time.Time) int {
	removed := 0
	s.Range(func(ent *types.CacheEntry[T]) bool {
		if e.IsExpired(&ent.Meta, now) {
			s.Delete(ent.Key)
			e.Metrics.Expire()
			removed++
		}
		return true
	})

	if removed > 0 {
		e.Logger.Debug().
			Int("removed", removed).
			Int("remaining", s.Len()).
			Msg("cleanup pass")
	}
	return removed
}
