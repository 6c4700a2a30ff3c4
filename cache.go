package cache

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/krisalay/smart-cache/api"
	"github.com/krisalay/smart-cache/engine"
	"github.com/krisalay/smart-cache/eviction"
	"github.com/krisalay/smart-cache/expiration"
	"github.com/krisalay/smart-cache/store"
	"github.com/krisalay/smart-cache/types"
)

var _ api.Cache[any] = (*Cache[any])(nil)

/*
Cache is the main cache implementation.
This struct is the orchestrator that connects:
- the entry store
- the engine (expiration, eviction, metrics)
- the background cleanup goroutine
- loading through singleflight

Every exported method takes mu for its whole duration; reads mutate access
statistics, so there is no read-only fast path.
*/
type Cache[T any] struct {
	mu sync.Mutex

	name   string
	cfg    Config
	store  *store.Store[T]
	engine *engine.Engine
	clock  clockwork.Clock
	logger zerolog.Logger
	clone  func(T) T

	// counters feeds Stats and forwards every event to the user's metrics hook.
	counters counters

	// sf prevents multiple goroutines from loading the same key simultaneously.
	sf singleflight.Group

	// Goroutine ownership.
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New validates cfg, applies defaults and starts background cleanup.
// Call Stop when the cache is no longer needed.
func New[T any](cfg Config, opts ...Option) (*Cache[T], error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var clone func(T) T
	if o.clone != nil {
		fn, ok := o.clone.(func(T) T)
		if !ok {
			return nil, newValidationError("clone", fmt.Sprintf("%T", o.clone), "clone function does not match the cache payload type")
		}
		clone = fn
	}

	// Validate accepted both names, so parsing only normalizes them here.
	cfg.Eviction, _ = eviction.ParsePolicyType(string(cfg.Eviction))
	cfg.Expiration, _ = expiration.ParseKind(string(cfg.Expiration))

	policy, err := eviction.NewEvictionPolicy(cfg.Eviction)
	if err != nil {
		return nil, newValidationError("eviction", cfg.Eviction, err.Error())
	}
	strategy, err := expiration.New(cfg.Expiration)
	if err != nil {
		return nil, newValidationError("expiration", cfg.Expiration, err.Error())
	}

	logger := o.logger.With().Str("cache", o.name).Logger()
	ctx, cancel := context.WithCancel(context.Background())

	c := &Cache[T]{
		name:     o.name,
		cfg:      cfg,
		store:    store.New[T](cfg.MaxSize),
		clock:    o.clock,
		logger:   logger,
		clone:    clone,
		counters: counters{next: o.metrics},
		ctx:      ctx,
		cancel:   cancel,
	}
	c.engine = engine.New(strategy, policy, &c.counters, logger)

	c.wg.Add(1)
	go c.cleanupLoop()

	logger.Debug().
		Int("max_size", cfg.MaxSize).
		Dur("default_ttl", cfg.DefaultTTL).
		Dur("cleanup_interval", cfg.CleanupInterval).
		Str("eviction", string(cfg.Eviction)).
		Str("expiration", string(cfg.Expiration)).
		Msg("cache started")

	return c, nil
}

// Name returns the instance name.
func (c *Cache[T]) Name() string { return c.name }

// Config returns the effective configuration, defaults applied.
func (c *Cache[T]) Config() Config { return c.cfg }

// Set stores value under key with the default TTL.
func (c *Cache[T]) Set(key string, value T) error {
	return c.set(key, value, c.cfg.DefaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL, which must be positive.
func (c *Cache[T]) SetWithTTL(key string, value T, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("%w: %s must be greater than zero", ErrInvalidTTL, ttl)
	}
	return c.set(key, value, ttl)
}

func (c *Cache[T]) set(key string, value T, ttl time.Duration) error {
	if key == "" {
		return ErrInvalidKey
	}
	if c.clone != nil {
		value = c.clone(value)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()

	// Only a new key needs a free slot; an overwrite reuses its own.
	if _, exists := c.store.Get(key); !exists && c.store.Len() >= c.cfg.MaxSize {
		c.makeRoomLocked(now)
	}

	c.store.Put(&types.CacheEntry[T]{
		Key:  key,
		Data: value,
		Meta: types.Meta{
			CreatedAt:      now,
			LastAccessedAt: now,
			TTL:            ttl,
		},
	})
	return nil
}

// makeRoomLocked reclaims expired entries first, they are already logically
// gone, and only evicts a live entry if that did not free a slot.
func (c *Cache[T]) makeRoomLocked(now time.Time) {
	engine.Cleanup(c.engine, c.store, now)
	if c.store.Len() >= c.cfg.MaxSize {
		engine.EvictOne(c.engine, c.store, now)
	}
}

// Get returns the live value for key. Expired entries are removed on the way.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	ent, ok := c.liveLocked(key, now)
	if !ok {
		c.engine.Metrics.Miss()
		var zero T
		return zero, false
	}

	c.engine.OnRead(&ent.Meta, now)
	if c.clone != nil {
		return c.clone(ent.Data), true
	}
	return ent.Data, true
}

// Has reports whether key is live. It does not count as a read.
func (c *Cache[T]) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.liveLocked(key, c.clock.Now())
	return ok
}

// TTL returns how long key stays live. It does not count as a read.
func (c *Cache[T]) TTL(key string) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	ent, ok := c.liveLocked(key, now)
	if !ok {
		return 0, false
	}
	return c.engine.Remaining(&ent.Meta, now), true
}

// liveLocked returns the entry for key if it is live, deleting it if expired.
func (c *Cache[T]) liveLocked(key string, now time.Time) (*types.CacheEntry[T], bool) {
	ent, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	if c.engine.IsExpired(&ent.Meta, now) {
		engine.Expire(c.engine, c.store, key)
		return nil, false
	}
	return ent, true
}

// Delete removes key and reports whether it was present.
func (c *Cache[T]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Delete(key)
}

// Clear removes every entry. Statistics counters are kept.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Clear()
}

// Cleanup runs one expiry pass immediately.
func (c *Cache[T]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return engine.Cleanup(c.engine, c.store, c.clock.Now())
}

// Len returns the number of stored entries.
//
// Note: Len includes entries that have expired but haven't been cleaned up yet.
// Stats().Size counts live entries only.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

// Keys returns the live keys, earliest inserted first.
func (c *Cache[T]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	live := make([]*types.CacheEntry[T], 0, c.store.Len())
	c.store.Range(func(ent *types.CacheEntry[T]) bool {
		if !c.engine.IsExpired(&ent.Meta, now) {
			live = append(live, ent)
		}
		return true
	})
	slices.SortFunc(live, func(a, b *types.CacheEntry[T]) int {
		return compareSeq(a.Seq, b.Seq)
	})

	keys := make([]string, len(live))
	for i, ent := range live {
		keys[i] = ent.Key
	}
	return keys
}

// Stats returns occupancy and hit statistics. Size and the age and access
// figures are computed over live entries only.
func (c *Cache[T]) Stats() types.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	var (
		live           int
		totalAccesses  uint64
		oldest, newest time.Time
	)
	c.store.Range(func(ent *types.CacheEntry[T]) bool {
		if c.engine.IsExpired(&ent.Meta, now) {
			return true
		}
		live++
		totalAccesses += ent.AccessCount
		if oldest.IsZero() || ent.CreatedAt.Before(oldest) {
			oldest = ent.CreatedAt
		}
		if newest.IsZero() || ent.CreatedAt.After(newest) {
			newest = ent.CreatedAt
		}
		return true
	})

	s := types.Stats{
		Name:        c.name,
		Size:        live,
		Entries:     c.store.Len(),
		MaxSize:     c.cfg.MaxSize,
		Hits:        c.counters.hits,
		Misses:      c.counters.misses,
		Evictions:   c.counters.evictions,
		Expirations: c.counters.expirations,
		HitRate:     types.HitRate(c.counters.hits, c.counters.misses),
	}
	if live > 0 {
		s.AverageAccessCount = float64(totalAccesses) / float64(live)
		s.OldestItem = oldest.UnixMilli()
		s.NewestItem = newest.UnixMilli()
	}
	return s
}

/*
GetOrLoad returns the cached value for key, or loads it on a miss.

singleflight ensures that:
- If 100 goroutines miss the same key at once,
  only ONE of them calls the loader.
- Others wait for and share the result.

The loaded value is stored with the default TTL. A loader error is returned
wrapped and nothing is cached.

The shared load is detached from the cancellation of whichever caller
started it. Each caller still stops waiting when its own ctx is done.
*/
func (c *Cache[T]) GetOrLoad(ctx context.Context, key string, loader types.Loader[T]) (T, error) {
	var zero T
	if key == "" {
		return zero, ErrInvalidKey
	}
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(key, func() (any, error) {
		loaded, err := loader.Load(loadCtx, key)
		if err != nil {
			return nil, err
		}
		if err := c.Set(key, loaded); err != nil {
			return nil, err
		}
		return loaded, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return zero, fmt.Errorf("load %q: %w", key, res.Err)
	}

	val, _ := res.Val.(T)
	if c.clone != nil {
		// Waiters share one loaded value; each gets its own copy.
		val = c.clone(val)
	}
	return val, nil
}

// Stop cancels background cleanup and waits for an in-flight pass to finish.
//
// Stop is safe to call multiple times. The cache remains usable afterwards;
// expired entries are still removed lazily by Get, Has and TTL.
func (c *Cache[T]) Stop() {
	c.stopOnce.Do(func() {
		c.cancel()
		c.wg.Wait()
		c.logger.Debug().Msg("cleanup stopped")
	})
}

func compareSeq(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
