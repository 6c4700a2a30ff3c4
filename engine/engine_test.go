package engine

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/smart-cache/store"
	"github.com/krisalay/smart-cache/types"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type countingMetrics struct {
	hits, misses, evictions, expired int
}

func (m *countingMetrics) Hit()      { m.hits++ }
func (m *countingMetrics) Miss()     { m.misses++ }
func (m *countingMetrics) Eviction() { m.evictions++ }
func (m *countingMetrics) Expire()   { m.expired++ }

func put(s *store.Store[string], key string, created time.Time, ttl time.Duration) *types.CacheEntry[string] {
	ent := &types.CacheEntry[string]{
		Key:  key,
		Data: key,
		Meta: types.Meta{CreatedAt: created, LastAccessedAt: created, TTL: ttl},
	}
	s.Put(ent)
	return ent
}

func TestNew_Defaults(t *testing.T) {
	e := New(nil, nil, nil, zerolog.Nop())
	require.NotNil(t, e.Expiration)
	require.NotNil(t, e.Eviction)
	assert.Equal(t, types.NoopMetrics{}, e.Metrics)
}

func TestEvictOne_SkipsExpiredAndPicksLeastUsed(t *testing.T) {
	m := &countingMetrics{}
	e := New(nil, nil, m, zerolog.Nop())
	s := store.New[string](4)

	put(s, "expired", base, 10*time.Millisecond)
	a := put(s, "a", base, time.Minute)
	put(s, "b", base.Add(time.Millisecond), time.Minute)

	now := base.Add(50 * time.Millisecond)
	e.OnRead(&a.Meta, now)

	key, ok := EvictOne(e, s, now)
	require.True(t, ok)
	assert.Equal(t, "b", key)
	assert.Equal(t, 1, m.evictions)
	assert.Equal(t, 1, m.hits)

	_, stillThere := s.Get("expired")
	assert.True(t, stillThere, "eviction leaves expired entries to cleanup")
}

func TestEvictOne_EmptyIsNoop(t *testing.T) {
	m := &countingMetrics{}
	e := New(nil, nil, m, zerolog.Nop())

	_, ok := EvictOne(e, store.New[string](0), base)
	assert.False(t, ok)
	assert.Zero(t, m.evictions)
}

func TestCleanup_RemovesOnlyExpired(t *testing.T) {
	m := &countingMetrics{}
	e := New(nil, nil, m, zerolog.Nop())
	s := store.New[string](4)

	put(s, "short", base, 50*time.Millisecond)
	put(s, "shorter", base, 10*time.Millisecond)
	put(s, "long", base, time.Hour)

	removed := Cleanup(e, s, base.Add(100*time.Millisecond))
	assert.Equal(t, 2, removed)
	assert.Equal(t, 2, m.expired)
	assert.Equal(t, 1, s.Len())

	_, ok := s.Get("long")
	assert.True(t, ok)
}

func TestExpire_Lazy(t *testing.T) {
	m := &countingMetrics{}
	e := New(nil, nil, m, zerolog.Nop())
	s := store.New[string](1)
	put(s, "k", base, time.Millisecond)

	assert.True(t, Expire(e, s, "k"))
	assert.False(t, Expire(e, s, "k"))
	assert.Equal(t, 1, m.expired)
}

func TestRemaining(t *testing.T) {
	e := New(nil, nil, nil, zerolog.Nop())
	meta := &types.Meta{CreatedAt: base, LastAccessedAt: base, TTL: time.Second}
	assert.Equal(t, 600*time.Millisecond, e.Remaining(meta, base.Add(400*time.Millisecond)))
}
