package registry

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache "github.com/krisalay/smart-cache"
)

type user struct{ ID string }

func TestCreateAndLookup(t *testing.T) {
	r := New(zerolog.Nop())
	defer r.StopAll()

	products, err := Create[string](r, "products", cache.Config{MaxSize: 10})
	require.NoError(t, err)
	_, err = Create[user](r, "users", cache.Config{MaxSize: 5})
	require.NoError(t, err)

	assert.Equal(t, []string{"products", "users"}, r.Names())

	got, ok := Lookup[string](r, "products")
	require.True(t, ok)
	assert.Same(t, products, got)

	_, ok = Lookup[string](r, "users")
	assert.False(t, ok, "wrong payload type")

	_, ok = Lookup[string](r, "analytics")
	assert.False(t, ok)
}

func TestCreate_Errors(t *testing.T) {
	r := New(zerolog.Nop())
	defer r.StopAll()

	_, err := Create[string](r, "", cache.Config{})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = Create[string](r, "products", cache.Config{})
	require.NoError(t, err)
	_, err = Create[string](r, "products", cache.Config{})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = Create[string](r, "bad", cache.Config{MaxSize: -1})
	assert.ErrorIs(t, err, cache.ErrInvalidConfig)
	assert.Equal(t, []string{"products"}, r.Names())
}

func TestStatsAndStopAll(t *testing.T) {
	r := New(zerolog.Nop())

	products, err := Create[string](r, "products", cache.Config{CleanupInterval: 10 * time.Millisecond})
	require.NoError(t, err)
	users, err := Create[user](r, "users", cache.Config{})
	require.NoError(t, err)

	require.NoError(t, products.Set("sku-1", "widget"))
	require.NoError(t, users.Set("u1", user{ID: "u1"}))
	products.Get("sku-1")

	stats := r.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, "products", stats[0].Name)
	assert.Equal(t, 1, stats[0].Size)
	assert.Equal(t, uint64(1), stats[0].Hits)
	assert.Equal(t, "users", stats[1].Name)
	assert.Zero(t, stats[1].Hits, "instances do not share counters")

	r.StopAll()
	r.StopAll()

	// Caches remain usable after StopAll.
	v, ok := products.Get("sku-1")
	require.True(t, ok)
	assert.Equal(t, "widget", v)
}
