package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache "github.com/krisalay/smart-cache"
	"github.com/krisalay/smart-cache/eviction"
	"github.com/krisalay/smart-cache/expiration"
)

func TestDecode_Defaults(t *testing.T) {
	s, err := Decode(New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Equal(t, 5*time.Second, s.Server.ShutdownTimeout)
	assert.Equal(t, "info", s.Log.Level)

	require.Contains(t, s.Caches, Products)
	require.Contains(t, s.Caches, Users)
	require.Contains(t, s.Caches, Analytics)

	products := s.Caches[Products]
	assert.Equal(t, 200, products.MaxSize)
	assert.Equal(t, 10*time.Minute, products.DefaultTTL)
	assert.Equal(t, eviction.LFU, products.Eviction)
	assert.Equal(t, expiration.Fixed, products.Expiration)
}

func TestDecode_YAMLOverrides(t *testing.T) {
	v := New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
log:
  level: debug
caches:
  products:
    max_size: 500
    default_ttl: 30s
    eviction: lru
  reviews:
    max_size: 10
    expiration: sliding
`)))

	s, err := Decode(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.Log.Level)

	products := s.Caches[Products]
	assert.Equal(t, 500, products.MaxSize)
	assert.Equal(t, 30*time.Second, products.DefaultTTL)
	assert.Equal(t, time.Minute, products.CleanupInterval, "unset keys keep defaults")
	assert.Equal(t, eviction.LRU, products.Eviction)

	reviews := s.Caches["reviews"]
	assert.Equal(t, 10, reviews.MaxSize)
	assert.Equal(t, expiration.Sliding, reviews.Expiration)
	assert.Equal(t, cache.DefaultTTL, reviews.WithDefaults().DefaultTTL)
}

func TestDecode_RejectsInvalidCache(t *testing.T) {
	v := New()
	v.Set("caches.products.max_size", -5)

	_, err := Decode(v)
	require.Error(t, err)
	assert.ErrorIs(t, err, cache.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "products")
}

func TestDecode_EnvOverrides(t *testing.T) {
	t.Setenv("SMARTCACHE_CACHES_USERS_MAX_SIZE", "7")
	t.Setenv("SMARTCACHE_SERVER_ADDR", "127.0.0.1:9999")

	s, err := Decode(New())
	require.NoError(t, err)
	assert.Equal(t, 7, s.Caches[Users].MaxSize)
	assert.Equal(t, "127.0.0.1:9999", s.Server.Addr)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smartcache.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0o600))

	s, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", s.Server.Addr)

	_, err = Load(New(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	base := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(local, []byte("SMARTCACHE_LOG_LEVEL=warn\n"), 0o600))
	require.NoError(t, os.WriteFile(base, []byte("SMARTCACHE_LOG_LEVEL=error\n"), 0o600))

	t.Setenv("SMARTCACHE_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("SMARTCACHE_LOG_LEVEL"))

	LoadEnvFiles(local, base)

	s, err := Decode(New())
	require.NoError(t, err)
	assert.Equal(t, "warn", s.Log.Level)
}
