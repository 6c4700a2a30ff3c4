package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache "github.com/krisalay/smart-cache"
	"github.com/krisalay/smart-cache/registry"
	"github.com/krisalay/smart-cache/types"
)

func newTestServer(t *testing.T) (*Server, *cache.Cache[string]) {
	t.Helper()

	reg := registry.New(zerolog.Nop())
	t.Cleanup(reg.StopAll)

	products, err := registry.Create[string](reg, "products", cache.Config{MaxSize: 10})
	require.NoError(t, err)
	_, err = registry.Create[int](reg, "analytics", cache.Config{})
	require.NoError(t, err)

	return New(reg, zerolog.Nop()), products
}

func do(t *testing.T, s *Server, method, path string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return rr, body
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rr, body := do(t, s, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"healthy","caches":2}`, string(body["data"]))
}

func TestListCaches(t *testing.T) {
	s, products := newTestServer(t)
	require.NoError(t, products.Set("sku-1", "widget"))

	rr, body := do(t, s, http.MethodGet, "/caches")
	require.Equal(t, http.StatusOK, rr.Code)

	var stats []types.Stats
	require.NoError(t, json.Unmarshal(body["data"], &stats))
	require.Len(t, stats, 2)
	assert.Equal(t, "analytics", stats[0].Name)
	assert.Equal(t, "products", stats[1].Name)
	assert.Equal(t, 1, stats[1].Size)
}

func TestCacheStats(t *testing.T) {
	s, products := newTestServer(t)
	require.NoError(t, products.Set("sku-1", "widget"))
	products.Get("sku-1")

	rr, body := do(t, s, http.MethodGet, "/caches/products")
	require.Equal(t, http.StatusOK, rr.Code)

	var stats types.Stats
	require.NoError(t, json.Unmarshal(body["data"], &stats))
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, 10, stats.MaxSize)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.InDelta(t, 1.0, stats.HitRate, 1e-9)
}

func TestUnknownCache(t *testing.T) {
	s, _ := newTestServer(t)

	rr, body := do(t, s, http.MethodGet, "/caches/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, string(body["error"]), "NOT_FOUND")
}

func TestClearAndDeleteEntry(t *testing.T) {
	s, products := newTestServer(t)
	require.NoError(t, products.Set("sku-1", "widget"))
	require.NoError(t, products.Set("sku-2", "gadget"))

	rr, _ := do(t, s, http.MethodDelete, "/caches/products/entries/sku-1")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, products.Has("sku-1"))

	rr, _ = do(t, s, http.MethodDelete, "/caches/products/entries/sku-1")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = do(t, s, http.MethodDelete, "/caches/products")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, products.Len())
}

func TestCleanupEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rr, body := do(t, s, http.MethodPost, "/caches/products/cleanup")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"removed":0}`, string(body["data"]))
}

func TestDeleteEntry_EscapedKeys(t *testing.T) {
	s, products := newTestServer(t)

	keys := map[string]string{
		"a/b":  "/caches/products/entries/a%2Fb",
		"a b":  "/caches/products/entries/a%20b",
		"100%": "/caches/products/entries/100%25",
		"x/%":  "/caches/products/entries/x%2F%25",
	}
	for key := range keys {
		require.NoError(t, products.Set(key, "v"))
	}

	for key, path := range keys {
		t.Run(key, func(t *testing.T) {
			rr, body := do(t, s, http.MethodDelete, path)
			require.Equal(t, http.StatusOK, rr.Code, string(body["error"]))

			var data map[string]string
			require.NoError(t, json.Unmarshal(body["data"], &data))
			assert.Equal(t, key, data["deleted"])
			assert.False(t, products.Has(key))
		})
	}
	assert.Equal(t, 0, products.Len())
}
