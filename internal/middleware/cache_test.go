package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-booking/internal/config"
)

func cacheTestSetup(t *testing.T) (*echo.Echo, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return echo.New(), rdb
}

func TestRedisCacheHitAndMiss(t *testing.T) {
	e, rdb := cacheTestSetup(t)

	cfg := config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{"GET": true},
		TTL:         time.Minute,
		KeyStrategy: "route_query",
		Prefix:      "cache",
	}

	calls := 0
	h := NewRedisCache(cfg, rdb)(func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"hotels": []string{"Seaside"}})
	})

	serve := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/hotels?city=nice", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/v1/hotels")
		require.NoError(t, h(c))
		return rec
	}

	first := serve()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, 1, calls)

	second := serve()
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, 1, calls, "hit must not reach the handler")
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestRedisCacheSkipsUncachedMethods(t *testing.T) {
	e, rdb := cacheTestSetup(t)

	cfg := config.CacheConfig{
		Enabled: true,
		Methods: map[string]bool{"GET": true},
		TTL:     time.Minute,
		Prefix:  "cache",
	}

	calls := 0
	h := NewRedisCache(cfg, rdb)(func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusNoContent)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, h(c))
	}
	assert.Equal(t, 2, calls)
}

func TestRedisCacheSkipsErrorResponses(t *testing.T) {
	e, rdb := cacheTestSetup(t)

	cfg := config.CacheConfig{
		Enabled: true,
		Methods: map[string]bool{"GET": true},
		TTL:     time.Minute,
		Prefix:  "cache",
	}

	calls := 0
	h := NewRedisCache(cfg, rdb)(func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/hotels/99", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/v1/hotels/:id")
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
	assert.Equal(t, 2, calls, "non-200 responses must not be cached")
}

func TestRedisCacheDisabledPassThrough(t *testing.T) {
	e, _ := cacheTestSetup(t)

	calls := 0
	h := NewRedisCache(config.CacheConfig{Enabled: false}, nil)(func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/hotels", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
