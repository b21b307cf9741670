package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/travel-backoffice/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	body := []byte(`{"ok":true}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, []byte("short"), {0, 0, 0, 200, 255, 255, 255, 255}} {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Fatalf("decodePayload(%v) accepted garbage", bs)
		}
	}
}

func TestCacheTagsSkipStructuralSegments(t *testing.T) {
	tags := cacheTags("cache", "/v1/admin/hotels/:id/rooms")
	assert.Equal(t, []string{"cache:tag:hotels", "cache:tag:rooms"}, tags)

	assert.Empty(t, cacheTags("cache", "/v1/admin/:id"))
}

func TestCacheKeyStrategies(t *testing.T) {
	e := echo.New()
	newCtx := func() echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/events?page=2", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/admin/events")
		return c
	}

	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route"}
	routeOnly := cacheKeyFrom(cfg, newCtx())

	cfg.KeyStrategy = "route_query"
	withQuery := cacheKeyFrom(cfg, newCtx())

	assert.NotEqual(t, routeOnly, withQuery)
	assert.Equal(t, routeOnly, cacheKeyFrom(config.CacheConfig{Prefix: "cache", KeyStrategy: "route"}, newCtx()),
		"same strategy and route must produce a stable key")
	assert.Contains(t, routeOnly, "cache:")
}
