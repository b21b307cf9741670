package fx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/travel-backoffice/internal/quote"
)

func newTestResolver(t *testing.T, handler http.HandlerFunc) *Resolver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewResolver(srv.URL, "test-key", 0.05, time.Minute, nil)
}

func TestResolveGBPSkipsNetwork(t *testing.T) {
	var calls int32
	r := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	rate, err := r.Resolve(context.Background(), quote.CurrencyGBP)
	require.NoError(t, err)
	assert.Equal(t, float64(1), rate)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestResolveAddsAskSpread(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "test-key", req.URL.Query().Get("apikey"))
		assert.Equal(t, "GBP", req.URL.Query().Get("base_currency"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"USD":1.27,"EUR":1.17}}`))
	})

	rate, err := r.Resolve(context.Background(), quote.CurrencyUSD)
	require.NoError(t, err)
	assert.InDelta(t, 1.32, rate, 1e-9)

	rate, err = r.Resolve(context.Background(), quote.CurrencyEUR)
	require.NoError(t, err)
	assert.InDelta(t, 1.22, rate, 1e-9)
}

func TestResolveUpstreamFailure(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	rate, err := r.Resolve(context.Background(), quote.CurrencyUSD)
	assert.ErrorIs(t, err, ErrRateUnavailable)
	assert.Zero(t, rate)
}

func TestResolveMissingCurrencyInPayload(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"USD":1.27}}`))
	})

	rate, err := r.Resolve(context.Background(), quote.CurrencyAUD)
	assert.ErrorIs(t, err, ErrRateUnavailable)
	assert.Zero(t, rate)
}
