// Package fx resolves GBP-based currency conversion rates from an external
// FX API and caches them in Redis.
package fx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voyago/travel-backoffice/internal/quote"
)

// ErrRateUnavailable means the FX API could not be reached or parsed and no
// previously resolved rate exists for the currency.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// Resolver fetches GBP->target rates and applies the fixed ask spread.  The
// spread is added to the raw rate as a flat decimal.  Resolved rates are
// cached with a TTL; the most recent successful rate per currency is also
// kept without expiry so a flaky upstream degrades to a slightly stale rate
// instead of a broken quote.
type Resolver struct {
	BaseURL string
	APIKey  string
	Spread  float64
	TTL     time.Duration
	Client  *http.Client
	RDB     *redis.Client // optional; nil disables caching
}

// NewResolver builds a resolver with a sane HTTP timeout.  rdb may be nil.
func NewResolver(baseURL, apiKey string, spread float64, ttl time.Duration, rdb *redis.Client) *Resolver {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Resolver{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Spread:  spread,
		TTL:     ttl,
		Client:  &http.Client{Timeout: 10 * time.Second},
		RDB:     rdb,
	}
}

// latestResponse mirrors the FX API payload: { "data": { "USD": 1.27, ... } }.
type latestResponse struct {
	Data map[string]float64 `json:"data"`
}

// Resolve returns the multiplicative GBP->target factor for a currency.
// GBP resolves to exactly 1 without any network call.  On upstream failure
// the last known good rate is returned together with the error; callers can
// keep displaying a price while surfacing a retry.  A zero rate with a
// non-nil error means no usable rate exists at all.
func (r *Resolver) Resolve(ctx context.Context, cur quote.Currency) (float64, error) {
	if cur == quote.CurrencyGBP {
		return 1, nil
	}

	if rate, ok := r.cached(ctx, cacheKey(cur)); ok {
		return rate, nil
	}

	rate, err := r.fetch(ctx, cur)
	if err != nil {
		log.Printf("fx: fetch %s failed: %v", cur, err)
		if last, ok := r.cached(ctx, lastGoodKey(cur)); ok {
			return last, err
		}
		return 0, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}

	rate += r.Spread
	r.remember(ctx, cur, rate)
	return rate, nil
}

func (r *Resolver) fetch(ctx context.Context, cur quote.Currency) (float64, error) {
	u := fmt.Sprintf("%s/latest?apikey=%s&base_currency=GBP", r.BaseURL, url.QueryEscape(r.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fx api status %d", resp.StatusCode)
	}
	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	rate, ok := body.Data[string(cur)]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("fx api returned no rate for %s", cur)
	}
	return rate, nil
}

// cached reads a float rate from Redis, tolerating a nil client.
func (r *Resolver) cached(ctx context.Context, key string) (float64, bool) {
	if r.RDB == nil {
		return 0, false
	}
	v, err := r.RDB.Get(ctx, key).Result()
	if err != nil {
		return 0, false
	}
	rate, err := strconv.ParseFloat(v, 64)
	if err != nil || rate <= 0 {
		return 0, false
	}
	return rate, true
}

// remember stores the freshly resolved rate under the TTL key and refreshes
// the last-known-good copy, which has no expiry.
func (r *Resolver) remember(ctx context.Context, cur quote.Currency, rate float64) {
	if r.RDB == nil {
		return
	}
	v := strconv.FormatFloat(rate, 'f', -1, 64)
	if err := r.RDB.SetEx(ctx, cacheKey(cur), v, r.TTL).Err(); err != nil {
		log.Printf("fx: cache write failed: %v", err)
	}
	_ = r.RDB.Set(ctx, lastGoodKey(cur), v, 0).Err()
}

func cacheKey(cur quote.Currency) string    { return "fx:rate:" + string(cur) }
func lastGoodKey(cur quote.Currency) string { return "fx:last:" + string(cur) }
