package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finbrief/econcal/internal/apperror"
	"github.com/finbrief/econcal/internal/config"
	"github.com/finbrief/econcal/internal/dates"
)

// EventRepository fetches calendar events for a date range. The production
// implementation talks to the upstream events API; a Redis decorator caches
// its responses.
type EventRepository interface {
	FetchRange(ctx context.Context, r dates.APIRange) ([]Event, error)
}

// apiRepository is the HTTP client for the upstream events API.
type apiRepository struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewAPIRepository creates an EventRepository over the upstream API.
func NewAPIRepository(cfg config.UpstreamConfig) EventRepository {
	return &apiRepository{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchRange calls GET {base}/calendar?fromDate=&toDate= and decodes the
// JSON array of events. The fields read here are the only part of the
// upstream schema this service owns an opinion about.
func (r *apiRepository) FetchRange(ctx context.Context, rng dates.APIRange) ([]Event, error) {
	q := url.Values{}
	q.Set("fromDate", rng.FromDate)
	q.Set("toDate", rng.ToDate)
	endpoint := r.baseURL + "/calendar?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.apiKey != "" {
		req.Header.Set("X-API-Key", r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching events %s..%s: %w", apperror.ErrUpstream, rng.FromDate, rng.ToDate, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body for the log, then discard.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: returned %d for %s..%s: %s",
			apperror.ErrUpstream, resp.StatusCode, rng.FromDate, rng.ToDate, string(snippet))
	}

	var list []Event
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", apperror.ErrUpstream, err)
	}
	return list, nil
}

// cachedRepository wraps an EventRepository with a Redis read-through cache.
// Cache failures degrade to the inner repository; Redis being down must
// never take the calendar with it.
type cachedRepository struct {
	inner EventRepository
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCachedRepository decorates repo with a Redis cache keyed by date range.
func NewCachedRepository(repo EventRepository, rdb *redis.Client, ttl time.Duration) EventRepository {
	return &cachedRepository{inner: repo, rdb: rdb, ttl: ttl}
}

// cacheKey builds the Redis key for a date range.
func cacheKey(r dates.APIRange) string {
	return "econcal:events:" + r.FromDate + ":" + r.ToDate
}

// FetchRange serves from Redis when possible and falls through to the
// upstream API, populating the cache on the way back.
func (c *cachedRepository) FetchRange(ctx context.Context, rng dates.APIRange) ([]Event, error) {
	key := cacheKey(rng)

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var list []Event
		if err := json.Unmarshal(raw, &list); err == nil {
			return list, nil
		}
		// Corrupt entry: drop it and refetch.
		c.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("events cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	list, err := c.inner.FetchRange(ctx, rng)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(list); err == nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			slog.Warn("events cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	return list, nil
}
