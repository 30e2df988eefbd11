package report

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
)

// ErrNotPublished means no report exists for the requested date. Weekends
// and market holidays have no morning report.
var ErrNotPublished = errors.New("morning report not published")

// ReportRepository fetches the morning report for a date.
type ReportRepository interface {
	FetchReport(ctx context.Context, date string) (*Report, error)
}

// apiRepository is the HTTP client for the upstream morning-report endpoint.
type apiRepository struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewAPIRepository creates a ReportRepository over the upstream API.
func NewAPIRepository(cfg config.UpstreamConfig) ReportRepository {
	return &apiRepository{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchReport calls GET {base}/morning-report?date= and decodes the report.
// A 404 maps to ErrNotPublished.
func (r *apiRepository) FetchReport(ctx context.Context, date string) (*Report, error) {
	q := url.Values{}
	q.Set("date", date)
	endpoint := r.baseURL + "/morning-report?" + q.Encode()

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
		return nil, fmt.Errorf("%w: fetching morning report for %s: %w", apperror.ErrUpstream, date, err)
	}
	defer resp.Body.Close()

	// A missing report is an expected outcome, not a provider failure.
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w for %s", ErrNotPublished, date)
	}
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: returned %d for report %s: %s",
			apperror.ErrUpstream, resp.StatusCode, date, string(snippet))
	}

	var rep Report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		return nil, fmt.Errorf("%w: decoding morning report: %w", apperror.ErrUpstream, err)
	}
	return &rep, nil
}

// cachedRepository wraps a ReportRepository with a Redis read-through cache.
// Cache failures degrade to the inner repository.
type cachedRepository struct {
	inner ReportRepository
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCachedRepository decorates repo with a Redis cache keyed by date.
func NewCachedRepository(repo ReportRepository, rdb *redis.Client, ttl time.Duration) ReportRepository {
	return &cachedRepository{inner: repo, rdb: rdb, ttl: ttl}
}

func cacheKey(date string) string {
	return "econcal:report:" + date
}

func (c *cachedRepository) FetchReport(ctx context.Context, date string) (*Report, error) {
	key := cacheKey(date)

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var rep Report
		if err := json.Unmarshal(raw, &rep); err == nil {
			return &rep, nil
		}
		c.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("report cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	rep, err := c.inner.FetchReport(ctx, date)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(rep); err == nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			slog.Warn("report cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	return rep, nil
}
