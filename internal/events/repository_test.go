package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/finbrief/econcal/internal/apperror"
	"github.com/finbrief/econcal/internal/config"
	"github.com/finbrief/econcal/internal/dates"
)

func testRange() dates.APIRange {
	return dates.APIRange{FromDate: "2024-08-12", ToDate: "2024-08-18"}
}

func TestAPIRepositoryFetchRange(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		if r.URL.Query().Get("fromDate") != "2024-08-12" || r.URL.Query().Get("toDate") != "2024-08-18" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]Event{
			{Date: "2024-08-15T08:30:00Z", Title: "CPI", Country: "US", Importance: ImportanceHigh},
		})
	}))
	defer srv.Close()

	repo := NewAPIRepository(config.UpstreamConfig{
		BaseURL: srv.URL,
		APIKey:  "secret",
		Timeout: 5 * time.Second,
	})

	list, err := repo.FetchRange(context.Background(), testRange())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/calendar" {
		t.Errorf("expected /calendar, got %q", gotPath)
	}
	if gotKey != "secret" {
		t.Error("API key header missing")
	}
	if len(list) != 1 || list[0].Title != "CPI" {
		t.Errorf("unexpected events: %+v", list)
	}
}

func TestAPIRepositoryUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	repo := NewAPIRepository(config.UpstreamConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})

	_, err := repo.FetchRange(context.Background(), testRange())
	if err == nil {
		t.Fatal("non-200 upstream status must surface as an error")
	}
	// The error must classify as a provider failure so the API layer can
	// answer 502 rather than 500.
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Errorf("expected apperror.ErrUpstream in the chain, got %v", err)
	}
}

// staticRepository counts calls and returns a fixed list.
type staticRepository struct {
	calls int
	list  []Event
	err   error
}

func (s *staticRepository) FetchRange(context.Context, dates.APIRange) ([]Event, error) {
	s.calls++
	return s.list, s.err
}

func TestCachedRepositoryReadThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	inner := &staticRepository{list: []Event{{Date: "2024-08-15T08:30:00Z", Title: "CPI"}}}
	repo := NewCachedRepository(inner, rdb, time.Minute)

	ctx := context.Background()
	first, err := repo.FetchRange(ctx, testRange())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := repo.FetchRange(ctx, testRange())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("second fetch must hit the cache, upstream called %d times", inner.calls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].Title != "CPI" {
		t.Errorf("cache round trip lost data: %+v", second)
	}
}

func TestCachedRepositoryCorruptEntryRefetches(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	mr.Set(cacheKey(testRange()), "{not json")

	inner := &staticRepository{list: []Event{{Date: "2024-08-15T08:30:00Z", Title: "CPI"}}}
	repo := NewCachedRepository(inner, rdb, time.Minute)

	list, err := repo.FetchRange(context.Background(), testRange())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("corrupt cache entry must refetch, upstream called %d times", inner.calls)
	}
	if len(list) != 1 {
		t.Errorf("unexpected events: %+v", list)
	}
}

func TestCachedRepositoryDegradesWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	mr.Close() // Redis is now unreachable.

	inner := &staticRepository{list: []Event{{Date: "2024-08-15T08:30:00Z", Title: "CPI"}}}
	repo := NewCachedRepository(inner, rdb, time.Minute)

	list, err := repo.FetchRange(context.Background(), testRange())
	if err != nil {
		t.Fatalf("redis outage must not fail the fetch: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("unexpected events: %+v", list)
	}
}

func TestCachedRepositoryPropagatesUpstreamError(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	upstream := errors.New("boom")
	repo := NewCachedRepository(&staticRepository{err: upstream}, rdb, time.Minute)

	if _, err := repo.FetchRange(context.Background(), testRange()); !errors.Is(err, upstream) {
		t.Errorf("expected upstream error, got %v", err)
	}
}
