package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finbrief/econcal/internal/apperror"
	"github.com/finbrief/econcal/internal/dates"
)

// mockRepository lets each test script the upstream responses per range.
type mockRepository struct {
	fetchFunc func(ctx context.Context, r dates.APIRange) ([]Event, error)
}

func (m *mockRepository) FetchRange(ctx context.Context, r dates.APIRange) ([]Event, error) {
	return m.fetchFunc(ctx, r)
}

func TestEventsForPeriodResolvesRange(t *testing.T) {
	var requested dates.APIRange
	repo := &mockRepository{
		fetchFunc: func(_ context.Context, r dates.APIRange) ([]Event, error) {
			requested = r
			return []Event{
				{Date: "2024-08-14T14:00:00Z", Title: "Later"},
				{Date: "2024-08-12T08:30:00Z", Title: "Earlier"},
			}, nil
		},
	}
	svc := NewEventService(repo, "UTC")

	now := time.Date(2024, 8, 15, 12, 0, 0, 0, time.UTC) // a Thursday
	list, rng, err := svc.EventsForPeriod(context.Background(), dates.PeriodThisWeek, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requested.FromDate != "2024-08-12" || requested.ToDate != "2024-08-18" {
		t.Errorf("expected week 2024-08-12..2024-08-18, requested %+v", requested)
	}
	if rng.Start.Format(dates.DateLayout) != "2024-08-12" {
		t.Errorf("unexpected range start: %v", rng.Start)
	}
	if len(list) != 2 || list[0].Title != "Earlier" {
		t.Errorf("events must come back sorted, got %+v", list)
	}
}

func TestEventsForPeriodUnknownTokenFallsBackToThisWeek(t *testing.T) {
	var requested dates.APIRange
	repo := &mockRepository{
		fetchFunc: func(_ context.Context, r dates.APIRange) ([]Event, error) {
			requested = r
			return nil, nil
		},
	}
	svc := NewEventService(repo, "UTC")

	now := time.Date(2024, 8, 15, 12, 0, 0, 0, time.UTC)
	_, _, err := svc.EventsForPeriod(context.Background(), dates.Period("fortnight"), now)
	if err != nil {
		t.Fatalf("unknown period must not error: %v", err)
	}
	if requested.FromDate != "2024-08-12" {
		t.Errorf("unknown period must fall back to this week, requested %+v", requested)
	}
}

func TestEventsForWeekInvalidDate(t *testing.T) {
	repo := &mockRepository{
		fetchFunc: func(context.Context, dates.APIRange) ([]Event, error) {
			t.Fatal("repository must not be called for invalid input")
			return nil, nil
		},
	}
	svc := NewEventService(repo, "UTC")

	_, _, err := svc.EventsForWeek(context.Background(), "15/08/2024")
	var invalid *dates.InvalidDateError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *dates.InvalidDateError, got %v", err)
	}
	if invalid.Value != "15/08/2024" {
		t.Errorf("error must carry the offending value, got %q", invalid.Value)
	}
}

func TestEventsForRange(t *testing.T) {
	var requested dates.APIRange
	repo := &mockRepository{
		fetchFunc: func(_ context.Context, r dates.APIRange) ([]Event, error) {
			requested = r
			return nil, nil
		},
	}
	svc := NewEventService(repo, "UTC")

	_, rng, err := svc.EventsForRange(context.Background(), "2024-08-01", "2024-08-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requested.FromDate != "2024-08-01" || requested.ToDate != "2024-08-10" {
		t.Errorf("unexpected upstream range: %+v", requested)
	}
	if rng.End.Hour() != 23 || rng.End.Minute() != 59 {
		t.Errorf("range end must be end of day, got %v", rng.End)
	}

	if _, _, err := svc.EventsForRange(context.Background(), "2024-08-01", "nope"); err == nil {
		t.Error("invalid toDate must error")
	}
}

func TestEventsForRangeRejectsInvertedRange(t *testing.T) {
	repo := &mockRepository{
		fetchFunc: func(context.Context, dates.APIRange) ([]Event, error) {
			t.Fatal("repository must not be called for an inverted range")
			return nil, nil
		},
	}
	svc := NewEventService(repo, "UTC")

	_, _, err := svc.EventsForRange(context.Background(), "2024-08-10", "2024-08-01")
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected an AppError, got %v", err)
	}
	if appErr.Code != 400 {
		t.Errorf("expected 400, got %d", appErr.Code)
	}
}

func TestUpcomingEventTomorrowFallback(t *testing.T) {
	now := time.Date(2024, 8, 15, 20, 0, 0, 0, time.UTC)
	repo := &mockRepository{
		fetchFunc: func(_ context.Context, r dates.APIRange) ([]Event, error) {
			switch r.FromDate {
			case "2024-08-15":
				// Today's events are all in the past.
				return []Event{{Date: "2024-08-15T08:30:00Z", Title: "CPI"}}, nil
			case "2024-08-16":
				return []Event{{Date: "2024-08-16T08:30:00Z", Title: "Jobless Claims"}}, nil
			default:
				return nil, nil
			}
		},
	}
	svc := NewEventService(repo, "UTC")

	next, err := svc.UpcomingEvent(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next == nil {
		t.Fatal("expected tomorrow's event, got nil")
	}
	if next.Title != "Jobless Claims" {
		t.Errorf("expected Jobless Claims, got %q", next.Title)
	}
}

func TestUpcomingEventNilWhenBothDaysEmpty(t *testing.T) {
	repo := &mockRepository{
		fetchFunc: func(context.Context, dates.APIRange) ([]Event, error) {
			return nil, nil
		},
	}
	svc := NewEventService(repo, "UTC")

	next, err := svc.UpcomingEvent(context.Background(), time.Date(2024, 8, 15, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != nil {
		t.Errorf("expected nil, got %+v", next)
	}
}

func TestUpcomingEventPublisherTimezoneFramesToday(t *testing.T) {
	// 2024-08-16 02:00 UTC is still 2024-08-15 in New York, so "today"
	// must be the 15th when the publisher zone is Eastern.
	now := time.Date(2024, 8, 16, 2, 0, 0, 0, time.UTC)
	var first dates.APIRange
	repo := &mockRepository{
		fetchFunc: func(_ context.Context, r dates.APIRange) ([]Event, error) {
			if first.FromDate == "" {
				first = r
			}
			return nil, nil
		},
	}
	svc := NewEventService(repo, "America/New_York")

	if _, err := svc.UpcomingEvent(context.Background(), now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.FromDate != "2024-08-15" {
		t.Errorf("publisher-zone today should be 2024-08-15, requested %+v", first)
	}
}

func TestServiceWrapsRepositoryErrors(t *testing.T) {
	upstream := errors.New("connection refused")
	repo := &mockRepository{
		fetchFunc: func(context.Context, dates.APIRange) ([]Event, error) {
			return nil, upstream
		},
	}
	svc := NewEventService(repo, "UTC")

	_, _, err := svc.EventsForDay(context.Background(), "2024-08-15")
	if !errors.Is(err, upstream) {
		t.Errorf("expected wrapped upstream error, got %v", err)
	}
}
