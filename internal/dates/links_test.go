package dates

import (
	"errors"
	"strings"
	"testing"
)

func TestWeekLink_YearRollover(t *testing.T) {
	got, err := WeekLink("2024-12-30", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/calendar/week/2025-01-06" {
		t.Errorf("expected /calendar/week/2025-01-06, got %s", got)
	}
}

func TestWeekLink_NormalizesNonMondayInput(t *testing.T) {
	// A mid-week date plus zero offset still lands on that week's Monday.
	got, err := WeekLink("2024-08-15", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/calendar/week/2024-08-12" {
		t.Errorf("expected /calendar/week/2024-08-12, got %s", got)
	}
}

func TestWeekLink_RoundTrip(t *testing.T) {
	const start = "2024-08-12"

	forward, err := WeekLink(start, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := WeekLink(strings.TrimPrefix(forward, WeekPathPrefix), -7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != WeekPathPrefix+start {
		t.Errorf("round trip ended at %s, want %s", back, WeekPathPrefix+start)
	}
}

func TestWeekLink_InvalidDate(t *testing.T) {
	_, err := WeekLink("invalid-date", 7)
	var invalid *InvalidDateError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidDateError, got %T: %v", err, err)
	}
}

func TestWeekStartDate_WholeWeekMapsToSameMonday(t *testing.T) {
	for _, d := range []string{
		"2024-08-12", "2024-08-13", "2024-08-14", "2024-08-15",
		"2024-08-16", "2024-08-17", "2024-08-18",
	} {
		got, err := WeekStartDate(d)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", d, err)
		}
		if got != "2024-08-12" {
			t.Errorf("%s: expected week start 2024-08-12, got %s", d, got)
		}
	}
}

func TestWeekStartDate_Invalid(t *testing.T) {
	_, err := WeekStartDate("not-a-date")
	var invalid *InvalidDateError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidDateError, got %T: %v", err, err)
	}
}
