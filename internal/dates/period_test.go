package dates

import (
	"strings"
	"testing"
	"time"
)

// ref is a fixed Thursday used as the reference instant in period tests.
var ref = time.Date(2024, 8, 15, 14, 0, 0, 0, time.UTC)

func TestResolvePeriod_Today(t *testing.T) {
	r, ok := ResolvePeriod(PeriodToday, ref, nil)
	if !ok {
		t.Fatal("expected today to resolve")
	}
	api := FormatForAPI(r)
	if api.FromDate != "2024-08-15" || api.ToDate != "2024-08-15" {
		t.Errorf("expected 2024-08-15..2024-08-15, got %s..%s", api.FromDate, api.ToDate)
	}
}

func TestResolvePeriod_Tomorrow(t *testing.T) {
	r, ok := ResolvePeriod(PeriodTomorrow, ref, nil)
	if !ok {
		t.Fatal("expected tomorrow to resolve")
	}
	if got := FormatForAPI(r).FromDate; got != "2024-08-16" {
		t.Errorf("expected 2024-08-16, got %s", got)
	}
}

func TestResolvePeriod_Recent(t *testing.T) {
	r, ok := ResolvePeriod(PeriodRecent, ref, nil)
	if !ok {
		t.Fatal("expected recent to resolve")
	}
	api := FormatForAPI(r)
	if api.FromDate != "2024-08-08" || api.ToDate != "2024-08-15" {
		t.Errorf("expected 2024-08-08..2024-08-15, got %s..%s", api.FromDate, api.ToDate)
	}
	wantEnd := time.Date(2024, 8, 15, 23, 59, 59, 999e6, time.UTC)
	if !r.End.Equal(wantEnd) {
		t.Errorf("expected end %v, got %v", wantEnd, r.End)
	}
}

func TestResolvePeriod_Weeks(t *testing.T) {
	r, ok := ResolvePeriod(PeriodThisWeek, ref, nil)
	if !ok {
		t.Fatal("expected thisWeek to resolve")
	}
	if got := FormatForAPI(r).FromDate; got != "2024-08-12" {
		t.Errorf("expected 2024-08-12, got %s", got)
	}

	r, ok = ResolvePeriod(PeriodNextWeek, ref, nil)
	if !ok {
		t.Fatal("expected nextWeek to resolve")
	}
	if got := FormatForAPI(r).FromDate; got != "2024-08-19" {
		t.Errorf("expected 2024-08-19, got %s", got)
	}
}

func TestResolvePeriod_NextMonthRollsYear(t *testing.T) {
	december := time.Date(2024, 12, 10, 9, 0, 0, 0, time.UTC)
	r, ok := ResolvePeriod(PeriodNextMonth, december, nil)
	if !ok {
		t.Fatal("expected nextMonth to resolve")
	}
	api := FormatForAPI(r)
	if api.FromDate != "2025-01-01" || api.ToDate != "2025-01-31" {
		t.Errorf("expected 2025-01-01..2025-01-31, got %s..%s", api.FromDate, api.ToDate)
	}
}

func TestResolvePeriod_NextMonthFromJan31(t *testing.T) {
	// A calendar-month step, not a 30-day offset: Jan 31 must land in
	// February, not skip to March.
	jan31 := time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)
	r, ok := ResolvePeriod(PeriodNextMonth, jan31, nil)
	if !ok {
		t.Fatal("expected nextMonth to resolve")
	}
	api := FormatForAPI(r)
	if api.FromDate != "2024-02-01" || api.ToDate != "2024-02-29" {
		t.Errorf("expected 2024-02-01..2024-02-29, got %s..%s", api.FromDate, api.ToDate)
	}
}

func TestResolvePeriod_UnknownTokenIsUnset(t *testing.T) {
	r, ok := ResolvePeriod(Period("lastFortnight"), ref, nil)
	if ok {
		t.Error("unknown token must not resolve")
	}
	if !r.IsZero() {
		t.Errorf("expected zero range, got %v", r)
	}
}

func TestFormatForAPI_DateOnly(t *testing.T) {
	// Regression guard: a full ISO timestamp must never leak into the
	// date-only wire fields.
	for _, p := range []Period{
		PeriodToday, PeriodTomorrow, PeriodRecent,
		PeriodThisWeek, PeriodNextWeek, PeriodThisMonth, PeriodNextMonth,
	} {
		r, ok := ResolvePeriod(p, ref, nil)
		if !ok {
			t.Fatalf("%s did not resolve", p)
		}
		api := FormatForAPI(r)
		for _, s := range []string{api.FromDate, api.ToDate} {
			if strings.ContainsAny(s, "TZ") {
				t.Errorf("%s: timestamp leaked into date field: %q", p, s)
			}
			if len(s) != len(DateLayout) {
				t.Errorf("%s: expected YYYY-MM-DD, got %q", p, s)
			}
		}
	}
}
