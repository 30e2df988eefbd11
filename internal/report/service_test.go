package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/finbrief/econcal/internal/dates"
	"github.com/finbrief/econcal/internal/events"
)

type mockReportRepository struct {
	fetchFunc func(ctx context.Context, date string) (*Report, error)
}

func (m *mockReportRepository) FetchReport(ctx context.Context, date string) (*Report, error) {
	return m.fetchFunc(ctx, date)
}

// mockEventService scripts the calendar side of the briefing.
type mockEventService struct {
	today []events.Event
	next  *events.Event
}

func (m *mockEventService) EventsForPeriod(_ context.Context, _ dates.Period, now time.Time) ([]events.Event, dates.Range, error) {
	return m.today, dates.DayRange(now, nil), nil
}

func (m *mockEventService) EventsForWeek(context.Context, string) ([]events.Event, dates.Range, error) {
	return nil, dates.Range{}, nil
}

func (m *mockEventService) EventsForDay(context.Context, string) ([]events.Event, dates.Range, error) {
	return nil, dates.Range{}, nil
}

func (m *mockEventService) EventsForRange(context.Context, string, string) ([]events.Event, dates.Range, error) {
	return nil, dates.Range{}, nil
}

func (m *mockEventService) UpcomingEvent(context.Context, time.Time) (*events.Event, error) {
	return m.next, nil
}

func TestBriefingAssemblesReportAndHighlights(t *testing.T) {
	var requestedDate string
	repo := &mockReportRepository{
		fetchFunc: func(_ context.Context, date string) (*Report, error) {
			requestedDate = date
			return &Report{
				Date:     date,
				Headline: "Futures point higher ahead of CPI",
				Summary:  "<p>CPI lands at 8:30 ET.</p>",
			}, nil
		},
	}
	evsvc := &mockEventService{
		today: []events.Event{
			{Date: "2024-08-15T08:30:00Z", Title: "CPI", Importance: events.ImportanceHigh},
			{Date: "2024-08-15T10:00:00Z", Title: "Wholesale Inventories", Importance: events.ImportanceLow},
		},
		next: &events.Event{Date: "2024-08-15T14:00:00Z", Title: "Retail Sales"},
	}
	svc := NewReportService(repo, evsvc, "UTC")

	b, err := svc.Briefing(context.Background(), time.Date(2024, 8, 15, 6, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requestedDate != "2024-08-15" {
		t.Errorf("expected report for 2024-08-15, requested %q", requestedDate)
	}
	if len(b.Highlights) != 1 || b.Highlights[0].Title != "CPI" {
		t.Errorf("highlights must keep only high importance, got %+v", b.Highlights)
	}
	if b.Next == nil || b.Next.Title != "Retail Sales" {
		t.Errorf("unexpected next event: %+v", b.Next)
	}
}

func TestBriefingSanitizesSummary(t *testing.T) {
	repo := &mockReportRepository{
		fetchFunc: func(_ context.Context, date string) (*Report, error) {
			return &Report{
				Date:    date,
				Summary: `<p onclick="alert(1)">Calm open.</p><script>steal()</script>`,
			}, nil
		},
	}
	svc := NewReportService(repo, &mockEventService{}, "UTC")

	b, err := svc.Briefing(context.Background(), time.Date(2024, 8, 15, 6, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(b.Report.Summary, "script") || strings.Contains(b.Report.Summary, "onclick") {
		t.Errorf("summary must be sanitized, got %q", b.Report.Summary)
	}
	if !strings.Contains(b.Report.Summary, "Calm open.") {
		t.Errorf("sanitization must keep the text, got %q", b.Report.Summary)
	}
}

func TestBriefingPublisherTimezoneFramesDate(t *testing.T) {
	var requestedDate string
	repo := &mockReportRepository{
		fetchFunc: func(_ context.Context, date string) (*Report, error) {
			requestedDate = date
			return &Report{Date: date}, nil
		},
	}
	svc := NewReportService(repo, &mockEventService{}, "America/New_York")

	// 02:00 UTC on the 16th is still the evening of the 15th in New York.
	_, err := svc.Briefing(context.Background(), time.Date(2024, 8, 16, 2, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requestedDate != "2024-08-15" {
		t.Errorf("expected publisher-zone date 2024-08-15, requested %q", requestedDate)
	}
}

func TestBriefingNotPublishedPassesThrough(t *testing.T) {
	repo := &mockReportRepository{
		fetchFunc: func(_ context.Context, date string) (*Report, error) {
			return nil, ErrNotPublished
		},
	}
	svc := NewReportService(repo, &mockEventService{}, "UTC")

	_, err := svc.Briefing(context.Background(), time.Date(2024, 8, 17, 6, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrNotPublished) {
		t.Errorf("expected ErrNotPublished, got %v", err)
	}
}
