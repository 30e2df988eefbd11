package report

import (
	"context"
	"fmt"
	"time"

	"github.com/finbrief/econcal/internal/dates"
	"github.com/finbrief/econcal/internal/events"
	"github.com/finbrief/econcal/internal/sanitize"
)

// Briefing is the assembled morning report page: the report itself plus the
// day's high-importance releases and the upcoming highlight.
type Briefing struct {
	Report *Report

	// Highlights are today's high-importance events, chronological.
	Highlights []events.Event

	// Next is the upcoming event at assembly time, nil when the schedule is
	// exhausted.
	Next *events.Event
}

// ReportService assembles the morning briefing.
type ReportService interface {
	// Briefing returns the report for the publisher-zone date of now, with
	// today's high-importance events. ErrNotPublished passes through when
	// the provider has no report for the date.
	Briefing(ctx context.Context, now time.Time) (*Briefing, error)
}

type reportService struct {
	repo   ReportRepository
	events events.EventService
	pubLoc *time.Location
}

// NewReportService creates a ReportService. publisherTZ decides which
// calendar date the briefing covers.
func NewReportService(repo ReportRepository, evsvc events.EventService, publisherTZ string) ReportService {
	return &reportService{
		repo:   repo,
		events: evsvc,
		pubLoc: dates.Location(publisherTZ),
	}
}

func (s *reportService) Briefing(ctx context.Context, now time.Time) (*Briefing, error) {
	today, _ := dates.ResolvePeriod(dates.PeriodToday, now, s.pubLoc)
	date := today.Start.Format(dates.DateLayout)

	rep, err := s.repo.FetchReport(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("morning briefing for %s: %w", date, err)
	}
	// Sanitize at ingest so every downstream consumer gets safe HTML.
	rep.Summary = sanitize.HTML(rep.Summary)

	list, _, err := s.events.EventsForPeriod(ctx, dates.PeriodToday, now)
	if err != nil {
		return nil, fmt.Errorf("morning briefing events for %s: %w", date, err)
	}

	next, err := s.events.UpcomingEvent(ctx, now)
	if err != nil {
		return nil, err
	}

	return &Briefing{
		Report:     rep,
		Highlights: events.FilterImportance(list, events.ImportanceHigh),
		Next:       next,
	}, nil
}
