package events

import (
	"context"
	"fmt"
	"time"

	"github.com/finbrief/econcal/internal/apperror"
	"github.com/finbrief/econcal/internal/dates"
)

// EventService is the business logic for the events calendar: resolving the
// requested span, fetching events, ordering them, and picking the upcoming
// highlight.
type EventService interface {
	// EventsForPeriod returns chronologically sorted events for a named
	// period. An unrecognized token falls back to thisWeek — the period
	// parameter is a hint, not a hard contract. The resolved range is
	// returned alongside the events.
	EventsForPeriod(ctx context.Context, p dates.Period, now time.Time) ([]Event, dates.Range, error)

	// EventsForWeek returns the events of the ISO week containing the given
	// YYYY-MM-DD date. Fails with *dates.InvalidDateError on bad input.
	EventsForWeek(ctx context.Context, date string) ([]Event, dates.Range, error)

	// EventsForDay returns the events of one calendar date.
	EventsForDay(ctx context.Context, date string) ([]Event, dates.Range, error)

	// EventsForRange returns the events between two YYYY-MM-DD dates,
	// inclusive on both ends.
	EventsForRange(ctx context.Context, from, to string) ([]Event, dates.Range, error)

	// UpcomingEvent picks the next event relative to now, framed against
	// the publisher timezone. When today has nothing left it retries with
	// tomorrow's list; nil means nothing is scheduled.
	UpcomingEvent(ctx context.Context, now time.Time) (*Event, error)
}

// eventService is the default EventService implementation.
type eventService struct {
	repo   EventRepository
	pubLoc *time.Location
}

// NewEventService creates an EventService. publisherTZ must be a supported
// timezone name; it decides which calendar date "today" is when resolving
// periods and selecting the upcoming event.
func NewEventService(repo EventRepository, publisherTZ string) EventService {
	return &eventService{
		repo:   repo,
		pubLoc: dates.Location(publisherTZ),
	}
}

func (s *eventService) EventsForPeriod(ctx context.Context, p dates.Period, now time.Time) ([]Event, dates.Range, error) {
	rng, ok := dates.ResolvePeriod(p, now, s.pubLoc)
	if !ok {
		rng, _ = dates.ResolvePeriod(dates.PeriodThisWeek, now, s.pubLoc)
	}
	list, err := s.fetch(ctx, rng)
	if err != nil {
		return nil, dates.Range{}, err
	}
	return list, rng, nil
}

func (s *eventService) EventsForWeek(ctx context.Context, date string) ([]Event, dates.Range, error) {
	t, err := dates.ParseDate(date)
	if err != nil {
		return nil, dates.Range{}, err
	}
	rng := dates.WeekRange(t, nil)
	list, err := s.fetch(ctx, rng)
	if err != nil {
		return nil, dates.Range{}, err
	}
	return list, rng, nil
}

func (s *eventService) EventsForDay(ctx context.Context, date string) ([]Event, dates.Range, error) {
	t, err := dates.ParseDate(date)
	if err != nil {
		return nil, dates.Range{}, err
	}
	rng := dates.DayRange(t, nil)
	list, err := s.fetch(ctx, rng)
	if err != nil {
		return nil, dates.Range{}, err
	}
	return list, rng, nil
}

func (s *eventService) EventsForRange(ctx context.Context, from, to string) ([]Event, dates.Range, error) {
	start, err := dates.ParseDate(from)
	if err != nil {
		return nil, dates.Range{}, err
	}
	end, err := dates.ParseDate(to)
	if err != nil {
		return nil, dates.Range{}, err
	}
	if start.After(end) {
		return nil, dates.Range{}, apperror.NewBadRequest(
			fmt.Sprintf("fromDate %s is after toDate %s", from, to))
	}
	rng := dates.Range{Start: dates.DayRange(start, nil).Start, End: dates.DayRange(end, nil).End}
	list, err := s.fetch(ctx, rng)
	if err != nil {
		return nil, dates.Range{}, err
	}
	return list, rng, nil
}

func (s *eventService) UpcomingEvent(ctx context.Context, now time.Time) (*Event, error) {
	today, _ := dates.ResolvePeriod(dates.PeriodToday, now, s.pubLoc)
	list, err := s.fetch(ctx, today)
	if err != nil {
		return nil, err
	}
	if next := NextEvent(list, now, nil); next != nil {
		return next, nil
	}

	// Nothing left today: look at tomorrow's schedule.
	tomorrow, _ := dates.ResolvePeriod(dates.PeriodTomorrow, now, s.pubLoc)
	list, err = s.fetch(ctx, tomorrow)
	if err != nil {
		return nil, err
	}
	return NextEvent(list, now, nil), nil
}

// fetch pulls a range from the repository and returns it in display order.
func (s *eventService) fetch(ctx context.Context, rng dates.Range) ([]Event, error) {
	list, err := s.repo.FetchRange(ctx, dates.FormatForAPI(rng))
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	return Chronological(list), nil
}
