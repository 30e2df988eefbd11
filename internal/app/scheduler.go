package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/finbrief/econcal/internal/config"
	"github.com/finbrief/econcal/internal/dates"
	"github.com/finbrief/econcal/internal/events"
	"github.com/finbrief/econcal/internal/report"
)

// warmTimeout bounds one cache warming run.
const warmTimeout = 30 * time.Second

// Scheduler periodically warms the event and report caches so page loads
// during market hours rarely wait on the upstream API.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	events  events.EventService
	reports report.ReportService
}

// NewScheduler creates a cache warmer on the configured cron schedule.
func NewScheduler(cfg *config.Config, evsvc events.EventService, repsvc report.ReportService) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		spec:    cfg.Calendar.RefreshCron,
		events:  evsvc,
		reports: repsvc,
	}
}

// Start registers the warm job and starts the cron loop. An invalid cron
// expression logs and disables the warmer rather than failing startup.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.spec, s.warm); err != nil {
		slog.Error("invalid refresh schedule, cache warmer disabled",
			slog.String("spec", s.spec), slog.Any("error", err))
		return
	}
	s.cron.Start()
	slog.Info("cache warmer started", slog.String("spec", s.spec))

	// Prime the cache immediately; the first page view shouldn't pay the
	// cold-start cost.
	go s.warm()
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// warm fetches this week's events and today's briefing. The cached
// repositories store the responses as a side effect.
func (s *Scheduler) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()

	now := time.Now().UTC()
	if _, _, err := s.events.EventsForPeriod(ctx, dates.PeriodThisWeek, now); err != nil {
		slog.Warn("warming events cache failed", slog.Any("error", err))
	}
	if _, err := s.reports.Briefing(ctx, now); err != nil && !errors.Is(err, report.ErrNotPublished) {
		slog.Warn("warming report cache failed", slog.Any("error", err))
	}
}
