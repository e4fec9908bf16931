package scheduler

import (
	"context"
	"log/slog"
	"time"

	"jubilee/internal/service"
)

// Scheduler drives the daily sweeps off wall-clock time in the configured
// timezone. Each sweep fires once per calendar day at its configured hour;
// the last-fired day guards cover restarts within the same tick.
type Scheduler struct {
	notifySvc     *service.NotificationService
	celebrateSvc  *service.CelebrationService
	hrSyncSvc     *service.HRSyncService
	location      *time.Location
	notifyHour    int
	celebrateHour int
	syncInterval  time.Duration
	pollInterval  time.Duration
	logger        *slog.Logger

	lastNotifyDay    string
	lastCelebrateDay string
	lastHRSync       time.Time
}

type Config struct {
	Location      *time.Location
	NotifyHour    int
	CelebrateHour int
	SyncInterval  time.Duration
	PollInterval  time.Duration
}

func New(
	notifySvc *service.NotificationService,
	celebrateSvc *service.CelebrationService,
	hrSyncSvc *service.HRSyncService,
	cfg Config,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		notifySvc:     notifySvc,
		celebrateSvc:  celebrateSvc,
		hrSyncSvc:     hrSyncSvc,
		location:      cfg.Location,
		notifyHour:    cfg.NotifyHour,
		celebrateHour: cfg.CelebrateHour,
		syncInterval:  cfg.SyncInterval,
		pollInterval:  cfg.PollInterval,
		logger:        logger,
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.logger.Info("scheduler started",
		slog.Duration("poll_interval", s.pollInterval),
		slog.Int("notify_hour", s.notifyHour),
		slog.Int("celebrate_hour", s.celebrateHour),
	)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	local := now.In(s.location)
	day := local.Format("2006-01-02")

	if local.Hour() >= s.notifyHour && s.lastNotifyDay != day {
		s.lastNotifyDay = day
		if _, err := s.notifySvc.RunPreDaySweep(ctx, now); err != nil {
			s.logger.Error("pre-day sweep failed", slog.String("error", err.Error()))
		}
	}

	if local.Hour() >= s.celebrateHour && s.lastCelebrateDay != day {
		s.lastCelebrateDay = day
		if _, err := s.celebrateSvc.RunDayOfSweep(ctx, now); err != nil {
			s.logger.Error("day-of sweep failed", slog.String("error", err.Error()))
		}
	}

	if s.hrSyncSvc != nil && s.syncInterval > 0 && now.Sub(s.lastHRSync) >= s.syncInterval {
		s.lastHRSync = now
		if _, err := s.hrSyncSvc.Run(ctx); err != nil {
			s.logger.Error("hr sync failed", slog.String("error", err.Error()))
		}
	}
}
