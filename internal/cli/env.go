package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"jubilee/internal/config"
	"jubilee/internal/database"
	"jubilee/internal/hr"
	"jubilee/internal/repository"
	"jubilee/internal/service"
	"jubilee/internal/slack"
)

// env is the shared wiring for one-shot commands: config, database, and the
// services the command needs. Close releases the database handle.
type env struct {
	cfg          config.Config
	logger       *slog.Logger
	db           *sql.DB
	location     *time.Location
	notifySvc    *service.NotificationService
	celebrateSvc *service.CelebrationService
	hrSyncSvc    *service.HRSyncService
}

func newEnv(ctx context.Context, verbose bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	db, err := database.OpenPostgres(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	employeeRepo := repository.NewEmployeeRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	giftRepo := repository.NewGiftRepository(db)

	slackClient, err := slack.NewClient(cfg.Slack.BotToken, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("build slack client: %w", err)
	}

	location, _ := time.LoadLocation(cfg.Sweep.Timezone)

	reporter := service.NewReporter(slackClient, cfg.Slack.AdminChannelID, logger)
	hrClient := hr.NewClient(cfg.HR.BaseURL, cfg.HR.APIToken, cfg.HR.PageSize)

	return &env{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		location: location,
		notifySvc: service.NewNotificationService(
			employeeRepo, recordRepo, slackClient, reporter,
			cfg.Sweep.MilestoneYears, cfg.Sweep.SendDelay, location, logger,
		),
		celebrateSvc: service.NewCelebrationService(
			employeeRepo, recordRepo, giftRepo, slackClient, reporter,
			cfg.Slack.CelebrationChannelID, cfg.Sweep.SendDelay, location, logger,
		),
		hrSyncSvc: service.NewHRSyncService(hrClient, employeeRepo, reporter, cfg.HR.ChatHandleField, logger),
	}, nil
}

func (e *env) Close() {
	_ = e.db.Close()
}

// parseDateFlag resolves an optional --date override; empty means now.
func parseDateFlag(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}

	date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must use YYYY-MM-DD: %w", err)
	}
	return date, nil
}
