package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"jubilee/internal/config"
	"jubilee/internal/database"
	"jubilee/internal/dedupe"
	"jubilee/internal/hr"
	apphttp "jubilee/internal/http"
	"jubilee/internal/http/handlers"
	"jubilee/internal/repository"
	"jubilee/internal/scheduler"
	"jubilee/internal/service"
	"jubilee/internal/slack"
)

type App struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *sql.DB
	httpSrv   *http.Server
	scheduler *scheduler.Scheduler
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.App.Environment)

	db, err := database.OpenPostgres(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		if err := database.UpMigrations(ctx, db, cfg.DB.MigrationsDir); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("database migrations applied", slog.String("dir", cfg.DB.MigrationsDir))
	}

	employeeRepo := repository.NewEmployeeRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	giftRepo := repository.NewGiftRepository(db)

	slackClient, err := slack.NewClient(cfg.Slack.BotToken, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("build slack client: %w", err)
	}

	// Timezone is validated at config load.
	location, _ := time.LoadLocation(cfg.Sweep.Timezone)

	reporter := service.NewReporter(slackClient, cfg.Slack.AdminChannelID, logger)

	notifySvc := service.NewNotificationService(
		employeeRepo, recordRepo, slackClient, reporter,
		cfg.Sweep.MilestoneYears, cfg.Sweep.SendDelay, location, logger,
	)
	celebrateSvc := service.NewCelebrationService(
		employeeRepo, recordRepo, giftRepo, slackClient, reporter,
		cfg.Slack.CelebrationChannelID, cfg.Sweep.SendDelay, location, logger,
	)
	interactionSvc := service.NewInteractionService(recordRepo, giftRepo, slackClient, logger)

	hrClient := hr.NewClient(cfg.HR.BaseURL, cfg.HR.APIToken, cfg.HR.PageSize)
	hrSyncSvc := service.NewHRSyncService(hrClient, employeeRepo, reporter, cfg.HR.ChatHandleField, logger)

	healthHandler := handlers.NewHealthHandler()
	slackHandler := handlers.NewSlackHandler(interactionSvc, dedupe.NewCache(cfg.Sweep.DedupTTL), cfg.Slack.SigningSecret, logger)
	adminHandler := handlers.NewAdminHandler(notifySvc, celebrateSvc, hrSyncSvc, recordRepo, giftRepo)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		Logger:        logger,
		HealthHandler: healthHandler,
		SlackHandler:  slackHandler,
		AdminHandler:  adminHandler,
	})

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var sched *scheduler.Scheduler
	if cfg.Sweep.Enabled {
		syncInterval := cfg.HR.SyncInterval
		if cfg.HR.BaseURL == "" {
			syncInterval = 0
		}
		sched = scheduler.New(notifySvc, celebrateSvc, hrSyncSvc, scheduler.Config{
			Location:      location,
			NotifyHour:    cfg.Sweep.NotifyHour,
			CelebrateHour: cfg.Sweep.CelebrateHour,
			SyncInterval:  syncInterval,
			PollInterval:  cfg.Sweep.PollInterval,
		}, logger)
	}

	return &App{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		httpSrv:   httpSrv,
		scheduler: sched,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.scheduler != nil {
		go a.scheduler.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", slog.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return a.shutdown(context.Background())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return a.shutdown(context.Background())
		}
		_ = a.shutdown(context.Background())
		return err
	}
}

func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}

	return nil
}
