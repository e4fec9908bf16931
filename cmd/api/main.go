package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "jubilee/docs/swagger"
	"jubilee/internal/app"
)

// @title Jubilee API
// @version 1.0
// @description Employee celebration bot: opt-in notifications, gift selection, and day-of announcements over Slack.
// @BasePath /
// @schemes http https
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}
