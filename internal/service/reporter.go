package service

import (
	"context"
	"log/slog"
	"strings"

	"jubilee/internal/slack"
)

// Reporter posts operational notices to the admin channel. Delivery is best
// effort; a failed report is logged and swallowed so it can never break the
// flow that produced it.
type Reporter struct {
	slackClient slack.Client
	channelID   string
	logger      *slog.Logger
}

func NewReporter(slackClient slack.Client, channelID string, logger *slog.Logger) *Reporter {
	return &Reporter{
		slackClient: slackClient,
		channelID:   strings.TrimSpace(channelID),
		logger:      logger,
	}
}

func (r *Reporter) Report(ctx context.Context, text string) {
	if r.channelID == "" {
		r.logger.Debug("admin channel not configured; dropping report", slog.String("text", text))
		return
	}

	if err := r.slackClient.PostChannelMessage(ctx, r.channelID, text, nil); err != nil {
		r.logger.WarnContext(ctx, "failed to deliver admin report",
			slog.String("channel_id", r.channelID),
			slog.String("error", err.Error()),
		)
	}
}
