package slack

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	slackapi "github.com/slack-go/slack"
)

type APIClient struct {
	api    *slackapi.Client
	logger *slog.Logger
}

func NewClient(botToken string, logger *slog.Logger) (Client, error) {
	botToken = strings.TrimSpace(botToken)
	if botToken == "" {
		logger.Warn("no Slack bot token configured; using noop slack client")
		return NewNoopClient(logger), nil
	}

	return &APIClient{
		api:    slackapi.New(botToken),
		logger: logger,
	}, nil
}

func (c *APIClient) SendDirectMessage(ctx context.Context, userID, fallback string, blocks []slackapi.Block) error {
	channel, _, _, err := c.api.OpenConversationContext(ctx, &slackapi.OpenConversationParameters{
		Users: []string{userID},
	})
	if err != nil {
		return fmt.Errorf("open dm with %s: %w", userID, err)
	}

	return c.post(ctx, channel.ID, fallback, blocks)
}

func (c *APIClient) PostChannelMessage(ctx context.Context, channelID, fallback string, blocks []slackapi.Block) error {
	return c.post(ctx, channelID, fallback, blocks)
}

func (c *APIClient) post(ctx context.Context, channelID, fallback string, blocks []slackapi.Block) error {
	opts := []slackapi.MsgOption{slackapi.MsgOptionText(fallback, false)}
	if len(blocks) > 0 {
		opts = append(opts, slackapi.MsgOptionBlocks(blocks...))
	}

	if _, _, err := c.api.PostMessageContext(ctx, channelID, opts...); err != nil {
		c.logger.ErrorContext(ctx, "slack post message failed",
			slog.String("channel_id", channelID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("post message to %s: %w", channelID, err)
	}

	return nil
}

// RespondWithReplacement posts to a single-use response_url, replacing the
// original interactive message. The URL's TTL is controlled by Slack.
func (c *APIClient) RespondWithReplacement(ctx context.Context, responseURL, fallback string, blocks []slackapi.Block) error {
	msg := &slackapi.WebhookMessage{
		Text:            fallback,
		ReplaceOriginal: true,
	}
	if len(blocks) > 0 {
		msg.Blocks = &slackapi.Blocks{BlockSet: blocks}
	}

	if err := slackapi.PostWebhookContext(ctx, responseURL, msg); err != nil {
		return fmt.Errorf("post response update: %w", err)
	}

	return nil
}

func (c *APIClient) UserAvatarURL(ctx context.Context, userID string) (string, error) {
	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("fetch user info for %s: %w", userID, err)
	}

	avatar := strings.TrimSpace(user.Profile.Image192)
	if avatar == "" {
		avatar = strings.TrimSpace(user.Profile.Image72)
	}
	return avatar, nil
}
