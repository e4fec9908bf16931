package slack

import (
	"context"
	"log/slog"

	slackapi "github.com/slack-go/slack"
)

// NoopClient logs instead of calling Slack. Used when no bot token is
// configured, e.g. local development against a database only.
type NoopClient struct {
	logger *slog.Logger
}

func NewNoopClient(logger *slog.Logger) *NoopClient {
	return &NoopClient{logger: logger}
}

func (c *NoopClient) SendDirectMessage(_ context.Context, userID, fallback string, blocks []slackapi.Block) error {
	c.logger.Info("noop slack dm", slog.String("user_id", userID), slog.String("text", fallback), slog.Int("block_count", len(blocks)))
	return nil
}

func (c *NoopClient) PostChannelMessage(_ context.Context, channelID, fallback string, blocks []slackapi.Block) error {
	c.logger.Info("noop slack post", slog.String("channel_id", channelID), slog.String("text", fallback), slog.Int("block_count", len(blocks)))
	return nil
}

func (c *NoopClient) RespondWithReplacement(_ context.Context, responseURL, fallback string, blocks []slackapi.Block) error {
	c.logger.Info("noop slack response update", slog.String("response_url", responseURL), slog.String("text", fallback), slog.Int("block_count", len(blocks)))
	return nil
}

func (c *NoopClient) UserAvatarURL(_ context.Context, userID string) (string, error) {
	c.logger.Info("noop slack avatar lookup", slog.String("user_id", userID))
	return "", nil
}
