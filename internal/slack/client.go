package slack

import (
	"context"

	slackapi "github.com/slack-go/slack"
)

type Client interface {
	SendDirectMessage(ctx context.Context, userID, fallback string, blocks []slackapi.Block) error
	PostChannelMessage(ctx context.Context, channelID, fallback string, blocks []slackapi.Block) error
	RespondWithReplacement(ctx context.Context, responseURL, fallback string, blocks []slackapi.Block) error
	UserAvatarURL(ctx context.Context, userID string) (string, error)
}
