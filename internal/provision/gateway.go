package provision

import (
	"context"

	"slack_deals/internal/slack"
)

// Gateway các thao tác Slack mà pipeline cần. Interface để provisioner test được
// với fake gateway; *slack.Client là implementation thật.
type Gateway interface {
	CreateChannel(ctx context.Context, name string, isPrivate bool) (*slack.Channel, error)
	InviteMembers(ctx context.Context, channelID string, userIDs []string) error
	PostMessage(ctx context.Context, channelID string, text string) error
	SetTopic(ctx context.Context, channelID string, topic string) error
	ListChannels(ctx context.Context, excludeArchived bool) ([]slack.Channel, error)
	ArchiveChannel(ctx context.Context, channelID string) error
}

// GatewayFactory tạo Gateway từ bot token của workspace. Mỗi workspace 1 credential
// riêng nên gateway được tạo theo từng request, không giữ singleton.
type GatewayFactory func(token string) Gateway

var _ Gateway = (*slack.Client)(nil)
