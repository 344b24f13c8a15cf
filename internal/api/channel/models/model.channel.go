// Package models - Channel thuộc domain channel (channels).
// Bản ghi local của deal channel đã tạo trên Slack. Tạo 1 lần lúc provision,
// sau đó chỉ mutate bởi thao tác archive.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Channel lưu 1 deal channel đã provision (channels).
type Channel struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	WorkspaceID      primitive.ObjectID `json:"workspaceId" bson:"workspaceId" validate:"required"`
	SlackChannelId   string             `json:"slackChannelId" bson:"slackChannelId" validate:"required"` // Channel ID từ Slack (C...)
	SlackChannelName string             `json:"slackChannelName" bson:"slackChannelName" validate:"required"`

	// Thuộc tính deal
	DealId       string                 `json:"dealId,omitempty" bson:"dealId,omitempty"`
	DealName     string                 `json:"dealName" bson:"dealName"`
	ClientName   string                 `json:"clientName" bson:"clientName"`
	DealValue    *float64               `json:"dealValue,omitempty" bson:"dealValue,omitempty"`
	DealOwner    string                 `json:"dealOwner,omitempty" bson:"dealOwner,omitempty"`
	DealStage    string                 `json:"dealStage,omitempty" bson:"dealStage,omitempty"`
	SalesforceId string                 `json:"salesforceId,omitempty" bson:"salesforceId,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`

	CreatedBy  string `json:"createdBy,omitempty" bson:"createdBy,omitempty"` // Caller id từ token, "system" khi không có
	IsArchived bool   `json:"isArchived" bson:"isArchived"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
