// Package models - Workspace thuộc domain workspace (workspaces).
// Mỗi workspace là 1 tenant: giữ credential Slack (bot token) và cấu hình riêng.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workspace lưu thông tin cài đặt Slack app vào một workspace (workspaces).
// Được ghi bởi install callback sau khi OAuth handshake hoàn tất ở ngoài hệ thống.
type Workspace struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	SlackTeamId   string `json:"slackTeamId" bson:"slackTeamId" validate:"required"` // Team ID từ Slack (T...)
	SlackTeamName string `json:"slackTeamName,omitempty" bson:"slackTeamName,omitempty"`
	AccessToken   string `json:"-" bson:"accessToken"` // Bot token (xoxb-...) — không trả về qua API
	BotUserId     string `json:"botUserId,omitempty" bson:"botUserId,omitempty"`
	InstalledBy   string `json:"installedBy,omitempty" bson:"installedBy,omitempty"` // Slack user id người cài đặt
	IsActive      bool   `json:"isActive" bson:"isActive"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
