// Package models - Member thuộc domain member (members).
// Thành viên Slack của workspace, sync định kỳ từ users.list.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member lưu 1 user Slack trong workspace (members). Vòng đời độc lập với channel:
// liên kết channel-member nằm ở collection channel_members.
type Member struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	WorkspaceID primitive.ObjectID `json:"workspaceId" bson:"workspaceId" validate:"required"`
	SlackUserId string             `json:"slackUserId" bson:"slackUserId" validate:"required"` // User ID từ Slack (U...)
	Email       string             `json:"email,omitempty" bson:"email,omitempty"`
	DisplayName string             `json:"displayName,omitempty" bson:"displayName,omitempty"`
	RealName    string             `json:"realName,omitempty" bson:"realName,omitempty"`
	Role        string             `json:"role,omitempty" bson:"role,omitempty"`

	IsDefaultMember bool `json:"isDefaultMember" bson:"isDefaultMember"` // Tự động mời vào mọi channel mới
	IsActive        bool `json:"isActive" bson:"isActive"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
