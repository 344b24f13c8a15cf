// Package models - ChannelMember: liên kết nhiều-nhiều channel ↔ member (channel_members).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChannelMember lưu 1 liên kết channel - member (channel_members).
// Unique theo (channelId, memberId).
type ChannelMember struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	ChannelID primitive.ObjectID `json:"channelId" bson:"channelId" validate:"required"`
	MemberID  primitive.ObjectID `json:"memberId" bson:"memberId" validate:"required"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
