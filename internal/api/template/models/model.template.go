// Package models - Template thuộc domain template (templates).
// Gồm naming template (sinh tên channel) và message template (tin nhắn chào).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loại template.
const (
	TemplateTypeNaming  = "naming"
	TemplateTypeMessage = "message"
)

// Template lưu 1 template của workspace (templates).
// Mỗi (workspace, type) có tối đa 1 template isDefault=true — service chịu trách
// nhiệm clear cờ default cũ khi đặt default mới.
type Template struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	WorkspaceID primitive.ObjectID `json:"workspaceId" bson:"workspaceId" validate:"required"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Type        string             `json:"type" bson:"type" validate:"required,oneof=naming message"`
	Template    string             `json:"template" bson:"template" validate:"required"`
	Variables   []string           `json:"variables" bson:"variables"`
	IsDefault   bool               `json:"isDefault" bson:"isDefault"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`

	// IsSystem đánh dấu template builtin được seed lúc init — không sửa/xóa qua API.
	IsSystem bool `json:"isSystem" bson:"isSystem"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
