// Package models - Configuration thuộc domain workspace (configurations).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Configuration lưu 1 cặp key/value cấu hình của workspace (configurations).
// Key chưa có trong collection thì dùng giá trị mặc định khi đọc settings.
type Configuration struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	WorkspaceID primitive.ObjectID `json:"workspaceId" bson:"workspaceId" validate:"required"`
	Key         string             `json:"key" bson:"key" validate:"required"`
	Value       interface{}        `json:"value" bson:"value"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
