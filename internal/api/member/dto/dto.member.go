// Package dto - DTO cho domain member.
package dto

// MemberCreateInput input tạo member qua CRUD route.
type MemberCreateInput struct {
	WorkspaceID     string `json:"workspaceId" validate:"required" transform:"str2objectid,map=WorkspaceID"`
	SlackUserId     string `json:"slackUserId" validate:"required,no_xss"`
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	DisplayName     string `json:"displayName,omitempty" validate:"omitempty,no_xss"`
	RealName        string `json:"realName,omitempty" validate:"omitempty,no_xss"`
	Role            string `json:"role,omitempty"`
	IsDefaultMember bool   `json:"isDefaultMember"`
	IsActive        bool   `json:"isActive"`
}

// MemberUpdateInput input cập nhật member.
type MemberUpdateInput struct {
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	DisplayName     string `json:"displayName,omitempty" validate:"omitempty,no_xss"`
	RealName        string `json:"realName,omitempty" validate:"omitempty,no_xss"`
	Role            string `json:"role,omitempty"`
	IsDefaultMember *bool  `json:"isDefaultMember,omitempty"`
	IsActive        *bool  `json:"isActive,omitempty"`
}

// MemberSetDefaultInput input bật/tắt cờ default member cho 1 member.
type MemberSetDefaultInput struct {
	IsDefault bool `json:"isDefault"`
}

// MemberBulkDefaultInput input bật/tắt cờ default member cho nhiều member cùng lúc.
type MemberBulkDefaultInput struct {
	WorkspaceID string   `json:"workspaceId" validate:"required"`
	MemberIds   []string `json:"memberIds" validate:"required,min=1"`
	IsDefault   bool     `json:"isDefault"`
}
