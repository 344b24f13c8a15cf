// Package dto - DTO cho domain workspace.
package dto

// WorkspaceCreateInput input tạo workspace qua CRUD route.
type WorkspaceCreateInput struct {
	SlackTeamId   string `json:"slackTeamId" validate:"required,no_xss"`
	SlackTeamName string `json:"slackTeamName,omitempty" validate:"omitempty,no_xss"`
	AccessToken   string `json:"accessToken" validate:"required"`
	BotUserId     string `json:"botUserId,omitempty"`
	InstalledBy   string `json:"installedBy,omitempty"`
	IsActive      bool   `json:"isActive"`
}

// WorkspaceUpdateInput input cập nhật workspace.
type WorkspaceUpdateInput struct {
	SlackTeamName string `json:"slackTeamName,omitempty" validate:"omitempty,no_xss"`
	AccessToken   string `json:"accessToken,omitempty"`
	BotUserId     string `json:"botUserId,omitempty"`
	IsActive      *bool  `json:"isActive,omitempty"`
}

// WorkspaceInstallInput input từ install callback — credential do OAuth handshake
// bên ngoài tạo ra, ở đây chỉ upsert theo slackTeamId.
type WorkspaceInstallInput struct {
	SlackTeamId   string `json:"slackTeamId" validate:"required,no_xss"`
	SlackTeamName string `json:"slackTeamName,omitempty" validate:"omitempty,no_xss"`
	AccessToken   string `json:"accessToken" validate:"required"`
	BotUserId     string `json:"botUserId,omitempty"`
	InstalledBy   string `json:"installedBy,omitempty"`
}

// SettingsUpdateInput input cập nhật settings: map key -> value, upsert từng key.
type SettingsUpdateInput map[string]interface{}
