// Package dto - DTO cho domain template.
package dto

// TemplateCreateInput input tạo template (naming hoặc message).
type TemplateCreateInput struct {
	WorkspaceID string   `json:"workspaceId" validate:"required" transform:"str2objectid,map=WorkspaceID"`
	Name        string   `json:"name" validate:"required,no_xss"`
	Type        string   `json:"type" validate:"required,oneof=naming message"`
	Template    string   `json:"template" validate:"required"`
	Variables   []string `json:"variables,omitempty"`
	IsDefault   bool     `json:"isDefault"`
	Description string   `json:"description,omitempty" validate:"omitempty,no_xss"`
}

// TemplateUpdateInput input cập nhật template.
type TemplateUpdateInput struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,no_xss"`
	Template    string   `json:"template,omitempty"`
	Variables   []string `json:"variables,omitempty"`
	IsDefault   *bool    `json:"isDefault,omitempty"`
	Description string   `json:"description,omitempty" validate:"omitempty,no_xss"`
}
