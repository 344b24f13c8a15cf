// Package dto - DTO cho domain channel.
package dto

// ChannelCreateRequest request provision deal channel (POST /channels/create).
// workspaceId, clientName, dealName bắt buộc; thiếu là validation error,
// không có side effect nào lên Slack.
type ChannelCreateRequest struct {
	WorkspaceID       string                 `json:"workspaceId" validate:"required"`
	ClientName        string                 `json:"clientName" validate:"required,no_xss"`
	DealName          string                 `json:"dealName" validate:"required,no_xss"`
	DealValue         *float64               `json:"dealValue,omitempty"`
	DealOwner         string                 `json:"dealOwner,omitempty" validate:"omitempty,no_xss"`
	DealStage         string                 `json:"dealStage,omitempty" validate:"omitempty,no_xss"`
	DealId            string                 `json:"dealId,omitempty"`
	SalesforceId      string                 `json:"salesforceId,omitempty"`
	TemplateId        string                 `json:"templateId,omitempty"`        // Dùng naming template cụ thể thay vì default
	CustomChannelName string                 `json:"customChannelName,omitempty"` // Override tên channel, bỏ qua template
	UserIds           []string               `json:"userIds,omitempty"`           // Slack user id mời thêm ngoài default members
	FirstMessage      string                 `json:"firstMessage,omitempty"`      // Override tin nhắn chào
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
}

// ChannelCreateInput input tạo channel record qua CRUD route (không provision).
type ChannelCreateInput struct {
	WorkspaceID      string                 `json:"workspaceId" validate:"required" transform:"str2objectid,map=WorkspaceID"`
	SlackChannelId   string                 `json:"slackChannelId" validate:"required"`
	SlackChannelName string                 `json:"slackChannelName" validate:"required,channel_name"`
	DealId           string                 `json:"dealId,omitempty"`
	DealName         string                 `json:"dealName" validate:"required,no_xss"`
	ClientName       string                 `json:"clientName" validate:"required,no_xss"`
	DealValue        *float64               `json:"dealValue,omitempty"`
	DealOwner        string                 `json:"dealOwner,omitempty"`
	DealStage        string                 `json:"dealStage,omitempty"`
	SalesforceId     string                 `json:"salesforceId,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
	CreatedBy        string                 `json:"createdBy,omitempty"`
}

// ChannelUpdateInput input cập nhật channel record.
type ChannelUpdateInput struct {
	DealOwner  string `json:"dealOwner,omitempty"`
	DealStage  string `json:"dealStage,omitempty"`
	IsArchived *bool  `json:"isArchived,omitempty"`
}

// PreviewNameQuery query preview tên channel từ template.
type PreviewNameQuery struct {
	Template   string   `query:"template"`
	ClientName string   `query:"clientName"`
	DealName   string   `query:"dealName"`
	DealValue  *float64 `query:"dealValue"`
	DealOwner  string   `query:"dealOwner"`
	DealStage  string   `query:"dealStage"`
	DealType   string   `query:"dealType"`
	Region     string   `query:"region"`
	Product    string   `query:"product"`
	Priority   string   `query:"priority"`
}
