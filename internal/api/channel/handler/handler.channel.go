// Package channelhdl - Handler cho domain channel: provision deal channel,
// preview tên, danh sách kèm members, archive.
package channelhdl

import (
	"context"
	"fmt"
	"time"

	basehdl "slack_deals/internal/api/base/handler"
	channeldto "slack_deals/internal/api/channel/dto"
	channelmodels "slack_deals/internal/api/channel/models"
	channelsvc "slack_deals/internal/api/channel/service"
	workspacesvc "slack_deals/internal/api/workspace/service"
	"slack_deals/internal/common"
	"slack_deals/internal/global"
	"slack_deals/internal/naming"
	"slack_deals/internal/provision"
	"slack_deals/internal/slack"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChannelHandler xử lý các yêu cầu liên quan đến deal channel.
type ChannelHandler struct {
	*basehdl.BaseHandler[channelmodels.Channel, channeldto.ChannelCreateInput, channeldto.ChannelUpdateInput]
	ChannelService   *channelsvc.ChannelService
	WorkspaceService *workspacesvc.WorkspaceService
	Provisioner      *provision.Provisioner
}

// newSlackGateway tạo Gateway Slack từ bot token của workspace.
func newSlackGateway(token string) provision.Gateway {
	return slack.NewClientWithBaseURL(token, global.MongoDB_ServerConfig.SlackAPIBaseURL)
}

// NewChannelHandler khởi tạo ChannelHandler mới cùng toàn bộ pipeline provision.
func NewChannelHandler() (*ChannelHandler, error) {
	channelService, err := channelsvc.NewChannelService()
	if err != nil {
		return nil, fmt.Errorf("tạo ChannelService: %w", err)
	}
	workspaceService, err := workspacesvc.NewWorkspaceService()
	if err != nil {
		return nil, fmt.Errorf("tạo WorkspaceService: %w", err)
	}
	repo, err := provision.NewMongoRepository()
	if err != nil {
		return nil, fmt.Errorf("tạo provision repository: %w", err)
	}

	hdl := &ChannelHandler{
		ChannelService:   channelService,
		WorkspaceService: workspaceService,
		Provisioner:      provision.NewProvisioner(repo, newSlackGateway, time.Now),
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[channelmodels.Channel, channeldto.ChannelCreateInput, channeldto.ChannelUpdateInput](channelService)
	return hdl, nil
}

// HandleCreateChannel xử lý POST /channels/create — chạy pipeline provision:
// validate, resolve tên từ template, tạo channel trên Slack, lưu record,
// mời members và đăng tin nhắn chào.
func (h *ChannelHandler) HandleCreateChannel(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		req := new(channeldto.ChannelCreateRequest)
		if err := h.ParseRequestBody(c, req); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		createdBy, _ := c.Locals("caller_id").(string)
		result, err := h.Provisioner.Provision(context.Background(), req, createdBy)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandlePreviewName xử lý GET /channels/preview-name — resolve template với dữ liệu
// deal từ query rồi trả về tên kèm kết quả validate, không tạo gì cả.
func (h *ChannelHandler) HandlePreviewName(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		query := new(channeldto.PreviewNameQuery)
		if err := c.Bind().Query(query); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Query không hợp lệ", common.StatusBadRequest, err.Error()))
			return nil
		}
		if query.Template == "" {
			query.Template = naming.DefaultNamingPattern
		}

		vars := naming.Variables{
			ClientName: query.ClientName,
			DealName:   query.DealName,
			DealValue:  query.DealValue,
			DealOwner:  query.DealOwner,
			DealStage:  query.DealStage,
			DealType:   query.DealType,
			Region:     query.Region,
			Product:    query.Product,
			Priority:   query.Priority,
		}
		name := naming.Resolve(query.Template, vars, time.Now())
		validation := naming.Validate(name)

		h.HandleResponse(c, fiber.Map{
			"channelName": name,
			"isValid":     validation.IsValid,
			"errors":      validation.Violations,
		}, nil)
		return nil
	})
}

// HandleListChannels xử lý GET /channels?workspaceId=... — danh sách channel
// đã provision của workspace kèm members đã liên kết.
func (h *ChannelHandler) HandleListChannels(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		raw := c.Query("workspaceId")
		if !primitive.IsValidObjectID(raw) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "workspaceId không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		workspaceID, _ := primitive.ObjectIDFromHex(raw)

		channels, err := h.ChannelService.ListByWorkspace(context.Background(), workspaceID)
		h.HandleResponse(c, channels, err)
		return nil
	})
}

// HandleArchiveChannel xử lý POST /channels/:id/archive — archive channel trên
// Slack rồi đánh dấu record isArchived.
func (h *ChannelHandler) HandleArchiveChannel(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		raw := h.GetIDFromContext(c)
		if !primitive.IsValidObjectID(raw) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "ID không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		channelID, _ := primitive.ObjectIDFromHex(raw)
		ctx := context.Background()

		channel, err := h.ChannelService.FindOneById(ctx, channelID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		workspace, err := h.WorkspaceService.FindOneById(ctx, channel.WorkspaceID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		gateway := newSlackGateway(workspace.AccessToken)
		if err := gateway.ArchiveChannel(ctx, channel.SlackChannelId); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeExternalService, "Lỗi archive channel trên Slack", common.StatusBadGateway, err.Error()))
			return nil
		}

		archived, err := h.ChannelService.MarkArchived(ctx, channelID)
		h.HandleResponse(c, archived, err)
		return nil
	})
}
