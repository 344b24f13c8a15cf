// Package memberhdl - Handler cho domain member: danh sách, sync từ Slack, cờ default.
package memberhdl

import (
	"context"
	"fmt"

	basehdl "slack_deals/internal/api/base/handler"
	memberdto "slack_deals/internal/api/member/dto"
	membermodels "slack_deals/internal/api/member/models"
	membersvc "slack_deals/internal/api/member/service"
	workspacesvc "slack_deals/internal/api/workspace/service"
	"slack_deals/internal/common"
	"slack_deals/internal/global"
	"slack_deals/internal/logger"
	"slack_deals/internal/slack"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberHandler xử lý các yêu cầu liên quan đến thành viên workspace.
type MemberHandler struct {
	*basehdl.BaseHandler[membermodels.Member, memberdto.MemberCreateInput, memberdto.MemberUpdateInput]
	MemberService    *membersvc.MemberService
	WorkspaceService *workspacesvc.WorkspaceService
}

// NewMemberHandler khởi tạo MemberHandler mới.
func NewMemberHandler() (*MemberHandler, error) {
	memberService, err := membersvc.NewMemberService()
	if err != nil {
		return nil, fmt.Errorf("tạo MemberService: %w", err)
	}
	workspaceService, err := workspacesvc.NewWorkspaceService()
	if err != nil {
		return nil, fmt.Errorf("tạo WorkspaceService: %w", err)
	}
	hdl := &MemberHandler{
		MemberService:    memberService,
		WorkspaceService: workspaceService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[membermodels.Member, memberdto.MemberCreateInput, memberdto.MemberUpdateInput](memberService)
	return hdl, nil
}

// parseWorkspaceID đọc workspaceId từ path param.
func parseWorkspaceID(c fiber.Ctx) (primitive.ObjectID, error) {
	raw := c.Params("workspaceId")
	if !primitive.IsValidObjectID(raw) {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationInput, "workspaceId không hợp lệ", common.StatusBadRequest, nil)
	}
	return primitive.ObjectIDFromHex(raw)
}

// HandleListMembers xử lý GET /members/:workspaceId — danh sách member của workspace.
// Query sync=true thì gọi Slack users.list để đồng bộ trước khi trả về.
func (h *MemberHandler) HandleListMembers(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		workspaceID, err := parseWorkspaceID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if c.Query("sync") == "true" {
			if err := h.syncWorkspaceMembers(context.Background(), workspaceID); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
		}

		members, err := h.MemberService.ListByWorkspace(context.Background(), workspaceID)
		h.HandleResponse(c, members, err)
		return nil
	})
}

// syncWorkspaceMembers gọi Slack users.list bằng token của workspace rồi upsert vào members.
func (h *MemberHandler) syncWorkspaceMembers(ctx context.Context, workspaceID primitive.ObjectID) error {
	workspace, err := h.WorkspaceService.FindOneById(ctx, workspaceID)
	if err != nil {
		return err
	}

	client := slack.NewClientWithBaseURL(workspace.AccessToken, global.MongoDB_ServerConfig.SlackAPIBaseURL)
	users, err := client.ListUsers(ctx)
	if err != nil {
		return common.NewError(common.ErrCodeExternalService, "Lỗi lấy danh sách user từ Slack", common.StatusBadGateway, err.Error())
	}

	synced, err := h.MemberService.SyncFromSlack(ctx, workspaceID, users)
	if err != nil {
		return err
	}
	logger.GetAppLogger().WithFields(map[string]interface{}{
		"workspaceId": workspaceID.Hex(),
		"synced":      synced,
	}).Info("👥 [MEMBER] Đồng bộ member từ Slack xong")
	return nil
}

// HandleListDefaultMembers xử lý GET /members/default/:workspaceId.
func (h *MemberHandler) HandleListDefaultMembers(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		workspaceID, err := parseWorkspaceID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		members, err := h.MemberService.FindDefaultMembers(context.Background(), workspaceID)
		h.HandleResponse(c, members, err)
		return nil
	})
}

// HandleSetDefault xử lý PUT /members/:id/default — bật/tắt cờ default member.
func (h *MemberHandler) HandleSetDefault(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		raw := h.GetIDFromContext(c)
		if !primitive.IsValidObjectID(raw) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "ID không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		memberID, _ := primitive.ObjectIDFromHex(raw)

		input := new(memberdto.MemberSetDefaultInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		member, err := h.MemberService.SetDefaultFlag(context.Background(), memberID, input.IsDefault)
		h.HandleResponse(c, member, err)
		return nil
	})
}

// HandleBulkDefault xử lý POST /members/bulk-default — đặt cờ default cho nhiều member.
func (h *MemberHandler) HandleBulkDefault(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(memberdto.MemberBulkDefaultInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if !primitive.IsValidObjectID(input.WorkspaceID) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "workspaceId không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		workspaceID, _ := primitive.ObjectIDFromHex(input.WorkspaceID)

		members, err := h.MemberService.BulkSetDefaultFlag(context.Background(), workspaceID, input.MemberIds, input.IsDefault)
		h.HandleResponse(c, members, err)
		return nil
	})
}
