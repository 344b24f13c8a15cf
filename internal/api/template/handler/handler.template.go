// Package templatehdl - Handler cho domain template: naming + message template.
package templatehdl

import (
	"context"
	"fmt"

	basehdl "slack_deals/internal/api/base/handler"
	templatedto "slack_deals/internal/api/template/dto"
	templatemodels "slack_deals/internal/api/template/models"
	templatesvc "slack_deals/internal/api/template/service"
	"slack_deals/internal/common"
	"slack_deals/internal/naming"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateHandler xử lý các yêu cầu liên quan đến template.
type TemplateHandler struct {
	*basehdl.BaseHandler[templatemodels.Template, templatedto.TemplateCreateInput, templatedto.TemplateUpdateInput]
	TemplateService *templatesvc.TemplateService
}

// NewTemplateHandler khởi tạo TemplateHandler mới.
func NewTemplateHandler() (*TemplateHandler, error) {
	service, err := templatesvc.NewTemplateService()
	if err != nil {
		return nil, fmt.Errorf("tạo TemplateService: %w", err)
	}
	hdl := &TemplateHandler{TemplateService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[templatemodels.Template, templatedto.TemplateCreateInput, templatedto.TemplateUpdateInput](service)
	return hdl, nil
}

// queryWorkspaceID đọc workspaceId từ query param. Trả về NilObjectID khi vắng mặt.
func queryWorkspaceID(c fiber.Ctx) (primitive.ObjectID, error) {
	raw := c.Query("workspaceId")
	if raw == "" {
		return primitive.NilObjectID, nil
	}
	if !primitive.IsValidObjectID(raw) {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationInput, "workspaceId không hợp lệ", common.StatusBadRequest, nil)
	}
	return primitive.ObjectIDFromHex(raw)
}

// HandleListNamingTemplates xử lý GET /templates/naming?workspaceId=...
// Không truyền workspaceId hoặc workspace chưa có template thì trả về bộ dựng sẵn.
func (h *TemplateHandler) HandleListNamingTemplates(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		workspaceID, err := queryWorkspaceID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if workspaceID.IsZero() {
			builtin := templatesvc.BuiltinAsModels(naming.BuiltinNamingTemplates(), templatemodels.TemplateTypeNaming)
			h.HandleResponse(c, builtin, nil)
			return nil
		}
		templates, err := h.TemplateService.ListWithBuiltinFallback(context.Background(), workspaceID, templatemodels.TemplateTypeNaming)
		h.HandleResponse(c, templates, err)
		return nil
	})
}

// HandleListMessageTemplates xử lý GET /templates/message/:workspaceId.
func (h *TemplateHandler) HandleListMessageTemplates(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		raw := c.Params("workspaceId")
		if !primitive.IsValidObjectID(raw) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "workspaceId không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		workspaceID, _ := primitive.ObjectIDFromHex(raw)
		templates, err := h.TemplateService.ListWithBuiltinFallback(context.Background(), workspaceID, templatemodels.TemplateTypeMessage)
		h.HandleResponse(c, templates, err)
		return nil
	})
}

// HandleCreateTemplate xử lý POST /templates — tạo naming/message template,
// clear cờ default cũ khi isDefault=true.
func (h *TemplateHandler) HandleCreateTemplate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(templatedto.TemplateCreateInput)
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

		template, err := h.TemplateService.CreateTemplate(context.Background(), input, workspaceID)
		h.HandleResponse(c, template, err)
		return nil
	})
}

// HandleSetDefault xử lý PUT /templates/:id/default?workspaceId=...
func (h *TemplateHandler) HandleSetDefault(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		raw := h.GetIDFromContext(c)
		if !primitive.IsValidObjectID(raw) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "ID không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		id, _ := primitive.ObjectIDFromHex(raw)

		workspaceID, err := queryWorkspaceID(c)
		if err != nil || workspaceID.IsZero() {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Thiếu workspaceId", common.StatusBadRequest, nil))
			return nil
		}

		template, err := h.TemplateService.SetDefault(context.Background(), id, workspaceID)
		h.HandleResponse(c, template, err)
		return nil
	})
}
