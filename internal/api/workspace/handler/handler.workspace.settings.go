// Package workspacehdl - Handler settings theo workspace.
package workspacehdl

import (
	"context"
	"fmt"

	basehdl "slack_deals/internal/api/base/handler"
	workspacesvc "slack_deals/internal/api/workspace/service"
	"slack_deals/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SettingsHandler xử lý đọc/ghi settings key-value của workspace.
type SettingsHandler struct {
	ConfigService *workspacesvc.ConfigurationService
}

// NewSettingsHandler khởi tạo SettingsHandler mới.
func NewSettingsHandler() (*SettingsHandler, error) {
	service, err := workspacesvc.NewConfigurationService()
	if err != nil {
		return nil, fmt.Errorf("tạo ConfigurationService: %w", err)
	}
	return &SettingsHandler{ConfigService: service}, nil
}

// parseWorkspaceID đọc workspaceId từ path param.
func parseWorkspaceID(c fiber.Ctx) (primitive.ObjectID, error) {
	raw := c.Params("workspaceId")
	if !primitive.IsValidObjectID(raw) {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationInput, "workspaceId không hợp lệ", common.StatusBadRequest, nil)
	}
	return primitive.ObjectIDFromHex(raw)
}

// HandleGetSettings xử lý GET /settings/:workspaceId — trả về settings đã merge
// với giá trị mặc định.
func (h *SettingsHandler) HandleGetSettings(c fiber.Ctx) error {
	workspaceID, err := parseWorkspaceID(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	settings, err := h.ConfigService.GetSettings(context.Background(), workspaceID)
	basehdl.HandleResponse(c, settings, err)
	return nil
}

// HandlePutSettings xử lý PUT /settings/:workspaceId — upsert từng key trong body.
func (h *SettingsHandler) HandlePutSettings(c fiber.Ctx) error {
	workspaceID, err := parseWorkspaceID(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	var input map[string]interface{}
	if err := c.Bind().Body(&input); err != nil {
		basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Dữ liệu gửi lên không đúng định dạng JSON", common.StatusBadRequest, nil))
		return nil
	}
	if len(input) == 0 {
		basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Body không được để trống", common.StatusBadRequest, nil))
		return nil
	}
	settings, err := h.ConfigService.PutSettings(context.Background(), workspaceID, input)
	basehdl.HandleResponse(c, settings, err)
	return nil
}
