// Package workspacehdl - Handler cho domain workspace.
package workspacehdl

import (
	"context"
	"fmt"

	basehdl "slack_deals/internal/api/base/handler"
	wsdto "slack_deals/internal/api/workspace/dto"
	wsmodels "slack_deals/internal/api/workspace/models"
	workspacesvc "slack_deals/internal/api/workspace/service"

	"github.com/gofiber/fiber/v3"
)

// WorkspaceHandler xử lý các yêu cầu liên quan đến workspace Slack.
type WorkspaceHandler struct {
	*basehdl.BaseHandler[wsmodels.Workspace, wsdto.WorkspaceCreateInput, wsdto.WorkspaceUpdateInput]
	WorkspaceService *workspacesvc.WorkspaceService
}

// NewWorkspaceHandler khởi tạo WorkspaceHandler mới.
func NewWorkspaceHandler() (*WorkspaceHandler, error) {
	service, err := workspacesvc.NewWorkspaceService()
	if err != nil {
		return nil, fmt.Errorf("tạo WorkspaceService: %w", err)
	}
	hdl := &WorkspaceHandler{WorkspaceService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[wsmodels.Workspace, wsdto.WorkspaceCreateInput, wsdto.WorkspaceUpdateInput](service)
	return hdl, nil
}

// HandleInstall xử lý POST /workspaces/install — upsert workspace với credential
// do OAuth handshake bên ngoài tạo ra.
func (h *WorkspaceHandler) HandleInstall(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(wsdto.WorkspaceInstallInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		data, err := h.WorkspaceService.Install(context.Background(), input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleFindByTeamId xử lý GET /workspaces/by-team/:teamId.
func (h *WorkspaceHandler) HandleFindByTeamId(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		teamId := c.Params("teamId")
		data, err := h.WorkspaceService.FindByTeamId(context.Background(), teamId)
		h.HandleResponse(c, data, err)
		return nil
	})
}
