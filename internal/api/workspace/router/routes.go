// Package router đăng ký các route thuộc domain workspace: install, settings, CRUD.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"slack_deals/internal/api/middleware"
	apirouter "slack_deals/internal/api/router"
	workspacehdl "slack_deals/internal/api/workspace/handler"
)

// Register đăng ký tất cả route workspace lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	workspaceHandler, err := workspacehdl.NewWorkspaceHandler()
	if err != nil {
		return fmt.Errorf("tạo WorkspaceHandler: %w", err)
	}
	settingsHandler, err := workspacehdl.NewSettingsHandler()
	if err != nil {
		return fmt.Errorf("tạo SettingsHandler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	middlewares := []fiber.Handler{authMiddleware}

	// POST /workspaces/install — upsert workspace với credential từ OAuth callback
	apirouter.RegisterRouteWithMiddleware(v1, "/workspaces", "POST", "/install", middlewares, workspaceHandler.HandleInstall)

	// GET /workspaces/by-team/:teamId
	apirouter.RegisterRouteWithMiddleware(v1, "/workspaces", "GET", "/by-team/:teamId", middlewares, workspaceHandler.HandleFindByTeamId)

	// GET /settings/:workspaceId — settings đã merge với mặc định
	apirouter.RegisterRouteWithMiddleware(v1, "/settings", "GET", "/:workspaceId", middlewares, settingsHandler.HandleGetSettings)
	// PUT /settings/:workspaceId — upsert từng key
	apirouter.RegisterRouteWithMiddleware(v1, "/settings", "PUT", "/:workspaceId", middlewares, settingsHandler.HandlePutSettings)

	// CRUD chung cho workspaces
	r.RegisterCRUDRoutes(v1, "/workspaces", workspaceHandler, apirouter.FullCRUDConfig)

	return nil
}
