// Package router đăng ký các route thuộc domain template.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"slack_deals/internal/api/middleware"
	apirouter "slack_deals/internal/api/router"
	templatehdl "slack_deals/internal/api/template/handler"
)

// Register đăng ký tất cả route template lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	templateHandler, err := templatehdl.NewTemplateHandler()
	if err != nil {
		return fmt.Errorf("tạo TemplateHandler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	middlewares := []fiber.Handler{authMiddleware}

	// GET /templates/naming?workspaceId=... — fallback bộ dựng sẵn khi chưa có template
	apirouter.RegisterRouteWithMiddleware(v1, "/templates", "GET", "/naming", middlewares, templateHandler.HandleListNamingTemplates)

	// GET /templates/message/:workspaceId
	apirouter.RegisterRouteWithMiddleware(v1, "/templates", "GET", "/message/:workspaceId", middlewares, templateHandler.HandleListMessageTemplates)

	// POST /templates — tạo template, clear default cũ khi isDefault=true
	apirouter.RegisterRouteWithMiddleware(v1, "/templates", "POST", "", middlewares, templateHandler.HandleCreateTemplate)

	// PUT /templates/:id/default?workspaceId=...
	apirouter.RegisterRouteWithMiddleware(v1, "/templates", "PUT", "/:id/default", middlewares, templateHandler.HandleSetDefault)

	// CRUD chung cho templates
	r.RegisterCRUDRoutes(v1, "/templates", templateHandler, apirouter.FullCRUDConfig)

	return nil
}
