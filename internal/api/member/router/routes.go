// Package router đăng ký các route thuộc domain member.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	memberhdl "slack_deals/internal/api/member/handler"
	"slack_deals/internal/api/middleware"
	apirouter "slack_deals/internal/api/router"
)

// Register đăng ký tất cả route member lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	memberHandler, err := memberhdl.NewMemberHandler()
	if err != nil {
		return fmt.Errorf("tạo MemberHandler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	middlewares := []fiber.Handler{authMiddleware}

	// POST /members/bulk-default — đặt cờ default cho nhiều member
	// Đăng ký trước các route có param để không bị nuốt bởi /:workspaceId
	apirouter.RegisterRouteWithMiddleware(v1, "/members", "POST", "/bulk-default", middlewares, memberHandler.HandleBulkDefault)

	// GET /members/default/:workspaceId — danh sách default member
	apirouter.RegisterRouteWithMiddleware(v1, "/members", "GET", "/default/:workspaceId", middlewares, memberHandler.HandleListDefaultMembers)

	// GET /members/:workspaceId — danh sách member, ?sync=true để đồng bộ từ Slack
	apirouter.RegisterRouteWithMiddleware(v1, "/members", "GET", "/:workspaceId", middlewares, memberHandler.HandleListMembers)

	// PUT /members/:id/default — bật/tắt cờ default member
	apirouter.RegisterRouteWithMiddleware(v1, "/members", "PUT", "/:id/default", middlewares, memberHandler.HandleSetDefault)

	// CRUD chung cho members
	r.RegisterCRUDRoutes(v1, "/members", memberHandler, apirouter.FullCRUDConfig)

	return nil
}
