// Package router đăng ký các route thuộc domain channel.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	channelhdl "slack_deals/internal/api/channel/handler"
	"slack_deals/internal/api/middleware"
	apirouter "slack_deals/internal/api/router"
)

// Register đăng ký tất cả route channel lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	channelHandler, err := channelhdl.NewChannelHandler()
	if err != nil {
		return fmt.Errorf("tạo ChannelHandler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	middlewares := []fiber.Handler{authMiddleware}

	// POST /channels/create — provision deal channel (pipeline đầy đủ)
	apirouter.RegisterRouteWithMiddleware(v1, "/channels", "POST", "/create", middlewares, channelHandler.HandleCreateChannel)

	// GET /channels/preview-name — xem trước tên channel từ template
	apirouter.RegisterRouteWithMiddleware(v1, "/channels", "GET", "/preview-name", middlewares, channelHandler.HandlePreviewName)

	// GET /channels?workspaceId=... — danh sách channel kèm members
	apirouter.RegisterRouteWithMiddleware(v1, "/channels", "GET", "", middlewares, channelHandler.HandleListChannels)

	// POST /channels/:id/archive — archive trên Slack rồi đánh dấu record
	apirouter.RegisterRouteWithMiddleware(v1, "/channels", "POST", "/:id/archive", middlewares, channelHandler.HandleArchiveChannel)

	// CRUD chung cho channels
	r.RegisterCRUDRoutes(v1, "/channels", channelHandler, apirouter.FullCRUDConfig)

	return nil
}
