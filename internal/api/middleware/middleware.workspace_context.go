package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"slack_deals/internal/global"
)

// WorkspaceContextMiddleware middleware để quản lý workspace context.
// - Đọc X-Workspace-ID (ObjectID) hoặc X-Team-ID (Slack team ID) từ header
// - Validate workspace tồn tại trong database
// - Lưu workspace_id và team_id vào context để các handler scope dữ liệu
func WorkspaceContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		collection, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Workspaces)
		if !exists {
			// Registry chưa sẵn sàng, cho phép tiếp tục không có workspace context
			return c.Next()
		}

		// Ưu tiên X-Workspace-ID (ObjectID nội bộ)
		workspaceIDStr := c.Get("X-Workspace-ID")
		if workspaceIDStr != "" {
			workspaceID, err := primitive.ObjectIDFromHex(workspaceIDStr)
			if err == nil {
				var doc bson.M
				err = collection.FindOne(context.Background(), bson.M{"_id": workspaceID}).Decode(&doc)
				if err == nil {
					c.Locals("workspace_id", workspaceID.Hex())
					if teamID, ok := doc["slackTeamId"].(string); ok {
						c.Locals("team_id", teamID)
					}
					return c.Next()
				}
			}
			// Workspace ID không hợp lệ hoặc không tồn tại, thử tiếp X-Team-ID
		}

		// Fallback: X-Team-ID (Slack team ID, ví dụ T0123456789)
		teamID := c.Get("X-Team-ID")
		if teamID != "" {
			var doc bson.M
			err := collection.FindOne(context.Background(), bson.M{"slackTeamId": teamID}).Decode(&doc)
			if err == nil {
				if id, ok := doc["_id"].(primitive.ObjectID); ok {
					c.Locals("workspace_id", id.Hex())
					c.Locals("team_id", teamID)
				}
			}
		}

		// Không có header hoặc không tìm thấy workspace: cho phép tiếp tục,
		// handler tự quyết định có yêu cầu workspace context hay không
		return c.Next()
	}
}
