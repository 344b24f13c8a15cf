package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// WithRequest tạo log entry gắn với thông tin request hiện tại
func WithRequest(c fiber.Ctx) *logrus.Entry {
	requestID, _ := c.Locals("requestid").(string)
	if requestID == "" {
		requestID = c.Get("X-Request-ID")
	}

	return GetAppLogger().WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     c.Method(),
		"path":       c.Path(),
		"ip":         c.IP(),
	})
}
