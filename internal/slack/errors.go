// Package slack - Adapter gọi Slack Web API, chuẩn hóa operations và error vocabulary
// của platform thành typed errors để tầng orchestrate phân nhánh bằng errors.Is/As
// thay vì soi payload lồng nhau.
package slack

import (
	"errors"
	"fmt"
)

// Các conflict có thể phục hồi — caller tự xử lý, không coi là lỗi hệ thống.
var (
	// ErrNameTaken tên channel đã tồn tại trong workspace.
	ErrNameTaken = errors.New("slack: channel name already taken")
	// ErrAlreadyInChannel user đã ở trong channel (invite idempotent).
	ErrAlreadyInChannel = errors.New("slack: user already in channel")
)

// APIError lỗi không phục hồi được từ Slack API, giữ nguyên status và error code
// của platform để trả về cho caller.
type APIError struct {
	StatusCode int    // HTTP status từ Slack (200 khi lỗi nằm trong body)
	Code       string // Error code của Slack, ví dụ "channel_not_found"
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack: API error %q (status %d)", e.Code, e.StatusCode)
}

// normalizeError map error code của Slack thành typed error.
func normalizeError(statusCode int, code string) error {
	switch code {
	case "name_taken":
		return ErrNameTaken
	case "already_in_channel":
		return ErrAlreadyInChannel
	default:
		return &APIError{StatusCode: statusCode, Code: code}
	}
}
