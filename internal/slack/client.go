package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"slack_deals/internal/logger"
)

// DefaultBaseURL base URL mặc định của Slack Web API.
const DefaultBaseURL = "https://slack.com/api"

// slackbotUserID user id cố định của Slackbot — luôn loại khỏi danh sách member.
const slackbotUserID = "USLACKBOT"

// gatewayNamePattern ký tự không hợp lệ khi gửi tên channel lên Slack.
// Chặt hơn sanitize của naming engine: underscore cũng bị thay bằng "-".
var gatewayNamePattern = regexp.MustCompile(`[^a-z0-9-]`)

// Client gọi Slack Web API bằng bot token của một workspace.
// Mỗi call 1 lần duy nhất (không retry), timeout 10 giây.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient tạo client với base URL mặc định của Slack.
func NewClient(token string) *Client {
	return NewClientWithBaseURL(token, DefaultBaseURL)
}

// NewClientWithBaseURL tạo client với base URL tùy chỉnh (dùng khi test với httptest).
func NewClientWithBaseURL(token string, baseURL string) *Client {
	return &Client{
		token:      token,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// call gọi 1 method của Slack Web API với JSON payload, parse envelope chung
// và chuẩn hóa lỗi của platform thành typed error.
func (c *Client) call(ctx context.Context, method string, payload map[string]interface{}) (*apiResponse, error) {
	url := c.baseURL + "/" + method

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("slack: gọi %s thất bại: %w", method, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("slack: đọc response %s thất bại: %w", method, err)
	}

	var body apiResponse
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Code: "invalid_response"}
	}

	if !body.OK {
		return nil, normalizeError(resp.StatusCode, body.Error)
	}
	return &body, nil
}

// CreateChannel tạo channel mới trên Slack. Tên channel được sanitize thêm một lần
// ở boundary này (lowercase + thay ký tự ngoài [a-z0-9-] bằng "-"), độc lập với
// naming engine, vì Slack có charset riêng bất kể caller đã chuẩn hóa hay chưa.
// Trả về ErrNameTaken khi tên đã tồn tại để caller recover.
func (c *Client) CreateChannel(ctx context.Context, name string, isPrivate bool) (*Channel, error) {
	resp, err := c.call(ctx, "conversations.create", map[string]interface{}{
		"name":       GatewaySanitizeName(name),
		"is_private": isPrivate,
	})
	if err != nil {
		return nil, err
	}
	if resp.Channel == nil {
		return nil, &APIError{StatusCode: 200, Code: "invalid_response"}
	}
	return resp.Channel, nil
}

// InviteMembers mời danh sách user vào channel. User đã ở trong channel trả về
// ErrAlreadyInChannel — caller coi như thành công (membership idempotent).
func (c *Client) InviteMembers(ctx context.Context, channelID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	_, err := c.call(ctx, "conversations.invite", map[string]interface{}{
		"channel": channelID,
		"users":   strings.Join(userIDs, ","),
	})
	return err
}

// PostMessage đăng tin nhắn text vào channel.
func (c *Client) PostMessage(ctx context.Context, channelID string, text string) error {
	_, err := c.call(ctx, "chat.postMessage", map[string]interface{}{
		"channel": channelID,
		"text":    text,
	})
	return err
}

// SetTopic đặt topic cho channel. Best-effort: lỗi chỉ log, luôn trả về nil.
func (c *Client) SetTopic(ctx context.Context, channelID string, topic string) error {
	if _, err := c.call(ctx, "conversations.setTopic", map[string]interface{}{
		"channel": channelID,
		"topic":   topic,
	}); err != nil {
		logger.GetAppLogger().WithError(err).WithFields(map[string]interface{}{
			"channelId": channelID,
		}).Warn("💬 [SLACK] Lỗi đặt topic cho channel")
	}
	return nil
}

// SetPurpose đặt purpose cho channel. Best-effort như SetTopic.
func (c *Client) SetPurpose(ctx context.Context, channelID string, purpose string) error {
	if _, err := c.call(ctx, "conversations.setPurpose", map[string]interface{}{
		"channel": channelID,
		"purpose": purpose,
	}); err != nil {
		logger.GetAppLogger().WithError(err).WithFields(map[string]interface{}{
			"channelId": channelID,
		}).Warn("💬 [SLACK] Lỗi đặt purpose cho channel")
	}
	return nil
}

// ListUsers trả về danh sách user của workspace, loại bot và Slackbot.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := c.call(ctx, "users.list", map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	users := make([]User, 0, len(resp.Members))
	for _, u := range resp.Members {
		if u.IsBot || u.ID == slackbotUserID {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

// GetUserInfo trả về thông tin 1 user.
func (c *Client) GetUserInfo(ctx context.Context, userID string) (*User, error) {
	resp, err := c.call(ctx, "users.info", map[string]interface{}{
		"user": userID,
	})
	if err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &APIError{StatusCode: 200, Code: "invalid_response"}
	}
	return resp.User, nil
}

// ListChannels trả về danh sách channel (public + private) của workspace.
func (c *Client) ListChannels(ctx context.Context, excludeArchived bool) ([]Channel, error) {
	resp, err := c.call(ctx, "conversations.list", map[string]interface{}{
		"exclude_archived": excludeArchived,
		"types":            "public_channel,private_channel",
	})
	if err != nil {
		return nil, err
	}
	return resp.Channels, nil
}

// ArchiveChannel archive 1 channel trên Slack.
func (c *Client) ArchiveChannel(ctx context.Context, channelID string) error {
	_, err := c.call(ctx, "conversations.archive", map[string]interface{}{
		"channel": channelID,
	})
	return err
}

// GetChannelInfo trả về thông tin 1 channel.
func (c *Client) GetChannelInfo(ctx context.Context, channelID string) (*Channel, error) {
	resp, err := c.call(ctx, "conversations.info", map[string]interface{}{
		"channel": channelID,
	})
	if err != nil {
		return nil, err
	}
	if resp.Channel == nil {
		return nil, &APIError{StatusCode: 200, Code: "invalid_response"}
	}
	return resp.Channel, nil
}

// GatewaySanitizeName chuẩn hóa tên channel theo charset của Slack:
// lowercase, mọi ký tự ngoài [a-z0-9-] thay bằng "-".
func GatewaySanitizeName(name string) string {
	return gatewayNamePattern.ReplaceAllString(strings.ToLower(name), "-")
}
