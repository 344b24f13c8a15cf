package slack

// Channel channel trả về từ Slack API (conversations.*).
type Channel struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsArchived bool   `json:"is_archived"`
	IsPrivate  bool   `json:"is_private"`
}

// UserProfile profile của user Slack (users.list / users.info).
type UserProfile struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	RealName    string `json:"real_name"`
}

// User user Slack.
type User struct {
	ID      string      `json:"id"`
	Deleted bool        `json:"deleted"`
	IsBot   bool        `json:"is_bot"`
	Profile UserProfile `json:"profile"`
}

// apiResponse envelope chung của mọi Slack API response.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`

	Channel  *Channel  `json:"channel,omitempty"`
	Channels []Channel `json:"channels,omitempty"`
	Members  []User    `json:"members,omitempty"`
	User     *User     `json:"user,omitempty"`
}
