package naming

import (
	"strconv"
	"strings"
	"time"
)

// RenderMessage render message template thành nội dung tin nhắn đầu tiên của channel.
// Khác với Resolve: không sanitize (giữ nguyên markdown, emoji, xuống dòng) và
// format giá trị theo kiểu hiển thị cho người đọc.
func RenderMessage(template string, vars Variables, now time.Time) string {
	replacer := strings.NewReplacer(
		"{client}", fallback(vars.ClientName, "unknown"),
		"{deal}", fallback(vars.DealName, "deal"),
		"{value}", FormatValue(vars.DealValue),
		"{owner}", fallback(vars.DealOwner, "Unassigned"),
		"{stage}", fallback(vars.DealStage, "Initial"),
		"{date}", now.Format("1/2/2006"),
	)
	return replacer.Replace(template)
}

// FormatValue format giá trị deal dạng hiển thị: "$12,345" hoặc "TBD" khi chưa có.
func FormatValue(value *float64) string {
	if value == nil {
		return "TBD"
	}
	return "$" + groupThousands(int64(*value))
}

// DefaultWelcomeMessage tin nhắn chào mặc định khi workspace không có message
// template nào và request cũng không truyền firstMessage.
func DefaultWelcomeMessage(vars Variables, now time.Time) string {
	var b strings.Builder
	b.WriteString("🎯 *New Deal Channel Created*\n\n")
	b.WriteString("*Client:* " + fallback(vars.ClientName, "unknown") + "\n")
	b.WriteString("*Deal:* " + fallback(vars.DealName, "deal") + "\n")
	b.WriteString("*Value:* " + FormatValue(vars.DealValue) + "\n")
	b.WriteString("*Owner:* " + fallback(vars.DealOwner, "Unassigned") + "\n")
	b.WriteString("*Stage:* " + fallback(vars.DealStage, "Initial") + "\n")
	b.WriteString("*Created:* " + now.Format("1/2/2006") + "\n\n")
	b.WriteString("Welcome to the deal channel! Use this space to collaborate on all aspects of this opportunity.")
	return b.String()
}

// groupThousands chèn dấu phẩy ngăn cách hàng nghìn: 1234567 -> "1,234,567".
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
