// Package naming - Engine sinh tên channel từ template với các token động.
// Thuần (pure): không side effect, thời gian luôn được truyền vào tường minh
// để kết quả deterministic trong test.
package naming

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// MaxChannelNameLength giới hạn độ dài tên channel theo quy định của Slack.
const MaxChannelNameLength = 80

// DefaultNamingPattern template mặc định khi workspace chưa cấu hình template nào.
const DefaultNamingPattern = "deal-{client_short}-{date}"

// Variables chứa các giá trị đầu vào để thay thế token trong template.
// Field trống sẽ dùng fallback riêng của từng token (xem bảng token bên dưới).
type Variables struct {
	ClientName      string   // Tên khách hàng — fallback "unknown"
	DealName        string   // Tên deal — fallback "deal"
	DealId          string   // Mã deal — fallback ""
	DealOwner       string   // Người phụ trách — fallback ""
	DealStage       string   // Giai đoạn deal — fallback ""
	DealValue       *float64 // Giá trị deal — nil thì token {value} là ""
	DealType        string   // Loại deal — fallback "deal"
	Region          string   // Khu vực — fallback ""
	Product         string   // Sản phẩm — fallback ""
	Priority        string   // Độ ưu tiên — fallback ""
	FiscalYearStart int      // Tháng bắt đầu năm tài chính (1-12), 0 hiểu là 1
}

// tokenResolver resolve giá trị của 1 token từ variables và thời điểm hiện tại.
type tokenResolver func(vars Variables, now time.Time) string

// tokenEntry một token và resolver tương ứng.
type tokenEntry struct {
	token   string
	resolve tokenResolver
}

// tokenTable bảng token cố định, duyệt theo thứ tự khai báo để kết quả deterministic.
// Không duyệt động theo key của request để tránh token lạ lọt vào tên channel.
var tokenTable = []tokenEntry{
	{"{client}", func(vars Variables, _ time.Time) string {
		return fallback(vars.ClientName, "unknown")
	}},
	{"{client_short}", func(vars Variables, _ time.Time) string {
		return truncate(fallback(vars.ClientName, "unknown"), 10)
	}},
	{"{deal}", func(vars Variables, _ time.Time) string {
		return fallback(vars.DealName, "deal")
	}},
	{"{deal_id}", func(vars Variables, _ time.Time) string {
		return vars.DealId
	}},
	{"{date}", func(_ Variables, now time.Time) string {
		return now.Format("2006-01-02")
	}},
	{"{year}", func(_ Variables, now time.Time) string {
		return now.Format("2006")
	}},
	{"{month}", func(_ Variables, now time.Time) string {
		return now.Format("01")
	}},
	{"{day}", func(_ Variables, now time.Time) string {
		return now.Format("02")
	}},
	{"{owner}", func(vars Variables, _ time.Time) string {
		return vars.DealOwner
	}},
	{"{owner_initials}", func(vars Variables, _ time.Time) string {
		return Initials(vars.DealOwner)
	}},
	{"{stage}", func(vars Variables, _ time.Time) string {
		return vars.DealStage
	}},
	{"{value}", func(vars Variables, _ time.Time) string {
		if vars.DealValue == nil {
			return ""
		}
		return fmt.Sprintf("%dk", int64(math.Round(*vars.DealValue/1000)))
	}},
	{"{type}", func(vars Variables, _ time.Time) string {
		return fallback(vars.DealType, "deal")
	}},
	{"{region}", func(vars Variables, _ time.Time) string {
		return vars.Region
	}},
	{"{product}", func(vars Variables, _ time.Time) string {
		return vars.Product
	}},
	{"{priority}", func(vars Variables, _ time.Time) string {
		return vars.Priority
	}},
	{"{quarter}", func(_ Variables, now time.Time) string {
		return Quarter(now)
	}},
	{"{fiscal_year}", func(vars Variables, now time.Time) string {
		return FiscalYear(now, vars.FiscalYearStart)
	}},
}

// invalidCharsPattern các ký tự không hợp lệ trong tên channel (bị thay bằng "-").
var invalidCharsPattern = regexp.MustCompile(`[^a-z0-9-_]`)

// multiHyphenPattern chuỗi nhiều dấu "-" liên tiếp (gộp còn 1).
var multiHyphenPattern = regexp.MustCompile(`-+`)

// validNamePattern tên channel hợp lệ: chỉ gồm chữ thường, số, "-", "_".
var validNamePattern = regexp.MustCompile(`^[a-z0-9-_]+$`)

// Resolve sinh tên channel từ template: thay tất cả token rồi sanitize.
// Deterministic theo (template, vars, now). Kết quả KHÔNG đảm bảo hợp lệ —
// template toàn token rỗng có thể cho ra chuỗi rỗng, caller phải gọi Validate.
func Resolve(template string, vars Variables, now time.Time) string {
	name := template
	for _, entry := range tokenTable {
		if strings.Contains(name, entry.token) {
			name = strings.ReplaceAll(name, entry.token, entry.resolve(vars, now))
		}
	}
	return Sanitize(name)
}

// Sanitize chuẩn hóa chuỗi thành tên channel: lowercase, thay ký tự lạ bằng "-",
// gộp "-" liên tiếp, bỏ "-"/"_" đầu-cuối, cắt còn 80 ký tự. Thứ tự các bước cố định.
func Sanitize(name string) string {
	name = strings.ToLower(name)
	name = invalidCharsPattern.ReplaceAllString(name, "-")
	name = multiHyphenPattern.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-_")
	return truncate(name, MaxChannelNameLength)
}

// ValidationResult kết quả kiểm tra tên channel.
type ValidationResult struct {
	IsValid    bool     `json:"isValid"`
	Violations []string `json:"violations"`
}

// Validate kiểm tra tên channel theo bộ quy tắc độc lập với Resolve:
// không rỗng, tối đa 80 ký tự, chỉ gồm [a-z0-9-_], không bắt đầu bằng "-" hoặc "_".
func Validate(name string) ValidationResult {
	violations := []string{}

	if len(name) == 0 {
		violations = append(violations, "Channel name cannot be empty")
	}
	if len(name) > MaxChannelNameLength {
		violations = append(violations, "Channel name must be 80 characters or less")
	}
	if !validNamePattern.MatchString(name) {
		violations = append(violations, "Channel name can only contain lowercase letters, numbers, hyphens, and underscores")
	}
	if strings.HasPrefix(name, "-") || strings.HasPrefix(name, "_") {
		violations = append(violations, "Channel name cannot start with a hyphen or underscore")
	}

	return ValidationResult{
		IsValid:    len(violations) == 0,
		Violations: violations,
	}
}

// Initials lấy chữ cái đầu của từng từ trong tên, lowercase, tối đa 3 ký tự.
// "Jane Q. Doe" -> "jqd".
func Initials(name string) string {
	if name == "" {
		return ""
	}
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		b.WriteString(string([]rune(word)[0]))
	}
	return truncate(strings.ToLower(b.String()), 3)
}

// Quarter trả về quý hiện tại dạng "q1".."q4".
func Quarter(now time.Time) string {
	q := (int(now.Month()) + 2) / 3
	return fmt.Sprintf("q%d", q)
}

// FiscalYear trả về năm tài chính dạng "fy2024". Tháng hiện tại nhỏ hơn tháng
// bắt đầu năm tài chính thì thuộc năm tài chính trước đó.
func FiscalYear(now time.Time, fiscalYearStart int) string {
	if fiscalYearStart <= 0 {
		fiscalYearStart = 1
	}
	year := now.Year()
	if int(now.Month()) < fiscalYearStart {
		year--
	}
	return fmt.Sprintf("fy%d", year)
}

// fallback trả về def khi value rỗng.
func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

// truncate cắt chuỗi còn tối đa n ký tự (theo byte — tên channel chỉ chứa ASCII sau sanitize).
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
