// Package naming - Test engine sinh tên channel: token, sanitize, validate.
package naming

import (
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

func TestResolve_StandardTemplate(t *testing.T) {
	vars := Variables{ClientName: "Acme Corporation"}
	got := Resolve("deal-{client_short}-{date}", vars, fixedNow)
	// "Acme Corporation" cắt 10 ký tự -> "Acme Corpo", khoảng trắng thay bằng "-"
	want := "deal-acme-corpo-2024-06-01"
	if got != want {
		t.Errorf("Resolve = %q, muốn %q", got, want)
	}
	if result := Validate(got); !result.IsValid {
		t.Errorf("tên sinh ra phải hợp lệ, violations: %v", result.Violations)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	vars := Variables{ClientName: "Acme", DealName: "Big Deal", DealOwner: "Jane Q. Doe"}
	template := "deal-{client}-{owner_initials}-{quarter}-{fiscal_year}"
	first := Resolve(template, vars, fixedNow)
	for i := 0; i < 20; i++ {
		if got := Resolve(template, vars, fixedNow); got != first {
			t.Fatalf("Resolve không deterministic: lần đầu %q, lần %d %q", first, i, got)
		}
	}
}

func TestResolve_Fallbacks(t *testing.T) {
	got := Resolve("{client}-{deal}-{type}", Variables{}, fixedNow)
	if got != "unknown-deal-deal" {
		t.Errorf("fallback sai: %q", got)
	}
	// Token không có fallback thì thay bằng rỗng rồi sanitize gộp dấu "-"
	got = Resolve("deal-{region}-{stage}-x", Variables{}, fixedNow)
	if got != "deal-x" {
		t.Errorf("token rỗng phải bị gộp: %q", got)
	}
}

func TestResolve_ValueToken(t *testing.T) {
	value := 250000.0
	got := Resolve("deal-{value}-{client_short}", Variables{ClientName: "Acme", DealValue: &value}, fixedNow)
	if got != "deal-250k-acme" {
		t.Errorf("token value sai: %q", got)
	}
	// Không có giá trị thì {value} rỗng
	got = Resolve("deal-{value}-{client_short}", Variables{ClientName: "Acme"}, fixedNow)
	if got != "deal-acme" {
		t.Errorf("value nil phải bị bỏ: %q", got)
	}
}

func TestResolve_DateTokens(t *testing.T) {
	got := Resolve("{year}-{month}-{day}", Variables{}, fixedNow)
	if got != "2024-06-01" {
		t.Errorf("token ngày tháng sai: %q", got)
	}
}

func TestInitials(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Jane Q. Doe", "jqd"},
		{"John Smith", "js"},
		{"Anna Maria Garcia Lopez", "amg"}, // tối đa 3 ký tự
		{"", ""},
		{"single", "s"},
	}
	for _, tc := range cases {
		if got := Initials(tc.name); got != tc.want {
			t.Errorf("Initials(%q) = %q, muốn %q", tc.name, got, tc.want)
		}
	}
}

func TestQuarter(t *testing.T) {
	cases := []struct {
		month time.Month
		want  string
	}{
		{time.January, "q1"},
		{time.March, "q1"},
		{time.April, "q2"},
		{time.May, "q2"},
		{time.September, "q3"},
		{time.December, "q4"},
	}
	for _, tc := range cases {
		now := time.Date(2024, tc.month, 15, 0, 0, 0, 0, time.UTC)
		if got := Quarter(now); got != tc.want {
			t.Errorf("Quarter(tháng %d) = %q, muốn %q", tc.month, got, tc.want)
		}
	}
}

func TestFiscalYear(t *testing.T) {
	// Tháng 3, năm tài chính bắt đầu tháng 4 -> thuộc năm tài chính trước
	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := FiscalYear(march, 4); got != "fy2023" {
		t.Errorf("FiscalYear(tháng 3, start 4) = %q, muốn fy2023", got)
	}
	// Tháng 5 >= start 4 -> năm hiện tại
	may := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if got := FiscalYear(may, 4); got != "fy2024" {
		t.Errorf("FiscalYear(tháng 5, start 4) = %q, muốn fy2024", got)
	}
	// Mặc định start = 1 -> luôn năm hiện tại
	if got := FiscalYear(march, 0); got != "fy2024" {
		t.Errorf("FiscalYear(start 0) = %q, muốn fy2024", got)
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Deal With Spaces", "deal-with-spaces"},
		{"UPPER-case", "upper-case"},
		{"a---b", "a-b"},
		{"-leading-trailing-", "leading-trailing"},
		{"_underscore_ok_", "underscore_ok"},
		{"special!@#chars", "special-chars"},
	}
	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, muốn %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitize_Truncate(t *testing.T) {
	long := strings.Repeat("a", 100)
	got := Sanitize(long)
	if len(got) != MaxChannelNameLength {
		t.Errorf("Sanitize phải cắt còn %d ký tự, được %d", MaxChannelNameLength, len(got))
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		valid bool
	}{
		{"deal-acme-2024", true},
		{"a_b-c123", true},
		{"", false},
		{"Has-Upper", false},
		{"-leading-hyphen", false},
		{"_leading-underscore", false},
		{"has space", false},
		{strings.Repeat("a", 81), false},
	}
	for _, tc := range cases {
		result := Validate(tc.name)
		if result.IsValid != tc.valid {
			t.Errorf("Validate(%q).IsValid = %v, muốn %v (violations: %v)", tc.name, result.IsValid, tc.valid, result.Violations)
		}
	}
}

// Template toàn token resolve ra ký tự không hợp lệ có thể cho ra chuỗi rỗng —
// Resolve không đảm bảo tên hợp lệ, caller phải tự Validate.
func TestResolve_DegenerateEmptyName(t *testing.T) {
	got := Resolve("{region}{product}", Variables{Region: "!!!", Product: "###"}, fixedNow)
	if got != "" {
		t.Errorf("mong chuỗi rỗng, được %q", got)
	}
	if result := Validate(got); result.IsValid {
		t.Error("chuỗi rỗng phải bị Validate từ chối")
	}
}

func TestBuiltinTemplates(t *testing.T) {
	namingTpls := BuiltinNamingTemplates()
	if len(namingTpls) != 8 {
		t.Errorf("số naming template dựng sẵn = %d, muốn 8", len(namingTpls))
	}
	defaults := 0
	for _, tpl := range namingTpls {
		if tpl.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Errorf("phải có đúng 1 naming template mặc định, có %d", defaults)
	}

	messageTpls := BuiltinMessageTemplates()
	if len(messageTpls) != 3 {
		t.Errorf("số message template dựng sẵn = %d, muốn 3", len(messageTpls))
	}
}
