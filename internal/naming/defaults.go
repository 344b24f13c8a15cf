package naming

// BuiltinTemplate template dựng sẵn — trả về khi workspace chưa có template riêng
// và dùng để seed dữ liệu hệ thống lúc khởi tạo.
type BuiltinTemplate struct {
	Name        string   `json:"name"`
	Template    string   `json:"template"`
	Description string   `json:"description,omitempty"`
	Variables   []string `json:"variables"`
	IsDefault   bool     `json:"isDefault"`
}

// BuiltinNamingTemplates các naming template chuẩn cho deal channel.
func BuiltinNamingTemplates() []BuiltinTemplate {
	return []BuiltinTemplate{
		{
			Name:        "Standard Deal",
			Template:    "deal-{client_short}-{date}",
			Description: "Standard format: deal-clientname-YYYY-MM-DD",
			Variables:   []string{"clientName"},
			IsDefault:   true,
		},
		{
			Name:        "Deal with Stage",
			Template:    "deal-{stage}-{client_short}-{month}{year}",
			Description: "Includes deal stage: deal-stage-client-MMYYYY",
			Variables:   []string{"clientName", "dealStage"},
		},
		{
			Name:        "Owner Based",
			Template:    "deal-{owner_initials}-{client_short}-{quarter}",
			Description: "Owner initials with quarter: deal-abc-client-q1",
			Variables:   []string{"clientName", "dealOwner"},
		},
		{
			Name:        "Value Based",
			Template:    "deal-{value}-{client_short}-{date}",
			Description: "Deal value included: deal-100k-client-date",
			Variables:   []string{"clientName", "dealValue"},
		},
		{
			Name:        "Product Deal",
			Template:    "{product}-deal-{client_short}-{year}",
			Description: "Product-specific deals: product-deal-client-year",
			Variables:   []string{"clientName", "product"},
		},
		{
			Name:        "Regional Deal",
			Template:    "deal-{region}-{client_short}-{quarter}{year}",
			Description: "Region-based naming: deal-region-client-q1yyyy",
			Variables:   []string{"clientName", "region"},
		},
		{
			Name:        "Priority Deal",
			Template:    "{priority}-deal-{client_short}-{month}",
			Description: "Priority level deals: high-deal-client-MM",
			Variables:   []string{"clientName", "priority"},
		},
		{
			Name:        "Fiscal Year",
			Template:    "deal-{fiscal_year}-{client_short}-{deal_id}",
			Description: "Fiscal year based: deal-fy2024-client-id",
			Variables:   []string{"clientName", "dealId"},
		},
	}
}

// BuiltinMessageTemplates các message template chuẩn cho tin nhắn chào channel.
func BuiltinMessageTemplates() []BuiltinTemplate {
	return []BuiltinTemplate{
		{
			Name:      "Standard Welcome",
			Template:  "🎯 *New Deal Channel Created*\n\n*Client:* {client}\n*Deal:* {deal}\n*Value:* {value}\n*Owner:* {owner}\n*Stage:* {stage}\n*Created:* {date}\n\nWelcome to the deal channel! Use this space to collaborate on all aspects of this opportunity.",
			Variables: []string{"client", "deal", "value", "owner", "stage", "date"},
			IsDefault: true,
		},
		{
			Name:      "Detailed Welcome",
			Template:  "🚀 *Deal Channel: {deal}*\n\n📊 *Deal Information*\n• Client: {client}\n• Deal Value: {value}\n• Stage: {stage}\n• Owner: {owner}\n• Target Close: {close_date}\n\n📋 *Next Steps*\n1. Review deal requirements\n2. Schedule kickoff meeting\n3. Assign team roles\n\n💬 *Channel Guidelines*\n• Keep all deal discussions in this channel\n• Tag relevant team members with @mentions\n• Share documents and updates regularly\n\nLet's close this deal! 💪",
			Variables: []string{"client", "deal", "value", "stage", "owner", "close_date"},
		},
		{
			Name:      "Minimal",
			Template:  "Deal channel for *{client} - {deal}*\nOwner: {owner} | Value: {value}",
			Variables: []string{"client", "deal", "owner", "value"},
		},
	}
}
