package naming

import (
	"strings"
	"testing"
	"time"
)

func TestRenderMessage(t *testing.T) {
	value := 125000.0
	vars := Variables{
		ClientName: "Acme",
		DealName:   "Enterprise License",
		DealValue:  &value,
		DealOwner:  "Jane Doe",
		DealStage:  "Negotiation",
	}
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	got := RenderMessage("Client: {client} | Deal: {deal} | Value: {value} | Owner: {owner} | Stage: {stage} | Date: {date}", vars, now)
	want := "Client: Acme | Deal: Enterprise License | Value: $125,000 | Owner: Jane Doe | Stage: Negotiation | Date: 6/1/2024"
	if got != want {
		t.Errorf("RenderMessage = %q, muốn %q", got, want)
	}
}

func TestRenderMessage_Fallbacks(t *testing.T) {
	got := RenderMessage("{value} {owner} {stage}", Variables{ClientName: "Acme", DealName: "X"}, time.Now())
	if got != "TBD Unassigned Initial" {
		t.Errorf("fallback hiển thị sai: %q", got)
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		value *float64
		want  string
	}{
		{nil, "TBD"},
		{ptr(0), "$0"},
		{ptr(999), "$999"},
		{ptr(1000), "$1,000"},
		{ptr(1234567), "$1,234,567"},
	}
	for _, tc := range cases {
		if got := FormatValue(tc.value); got != tc.want {
			t.Errorf("FormatValue = %q, muốn %q", got, tc.want)
		}
	}
}

func TestDefaultWelcomeMessage(t *testing.T) {
	vars := Variables{ClientName: "Acme", DealName: "Big Deal"}
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	got := DefaultWelcomeMessage(vars, now)
	for _, want := range []string{"*Client:* Acme", "*Deal:* Big Deal", "*Value:* TBD", "*Owner:* Unassigned", "*Stage:* Initial", "*Created:* 6/1/2024"} {
		if !strings.Contains(got, want) {
			t.Errorf("tin nhắn chào thiếu %q trong:\n%s", want, got)
		}
	}
}

func ptr(f float64) *float64 { return &f }
