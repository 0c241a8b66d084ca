package bot

import (
	"testing"
	"time"
)

func TestIsValidAccessCode(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"NOVA-ABC1234", true},
		{" nova-abc1234 ", true},
		{"NOVA-ABC123", false},
		{"NOVA-ABC12345", false},
		{"NOVA_ABC1234", false},
		{"NOVA-ABC-234", false},
		{"XNOVA-ABC1234", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidAccessCode(NormalizeAccessCode(tt.in)); got != tt.want {
			t.Errorf("IsValidAccessCode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPhoneNumberValidation(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"237612345678", true},
		{"+237 612-345-678", true},
		{"12345678", true},
		{"123456789012345", true},
		{"1234567", false},
		{"1234567890123456", false},
		{"23761234567a", false},
		{"(237)612345678", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidPhoneNumber(NormalizePhoneNumber(tt.in)); got != tt.want {
			t.Errorf("phone %q valid = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	if got := FormatExpiry("2025-01-01T00:00:00Z", 30, now); got != "01/01/2025" {
		t.Errorf("FormatExpiry(iso) = %q", got)
	}
	if got := FormatExpiry("2025-01-01T00:00:00.000Z", 30, now); got != "01/01/2025" {
		t.Errorf("FormatExpiry(millis) = %q", got)
	}
	if got := FormatExpiry("", 30, now); got != "01/07/2025" {
		t.Errorf("FormatExpiry(empty) = %q, want now+30d", got)
	}
	if got := FormatExpiry("soon", 1, now); got != "02/06/2025" {
		t.Errorf("FormatExpiry(garbage) = %q", got)
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"monthly", "Monthly"},
		{"YEARLY", "Yearly"},
		{"émeraude", "Émeraude"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Capitalize(tt.in); got != tt.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPendingInputAfter(t *testing.T) {
	tests := []struct {
		from    PendingInput
		outcome InputOutcome
		want    PendingInput
	}{
		{PendingAccessCode, InputRejected, PendingAccessCode},
		{PendingAccessCode, InputProcessed, PendingNone},
		{PendingPhoneNumber, InputRejected, PendingPhoneNumber},
		{PendingPhoneNumber, InputProcessed, PendingNone},
		{PendingUpdateConfirmation, InputRejected, PendingNone},
		{PendingUpdateConfirmation, InputProcessed, PendingNone},
	}

	for _, tt := range tests {
		if got := tt.from.After(tt.outcome); got != tt.want {
			t.Errorf("%v.After(%d) = %v, want %v", tt.from, tt.outcome, got, tt.want)
		}
	}
}

func TestParsePendingInput(t *testing.T) {
	for _, p := range []PendingInput{PendingNone, PendingAccessCode, PendingPhoneNumber, PendingUpdateConfirmation} {
		got, err := ParsePendingInput(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePendingInput(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParsePendingInput("bogus"); err == nil {
		t.Error("Expected error for unknown state, got nil")
	}
}
