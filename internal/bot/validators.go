package bot

import (
	"regexp"
	"strings"
)

var accessCodeRe = regexp.MustCompile(`^NOVA-[A-Z0-9]{7}$`)

const (
	minPhoneDigits = 8
	maxPhoneDigits = 15
)

// NormalizeAccessCode trims and upper-cases user input before validation.
func NormalizeAccessCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidAccessCode checks the NOVA-XXXXXXX format on normalized input.
func IsValidAccessCode(code string) bool {
	return accessCodeRe.MatchString(code)
}

// NormalizePhoneNumber drops '+', spaces and hyphens.
func NormalizePhoneNumber(phone string) string {
	return strings.NewReplacer("+", "", " ", "", "-", "").Replace(strings.TrimSpace(phone))
}

// IsValidPhoneNumber expects a normalized number: 8 to 15 ASCII digits.
func IsValidPhoneNumber(phone string) bool {
	if len(phone) < minPhoneDigits || len(phone) > maxPhoneDigits {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
