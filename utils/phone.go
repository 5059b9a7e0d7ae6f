package utils

import (
	"regexp"
	"strings"

	"farmstay-server/config"
)

var nonDigitRe = regexp.MustCompile(`\D`)

// NormalizePhoneNumber reduces a phone number to bare digits so that
// "0912 345 678", "0912-345-678" and "+84912345678" all compare equal.
// The default country code only applies to local-format numbers; an input
// with an explicit "+" prefix already carries its own.
func NormalizePhoneNumber(phoneNumber string) string {
	trimmed := strings.TrimSpace(phoneNumber)
	digits := nonDigitRe.ReplaceAllString(trimmed, "")
	if digits == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "+") {
		return digits
	}

	cc := countryCodeDigits()
	if cc != "" && !strings.HasPrefix(digits, cc) {
		digits = strings.TrimLeft(digits, "0")
		digits = cc + digits
	}

	return digits
}

// ValidatePhoneNumber reports whether the input holds a plausible phone
// number (7-15 digits after stripping formatting)
func ValidatePhoneNumber(phoneNumber string) bool {
	digits := nonDigitRe.ReplaceAllString(phoneNumber, "")
	return len(digits) >= 7 && len(digits) <= 15
}

func countryCodeDigits() string {
	if config.AppConfig == nil {
		return ""
	}
	return nonDigitRe.ReplaceAllString(config.AppConfig.Phone.DefaultCountryCode, "")
}
