package utils

import (
	"regexp"
	"strings"
)

var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

// NormalizePhone strips everything except digits and at most one leading '+',
// e.g. " +216 99 000-000 " -> "+21699000000".
func NormalizePhone(raw string) string {
	only := nonPhoneChars.ReplaceAllString(strings.TrimSpace(raw), "")
	if only == "" {
		return ""
	}
	// drop any '+' that is not the first character
	var b strings.Builder
	for i, r := range only {
		if r == '+' && i != 0 {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// PhoneToEmail derives the synthetic email used for password sign-in.
func PhoneToEmail(phone, domain string) string {
	return NormalizePhone(phone) + "@" + domain
}
