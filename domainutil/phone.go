package domainutil

import (
	"regexp"
	"strings"
)

// Australian phone formats, most specific first: international mobile,
// international landline, local mobile, local landline, 13/1300/1800.
var auPhonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+61[ -]?4\d{2}[ -]?\d{3}[ -]?\d{3}`),
	regexp.MustCompile(`\+61[ -]?[2378][ -]?\d{4}[ -]?\d{4}`),
	regexp.MustCompile(`\b04\d{2}[ -]?\d{3}[ -]?\d{3}\b`),
	regexp.MustCompile(`\(?0[2378]\)?[ -]?\d{4}[ -]?\d{4}`),
	regexp.MustCompile(`\b1[38]00[ -]?\d{3}[ -]?\d{3}\b`),
	regexp.MustCompile(`\b13[ -]?\d{2}[ -]?\d{2}\b`),
}

// FindAUPhone returns the first Australian-format phone number in text,
// or "" when none matches.
func FindAUPhone(text string) string {
	for _, p := range auPhonePatterns {
		if m := p.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}
