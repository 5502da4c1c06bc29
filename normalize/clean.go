// Package normalize turns raw extracted text (alt attributes, filenames,
// anchor text) into display-ready company names, and classifies strings
// that are really filenames, CMS hashes or UI chrome rather than names.
//
// The heuristics here are tuned against observed scraped HTML. Ambiguous
// cases are logged at debug level for future tuning rather than patched
// with new rules inline.
package normalize

import (
	"net/url"
	"regexp"
	"strings"
)

const maxDecodePasses = 5

var (
	// Embedded hash: letter, digit, then 8+ more alphanumerics.
	embeddedHashRe = regexp.MustCompile(`(?i)[a-z]\d[a-z0-9]{8,}`)

	// Image dimension token ("-150x150", "300x200").
	dimensionRe = regexp.MustCompile(`(?i)[-_ ]?\d{2,4}x\d{2,4}`)

	// Export timestamp ("3.45.12 pm").
	timestampRe = regexp.MustCompile(`(?i)\d{1,2}\.\d{2}\.\d{2}\s*(am|pm)`)

	// Design/file jargon that rides along in asset names.
	jargonRe = regexp.MustCompile(`(?i)\b(cmyk|rgb|lockup|tagline|positive|negative|stacked|horizontal|vertical|artwork|thumbnail|preview|draft|v\d+|final)\b`)

	// Leading numeric bullet ("1. ", "2) ").
	bulletRe = regexp.MustCompile(`^\d+[.)]\s*`)

	// Tier-labelled prefixes ("gold sponsor logo of ", "major partner logo of ").
	tierPrefixRe = regexp.MustCompile(`(?i)^(major|principal|premier|platinum|gold|silver|bronze|diamond|community)\s+(partner|sponsor)\s+logo\s+of\s+`)

	whitespaceRe = regexp.MustCompile(`\s+`)

	// Interior capital after a lowercase letter ("McDonald", "easyJet").
	interiorCapRe = regexp.MustCompile(`[a-z][A-Z]`)

	// All-caps token of 2-6 letters, treated as an acronym.
	acronymRe = regexp.MustCompile(`^[A-Z]{2,6}$`)
)

var literalPrefixes = []string{
	"logo of partner ",
	"logo of ",
}

var literalSuffixes = []string{
	"(opens in new tab)",
	"logo",
	"sponsor",
	"partner",
	"icon",
}

// percent-decoding fallback for inputs that break url.PathUnescape
// (unmatched % runs from doubly-mangled CMS filenames).
var manualDecoder = strings.NewReplacer(
	"%20", " ", "%2520", " ", "%26", "&", "%27", "'", "%28", "(",
	"%29", ")", "%2C", ",", "%2D", "-", "%2E", ".", "%5F", "_",
)

// Clean runs the fixed normalization pipeline over raw extracted text and
// returns a display-ready name. Clean is idempotent: applying it to its own
// output changes nothing.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// 1. Percent-decode, repeatedly for double-encoded input.
	for i := 0; i < maxDecodePasses && strings.Contains(s, "%"); i++ {
		decoded, err := url.PathUnescape(s)
		if err != nil {
			s = manualDecoder.Replace(s)
			break
		}
		if decoded == s {
			break
		}
		s = decoded
	}

	// 2. Strip CMS/CDN hashes.
	s = stripTrailingHash(s)
	s = embeddedHashRe.ReplaceAllString(s, " ")

	// 3. Strip dimension tokens and export timestamps.
	s = dimensionRe.ReplaceAllString(s, " ")
	s = timestampRe.ReplaceAllString(s, " ")

	// 4. Strip design/file jargon.
	s = jargonRe.ReplaceAllString(s, " ")

	// 5. Strip known prefixes and suffixes.
	s = bulletRe.ReplaceAllString(strings.TrimSpace(s), "")
	s = tierPrefixRe.ReplaceAllString(s, "")
	lower := strings.ToLower(s)
	for _, p := range literalPrefixes {
		if strings.HasPrefix(lower, p) {
			s = s[len(p):]
			lower = strings.ToLower(s)
		}
	}
	s = strings.TrimSpace(s)
	lower = strings.ToLower(s)
	for trimmed := true; trimmed; {
		trimmed = false
		for _, suf := range literalSuffixes {
			if strings.HasSuffix(lower, suf) && len(s) > len(suf) {
				s = strings.TrimSpace(s[:len(s)-len(suf)])
				lower = strings.ToLower(s)
				trimmed = true
			}
		}
	}

	// 6. Collapse whitespace.
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))

	// 7. Re-capitalize, preserving acronyms and interior capitals.
	return titleCase(s)
}

// stripTrailingHash removes trailing whitespace-delimited tokens that look
// like CMS/CDN asset hashes: 12+ alphanumerics containing at least one
// digit. The digit requirement keeps long real words intact.
func stripTrailingHash(s string) string {
	words := strings.Fields(s)
	for len(words) > 0 && isHashToken(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// isHashToken reports whether a single token is a hash-like run.
func isHashToken(tok string) bool {
	if len(tok) < 12 {
		return false
	}
	hasDigit := false
	for _, r := range tok {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return hasDigit
}

// titleCase title-cases each word, leaving short all-caps acronyms and
// tokens with an interior capital (McDonald, easyJet) untouched.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if acronymRe.MatchString(w) || interiorCapRe.MatchString(w) {
			continue
		}
		runes := []rune(strings.ToLower(w))
		for j, r := range runes {
			if r >= 'a' && r <= 'z' {
				runes[j] = r - 'a' + 'A'
				break
			}
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
