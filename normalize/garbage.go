package normalize

import (
	"log/slog"
	"regexp"
	"strings"
)

var (
	filenamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bimg[-_ ]?\d{3,}\b`),
		regexp.MustCompile(`(?i)\bdsc[-_ ]?\d{3,}\b`),
		regexp.MustCompile(`(?i)\b\d{2,4}x\d{2,4}\b`),
		regexp.MustCompile(`(?i)\.(jpe?g|png|gif|svg|webp|avif|bmp|ico|tiff?|pdf|eps|ai|psd)\b`),
		regexp.MustCompile(`(?i)\d{1,2}\.\d{2}\.\d{2}\s*(am|pm)`),
	}

	urlLikeRe = regexp.MustCompile(`(?i)^(https?://|www\.|/)|://`)

	letterRe = regexp.MustCompile(`[a-zA-Z]`)

	// Recognized business suffix, the bar a single-word or filename-derived
	// candidate has to clear.
	businessSuffixRe = regexp.MustCompile(`(?i)\b(pty|ltd|inc|llc|plc|co|corp|group|holdings|bros|motors|automotive|electrical|plumbing|constructions?|builders?|engineering|bakery|butchery|pharmacy|dental|medical|legal|realty|hotel|tavern|brewing|cellars)\b`)

	// Function words that are never a name on their own.
	stopwords = map[string]struct{}{
		"the": {}, "and": {}, "for": {}, "our": {}, "your": {}, "with": {},
		"from": {}, "this": {}, "that": {}, "here": {}, "more": {}, "all": {},
		"new": {}, "now": {}, "logo": {},
	}

	matchCollapseRe = regexp.MustCompile(`\s+`)
)

// normalizeForMatch lower-cases and collapses whitespace for rule matching.
func normalizeForMatch(text string) string {
	return strings.ToLower(strings.TrimSpace(matchCollapseRe.ReplaceAllString(text, " ")))
}

// IsGarbage reports whether text is a filename, CMS hash, design-file label
// or other non-name string. It is intentionally aggressive: sponsor names
// that survive it are trusted downstream.
func IsGarbage(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return true
	}

	for _, tok := range strings.Fields(t) {
		if isHashToken(tok) {
			return true
		}
	}

	for _, p := range filenamePatterns {
		if p.MatchString(t) {
			return true
		}
	}

	if jargonRe.MatchString(t) {
		return true
	}

	if embeddedHashRe.MatchString(t) {
		return true
	}

	if hashCharRatio(t) > 0.3 {
		return true
	}

	if rule, blocked := MatchBlocklist(t); blocked {
		slog.Debug("candidate rejected by blocklist", "rule", rule, "text", t)
		return true
	}

	return false
}

// hashCharRatio is the fraction of non-space characters belonging to
// hash-like tokens.
func hashCharRatio(text string) float64 {
	total, hashed := 0, 0
	for _, tok := range strings.Fields(text) {
		total += len(tok)
		if isHashToken(tok) || embeddedHashRe.MatchString(tok) {
			hashed += len(tok)
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hashed) / float64(total)
}

// IsValidName is the final acceptance gate for a cleaned candidate name.
func IsValidName(name string) bool {
	n := strings.TrimSpace(name)
	if len(n) < 2 || len(n) > 100 {
		return false
	}
	if !letterRe.MatchString(n) {
		return false
	}
	if urlLikeRe.MatchString(n) {
		return false
	}
	if _, stop := stopwords[strings.ToLower(n)]; stop {
		return false
	}
	if IsGarbage(n) {
		return false
	}

	words := strings.Fields(n)
	if len(words) == 1 {
		w := words[0]
		if len(w) >= 4 && businessSuffixRe.MatchString(w) {
			return true
		}
		return len(w) >= 8
	}
	return true
}

// HasBusinessSuffix reports whether text contains a recognized trading-name
// suffix ("Pty", "Ltd", "Electrical", ...). Used to let filename-derived
// candidates clear their stricter acceptance bar.
func HasBusinessSuffix(text string) bool {
	return businessSuffixRe.MatchString(text)
}
