// Package domainutil classifies and manipulates domains for the sponsor
// pipeline: internal-vs-external link decisions, deriving a company name
// from a logo link's domain, and guessing a domain from a company name.
package domainutil

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Domains that never identify a sponsor: social platforms, hosting
// providers and CDNs. A logo anchor pointing at one of these tells us
// nothing about the company.
var nonIdentifyingDomains = map[string]struct{}{
	"facebook.com":          {},
	"instagram.com":         {},
	"twitter.com":           {},
	"x.com":                 {},
	"youtube.com":           {},
	"linkedin.com":          {},
	"tiktok.com":            {},
	"pinterest.com":         {},
	"wixsite.com":           {},
	"wix.com":               {},
	"squarespace.com":       {},
	"wordpress.com":         {},
	"shopify.com":           {},
	"godaddy.com":           {},
	"weebly.com":            {},
	"webflow.io":            {},
	"google.com":            {},
	"googleusercontent.com": {},
	"cloudfront.net":        {},
	"amazonaws.com":         {},
	"revolutionise.com.au":  {},
	"teamapp.com":           {},
}

// legal suffixes stripped when slugifying a company name into a domain.
var legalSuffixes = []string{
	"pty ltd", "pty. ltd.", "pty limited", "proprietary limited",
	"ltd", "limited", "inc", "incorporated", "llc", "plc", "co", "corp",
	"corporation", "group", "holdings",
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// RegistrableDomain returns the eTLD+1 for a host ("shop.acme.com.au" ->
// "acme.com.au"). Falls back to the bare host when the public suffix list
// cannot resolve it.
func RegistrableDomain(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return d
	}
	return host
}

// IsExternal reports whether rawURL points outside the site hosting pageURL,
// compared by registrable domain so "www.club.com.au" and "club.com.au"
// count as the same site.
func IsExternal(rawURL, pageURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	p, err := url.Parse(pageURL)
	if err != nil || p.Host == "" {
		return false
	}
	return RegistrableDomain(u.Hostname()) != RegistrableDomain(p.Hostname())
}

// CompanyFromURL derives a lower-case, space-separated company name from an
// external link's domain: "https://www.alan-mance.com.au/about" ->
// "alan mance". Returns "" for social/hosting/CDN domains and anything the
// public suffix list rejects.
func CompanyFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	domain := RegistrableDomain(u.Hostname())
	if _, skip := nonIdentifyingDomains[domain]; skip {
		return ""
	}

	suffix, _ := publicsuffix.PublicSuffix(domain)
	label := strings.TrimSuffix(domain, "."+suffix)
	if label == "" || label == domain {
		// No recognizable suffix; take everything before the first dot.
		label = strings.SplitN(domain, ".", 2)[0]
	}

	words := strings.FieldsFunc(label, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	name := strings.TrimSpace(strings.Join(words, " "))
	if len(name) < 3 {
		return ""
	}
	return name
}

// GuessDomain slugifies a company name into a likely Australian domain:
// lower-case, legal suffixes stripped, non-alphanumerics removed,
// ".com.au" appended. "Alan Mance Pty Ltd" -> "alanmance.com.au".
func GuessDomain(companyName string) string {
	name := strings.ToLower(strings.TrimSpace(companyName))
	for _, suffix := range legalSuffixes {
		name = strings.TrimSuffix(strings.TrimSpace(name), " "+suffix)
	}
	slug := nonAlnum.ReplaceAllString(name, "")
	if slug == "" {
		return ""
	}
	return slug + ".com.au"
}

// DomainFromWebsite extracts the registrable domain from a website URL,
// tolerating scheme-less input ("acme.com.au/contact").
func DomainFromWebsite(website string) string {
	w := strings.TrimSpace(website)
	if w == "" {
		return ""
	}
	if !strings.Contains(w, "://") {
		w = "https://" + w
	}
	u, err := url.Parse(w)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return RegistrableDomain(u.Hostname())
}
