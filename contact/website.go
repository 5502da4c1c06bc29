package contact

import (
	"context"
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pitchside/sponsorscout/domainutil"
	"github.com/pitchside/sponsorscout/extract"
	"github.com/pitchside/sponsorscout/models"
)

// Likely contact page paths, tried in order; "" is the homepage, last.
var contactPaths = []string{
	"/contact", "/contact-us", "/contact.html", "/contactus",
	"/about", "/about-us", "/get-in-touch", "",
}

var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// Personal mail providers: an address on one of these never represents the
// company.
var personalProviders = map[string]struct{}{
	"gmail.com": {}, "hotmail.com": {}, "outlook.com": {}, "yahoo.com": {},
	"yahoo.com.au": {}, "bigpond.com": {}, "live.com": {}, "live.com.au": {},
	"icloud.com": {}, "aol.com": {}, "protonmail.com": {}, "me.com": {},
}

// Administrative prefixes that are never a reachable human.
var adminPrefixes = map[string]struct{}{
	"noreply": {}, "no-reply": {}, "donotreply": {}, "do-not-reply": {},
	"postmaster": {}, "mailer-daemon": {}, "bounce": {}, "abuse": {},
	"spam": {}, "unsubscribe": {},
}

// prefixPriority ranks email local parts for best-contact ordering; lower
// is better. Unlisted prefixes sort after all listed ones.
var prefixPriority = map[string]int{
	"marketing":    0,
	"sponsorship":  1,
	"partnerships": 2,
	"partner":      3,
	"contact":      4,
	"hello":        5,
	"enquiries":    6,
	"inquiries":    6,
	"info":         7,
	"sales":        8,
	"business":     9,
	"admin":        10,
	"office":       11,
	"reception":    12,
}

const maxEmailsPerSite = 3

// scrapeWebsite is the first waterfall strategy: walk likely contact pages
// and take the first page yielding any business email. mailto: links are
// the highest-trust source, then raw page text, then JSON-LD email fields.
func (e *Engine) scrapeWebsite(ctx context.Context, website string) ([]models.ContactInfo, models.WebsiteData) {
	var contacts []models.ContactInfo
	var data models.WebsiteData

	base := normalizeWebsite(website)
	if base == "" {
		return contacts, data
	}

	// Homepage metadata first: phone, LinkedIn, social links.
	var phone, linkedIn string
	homeBody, homeOK := e.fetcher.Fetch(ctx, base)
	if homeOK {
		if page, err := extract.NewPage(base, homeBody); err == nil {
			phone = domainutil.FindAUPhone(page.Doc.Text())
			linkedIn = findLinkedIn(page)
			data.HasSocialLinks = hasSocialLinks(page)
			data.HasContactPage = hasContactLink(page)
		}
	}

	for _, path := range contactPaths {
		if ctx.Err() != nil {
			break
		}

		pageURL := base + path
		var body []byte
		var ok bool
		if path == "" {
			body, ok = homeBody, homeOK
		} else {
			body, ok = e.fetcher.Fetch(ctx, pageURL)
		}
		if !ok {
			continue
		}
		if path != "" {
			data.HasContactPage = data.HasContactPage || strings.Contains(path, "contact")
		}

		page, err := extract.NewPage(pageURL, body)
		if err != nil {
			continue
		}

		mailto, text := pageEmails(page)
		if len(mailto)+len(text) == 0 {
			continue
		}

		// First page with emails wins the waterfall step.
		for _, c := range buildEmailContacts(mailto, text) {
			if phone != "" && c.Phone == "" {
				c.Phone = phone
				phone = "" // attach once
			}
			contacts = append(contacts, c)
		}
		break
	}

	if phone != "" && len(contacts) == 0 {
		contacts = append(contacts, models.ContactInfo{
			Phone:      phone,
			Source:     models.SourceWebsite,
			Confidence: models.ConfidenceMedium,
		})
	}
	if linkedIn != "" {
		contacts = append(contacts, models.ContactInfo{
			LinkedIn:   linkedIn,
			Source:     models.SourceWebsite,
			Confidence: models.ConfidenceMedium,
		})
	}
	return contacts, data
}

// pageEmails collects business emails from one page, split by provenance:
// mailto: hrefs, then raw text plus JSON-LD structured data.
func pageEmails(page *extract.Page) (mailto []string, text []string) {
	seen := make(map[string]struct{})

	add := func(list *[]string, email string) {
		email = strings.ToLower(strings.TrimSpace(strings.Trim(email, ".,;:)")))
		if email == "" || !isBusinessEmail(email) {
			return
		}
		if _, dup := seen[email]; dup {
			return
		}
		seen[email] = struct{}{}
		*list = append(*list, email)
	}

	page.Doc.Find(`a[href^="mailto:"]`).Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimPrefix(a.AttrOr("href", ""), "mailto:")
		if i := strings.IndexByte(href, '?'); i >= 0 {
			href = href[:i]
		}
		add(&mailto, href)
	})

	for _, m := range emailRe.FindAllString(page.Doc.Text(), -1) {
		add(&text, m)
	}

	page.Doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var decoded any
		if err := json.Unmarshal([]byte(s.Text()), &decoded); err != nil {
			return
		}
		for _, email := range jsonLDEmails(decoded) {
			add(&text, email)
		}
	})

	return mailto, text
}

// jsonLDEmails walks arbitrary JSON-LD looking for "email" string fields.
func jsonLDEmails(node any) []string {
	var out []string
	switch v := node.(type) {
	case map[string]any:
		for key, val := range v {
			if strings.EqualFold(key, "email") {
				if s, ok := val.(string); ok {
					out = append(out, strings.TrimPrefix(s, "mailto:"))
				}
				continue
			}
			out = append(out, jsonLDEmails(val)...)
		}
	case []any:
		for _, item := range v {
			out = append(out, jsonLDEmails(item)...)
		}
	}
	return out
}

// buildEmailContacts ranks the collected emails by prefix priority and
// returns at most maxEmailsPerSite contacts. mailto-sourced addresses carry
// high confidence and direct-scrape verification; the rest are medium.
func buildEmailContacts(mailto, text []string) []models.ContactInfo {
	type ranked struct {
		email    string
		fromLink bool
	}
	all := make([]ranked, 0, len(mailto)+len(text))
	for _, m := range mailto {
		all = append(all, ranked{m, true})
	}
	for _, m := range text {
		all = append(all, ranked{m, false})
	}

	sort.SliceStable(all, func(i, j int) bool {
		return emailRank(all[i].email) < emailRank(all[j].email)
	})

	var out []models.ContactInfo
	for _, r := range all {
		if len(out) == maxEmailsPerSite {
			break
		}
		confidence := models.ConfidenceMedium
		if r.fromLink {
			confidence = models.ConfidenceHigh
		}
		out = append(out, models.ContactInfo{
			Email:      r.email,
			Source:     models.SourceWebsite,
			Confidence: confidence,
			Verified:   r.fromLink,
		})
	}
	return out
}

func emailRank(email string) int {
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}
	if rank, ok := prefixPriority[local]; ok {
		return rank
	}
	return len(prefixPriority) + 1
}

func isBusinessEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	local, domain := email[:at], email[at+1:]
	if _, personal := personalProviders[domain]; personal {
		return false
	}
	if _, admin := adminPrefixes[local]; admin {
		return false
	}
	return true
}

// findLinkedIn returns the first LinkedIn company or profile URL linked
// from the page.
func findLinkedIn(page *extract.Page) string {
	var found string
	page.Doc.Find(`a[href*="linkedin.com"]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := page.AbsURL(a.AttrOr("href", ""))
		if strings.Contains(href, "linkedin.com/company/") || strings.Contains(href, "linkedin.com/in/") {
			found = href
			return false
		}
		return true
	})
	return found
}

var socialHosts = []string{"facebook.com", "instagram.com", "twitter.com", "x.com", "youtube.com", "linkedin.com", "tiktok.com"}

func hasSocialLinks(page *extract.Page) bool {
	found := false
	page.Doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.ToLower(a.AttrOr("href", ""))
		for _, h := range socialHosts {
			if strings.Contains(href, h) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func hasContactLink(page *extract.Page) bool {
	found := false
	page.Doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.ToLower(a.AttrOr("href", ""))
		text := strings.ToLower(a.Text())
		if strings.Contains(href, "contact") || strings.Contains(text, "contact") {
			found = true
			return false
		}
		return true
	})
	return found
}

// normalizeWebsite returns a scheme-qualified base URL without a trailing
// slash, or "" for unusable input.
func normalizeWebsite(website string) string {
	w := strings.TrimSpace(website)
	if w == "" {
		return ""
	}
	if !strings.Contains(w, "://") {
		w = "https://" + w
	}
	return strings.TrimSuffix(w, "/")
}
