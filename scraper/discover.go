package scraper

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pitchside/sponsorscout/domainutil"
	"github.com/pitchside/sponsorscout/extract"
)

// defaultMaxPages caps how many pages one club scrape will fetch.
const defaultMaxPages = 5

// sponsorKeywords flag an anchor as sponsor-relevant when found in its href
// or visible text.
var sponsorKeywords = []string{"sponsor", "partner", "supporter", "backer", "donor", "corporate"}

// DiscoverPages fetches the homepage of baseURL and returns up to the
// scraper's page cap of candidate sponsor pages in insertion order. The homepage is always
// included; results stay on the same site.
func (s *Scraper) DiscoverPages(ctx context.Context, baseURL string) []string {
	pages := []string{baseURL}
	seen := map[string]struct{}{normalizeKey(baseURL): {}}

	body, ok := s.fetcher.Fetch(ctx, baseURL)
	if !ok {
		return pages
	}
	page, err := extract.NewPage(baseURL, body)
	if err != nil {
		slog.Warn("discover: homepage parse failed", "url", baseURL, "error", err)
		return pages
	}

	page.Doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if len(pages) >= s.maxPages {
			return
		}
		href := a.AttrOr("href", "")
		text := strings.ToLower(strings.TrimSpace(a.Text()))
		if !matchesSponsorKeyword(strings.ToLower(href)) && !matchesSponsorKeyword(text) {
			return
		}

		resolved := page.AbsURL(href)
		if resolved == "" || domainutil.IsExternal(resolved, baseURL) {
			return
		}
		key := normalizeKey(resolved)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		pages = append(pages, resolved)
	})

	slog.Debug("discover: candidate pages", "base", baseURL, "pages", pages)
	return pages
}

func matchesSponsorKeyword(s string) bool {
	for _, kw := range sponsorKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// normalizeKey strips the fragment and trailing slash so near-identical
// URLs dedupe.
func normalizeKey(rawURL string) string {
	u := rawURL
	if i := strings.IndexByte(u, '#'); i >= 0 {
		u = u[:i]
	}
	return strings.TrimSuffix(strings.ToLower(u), "/")
}
