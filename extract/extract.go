// Package extract runs independent DOM-scan strategies over a fetched page
// and emits sponsor candidates. Strategies are complementary, not mutually
// exclusive: they all run and their results are merged downstream.
package extract

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pitchside/sponsorscout/domainutil"
	"github.com/pitchside/sponsorscout/models"
	"github.com/pitchside/sponsorscout/normalize"
)

// Page wraps one fetched, parsed page.
type Page struct {
	URL  string
	Doc  *goquery.Document
	base *url.URL
}

// NewPage parses the fetched body of pageURL.
func NewPage(pageURL string, body []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}
	return &Page{URL: pageURL, Doc: doc, base: base}, nil
}

// AbsURL resolves href against the page URL. Returns "" for unresolvable
// or non-http(s) targets.
func (p *Page) AbsURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	resolved, err := p.base.Parse(href)
	if err != nil {
		return ""
	}
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// Strategy is one independent extraction pass over a page.
type Strategy interface {
	Name() string
	Extract(p *Page) []models.ScrapedSponsor
}

// Run executes every strategy over the page and concatenates candidates.
func Run(p *Page, strategies []Strategy) []models.ScrapedSponsor {
	var out []models.ScrapedSponsor
	for _, s := range strategies {
		out = append(out, s.Extract(p)...)
	}
	return out
}

// DefaultStrategies returns the full strategy set in canonical order. The
// optional extra CSS selectors extend the section scan.
func DefaultStrategies(extraSelectors ...string) ([]Strategy, error) {
	sections, err := NewSectionScan(extraSelectors...)
	if err != nil {
		return nil, err
	}
	return []Strategy{
		sections,
		LabeledCards{},
		ListMarkup{},
		HeadingSections{},
		GridGallery{},
	}, nil
}

// sponsorClassRe matches class/id values that label sponsor content.
var sponsorClassRe = regexp.MustCompile(`(?i)(sponsor|partner)`)

// isSponsorLabeled reports whether the selection's class or id mentions
// sponsor/partner.
func isSponsorLabeled(s *goquery.Selection) bool {
	class, _ := s.Attr("class")
	id, _ := s.Attr("id")
	return sponsorClassRe.MatchString(class) || sponsorClassRe.MatchString(id)
}

// hasSponsorAncestor walks up the tree looking for a sponsor-labeled parent.
func hasSponsorAncestor(s *goquery.Selection) bool {
	for parent := s.Parent(); parent.Length() > 0; parent = parent.Parent() {
		if isSponsorLabeled(parent) {
			return true
		}
	}
	return false
}

// candidate builds a validated ScrapedSponsor. name must already be cleaned;
// logo/website are resolved absolute, and the website is dropped unless it
// leaves the source site (a "view more" self-link is never a sponsor site).
func (p *Page) candidate(name, logoURL, websiteURL, tier string) (models.ScrapedSponsor, bool) {
	if !normalize.IsValidName(name) {
		return models.ScrapedSponsor{}, false
	}
	if websiteURL != "" && !domainutil.IsExternal(websiteURL, p.URL) {
		websiteURL = ""
	}
	return models.ScrapedSponsor{
		Name:       name,
		LogoURL:    logoURL,
		WebsiteURL: websiteURL,
		Tier:       tier,
		SourceURL:  p.URL,
	}, true
}

// externalHref returns the absolute href of the nearest enclosing anchor
// when it points off-site, else "".
func externalHref(p *Page, s *goquery.Selection) string {
	anchor := s.Closest("a")
	if anchor.Length() == 0 {
		return ""
	}
	href := p.AbsURL(anchor.AttrOr("href", ""))
	if href == "" || !domainutil.IsExternal(href, p.URL) {
		return ""
	}
	return href
}

// imageCandidate turns one <img> into a sponsor candidate using the
// image-name resolution ladder.
func imageCandidate(p *Page, img *goquery.Selection, tier string) (models.ScrapedSponsor, bool) {
	name := nameFromImage(p, img)
	if name == "" {
		return models.ScrapedSponsor{}, false
	}
	logo := p.AbsURL(img.AttrOr("src", ""))
	return p.candidate(name, logo, externalHref(p, img), tier)
}
