package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pitchside/sponsorscout/models"
)

// maxSiblingScan bounds how far past a sponsor heading the section scan
// reaches before giving up.
const maxSiblingScan = 10

// tierKeywords maps heading keywords to the inferred sponsorship tier,
// checked in order so "major gold day" resolves to Principal.
var tierKeywords = []struct {
	keyword string
	tier    string
}{
	{"major", "Principal"},
	{"principal", "Principal"},
	{"gold", "Gold"},
	{"silver", "Silver"},
	{"bronze", "Bronze"},
	{"community", "Community"},
}

// HeadingSections finds sponsor/partner/supporter headings, infers a tier
// from the heading text, and scans the following sibling elements for
// sponsor images until the next heading or the scan limit.
type HeadingSections struct{}

func (HeadingSections) Name() string { return "headings" }

// InferTier maps heading text to a sponsorship tier, or "" when the heading
// carries no tier keyword.
func InferTier(headingText string) string {
	lower := strings.ToLower(headingText)
	for _, tk := range tierKeywords {
		if strings.Contains(lower, tk.keyword) {
			return tk.tier
		}
	}
	return ""
}

func (HeadingSections) Extract(p *Page) []models.ScrapedSponsor {
	var out []models.ScrapedSponsor

	p.Doc.Find("h1, h2, h3, h4").Each(func(_ int, heading *goquery.Selection) {
		text := strings.ToLower(heading.Text())
		if !strings.Contains(text, "sponsor") && !strings.Contains(text, "partner") &&
			!strings.Contains(text, "supporter") {
			return
		}
		tier := InferTier(text)

		sibling := heading.Next()
		for i := 0; i < maxSiblingScan && sibling.Length() > 0; i++ {
			if goquery.NodeName(sibling) == "h1" || goquery.NodeName(sibling) == "h2" ||
				goquery.NodeName(sibling) == "h3" || goquery.NodeName(sibling) == "h4" {
				break
			}
			sibling.Find("img").Each(func(_ int, img *goquery.Selection) {
				if sponsor, ok := imageCandidate(p, img, tier); ok {
					out = append(out, sponsor)
				}
			})
			// A bare <img> sibling has no descendants to Find.
			if goquery.NodeName(sibling) == "img" {
				if sponsor, ok := imageCandidate(p, sibling, tier); ok {
					out = append(out, sponsor)
				}
			}
			sibling = sibling.Next()
		}
	})

	return out
}
