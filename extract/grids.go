package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pitchside/sponsorscout/models"
	"github.com/pitchside/sponsorscout/normalize"
)

// gridClassRe matches logo-grid / gallery style container classes.
var gridClassRe = regexp.MustCompile(`(?i)(sponsor|partner|logo)s?[-_ ]?(grid|gallery|carousel|slider|wall|row|strip|logos)`)

// GridGallery extracts sponsors from logo grids and galleries. Both bare
// images and anchors (with optional nested image) are examined; anchor text
// wins over an image-derived name when both exist.
type GridGallery struct{}

func (GridGallery) Name() string { return "grids" }

func (GridGallery) Extract(p *Page) []models.ScrapedSponsor {
	var out []models.ScrapedSponsor

	p.Doc.Find("div, section, ul").Each(func(_ int, grid *goquery.Selection) {
		class, _ := grid.Attr("class")
		id, _ := grid.Attr("id")
		if !gridClassRe.MatchString(class) && !gridClassRe.MatchString(id) {
			return
		}

		grid.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			name := normalize.Clean(strings.TrimSpace(a.Text()))
			website := p.AbsURL(a.AttrOr("href", ""))

			var logo string
			if img := a.Find("img").First(); img.Length() > 0 {
				logo = p.AbsURL(img.AttrOr("src", ""))
				if name == "" {
					name = nameFromImage(p, img)
				}
			}

			if sponsor, ok := p.candidate(name, logo, website, ""); ok {
				out = append(out, sponsor)
			}
		})

		grid.Find("img").Each(func(_ int, img *goquery.Selection) {
			if img.Closest("a").Length() > 0 {
				return // handled via the anchor pass
			}
			if sponsor, ok := imageCandidate(p, img, ""); ok {
				out = append(out, sponsor)
			}
		})
	})

	return out
}
