package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pitchside/sponsorscout/models"
	"github.com/pitchside/sponsorscout/normalize"
)

// ListMarkup extracts sponsors from <li> items inside sponsor/partner
// labeled <ul>/<ol> lists. The item text (or nested anchor text) is the
// candidate name; a nested image supplies the logo.
type ListMarkup struct{}

func (ListMarkup) Name() string { return "lists" }

func (ListMarkup) Extract(p *Page) []models.ScrapedSponsor {
	var out []models.ScrapedSponsor

	p.Doc.Find("ul, ol").Each(func(_ int, list *goquery.Selection) {
		if !isSponsorLabeled(list) {
			return
		}

		list.ChildrenFiltered("li").Each(func(_ int, item *goquery.Selection) {
			var name, website string

			if a := item.Find("a[href]").First(); a.Length() > 0 {
				name = normalize.Clean(strings.TrimSpace(a.Text()))
				website = p.AbsURL(a.AttrOr("href", ""))
			}
			if name == "" {
				name = normalize.Clean(strings.TrimSpace(item.Text()))
			}

			var logo string
			if img := item.Find("img").First(); img.Length() > 0 {
				logo = p.AbsURL(img.AttrOr("src", ""))
				if name == "" {
					name = nameFromImage(p, img)
				}
			}

			if sponsor, ok := p.candidate(name, logo, website, ""); ok {
				out = append(out, sponsor)
			}
		})
	})

	return out
}
