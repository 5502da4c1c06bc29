package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pitchside/sponsorscout/models"
	"github.com/pitchside/sponsorscout/normalize"
)

// cardClassRe matches card-style container classes.
var cardClassRe = regexp.MustCompile(`(?i)\b[\w-]*(card|tile|item|box|block|profile)\b`)

// LabeledCards finds card-style elements carrying an explicit name element.
// To guard against false positives on generic card markup, a card only
// counts when it is nested inside a sponsor-labeled ancestor or itself
// carries a sponsor/partner class.
type LabeledCards struct{}

func (LabeledCards) Name() string { return "cards" }

// name elements checked inside a card, heading context first.
const cardNameSelector = "h3, h4, h5, h6, .sponsor-name, .partner-name, .name, .title"

func (LabeledCards) Extract(p *Page) []models.ScrapedSponsor {
	var out []models.ScrapedSponsor

	p.Doc.Find("div, li, article").Each(func(_ int, card *goquery.Selection) {
		class, _ := card.Attr("class")
		if !cardClassRe.MatchString(class) {
			return
		}
		if !isSponsorLabeled(card) && !hasSponsorAncestor(card) {
			return
		}

		nameEl := card.Find(cardNameSelector).First()
		if nameEl.Length() == 0 {
			return
		}
		name := normalize.Clean(strings.TrimSpace(nameEl.Text()))

		var logo string
		if img := card.Find("img").First(); img.Length() > 0 {
			logo = p.AbsURL(img.AttrOr("src", ""))
			if name == "" {
				name = nameFromImage(p, img)
			}
		}

		var website string
		if a := card.Find("a[href]").First(); a.Length() > 0 {
			website = p.AbsURL(a.AttrOr("href", ""))
		}

		if sponsor, ok := p.candidate(name, logo, website, ""); ok {
			out = append(out, sponsor)
		}
	})

	return out
}
