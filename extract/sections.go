package extract

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/pitchside/sponsorscout/models"
)

// SectionScan finds elements whose class or id mentions sponsor/partner and
// treats every descendant image as a candidate. Extra CSS selectors (from
// config) extend the built-in class/id match for sites with bespoke markup.
type SectionScan struct {
	extra []cascadia.Selector
}

// NewSectionScan compiles the optional extra selectors. A selector that does
// not parse is a configuration error and fails construction.
func NewSectionScan(extraSelectors ...string) (*SectionScan, error) {
	s := &SectionScan{}
	for _, raw := range extraSelectors {
		sel, err := cascadia.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("section scan: bad selector %q: %w", raw, err)
		}
		s.extra = append(s.extra, sel)
	}
	return s, nil
}

func (s *SectionScan) Name() string { return "sections" }

func (s *SectionScan) Extract(p *Page) []models.ScrapedSponsor {
	var out []models.ScrapedSponsor

	scan := func(section *goquery.Selection) {
		section.Find("img").Each(func(_ int, img *goquery.Selection) {
			if sponsor, ok := imageCandidate(p, img, ""); ok {
				out = append(out, sponsor)
			}
		})
	}

	p.Doc.Find("div, section, aside, footer, ul, ol").Each(func(_ int, el *goquery.Selection) {
		if isSponsorLabeled(el) {
			scan(el)
		}
	})

	for _, sel := range s.extra {
		p.Doc.FindMatcher(sel).Each(func(_ int, el *goquery.Selection) {
			scan(el)
		})
	}

	return out
}
