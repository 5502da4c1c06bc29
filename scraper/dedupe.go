package scraper

import (
	"strings"

	"github.com/pitchside/sponsorscout/models"
)

// Dedupe merges sponsors sharing a case-insensitive name. The first-seen
// entity wins its slot and ordering; duplicates only backfill logo, website
// and tier fields that are still empty, never overwriting populated ones.
func Dedupe(sponsors []models.ScrapedSponsor) []models.ScrapedSponsor {
	byName := make(map[string]int, len(sponsors))
	out := make([]models.ScrapedSponsor, 0, len(sponsors))

	for _, sp := range sponsors {
		key := strings.ToLower(strings.TrimSpace(sp.Name))
		idx, dup := byName[key]
		if !dup {
			byName[key] = len(out)
			out = append(out, sp)
			continue
		}

		kept := &out[idx]
		if kept.LogoURL == "" {
			kept.LogoURL = sp.LogoURL
		}
		if kept.WebsiteURL == "" {
			kept.WebsiteURL = sp.WebsiteURL
		}
		if kept.Tier == "" {
			kept.Tier = sp.Tier
		}
	}
	return out
}
