// Package scraper orchestrates the sponsor discovery pipeline: page
// discovery, per-page extraction, normalization, deduplication. A single
// crawl processes pages sequentially to respect per-domain rate limiting;
// page-level failures degrade to partial results, never abort the run.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pitchside/sponsorscout/extract"
	"github.com/pitchside/sponsorscout/fetcher"
	"github.com/pitchside/sponsorscout/models"
	"github.com/pitchside/sponsorscout/normalize"
)

// Scraper runs club sponsor scrapes. Safe for concurrent use; concurrent
// sessions share the fetcher's rate-limit clock.
type Scraper struct {
	fetcher    *fetcher.Fetcher
	strategies []extract.Strategy
	maxPages   int
}

// New creates a Scraper using the given fetcher and extraction strategies.
// maxPages caps how many pages one scrape will fetch; 0 means the default.
func New(f *fetcher.Fetcher, strategies []extract.Strategy, maxPages int) *Scraper {
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	return &Scraper{fetcher: f, strategies: strategies, maxPages: maxPages}
}

// ScrapeClubSponsors turns a club website into a deduplicated list of
// sponsor entities. There is no fatal error path: total failure manifests
// as an empty Sponsors slice plus entries in Errors.
func (s *Scraper) ScrapeClubSponsors(ctx context.Context, websiteURL string) *models.ScrapeResult {
	start := time.Now()
	result := &models.ScrapeResult{
		Sponsors:    []models.ScrapedSponsor{},
		ScrapedURLs: []string{},
		Errors:      []string{},
	}

	pages := s.DiscoverPages(ctx, websiteURL)

	var candidates []models.ScrapedSponsor
	for _, pageURL := range pages {
		if ctx.Err() != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("scrape aborted: %v", ctx.Err()))
			break
		}

		body, ok := s.fetcher.Fetch(ctx, pageURL)
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to fetch %s", pageURL))
			continue
		}

		page, err := extract.NewPage(pageURL, body)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to parse %s: %v", pageURL, err))
			continue
		}

		found := extract.Run(page, s.strategies)
		slog.Debug("page extracted", "url", pageURL, "candidates", len(found))

		result.ScrapedURLs = append(result.ScrapedURLs, pageURL)
		candidates = append(candidates, found...)
	}

	for _, sp := range Dedupe(candidates) {
		// Final gate: nothing invalid leaves the pipeline even if a
		// strategy regresses.
		if normalize.IsValidName(sp.Name) {
			result.Sponsors = append(result.Sponsors, sp)
		}
	}

	slog.Info("club scrape finished",
		"url", websiteURL,
		"pages", len(result.ScrapedURLs),
		"sponsors", len(result.Sponsors),
		"errors", len(result.Errors),
		"elapsed", time.Since(start),
	)
	return result
}
