// Package contact resolves a company name and optional website into ranked,
// confidence-scored contact details via a three-strategy waterfall: website
// scrape, enrichment API, pattern guessing with verification. Each strategy
// runs only while the previous ones have not produced a sufficiently
// confident result.
package contact

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pitchside/sponsorscout/fetcher"
	"github.com/pitchside/sponsorscout/models"
)

// batchSize bounds fan-out when discovering contacts for many companies:
// fixed-size batches, never unbounded parallel fetches.
const batchSize = 5

// Engine runs the discovery waterfall. enrich may be nil when no API key is
// configured; strategies that need it are skipped, not failed.
type Engine struct {
	fetcher *fetcher.Fetcher
	enrich  *EnrichClient
}

// NewEngine creates a discovery engine. Pass a nil enrich client to disable
// the API-backed strategies.
func NewEngine(f *fetcher.Fetcher, enrich *EnrichClient) *Engine {
	return &Engine{fetcher: f, enrich: enrich}
}

// Discover resolves contacts for one company. It never returns an error:
// total failure is an empty Contacts slice.
func (e *Engine) Discover(ctx context.Context, companyName, website string) *models.DiscoveryResult {
	result := &models.DiscoveryResult{Contacts: []models.ContactInfo{}}
	var contacts []models.ContactInfo

	// 1. Website scrape, whenever a website is known.
	if website != "" {
		scraped, data := e.scrapeWebsite(ctx, website)
		contacts = append(contacts, scraped...)
		result.WebsiteData = data
	}

	// 2. Enrichment API, unless the scrape already found a high-confidence
	// email or no key is configured.
	if e.enrich != nil && !hasEmailAtConfidence(contacts, models.ConfidenceHigh) {
		if domain := e.lookupDomain(companyName, website); domain != "" {
			enriched, err := e.enrich.DomainSearch(ctx, domain)
			if err != nil {
				slog.Warn("enrichment lookup failed", "domain", domain, "error", err)
			} else {
				contacts = append(contacts, enriched...)
			}
		}
	}

	// 3. Pattern guessing, only when nothing has produced an email at all.
	if !hasAnyEmail(contacts) {
		contacts = append(contacts, e.guessContacts(ctx, companyName, website)...)
	}

	result.Contacts = DedupeContacts(contacts)
	slog.Info("contact discovery finished",
		"company", companyName,
		"contacts", len(result.Contacts),
	)
	return result
}

// DiscoverBatch resolves contacts for many companies in fixed-size batches
// of concurrent lookups. Results align with the input order.
func (e *Engine) DiscoverBatch(ctx context.Context, companies []DiscoverInput) []*models.DiscoveryResult {
	results := make([]*models.DiscoveryResult, len(companies))

	for start := 0; start < len(companies); start += batchSize {
		end := start + batchSize
		if end > len(companies) {
			end = len(companies)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = e.Discover(ctx, companies[i].CompanyName, companies[i].Website)
			}(i)
		}
		wg.Wait()
	}
	return results
}

// DiscoverInput is one company in a batch discovery request.
type DiscoverInput struct {
	CompanyName string
	Website     string
}

func hasEmailAtConfidence(contacts []models.ContactInfo, confidence string) bool {
	for _, c := range contacts {
		if c.Email != "" && c.Confidence == confidence {
			return true
		}
	}
	return false
}

func hasAnyEmail(contacts []models.ContactInfo) bool {
	for _, c := range contacts {
		if c.Email != "" {
			return true
		}
	}
	return false
}
