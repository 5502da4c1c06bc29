package contact

import (
	"context"
	"log/slog"

	"github.com/pitchside/sponsorscout/domainutil"
	"github.com/pitchside/sponsorscout/models"
)

// guessPrefixes are the local parts tried when pattern-guessing, most
// promising first.
var guessPrefixes = []string{"info", "contact", "hello", "enquiries", "admin"}

// lookupDomain resolves the domain used for API lookups and pattern
// guessing: the registrable domain of the known website when there is one,
// otherwise a guess derived from the company name.
func (e *Engine) lookupDomain(companyName, website string) string {
	if website != "" {
		if d := domainutil.DomainFromWebsite(website); d != "" {
			return d
		}
	}
	return domainutil.GuessDomain(companyName)
}

// guessContacts is the last-resort strategy: construct likely addresses on
// the company domain. When a verifier is available the first deliverable
// guess is returned as a verified medium-confidence contact; without one the
// bare info@ guess is returned at low confidence.
func (e *Engine) guessContacts(ctx context.Context, companyName, website string) []models.ContactInfo {
	domain := e.lookupDomain(companyName, website)
	if domain == "" {
		return nil
	}

	if e.enrich != nil {
		for _, prefix := range guessPrefixes {
			if ctx.Err() != nil {
				return nil
			}
			candidate := prefix + "@" + domain
			deliverable, err := e.enrich.VerifyEmail(ctx, candidate)
			if err != nil {
				slog.Warn("pattern verification failed", "email", candidate, "error", err)
				break
			}
			if deliverable {
				return []models.ContactInfo{{
					Email:      candidate,
					Source:     models.SourcePattern,
					Confidence: models.ConfidenceMedium,
					Verified:   true,
				}}
			}
		}
	}

	return []models.ContactInfo{{
		Email:      guessPrefixes[0] + "@" + domain,
		Source:     models.SourcePattern,
		Confidence: models.ConfidenceLow,
	}}
}
