package contact

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pitchside/sponsorscout/models"
)

const defaultEnrichBaseURL = "https://api.hunter.io/v2"

// deptPriority orders enrichment results by department relevance for a
// sponsorship approach; lower sorts first.
var deptPriority = map[string]int{
	"marketing":  0,
	"executive":  1,
	"sales":      2,
	"management": 3,
}

// EnrichClient talks to a Hunter-compatible email enrichment API.
type EnrichClient struct {
	client *resty.Client
	apiKey string
}

// NewEnrichClient creates an enrichment client. baseURL may be empty to use
// the hosted service. Returns nil when apiKey is empty so callers can pass
// the result straight to NewEngine.
func NewEnrichClient(apiKey, baseURL string, timeout time.Duration) *EnrichClient {
	if apiKey == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = defaultEnrichBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &EnrichClient{client: client, apiKey: apiKey}
}

type domainSearchResponse struct {
	Data struct {
		Domain string `json:"domain"`
		Emails []struct {
			Value        string `json:"value"`
			FirstName    string `json:"first_name"`
			LastName     string `json:"last_name"`
			Position     string `json:"position"`
			Department   string `json:"department"`
			Confidence   int    `json:"confidence"`
			Verification struct {
				Status string `json:"status"`
			} `json:"verification"`
		} `json:"emails"`
	} `json:"data"`
	Errors []struct {
		Details string `json:"details"`
	} `json:"errors"`
}

type verifyResponse struct {
	Data struct {
		Result string `json:"result"`
		Score  int    `json:"score"`
	} `json:"data"`
}

// DomainSearch returns the contacts the enrichment API knows for a domain,
// ordered by department relevance then API confidence.
func (c *EnrichClient) DomainSearch(ctx context.Context, domain string) ([]models.ContactInfo, error) {
	var body domainSearchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"domain":  domain,
			"api_key": c.apiKey,
		}).
		SetResult(&body).
		Get("/domain-search")
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeEnrichFailure, "domain search request failed", err)
	}
	if err := c.statusError(resp); err != nil {
		return nil, err
	}

	ranked := body.Data.Emails
	// Stable insertion sort keeps API order within equal departments;
	// result sets are small.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && enrichLess(ranked[j].Department, ranked[j].Confidence, ranked[j-1].Department, ranked[j-1].Confidence); j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	contacts := make([]models.ContactInfo, 0, len(ranked))
	for _, e := range ranked {
		if e.Value == "" {
			continue
		}
		contacts = append(contacts, models.ContactInfo{
			Email:       strings.ToLower(e.Value),
			ContactName: strings.TrimSpace(e.FirstName + " " + e.LastName),
			ContactRole: e.Position,
			Source:      models.SourceAPI,
			Confidence:  confidenceBucket(e.Confidence),
			Verified:    e.Verification.Status == "valid",
		})
	}
	slog.Debug("enrichment domain search", "domain", domain, "results", len(contacts))
	return contacts, nil
}

// VerifyEmail reports whether the enrichment API considers an address
// deliverable.
func (c *EnrichClient) VerifyEmail(ctx context.Context, email string) (bool, error) {
	var body verifyResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"email":   email,
			"api_key": c.apiKey,
		}).
		SetResult(&body).
		Get("/email-verifier")
	if err != nil {
		return false, models.NewScrapeError(models.ErrCodeEnrichFailure, "email verification request failed", err)
	}
	if err := c.statusError(resp); err != nil {
		return false, err
	}
	return body.Data.Result == "deliverable", nil
}

func (c *EnrichClient) statusError(resp *resty.Response) error {
	switch {
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return models.NewScrapeError(models.ErrCodeEnrichAuthFailure, "enrichment API rejected the key", nil)
	case resp.StatusCode() == http.StatusTooManyRequests:
		return models.NewScrapeError(models.ErrCodeEnrichRateLimited, "enrichment API rate limit reached", nil)
	case resp.IsError():
		return models.NewScrapeError(models.ErrCodeEnrichFailure,
			fmt.Sprintf("enrichment API returned status %d", resp.StatusCode()), nil)
	}
	return nil
}

// confidenceBucket maps the API's 0-100 score to our three levels.
func confidenceBucket(score int) string {
	switch {
	case score > 80:
		return models.ConfidenceHigh
	case score > 50:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func enrichLess(deptA string, confA int, deptB string, confB int) bool {
	ra, okA := deptPriority[strings.ToLower(deptA)]
	rb, okB := deptPriority[strings.ToLower(deptB)]
	if !okA {
		ra = len(deptPriority)
	}
	if !okB {
		rb = len(deptPriority)
	}
	if ra != rb {
		return ra < rb
	}
	return confA > confB
}
