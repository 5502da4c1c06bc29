package models

// ScrapeRequest is the payload for POST /api/v1/sponsors/scrape.
type ScrapeRequest struct {
	// URL is the club website to scrape. Required.
	URL string `json:"url" binding:"required"`

	// Async, when true, queues the scrape and returns a job id immediately.
	Async bool `json:"async,omitempty"`

	// WebhookURL, if set on an async request, receives a signed event when
	// the job completes or fails.
	WebhookURL string `json:"webhook_url,omitempty"`

	// MaxAge is the cache freshness window in milliseconds. Zero disables
	// the cache for this request.
	MaxAge int `json:"max_age,omitempty"`
}

// ScrapeResponse wraps a ScrapeResult for the API layer.
type ScrapeResponse struct {
	Success bool          `json:"success"`
	Result  *ScrapeResult `json:"result,omitempty"`
	Error   *ErrorDetail  `json:"error,omitempty"`

	// CacheStatus is "hit" or "miss" when caching was in play.
	CacheStatus string `json:"cache_status,omitempty"`

	// ElapsedMs is the total server-side processing time.
	ElapsedMs int64 `json:"elapsed_ms,omitempty"`
}

// ScrapeJob tracks an asynchronous scrape through the job store.
type ScrapeJob struct {
	ID        string        `json:"id"`
	URL       string        `json:"url"`
	Status    string        `json:"status"` // "processing", "completed", "failed"
	Result    *ScrapeResult `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
	CreatedAt int64         `json:"created_at"`
}

// DiscoverRequest is the payload for POST /api/v1/contacts/discover.
type DiscoverRequest struct {
	// CompanyName is required.
	CompanyName string `json:"company_name" binding:"required"`

	// Website is the company's site, if known. Enables the website
	// scrape strategy.
	Website string `json:"website,omitempty"`
}

// DiscoverResponse wraps a DiscoveryResult for the API layer.
type DiscoverResponse struct {
	Success bool             `json:"success"`
	Result  *DiscoveryResult `json:"result,omitempty"`

	// Best is the contact chosen by the best-contact policy, when any
	// discovered contact carries an email.
	Best      *ContactInfo `json:"best,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	ElapsedMs int64        `json:"elapsed_ms,omitempty"`
}
