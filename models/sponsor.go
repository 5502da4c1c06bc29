package models

// ScrapedSponsor is a single sponsor entity extracted from a club website.
// Name is the normalized display string; it has already passed the garbage
// classifier by the time a sponsor reaches a result collection.
type ScrapedSponsor struct {
	// Name is the normalized company name (2-100 chars).
	Name string `json:"name"`

	// LogoURL is the absolute URL of the sponsor's logo image, if found.
	LogoURL string `json:"logo_url,omitempty"`

	// WebsiteURL is the sponsor's own site. Always on a different base
	// domain than the page it was scraped from, never a self-link.
	WebsiteURL string `json:"website_url,omitempty"`

	// Tier is the free-text sponsorship level ("Gold", "Principal", ...)
	// inferred from nearby heading text. Empty when no heading context
	// was available.
	Tier string `json:"tier,omitempty"`

	// SourceURL is the page the sponsor was found on.
	SourceURL string `json:"source_url"`
}

// ScrapeResult is the outcome of one full sponsor scrape of a club website.
type ScrapeResult struct {
	// Sponsors is deduplicated case-insensitively by name, in first-seen order.
	Sponsors []ScrapedSponsor `json:"sponsors"`

	// ScrapedURLs lists every page that was fetched and scanned.
	ScrapedURLs []string `json:"scraped_urls"`

	// Errors accumulates page-level failures. A non-empty Errors slice
	// with a non-empty Sponsors slice is a partial success.
	Errors []string `json:"errors"`
}
