package models

// Contact provenance sources, in descending trust order.
const (
	SourceWebsite = "website"
	SourceAPI     = "api"
	SourcePattern = "pattern"
)

// Contact confidence levels. The ordering high > medium > low is total and
// drives best-contact selection.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// confidenceRank maps a confidence level to its sort weight.
var confidenceRank = map[string]int{
	ConfidenceHigh:   3,
	ConfidenceMedium: 2,
	ConfidenceLow:    1,
}

// ConfidenceRank returns the numeric weight of a confidence level
// (higher is better). Unknown levels rank below low.
func ConfidenceRank(confidence string) int {
	return confidenceRank[confidence]
}

// ContactInfo is a single discovered contact for a company. At least one of
// Email, Phone or LinkedIn is always present.
type ContactInfo struct {
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
	ContactRole string `json:"contact_role,omitempty"`
	LinkedIn    string `json:"linkedin,omitempty"`

	// Source records which discovery strategy produced this contact:
	// "website", "api" or "pattern".
	Source string `json:"source"`

	// Confidence is "high", "medium" or "low".
	Confidence string `json:"confidence"`

	// Verified is true only when the contact was confirmed by direct
	// scrape provenance (a mailto: link) or an external verification call.
	Verified bool `json:"verified,omitempty"`
}

// WebsiteData summarises what the website scrape strategy observed.
type WebsiteData struct {
	HasContactPage bool `json:"has_contact_page"`
	HasSocialLinks bool `json:"has_social_links"`
}

// DiscoveryResult is the outcome of one contact discovery run.
type DiscoveryResult struct {
	// Contacts is deduplicated by email (or LinkedIn URL when the email
	// is empty), in discovery order.
	Contacts    []ContactInfo `json:"contacts"`
	WebsiteData WebsiteData   `json:"website_data"`
}

// BestContact implements the caller-facing selection policy: the first
// high-confidence contact with an email, else the first medium-confidence
// email, else any contact with an email. Returns nil when no contact
// carries an email.
func BestContact(contacts []ContactInfo) *ContactInfo {
	for _, want := range []string{ConfidenceHigh, ConfidenceMedium} {
		for i := range contacts {
			if contacts[i].Confidence == want && contacts[i].Email != "" {
				return &contacts[i]
			}
		}
	}
	for i := range contacts {
		if contacts[i].Email != "" {
			return &contacts[i]
		}
	}
	return nil
}
