package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pitchside/sponsorscout/fetcher"
	"github.com/pitchside/sponsorscout/models"
)

func newTestEngine(enrich *EnrichClient) *Engine {
	limiter := fetcher.NewRateLimiter(time.Millisecond)
	return NewEngine(fetcher.New(5*time.Second, limiter), enrich)
}

func findByEmail(t *testing.T, contacts []models.ContactInfo, email string) models.ContactInfo {
	t.Helper()
	for _, c := range contacts {
		if c.Email == email {
			return c
		}
	}
	t.Fatalf("contact %q not found in %+v", email, contacts)
	return models.ContactInfo{}
}

func TestDiscoverWebsiteMailto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/contact":
			w.Write([]byte(`<html><body>
				<a href="mailto:sponsorship@acme.com.au?subject=hi">Email us</a>
				<p>Or try personal@gmail.com or noreply@acme.com.au</p>
			</body></html>`))
		case "/":
			w.Write([]byte(`<html><body>
				<a href="/contact">Contact</a>
				<a href="https://www.facebook.com/acme">Facebook</a>
				<p>Call us on 03 9123 4567</p>
			</body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	engine := newTestEngine(nil)
	result := engine.Discover(context.Background(), "ACME Pty Ltd", srv.URL)

	c := findByEmail(t, result.Contacts, "sponsorship@acme.com.au")
	if c.Confidence != models.ConfidenceHigh {
		t.Errorf("mailto confidence = %q, want high", c.Confidence)
	}
	if !c.Verified {
		t.Error("mailto contact should be verified")
	}
	if c.Source != models.SourceWebsite {
		t.Errorf("source = %q, want website", c.Source)
	}
	if c.Phone != "03 9123 4567" {
		t.Errorf("phone = %q, want homepage phone attached", c.Phone)
	}

	for _, got := range result.Contacts {
		if got.Email == "personal@gmail.com" {
			t.Error("personal provider email should be filtered out")
		}
		if got.Email == "noreply@acme.com.au" {
			t.Error("administrative email should be filtered out")
		}
		if got.Source == models.SourcePattern {
			t.Error("pattern guessing should not run once an email was found")
		}
	}

	if !result.WebsiteData.HasContactPage {
		t.Error("HasContactPage should be true")
	}
	if !result.WebsiteData.HasSocialLinks {
		t.Error("HasSocialLinks should be true")
	}
}

func TestDiscoverTextEmailIsMedium(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<html><body><p>Reach us at info@example.org.</p></body></html>`))
	}))
	defer srv.Close()

	engine := newTestEngine(nil)
	result := engine.Discover(context.Background(), "Example", srv.URL)

	c := findByEmail(t, result.Contacts, "info@example.org")
	if c.Confidence != models.ConfidenceMedium {
		t.Errorf("text email confidence = %q, want medium", c.Confidence)
	}
	if c.Verified {
		t.Error("text email should not be verified")
	}
}

func TestDiscoverJSONLDEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<html><head>
			<script type="application/ld+json">
			{"@type":"Organization","contactPoint":{"email":"mailto:enquiries@widgets.net"}}
			</script>
		</head><body>Widgets</body></html>`))
	}))
	defer srv.Close()

	engine := newTestEngine(nil)
	result := engine.Discover(context.Background(), "Widgets", srv.URL)

	c := findByEmail(t, result.Contacts, "enquiries@widgets.net")
	if c.Confidence != models.ConfidenceMedium {
		t.Errorf("JSON-LD email confidence = %q, want medium", c.Confidence)
	}
}

func TestDiscoverPatternFiresOnlyWithoutEmails(t *testing.T) {
	engine := newTestEngine(nil)
	result := engine.Discover(context.Background(), "Alan Mance Motors", "")

	if len(result.Contacts) != 1 {
		t.Fatalf("contacts = %d, want 1 pattern guess", len(result.Contacts))
	}
	c := result.Contacts[0]
	if c.Source != models.SourcePattern {
		t.Errorf("source = %q, want pattern", c.Source)
	}
	if c.Email != "info@alanmancemotors.com.au" {
		t.Errorf("guessed email = %q", c.Email)
	}
	if c.Confidence != models.ConfidenceLow || c.Verified {
		t.Errorf("unverified guess should be low confidence, got %q verified=%v", c.Confidence, c.Verified)
	}
}

func TestDiscoverPatternVerifiesGuesses(t *testing.T) {
	var verified []string
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/domain-search":
			w.Write([]byte(`{"data":{"emails":[]}}`))
		case "/email-verifier":
			email := r.URL.Query().Get("email")
			verified = append(verified, email)
			result := "undeliverable"
			if email == "contact@alanmancemotors.com.au" {
				result = "deliverable"
			}
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"result": result},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer apiSrv.Close()

	enrich := NewEnrichClient("test-key", apiSrv.URL, 5*time.Second)
	engine := newTestEngine(enrich)
	result := engine.Discover(context.Background(), "Alan Mance Motors", "")

	if len(result.Contacts) != 1 {
		t.Fatalf("contacts = %d, want 1 verified guess: %+v", len(result.Contacts), result.Contacts)
	}
	c := result.Contacts[0]
	if c.Email != "contact@alanmancemotors.com.au" {
		t.Errorf("guessed email = %q", c.Email)
	}
	if c.Source != models.SourcePattern {
		t.Errorf("source = %q, want pattern", c.Source)
	}
	if c.Confidence != models.ConfidenceMedium || !c.Verified {
		t.Errorf("verified guess should be medium confidence, got %q verified=%v", c.Confidence, c.Verified)
	}

	want := []string{"info@alanmancemotors.com.au", "contact@alanmancemotors.com.au"}
	if len(verified) != len(want) {
		t.Fatalf("verification should stop at the first deliverable guess, queried %v", verified)
	}
	for i, w := range want {
		if verified[i] != w {
			t.Errorf("verification %d = %q, want %q", i, verified[i], w)
		}
	}
}

func TestDiscoverEnrichmentSkippedOnHighEmail(t *testing.T) {
	enrichCalled := false
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		enrichCalled = true
		w.Write([]byte(`{"data":{"emails":[]}}`))
	}))
	defer apiSrv.Close()

	siteSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><a href="mailto:contact@club.org.au">Contact</a></body></html>`))
	}))
	defer siteSrv.Close()

	enrich := NewEnrichClient("test-key", apiSrv.URL, 5*time.Second)
	engine := newTestEngine(enrich)
	result := engine.Discover(context.Background(), "Club", siteSrv.URL)

	if enrichCalled {
		t.Error("enrichment should be skipped when a high-confidence email exists")
	}
	findByEmail(t, result.Contacts, "contact@club.org.au")
}

func TestDiscoverEnrichmentRuns(t *testing.T) {
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/domain-search" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"domain": "acme.com.au",
				"emails": []map[string]any{
					{
						"value": "jane.doe@acme.com.au", "first_name": "Jane",
						"last_name": "Doe", "position": "Marketing Manager",
						"department": "marketing", "confidence": 92,
						"verification": map[string]any{"status": "valid"},
					},
					{
						"value": "bob@acme.com.au", "first_name": "Bob",
						"last_name": "Lee", "position": "Engineer",
						"department": "it", "confidence": 95,
						"verification": map[string]any{"status": "unknown"},
					},
				},
			},
		})
	}))
	defer apiSrv.Close()

	enrich := NewEnrichClient("test-key", apiSrv.URL, 5*time.Second)
	engine := newTestEngine(enrich)
	result := engine.Discover(context.Background(), "ACME Pty Ltd", "")

	jane := findByEmail(t, result.Contacts, "jane.doe@acme.com.au")
	if jane.Confidence != models.ConfidenceHigh {
		t.Errorf("confidence 92 should bucket high, got %q", jane.Confidence)
	}
	if !jane.Verified {
		t.Error("valid verification status should mark verified")
	}
	if jane.ContactName != "Jane Doe" || jane.ContactRole != "Marketing Manager" {
		t.Errorf("name/role = %q/%q", jane.ContactName, jane.ContactRole)
	}

	// Marketing outranks other departments regardless of raw score.
	var order []string
	for _, c := range result.Contacts {
		if c.Source == models.SourceAPI {
			order = append(order, c.Email)
		}
	}
	if len(order) != 2 || order[0] != "jane.doe@acme.com.au" {
		t.Errorf("API contact order = %v", order)
	}
}

func TestDiscoverBatchAlignsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><a href="mailto:hello@site.com.au">Hi</a></body></html>`))
	}))
	defer srv.Close()

	engine := newTestEngine(nil)
	inputs := []DiscoverInput{
		{CompanyName: "First Co", Website: srv.URL},
		{CompanyName: "Second Co"},
		{CompanyName: "Third Co", Website: srv.URL},
	}
	results := engine.DiscoverBatch(context.Background(), inputs)

	if len(results) != len(inputs) {
		t.Fatalf("results = %d, want %d", len(results), len(inputs))
	}
	for i, r := range results {
		if r == nil {
			t.Fatalf("result %d is nil", i)
		}
	}
	findByEmail(t, results[0].Contacts, "hello@site.com.au")
	if len(results[1].Contacts) != 1 || results[1].Contacts[0].Source != models.SourcePattern {
		t.Errorf("website-less company should fall through to pattern, got %+v", results[1].Contacts)
	}
}

func TestDedupeContacts(t *testing.T) {
	in := []models.ContactInfo{
		{Email: "info@acme.com.au", Source: models.SourceWebsite, Confidence: models.ConfidenceHigh},
		{Email: "INFO@acme.com.au", Source: models.SourceAPI, Confidence: models.ConfidenceMedium},
		{LinkedIn: "https://linkedin.com/company/acme", Source: models.SourceWebsite},
		{Phone: "03 9123 4567", Source: models.SourceWebsite},
		{Phone: "04 1234 5678", Source: models.SourceWebsite},
	}
	out := DedupeContacts(in)
	if len(out) != 4 {
		t.Fatalf("len = %d, want 4", len(out))
	}
	if out[0].Source != models.SourceWebsite {
		t.Error("first occurrence should win on email collision")
	}
}

func TestBestContactPriority(t *testing.T) {
	contacts := []models.ContactInfo{
		{LinkedIn: "https://linkedin.com/company/x", Confidence: models.ConfidenceHigh},
		{Email: "low@x.com", Confidence: models.ConfidenceLow},
		{Email: "med@x.com", Confidence: models.ConfidenceMedium},
		{Email: "high@x.com", Confidence: models.ConfidenceHigh},
	}
	best := models.BestContact(contacts)
	if best == nil || best.Email != "high@x.com" {
		t.Fatalf("best = %+v, want high@x.com", best)
	}

	best = models.BestContact(contacts[:3])
	if best == nil || best.Email != "med@x.com" {
		t.Fatalf("best = %+v, want med@x.com", best)
	}

	best = models.BestContact(contacts[:2])
	if best == nil || best.Email != "low@x.com" {
		t.Fatalf("best = %+v, want low@x.com", best)
	}

	if models.BestContact(contacts[:1]) != nil {
		t.Error("no email anywhere should yield nil")
	}
}

func TestEmailRanking(t *testing.T) {
	contacts := buildEmailContacts(nil, []string{
		"office@x.com", "marketing@x.com", "zzz@x.com", "info@x.com", "sponsorship@x.com",
	})
	if len(contacts) != maxEmailsPerSite {
		t.Fatalf("len = %d, want %d", len(contacts), maxEmailsPerSite)
	}
	want := []string{"marketing@x.com", "sponsorship@x.com", "info@x.com"}
	for i, w := range want {
		if contacts[i].Email != w {
			t.Errorf("rank %d = %q, want %q", i, contacts[i].Email, w)
		}
	}
}
