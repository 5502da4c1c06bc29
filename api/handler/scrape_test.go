package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pitchside/sponsorscout/extract"
	"github.com/pitchside/sponsorscout/fetcher"
	"github.com/pitchside/sponsorscout/models"
	"github.com/pitchside/sponsorscout/scraper"
)

func newScrapeRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	strategies, err := extract.DefaultStrategies()
	if err != nil {
		t.Fatalf("default strategies: %v", err)
	}
	f := fetcher.New(5*time.Second, fetcher.NewRateLimiter(time.Millisecond))
	sc := scraper.New(f, strategies, 1)

	r := gin.New()
	r.POST("/scrape", Scrape(sc, nil, nil))
	r.GET("/scrape/:id", GetScrapeJob())
	return r
}

func TestScrapeAsyncJobLifecycle(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<h2>Our Sponsors</h2>
			<ul class="sponsor-list">
				<li><a href="https://harveynorman.com.au">Harvey Norman</a></li>
			</ul>
		</body></html>`))
	}))
	defer site.Close()

	r := newScrapeRouter(t)

	w := httptest.NewRecorder()
	body := `{"url": "` + site.URL + `", "async": true}`
	req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", w.Code, w.Body.String())
	}
	var accepted struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &accepted); err != nil {
		t.Fatalf("decode accept body: %v", err)
	}
	if accepted.ID == "" || accepted.Status != "processing" {
		t.Fatalf("accept body = %+v", accepted)
	}

	// Poll while the job runs; the stored job must always be readable and
	// eventually reach a terminal state.
	var job models.ScrapeJob
	deadline := time.Now().Add(5 * time.Second)
	for {
		pw := httptest.NewRecorder()
		preq := httptest.NewRequest(http.MethodGet, "/scrape/"+accepted.ID, nil)
		r.ServeHTTP(pw, preq)
		if pw.Code != http.StatusOK {
			t.Fatalf("poll status = %d: %s", pw.Code, pw.Body.String())
		}
		if err := json.Unmarshal(pw.Body.Bytes(), &job); err != nil {
			t.Fatalf("decode job: %v", err)
		}
		if job.Status != "processing" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("job never left processing")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if job.Status != "completed" {
		t.Fatalf("job status = %q, error = %q", job.Status, job.Error)
	}
	if job.Result == nil || len(job.Result.Sponsors) == 0 {
		t.Fatalf("job result = %+v, want sponsors", job.Result)
	}
	if job.Result.Sponsors[0].Name != "Harvey Norman" {
		t.Errorf("sponsor = %q", job.Result.Sponsors[0].Name)
	}
}

func TestGetScrapeJobUnknownID(t *testing.T) {
	r := newScrapeRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/scrape/scrape-deadbeef", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestScrapeRejectsMissingURL(t *testing.T) {
	r := newScrapeRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp models.ScrapeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Error == nil || resp.Error.Code != models.ErrCodeInvalidInput {
		t.Errorf("error body = %+v", resp)
	}
}
