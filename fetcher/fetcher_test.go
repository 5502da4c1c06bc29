package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != chromeUA {
			t.Errorf("unexpected user agent: %q", ua)
		}
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	f := New(5*time.Second, NewRateLimiter(10*time.Millisecond))
	body, ok := f.Fetch(context.Background(), srv.URL)
	if !ok {
		t.Fatal("expected fetch to succeed")
	}
	if string(body) != "<html><body>ok</body></html>" {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestFetchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := New(5*time.Second, NewRateLimiter(10*time.Millisecond))
	if _, ok := f.Fetch(context.Background(), srv.URL); ok {
		t.Error("expected fetch of a 404 to report ok=false")
	}
}

// Two sequential fetches to the same host must be spaced by at least the
// configured per-host interval.
func TestFetchRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	const interval = 200 * time.Millisecond
	f := New(5*time.Second, NewRateLimiter(interval))

	ctx := context.Background()
	if _, ok := f.Fetch(ctx, srv.URL); !ok {
		t.Fatal("first fetch failed")
	}

	start := time.Now()
	if _, ok := f.Fetch(ctx, srv.URL); !ok {
		t.Fatal("second fetch failed")
	}
	if elapsed := time.Since(start); elapsed < interval/2 {
		t.Errorf("second fetch fired after %v, want at least %v", elapsed, interval/2)
	}
}

func TestRateLimiterSeparateHosts(t *testing.T) {
	rl := NewRateLimiter(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// First token for each host is immediate even with a huge interval.
	if err := rl.Wait(ctx, "a.example.com"); err != nil {
		t.Fatalf("first wait for host a: %v", err)
	}
	if err := rl.Wait(ctx, "b.example.com"); err != nil {
		t.Fatalf("first wait for host b: %v", err)
	}
}
