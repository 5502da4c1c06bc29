// Package fetcher performs rate-limited, timeout-bound HTTP GETs with a
// Chrome TLS fingerprint (utls) and browser-like headers. All failures are
// signaled through the ok boolean and logged; Fetch never returns an error
// to its caller, so callers can always continue with partial results.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	tls2 "github.com/refraction-networking/utls"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

const maxBodySize = 10 * 1024 * 1024 // 10 MB cap

// Fetcher is a rate-limited HTTP GET client. Safe for concurrent use.
type Fetcher struct {
	client  *http.Client
	limiter *RateLimiter
	timeout time.Duration
}

// New creates a Fetcher with the given per-request timeout and the injected
// per-host rate limiter.
func New(timeout time.Duration, limiter *RateLimiter) *Fetcher {
	transport := &http.Transport{
		DialTLSContext: dialTLSChrome,
	}
	return &Fetcher{
		client:  &http.Client{Transport: transport},
		limiter: limiter,
		timeout: timeout,
	}
}

// Fetch retrieves targetURL and returns its body. For plain-HTTP URLs the
// HTTPS variant is attempted first, falling back to HTTP on failure.
// Non-2xx responses and transport errors both yield ok=false.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) ([]byte, bool) {
	u, err := url.Parse(targetURL)
	if err != nil || u.Host == "" {
		slog.Warn("fetch: invalid url", "url", targetURL, "error", err)
		return nil, false
	}

	attempts := []string{targetURL}
	if u.Scheme == "http" {
		upgraded := *u
		upgraded.Scheme = "https"
		attempts = []string{upgraded.String(), targetURL}
	}

	for _, attempt := range attempts {
		body, err := f.get(ctx, attempt, u.Hostname())
		if err == nil {
			return body, true
		}
		slog.Warn("fetch failed", "url", attempt, "error", err)
		if ctx.Err() != nil {
			return nil, false
		}
	}
	return nil, false
}

// get performs a single rate-limited GET.
func (f *Fetcher) get(ctx context.Context, targetURL, host string) ([]byte, error) {
	if err := f.limiter.Wait(ctx, host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-AU,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint via
// utls, reducing trivial TLS-level blocking.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls2.UClient(rawConn, &tls2.Config{
		ServerName: host,
	}, tls2.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}
