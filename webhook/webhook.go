// Package webhook delivers signed completion events for asynchronous
// scrape jobs.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Event types sent to webhook endpoints.
const (
	EventScrapeCompleted = "scrape.completed"
	EventScrapeFailed    = "scrape.failed"
)

// Event is the payload sent to webhook endpoints.
type Event struct {
	Type      string      `json:"type"`
	JobID     string      `json:"job_id"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Notifier delivers events to caller-supplied endpoints. Payloads are
// signed with HMAC-SHA256 when a secret is configured.
type Notifier struct {
	client     *http.Client
	secret     string
	maxRetries int
}

// NewNotifier creates a Notifier. secret may be empty to skip signing.
// maxRetries <= 0 means no retries after the first attempt.
func NewNotifier(secret string, timeout time.Duration, maxRetries int) *Notifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		client:     &http.Client{Timeout: timeout},
		secret:     secret,
		maxRetries: maxRetries,
	}
}

// Deliver sends one event synchronously.
// Signature header: X-Scout-Signature: sha256=<hex>
func (n *Notifier) Deliver(ctx context.Context, url string, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "SponsorScout-Webhook/1.0")

	if n.secret != "" {
		mac := hmac.New(sha256.New, []byte(n.secret))
		mac.Write(body)
		sig := hex.EncodeToString(mac.Sum(nil))
		req.Header.Set("X-Scout-Signature", "sha256="+sig)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: deliver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook: endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// retryDelays spaces out redelivery attempts; the slice is truncated to the
// configured retry count.
var retryDelays = []time.Duration{time.Second, 5 * time.Second, 30 * time.Second}

// DeliverAsync sends an event in the background, retrying failed deliveries
// with increasing delays.
func (n *Notifier) DeliverAsync(url string, event *Event) {
	go func() {
		attempts := 1 + n.maxRetries
		if attempts > len(retryDelays)+1 {
			attempts = len(retryDelays) + 1
		}
		for attempt := 0; attempt < attempts; attempt++ {
			if attempt > 0 {
				time.Sleep(retryDelays[attempt-1])
			}
			ctx, cancel := context.WithTimeout(context.Background(), n.client.Timeout)
			err := n.Deliver(ctx, url, event)
			cancel()
			if err == nil {
				slog.Info("webhook delivered",
					"url", url,
					"event", event.Type,
					"job_id", event.JobID,
					"attempt", attempt+1,
				)
				return
			}
			slog.Warn("webhook delivery failed",
				"url", url,
				"event", event.Type,
				"job_id", event.JobID,
				"attempt", attempt+1,
				"error", err,
			)
		}
		slog.Error("webhook delivery exhausted all retries",
			"url", url,
			"event", event.Type,
			"job_id", event.JobID,
		)
	}()
}
