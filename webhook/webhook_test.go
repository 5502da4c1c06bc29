package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDeliverSigned(t *testing.T) {
	const secret = "topsecret"
	var gotSig string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get("X-Scout-Signature")
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	n := NewNotifier(secret, 5*time.Second, 0)
	event := &Event{Type: EventScrapeCompleted, JobID: "job-1", Timestamp: 1234}
	if err := n.Deliver(context.Background(), srv.URL, event); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(gotBody)
	want := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	if gotSig != want {
		t.Errorf("signature = %q, want %q", gotSig, want)
	}

	var decoded Event
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if decoded.Type != EventScrapeCompleted || decoded.JobID != "job-1" {
		t.Errorf("decoded event = %+v", decoded)
	}
}

func TestDeliverUnsignedOmitsHeader(t *testing.T) {
	var hasSig bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasSig = r.Header["X-Scout-Signature"]
	}))
	defer srv.Close()

	n := NewNotifier("", 5*time.Second, 0)
	if err := n.Deliver(context.Background(), srv.URL, &Event{Type: EventScrapeFailed}); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if hasSig {
		t.Error("unsigned delivery must not carry a signature header")
	}
}

func TestDeliverEndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewNotifier("", 5*time.Second, 0)
	if err := n.Deliver(context.Background(), srv.URL, &Event{Type: EventScrapeFailed}); err == nil {
		t.Error("4xx/5xx response should be an error")
	}
}
