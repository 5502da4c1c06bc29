package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/pitchside/sponsorscout/models"
)

func result(name string) *models.ScrapeResult {
	return &models.ScrapeResult{Sponsors: []models.ScrapedSponsor{{Name: name}}}
}

func TestGetSetRoundTrip(t *testing.T) {
	c := New(10, time.Hour)
	key := Key("https://www.gisbornefc.com.au")

	if _, hit := c.Get(key, 60000); hit {
		t.Fatal("empty cache should miss")
	}

	c.Set(key, result("ACME"))
	got, hit := c.Get(key, 60000)
	if !hit {
		t.Fatal("expected a hit")
	}
	if got.Sponsors[0].Name != "ACME" {
		t.Errorf("got %q", got.Sponsors[0].Name)
	}
}

func TestKeyNormalization(t *testing.T) {
	a := Key("https://www.gisbornefc.com.au/")
	b := Key("  HTTPS://WWW.GISBORNEFC.COM.AU  ")
	if a != b {
		t.Error("keys should be case- and slash-insensitive")
	}
	if a == Key("https://other.com.au") {
		t.Error("different sites must not collide")
	}
}

func TestMaxAgeZeroBypassesCache(t *testing.T) {
	c := New(10, time.Hour)
	key := Key("https://example.com")
	c.Set(key, result("X"))

	if _, hit := c.Get(key, 0); hit {
		t.Error("maxAge 0 must bypass the cache")
	}
	if _, hit := c.Get(key, -1); hit {
		t.Error("negative maxAge must bypass the cache")
	}
}

func TestMaxAgeExpiry(t *testing.T) {
	c := New(10, time.Hour)
	key := Key("https://example.com")
	c.Set(key, result("X"))

	time.Sleep(20 * time.Millisecond)
	if _, hit := c.Get(key, 5); hit {
		t.Error("entry older than maxAge should miss")
	}
	if _, hit := c.Get(key, 60000); !hit {
		t.Error("entry within maxAge should hit")
	}
}

func TestMaxAgeClampedToTTL(t *testing.T) {
	c := New(10, 10*time.Millisecond)
	key := Key("https://example.com")
	c.Set(key, result("X"))

	time.Sleep(30 * time.Millisecond)
	// Caller asks for a huge window, but the configured TTL caps it.
	if _, hit := c.Get(key, 3600000); hit {
		t.Error("TTL should cap the caller-supplied maxAge")
	}
}

func TestEvictionAtCapacity(t *testing.T) {
	c := New(2, time.Hour)
	for i := 0; i < 3; i++ {
		c.Set(Key(fmt.Sprintf("https://site%d.com", i)), result("X"))
	}

	c.mu.RLock()
	n := len(c.store)
	c.mu.RUnlock()
	if n > 2 {
		t.Errorf("store has %d entries, capacity is 2", n)
	}
}
