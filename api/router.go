// Package api wires the HTTP surface: routing, authentication and per-key
// rate limiting around the scrape and contact discovery pipelines.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pitchside/sponsorscout/api/handler"
	"github.com/pitchside/sponsorscout/api/middleware"
	"github.com/pitchside/sponsorscout/cache"
	"github.com/pitchside/sponsorscout/config"
	"github.com/pitchside/sponsorscout/contact"
	"github.com/pitchside/sponsorscout/scraper"
	"github.com/pitchside/sponsorscout/webhook"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(sc *scraper.Scraper, engine *contact.Engine, cfg *config.Config, cc *cache.Cache, notifier *webhook.Notifier, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Sponsor scraping
	protected.POST("/sponsors/scrape", handler.Scrape(sc, cc, notifier))
	protected.GET("/sponsors/scrape/:id", handler.GetScrapeJob())

	// Contact discovery
	protected.POST("/contacts/discover", handler.Discover(engine))
	protected.POST("/contacts/discover/batch", handler.DiscoverBatch(engine))

	return r
}
