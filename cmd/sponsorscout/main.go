package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pitchside/sponsorscout/api"
	"github.com/pitchside/sponsorscout/cache"
	"github.com/pitchside/sponsorscout/config"
	"github.com/pitchside/sponsorscout/contact"
	"github.com/pitchside/sponsorscout/extract"
	"github.com/pitchside/sponsorscout/fetcher"
	"github.com/pitchside/sponsorscout/scraper"
	"github.com/pitchside/sponsorscout/webhook"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("sponsorscout starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"maxPages", cfg.Scraper.MaxPages,
	)

	// ── 3. Initialise fetcher and extraction strategies ─────────────
	limiter := fetcher.NewRateLimiter(cfg.Fetcher.HostInterval)
	f := fetcher.New(cfg.Fetcher.Timeout, limiter)

	strategies, err := extract.DefaultStrategies(cfg.Scraper.ExtraSelectors...)
	if err != nil {
		slog.Error("invalid extra selector in configuration", "error", err)
		os.Exit(1)
	}

	sc := scraper.New(f, strategies, cfg.Scraper.MaxPages)

	// ── 4. Initialise contact discovery ─────────────────────────────
	enrich := contact.NewEnrichClient(cfg.Contact.APIKey, cfg.Contact.APIBaseURL, cfg.Contact.APITimeout)
	if enrich == nil {
		slog.Info("enrichment API key not set, API strategies disabled")
	}
	engine := contact.NewEngine(f, enrich)

	// ── 5. Initialise cache and webhook notifier ────────────────────
	cc := cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	notifier := webhook.NewNotifier(cfg.Webhook.Secret, cfg.Webhook.Timeout, cfg.Webhook.MaxRetries)

	// ── 6. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(sc, engine, cfg, cc, notifier, startTime)

	// ── 7. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 8. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("sponsorscout stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
