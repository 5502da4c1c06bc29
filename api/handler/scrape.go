package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pitchside/sponsorscout/cache"
	"github.com/pitchside/sponsorscout/models"
	"github.com/pitchside/sponsorscout/scraper"
	"github.com/pitchside/sponsorscout/webhook"
)

// jobStore holds all in-flight and completed async scrape jobs.
var jobStore sync.Map

func init() {
	// Expire finished jobs older than 1 hour.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-1 * time.Hour).Unix()
			jobStore.Range(func(key, value any) bool {
				job := value.(*models.ScrapeJob)
				if job.CreatedAt < cutoff {
					jobStore.Delete(key)
				}
				return true
			})
		}
	}()
}

// Scrape returns a handler for POST /api/v1/sponsors/scrape.
//
// Flow:
//  1. Parse & validate request.
//  2. Cache lookup when the client allows stale results.
//  3. Sync: run the scrape inline and return the result.
//     Async: queue a job, return its id immediately, deliver a webhook
//     event on completion when requested.
func Scrape(sc *scraper.Scraper, cc *cache.Cache, notifier *webhook.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ScrapeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		if cc != nil && req.MaxAge > 0 {
			if cached, hit := cc.Get(cache.Key(req.URL), req.MaxAge); hit {
				c.JSON(http.StatusOK, models.ScrapeResponse{
					Success:     true,
					Result:      cached,
					CacheStatus: "hit",
					ElapsedMs:   time.Since(start).Milliseconds(),
				})
				return
			}
		}

		if req.Async {
			jobID := "scrape-" + randomID()
			job := &models.ScrapeJob{
				ID:        jobID,
				URL:       req.URL,
				Status:    "processing",
				CreatedAt: time.Now().Unix(),
			}
			jobStore.Store(jobID, job)

			go runScrapeJob(sc, cc, notifier, *job, req)

			c.JSON(http.StatusAccepted, gin.H{
				"id":     jobID,
				"status": "processing",
			})
			return
		}

		result := sc.ScrapeClubSponsors(c.Request.Context(), req.URL)

		resp := models.ScrapeResponse{
			Success:   true,
			Result:    result,
			ElapsedMs: time.Since(start).Milliseconds(),
		}
		if cc != nil && req.MaxAge > 0 {
			cc.Set(cache.Key(req.URL), result)
			resp.CacheStatus = "miss"
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetScrapeJob returns a handler for GET /api/v1/sponsors/scrape/:id.
func GetScrapeJob() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := jobStore.Load(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "scrape job not found",
				},
			})
			return
		}
		c.JSON(http.StatusOK, val.(*models.ScrapeJob))
	}
}

// runScrapeJob executes one async scrape end to end: scrape, store result,
// cache it, fire the completion webhook. The job is taken by value and a
// fresh copy is stored on completion, so pollers never observe a job whose
// fields are being written.
func runScrapeJob(sc *scraper.Scraper, cc *cache.Cache, notifier *webhook.Notifier, job models.ScrapeJob, req models.ScrapeRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result := sc.ScrapeClubSponsors(ctx, req.URL)

	eventType := webhook.EventScrapeCompleted
	if len(result.Sponsors) == 0 && len(result.Errors) > 0 {
		job.Status = "failed"
		job.Error = result.Errors[0]
		eventType = webhook.EventScrapeFailed
	} else {
		job.Status = "completed"
		if cc != nil {
			cc.Set(cache.Key(req.URL), result)
		}
	}
	job.Result = result
	jobStore.Store(job.ID, &job)

	if req.WebhookURL != "" && notifier != nil {
		notifier.DeliverAsync(req.WebhookURL, &webhook.Event{
			Type:      eventType,
			JobID:     job.ID,
			Timestamp: time.Now().Unix(),
			Data:      result,
		})
	}
}

// randomID generates a short random hex string for job IDs.
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
