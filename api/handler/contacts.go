package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pitchside/sponsorscout/contact"
	"github.com/pitchside/sponsorscout/models"
)

// maxBatchCompanies caps how many companies one batch request may carry.
const maxBatchCompanies = 50

// Discover returns a handler for POST /api/v1/contacts/discover.
func Discover(engine *contact.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.DiscoverRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.DiscoverResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		result := engine.Discover(c.Request.Context(), req.CompanyName, req.Website)

		c.JSON(http.StatusOK, models.DiscoverResponse{
			Success:   true,
			Result:    result,
			Best:      models.BestContact(result.Contacts),
			ElapsedMs: time.Since(start).Milliseconds(),
		})
	}
}

// batchDiscoverRequest is the payload for POST /api/v1/contacts/discover/batch.
type batchDiscoverRequest struct {
	Companies []models.DiscoverRequest `json:"companies" binding:"required,min=1"`
}

// DiscoverBatch returns a handler for POST /api/v1/contacts/discover/batch.
// Lookups run concurrently in fixed-size batches; the response preserves
// input order.
func DiscoverBatch(engine *contact.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req batchDiscoverRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		if len(req.Companies) > maxBatchCompanies {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "too many companies in one batch",
				},
			})
			return
		}

		inputs := make([]contact.DiscoverInput, len(req.Companies))
		for i, co := range req.Companies {
			inputs[i] = contact.DiscoverInput{CompanyName: co.CompanyName, Website: co.Website}
		}

		results := engine.DiscoverBatch(c.Request.Context(), inputs)

		responses := make([]models.DiscoverResponse, len(results))
		for i, r := range results {
			responses[i] = models.DiscoverResponse{
				Success: true,
				Result:  r,
				Best:    models.BestContact(r.Contacts),
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"results":    responses,
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
	}
}
