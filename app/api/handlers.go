package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/app-comb/app/database"
	"github.com/lysyi3m/app-comb/app/review"
	"github.com/lysyi3m/app-comb/app/tasks"
)

type Handler struct {
	reviewRepo database.ReviewRepository
	linkRepo   database.LinkHealthRepository
	reviewer   *review.Reviewer
	scheduler  tasks.TaskSchedulerInterface
	version    string
}

func NewHandler(reviewRepo database.ReviewRepository, linkRepo database.LinkHealthRepository,
	reviewer *review.Reviewer, scheduler tasks.TaskSchedulerInterface, version string) *Handler {
	return &Handler{
		reviewRepo: reviewRepo,
		linkRepo:   linkRepo,
		reviewer:   reviewer,
		scheduler:  scheduler,
		version:    version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.reviewRepo.GetStats(c.Request.Context())
	if err != nil {
		slog.Error("Database error", "operation", "get_stats", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	linksTotal, linksFailing, err := h.linkRepo.GetSummary(c.Request.Context())
	if err != nil {
		slog.Error("Database error", "operation", "get_link_summary", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		Reviews: ReviewStatsResponse{
			Total:      stats.Total,
			InReview:   stats.InReview,
			Rejected:   stats.Rejected,
			Incomplete: stats.Incomplete,
			Failed:     stats.Failed,
		},
		Links: LinkStatsResponse{
			Total:   linksTotal,
			Failing: linksFailing,
		},
	})
}

// EnqueueReview accepts a submission event and queues the triage run. The
// validation outcome is parsed strictly here so a malformed payload is
// rejected at the boundary instead of defaulting to an accepted run.
func (h *Handler) EnqueueReview(c *gin.Context) {
	issueNumber, err := strconv.Atoi(c.Param("id"))
	if err != nil || issueNumber <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issue number"})
		return
	}

	var body EnqueueReviewRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	outcome, err := review.ParseValidationOutcome(string(body.Validation))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := tasks.NewReviewTask(h.reviewer, review.Request{
		IssueNumber: issueNumber,
		Author:      body.Author,
		Outcome:     outcome,
	})

	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue review", "issue", issueNumber, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queue is full"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"queued": true, "issue": issueNumber})
}

func (h *Handler) ListRecentReviews(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	reviews, err := h.reviewRepo.GetRecent(c.Request.Context(), limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_recent_reviews", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewResponse{
			ID:          r.ID,
			IssueNumber: r.IssueNumber,
			Decision:    r.Decision,
			Label:       r.Label,
			Platform:    r.Platform,
			Category:    r.Category,
			DurationMs:  r.DurationMs,
			Error:       r.Error,
			CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{"reviews": out})
}

func (h *Handler) ListFailingLinks(c *gin.Context) {
	threshold := 7
	if raw := c.Query("threshold"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			threshold = parsed
		}
	}

	links, err := h.linkRepo.GetFailing(c.Request.Context(), threshold)
	if err != nil {
		slog.Error("Database error", "operation", "get_failing_links", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	out := make([]LinkHealthResponse, 0, len(links))
	for _, l := range links {
		out = append(out, LinkHealthResponse{
			URL:        l.URL,
			AppName:    l.AppName,
			Failures:   l.Failures,
			LastStatus: l.LastStatus,
			CheckedAt:  l.CheckedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{"links": out, "threshold": threshold})
}

// EnqueueReviewRequest is the submission event payload. Validation stays a
// raw message so the strict outcome parser owns its decoding.
type EnqueueReviewRequest struct {
	Author     string          `json:"author"`
	Validation json.RawMessage `json:"validation"`
}
