// Package api exposes the recorded meetings over a read-only HTTP API.
package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/meeting-tracker/internal/database"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
	"github.com/jonesrussell/meeting-tracker/internal/report"
)

const defaultListLimit = 50

// Handler handles HTTP requests for the tracker API.
type Handler struct {
	meetings *database.MeetingsRepository
	service  string
	version  string
	log      logger.Logger
}

// NewHandler creates an API handler over the meetings repository.
func NewHandler(meetings *database.MeetingsRepository, service, version string, log logger.Logger) *Handler {
	return &Handler{
		meetings: meetings,
		service:  service,
		version:  version,
		log:      log,
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.service,
		"version": h.version,
	})
}

// ReadyCheck handles GET /ready. Ready means the store answers queries.
func (h *Handler) ReadyCheck(c *gin.Context) {
	if _, err := h.meetings.Count(c.Request.Context()); err != nil {
		h.log.Error("readiness check failed", logger.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// ListMeetings handles GET /api/v1/meetings?limit=N
func (h *Handler) ListMeetings(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	meetings, err := h.meetings.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("list meetings failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meetings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meetings": meetings,
		"total":    len(meetings),
	})
}

// GetMeeting handles GET /api/v1/meetings/:id
func (h *Handler) GetMeeting(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meeting id"})
		return
	}

	meeting, err := h.meetings.GetByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrMeetingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
		return
	}
	if err != nil {
		h.log.Error("get meeting failed",
			logger.Int64("meeting_id", id),
			logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meeting"})
		return
	}

	c.JSON(http.StatusOK, meeting)
}

// ExportCSV handles GET /api/v1/meetings/export
func (h *Handler) ExportCSV(c *gin.Context) {
	meetings, err := h.meetings.ListRecent(c.Request.Context(), 0)
	if err != nil {
		h.log.Error("export failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export meetings"})
		return
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, meetings); err != nil {
		h.log.Error("csv render failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render export"})
		return
	}

	filename := "meetings-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// GetStats handles GET /api/v1/stats
func (h *Handler) GetStats(c *gin.Context) {
	meetings, err := h.meetings.ListRecent(c.Request.Context(), 0)
	if err != nil {
		h.log.Error("stats failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	byIndustry := make(map[string]int)
	byConfidence := make(map[string]int)
	byLocation := make(map[string]int)
	attendees := 0
	needsReview := 0

	for _, meeting := range meetings {
		byLocation[meeting.Location]++
		for _, attendee := range meeting.Attendees {
			attendees++
			byIndustry[attendee.PrimaryIndustry]++
			byConfidence[attendee.ConfidenceLevel]++
			if attendee.RequiresReview {
				needsReview++
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"meetings":      len(meetings),
		"attendees":     attendees,
		"needs_review":  needsReview,
		"by_industry":   byIndustry,
		"by_confidence": byConfidence,
		"by_location":   byLocation,
	})
}
