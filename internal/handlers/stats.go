package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/calendar"
	"github.com/JonnyWalker81/habitmood/backend/internal/models"
	"github.com/JonnyWalker81/habitmood/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// maxWindowDays bounds the correlation window a client may request
const maxWindowDays = 366

// StatsHandler serves the habit statistics and mood correlation views
type StatsHandler struct {
	statsService service.StatsService
	now          func() time.Time
}

// NewStatsHandler creates a new statistics handler
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		now:          time.Now,
	}
}

// today reads the client's calendar date from ?today=, defaulting to the server's UTC date
func (h *StatsHandler) today(c *gin.Context) (time.Time, bool) {
	raw := c.Query("today")
	if raw == "" {
		return h.now().UTC(), true
	}
	d, err := calendar.ParseDate(raw)
	if err != nil {
		fieldError(c, "today", "must be a YYYY-MM-DD date", "calendar_date")
		return time.Time{}, false
	}
	return d, true
}

func timeframeParam(c *gin.Context) models.Timeframe {
	return models.Timeframe(c.DefaultQuery("timeframe", string(models.TimeframeWeekly)))
}

// GetStats handles GET /api/v1/stats?timeframe=weekly|monthly|annual|all&today=YYYY-MM-DD
func (h *StatsHandler) GetStats(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	today, ok := h.today(c)
	if !ok {
		return
	}

	bundle, err := h.statsService.GetHabitStats(c.Request.Context(), uid, timeframeParam(c), today)
	if err != nil {
		writeServiceError(c, err, "Stats", "")
		return
	}

	c.JSON(http.StatusOK, bundle)
}

// GetMoodCorrelation handles GET /api/v1/stats/mood-correlation?days=30
func (h *StatsHandler) GetMoodCorrelation(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	today, ok := h.today(c)
	if !ok {
		return
	}

	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxWindowDays {
			fieldError(c, "days", "must be a whole number between 1 and 366", "range")
			return
		}
		days = n
	}

	resp, err := h.statsService.GetMoodCorrelation(c.Request.Context(), uid, days, today)
	if err != nil {
		writeServiceError(c, err, "Stats", "")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetDashboard handles GET /api/v1/stats/dashboard?timeframe=...
func (h *StatsHandler) GetDashboard(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	today, ok := h.today(c)
	if !ok {
		return
	}

	dashboard, err := h.statsService.GetDashboard(c.Request.Context(), uid, timeframeParam(c), today)
	if err != nil {
		writeServiceError(c, err, "Stats", "")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
