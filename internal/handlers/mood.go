package handlers

import (
	"net/http"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/calendar"
	"github.com/JonnyWalker81/habitmood/backend/internal/models"
	"github.com/JonnyWalker81/habitmood/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type MoodHandler struct {
	moodService service.MoodService
	now         func() time.Time
}

// NewMoodHandler creates a new daily mood handler
func NewMoodHandler(moodService service.MoodService) *MoodHandler {
	return &MoodHandler{
		moodService: moodService,
		now:         time.Now,
	}
}

// GetMoods handles GET /api/v1/moods
func (h *MoodHandler) GetMoods(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	moods, err := h.moodService.ListMoods(c.Request.Context(), uid)
	if err != nil {
		writeServiceError(c, err, "Mood", "")
		return
	}
	if moods == nil {
		moods = []models.DailyMood{}
	}

	c.JSON(http.StatusOK, moods)
}

// GetTodayMood handles GET /api/v1/moods/today?date=YYYY-MM-DD.
// The client passes its local date; without one the server's UTC date is used.
// Responds with null when nothing was logged.
func (h *MoodHandler) GetTodayMood(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		date = calendar.FormatDate(h.now().UTC())
	}

	mood, err := h.moodService.GetMood(c.Request.Context(), uid, date)
	if err != nil {
		writeServiceError(c, err, "Mood", date)
		return
	}

	c.JSON(http.StatusOK, mood)
}

// LogMood handles PUT /api/v1/moods
func (h *MoodHandler) LogMood(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.LogMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	mood, err := h.moodService.LogMood(c.Request.Context(), uid, &req)
	if err != nil {
		writeServiceError(c, err, "Mood", req.Date)
		return
	}

	c.JSON(http.StatusOK, mood)
}
