package handlers

import (
	"net/http"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/calendar"
	"github.com/JonnyWalker81/habitmood/backend/internal/models"
	"github.com/JonnyWalker81/habitmood/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new completion log handler
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{
		logService: logService,
	}
}

// GetLogs handles GET /api/v1/logs?since=YYYY-MM-DD
func (h *LogHandler) GetLogs(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		d, err := calendar.ParseDate(raw)
		if err != nil {
			fieldError(c, "since", "must be a YYYY-MM-DD date", "calendar_date")
			return
		}
		since = &d
	}

	logs, err := h.logService.GetLogs(c.Request.Context(), uid, since)
	if err != nil {
		writeServiceError(c, err, "Log", "")
		return
	}

	c.JSON(http.StatusOK, logs)
}

// SetLog handles PUT /api/v1/logs
func (h *LogHandler) SetLog(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.SetLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	entry, err := h.logService.SetStatus(c.Request.Context(), uid, &req)
	if err != nil {
		writeServiceError(c, err, "Habit", req.HabitID)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// ClearLog handles DELETE /api/v1/logs?date=&habit_id=
func (h *LogHandler) ClearLog(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	date := c.Query("date")
	habitID := c.Query("habit_id")
	if habitID == "" {
		fieldError(c, "habit_id", "is required", "required")
		return
	}

	if err := h.logService.ClearStatus(c.Request.Context(), uid, habitID, date); err != nil {
		writeServiceError(c, err, "Habit", habitID)
		return
	}

	c.Status(http.StatusNoContent)
}
