package handlers

import (
	"net/http"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/calendar"
	"github.com/gin-gonic/gin"
)

// monthLayout is the ?month= format
const monthLayout = "2006-01"

// GetCalendarWeeks handles GET /api/v1/calendar/weeks?month=YYYY-MM and
// returns the month's logical weeks for the monthly grid.
func GetCalendarWeeks(c *gin.Context) {
	raw := c.Query("month")
	if raw == "" {
		raw = time.Now().UTC().Format(monthLayout)
	}
	month, err := time.Parse(monthLayout, raw)
	if err != nil {
		fieldError(c, "month", "must be a YYYY-MM month", "month")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month": raw,
		"weeks": calendar.MonthLayout(month),
	})
}
