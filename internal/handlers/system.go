package handlers

import (
	"net/http"

	"github.com/JonnyWalker81/habitmood/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	systemService service.SystemService
	env           string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(systemService service.SystemService, env string) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
		env:           env,
	}
}

// Health handles GET /health. It never touches the backend.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"env":    h.env,
	})
}

// Status handles GET /api/v1/system/status. Backend failures are reported
// in the body, so the endpoint itself always answers 200.
func (h *SystemHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.systemService.Status(c.Request.Context()))
}
