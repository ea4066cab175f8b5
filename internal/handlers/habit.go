package handlers

import (
	"net/http"

	"github.com/JonnyWalker81/habitmood/backend/internal/models"
	"github.com/JonnyWalker81/habitmood/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type HabitHandler struct {
	habitService service.HabitService
}

// NewHabitHandler creates a new habit handler
func NewHabitHandler(habitService service.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

// GetHabits handles GET /api/v1/habits
func (h *HabitHandler) GetHabits(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	habits, err := h.habitService.ListHabits(c.Request.Context(), uid)
	if err != nil {
		writeServiceError(c, err, "Habit", "")
		return
	}

	c.JSON(http.StatusOK, habits)
}

// CreateHabit handles POST /api/v1/habits
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	habit, err := h.habitService.CreateHabit(c.Request.Context(), uid, &req)
	if err != nil {
		writeServiceError(c, err, "Habit", "")
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// UpdateHabit handles PUT /api/v1/habits/:id
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	habitID := c.Param("id")

	var req models.UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	habit, err := h.habitService.UpdateHabit(c.Request.Context(), uid, habitID, &req)
	if err != nil {
		writeServiceError(c, err, "Habit", habitID)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// ReorderHabits handles PUT /api/v1/habits/order
func (h *HabitHandler) ReorderHabits(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.ReorderHabitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if err := h.habitService.ReorderHabits(c.Request.Context(), uid, &req); err != nil {
		writeServiceError(c, err, "Habit", "")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteHabit handles DELETE /api/v1/habits/:id
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	habitID := c.Param("id")
	result, err := h.habitService.DeleteHabit(c.Request.Context(), uid, habitID)
	if err != nil {
		writeServiceError(c, err, "Habit", habitID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
