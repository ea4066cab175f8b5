package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JonnyWalker81/habitmood/backend/internal/models"
	"github.com/JonnyWalker81/habitmood/backend/pkg/supabase"
)

const habitsTable = "goals"

type habitRepository struct {
	client *supabase.Client
}

// NewHabitRepository creates a new habit repository
func NewHabitRepository(client *supabase.Client) HabitRepository {
	return &habitRepository{client: client}
}

func decodeHabits(body []byte) ([]models.Habit, error) {
	var habits []models.Habit
	if err := json.Unmarshal(body, &habits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return habits, nil
}

func firstHabit(body []byte) (*models.Habit, error) {
	habits, err := decodeHabits(body)
	if err != nil {
		return nil, err
	}
	if len(habits) == 0 {
		return nil, ErrNotFound
	}
	return &habits[0], nil
}

func ownedBy(userID, id string) map[string]interface{} {
	return map[string]interface{}{
		"id":      fmt.Sprintf("eq.%s", id),
		"user_id": fmt.Sprintf("eq.%s", userID),
	}
}

// ListActive returns unarchived habits ordered by display_order (unset last), then creation time
func (r *habitRepository) ListActive(ctx context.Context, userID string) ([]models.Habit, error) {
	query := map[string]interface{}{
		"user_id":  fmt.Sprintf("eq.%s", userID),
		"archived": "eq.false",
		"select":   "*",
		"order":    "display_order.asc.nullslast,created_at.asc",
	}

	body, err := r.client.Query(ctx, habitsTable, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	habits, err := decodeHabits(body)
	if err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	return habits, nil
}

func (r *habitRepository) GetByID(ctx context.Context, userID, id string) (*models.Habit, error) {
	body, err := r.client.Query(ctx, habitsTable, ownedBy(userID, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}
	return firstHabit(body)
}

func (r *habitRepository) Create(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	data := map[string]interface{}{
		"user_id": habit.UserID,
		"title":   habit.Title,
		"color":   habit.Color,
	}
	if habit.ID != "" {
		data["id"] = habit.ID
	}
	if habit.DisplayOrder != nil {
		data["display_order"] = *habit.DisplayOrder
	}

	body, err := r.client.Insert(ctx, habitsTable, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	created, err := firstHabit(body)
	if err != nil {
		return nil, fmt.Errorf("no habit returned: %w", err)
	}
	return created, nil
}

// Update applies only the fields present in req. An explicit null display_order clears it.
func (r *habitRepository) Update(ctx context.Context, userID, id string, req *models.UpdateHabitRequest) (*models.Habit, error) {
	data := make(map[string]interface{})

	if req.Title != nil {
		data["title"] = *req.Title
	}
	if req.Color != nil {
		data["color"] = *req.Color
	}
	if req.DisplayOrder.Set {
		data["display_order"] = req.DisplayOrder.ToPtr()
	}

	if len(data) == 0 {
		return r.GetByID(ctx, userID, id)
	}

	body, err := r.client.UpdateWhere(ctx, habitsTable, ownedBy(userID, id), data)
	if err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}
	return firstHabit(body)
}

func (r *habitRepository) SetOrder(ctx context.Context, userID string, order []models.HabitOrder) error {
	for _, o := range order {
		data := map[string]interface{}{"display_order": o.DisplayOrder}
		body, err := r.client.UpdateWhere(ctx, habitsTable, ownedBy(userID, o.ID), data)
		if err != nil {
			return fmt.Errorf("failed to reorder habit %s: %w", o.ID, err)
		}
		if _, err := firstHabit(body); err != nil {
			return fmt.Errorf("failed to reorder habit %s: %w", o.ID, err)
		}
	}
	return nil
}

func (r *habitRepository) Archive(ctx context.Context, userID, id string) error {
	body, err := r.client.UpdateWhere(ctx, habitsTable, ownedBy(userID, id), map[string]interface{}{"archived": true})
	if err != nil {
		return fmt.Errorf("failed to archive habit: %w", err)
	}
	if _, err := firstHabit(body); err != nil {
		return err
	}
	return nil
}

func (r *habitRepository) Delete(ctx context.Context, userID, id string) error {
	if err := r.client.DeleteWhere(ctx, habitsTable, ownedBy(userID, id)); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

// HasLogs reports whether any completion log references the habit
func (r *habitRepository) HasLogs(ctx context.Context, userID, id string) (bool, error) {
	n, err := r.client.Count(ctx, logsTable, map[string]interface{}{
		"goal_id": fmt.Sprintf("eq.%s", id),
		"user_id": fmt.Sprintf("eq.%s", userID),
	})
	if err != nil {
		return false, fmt.Errorf("failed to count habit logs: %w", err)
	}
	return n > 0, nil
}
