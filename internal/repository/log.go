package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/calendar"
	"github.com/JonnyWalker81/habitmood/backend/internal/models"
	"github.com/JonnyWalker81/habitmood/backend/pkg/supabase"
)

const (
	logsTable = "goal_logs"
	// PostgREST caps responses at max-rows (1000 on hosted Supabase)
	logsPageSize = 1000
)

type logRepository struct {
	client   *supabase.Client
	pageSize int
}

// NewLogRepository creates a new completion log repository
func NewLogRepository(client *supabase.Client) LogRepository {
	return &logRepository{client: client, pageSize: logsPageSize}
}

// GetLogs pages through goal_logs and folds the rows into a LogsMap.
// Rows with an unknown status are dropped.
func (r *logRepository) GetLogs(ctx context.Context, userID string, since *time.Time) (models.LogsMap, error) {
	logs := models.LogsMap{}

	for offset := 0; ; offset += r.pageSize {
		query := map[string]interface{}{
			"user_id": fmt.Sprintf("eq.%s", userID),
			"select":  "goal_id,date,status",
			"order":   "date.asc,goal_id.asc",
			"limit":   r.pageSize,
			"offset":  offset,
		}
		if since != nil {
			query["date"] = fmt.Sprintf("gte.%s", calendar.FormatDate(*since))
		}

		body, err := r.client.Query(ctx, logsTable, query)
		if err != nil {
			return nil, fmt.Errorf("failed to get logs: %w", err)
		}

		var rows []models.LogEntry
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}

		for _, row := range rows {
			if !row.Status.Valid() {
				continue
			}
			logs.Set(row.Date, row.HabitID, row.Status)
		}

		if len(rows) < r.pageSize {
			break
		}
	}

	return logs, nil
}

// SetStatus upserts on (user_id, goal_id, date) so a day holds at most one status per habit
func (r *logRepository) SetStatus(ctx context.Context, entry *models.LogEntry) (*models.LogEntry, error) {
	data := map[string]interface{}{
		"user_id": entry.UserID,
		"goal_id": entry.HabitID,
		"date":    entry.Date,
		"status":  entry.Status,
	}

	body, err := r.client.Upsert(ctx, logsTable, data, "user_id,goal_id,date")
	if err != nil {
		return nil, fmt.Errorf("failed to set log status: %w", err)
	}

	var rows []models.LogEntry
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no log entry returned")
	}
	return &rows[0], nil
}

func (r *logRepository) Clear(ctx context.Context, userID, habitID, date string) error {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"goal_id": fmt.Sprintf("eq.%s", habitID),
		"date":    fmt.Sprintf("eq.%s", date),
	}
	if err := r.client.DeleteWhere(ctx, logsTable, query); err != nil {
		return fmt.Errorf("failed to clear log: %w", err)
	}
	return nil
}
