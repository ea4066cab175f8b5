package models

import "time"

// Habit represents a tracked daily habit (stored in the "goals" table)
type Habit struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	Color        string    `json:"color"`
	DisplayOrder *int      `json:"display_order"`
	Archived     bool      `json:"archived"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LogStatus is the per-day outcome recorded for a habit
type LogStatus string

const (
	LogStatusDone    LogStatus = "done"
	LogStatusMissed  LogStatus = "missed"
	LogStatusSkipped LogStatus = "skipped"
)

// Valid reports whether s is one of the known statuses
func (s LogStatus) Valid() bool {
	switch s {
	case LogStatusDone, LogStatusMissed, LogStatusSkipped:
		return true
	}
	return false
}

// LogEntry is a single goal_logs row
type LogEntry struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id"`
	HabitID   string    `json:"goal_id"`
	Date      string    `json:"date"`
	Status    LogStatus `json:"status"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// LogsMap maps a YYYY-MM-DD date to the status of each habit logged that day.
// A missing (date, habit) pair means "no data", which is distinct from skipped.
type LogsMap map[string]map[string]LogStatus

// Set records status for (date, habitID), replacing any previous value
func (m LogsMap) Set(date, habitID string, status LogStatus) {
	day, ok := m[date]
	if !ok {
		day = make(map[string]LogStatus)
		m[date] = day
	}
	day[habitID] = status
}

// Get returns the status for (date, habitID) and whether one exists
func (m LogsMap) Get(date, habitID string) (LogStatus, bool) {
	day, ok := m[date]
	if !ok {
		return "", false
	}
	status, ok := day[habitID]
	return status, ok
}

// DailyMood is the once-per-day mood and energy self-report
type DailyMood struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Date        string    `json:"date"`
	MoodScore   int       `json:"mood_score"`
	EnergyScore int       `json:"energy_score"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Score bounds for mood and energy
const (
	MinScore = 1
	MaxScore = 10
)

// CreateHabitRequest represents the request to create a habit
type CreateHabitRequest struct {
	Title        string `json:"title" binding:"required,max=120"`
	Color        string `json:"color" binding:"required,max=64"`
	DisplayOrder *int   `json:"display_order" binding:"omitempty,min=0"`
}

// UpdateHabitRequest represents the request to update a habit.
// DisplayOrder distinguishes "absent" from an explicit null that clears the order.
type UpdateHabitRequest struct {
	Title        *string      `json:"title" binding:"omitempty,max=120"`
	Color        *string      `json:"color" binding:"omitempty,max=64"`
	DisplayOrder NullableInt `json:"display_order"`
}

// HabitOrder is one entry of a reorder request
type HabitOrder struct {
	ID           string `json:"id" binding:"required"`
	DisplayOrder int    `json:"display_order" binding:"min=0"`
}

// ReorderHabitsRequest represents the request to persist a new habit order
type ReorderHabitsRequest struct {
	Habits []HabitOrder `json:"habits" binding:"required,min=1,dive"`
}

// SetLogRequest represents the request to set a habit's status for a day
type SetLogRequest struct {
	Date    string    `json:"date" binding:"required,calendar_date"`
	HabitID string    `json:"habit_id" binding:"required"`
	Status  LogStatus `json:"status" binding:"required,log_status"`
}

// LogMoodRequest represents the request to record the day's mood and energy
type LogMoodRequest struct {
	Date        string  `json:"date" binding:"required,calendar_date"`
	MoodScore   int     `json:"mood_score" binding:"required,min=1,max=10"`
	EnergyScore int     `json:"energy_score" binding:"required,min=1,max=10"`
	Note        *string `json:"note" binding:"omitempty,max=500"`
}

// DeleteHabitResult tells the client whether the habit was removed or archived
type DeleteHabitResult string

const (
	DeleteResultDeleted  DeleteHabitResult = "deleted"
	DeleteResultArchived DeleteHabitResult = "archived"
)

// SystemStatus reports backend reachability
type SystemStatus struct {
	Status    string `json:"status"` // "active", "error"
	LatencyMS *int64 `json:"latency_ms,omitempty"`
	CheckedAt string `json:"checked_at"`
}
