package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/JonnyWalker81/habitmood/backend/internal/models"
	"github.com/JonnyWalker81/habitmood/backend/internal/repository"
	"github.com/JonnyWalker81/habitmood/backend/internal/repository/mocks"
)

func TestSetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	logs := mocks.NewMockLogRepository(ctrl)
	habits := mocks.NewMockHabitRepository(ctrl)
	svc := NewLogService(logs, habits, nil)
	ctx := context.Background()

	habits.EXPECT().GetByID(ctx, testUser, testHabit).Return(&models.Habit{ID: testHabit}, nil)
	logs.EXPECT().SetStatus(ctx, &models.LogEntry{
		UserID:  testUser,
		HabitID: testHabit,
		Date:    "2026-02-10",
		Status:  models.LogStatusSkipped,
	}).Return(&models.LogEntry{ID: "log-1", Status: models.LogStatusSkipped}, nil)

	entry, err := svc.SetStatus(ctx, testUser, &models.SetLogRequest{Date: "2026-02-10", HabitID: testHabit, Status: models.LogStatusSkipped})
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if entry.ID != "log-1" {
		t.Errorf("unexpected entry %+v", entry)
	}
}

func TestSetStatusRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  models.SetLogRequest
		want error
	}{
		{name: "bad date", req: models.SetLogRequest{Date: "10/02/2026", HabitID: testHabit, Status: models.LogStatusDone}, want: ErrInvalidDate},
		{name: "bad status", req: models.SetLogRequest{Date: "2026-02-10", HabitID: testHabit, Status: "maybe"}, want: ErrInvalidStatus},
		{name: "bad habit id", req: models.SetLogRequest{Date: "2026-02-10", HabitID: "x", Status: models.LogStatusDone}, want: ErrInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := NewLogService(mocks.NewMockLogRepository(ctrl), mocks.NewMockHabitRepository(ctrl), nil)
			if _, err := svc.SetStatus(context.Background(), testUser, &tt.req); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSetStatusUnknownHabit(t *testing.T) {
	ctrl := gomock.NewController(t)
	habits := mocks.NewMockHabitRepository(ctrl)
	habits.EXPECT().GetByID(gomock.Any(), testUser, testHabit).Return(nil, repository.ErrNotFound)

	svc := NewLogService(mocks.NewMockLogRepository(ctrl), habits, nil)
	_, err := svc.SetStatus(context.Background(), testUser, &models.SetLogRequest{Date: "2026-02-10", HabitID: testHabit, Status: models.LogStatusDone})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClearStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	logs := mocks.NewMockLogRepository(ctrl)
	logs.EXPECT().Clear(gomock.Any(), testUser, testHabit, "2026-02-10").Return(nil)

	svc := NewLogService(logs, mocks.NewMockHabitRepository(ctrl), nil)
	if err := svc.ClearStatus(context.Background(), testUser, testHabit, "2026-02-10"); err != nil {
		t.Errorf("ClearStatus failed: %v", err)
	}
}
