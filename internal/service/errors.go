package service

import (
	"errors"

	"github.com/JonnyWalker81/habitmood/backend/internal/repository"
)

var (
	// ErrNotFound is returned when a habit or mood does not exist for the user
	ErrNotFound = repository.ErrNotFound
	// ErrInvalidScore indicates a mood or energy score outside 1-10
	ErrInvalidScore = errors.New("score must be between 1 and 10")
	// ErrInvalidDate indicates a date that is not YYYY-MM-DD
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
	// ErrInvalidStatus indicates a log status other than done, missed or skipped
	ErrInvalidStatus = errors.New("status must be done, missed or skipped")
	// ErrInvalidTimeframe indicates a timeframe other than weekly, monthly, annual or all
	ErrInvalidTimeframe = errors.New("timeframe must be weekly, monthly, annual or all")
)
