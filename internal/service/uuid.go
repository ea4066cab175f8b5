package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidID indicates the string is not a valid UUID
var ErrInvalidID = errors.New("invalid ID format")

// ValidateID checks that id is a UUID as issued by the database.
// Returns nil if valid, or an error wrapping ErrInvalidID.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidID)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return nil
}

// ValidateIDs validates each id, returning the first failure
func ValidateIDs(ids ...string) error {
	for _, id := range ids {
		if err := ValidateID(id); err != nil {
			return err
		}
	}
	return nil
}
