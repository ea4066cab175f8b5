// Package cache memoizes computed statistics per user. Entries are keyed by a
// hash of the input snapshot, so identical inputs hit and any change misses.
package cache

import (
	"context"
	"fmt"

	"github.com/mitchellh/hashstructure/v2"
)

// Cache stores JSON-encodable results
type Cache interface {
	// Get decodes the entry for key into dest and reports whether it was found
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	// InvalidateUser drops every entry belonging to userID
	InvalidateUser(ctx context.Context, userID string) error
}

func userPrefix(userID string) string {
	return fmt.Sprintf("stats:%s:", userID)
}

// Key builds "stats:<user>:<kind>:<hash>" where hash covers input.
// Map iteration order does not affect the hash.
func Key(userID, kind string, input interface{}) (string, error) {
	h, err := hashstructure.Hash(input, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("failed to hash cache input: %w", err)
	}
	return fmt.Sprintf("%s%s:%016x", userPrefix(userID), kind, h), nil
}
