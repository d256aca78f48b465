package testutil

import (
	"time"

	"go.uber.org/zap"

	"wordbook/internal/domain"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, authorized bool) *domain.User {
	return &domain.User{
		UserID:     userID,
		Authorized: authorized,
		CreatedAt:  time.Now(),
	}
}

// NewTestEntry creates a test entry
func NewTestEntry(id int, userID int64, word, definition string) *domain.Entry {
	return &domain.Entry{
		ID:         id,
		UserID:     userID,
		Word:       word,
		Definition: definition,
		CreatedAt:  time.Now(),
	}
}

// NewTestDay creates a test day
func NewTestDay(date time.Time, entryCount int) domain.Day {
	return domain.Day{
		Date:       date,
		EntryCount: entryCount,
	}
}
