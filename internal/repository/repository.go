package repository

import (
	"time"

	"wordbook/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
	EnsureUserExists(userID int64) error
	ListAuthorizedUsers() ([]int64, error)
}

// EntryRepository defines vocabulary entry data operations
type EntryRepository interface {
	SaveEntry(userID int64, word, definition string) error
	GetEntryByID(userID int64, entryID int) (*domain.Entry, error)
	GetRandomEntry(userID int64) (*domain.Entry, error)
	ListEntries(userID int64) ([]domain.Entry, error)
	ReplaceEntries(userID int64, pairs []domain.EntryPair) error
	CountEntries(userID int64) (int, error)
	GetDaysWithEntries(userID int64, limit, offset int) ([]domain.Day, error)
	GetTotalDaysCount(userID int64) (int, error)
	GetEntriesByDate(userID int64, date time.Time) ([]domain.Entry, error)
}
