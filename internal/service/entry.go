package service

import (
	"fmt"
	"time"

	"wordbook/internal/domain"
	"wordbook/internal/repository"
)

// EntryService handles wordbook business logic
type EntryService struct {
	entryRepo repository.EntryRepository
}

// NewEntryService creates a new entry service
func NewEntryService(entryRepo repository.EntryRepository) *EntryService {
	return &EntryService{entryRepo: entryRepo}
}

// SaveEntry saves a word-definition pair
func (s *EntryService) SaveEntry(userID int64, word, definition string) error {
	if word == "" || definition == "" {
		return fmt.Errorf("word and definition cannot be empty")
	}
	return s.entryRepo.SaveEntry(userID, word, definition)
}

// GetRandomEntry returns a random entry for quizzing
func (s *EntryService) GetRandomEntry(userID int64) (*domain.Entry, error) {
	return s.entryRepo.GetRandomEntry(userID)
}

// GetEntryByID returns a single entry owned by the user
func (s *EntryService) GetEntryByID(userID int64, entryID int) (*domain.Entry, error) {
	return s.entryRepo.GetEntryByID(userID, entryID)
}

// CountEntries returns the number of entries in the user's wordbook
func (s *EntryService) CountEntries(userID int64) (int, error) {
	return s.entryRepo.CountEntries(userID)
}

// GetDaysList returns paginated list of days with entry counts
func (s *EntryService) GetDaysList(userID int64, page int) ([]domain.Day, int, error) {
	const pageSize = 7

	if page < 1 {
		page = 1
	}

	offset := (page - 1) * pageSize
	days, err := s.entryRepo.GetDaysWithEntries(userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	// Calculate total pages
	totalDays, err := s.entryRepo.GetTotalDaysCount(userID)
	if err != nil {
		return nil, 0, err
	}

	totalPages := (totalDays + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return days, totalPages, nil
}

// GetEntriesByDate returns all entries for a specific date
func (s *EntryService) GetEntriesByDate(userID int64, dateStr string) ([]domain.Entry, error) {
	// Parse date string (YYYYMMDD format)
	date, err := time.Parse("20060102", dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %w", err)
	}

	return s.entryRepo.GetEntriesByDate(userID, date)
}
