package file

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"wordbook/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type snapshot struct {
	Users   map[int64]bool `json:"users"`
	Entries []domain.Entry `json:"entries"`
	NextID  int            `json:"next_id"`
}

// Store keeps the whole wordbook in memory and mirrors every change
// to a single JSON file. It implements both repository interfaces so
// small installations can run without Postgres.
type Store struct {
	mu   sync.RWMutex
	path string
	data snapshot
}

// Open loads the store from path, starting empty when the file does not exist
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		data: snapshot{Users: make(map[int64]bool)},
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	if s.data.Users == nil {
		s.data.Users = make(map[int64]bool)
	}
	// Hand-edited files may carry ids above the recorded counter
	for _, e := range s.data.Entries {
		if e.ID > s.data.NextID {
			s.data.NextID = e.ID
		}
	}

	return s, nil
}

// persist writes the snapshot to a temp file and renames it over the target.
// Callers must hold the write lock.
func (s *Store) persist() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// IsAuthorized checks if user is authorized
func (s *Store) IsAuthorized(userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Users[userID], nil
}

// AuthorizeUser marks user as authorized
func (s *Store) AuthorizeUser(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Users[userID] = true
	return s.persist()
}

// EnsureUserExists creates user if not exists
func (s *Store) EnsureUserExists(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.Users[userID]; ok {
		return nil
	}
	s.data.Users[userID] = false
	return s.persist()
}

// ListAuthorizedUsers returns ids of all authorized users
func (s *Store) ListAuthorizedUsers() ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []int64
	for id, authorized := range s.data.Users {
		if authorized {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// SaveEntry saves a word-definition pair
func (s *Store) SaveEntry(userID int64, word, definition string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.NextID++
	s.data.Entries = append(s.data.Entries, domain.Entry{
		ID:         s.data.NextID,
		UserID:     userID,
		Word:       word,
		Definition: definition,
		CreatedAt:  time.Now(),
	})
	return s.persist()
}

// GetEntryByID returns a single entry owned by the user
func (s *Store) GetEntryByID(userID int64, entryID int) (*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.data.Entries {
		if e.ID == entryID && e.UserID == userID {
			entry := e
			return &entry, nil
		}
	}
	return nil, nil
}

// GetRandomEntry returns a random entry for the user
func (s *Store) GetRandomEntry(userID int64) (*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var owned []domain.Entry
	for _, e := range s.data.Entries {
		if e.UserID == userID {
			owned = append(owned, e)
		}
	}
	if len(owned) == 0 {
		return nil, nil
	}

	entry := owned[rand.Intn(len(owned))]
	return &entry, nil
}

// ListEntries returns all entries for the user in insertion order.
// Ids only ever grow, so the append order of the snapshot is already
// insertion order per user.
func (s *Store) ListEntries(userID int64) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []domain.Entry
	for _, e := range s.data.Entries {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// ReplaceEntries swaps the user's whole list for the given pairs
func (s *Store) ReplaceEntries(userID int64, pairs []domain.EntryPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []domain.Entry
	for _, e := range s.data.Entries {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}

	now := time.Now()
	for _, p := range pairs {
		s.data.NextID++
		kept = append(kept, domain.Entry{
			ID:         s.data.NextID,
			UserID:     userID,
			Word:       p.Word,
			Definition: p.Definition,
			CreatedAt:  now,
		})
	}

	s.data.Entries = kept
	return s.persist()
}

// CountEntries returns the number of entries stored for the user
func (s *Store) CountEntries(userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, e := range s.data.Entries {
		if e.UserID == userID {
			count++
		}
	}
	return count, nil
}

// GetDaysWithEntries returns days that have entries with counts
func (s *Store) GetDaysWithEntries(userID int64, limit, offset int) ([]domain.Day, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	days := s.days(userID)
	if offset >= len(days) {
		return nil, nil
	}
	days = days[offset:]
	if limit < len(days) {
		days = days[:limit]
	}
	return days, nil
}

// GetTotalDaysCount returns total number of days with entries
func (s *Store) GetTotalDaysCount(userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.days(userID)), nil
}

// GetEntriesByDate returns all entries for a specific date
func (s *Store) GetEntriesByDate(userID int64, date time.Time) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	y, m, d := date.Date()
	var entries []domain.Entry
	for _, e := range s.data.Entries {
		ey, em, ed := e.CreatedAt.Date()
		if e.UserID == userID && ey == y && em == m && ed == d {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// days groups the user's entries by calendar day, newest first.
// Callers must hold at least the read lock.
func (s *Store) days(userID int64) []domain.Day {
	byDay := make(map[string]*domain.Day)
	for _, e := range s.data.Entries {
		if e.UserID != userID {
			continue
		}
		key := e.CreatedAt.Format("2006-01-02")
		day, ok := byDay[key]
		if !ok {
			day = &domain.Day{Date: time.Date(
				e.CreatedAt.Year(), e.CreatedAt.Month(), e.CreatedAt.Day(),
				0, 0, 0, 0, e.CreatedAt.Location(),
			)}
			byDay[key] = day
		}
		day.EntryCount++
	}

	days := make([]domain.Day, 0, len(byDay))
	for _, day := range byDay {
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.After(days[j].Date) })
	return days
}
