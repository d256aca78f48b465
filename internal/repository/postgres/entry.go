package postgres

import (
	"database/sql"
	"time"

	"wordbook/internal/domain"
)

// EntryRepo implements repository.EntryRepository
type EntryRepo struct {
	db *sql.DB
}

// NewEntryRepo creates a new entry repository
func NewEntryRepo(db *sql.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

// SaveEntry saves a word-definition pair
func (r *EntryRepo) SaveEntry(userID int64, word, definition string) error {
	query := `
		INSERT INTO entries (user_id, word, definition)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(query, userID, word, definition)
	return err
}

// GetEntryByID returns a single entry owned by the user
func (r *EntryRepo) GetEntryByID(userID int64, entryID int) (*domain.Entry, error) {
	var e domain.Entry
	query := `
		SELECT id, user_id, word, definition, created_at
		FROM entries
		WHERE id = $1 AND user_id = $2
	`
	err := r.db.QueryRow(query, entryID, userID).Scan(
		&e.ID, &e.UserID, &e.Word, &e.Definition, &e.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// GetRandomEntry returns a random entry for the user
func (r *EntryRepo) GetRandomEntry(userID int64) (*domain.Entry, error) {
	var e domain.Entry
	query := `
		SELECT id, user_id, word, definition, created_at
		FROM entries
		WHERE user_id = $1
		ORDER BY RANDOM()
		LIMIT 1
	`
	err := r.db.QueryRow(query, userID).Scan(
		&e.ID, &e.UserID, &e.Word, &e.Definition, &e.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// ListEntries returns all entries for the user in insertion order
func (r *EntryRepo) ListEntries(userID int64) ([]domain.Entry, error) {
	query := `
		SELECT id, user_id, word, definition, created_at
		FROM entries
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Word, &e.Definition, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ReplaceEntries swaps the user's whole list for the given pairs in one transaction
func (r *EntryRepo) ReplaceEntries(userID int64, pairs []domain.EntryPair) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deleteQuery := `DELETE FROM entries WHERE user_id = $1`
	if _, err := tx.Exec(deleteQuery, userID); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO entries (user_id, word, definition)
		VALUES ($1, $2, $3)
	`
	for _, p := range pairs {
		if _, err := tx.Exec(insertQuery, userID, p.Word, p.Definition); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// CountEntries returns the number of entries stored for the user
func (r *EntryRepo) CountEntries(userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM entries WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

// GetDaysWithEntries returns days that have entries with counts
func (r *EntryRepo) GetDaysWithEntries(userID int64, limit, offset int) ([]domain.Day, error) {
	query := `
		SELECT DATE(created_at) as day, COUNT(*) as count
		FROM entries
		WHERE user_id = $1
		GROUP BY DATE(created_at)
		ORDER BY day DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []domain.Day
	for rows.Next() {
		var d domain.Day
		if err := rows.Scan(&d.Date, &d.EntryCount); err != nil {
			return nil, err
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// GetTotalDaysCount returns total number of days with entries
func (r *EntryRepo) GetTotalDaysCount(userID int64) (int, error) {
	query := `
		SELECT COUNT(DISTINCT DATE(created_at))
		FROM entries
		WHERE user_id = $1
	`

	var count int
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

// GetEntriesByDate returns all entries for a specific date
func (r *EntryRepo) GetEntriesByDate(userID int64, date time.Time) ([]domain.Entry, error) {
	query := `
		SELECT id, user_id, word, definition, created_at
		FROM entries
		WHERE user_id = $1
			AND DATE(created_at) = DATE($2)
		ORDER BY created_at
	`

	rows, err := r.db.Query(query, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Word, &e.Definition, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
