package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"wordbook/internal/domain"
)

func TestEntryRepo_SaveEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)
	word := "serendipity"
	definition := "finding something good without looking for it"

	mock.ExpectExec("INSERT INTO entries").
		WithArgs(userID, word, definition).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.SaveEntry(userID, word, definition)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_GetEntryByID(t *testing.T) {
	tests := []struct {
		name          string
		userID        int64
		entryID       int
		mockRows      *sqlmock.Rows
		mockError     error
		expectedNil   bool
		expectedError bool
	}{
		{
			name:    "entry found",
			userID:  123,
			entryID: 1,
			mockRows: sqlmock.NewRows([]string{"id", "user_id", "word", "definition", "created_at"}).
				AddRow(1, 123, "serendipity", "finding something good without looking for it", time.Now()),
			mockError:     nil,
			expectedNil:   false,
			expectedError: false,
		},
		{
			name:          "entry not found",
			userID:        123,
			entryID:       999,
			mockRows:      nil,
			mockError:     sql.ErrNoRows,
			expectedNil:   true,
			expectedError: false,
		},
		{
			name:    "scan error",
			userID:  123,
			entryID: 1,
			mockRows: sqlmock.NewRows([]string{"id", "user_id", "word", "definition", "created_at"}).
				AddRow("invalid", 123, "serendipity", "finding something good without looking for it", time.Now()),
			mockError:     nil,
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewEntryRepo(db)

			query := "SELECT id, user_id, word, definition, created_at FROM entries WHERE id = \\$1 AND user_id = \\$2"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.entryID, tt.userID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.entryID, tt.userID).WillReturnRows(tt.mockRows)
			}

			entry, err := repo.GetEntryByID(tt.userID, tt.entryID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.expectedNil {
					assert.Nil(t, entry)
				} else {
					assert.NotNil(t, entry)
					assert.Equal(t, tt.entryID, entry.ID)
					assert.Equal(t, tt.userID, entry.UserID)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEntryRepo_GetRandomEntry(t *testing.T) {
	tests := []struct {
		name          string
		userID        int64
		mockRows      *sqlmock.Rows
		mockError     error
		expectedNil   bool
		expectedError bool
	}{
		{
			name:   "entry found",
			userID: 123,
			mockRows: sqlmock.NewRows([]string{"id", "user_id", "word", "definition", "created_at"}).
				AddRow(1, 123, "petrichor", "smell of rain on dry ground", time.Now()),
			mockError:     nil,
			expectedNil:   false,
			expectedError: false,
		},
		{
			name:          "no entries",
			userID:        456,
			mockRows:      nil,
			mockError:     sql.ErrNoRows,
			expectedNil:   true,
			expectedError: false,
		},
		{
			name:   "scan error",
			userID: 123,
			mockRows: sqlmock.NewRows([]string{"id", "user_id", "word", "definition", "created_at"}).
				AddRow("invalid", 123, "petrichor", "smell of rain on dry ground", time.Now()),
			mockError:     nil,
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewEntryRepo(db)

			query := "SELECT id, user_id, word, definition, created_at FROM entries WHERE user_id = \\$1 ORDER BY RANDOM\\(\\) LIMIT 1"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnRows(tt.mockRows)
			}

			entry, err := repo.GetRandomEntry(tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.expectedNil {
					assert.Nil(t, entry)
				} else {
					assert.NotNil(t, entry)
					assert.Equal(t, tt.userID, entry.UserID)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEntryRepo_ListEntries(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "word", "definition", "created_at"}).
		AddRow(1, userID, "tree", "large woody plant", now).
		AddRow(2, userID, "sky", "region above the earth", now)

	mock.ExpectQuery("SELECT id, user_id, word, definition, created_at FROM entries WHERE user_id = \\$1 ORDER BY id").
		WithArgs(userID).
		WillReturnRows(rows)

	entries, err := repo.ListEntries(userID)

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "tree", entries[0].Word)
	assert.Equal(t, "sky", entries[1].Word)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_ListEntries_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)

	mock.ExpectQuery("SELECT id, user_id, word, definition, created_at FROM entries WHERE user_id = \\$1 ORDER BY id").
		WithArgs(userID).
		WillReturnError(fmt.Errorf("query error"))

	entries, err := repo.ListEntries(userID)

	assert.Error(t, err)
	assert.Nil(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_ListEntries_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)

	// Create rows with wrong column type to cause scan error
	rows := sqlmock.NewRows([]string{"id", "user_id", "word", "definition", "created_at"}).
		AddRow("invalid", userID, "tree", "large woody plant", time.Now())

	mock.ExpectQuery("SELECT id, user_id, word, definition, created_at FROM entries WHERE user_id = \\$1 ORDER BY id").
		WithArgs(userID).
		WillReturnRows(rows)

	entries, err := repo.ListEntries(userID)

	assert.Error(t, err)
	assert.Nil(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_ReplaceEntries(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)
	pairs := []domain.EntryPair{
		{Word: "tree", Definition: "large woody plant"},
		{Word: "sky", Definition: "region above the earth"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM entries WHERE user_id = \\$1").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO entries").
		WithArgs(userID, "tree", "large woody plant").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO entries").
		WithArgs(userID, "sky", "region above the earth").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err = repo.ReplaceEntries(userID, pairs)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_ReplaceEntries_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM entries WHERE user_id = \\$1").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err = repo.ReplaceEntries(userID, nil)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_ReplaceEntries_DeleteError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)
	pairs := []domain.EntryPair{
		{Word: "tree", Definition: "large woody plant"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM entries WHERE user_id = \\$1").
		WithArgs(userID).
		WillReturnError(fmt.Errorf("delete error"))
	mock.ExpectRollback()

	err = repo.ReplaceEntries(userID, pairs)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_ReplaceEntries_InsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)
	pairs := []domain.EntryPair{
		{Word: "tree", Definition: "large woody plant"},
		{Word: "sky", Definition: "region above the earth"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM entries WHERE user_id = \\$1").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO entries").
		WithArgs(userID, "tree", "large woody plant").
		WillReturnError(fmt.Errorf("insert error"))
	mock.ExpectRollback()

	err = repo.ReplaceEntries(userID, pairs)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_CountEntries(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)

	rows := sqlmock.NewRows([]string{"count"}).AddRow(42)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM entries WHERE user_id = \\$1").
		WithArgs(userID).
		WillReturnRows(rows)

	count, err := repo.CountEntries(userID)

	assert.NoError(t, err)
	assert.Equal(t, 42, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_GetDaysWithEntries(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)
	limit := 7
	offset := 0

	rows := sqlmock.NewRows([]string{"day", "count"}).
		AddRow(time.Now(), 5).
		AddRow(time.Now().AddDate(0, 0, -1), 3)

	mock.ExpectQuery("SELECT DATE\\(created_at\\)").
		WithArgs(userID, limit, offset).
		WillReturnRows(rows)

	days, err := repo.GetDaysWithEntries(userID, limit, offset)

	assert.NoError(t, err)
	assert.Len(t, days, 2)
	assert.Equal(t, 5, days[0].EntryCount)
	assert.Equal(t, 3, days[1].EntryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_GetDaysWithEntries_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)
	limit := 7
	offset := 0

	mock.ExpectQuery("SELECT DATE\\(created_at\\)").
		WithArgs(userID, limit, offset).
		WillReturnError(fmt.Errorf("query error"))

	days, err := repo.GetDaysWithEntries(userID, limit, offset)

	assert.Error(t, err)
	assert.Nil(t, days)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_GetDaysWithEntries_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)
	limit := 7
	offset := 0

	// Create rows with wrong column type to cause scan error
	rows := sqlmock.NewRows([]string{"day", "count"}).
		AddRow("invalid", 5)

	mock.ExpectQuery("SELECT DATE\\(created_at\\)").
		WithArgs(userID, limit, offset).
		WillReturnRows(rows)

	days, err := repo.GetDaysWithEntries(userID, limit, offset)

	assert.Error(t, err)
	assert.Nil(t, days)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_GetTotalDaysCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)

	rows := sqlmock.NewRows([]string{"count"}).AddRow(14)

	mock.ExpectQuery("SELECT COUNT\\(DISTINCT DATE\\(created_at\\)\\)").
		WithArgs(userID).
		WillReturnRows(rows)

	count, err := repo.GetTotalDaysCount(userID)

	assert.NoError(t, err)
	assert.Equal(t, 14, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_GetEntriesByDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)
	date := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "word", "definition", "created_at"}).
		AddRow(1, userID, "tree", "large woody plant", date).
		AddRow(2, userID, "sky", "region above the earth", date)

	mock.ExpectQuery("SELECT id, user_id, word, definition, created_at FROM entries WHERE user_id = \\$1 AND DATE\\(created_at\\) = DATE\\(\\$2\\)").
		WithArgs(userID, date).
		WillReturnRows(rows)

	entries, err := repo.GetEntriesByDate(userID, date)

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "tree", entries[0].Word)
	assert.Equal(t, "sky", entries[1].Word)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_GetEntriesByDate_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)
	date := time.Now()

	mock.ExpectQuery("SELECT id, user_id, word, definition, created_at FROM entries WHERE user_id = \\$1 AND DATE\\(created_at\\) = DATE\\(\\$2\\)").
		WithArgs(userID, date).
		WillReturnError(fmt.Errorf("query error"))

	entries, err := repo.GetEntriesByDate(userID, date)

	assert.Error(t, err)
	assert.Nil(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_GetEntriesByDate_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepo(db)

	userID := int64(123)
	date := time.Now()

	// Create rows with wrong column type to cause scan error
	rows := sqlmock.NewRows([]string{"id", "user_id", "word", "definition", "created_at"}).
		AddRow("invalid", userID, "tree", "large woody plant", date)

	mock.ExpectQuery("SELECT id, user_id, word, definition, created_at FROM entries WHERE user_id = \\$1 AND DATE\\(created_at\\) = DATE\\(\\$2\\)").
		WithArgs(userID, date).
		WillReturnRows(rows)

	entries, err := repo.GetEntriesByDate(userID, date)

	assert.Error(t, err)
	assert.Nil(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}
