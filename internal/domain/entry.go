package domain

import "time"

// Entry is one stored vocabulary entry. The identifier and creation
// timestamp belong to storage; the CSV exchange format only ever sees the
// word and definition.
type Entry struct {
	ID         int       `json:"id"`
	UserID     int64     `json:"user_id"`
	Word       string    `json:"word"`
	Definition string    `json:"definition"`
	CreatedAt  time.Time `json:"created_at"`
}

// EntryPair is the bare word/definition pair used when a list is replaced
// wholesale on import.
type EntryPair struct {
	Word       string
	Definition string
}
