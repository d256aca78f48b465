package domain

import "time"

// User represents a bot user
type User struct {
	UserID     int64
	Authorized bool
	CreatedAt  time.Time
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle               UserState = "idle"
	StateAwaitingWord       UserState = "awaiting_word"
	StateAwaitingDefinition UserState = "awaiting_definition"
	StateAwaitingImport     UserState = "awaiting_import"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State UserState

	// Word is the term waiting for its definition while a pair is added.
	Word string

	// PendingImport holds an uploaded CSV blob until the user confirms it
	// may replace the current list.
	PendingImport string
}
