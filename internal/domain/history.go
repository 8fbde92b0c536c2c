package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryAction is the kind of user-visible task activity being recorded.
type HistoryAction string

const (
	HistoryCreated   HistoryAction = "CREATED"
	HistoryUpdated   HistoryAction = "UPDATED"
	HistoryMoved     HistoryAction = "MOVED"
	HistoryCommented HistoryAction = "COMMENTED"
)

// TaskHistory is an append-only record of task activity. Rows are created by
// the mutating operation and never updated or deleted.
type TaskHistory struct {
	ID        uuid.UUID
	TaskID    TaskID
	UserID    UserID
	Action    HistoryAction
	// Details is a JSON document describing the action.
	Details   string
	CreatedAt time.Time
	// User is the acting user's public profile when the query attached it.
	User *Profile
}
