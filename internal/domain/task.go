package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskID is a value object for task identity.
type TaskID struct{ uuid.UUID }

// NewTaskID creates a new TaskID from uuid.
func NewTaskID(id uuid.UUID) TaskID { return TaskID{UUID: id} }

// String returns the canonical string form.
func (t TaskID) String() string { return t.UUID.String() }

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Task belongs to exactly one list and, denormalized, to one project.
// Position orders the task among siblings in its list; display order is
// position ascending with creation time as the tie-breaker.
type Task struct {
	ID             TaskID
	ListID         ListID
	ProjectID      ProjectID
	Title          string
	Description    string
	Position       int
	Priority       Priority
	EstimatedHours *float64
	DueDate        *time.Time
	AssignedToID   *UserID
	CreatedByID    UserID
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Attached by queries that load relations.
	AssignedTo   *Profile
	CreatedBy    *Profile
	Labels       []*Label
	List         *List
	CommentCount int
}
