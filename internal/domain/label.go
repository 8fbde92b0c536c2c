package domain

import (
	"time"

	"github.com/google/uuid"
)

// LabelID is a value object for label identity.
type LabelID struct{ uuid.UUID }

// NewLabelID creates a new LabelID from uuid.
func NewLabelID(id uuid.UUID) LabelID { return LabelID{UUID: id} }

// String returns the canonical string form.
func (l LabelID) String() string { return l.UUID.String() }

// MaxProjectLabels is the hard cap on labels per project.
const MaxProjectLabels = 30

// Label belongs to a project; its name is unique within that project.
type Label struct {
	ID        LabelID
	ProjectID ProjectID
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskLabel links a task and a label. The (task, label) pair is unique.
type TaskLabel struct {
	TaskID    TaskID
	LabelID   LabelID
	CreatedAt time.Time
}
