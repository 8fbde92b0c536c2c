package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectID is a value object for project identity.
type ProjectID struct{ uuid.UUID }

// NewProjectID creates a new ProjectID from uuid.
func NewProjectID(id uuid.UUID) ProjectID { return ProjectID{UUID: id} }

// String returns the canonical string form.
func (p ProjectID) String() string { return p.UUID.String() }

// ProjectStatus is the lifecycle status of a project.
type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "ACTIVE"
	ProjectArchived ProjectStatus = "ARCHIVED"
)

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	return s == ProjectActive || s == ProjectArchived
}

// MaxProjectMembers is the hard cap on memberships per project.
const MaxProjectMembers = 20

// Project is the tenancy root: it owns memberships, boards and labels.
type Project struct {
	ID          ProjectID
	Name        string
	Description string
	// Key is the short unique project key, e.g. "PROJ".
	Key         string
	Color       string
	Status      ProjectStatus
	CreatedByID UserID
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// TaskCount is attached by listing queries; always server-computed.
	TaskCount int
}
