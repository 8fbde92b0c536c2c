package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommentID is a value object for comment identity.
type CommentID struct{ uuid.UUID }

// NewCommentID creates a new CommentID from uuid.
func NewCommentID(id uuid.UUID) CommentID { return CommentID{UUID: id} }

// String returns the canonical string form.
func (c CommentID) String() string { return c.UUID.String() }

// Comment belongs to a task and an authoring user. Only the author may edit;
// the author or an ADMIN/OWNER member may delete.
type Comment struct {
	ID        CommentID
	TaskID    TaskID
	UserID    UserID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	// User is the author's public profile when the query attached it.
	User *Profile
}
