package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is an account that can hold memberships in projects.
type User struct {
	ID           UserID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public slice of a user attached to memberships, tasks and comments.
type Profile struct {
	ID        UserID
	Email     string
	FirstName string
	LastName  string
	Avatar    string
}

// Profile returns the public profile of the user.
func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
}
