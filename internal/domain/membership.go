package domain

import (
	"time"

	"github.com/google/uuid"
)

// MembershipID is a value object for membership identity.
type MembershipID struct{ uuid.UUID }

// NewMembershipID creates a new MembershipID from uuid.
func NewMembershipID(id uuid.UUID) MembershipID { return MembershipID{UUID: id} }

// String returns the canonical string form.
func (m MembershipID) String() string { return m.UUID.String() }

// Role is a member's role within a project. Roles form a total order
// VIEWER < MEMBER < ADMIN < OWNER used for comparative permission checks.
type Role string

const (
	RoleViewer Role = "VIEWER"
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
	RoleOwner  Role = "OWNER"
)

// Rank returns the numeric rank of the role. Unknown roles rank 0,
// below every defined role, so they never satisfy an allowed set.
func (r Role) Rank() int {
	switch r {
	case RoleViewer:
		return 1
	case RoleMember:
		return 2
	case RoleAdmin:
		return 3
	case RoleOwner:
		return 4
	default:
		return 0
	}
}

// Valid reports whether r is a defined role.
func (r Role) Valid() bool { return r.Rank() > 0 }

// Outranks reports whether r is strictly above other in the role order.
func (r Role) Outranks(other Role) bool { return r.Rank() > other.Rank() }

// Membership grants a user a role within a project. At most one membership
// exists per (project, user) pair; exactly one OWNER is created with the project.
type Membership struct {
	ID        MembershipID
	ProjectID ProjectID
	UserID    UserID
	Role      Role
	CreatedAt time.Time
	// User is the member's public profile when the query attached it.
	User *Profile
}
