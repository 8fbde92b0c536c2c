package projects

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

// AddMemberInput identifies the target user by ID or, when absent, by email.
type AddMemberInput struct {
	ProjectID domain.ProjectID
	UserID    *domain.UserID
	Email     string
	Role      domain.Role
}

// AddMember grants a user a membership in a project. OWNER is assignable only
// at project creation; a project holds at most domain.MaxProjectMembers members.
type AddMember struct {
	authority   *authz.Authority
	memberships ports.MembershipRepository
	users       ports.UserRepository
}

// NewAddMember builds the use case.
func NewAddMember(authority *authz.Authority, memberships ports.MembershipRepository, users ports.UserRepository) *AddMember {
	return &AddMember{authority: authority, memberships: memberships, users: users}
}

// Execute adds the member and returns the membership with the user's public
// profile attached. The caller must be OWNER or ADMIN of the project.
func (uc *AddMember) Execute(ctx context.Context, caller authz.Principal, input AddMemberInput) (*domain.Membership, error) {
	if _, err := uc.authority.RequireMembershipWithRank(ctx, input.ProjectID, caller.ID, domain.RoleOwner, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if input.Role == domain.RoleOwner {
		return nil, domerrors.InvalidRequest("owner role is assigned at project creation only")
	}
	if !input.Role.Valid() {
		return nil, domerrors.InvalidRequest("unknown role")
	}
	if input.UserID == nil && input.Email == "" {
		return nil, domerrors.InvalidRequest("either userId or email is required")
	}

	count, err := uc.memberships.Count(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if count >= domain.MaxProjectMembers {
		return nil, domerrors.Conflict("project member limit reached")
	}

	user, err := uc.resolveUser(ctx, input)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.NotFound("user not found")
	}

	existing, err := uc.memberships.Get(ctx, input.ProjectID, user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.Conflict("user is already a member")
	}

	m := &domain.Membership{
		ID:        domain.NewMembershipID(uuid.New()),
		ProjectID: input.ProjectID,
		UserID:    user.ID,
		Role:      input.Role,
		CreatedAt: time.Now(),
	}
	// The unique (project, user) constraint turns a racing insert into the
	// same Conflict the pre-check would have raised.
	if err := uc.memberships.Create(ctx, m); err != nil {
		return nil, err
	}
	profile := user.Profile()
	m.User = &profile
	return m, nil
}

func (uc *AddMember) resolveUser(ctx context.Context, input AddMemberInput) (*domain.User, error) {
	if input.UserID != nil {
		user, err := uc.users.GetByID(ctx, *input.UserID)
		if err != nil || user != nil {
			return user, err
		}
	}
	if input.Email != "" {
		return uc.users.GetByEmail(ctx, input.Email)
	}
	return nil, nil
}
