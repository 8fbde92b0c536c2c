package projects

import (
	"context"

	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

// RemoveMember deletes a membership. Any member may call; removal succeeds
// only when the caller's rank is strictly greater than the target's, and the
// OWNER membership can never be removed.
type RemoveMember struct {
	authority   *authz.Authority
	memberships ports.MembershipRepository
}

// NewRemoveMember builds the use case.
func NewRemoveMember(authority *authz.Authority, memberships ports.MembershipRepository) *RemoveMember {
	return &RemoveMember{authority: authority, memberships: memberships}
}

// Execute removes the target membership from the project.
func (uc *RemoveMember) Execute(ctx context.Context, caller authz.Principal, projectID domain.ProjectID, targetID domain.MembershipID) error {
	callerMembership, err := uc.authority.RequireMembership(ctx, projectID, caller.ID)
	if err != nil {
		return err
	}
	target, err := uc.memberships.GetByID(ctx, projectID, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return domerrors.NotFound("member not found")
	}
	// Owner removal is categorically forbidden, independent of rank.
	if target.Role == domain.RoleOwner {
		return domerrors.InsufficientPermission("cannot remove project owner")
	}
	// Strictly greater: equal-rank peers cannot remove each other.
	if !callerMembership.Role.Outranks(target.Role) {
		return domerrors.InsufficientPermission("insufficient rank to remove this member")
	}
	return uc.memberships.Delete(ctx, target.ID)
}
