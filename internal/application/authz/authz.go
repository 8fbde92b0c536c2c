// Package authz evaluates project membership and permission rank. Every
// mutating use case resolves the caller through this single check instead of
// duplicating the membership query per feature.
package authz

import (
	"context"

	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

// Principal is the authenticated caller. It is passed explicitly to every
// operation; there is no ambient current-user state.
type Principal struct {
	ID domain.UserID
}

// Authority resolves memberships and compares ranks. Pure evaluation over
// membership state; no side effects.
type Authority struct {
	memberships ports.MembershipRepository
}

// NewAuthority builds an Authority over the membership repository.
func NewAuthority(memberships ports.MembershipRepository) *Authority {
	return &Authority{memberships: memberships}
}

// RequireMembership returns the caller's membership in the project, or a
// NotAMember error when no membership exists for the pair.
func (a *Authority) RequireMembership(ctx context.Context, projectID domain.ProjectID, userID domain.UserID) (*domain.Membership, error) {
	m, err := a.memberships.Get(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domerrors.NotAMember("you are not a member of this project")
	}
	return m, nil
}

// RequireRank returns the membership when its role is in the allowed set, or
// an InsufficientPermission error otherwise. Unknown roles rank 0 and never
// match.
func (a *Authority) RequireRank(m *domain.Membership, allowed ...domain.Role) (*domain.Membership, error) {
	for _, role := range allowed {
		if m.Role == role {
			return m, nil
		}
	}
	return nil, domerrors.InsufficientPermission("insufficient permissions")
}

// RequireMembershipWithRank combines RequireMembership and RequireRank.
func (a *Authority) RequireMembershipWithRank(ctx context.Context, projectID domain.ProjectID, userID domain.UserID, allowed ...domain.Role) (*domain.Membership, error) {
	m, err := a.RequireMembership(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	return a.RequireRank(m, allowed...)
}
