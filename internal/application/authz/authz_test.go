package authz

import (
	"context"
	"testing"

	"github.com/tablero-app/tablero/internal/application/apptest"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

func TestRequireMembership(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	outsider := apptest.SeedUser(s, "outsider@example.com")
	project, _ := apptest.SeedProject(s, owner, "TST")

	a := NewAuthority(apptest.MembershipRepo{S: s})

	m, err := a.RequireMembership(context.Background(), project.ID, owner.ID)
	if err != nil {
		t.Fatalf("owner membership: %v", err)
	}
	if m.Role != domain.RoleOwner {
		t.Errorf("role = %s, want OWNER", m.Role)
	}

	_, err = a.RequireMembership(context.Background(), project.ID, outsider.ID)
	if !domerrors.IsNotAMember(err) {
		t.Errorf("outsider: got %v, want NotAMember", err)
	}
}

func TestRequireRank(t *testing.T) {
	a := NewAuthority(nil)
	admin := &domain.Membership{Role: domain.RoleAdmin}

	if _, err := a.RequireRank(admin, domain.RoleOwner, domain.RoleAdmin); err != nil {
		t.Errorf("admin in {OWNER,ADMIN}: %v", err)
	}
	if _, err := a.RequireRank(admin, domain.RoleOwner); !domerrors.IsInsufficientPermission(err) {
		t.Errorf("admin in {OWNER}: got %v, want InsufficientPermission", err)
	}

	unknown := &domain.Membership{Role: domain.Role("SUPERUSER")}
	if _, err := a.RequireRank(unknown, domain.RoleViewer, domain.RoleMember, domain.RoleAdmin, domain.RoleOwner); err == nil {
		t.Error("unknown role should never satisfy an allowed set")
	}
}

func TestRequireMembershipWithRank(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	viewer := apptest.SeedUser(s, "viewer@example.com")
	project, _ := apptest.SeedProject(s, owner, "TST")
	apptest.SeedMember(s, project, viewer, domain.RoleViewer)

	a := NewAuthority(apptest.MembershipRepo{S: s})

	if _, err := a.RequireMembershipWithRank(context.Background(), project.ID, owner.ID, domain.RoleOwner, domain.RoleAdmin); err != nil {
		t.Errorf("owner: %v", err)
	}
	if _, err := a.RequireMembershipWithRank(context.Background(), project.ID, viewer.ID, domain.RoleOwner, domain.RoleAdmin); !domerrors.IsInsufficientPermission(err) {
		t.Errorf("viewer: got %v, want InsufficientPermission", err)
	}
}
