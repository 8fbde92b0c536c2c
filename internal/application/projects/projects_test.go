package projects

import (
	"context"
	"fmt"
	"testing"

	"github.com/tablero-app/tablero/internal/application/apptest"
	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

func TestCreateProjectAggregate(t *testing.T) {
	s := apptest.NewStore()
	user := apptest.SeedUser(s, "owner@example.com")
	uc := NewCreateProject(apptest.ProjectRepo{S: s}, apptest.UserRepo{S: s})

	result, err := uc.Execute(context.Background(), authz.Principal{ID: user.ID}, CreateProjectInput{
		Name: "Website", Key: "WEB",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.Project.Status != domain.ProjectActive {
		t.Errorf("status = %s, want ACTIVE", result.Project.Status)
	}
	if result.Owner.Role != domain.RoleOwner {
		t.Errorf("creator role = %s, want OWNER", result.Owner.Role)
	}
	if !result.Board.IsDefault || result.Board.Name != domain.DefaultBoardName {
		t.Errorf("default board = %q isDefault=%v", result.Board.Name, result.Board.IsDefault)
	}
	if len(result.Board.Lists) != 3 {
		t.Fatalf("seeded lists = %d, want 3", len(result.Board.Lists))
	}
	for i, want := range domain.DefaultListNames {
		l := result.Board.Lists[i]
		if l.Name != want || l.Position != i {
			t.Errorf("list[%d] = %q pos=%d, want %q pos=%d", i, l.Name, l.Position, want, i)
		}
	}
}

func TestCreateProjectDuplicateKey(t *testing.T) {
	s := apptest.NewStore()
	user := apptest.SeedUser(s, "owner@example.com")
	apptest.SeedProject(s, user, "WEB")
	uc := NewCreateProject(apptest.ProjectRepo{S: s}, apptest.UserRepo{S: s})

	_, err := uc.Execute(context.Background(), authz.Principal{ID: user.ID}, CreateProjectInput{Name: "Another", Key: "WEB"})
	if !domerrors.IsConflict(err) {
		t.Errorf("got %v, want Conflict", err)
	}
}

func newAddMember(s *apptest.Store) *AddMember {
	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	return NewAddMember(authority, apptest.MembershipRepo{S: s}, apptest.UserRepo{S: s})
}

func TestAddMemberByEmail(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	invitee := apptest.SeedUser(s, "invitee@example.com")
	project, _ := apptest.SeedProject(s, owner, "WEB")
	uc := newAddMember(s)

	m, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, AddMemberInput{
		ProjectID: project.ID, Email: "invitee@example.com", Role: domain.RoleMember,
	})
	if err != nil {
		t.Fatalf("add by email: %v", err)
	}
	if m.UserID != invitee.ID || m.Role != domain.RoleMember {
		t.Errorf("membership = %+v", m)
	}
	if m.User == nil || m.User.Email != "invitee@example.com" {
		t.Error("member profile should be attached")
	}
}

func TestAddMemberRules(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	member := apptest.SeedUser(s, "member@example.com")
	invitee := apptest.SeedUser(s, "invitee@example.com")
	project, _ := apptest.SeedProject(s, owner, "WEB")
	apptest.SeedMember(s, project, member, domain.RoleMember)
	uc := newAddMember(s)
	ctx := context.Background()

	// MEMBER cannot invite.
	_, err := uc.Execute(ctx, authz.Principal{ID: member.ID}, AddMemberInput{
		ProjectID: project.ID, Email: invitee.Email, Role: domain.RoleMember,
	})
	if !domerrors.IsInsufficientPermission(err) {
		t.Errorf("member invites: got %v, want InsufficientPermission", err)
	}

	// OWNER role is never assignable through invitation.
	_, err = uc.Execute(ctx, authz.Principal{ID: owner.ID}, AddMemberInput{
		ProjectID: project.ID, Email: invitee.Email, Role: domain.RoleOwner,
	})
	if !domerrors.IsInvalidRequest(err) {
		t.Errorf("assign OWNER: got %v, want InvalidRequest", err)
	}

	// Unknown role.
	_, err = uc.Execute(ctx, authz.Principal{ID: owner.ID}, AddMemberInput{
		ProjectID: project.ID, Email: invitee.Email, Role: domain.Role("SUPERUSER"),
	})
	if !domerrors.IsInvalidRequest(err) {
		t.Errorf("unknown role: got %v, want InvalidRequest", err)
	}

	// Missing both userId and email.
	_, err = uc.Execute(ctx, authz.Principal{ID: owner.ID}, AddMemberInput{
		ProjectID: project.ID, Role: domain.RoleMember,
	})
	if !domerrors.IsInvalidRequest(err) {
		t.Errorf("no target: got %v, want InvalidRequest", err)
	}

	// Unknown user.
	_, err = uc.Execute(ctx, authz.Principal{ID: owner.ID}, AddMemberInput{
		ProjectID: project.ID, Email: "ghost@example.com", Role: domain.RoleMember,
	})
	if !domerrors.IsNotFound(err) {
		t.Errorf("unknown user: got %v, want NotFound", err)
	}

	// Duplicate membership.
	_, err = uc.Execute(ctx, authz.Principal{ID: owner.ID}, AddMemberInput{
		ProjectID: project.ID, Email: member.Email, Role: domain.RoleViewer,
	})
	if !domerrors.IsConflict(err) {
		t.Errorf("duplicate: got %v, want Conflict", err)
	}
}

func TestAddMemberCap(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, _ := apptest.SeedProject(s, owner, "WEB")
	for i := 1; i < domain.MaxProjectMembers; i++ {
		u := apptest.SeedUser(s, fmt.Sprintf("user%d@example.com", i))
		apptest.SeedMember(s, project, u, domain.RoleMember)
	}
	extra := apptest.SeedUser(s, "extra@example.com")
	uc := newAddMember(s)

	_, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, AddMemberInput{
		ProjectID: project.ID, Email: extra.Email, Role: domain.RoleMember,
	})
	if !domerrors.IsConflict(err) {
		t.Errorf("over cap: got %v, want Conflict", err)
	}
}

func TestRemoveMemberRankMatrix(t *testing.T) {
	cases := []struct {
		name          string
		caller, target domain.Role
		wantRemoved   bool
	}{
		{"owner removes admin", domain.RoleOwner, domain.RoleAdmin, true},
		{"owner removes member", domain.RoleOwner, domain.RoleMember, true},
		{"admin removes member", domain.RoleAdmin, domain.RoleMember, true},
		{"admin removes viewer", domain.RoleAdmin, domain.RoleViewer, true},
		{"admin removes admin", domain.RoleAdmin, domain.RoleAdmin, false},
		{"member removes member", domain.RoleMember, domain.RoleMember, false},
		{"member removes admin", domain.RoleMember, domain.RoleAdmin, false},
		{"viewer removes viewer", domain.RoleViewer, domain.RoleViewer, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := apptest.NewStore()
			owner := apptest.SeedUser(s, "owner@example.com")
			project, _ := apptest.SeedProject(s, owner, "WEB")
			caller := apptest.SeedUser(s, "caller@example.com")
			target := apptest.SeedUser(s, "target@example.com")
			apptest.SeedMember(s, project, caller, c.caller)
			targetM := apptest.SeedMember(s, project, target, c.target)

			authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
			uc := NewRemoveMember(authority, apptest.MembershipRepo{S: s})
			err := uc.Execute(context.Background(), authz.Principal{ID: caller.ID}, project.ID, targetM.ID)
			if c.wantRemoved && err != nil {
				t.Errorf("got %v, want success", err)
			}
			if !c.wantRemoved && !domerrors.IsInsufficientPermission(err) {
				t.Errorf("got %v, want InsufficientPermission", err)
			}
		})
	}
}

func TestRemoveMemberOwnerIsUnremovable(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, _ := apptest.SeedProject(s, owner, "WEB")
	admin := apptest.SeedUser(s, "admin@example.com")
	apptest.SeedMember(s, project, admin, domain.RoleAdmin)

	var ownerMembership *domain.Membership
	for _, m := range s.Memberships {
		if m.UserID == owner.ID {
			ownerMembership = m
		}
	}

	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewRemoveMember(authority, apptest.MembershipRepo{S: s})

	// Even the owner cannot remove the owner membership.
	for _, caller := range []domain.UserID{admin.ID, owner.ID} {
		err := uc.Execute(context.Background(), authz.Principal{ID: caller}, project.ID, ownerMembership.ID)
		if !domerrors.IsInsufficientPermission(err) {
			t.Errorf("remove owner by %v: got %v, want InsufficientPermission", caller, err)
		}
	}
}

func TestRemoveMemberUnknownTarget(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, _ := apptest.SeedProject(s, owner, "WEB")
	other := apptest.SeedUser(s, "other@example.com")
	otherProject, _ := apptest.SeedProject(s, other, "OTH")
	strayM := apptest.SeedMember(s, otherProject, apptest.SeedUser(s, "stray@example.com"), domain.RoleMember)

	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewRemoveMember(authority, apptest.MembershipRepo{S: s})

	// A membership of another project is not found in this project's scope.
	err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, project.ID, strayM.ID)
	if !domerrors.IsNotFound(err) {
		t.Errorf("cross-project target: got %v, want NotFound", err)
	}
}

func TestGetProjectRequiresMembership(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	outsider := apptest.SeedUser(s, "outsider@example.com")
	project, _ := apptest.SeedProject(s, owner, "WEB")

	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewGetProject(authority, apptest.ProjectRepo{S: s}, apptest.MembershipRepo{S: s}, apptest.BoardRepo{S: s}, apptest.LabelRepo{S: s})

	detail, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, project.ID)
	if err != nil {
		t.Fatalf("member get: %v", err)
	}
	if len(detail.Boards) != 1 || len(detail.Boards[0].Lists) != 3 {
		t.Errorf("board tree incomplete: %+v", detail.Boards)
	}

	_, err = uc.Execute(context.Background(), authz.Principal{ID: outsider.ID}, project.ID)
	if !domerrors.IsNotAMember(err) {
		t.Errorf("outsider get: got %v, want NotAMember", err)
	}
}

func TestUpdateProjectRequiresAdminRank(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	member := apptest.SeedUser(s, "member@example.com")
	project, _ := apptest.SeedProject(s, owner, "WEB")
	apptest.SeedMember(s, project, member, domain.RoleMember)

	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewUpdateProject(authority, apptest.ProjectRepo{S: s})
	name := "Renamed"

	_, err := uc.Execute(context.Background(), authz.Principal{ID: member.ID}, project.ID, UpdateProjectInput{Name: &name})
	if !domerrors.IsInsufficientPermission(err) {
		t.Errorf("member update: got %v, want InsufficientPermission", err)
	}

	updated, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, project.ID, UpdateProjectInput{Name: &name})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("name = %q", updated.Name)
	}
}

func TestDeleteProjectOwnerOnly(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	admin := apptest.SeedUser(s, "admin@example.com")
	project, _ := apptest.SeedProject(s, owner, "WEB")
	apptest.SeedMember(s, project, admin, domain.RoleAdmin)

	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewDeleteProject(authority, apptest.ProjectRepo{S: s})

	if err := uc.Execute(context.Background(), authz.Principal{ID: admin.ID}, project.ID); !domerrors.IsInsufficientPermission(err) {
		t.Errorf("admin delete: got %v, want InsufficientPermission", err)
	}
	if err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, project.ID); err != nil {
		t.Errorf("owner delete: %v", err)
	}
}
