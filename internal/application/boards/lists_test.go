package boards

import (
	"context"
	"testing"

	"github.com/tablero-app/tablero/internal/application/apptest"
	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

func TestCreateListTailAppend(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	_, board := apptest.SeedProject(s, owner, "WEB")
	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewCreateList(authority, apptest.BoardRepo{S: s})

	list, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, CreateListInput{BoardID: board.ID, Name: "Review"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// The three seeded lists occupy positions 0..2.
	if list.Position != 3 {
		t.Errorf("position = %d, want 3", list.Position)
	}
}

func TestCreateListRequiresMembership(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	outsider := apptest.SeedUser(s, "outsider@example.com")
	_, board := apptest.SeedProject(s, owner, "WEB")
	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewCreateList(authority, apptest.BoardRepo{S: s})

	_, err := uc.Execute(context.Background(), authz.Principal{ID: outsider.ID}, CreateListInput{BoardID: board.ID, Name: "Review"})
	if !domerrors.IsNotAMember(err) {
		t.Errorf("got %v, want NotAMember", err)
	}
}

func TestMoveListKeepsSiblings(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	_, board := apptest.SeedProject(s, owner, "WEB")
	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewMoveList(authority, apptest.BoardRepo{S: s})

	done := board.Lists[2]
	moved, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, done.ID, 0)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.Position != 0 {
		t.Errorf("position = %d, want 0", moved.Position)
	}
	if s.Lists[board.Lists[0].ID].Position != 0 || s.Lists[board.Lists[1].ID].Position != 1 {
		t.Error("siblings should not be renumbered")
	}
}

func TestDeleteListRequiresAdminRank(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	member := apptest.SeedUser(s, "member@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	apptest.SeedMember(s, project, member, domain.RoleMember)
	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewDeleteList(authority, apptest.BoardRepo{S: s})

	if err := uc.Execute(context.Background(), authz.Principal{ID: member.ID}, board.Lists[0].ID); !domerrors.IsInsufficientPermission(err) {
		t.Errorf("member delete: got %v, want InsufficientPermission", err)
	}
	if err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, board.Lists[0].ID); err != nil {
		t.Errorf("owner delete: %v", err)
	}
	if err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, board.Lists[0].ID); !domerrors.IsNotFound(err) {
		t.Errorf("second delete: got %v, want NotFound", err)
	}
}

func TestDeleteBoardDefaultGuard(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	_, board := apptest.SeedProject(s, owner, "WEB")
	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewDeleteBoard(authority, apptest.BoardRepo{S: s})

	err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, board.ID)
	if !domerrors.IsInvalidRequest(err) {
		t.Errorf("default board delete: got %v, want InvalidRequest", err)
	}
}
