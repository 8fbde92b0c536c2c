package comments

import (
	"context"
	"strings"
	"testing"

	"github.com/tablero-app/tablero/internal/application/apptest"
	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

func newCreateComment(s *apptest.Store) *CreateComment {
	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	return NewCreateComment(authority, apptest.CommentRepo{S: s}, apptest.TaskRepo{S: s}, apptest.UserRepo{S: s}, apptest.Recorder{S: s})
}

func TestCreateCommentRecordsExcerpt(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	task := apptest.SeedTask(s, project, board.Lists[0], owner, "A", 0)
	uc := newCreateComment(s)

	long := strings.Repeat("x", 80)
	comment, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, task.ID, long)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if comment.Content != long {
		t.Error("comment content should not be truncated")
	}
	if comment.User == nil || comment.User.Email != "owner@example.com" {
		t.Error("author profile should be attached")
	}

	entries := s.ByTask(task.ID)
	if len(entries) != 1 || entries[0].Action != domain.HistoryCommented {
		t.Fatalf("history = %+v, want one COMMENTED entry", entries)
	}
	if want := strings.Repeat("x", 50); !strings.Contains(entries[0].Details, want) {
		t.Errorf("details = %s", entries[0].Details)
	}
	if strings.Contains(entries[0].Details, strings.Repeat("x", 51)) {
		t.Error("excerpt should be capped at 50 characters")
	}
}

func TestCreateCommentRequiresMembership(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	outsider := apptest.SeedUser(s, "outsider@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	task := apptest.SeedTask(s, project, board.Lists[0], owner, "A", 0)
	uc := newCreateComment(s)

	_, err := uc.Execute(context.Background(), authz.Principal{ID: outsider.ID}, task.ID, "hi")
	if !domerrors.IsNotAMember(err) {
		t.Errorf("got %v, want NotAMember", err)
	}
}

func TestUpdateCommentAuthorOnly(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	member := apptest.SeedUser(s, "member@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	apptest.SeedMember(s, project, member, domain.RoleMember)
	task := apptest.SeedTask(s, project, board.Lists[0], owner, "A", 0)

	create := newCreateComment(s)
	comment, err := create.Execute(context.Background(), authz.Principal{ID: member.ID}, task.ID, "original")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	uc := NewUpdateComment(apptest.CommentRepo{S: s})

	// The project owner still cannot edit someone else's comment.
	_, err = uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, comment.ID, "hijacked")
	if !domerrors.IsInsufficientPermission(err) {
		t.Errorf("owner edit: got %v, want InsufficientPermission", err)
	}

	updated, err := uc.Execute(context.Background(), authz.Principal{ID: member.ID}, comment.ID, "edited")
	if err != nil {
		t.Fatalf("author edit: %v", err)
	}
	if updated.Content != "edited" {
		t.Errorf("content = %q", updated.Content)
	}
}

func TestDeleteCommentPermissions(t *testing.T) {
	cases := []struct {
		name       string
		callerRole domain.Role
		author     bool
		wantOK     bool
	}{
		{"author member", domain.RoleMember, true, true},
		{"other member", domain.RoleMember, false, false},
		{"other viewer", domain.RoleViewer, false, false},
		{"admin moderator", domain.RoleAdmin, false, true},
		{"owner moderator", domain.RoleOwner, false, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := apptest.NewStore()
			owner := apptest.SeedUser(s, "owner@example.com")
			project, board := apptest.SeedProject(s, owner, "WEB")
			author := apptest.SeedUser(s, "author@example.com")
			apptest.SeedMember(s, project, author, domain.RoleMember)
			task := apptest.SeedTask(s, project, board.Lists[0], owner, "A", 0)

			create := newCreateComment(s)
			comment, err := create.Execute(context.Background(), authz.Principal{ID: author.ID}, task.ID, "hello")
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			caller := author
			if !c.author {
				if c.callerRole == domain.RoleOwner {
					caller = owner
				} else {
					caller = apptest.SeedUser(s, "caller@example.com")
					apptest.SeedMember(s, project, caller, c.callerRole)
				}
			}

			uc := NewDeleteComment(apptest.MembershipRepo{S: s}, apptest.CommentRepo{S: s}, apptest.TaskRepo{S: s})
			err = uc.Execute(context.Background(), authz.Principal{ID: caller.ID}, comment.ID)
			if c.wantOK && err != nil {
				t.Errorf("got %v, want success", err)
			}
			if !c.wantOK && !domerrors.IsInsufficientPermission(err) {
				t.Errorf("got %v, want InsufficientPermission", err)
			}
		})
	}
}

func TestListCommentsOldestFirst(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	task := apptest.SeedTask(s, project, board.Lists[0], owner, "A", 0)

	create := newCreateComment(s)
	ctx := context.Background()
	caller := authz.Principal{ID: owner.ID}
	for _, content := range []string{"first", "second", "third"} {
		if _, err := create.Execute(ctx, caller, task.ID, content); err != nil {
			t.Fatalf("create %q: %v", content, err)
		}
	}

	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewListComments(authority, apptest.CommentRepo{S: s}, apptest.TaskRepo{S: s})
	got, err := uc.Execute(ctx, caller, task.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 || got[0].Content != "first" || got[2].Content != "third" {
		t.Errorf("comments out of order: %+v", got)
	}
}
