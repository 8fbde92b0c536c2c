package tasks

import (
	"context"
	"strings"
	"testing"

	"github.com/tablero-app/tablero/internal/application/apptest"
	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

func newCreateTask(s *apptest.Store) *CreateTask {
	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	return NewCreateTask(authority, apptest.TaskRepo{S: s}, apptest.BoardRepo{S: s}, apptest.MembershipRepo{S: s}, apptest.Recorder{S: s})
}

func newMoveTask(s *apptest.Store) *MoveTask {
	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	return NewMoveTask(authority, apptest.TaskRepo{S: s}, apptest.BoardRepo{S: s}, apptest.Recorder{S: s})
}

func TestCreateTaskTailAppend(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	todo := board.Lists[0]
	uc := newCreateTask(s)
	ctx := context.Background()
	caller := authz.Principal{ID: owner.ID}

	first, err := uc.Execute(ctx, caller, CreateTaskInput{ProjectID: project.ID, ListID: todo.ID, Title: "First"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if first.Position != 0 {
		t.Errorf("first position = %d, want 0 on empty list", first.Position)
	}
	if first.Priority != domain.PriorityMedium {
		t.Errorf("default priority = %s, want MEDIUM", first.Priority)
	}

	second, err := uc.Execute(ctx, caller, CreateTaskInput{ProjectID: project.ID, ListID: todo.ID, Title: "Second"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.Position != first.Position+1 {
		t.Errorf("second position = %d, want %d", second.Position, first.Position+1)
	}

	entries := s.ByTask(first.ID)
	if len(entries) != 1 || entries[0].Action != domain.HistoryCreated {
		t.Fatalf("history = %+v, want one CREATED entry", entries)
	}
	if !strings.Contains(entries[0].Details, `"title":"First"`) {
		t.Errorf("details = %s", entries[0].Details)
	}
}

func TestCreateTaskGapSurvivesDeletion(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	todo := board.Lists[0]
	apptest.SeedTask(s, project, todo, owner, "Keeper", 7)
	uc := newCreateTask(s)

	task, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, CreateTaskInput{ProjectID: project.ID, ListID: todo.ID, Title: "Tail"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Position != 8 {
		t.Errorf("position = %d, want max+1 = 8", task.Position)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	outsider := apptest.SeedUser(s, "outsider@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	other := apptest.SeedUser(s, "other@example.com")
	_, otherBoard := apptest.SeedProject(s, other, "OTH")
	uc := newCreateTask(s)
	ctx := context.Background()
	caller := authz.Principal{ID: owner.ID}

	// List belonging to another project.
	_, err := uc.Execute(ctx, caller, CreateTaskInput{ProjectID: project.ID, ListID: otherBoard.Lists[0].ID, Title: "X"})
	if !domerrors.IsNotFound(err) {
		t.Errorf("foreign list: got %v, want NotFound", err)
	}

	// Assignee must be a member.
	_, err = uc.Execute(ctx, caller, CreateTaskInput{
		ProjectID: project.ID, ListID: board.Lists[0].ID, Title: "X", AssignedToID: &outsider.ID,
	})
	if !domerrors.IsInsufficientPermission(err) {
		t.Errorf("non-member assignee: got %v, want InsufficientPermission", err)
	}

	// Unknown priority.
	_, err = uc.Execute(ctx, caller, CreateTaskInput{
		ProjectID: project.ID, ListID: board.Lists[0].ID, Title: "X", Priority: domain.Priority("URGENT"),
	})
	if !domerrors.IsInvalidRequest(err) {
		t.Errorf("bad priority: got %v, want InvalidRequest", err)
	}

	// Outsiders cannot create tasks.
	_, err = uc.Execute(ctx, authz.Principal{ID: outsider.ID}, CreateTaskInput{ProjectID: project.ID, ListID: board.Lists[0].ID, Title: "X"})
	if !domerrors.IsNotAMember(err) {
		t.Errorf("outsider: got %v, want NotAMember", err)
	}
}

func TestMoveTaskSameListKeepsSiblings(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	todo := board.Lists[0]
	a := apptest.SeedTask(s, project, todo, owner, "A", 0)
	b := apptest.SeedTask(s, project, todo, owner, "B", 1)
	c := apptest.SeedTask(s, project, todo, owner, "C", 2)
	uc := newMoveTask(s)

	pos := 0
	moved, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, c.ID, MoveTaskInput{ListID: todo.ID, Position: &pos})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.Position != 0 || moved.ListID != todo.ID {
		t.Errorf("moved = pos %d list %v", moved.Position, moved.ListID)
	}
	// Siblings are not renumbered.
	if s.Tasks[a.ID].Position != 0 || s.Tasks[b.ID].Position != 1 {
		t.Errorf("siblings renumbered: a=%d b=%d", s.Tasks[a.ID].Position, s.Tasks[b.ID].Position)
	}
	// Reordering within a list leaves no trace in history.
	if got := s.ByTask(c.ID); len(got) != 0 {
		t.Errorf("same-list move recorded history: %+v", got)
	}
}

func TestMoveTaskCrossListDefaultsToTail(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	todo, doing := board.Lists[0], board.Lists[1]
	task := apptest.SeedTask(s, project, todo, owner, "A", 0)
	apptest.SeedTask(s, project, doing, owner, "Busy", 4)
	uc := newMoveTask(s)

	moved, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, task.ID, MoveTaskInput{ListID: doing.ID})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.ListID != doing.ID || moved.Position != 5 {
		t.Errorf("moved = list %v pos %d, want tail pos 5", moved.ListID, moved.Position)
	}

	entries := s.ByTask(task.ID)
	if len(entries) != 1 || entries[0].Action != domain.HistoryMoved {
		t.Fatalf("history = %+v, want one MOVED entry", entries)
	}
	if !strings.Contains(entries[0].Details, `"from":"To Do"`) || !strings.Contains(entries[0].Details, `"to":"In Progress"`) {
		t.Errorf("details = %s", entries[0].Details)
	}
}

func TestMoveTaskRejectsForeignList(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	other := apptest.SeedUser(s, "other@example.com")
	_, otherBoard := apptest.SeedProject(s, other, "OTH")
	task := apptest.SeedTask(s, project, board.Lists[0], owner, "A", 0)
	uc := newMoveTask(s)

	_, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, task.ID, MoveTaskInput{ListID: otherBoard.Lists[0].ID})
	if !domerrors.IsNotFound(err) {
		t.Errorf("got %v, want NotFound", err)
	}
}

func TestUpdateTaskHistory(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	task := apptest.SeedTask(s, project, board.Lists[0], owner, "A", 0)
	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewUpdateTask(authority, apptest.TaskRepo{S: s}, apptest.MembershipRepo{S: s}, apptest.Recorder{S: s})
	ctx := context.Background()
	caller := authz.Principal{ID: owner.ID}

	// Empty patch leaves history untouched.
	if _, err := uc.Execute(ctx, caller, task.ID, UpdateTaskInput{}); err != nil {
		t.Fatalf("empty patch: %v", err)
	}
	if got := s.ByTask(task.ID); len(got) != 0 {
		t.Fatalf("empty patch recorded history: %+v", got)
	}

	title := "Renamed"
	priority := domain.PriorityHigh
	updated, err := uc.Execute(ctx, caller, task.ID, UpdateTaskInput{Title: &title, Priority: &priority})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if updated.Title != "Renamed" || updated.Priority != domain.PriorityHigh {
		t.Errorf("updated = %q %s", updated.Title, updated.Priority)
	}
	entries := s.ByTask(task.ID)
	if len(entries) != 1 || entries[0].Action != domain.HistoryUpdated {
		t.Fatalf("history = %+v, want one UPDATED entry", entries)
	}
	if !strings.Contains(entries[0].Details, `"title":"Renamed"`) || !strings.Contains(entries[0].Details, `"priority":"HIGH"`) {
		t.Errorf("details = %s", entries[0].Details)
	}
}

func TestUpdateTaskAssigneeMustBeMember(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	outsider := apptest.SeedUser(s, "outsider@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	task := apptest.SeedTask(s, project, board.Lists[0], owner, "A", 0)
	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewUpdateTask(authority, apptest.TaskRepo{S: s}, apptest.MembershipRepo{S: s}, apptest.Recorder{S: s})

	_, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, task.ID, UpdateTaskInput{AssignedToID: &outsider.ID})
	if !domerrors.IsInsufficientPermission(err) {
		t.Errorf("got %v, want InsufficientPermission", err)
	}
}

func TestGetTaskDetail(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	outsider := apptest.SeedUser(s, "outsider@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	task := apptest.SeedTask(s, project, board.Lists[0], owner, "A", 0)
	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewGetTask(authority, apptest.TaskRepo{S: s}, apptest.CommentRepo{S: s}, apptest.HistoryRepo{S: s})

	detail, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.Task.ID != task.ID {
		t.Errorf("task = %v", detail.Task.ID)
	}

	_, err = uc.Execute(context.Background(), authz.Principal{ID: outsider.ID}, task.ID)
	if !domerrors.IsNotAMember(err) {
		t.Errorf("outsider: got %v, want NotAMember", err)
	}
}

func TestDeleteTask(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	task := apptest.SeedTask(s, project, board.Lists[0], owner, "A", 0)
	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewDeleteTask(authority, apptest.TaskRepo{S: s})

	if err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, task.ID); !domerrors.IsNotFound(err) {
		t.Errorf("second delete: got %v, want NotFound", err)
	}
}
