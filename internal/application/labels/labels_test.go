package labels

import (
	"context"
	"fmt"
	"testing"

	"github.com/tablero-app/tablero/internal/application/apptest"
	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

func newCreateLabel(s *apptest.Store) *CreateLabel {
	return NewCreateLabel(authz.NewAuthority(apptest.MembershipRepo{S: s}), apptest.LabelRepo{S: s})
}

func TestCreateLabel(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, _ := apptest.SeedProject(s, owner, "WEB")
	uc := newCreateLabel(s)

	label, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, CreateLabelInput{
		ProjectID: project.ID, Name: "bug", Color: "#ef4444",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if label.Name != "bug" || label.Color != "#ef4444" {
		t.Errorf("label = %+v", label)
	}
}

func TestCreateLabelColorValidation(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, _ := apptest.SeedProject(s, owner, "WEB")
	uc := newCreateLabel(s)
	ctx := context.Background()
	caller := authz.Principal{ID: owner.ID}

	for i, color := range []string{"#abc", "#ABCDEF", "#3b82f6"} {
		_, err := uc.Execute(ctx, caller, CreateLabelInput{ProjectID: project.ID, Name: fmt.Sprintf("ok%d", i), Color: color})
		if err != nil {
			t.Errorf("color %q should be accepted: %v", color, err)
		}
	}
	for _, color := range []string{"ef4444", "#ef44", "#gggggg", "#ef44441", "red", ""} {
		_, err := uc.Execute(ctx, caller, CreateLabelInput{ProjectID: project.ID, Name: "bad-" + color, Color: color})
		if !domerrors.IsInvalidRequest(err) {
			t.Errorf("color %q: got %v, want InvalidRequest", color, err)
		}
	}
}

func TestCreateLabelDuplicateName(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, _ := apptest.SeedProject(s, owner, "WEB")
	apptest.SeedLabel(s, project, "bug", "#ef4444")
	uc := newCreateLabel(s)

	_, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, CreateLabelInput{
		ProjectID: project.ID, Name: "bug", Color: "#22c55e",
	})
	if !domerrors.IsConflict(err) {
		t.Errorf("got %v, want Conflict", err)
	}

	// The same name is fine in a different project.
	other, _ := apptest.SeedProject(s, owner, "OTH")
	if _, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, CreateLabelInput{
		ProjectID: other.ID, Name: "bug", Color: "#22c55e",
	}); err != nil {
		t.Errorf("other project: %v", err)
	}
}

func TestCreateLabelCap(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, _ := apptest.SeedProject(s, owner, "WEB")
	for i := 0; i < domain.MaxProjectLabels; i++ {
		apptest.SeedLabel(s, project, fmt.Sprintf("label-%d", i), "#3b82f6")
	}
	uc := newCreateLabel(s)

	_, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, CreateLabelInput{
		ProjectID: project.ID, Name: "one-too-many", Color: "#3b82f6",
	})
	if !domerrors.IsConflict(err) {
		t.Errorf("over cap: got %v, want Conflict", err)
	}
}

func TestCreateLabelRequiresAdminRank(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	member := apptest.SeedUser(s, "member@example.com")
	project, _ := apptest.SeedProject(s, owner, "WEB")
	apptest.SeedMember(s, project, member, domain.RoleMember)
	uc := newCreateLabel(s)

	_, err := uc.Execute(context.Background(), authz.Principal{ID: member.ID}, CreateLabelInput{
		ProjectID: project.ID, Name: "bug", Color: "#ef4444",
	})
	if !domerrors.IsInsufficientPermission(err) {
		t.Errorf("got %v, want InsufficientPermission", err)
	}
}

func TestAssignUnassignRoundTrip(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	task := apptest.SeedTask(s, project, board.Lists[0], owner, "A", 0)
	label := apptest.SeedLabel(s, project, "bug", "#ef4444")

	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	assign := NewAssignLabel(authority, apptest.LabelRepo{S: s}, apptest.TaskRepo{S: s})
	unassign := NewUnassignLabel(authority, apptest.LabelRepo{S: s}, apptest.TaskRepo{S: s})
	ctx := context.Background()
	caller := authz.Principal{ID: owner.ID}

	got, err := assign.Execute(ctx, caller, task.ID, label.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if len(got.Labels) != 1 || got.Labels[0].ID != label.ID {
		t.Errorf("labels after assign = %+v", got.Labels)
	}

	if _, err := assign.Execute(ctx, caller, task.ID, label.ID); !domerrors.IsConflict(err) {
		t.Errorf("double assign: got %v, want Conflict", err)
	}

	got, err = unassign.Execute(ctx, caller, task.ID, label.ID)
	if err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if len(got.Labels) != 0 {
		t.Errorf("labels after unassign = %+v", got.Labels)
	}

	if _, err := unassign.Execute(ctx, caller, task.ID, label.ID); !domerrors.IsNotFound(err) {
		t.Errorf("unassign missing: got %v, want NotFound", err)
	}

	// Re-assign after removal succeeds.
	if _, err := assign.Execute(ctx, caller, task.ID, label.ID); err != nil {
		t.Errorf("re-assign: %v", err)
	}
}

func TestAssignLabelCrossProject(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, board := apptest.SeedProject(s, owner, "WEB")
	otherProject, _ := apptest.SeedProject(s, owner, "OTH")
	task := apptest.SeedTask(s, project, board.Lists[0], owner, "A", 0)
	foreign := apptest.SeedLabel(s, otherProject, "bug", "#ef4444")

	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	assign := NewAssignLabel(authority, apptest.LabelRepo{S: s}, apptest.TaskRepo{S: s})

	_, err := assign.Execute(context.Background(), authz.Principal{ID: owner.ID}, task.ID, foreign.ID)
	if !domerrors.IsInsufficientPermission(err) {
		t.Errorf("got %v, want InsufficientPermission", err)
	}
}

func TestUpdateLabelRenameConflict(t *testing.T) {
	s := apptest.NewStore()
	owner := apptest.SeedUser(s, "owner@example.com")
	project, _ := apptest.SeedProject(s, owner, "WEB")
	apptest.SeedLabel(s, project, "bug", "#ef4444")
	feature := apptest.SeedLabel(s, project, "feature", "#22c55e")

	authority := authz.NewAuthority(apptest.MembershipRepo{S: s})
	uc := NewUpdateLabel(authority, apptest.LabelRepo{S: s})
	name := "bug"

	_, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, feature.ID, UpdateLabelInput{Name: &name})
	if !domerrors.IsConflict(err) {
		t.Errorf("rename to taken name: got %v, want Conflict", err)
	}

	// Patching only the color of an existing label is not a rename.
	color := "#f59e0b"
	updated, err := uc.Execute(context.Background(), authz.Principal{ID: owner.ID}, feature.ID, UpdateLabelInput{Color: &color})
	if err != nil {
		t.Fatalf("color patch: %v", err)
	}
	if updated.Color != color || updated.Name != "feature" {
		t.Errorf("updated = %+v", updated)
	}
}
