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

// CreateProjectInput carries the new project's attributes.
type CreateProjectInput struct {
	Name        string
	Description string
	Key         string
	Color       string
	StartDate   *time.Time
	EndDate     *time.Time
}

// CreateProjectResult returns the created aggregate: the project, the creator's
// OWNER membership and the default board with its seeded lists.
type CreateProjectResult struct {
	Project *domain.Project
	Owner   *domain.Membership
	Board   *domain.Board
}

// CreateProject creates a project together with its OWNER membership, default
// board and the three seeded lists, atomically. Partial creation is never
// observable.
type CreateProject struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
}

// NewCreateProject builds the use case.
func NewCreateProject(projects ports.ProjectRepository, users ports.UserRepository) *CreateProject {
	return &CreateProject{projects: projects, users: users}
}

// Execute creates the project aggregate. The caller becomes OWNER.
func (uc *CreateProject) Execute(ctx context.Context, caller authz.Principal, input CreateProjectInput) (*CreateProjectResult, error) {
	existing, err := uc.projects.GetByKey(ctx, input.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.Conflict("project key already exists")
	}

	now := time.Now()
	project := &domain.Project{
		ID:          domain.NewProjectID(uuid.New()),
		Name:        input.Name,
		Description: input.Description,
		Key:         input.Key,
		Color:       input.Color,
		Status:      domain.ProjectActive,
		CreatedByID: caller.ID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	owner := &domain.Membership{
		ID:        domain.NewMembershipID(uuid.New()),
		ProjectID: project.ID,
		UserID:    caller.ID,
		Role:      domain.RoleOwner,
		CreatedAt: now,
	}
	board := &domain.Board{
		ID:        domain.NewBoardID(uuid.New()),
		ProjectID: project.ID,
		Name:      domain.DefaultBoardName,
		IsDefault: true,
		Position:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, name := range domain.DefaultListNames {
		board.Lists = append(board.Lists, &domain.List{
			ID:        domain.NewListID(uuid.New()),
			BoardID:   board.ID,
			Name:      name,
			Position:  i,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := uc.projects.CreateWithDefaults(ctx, project, owner, board); err != nil {
		return nil, err
	}
	if user, err := uc.users.GetByID(ctx, caller.ID); err == nil && user != nil {
		p := user.Profile()
		owner.User = &p
	}
	return &CreateProjectResult{Project: project, Owner: owner, Board: board}, nil
}
