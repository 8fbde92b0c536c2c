package projects

import (
	"context"
	"time"

	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

// UpdateProjectInput is a field patch; nil fields are left unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Color       *string
	Status      *domain.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
}

// UpdateProject patches project attributes. Requires OWNER or ADMIN.
type UpdateProject struct {
	authority *authz.Authority
	projects  ports.ProjectRepository
}

// NewUpdateProject builds the use case.
func NewUpdateProject(authority *authz.Authority, projects ports.ProjectRepository) *UpdateProject {
	return &UpdateProject{authority: authority, projects: projects}
}

// Execute applies the patch and returns the updated project.
func (uc *UpdateProject) Execute(ctx context.Context, caller authz.Principal, projectID domain.ProjectID, input UpdateProjectInput) (*domain.Project, error) {
	if _, err := uc.authority.RequireMembershipWithRank(ctx, projectID, caller.ID, domain.RoleOwner, domain.RoleAdmin); err != nil {
		return nil, err
	}
	project, err := uc.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.NotFound("project not found")
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, domerrors.InvalidRequest("unknown project status")
	}
	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Color != nil {
		project.Color = *input.Color
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}
	project.UpdatedAt = time.Now()
	if err := uc.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject deletes a project. OWNER only; the database cascades the
// project's boards, lists, tasks, labels and memberships.
type DeleteProject struct {
	authority *authz.Authority
	projects  ports.ProjectRepository
}

// NewDeleteProject builds the use case.
func NewDeleteProject(authority *authz.Authority, projects ports.ProjectRepository) *DeleteProject {
	return &DeleteProject{authority: authority, projects: projects}
}

// Execute deletes the project.
func (uc *DeleteProject) Execute(ctx context.Context, caller authz.Principal, projectID domain.ProjectID) error {
	if _, err := uc.authority.RequireMembershipWithRank(ctx, projectID, caller.ID, domain.RoleOwner); err != nil {
		return err
	}
	project, err := uc.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return domerrors.NotFound("project not found")
	}
	return uc.projects.Delete(ctx, projectID)
}
