package projects

import (
	"context"

	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

// ProjectDetail is the full project view: members with profiles, the board
// tree ordered by position, and the project's labels.
type ProjectDetail struct {
	Project *domain.Project
	Members []*domain.Membership
	Boards  []*domain.Board
	Labels  []*domain.Label
}

// GetProject loads the full project view for a member.
type GetProject struct {
	authority   *authz.Authority
	projects    ports.ProjectRepository
	memberships ports.MembershipRepository
	boards      ports.BoardRepository
	labels      ports.LabelRepository
}

// NewGetProject builds the use case.
func NewGetProject(authority *authz.Authority, projects ports.ProjectRepository, memberships ports.MembershipRepository, boards ports.BoardRepository, labels ports.LabelRepository) *GetProject {
	return &GetProject{authority: authority, projects: projects, memberships: memberships, boards: boards, labels: labels}
}

// Execute returns the project detail. The caller must be a member.
func (uc *GetProject) Execute(ctx context.Context, caller authz.Principal, projectID domain.ProjectID) (*ProjectDetail, error) {
	project, err := uc.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.NotFound("project not found")
	}
	if _, err := uc.authority.RequireMembership(ctx, projectID, caller.ID); err != nil {
		return nil, err
	}
	members, err := uc.memberships.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	boards, err := uc.boards.TreeByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	labels, err := uc.labels.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &ProjectDetail{Project: project, Members: members, Boards: boards, Labels: labels}, nil
}

// ListProjects returns the projects the caller is a member of, newest first.
type ListProjects struct {
	projects ports.ProjectRepository
}

// NewListProjects builds the use case.
func NewListProjects(projects ports.ProjectRepository) *ListProjects {
	return &ListProjects{projects: projects}
}

// Execute lists the caller's projects with task counts attached.
func (uc *ListProjects) Execute(ctx context.Context, caller authz.Principal) ([]*domain.Project, error) {
	return uc.projects.ListForUser(ctx, caller.ID)
}
