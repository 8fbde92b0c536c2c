package tasks

import (
	"context"

	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

// TaskDetail is the full task view: the task with relations, comments oldest
// first and history newest first.
type TaskDetail struct {
	Task     *domain.Task
	Comments []*domain.Comment
	History  []*domain.TaskHistory
}

// GetTask loads the full task view for a member.
type GetTask struct {
	authority *authz.Authority
	tasks     ports.TaskRepository
	comments  ports.CommentRepository
	history   ports.HistoryRepository
}

// NewGetTask builds the use case.
func NewGetTask(authority *authz.Authority, tasks ports.TaskRepository, comments ports.CommentRepository, history ports.HistoryRepository) *GetTask {
	return &GetTask{authority: authority, tasks: tasks, comments: comments, history: history}
}

// Execute returns the task detail. The caller must be a member of the task's project.
func (uc *GetTask) Execute(ctx context.Context, caller authz.Principal, taskID domain.TaskID) (*TaskDetail, error) {
	task, err := uc.tasks.GetWithRelations(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domerrors.NotFound("task not found")
	}
	if _, err := uc.authority.RequireMembership(ctx, task.ProjectID, caller.ID); err != nil {
		return nil, err
	}
	comments, err := uc.comments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	history, err := uc.history.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return &TaskDetail{Task: task, Comments: comments, History: history}, nil
}

// ListTasks returns a project's tasks newest first.
type ListTasks struct {
	authority *authz.Authority
	tasks     ports.TaskRepository
}

// NewListTasks builds the use case.
func NewListTasks(authority *authz.Authority, tasks ports.TaskRepository) *ListTasks {
	return &ListTasks{authority: authority, tasks: tasks}
}

// Execute lists the project's tasks. The caller must be a member.
func (uc *ListTasks) Execute(ctx context.Context, caller authz.Principal, projectID domain.ProjectID) ([]*domain.Task, error) {
	if _, err := uc.authority.RequireMembership(ctx, projectID, caller.ID); err != nil {
		return nil, err
	}
	return uc.tasks.ListByProject(ctx, projectID)
}
