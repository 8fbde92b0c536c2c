package tasks

import (
	"context"
	"time"

	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

// UpdateTaskInput is a field patch; nil fields are left unchanged.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Priority       *domain.Priority
	EstimatedHours *float64
	DueDate        *time.Time
	AssignedToID   *domain.UserID
}

// UpdateTask patches task attributes and records one UPDATED history entry
// when the patch set is non-empty.
type UpdateTask struct {
	authority   *authz.Authority
	tasks       ports.TaskRepository
	memberships ports.MembershipRepository
	history     ports.HistoryRecorder
}

// NewUpdateTask builds the use case.
func NewUpdateTask(authority *authz.Authority, tasks ports.TaskRepository, memberships ports.MembershipRepository, history ports.HistoryRecorder) *UpdateTask {
	return &UpdateTask{authority: authority, tasks: tasks, memberships: memberships, history: history}
}

// Execute applies the patch and returns the updated task.
func (uc *UpdateTask) Execute(ctx context.Context, caller authz.Principal, taskID domain.TaskID, input UpdateTaskInput) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domerrors.NotFound("task not found")
	}
	if _, err := uc.authority.RequireMembership(ctx, task.ProjectID, caller.ID); err != nil {
		return nil, err
	}
	if input.AssignedToID != nil {
		m, err := uc.memberships.Get(ctx, task.ProjectID, *input.AssignedToID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domerrors.InsufficientPermission("assignee is not a member of this project")
		}
	}

	changes := map[string]any{}
	if input.Title != nil {
		task.Title = *input.Title
		changes["title"] = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
		changes["description"] = *input.Description
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, domerrors.InvalidRequest("unknown priority")
		}
		task.Priority = *input.Priority
		changes["priority"] = string(*input.Priority)
	}
	if input.EstimatedHours != nil {
		task.EstimatedHours = input.EstimatedHours
		changes["estimatedHours"] = *input.EstimatedHours
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
		changes["dueDate"] = input.DueDate.Format(time.RFC3339)
	}
	if input.AssignedToID != nil {
		task.AssignedToID = input.AssignedToID
		changes["assignedToId"] = input.AssignedToID.String()
	}
	task.UpdatedAt = time.Now()

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		_ = uc.history.Record(ctx, historyEntry(task.ID, caller.ID, domain.HistoryUpdated, changes))
	}

	if full, err := uc.tasks.GetWithRelations(ctx, task.ID); err == nil && full != nil {
		return full, nil
	}
	return task, nil
}

// DeleteTask deletes a task. Any member of the task's project may call;
// comments, labels links and history cascade in the database.
type DeleteTask struct {
	authority *authz.Authority
	tasks     ports.TaskRepository
}

// NewDeleteTask builds the use case.
func NewDeleteTask(authority *authz.Authority, tasks ports.TaskRepository) *DeleteTask {
	return &DeleteTask{authority: authority, tasks: tasks}
}

// Execute deletes the task.
func (uc *DeleteTask) Execute(ctx context.Context, caller authz.Principal, taskID domain.TaskID) error {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return domerrors.NotFound("task not found")
	}
	if _, err := uc.authority.RequireMembership(ctx, task.ProjectID, caller.ID); err != nil {
		return err
	}
	return uc.tasks.Delete(ctx, taskID)
}
