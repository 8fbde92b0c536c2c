package labels

import (
	"context"

	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

// AssignLabel attaches a label to a task. The pair is unique: assigning an
// already-attached label fails with Conflict.
type AssignLabel struct {
	authority *authz.Authority
	labels    ports.LabelRepository
	tasks     ports.TaskRepository
}

// NewAssignLabel builds the use case.
func NewAssignLabel(authority *authz.Authority, labels ports.LabelRepository, tasks ports.TaskRepository) *AssignLabel {
	return &AssignLabel{authority: authority, labels: labels, tasks: tasks}
}

// Execute creates the link and returns the task with its labels.
func (uc *AssignLabel) Execute(ctx context.Context, caller authz.Principal, taskID domain.TaskID, labelID domain.LabelID) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domerrors.NotFound("task not found")
	}
	label, err := uc.labels.GetByID(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, domerrors.NotFound("label not found")
	}
	if label.ProjectID != task.ProjectID {
		return nil, domerrors.InsufficientPermission("label does not belong to the same project as the task")
	}
	if _, err := uc.authority.RequireMembership(ctx, task.ProjectID, caller.ID); err != nil {
		return nil, err
	}
	assigned, err := uc.labels.Assigned(ctx, taskID, labelID)
	if err != nil {
		return nil, err
	}
	if assigned {
		return nil, domerrors.Conflict("label already assigned to this task")
	}
	// The unique (task, label) constraint turns a racing insert into Conflict.
	if err := uc.labels.Assign(ctx, taskID, labelID); err != nil {
		return nil, err
	}
	return uc.taskWithLabels(ctx, task)
}

// UnassignLabel removes a task-label link; removing a link that does not
// exist fails with NotFound.
type UnassignLabel struct {
	authority *authz.Authority
	labels    ports.LabelRepository
	tasks     ports.TaskRepository
}

// NewUnassignLabel builds the use case.
func NewUnassignLabel(authority *authz.Authority, labels ports.LabelRepository, tasks ports.TaskRepository) *UnassignLabel {
	return &UnassignLabel{authority: authority, labels: labels, tasks: tasks}
}

// Execute removes the link and returns the task with its remaining labels.
func (uc *UnassignLabel) Execute(ctx context.Context, caller authz.Principal, taskID domain.TaskID, labelID domain.LabelID) (*domain.Task, error) {
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
	assigned, err := uc.labels.Assigned(ctx, taskID, labelID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, domerrors.NotFound("label not assigned to this task")
	}
	if err := uc.labels.Unassign(ctx, taskID, labelID); err != nil {
		return nil, err
	}
	return uc.taskWithLabels(ctx, task)
}

func (uc *UnassignLabel) taskWithLabels(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	ls, err := uc.labels.ListByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	task.Labels = ls
	return task, nil
}

func (uc *AssignLabel) taskWithLabels(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	ls, err := uc.labels.ListByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	task.Labels = ls
	return task, nil
}
