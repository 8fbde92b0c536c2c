package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

// CreateTaskInput carries the new task's attributes.
type CreateTaskInput struct {
	ProjectID      domain.ProjectID
	ListID         domain.ListID
	Title          string
	Description    string
	Priority       domain.Priority
	EstimatedHours *float64
	DueDate        *time.Time
	AssignedToID   *domain.UserID
}

// CreateTask appends a task to the tail of a list: position is the highest
// sibling position plus one, or 0 when the list is empty.
type CreateTask struct {
	authority   *authz.Authority
	tasks       ports.TaskRepository
	boards      ports.BoardRepository
	memberships ports.MembershipRepository
	history     ports.HistoryRecorder
}

// NewCreateTask builds the use case.
func NewCreateTask(authority *authz.Authority, tasks ports.TaskRepository, boards ports.BoardRepository, memberships ports.MembershipRepository, history ports.HistoryRecorder) *CreateTask {
	return &CreateTask{authority: authority, tasks: tasks, boards: boards, memberships: memberships, history: history}
}

// Execute creates the task and records one CREATED history entry.
func (uc *CreateTask) Execute(ctx context.Context, caller authz.Principal, input CreateTaskInput) (*domain.Task, error) {
	if _, err := uc.authority.RequireMembership(ctx, input.ProjectID, caller.ID); err != nil {
		return nil, err
	}
	listProject, ok, err := uc.boards.GetListProject(ctx, input.ListID)
	if err != nil {
		return nil, err
	}
	if !ok || listProject != input.ProjectID {
		return nil, domerrors.NotFound("list not found in this project")
	}
	if input.AssignedToID != nil {
		if err := uc.requireAssignee(ctx, input.ProjectID, *input.AssignedToID); err != nil {
			return nil, err
		}
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, domerrors.InvalidRequest("unknown priority")
	}

	// Tail append. Two racing appends can compute the same position; display
	// order breaks the tie by creation time, so this stays a display artifact.
	position := 0
	if max, ok, err := uc.tasks.MaxPosition(ctx, input.ListID); err != nil {
		return nil, err
	} else if ok {
		position = max + 1
	}

	now := time.Now()
	task := &domain.Task{
		ID:             domain.NewTaskID(uuid.New()),
		ListID:         input.ListID,
		ProjectID:      input.ProjectID,
		Title:          input.Title,
		Description:    input.Description,
		Position:       position,
		Priority:       priority,
		EstimatedHours: input.EstimatedHours,
		DueDate:        input.DueDate,
		AssignedToID:   input.AssignedToID,
		CreatedByID:    caller.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	_ = uc.history.Record(ctx, historyEntry(task.ID, caller.ID, domain.HistoryCreated, map[string]any{"title": task.Title}))

	if full, err := uc.tasks.GetWithRelations(ctx, task.ID); err == nil && full != nil {
		return full, nil
	}
	return task, nil
}

func (uc *CreateTask) requireAssignee(ctx context.Context, projectID domain.ProjectID, userID domain.UserID) error {
	m, err := uc.memberships.Get(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if m == nil {
		return domerrors.InsufficientPermission("assignee is not a member of this project")
	}
	return nil
}

// historyEntry builds an append-only history row with JSON-encoded details.
func historyEntry(taskID domain.TaskID, userID domain.UserID, action domain.HistoryAction, details map[string]any) *domain.TaskHistory {
	raw, err := json.Marshal(details)
	if err != nil {
		raw = []byte("{}")
	}
	return &domain.TaskHistory{
		ID:        uuid.New(),
		TaskID:    taskID,
		UserID:    userID,
		Action:    action,
		Details:   string(raw),
		CreatedAt: time.Now(),
	}
}
