package tasks

import (
	"context"

	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

// MoveTaskInput targets a list and, optionally, an explicit position. Without
// a position a cross-list move appends to the destination tail.
type MoveTaskInput struct {
	ListID   domain.ListID
	Position *int
}

// MoveTask repositions a task within its list or moves it to another list of
// the same project. Same-list moves set the caller-supplied position without
// renumbering siblings; ordering for display is "position ascending".
type MoveTask struct {
	authority *authz.Authority
	tasks     ports.TaskRepository
	boards    ports.BoardRepository
	history   ports.HistoryRecorder
}

// NewMoveTask builds the use case.
func NewMoveTask(authority *authz.Authority, tasks ports.TaskRepository, boards ports.BoardRepository, history ports.HistoryRecorder) *MoveTask {
	return &MoveTask{authority: authority, tasks: tasks, boards: boards, history: history}
}

// Execute moves the task and, for cross-list moves, records one MOVED history
// entry naming the source and destination lists.
func (uc *MoveTask) Execute(ctx context.Context, caller authz.Principal, taskID domain.TaskID, input MoveTaskInput) (*domain.Task, error) {
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
	targetProject, ok, err := uc.boards.GetListProject(ctx, input.ListID)
	if err != nil {
		return nil, err
	}
	if !ok || targetProject != task.ProjectID {
		return nil, domerrors.NotFound("list not found in this project")
	}

	if input.ListID == task.ListID {
		// Same-list reorder: take the drag-and-drop index as-is. Untouched
		// siblings keep their positions, so relative order is preserved.
		position := task.Position
		if input.Position != nil {
			position = *input.Position
		}
		if err := uc.tasks.Move(ctx, task.ID, task.ListID, position); err != nil {
			return nil, err
		}
	} else {
		position := 0
		if input.Position != nil {
			position = *input.Position
		} else if max, ok, err := uc.tasks.MaxPosition(ctx, input.ListID); err != nil {
			return nil, err
		} else if ok {
			position = max + 1
		}
		if err := uc.tasks.Move(ctx, task.ID, input.ListID, position); err != nil {
			return nil, err
		}
		fromName, toName := uc.listNames(ctx, task.ListID, input.ListID)
		_ = uc.history.Record(ctx, historyEntry(task.ID, caller.ID, domain.HistoryMoved, map[string]any{
			"from": fromName,
			"to":   toName,
		}))
	}

	if full, err := uc.tasks.GetWithRelations(ctx, task.ID); err == nil && full != nil {
		return full, nil
	}
	return uc.tasks.GetByID(ctx, task.ID)
}

func (uc *MoveTask) listNames(ctx context.Context, fromID, toID domain.ListID) (string, string) {
	var fromName, toName string
	if l, err := uc.boards.GetList(ctx, fromID); err == nil && l != nil {
		fromName = l.Name
	}
	if l, err := uc.boards.GetList(ctx, toID); err == nil && l != nil {
		toName = l.Name
	}
	return fromName, toName
}
