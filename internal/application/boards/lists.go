// Package boards manages the list sequence of a board: creation appends to
// the tail, repositioning sets an explicit position without renumbering
// siblings, mirroring how tasks order within a list.
package boards

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

// CreateListInput names the new list on a board.
type CreateListInput struct {
	BoardID domain.BoardID
	Name    string
}

// CreateList appends a list to the tail of a board.
type CreateList struct {
	authority *authz.Authority
	boards    ports.BoardRepository
}

// NewCreateList builds the use case.
func NewCreateList(authority *authz.Authority, boards ports.BoardRepository) *CreateList {
	return &CreateList{authority: authority, boards: boards}
}

// Execute creates the list. The caller must be a member of the board's project.
func (uc *CreateList) Execute(ctx context.Context, caller authz.Principal, input CreateListInput) (*domain.List, error) {
	board, err := uc.boards.GetBoard(ctx, input.BoardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, domerrors.NotFound("board not found")
	}
	if _, err := uc.authority.RequireMembership(ctx, board.ProjectID, caller.ID); err != nil {
		return nil, err
	}
	position := 0
	if max, ok, err := uc.boards.MaxListPosition(ctx, input.BoardID); err != nil {
		return nil, err
	} else if ok {
		position = max + 1
	}
	now := time.Now()
	list := &domain.List{
		ID:        domain.NewListID(uuid.New()),
		BoardID:   input.BoardID,
		Name:      input.Name,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.boards.CreateList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// MoveList sets a list's position among its siblings.
type MoveList struct {
	authority *authz.Authority
	boards    ports.BoardRepository
}

// NewMoveList builds the use case.
func NewMoveList(authority *authz.Authority, boards ports.BoardRepository) *MoveList {
	return &MoveList{authority: authority, boards: boards}
}

// Execute repositions the list. The caller must be a member.
func (uc *MoveList) Execute(ctx context.Context, caller authz.Principal, listID domain.ListID, position int) (*domain.List, error) {
	list, err := uc.boards.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, domerrors.NotFound("list not found")
	}
	projectID, ok, err := uc.boards.GetListProject(ctx, listID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domerrors.NotFound("list not found")
	}
	if _, err := uc.authority.RequireMembership(ctx, projectID, caller.ID); err != nil {
		return nil, err
	}
	if err := uc.boards.UpdateListPosition(ctx, listID, position); err != nil {
		return nil, err
	}
	list.Position = position
	return list, nil
}

// DeleteList deletes a list and, by database cascade, its tasks.
// Requires ADMIN or OWNER.
type DeleteList struct {
	authority *authz.Authority
	boards    ports.BoardRepository
}

// NewDeleteList builds the use case.
func NewDeleteList(authority *authz.Authority, boards ports.BoardRepository) *DeleteList {
	return &DeleteList{authority: authority, boards: boards}
}

// Execute deletes the list.
func (uc *DeleteList) Execute(ctx context.Context, caller authz.Principal, listID domain.ListID) error {
	projectID, ok, err := uc.boards.GetListProject(ctx, listID)
	if err != nil {
		return err
	}
	if !ok {
		return domerrors.NotFound("list not found")
	}
	if _, err := uc.authority.RequireMembershipWithRank(ctx, projectID, caller.ID, domain.RoleOwner, domain.RoleAdmin); err != nil {
		return err
	}
	return uc.boards.DeleteList(ctx, listID)
}

// DeleteBoard deletes a non-default board and its contents by cascade.
// Requires ADMIN or OWNER.
type DeleteBoard struct {
	authority *authz.Authority
	boards    ports.BoardRepository
}

// NewDeleteBoard builds the use case.
func NewDeleteBoard(authority *authz.Authority, boards ports.BoardRepository) *DeleteBoard {
	return &DeleteBoard{authority: authority, boards: boards}
}

// Execute deletes the board. The default board cannot be deleted.
func (uc *DeleteBoard) Execute(ctx context.Context, caller authz.Principal, boardID domain.BoardID) error {
	board, err := uc.boards.GetBoard(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return domerrors.NotFound("board not found")
	}
	if _, err := uc.authority.RequireMembershipWithRank(ctx, board.ProjectID, caller.ID, domain.RoleOwner, domain.RoleAdmin); err != nil {
		return err
	}
	if board.IsDefault {
		return domerrors.InvalidRequest("cannot delete the default board")
	}
	return uc.boards.DeleteBoard(ctx, boardID)
}
