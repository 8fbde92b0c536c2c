package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tablero-app/tablero/internal/application/boards"
	"github.com/tablero-app/tablero/internal/domain"
)

// BoardsHandler handles board and list management. Requires JWT.
type BoardsHandler struct {
	createList  *boards.CreateList
	moveList    *boards.MoveList
	deleteList  *boards.DeleteList
	deleteBoard *boards.DeleteBoard
}

func NewBoardsHandler(
	createList *boards.CreateList,
	moveList *boards.MoveList,
	deleteList *boards.DeleteList,
	deleteBoard *boards.DeleteBoard,
) *BoardsHandler {
	return &BoardsHandler{createList: createList, moveList: moveList, deleteList: deleteList, deleteBoard: deleteBoard}
}

// CreateList appends a list to the tail of a board.
func (h *BoardsHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	var body struct {
		BoardID string `json:"boardId" validate:"required,uuid"`
		Name    string `json:"name" validate:"required,max=100"`
	}
	if !decodeValid(w, r, &body) {
		return
	}
	boardID, _ := uuid.Parse(body.BoardID)
	list, err := h.createList.Execute(r.Context(), principal, boards.CreateListInput{
		BoardID: domain.NewBoardID(boardID),
		Name:    body.Name,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toListResponse(list))
}

// MoveList sets a list's position among its siblings.
func (h *BoardsHandler) MoveList(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Position int `json:"position" validate:"gte=0"`
	}
	if !decodeValid(w, r, &body) {
		return
	}
	list, err := h.moveList.Execute(r.Context(), principal, domain.NewListID(id), body.Position)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toListResponse(list))
}

// DeleteList deletes a list and its tasks. ADMIN or OWNER.
func (h *BoardsHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.deleteList.Execute(r.Context(), principal, domain.NewListID(id)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteBoard deletes a non-default board. ADMIN or OWNER.
func (h *BoardsHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.deleteBoard.Execute(r.Context(), principal, domain.NewBoardID(id)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
