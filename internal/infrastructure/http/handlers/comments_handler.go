package handlers

import (
	"net/http"

	"github.com/tablero-app/tablero/internal/application/comments"
	"github.com/tablero-app/tablero/internal/domain"
)

// CommentsHandler handles task comments. Requires JWT.
type CommentsHandler struct {
	create *comments.CreateComment
	list   *comments.ListComments
	update *comments.UpdateComment
	delete *comments.DeleteComment
}

func NewCommentsHandler(
	create *comments.CreateComment,
	list *comments.ListComments,
	update *comments.UpdateComment,
	del *comments.DeleteComment,
) *CommentsHandler {
	return &CommentsHandler{create: create, list: list, update: update, delete: del}
}

// Create adds a comment to a task.
func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	taskID, ok := uuidParam(w, r, "taskId")
	if !ok {
		return
	}
	var body struct {
		Content string `json:"content" validate:"required,max=5000"`
	}
	if !decodeValid(w, r, &body) {
		return
	}
	comment, err := h.create.Execute(r.Context(), principal, domain.NewTaskID(taskID), body.Content)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentResponse(comment))
}

// List returns a task's comments, oldest first.
func (h *CommentsHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	taskID, ok := uuidParam(w, r, "taskId")
	if !ok {
		return
	}
	commentList, err := h.list.Execute(r.Context(), principal, domain.NewTaskID(taskID))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	items := make([]commentResponse, 0, len(commentList))
	for _, c := range commentList {
		items = append(items, toCommentResponse(c))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"comments": items})
}

// Update edits a comment's content. Author only.
func (h *CommentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Content string `json:"content" validate:"required,max=5000"`
	}
	if !decodeValid(w, r, &body) {
		return
	}
	comment, err := h.update.Execute(r.Context(), principal, domain.NewCommentID(id), body.Content)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentResponse(comment))
}

// Delete removes a comment. Author, or ADMIN/OWNER of the project.
func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.delete.Execute(r.Context(), principal, domain.NewCommentID(id)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
