package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tablero-app/tablero/internal/application/tasks"
	"github.com/tablero-app/tablero/internal/domain"
)

// TasksHandler handles /tasks/* and the project task listing. Requires JWT.
type TasksHandler struct {
	create *tasks.CreateTask
	get    *tasks.GetTask
	list   *tasks.ListTasks
	update *tasks.UpdateTask
	move   *tasks.MoveTask
	delete *tasks.DeleteTask
}

func NewTasksHandler(
	create *tasks.CreateTask,
	get *tasks.GetTask,
	list *tasks.ListTasks,
	update *tasks.UpdateTask,
	move *tasks.MoveTask,
	del *tasks.DeleteTask,
) *TasksHandler {
	return &TasksHandler{create: create, get: get, list: list, update: update, move: move, delete: del}
}

// Create appends a task to the tail of a list.
func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	var body struct {
		ProjectID      string     `json:"projectId" validate:"required,uuid"`
		ListID         string     `json:"listId" validate:"required,uuid"`
		Title          string     `json:"title" validate:"required,max=255"`
		Description    string     `json:"description" validate:"max=5000"`
		Priority       string     `json:"priority"`
		EstimatedHours *float64   `json:"estimatedHours" validate:"omitempty,gte=0"`
		DueDate        *time.Time `json:"dueDate"`
		AssignedToID   string     `json:"assignedToId" validate:"omitempty,uuid"`
	}
	if !decodeValid(w, r, &body) {
		return
	}
	projectID, _ := uuid.Parse(body.ProjectID)
	listID, _ := uuid.Parse(body.ListID)
	input := tasks.CreateTaskInput{
		ProjectID:      domain.NewProjectID(projectID),
		ListID:         domain.NewListID(listID),
		Title:          body.Title,
		Description:    body.Description,
		Priority:       domain.Priority(body.Priority),
		EstimatedHours: body.EstimatedHours,
		DueDate:        body.DueDate,
	}
	if body.AssignedToID != "" {
		assigneeID, _ := uuid.Parse(body.AssignedToID)
		uid := domain.NewUserID(assigneeID)
		input.AssignedToID = &uid
	}
	task, err := h.create.Execute(r.Context(), principal, input)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

// Get returns the full task view: relations, comments and history.
func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	detail, err := h.get.Execute(r.Context(), principal, domain.NewTaskID(id))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	comments := make([]commentResponse, 0, len(detail.Comments))
	for _, c := range detail.Comments {
		comments = append(comments, toCommentResponse(c))
	}
	history := make([]historyResponse, 0, len(detail.History))
	for _, entry := range detail.History {
		history = append(history, toHistoryResponse(entry))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"task":     toTaskResponse(detail.Task),
		"comments": comments,
		"history":  history,
	})
}

// ListByProject returns a project's tasks, newest first.
func (h *TasksHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	taskList, err := h.list.Execute(r.Context(), principal, domain.NewProjectID(id))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	items := make([]taskResponse, 0, len(taskList))
	for _, t := range taskList {
		items = append(items, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": items})
}

// Update patches task attributes.
func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Title          *string    `json:"title" validate:"omitempty,max=255"`
		Description    *string    `json:"description" validate:"omitempty,max=5000"`
		Priority       *string    `json:"priority"`
		EstimatedHours *float64   `json:"estimatedHours" validate:"omitempty,gte=0"`
		DueDate        *time.Time `json:"dueDate"`
		AssignedToID   *string    `json:"assignedToId" validate:"omitempty,uuid"`
	}
	if !decodeValid(w, r, &body) {
		return
	}
	input := tasks.UpdateTaskInput{
		Title:          body.Title,
		Description:    body.Description,
		EstimatedHours: body.EstimatedHours,
		DueDate:        body.DueDate,
	}
	if body.Priority != nil {
		p := domain.Priority(*body.Priority)
		input.Priority = &p
	}
	if body.AssignedToID != nil {
		assigneeID, err := uuid.Parse(*body.AssignedToID)
		if err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid assignedToId")
			return
		}
		uid := domain.NewUserID(assigneeID)
		input.AssignedToID = &uid
	}
	task, err := h.update.Execute(r.Context(), principal, domain.NewTaskID(id), input)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// Move repositions a task within its list or moves it to another list.
func (h *TasksHandler) Move(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		ListID   string `json:"listId" validate:"required,uuid"`
		Position *int   `json:"position" validate:"omitempty,gte=0"`
	}
	if !decodeValid(w, r, &body) {
		return
	}
	listID, _ := uuid.Parse(body.ListID)
	task, err := h.move.Execute(r.Context(), principal, domain.NewTaskID(id), tasks.MoveTaskInput{
		ListID:   domain.NewListID(listID),
		Position: body.Position,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// Delete deletes a task.
func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.delete.Execute(r.Context(), principal, domain.NewTaskID(id)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
