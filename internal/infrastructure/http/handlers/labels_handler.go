package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tablero-app/tablero/internal/application/labels"
	"github.com/tablero-app/tablero/internal/domain"
)

// LabelsHandler handles /labels/* and label assignment. Requires JWT.
type LabelsHandler struct {
	create   *labels.CreateLabel
	list     *labels.ListLabels
	update   *labels.UpdateLabel
	delete   *labels.DeleteLabel
	assign   *labels.AssignLabel
	unassign *labels.UnassignLabel
}

func NewLabelsHandler(
	create *labels.CreateLabel,
	list *labels.ListLabels,
	update *labels.UpdateLabel,
	del *labels.DeleteLabel,
	assign *labels.AssignLabel,
	unassign *labels.UnassignLabel,
) *LabelsHandler {
	return &LabelsHandler{create: create, list: list, update: update, delete: del, assign: assign, unassign: unassign}
}

// Create creates a label in a project. OWNER or ADMIN.
func (h *LabelsHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	var body struct {
		ProjectID string `json:"projectId" validate:"required,uuid"`
		Name      string `json:"name" validate:"required,max=50"`
		Color     string `json:"color" validate:"required"`
	}
	if !decodeValid(w, r, &body) {
		return
	}
	projectID, _ := uuid.Parse(body.ProjectID)
	label, err := h.create.Execute(r.Context(), principal, labels.CreateLabelInput{
		ProjectID: domain.NewProjectID(projectID),
		Name:      body.Name,
		Color:     body.Color,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLabelResponse(label))
}

// ListByProject returns a project's labels ordered by name.
func (h *LabelsHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	labelList, err := h.list.Execute(r.Context(), principal, domain.NewProjectID(id))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	items := make([]labelResponse, 0, len(labelList))
	for _, lb := range labelList {
		items = append(items, toLabelResponse(lb))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"labels": items})
}

// Update patches a label. OWNER or ADMIN.
func (h *LabelsHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Name  *string `json:"name" validate:"omitempty,max=50"`
		Color *string `json:"color"`
	}
	if !decodeValid(w, r, &body) {
		return
	}
	label, err := h.update.Execute(r.Context(), principal, domain.NewLabelID(id), labels.UpdateLabelInput{
		Name:  body.Name,
		Color: body.Color,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLabelResponse(label))
}

// Delete deletes a label. OWNER or ADMIN.
func (h *LabelsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.delete.Execute(r.Context(), principal, domain.NewLabelID(id)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Assign attaches a label to a task of the same project.
func (h *LabelsHandler) Assign(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	labelID, ok := uuidParam(w, r, "labelId")
	if !ok {
		return
	}
	taskID, ok := uuidParam(w, r, "taskId")
	if !ok {
		return
	}
	task, err := h.assign.Execute(r.Context(), principal, domain.NewTaskID(taskID), domain.NewLabelID(labelID))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

// Unassign detaches a label from a task.
func (h *LabelsHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	labelID, ok := uuidParam(w, r, "labelId")
	if !ok {
		return
	}
	taskID, ok := uuidParam(w, r, "taskId")
	if !ok {
		return
	}
	task, err := h.unassign.Execute(r.Context(), principal, domain.NewTaskID(taskID), domain.NewLabelID(labelID))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}
