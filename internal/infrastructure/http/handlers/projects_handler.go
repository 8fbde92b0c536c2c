package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tablero-app/tablero/internal/application/projects"
	"github.com/tablero-app/tablero/internal/domain"
)

// ProjectsHandler handles /projects/*. Requires JWT.
type ProjectsHandler struct {
	create       *projects.CreateProject
	list         *projects.ListProjects
	get          *projects.GetProject
	update       *projects.UpdateProject
	delete       *projects.DeleteProject
	addMember    *projects.AddMember
	removeMember *projects.RemoveMember
}

func NewProjectsHandler(
	create *projects.CreateProject,
	list *projects.ListProjects,
	get *projects.GetProject,
	update *projects.UpdateProject,
	del *projects.DeleteProject,
	addMember *projects.AddMember,
	removeMember *projects.RemoveMember,
) *ProjectsHandler {
	return &ProjectsHandler{
		create:       create,
		list:         list,
		get:          get,
		update:       update,
		delete:       del,
		addMember:    addMember,
		removeMember: removeMember,
	}
}

// Create creates a project; the caller becomes OWNER and the default board
// with its seeded lists is created with it.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	var body struct {
		Name        string     `json:"name" validate:"required,max=255"`
		Description string     `json:"description" validate:"max=2000"`
		Key         string     `json:"key" validate:"required,min=2,max=10,alphanum"`
		Color       string     `json:"color" validate:"max=7"`
		StartDate   *time.Time `json:"startDate"`
		EndDate     *time.Time `json:"endDate"`
	}
	if !decodeValid(w, r, &body) {
		return
	}
	result, err := h.create.Execute(r.Context(), principal, projects.CreateProjectInput{
		Name:        body.Name,
		Description: body.Description,
		Key:         body.Key,
		Color:       body.Color,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"project": toProjectResponse(result.Project),
		"owner":   toMemberResponse(result.Owner),
		"board":   toBoardResponse(result.Board),
	})
}

// List returns the caller's projects, newest first.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	projectList, err := h.list.Execute(r.Context(), principal)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	items := make([]projectResponse, 0, len(projectList))
	for _, p := range projectList {
		items = append(items, toProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"projects": items})
}

// Get returns the full project view for a member.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	detail, err := h.get.Execute(r.Context(), principal, domain.NewProjectID(id))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	members := make([]memberResponse, 0, len(detail.Members))
	for _, m := range detail.Members {
		members = append(members, toMemberResponse(m))
	}
	boards := make([]boardResponse, 0, len(detail.Boards))
	for _, b := range detail.Boards {
		boards = append(boards, toBoardResponse(b))
	}
	labels := make([]labelResponse, 0, len(detail.Labels))
	for _, lb := range detail.Labels {
		labels = append(labels, toLabelResponse(lb))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"project": toProjectResponse(detail.Project),
		"members": members,
		"boards":  boards,
		"labels":  labels,
	})
}

// Update patches project attributes. OWNER or ADMIN.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Name        *string    `json:"name" validate:"omitempty,max=255"`
		Description *string    `json:"description" validate:"omitempty,max=2000"`
		Color       *string    `json:"color" validate:"omitempty,max=7"`
		Status      *string    `json:"status"`
		StartDate   *time.Time `json:"startDate"`
		EndDate     *time.Time `json:"endDate"`
	}
	if !decodeValid(w, r, &body) {
		return
	}
	input := projects.UpdateProjectInput{
		Name:        body.Name,
		Description: body.Description,
		Color:       body.Color,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
	}
	if body.Status != nil {
		status := domain.ProjectStatus(*body.Status)
		input.Status = &status
	}
	project, err := h.update.Execute(r.Context(), principal, domain.NewProjectID(id), input)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(project))
}

// Delete deletes a project. OWNER only.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.delete.Execute(r.Context(), principal, domain.NewProjectID(id)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddMember grants a user a membership. OWNER or ADMIN; the target user is
// identified by userId or email.
func (h *ProjectsHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		UserID string `json:"userId" validate:"omitempty,uuid"`
		Email  string `json:"email" validate:"omitempty,email"`
		Role   string `json:"role" validate:"required"`
	}
	if !decodeValid(w, r, &body) {
		return
	}
	input := projects.AddMemberInput{
		ProjectID: domain.NewProjectID(id),
		Email:     SanitizeEmail(body.Email),
		Role:      domain.Role(body.Role),
	}
	if body.UserID != "" {
		userID, err := uuid.Parse(body.UserID)
		if err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid userId")
			return
		}
		uid := domain.NewUserID(userID)
		input.UserID = &uid
	}
	m, err := h.addMember.Execute(r.Context(), principal, input)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemberResponse(m))
}

// RemoveMember deletes a membership. The caller must outrank the target and
// the OWNER membership can never be removed.
func (h *ProjectsHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	memberID, ok := uuidParam(w, r, "memberId")
	if !ok {
		return
	}
	err := h.removeMember.Execute(r.Context(), principal, domain.NewProjectID(id), domain.NewMembershipID(memberID))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
