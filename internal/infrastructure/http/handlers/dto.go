package handlers

import (
	"encoding/json"
	"time"

	"github.com/tablero-app/tablero/internal/domain"
)

// JSON shapes returned by the API. Field names are camelCase.

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar,omitempty"`
}

func toUserResponse(p *domain.Profile) *userResponse {
	if p == nil {
		return nil
	}
	return &userResponse{
		ID:        p.ID.String(),
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Avatar:    p.Avatar,
	}
}

type memberResponse struct {
	ID        string        `json:"id"`
	ProjectID string        `json:"projectId"`
	UserID    string        `json:"userId"`
	Role      string        `json:"role"`
	CreatedAt time.Time     `json:"createdAt"`
	User      *userResponse `json:"user,omitempty"`
}

func toMemberResponse(m *domain.Membership) memberResponse {
	return memberResponse{
		ID:        m.ID.String(),
		ProjectID: m.ProjectID.String(),
		UserID:    m.UserID.String(),
		Role:      string(m.Role),
		CreatedAt: m.CreatedAt,
		User:      toUserResponse(m.User),
	}
}

type projectResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Key         string     `json:"key"`
	Color       string     `json:"color,omitempty"`
	Status      string     `json:"status"`
	CreatedByID string     `json:"createdById"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	TaskCount   int        `json:"taskCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Key:         p.Key,
		Color:       p.Color,
		Status:      string(p.Status),
		CreatedByID: p.CreatedByID.String(),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		TaskCount:   p.TaskCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type boardResponse struct {
	ID        string         `json:"id"`
	ProjectID string         `json:"projectId"`
	Name      string         `json:"name"`
	IsDefault bool           `json:"isDefault"`
	Position  int            `json:"position"`
	Lists     []listResponse `json:"lists"`
}

func toBoardResponse(b *domain.Board) boardResponse {
	lists := make([]listResponse, 0, len(b.Lists))
	for _, l := range b.Lists {
		lists = append(lists, toListResponse(l))
	}
	return boardResponse{
		ID:        b.ID.String(),
		ProjectID: b.ProjectID.String(),
		Name:      b.Name,
		IsDefault: b.IsDefault,
		Position:  b.Position,
		Lists:     lists,
	}
}

type listResponse struct {
	ID       string         `json:"id"`
	BoardID  string         `json:"boardId"`
	Name     string         `json:"name"`
	Position int            `json:"position"`
	Tasks    []taskResponse `json:"tasks,omitempty"`
}

func toListResponse(l *domain.List) listResponse {
	tasks := make([]taskResponse, 0, len(l.Tasks))
	for _, t := range l.Tasks {
		tasks = append(tasks, toTaskResponse(t))
	}
	return listResponse{
		ID:       l.ID.String(),
		BoardID:  l.BoardID.String(),
		Name:     l.Name,
		Position: l.Position,
		Tasks:    tasks,
	}
}

type taskResponse struct {
	ID             string          `json:"id"`
	ListID         string          `json:"listId"`
	ProjectID      string          `json:"projectId"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Position       int             `json:"position"`
	Priority       string          `json:"priority"`
	EstimatedHours *float64        `json:"estimatedHours,omitempty"`
	DueDate        *time.Time      `json:"dueDate,omitempty"`
	AssignedToID   *string         `json:"assignedToId,omitempty"`
	CreatedByID    string          `json:"createdById"`
	AssignedTo     *userResponse   `json:"assignedTo,omitempty"`
	CreatedBy      *userResponse   `json:"createdBy,omitempty"`
	Labels         []labelResponse `json:"labels"`
	List           *listResponse   `json:"list,omitempty"`
	CommentCount   int             `json:"commentCount"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	labels := make([]labelResponse, 0, len(t.Labels))
	for _, lb := range t.Labels {
		labels = append(labels, toLabelResponse(lb))
	}
	resp := taskResponse{
		ID:             t.ID.String(),
		ListID:         t.ListID.String(),
		ProjectID:      t.ProjectID.String(),
		Title:          t.Title,
		Description:    t.Description,
		Position:       t.Position,
		Priority:       string(t.Priority),
		EstimatedHours: t.EstimatedHours,
		DueDate:        t.DueDate,
		CreatedByID:    t.CreatedByID.String(),
		AssignedTo:     toUserResponse(t.AssignedTo),
		CreatedBy:      toUserResponse(t.CreatedBy),
		Labels:         labels,
		CommentCount:   t.CommentCount,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if t.AssignedToID != nil {
		s := t.AssignedToID.String()
		resp.AssignedToID = &s
	}
	if t.List != nil {
		l := toListResponse(t.List)
		l.Tasks = nil
		resp.List = &l
	}
	return resp
}

type labelResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toLabelResponse(lb *domain.Label) labelResponse {
	return labelResponse{
		ID:        lb.ID.String(),
		ProjectID: lb.ProjectID.String(),
		Name:      lb.Name,
		Color:     lb.Color,
		CreatedAt: lb.CreatedAt,
		UpdatedAt: lb.UpdatedAt,
	}
}

type commentResponse struct {
	ID        string        `json:"id"`
	TaskID    string        `json:"taskId"`
	UserID    string        `json:"userId"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	User      *userResponse `json:"user,omitempty"`
}

func toCommentResponse(c *domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID.String(),
		TaskID:    c.TaskID.String(),
		UserID:    c.UserID.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		User:      toUserResponse(c.User),
	}
}

type historyResponse struct {
	ID        string          `json:"id"`
	TaskID    string          `json:"taskId"`
	UserID    string          `json:"userId"`
	Action    string          `json:"action"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"createdAt"`
	User      *userResponse   `json:"user,omitempty"`
}

func toHistoryResponse(h *domain.TaskHistory) historyResponse {
	details := json.RawMessage(h.Details)
	if !json.Valid(details) {
		details = json.RawMessage("{}")
	}
	return historyResponse{
		ID:        h.ID.String(),
		TaskID:    h.TaskID.String(),
		UserID:    h.UserID.String(),
		Action:    string(h.Action),
		Details:   details,
		CreatedAt: h.CreatedAt,
		User:      toUserResponse(h.User),
	}
}
