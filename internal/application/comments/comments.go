// Package comments manages task comments. Only the author may edit a comment;
// the author or an ADMIN/OWNER member may delete it.
package comments

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

// commentExcerptLen bounds the content excerpt stored in history details.
const commentExcerptLen = 50

// CreateComment adds a comment to a task and records one COMMENTED history entry.
type CreateComment struct {
	authority *authz.Authority
	comments  ports.CommentRepository
	tasks     ports.TaskRepository
	users     ports.UserRepository
	history   ports.HistoryRecorder
}

// NewCreateComment builds the use case.
func NewCreateComment(authority *authz.Authority, comments ports.CommentRepository, tasks ports.TaskRepository, users ports.UserRepository, history ports.HistoryRecorder) *CreateComment {
	return &CreateComment{authority: authority, comments: comments, tasks: tasks, users: users, history: history}
}

// Execute creates the comment. The caller must be a member of the task's project.
func (uc *CreateComment) Execute(ctx context.Context, caller authz.Principal, taskID domain.TaskID, content string) (*domain.Comment, error) {
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
	now := time.Now()
	comment := &domain.Comment{
		ID:        domain.NewCommentID(uuid.New()),
		TaskID:    taskID,
		UserID:    caller.ID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	excerpt := content
	if len(excerpt) > commentExcerptLen {
		excerpt = excerpt[:commentExcerptLen]
	}
	details, _ := json.Marshal(map[string]string{"comment": excerpt})
	_ = uc.history.Record(ctx, &domain.TaskHistory{
		ID:        uuid.New(),
		TaskID:    taskID,
		UserID:    caller.ID,
		Action:    domain.HistoryCommented,
		Details:   string(details),
		CreatedAt: now,
	})
	if user, err := uc.users.GetByID(ctx, caller.ID); err == nil && user != nil {
		p := user.Profile()
		comment.User = &p
	}
	return comment, nil
}

// ListComments returns a task's comments oldest first.
type ListComments struct {
	authority *authz.Authority
	comments  ports.CommentRepository
	tasks     ports.TaskRepository
}

// NewListComments builds the use case.
func NewListComments(authority *authz.Authority, comments ports.CommentRepository, tasks ports.TaskRepository) *ListComments {
	return &ListComments{authority: authority, comments: comments, tasks: tasks}
}

// Execute lists the task's comments. The caller must be a member.
func (uc *ListComments) Execute(ctx context.Context, caller authz.Principal, taskID domain.TaskID) ([]*domain.Comment, error) {
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
	return uc.comments.ListByTask(ctx, taskID)
}

// UpdateComment edits a comment's content. Author only.
type UpdateComment struct {
	comments ports.CommentRepository
}

// NewUpdateComment builds the use case.
func NewUpdateComment(comments ports.CommentRepository) *UpdateComment {
	return &UpdateComment{comments: comments}
}

// Execute updates the content and returns the comment.
func (uc *UpdateComment) Execute(ctx context.Context, caller authz.Principal, commentID domain.CommentID, content string) (*domain.Comment, error) {
	comment, err := uc.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domerrors.NotFound("comment not found")
	}
	if comment.UserID != caller.ID {
		return nil, domerrors.InsufficientPermission("you can only edit your own comments")
	}
	comment.Content = content
	comment.UpdatedAt = time.Now()
	if err := uc.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Allowed for the author, or for an
// ADMIN/OWNER member of the task's project.
type DeleteComment struct {
	memberships ports.MembershipRepository
	comments    ports.CommentRepository
	tasks       ports.TaskRepository
}

// NewDeleteComment builds the use case.
func NewDeleteComment(memberships ports.MembershipRepository, comments ports.CommentRepository, tasks ports.TaskRepository) *DeleteComment {
	return &DeleteComment{memberships: memberships, comments: comments, tasks: tasks}
}

// Execute deletes the comment.
func (uc *DeleteComment) Execute(ctx context.Context, caller authz.Principal, commentID domain.CommentID) error {
	comment, err := uc.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return domerrors.NotFound("comment not found")
	}
	if comment.UserID != caller.ID {
		task, err := uc.tasks.GetByID(ctx, comment.TaskID)
		if err != nil {
			return err
		}
		if task == nil {
			return domerrors.NotFound("task not found")
		}
		m, err := uc.memberships.Get(ctx, task.ProjectID, caller.ID)
		if err != nil {
			return err
		}
		if m == nil || (m.Role != domain.RoleAdmin && m.Role != domain.RoleOwner) {
			return domerrors.InsufficientPermission("insufficient permissions to delete this comment")
		}
	}
	return uc.comments.Delete(ctx, commentID)
}
