package ports

import (
	"context"

	"github.com/tablero-app/tablero/internal/domain"
)

// Repositories return (nil, nil) when the requested row does not exist; use
// cases translate absence into the appropriate domain error. Create methods
// backed by a uniqueness constraint return a domain Conflict error when the
// insert loses a race the pre-check did not see.

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ProjectRepository defines persistence for projects.
type ProjectRepository interface {
	// CreateWithDefaults atomically persists the project, its OWNER membership,
	// the default board and the board's seeded lists. Partial creation is never
	// observable.
	CreateWithDefaults(ctx context.Context, project *domain.Project, owner *domain.Membership, board *domain.Board) error
	GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error)
	GetByKey(ctx context.Context, key string) (*domain.Project, error)
	// ListForUser returns projects the user is a member of, newest first,
	// with TaskCount attached.
	ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id domain.ProjectID) error
}

// MembershipRepository defines persistence for project memberships.
type MembershipRepository interface {
	Create(ctx context.Context, m *domain.Membership) error
	// Get returns the membership for the (project, user) pair.
	Get(ctx context.Context, projectID domain.ProjectID, userID domain.UserID) (*domain.Membership, error)
	// GetByID returns the membership only when it belongs to the given project.
	GetByID(ctx context.Context, projectID domain.ProjectID, id domain.MembershipID) (*domain.Membership, error)
	Count(ctx context.Context, projectID domain.ProjectID) (int, error)
	// ListByProject returns memberships with member profiles attached.
	ListByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.Membership, error)
	Delete(ctx context.Context, id domain.MembershipID) error
}

// BoardRepository defines persistence for boards and their lists.
type BoardRepository interface {
	GetBoard(ctx context.Context, id domain.BoardID) (*domain.Board, error)
	GetList(ctx context.Context, id domain.ListID) (*domain.List, error)
	// GetListProject returns the project owning the list's board.
	GetListProject(ctx context.Context, id domain.ListID) (domain.ProjectID, bool, error)
	// TreeByProject returns the project's boards with lists and tasks nested,
	// everything ordered by position ascending (creation time breaks ties).
	TreeByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.Board, error)
	// MaxListPosition returns the highest position among the board's lists;
	// ok is false when the board has no lists.
	MaxListPosition(ctx context.Context, boardID domain.BoardID) (pos int, ok bool, err error)
	CreateList(ctx context.Context, list *domain.List) error
	UpdateListPosition(ctx context.Context, id domain.ListID, position int) error
	DeleteList(ctx context.Context, id domain.ListID) error
	DeleteBoard(ctx context.Context, id domain.BoardID) error
}

// TaskRepository defines persistence for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error)
	// GetWithRelations returns the task with assignee, creator, labels and
	// list attached.
	GetWithRelations(ctx context.Context, id domain.TaskID) (*domain.Task, error)
	// ListByProject returns the project's tasks newest first, with list
	// summary, labels, assignee and server-computed comment counts attached.
	ListByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.Task, error)
	// MaxPosition returns the highest position among the list's tasks;
	// ok is false when the list is empty.
	MaxPosition(ctx context.Context, listID domain.ListID) (pos int, ok bool, err error)
	Update(ctx context.Context, task *domain.Task) error
	// Move updates list and position together in one write.
	Move(ctx context.Context, id domain.TaskID, listID domain.ListID, position int) error
	Delete(ctx context.Context, id domain.TaskID) error
}

// LabelRepository defines persistence for labels and task-label links.
type LabelRepository interface {
	Create(ctx context.Context, label *domain.Label) error
	GetByID(ctx context.Context, id domain.LabelID) (*domain.Label, error)
	GetByName(ctx context.Context, projectID domain.ProjectID, name string) (*domain.Label, error)
	Count(ctx context.Context, projectID domain.ProjectID) (int, error)
	ListByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.Label, error)
	Update(ctx context.Context, label *domain.Label) error
	Delete(ctx context.Context, id domain.LabelID) error

	Assigned(ctx context.Context, taskID domain.TaskID, labelID domain.LabelID) (bool, error)
	Assign(ctx context.Context, taskID domain.TaskID, labelID domain.LabelID) error
	Unassign(ctx context.Context, taskID domain.TaskID, labelID domain.LabelID) error
	ListByTask(ctx context.Context, taskID domain.TaskID) ([]*domain.Label, error)
}

// CommentRepository defines persistence for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id domain.CommentID) (*domain.Comment, error)
	// ListByTask returns the task's comments oldest first with author profiles.
	ListByTask(ctx context.Context, taskID domain.TaskID) ([]*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id domain.CommentID) error
}

// HistoryRepository defines persistence for the append-only task history.
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.TaskHistory) error
	// ListByTask returns history entries newest first with actor profiles.
	ListByTask(ctx context.Context, taskID domain.TaskID) ([]*domain.TaskHistory, error)
}
