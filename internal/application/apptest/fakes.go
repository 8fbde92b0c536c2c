// Package apptest provides in-memory implementations of the application ports
// for use-case tests.
package apptest

import (
	"context"
	"sort"

	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

// Store is the shared in-memory state behind the fake repositories. The fakes
// enforce the same uniqueness rules the database constraints enforce.
type Store struct {
	Users       map[domain.UserID]*domain.User
	Projects    map[domain.ProjectID]*domain.Project
	Memberships map[domain.MembershipID]*domain.Membership
	Boards      map[domain.BoardID]*domain.Board
	Lists       map[domain.ListID]*domain.List
	Tasks       map[domain.TaskID]*domain.Task
	Labels      map[domain.LabelID]*domain.Label
	TaskLabels  []domain.TaskLabel
	Comments    map[domain.CommentID]*domain.Comment
	History     []*domain.TaskHistory
}

func NewStore() *Store {
	return &Store{
		Users:       make(map[domain.UserID]*domain.User),
		Projects:    make(map[domain.ProjectID]*domain.Project),
		Memberships: make(map[domain.MembershipID]*domain.Membership),
		Boards:      make(map[domain.BoardID]*domain.Board),
		Lists:       make(map[domain.ListID]*domain.List),
		Tasks:       make(map[domain.TaskID]*domain.Task),
		Labels:      make(map[domain.LabelID]*domain.Label),
		Comments:    make(map[domain.CommentID]*domain.Comment),
	}
}

// Repository views over the store.

type UserRepo struct{ S *Store }

func (r UserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.S.Users {
		if u.Email == user.Email {
			return domerrors.Conflict("an account with this email already exists")
		}
	}
	r.S.Users[user.ID] = user
	return nil
}

func (r UserRepo) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	return r.S.Users[id], nil
}

func (r UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.S.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type ProjectRepo struct{ S *Store }

func (r ProjectRepo) CreateWithDefaults(_ context.Context, project *domain.Project, owner *domain.Membership, board *domain.Board) error {
	for _, p := range r.S.Projects {
		if p.Key == project.Key {
			return domerrors.Conflict("project key already exists")
		}
	}
	r.S.Projects[project.ID] = project
	r.S.Memberships[owner.ID] = owner
	r.S.Boards[board.ID] = board
	for _, list := range board.Lists {
		r.S.Lists[list.ID] = list
	}
	return nil
}

func (r ProjectRepo) GetByID(_ context.Context, id domain.ProjectID) (*domain.Project, error) {
	return r.S.Projects[id], nil
}

func (r ProjectRepo) GetByKey(_ context.Context, key string) (*domain.Project, error) {
	for _, p := range r.S.Projects {
		if p.Key == key {
			return p, nil
		}
	}
	return nil, nil
}

func (r ProjectRepo) ListForUser(_ context.Context, userID domain.UserID) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, m := range r.S.Memberships {
		if m.UserID == userID {
			if p, ok := r.S.Projects[m.ProjectID]; ok {
				out = append(out, p)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r ProjectRepo) Update(_ context.Context, project *domain.Project) error {
	r.S.Projects[project.ID] = project
	return nil
}

func (r ProjectRepo) Delete(_ context.Context, id domain.ProjectID) error {
	delete(r.S.Projects, id)
	return nil
}

type MembershipRepo struct{ S *Store }

func (r MembershipRepo) Create(_ context.Context, m *domain.Membership) error {
	for _, existing := range r.S.Memberships {
		if existing.ProjectID == m.ProjectID && existing.UserID == m.UserID {
			return domerrors.Conflict("user is already a member of this project")
		}
	}
	r.S.Memberships[m.ID] = m
	return nil
}

func (r MembershipRepo) Get(_ context.Context, projectID domain.ProjectID, userID domain.UserID) (*domain.Membership, error) {
	for _, m := range r.S.Memberships {
		if m.ProjectID == projectID && m.UserID == userID {
			return m, nil
		}
	}
	return nil, nil
}

func (r MembershipRepo) GetByID(_ context.Context, projectID domain.ProjectID, id domain.MembershipID) (*domain.Membership, error) {
	m, ok := r.S.Memberships[id]
	if !ok || m.ProjectID != projectID {
		return nil, nil
	}
	return m, nil
}

func (r MembershipRepo) Count(_ context.Context, projectID domain.ProjectID) (int, error) {
	count := 0
	for _, m := range r.S.Memberships {
		if m.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (r MembershipRepo) ListByProject(_ context.Context, projectID domain.ProjectID) ([]*domain.Membership, error) {
	var out []*domain.Membership
	for _, m := range r.S.Memberships {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r MembershipRepo) Delete(_ context.Context, id domain.MembershipID) error {
	delete(r.S.Memberships, id)
	return nil
}

type BoardRepo struct{ S *Store }

func (r BoardRepo) GetBoard(_ context.Context, id domain.BoardID) (*domain.Board, error) {
	return r.S.Boards[id], nil
}

func (r BoardRepo) GetList(_ context.Context, id domain.ListID) (*domain.List, error) {
	return r.S.Lists[id], nil
}

func (r BoardRepo) GetListProject(_ context.Context, id domain.ListID) (domain.ProjectID, bool, error) {
	list, ok := r.S.Lists[id]
	if !ok {
		return domain.ProjectID{}, false, nil
	}
	board, ok := r.S.Boards[list.BoardID]
	if !ok {
		return domain.ProjectID{}, false, nil
	}
	return board.ProjectID, true, nil
}

func (r BoardRepo) TreeByProject(_ context.Context, projectID domain.ProjectID) ([]*domain.Board, error) {
	var boards []*domain.Board
	for _, b := range r.S.Boards {
		if b.ProjectID != projectID {
			continue
		}
		board := *b
		board.Lists = nil
		for _, l := range r.S.Lists {
			if l.BoardID != b.ID {
				continue
			}
			list := *l
			list.Tasks = nil
			for _, t := range r.S.Tasks {
				if t.ListID == l.ID {
					list.Tasks = append(list.Tasks, t)
				}
			}
			sortTasks(list.Tasks)
			board.Lists = append(board.Lists, &list)
		}
		sort.Slice(board.Lists, func(i, j int) bool {
			if board.Lists[i].Position != board.Lists[j].Position {
				return board.Lists[i].Position < board.Lists[j].Position
			}
			return board.Lists[i].CreatedAt.Before(board.Lists[j].CreatedAt)
		})
		boards = append(boards, &board)
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].Position < boards[j].Position })
	return boards, nil
}

func sortTasks(tasks []*domain.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Position != tasks[j].Position {
			return tasks[i].Position < tasks[j].Position
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}

func (r BoardRepo) MaxListPosition(_ context.Context, boardID domain.BoardID) (int, bool, error) {
	max, found := 0, false
	for _, l := range r.S.Lists {
		if l.BoardID == boardID && (!found || l.Position > max) {
			max, found = l.Position, true
		}
	}
	return max, found, nil
}

func (r BoardRepo) CreateList(_ context.Context, list *domain.List) error {
	r.S.Lists[list.ID] = list
	return nil
}

func (r BoardRepo) UpdateListPosition(_ context.Context, id domain.ListID, position int) error {
	if l, ok := r.S.Lists[id]; ok {
		l.Position = position
	}
	return nil
}

func (r BoardRepo) DeleteList(_ context.Context, id domain.ListID) error {
	delete(r.S.Lists, id)
	for tid, t := range r.S.Tasks {
		if t.ListID == id {
			delete(r.S.Tasks, tid)
		}
	}
	return nil
}

func (r BoardRepo) DeleteBoard(_ context.Context, id domain.BoardID) error {
	delete(r.S.Boards, id)
	for lid, l := range r.S.Lists {
		if l.BoardID == id {
			_ = r.DeleteList(context.Background(), lid)
		}
	}
	return nil
}

type TaskRepo struct{ S *Store }

func (r TaskRepo) Create(_ context.Context, task *domain.Task) error {
	r.S.Tasks[task.ID] = task
	return nil
}

func (r TaskRepo) GetByID(_ context.Context, id domain.TaskID) (*domain.Task, error) {
	return r.S.Tasks[id], nil
}

func (r TaskRepo) GetWithRelations(_ context.Context, id domain.TaskID) (*domain.Task, error) {
	t, ok := r.S.Tasks[id]
	if !ok {
		return nil, nil
	}
	out := *t
	out.Labels, _ = LabelRepo{S: r.S}.ListByTask(context.Background(), id)
	if l, ok := r.S.Lists[t.ListID]; ok {
		list := *l
		list.Tasks = nil
		out.List = &list
	}
	return &out, nil
}

func (r TaskRepo) ListByProject(_ context.Context, projectID domain.ProjectID) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.S.Tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r TaskRepo) MaxPosition(_ context.Context, listID domain.ListID) (int, bool, error) {
	max, found := 0, false
	for _, t := range r.S.Tasks {
		if t.ListID == listID && (!found || t.Position > max) {
			max, found = t.Position, true
		}
	}
	return max, found, nil
}

func (r TaskRepo) Update(_ context.Context, task *domain.Task) error {
	r.S.Tasks[task.ID] = task
	return nil
}

func (r TaskRepo) Move(_ context.Context, id domain.TaskID, listID domain.ListID, position int) error {
	if t, ok := r.S.Tasks[id]; ok {
		t.ListID = listID
		t.Position = position
	}
	return nil
}

func (r TaskRepo) Delete(_ context.Context, id domain.TaskID) error {
	delete(r.S.Tasks, id)
	return nil
}

type LabelRepo struct{ S *Store }

func (r LabelRepo) Create(_ context.Context, label *domain.Label) error {
	for _, lb := range r.S.Labels {
		if lb.ProjectID == label.ProjectID && lb.Name == label.Name {
			return domerrors.Conflict("a label with this name already exists in the project")
		}
	}
	r.S.Labels[label.ID] = label
	return nil
}

func (r LabelRepo) GetByID(_ context.Context, id domain.LabelID) (*domain.Label, error) {
	return r.S.Labels[id], nil
}

func (r LabelRepo) GetByName(_ context.Context, projectID domain.ProjectID, name string) (*domain.Label, error) {
	for _, lb := range r.S.Labels {
		if lb.ProjectID == projectID && lb.Name == name {
			return lb, nil
		}
	}
	return nil, nil
}

func (r LabelRepo) Count(_ context.Context, projectID domain.ProjectID) (int, error) {
	count := 0
	for _, lb := range r.S.Labels {
		if lb.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (r LabelRepo) ListByProject(_ context.Context, projectID domain.ProjectID) ([]*domain.Label, error) {
	var out []*domain.Label
	for _, lb := range r.S.Labels {
		if lb.ProjectID == projectID {
			out = append(out, lb)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r LabelRepo) Update(_ context.Context, label *domain.Label) error {
	r.S.Labels[label.ID] = label
	return nil
}

func (r LabelRepo) Delete(_ context.Context, id domain.LabelID) error {
	delete(r.S.Labels, id)
	var remaining []domain.TaskLabel
	for _, tl := range r.S.TaskLabels {
		if tl.LabelID != id {
			remaining = append(remaining, tl)
		}
	}
	r.S.TaskLabels = remaining
	return nil
}

func (r LabelRepo) Assigned(_ context.Context, taskID domain.TaskID, labelID domain.LabelID) (bool, error) {
	for _, tl := range r.S.TaskLabels {
		if tl.TaskID == taskID && tl.LabelID == labelID {
			return true, nil
		}
	}
	return false, nil
}

func (r LabelRepo) Assign(ctx context.Context, taskID domain.TaskID, labelID domain.LabelID) error {
	if assigned, _ := r.Assigned(ctx, taskID, labelID); assigned {
		return domerrors.Conflict("label already assigned to this task")
	}
	r.S.TaskLabels = append(r.S.TaskLabels, domain.TaskLabel{TaskID: taskID, LabelID: labelID})
	return nil
}

func (r LabelRepo) Unassign(_ context.Context, taskID domain.TaskID, labelID domain.LabelID) error {
	var remaining []domain.TaskLabel
	for _, tl := range r.S.TaskLabels {
		if !(tl.TaskID == taskID && tl.LabelID == labelID) {
			remaining = append(remaining, tl)
		}
	}
	r.S.TaskLabels = remaining
	return nil
}

func (r LabelRepo) ListByTask(_ context.Context, taskID domain.TaskID) ([]*domain.Label, error) {
	var out []*domain.Label
	for _, tl := range r.S.TaskLabels {
		if tl.TaskID == taskID {
			if lb, ok := r.S.Labels[tl.LabelID]; ok {
				out = append(out, lb)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type CommentRepo struct{ S *Store }

func (r CommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.S.Comments[comment.ID] = comment
	return nil
}

func (r CommentRepo) GetByID(_ context.Context, id domain.CommentID) (*domain.Comment, error) {
	return r.S.Comments[id], nil
}

func (r CommentRepo) ListByTask(_ context.Context, taskID domain.TaskID) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for _, c := range r.S.Comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r CommentRepo) Update(_ context.Context, comment *domain.Comment) error {
	r.S.Comments[comment.ID] = comment
	return nil
}

func (r CommentRepo) Delete(_ context.Context, id domain.CommentID) error {
	delete(r.S.Comments, id)
	return nil
}

type HistoryRepo struct{ S *Store }

func (r HistoryRepo) Create(_ context.Context, entry *domain.TaskHistory) error {
	r.S.History = append(r.S.History, entry)
	return nil
}

func (r HistoryRepo) ListByTask(_ context.Context, taskID domain.TaskID) ([]*domain.TaskHistory, error) {
	var out []*domain.TaskHistory
	for _, h := range r.S.History {
		if h.TaskID == taskID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Recorder appends directly to the store's history, synchronously.
type Recorder struct{ S *Store }

func (r Recorder) Record(_ context.Context, entry *domain.TaskHistory) error {
	r.S.History = append(r.S.History, entry)
	return nil
}

// ByTask returns the store's history entries for the task, oldest first.
func (s *Store) ByTask(taskID domain.TaskID) []*domain.TaskHistory {
	var out []*domain.TaskHistory
	for _, h := range s.History {
		if h.TaskID == taskID {
			out = append(out, h)
		}
	}
	return out
}

var (
	_ ports.UserRepository       = UserRepo{}
	_ ports.ProjectRepository    = ProjectRepo{}
	_ ports.MembershipRepository = MembershipRepo{}
	_ ports.BoardRepository      = BoardRepo{}
	_ ports.TaskRepository       = TaskRepo{}
	_ ports.LabelRepository      = LabelRepo{}
	_ ports.CommentRepository    = CommentRepo{}
	_ ports.HistoryRepository    = HistoryRepo{}
	_ ports.HistoryRecorder      = Recorder{}
)
