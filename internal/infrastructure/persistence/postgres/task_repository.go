package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

const taskColumns = `id, list_id, project_id, title, description, position, priority, estimated_hours, due_date, assigned_to_id, created_by_id, created_at, updated_at`

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	var assignedTo *uuid.UUID
	if task.AssignedToID != nil {
		assignedTo = &task.AssignedToID.UUID
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tasks (id, list_id, project_id, title, description, position, priority, estimated_hours, due_date, assigned_to_id, created_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		task.ID.UUID, task.ListID.UUID, task.ProjectID.UUID, task.Title, task.Description, task.Position,
		string(task.Priority), task.EstimatedHours, task.DueDate, assignedTo, task.CreatedByID.UUID,
		task.CreatedAt, task.UpdatedAt,
	)
	return err
}

func (r *TaskRepository) GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id.UUID)
	t, err := scanTask(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) GetWithRelations(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT t.id, t.list_id, t.project_id, t.title, t.description, t.position, t.priority,
		       t.estimated_hours, t.due_date, t.assigned_to_id, t.created_by_id, t.created_at, t.updated_at,
		       a.id, a.email, a.first_name, a.last_name, a.avatar,
		       c.id, c.email, c.first_name, c.last_name, c.avatar,
		       l.id, l.board_id, l.name, l.position, l.created_at, l.updated_at
		FROM tasks t
		LEFT JOIN users a ON a.id = t.assigned_to_id
		JOIN users c ON c.id = t.created_by_id
		JOIN lists l ON l.id = t.list_id
		WHERE t.id = $1`, id.UUID)

	t := &domain.Task{}
	var priority string
	var assignedTo *uuid.UUID
	var assignee nullableProfile
	var creator domain.Profile
	var list domain.List
	err := row.Scan(&t.ID.UUID, &t.ListID.UUID, &t.ProjectID.UUID, &t.Title, &t.Description, &t.Position, &priority,
		&t.EstimatedHours, &t.DueDate, &assignedTo, &t.CreatedByID.UUID, &t.CreatedAt, &t.UpdatedAt,
		&assignee.ID, &assignee.Email, &assignee.FirstName, &assignee.LastName, &assignee.Avatar,
		&creator.ID.UUID, &creator.Email, &creator.FirstName, &creator.LastName, &creator.Avatar,
		&list.ID.UUID, &list.BoardID.UUID, &list.Name, &list.Position, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	t.Priority = domain.Priority(priority)
	if assignedTo != nil {
		uid := domain.NewUserID(*assignedTo)
		t.AssignedToID = &uid
	}
	t.AssignedTo = assignee.profile()
	t.CreatedBy = &creator
	t.List = &list

	labels, err := r.labelsByTask(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Labels = labels
	return t, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.list_id, t.project_id, t.title, t.description, t.position, t.priority,
		       t.estimated_hours, t.due_date, t.assigned_to_id, t.created_by_id, t.created_at, t.updated_at,
		       a.id, a.email, a.first_name, a.last_name, a.avatar,
		       l.id, l.board_id, l.name, l.position, l.created_at, l.updated_at,
		       (SELECT COUNT(*) FROM comments c WHERE c.task_id = t.id) AS comment_count
		FROM tasks t
		LEFT JOIN users a ON a.id = t.assigned_to_id
		JOIN lists l ON l.id = t.list_id
		WHERE t.project_id = $1
		ORDER BY t.created_at DESC`, projectID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Task
	for rows.Next() {
		t := &domain.Task{}
		var priority string
		var assignedTo *uuid.UUID
		var assignee nullableProfile
		var list domain.List
		if err := rows.Scan(&t.ID.UUID, &t.ListID.UUID, &t.ProjectID.UUID, &t.Title, &t.Description, &t.Position, &priority,
			&t.EstimatedHours, &t.DueDate, &assignedTo, &t.CreatedByID.UUID, &t.CreatedAt, &t.UpdatedAt,
			&assignee.ID, &assignee.Email, &assignee.FirstName, &assignee.LastName, &assignee.Avatar,
			&list.ID.UUID, &list.BoardID.UUID, &list.Name, &list.Position, &list.CreatedAt, &list.UpdatedAt,
			&t.CommentCount); err != nil {
			return nil, err
		}
		t.Priority = domain.Priority(priority)
		if assignedTo != nil {
			uid := domain.NewUserID(*assignedTo)
			t.AssignedToID = &uid
		}
		t.AssignedTo = assignee.profile()
		t.List = &list
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachLabels(ctx, projectID, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TaskRepository) MaxPosition(ctx context.Context, listID domain.ListID) (int, bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT MAX(position) FROM tasks WHERE list_id = $1`, listID.UUID)
	var max *int
	if err := row.Scan(&max); err != nil {
		return 0, false, err
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	var assignedTo *uuid.UUID
	if task.AssignedToID != nil {
		assignedTo = &task.AssignedToID.UUID
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, priority = $3, estimated_hours = $4, due_date = $5,
		    assigned_to_id = $6, position = $7, updated_at = $8
		WHERE id = $9`,
		task.Title, task.Description, string(task.Priority), task.EstimatedHours, task.DueDate,
		assignedTo, task.Position, task.UpdatedAt, task.ID.UUID,
	)
	return err
}

func (r *TaskRepository) Move(ctx context.Context, id domain.TaskID, listID domain.ListID, position int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE tasks SET list_id = $1, position = $2, updated_at = now() WHERE id = $3`,
		listID.UUID, position, id.UUID,
	)
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, id domain.TaskID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id.UUID)
	return err
}

func (r *TaskRepository) labelsByTask(ctx context.Context, taskID domain.TaskID) ([]*domain.Label, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT lb.id, lb.project_id, lb.name, lb.color, lb.created_at, lb.updated_at
		FROM task_labels tl
		JOIN labels lb ON lb.id = tl.label_id
		WHERE tl.task_id = $1
		ORDER BY lb.name ASC`, taskID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Label
	for rows.Next() {
		var lb domain.Label
		if err := rows.Scan(&lb.ID.UUID, &lb.ProjectID.UUID, &lb.Name, &lb.Color, &lb.CreatedAt, &lb.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &lb)
	}
	return out, rows.Err()
}

func (r *TaskRepository) attachLabels(ctx context.Context, projectID domain.ProjectID, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT tl.task_id, lb.id, lb.project_id, lb.name, lb.color, lb.created_at, lb.updated_at
		FROM task_labels tl
		JOIN labels lb ON lb.id = tl.label_id
		WHERE lb.project_id = $1
		ORDER BY lb.name ASC`, projectID.UUID)
	if err != nil {
		return err
	}
	defer rows.Close()

	byTask := make(map[domain.TaskID]*domain.Task, len(tasks))
	for _, t := range tasks {
		byTask[t.ID] = t
	}
	for rows.Next() {
		var taskID domain.TaskID
		var lb domain.Label
		if err := rows.Scan(&taskID.UUID, &lb.ID.UUID, &lb.ProjectID.UUID, &lb.Name, &lb.Color, &lb.CreatedAt, &lb.UpdatedAt); err != nil {
			return err
		}
		if t, ok := byTask[taskID]; ok {
			t.Labels = append(t.Labels, &lb)
		}
	}
	return rows.Err()
}

// nullableProfile scans the columns of a LEFT JOINed user.
type nullableProfile struct {
	ID        *uuid.UUID
	Email     *string
	FirstName *string
	LastName  *string
	Avatar    *string
}

func (n nullableProfile) profile() *domain.Profile {
	if n.ID == nil {
		return nil
	}
	p := &domain.Profile{ID: domain.NewUserID(*n.ID)}
	if n.Email != nil {
		p.Email = *n.Email
	}
	if n.FirstName != nil {
		p.FirstName = *n.FirstName
	}
	if n.LastName != nil {
		p.LastName = *n.LastName
	}
	if n.Avatar != nil {
		p.Avatar = *n.Avatar
	}
	return p
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	t := &domain.Task{}
	var priority string
	var assignedTo *uuid.UUID
	err := row.Scan(&t.ID.UUID, &t.ListID.UUID, &t.ProjectID.UUID, &t.Title, &t.Description, &t.Position,
		&priority, &t.EstimatedHours, &t.DueDate, &assignedTo, &t.CreatedByID.UUID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Priority = domain.Priority(priority)
	if assignedTo != nil {
		uid := domain.NewUserID(*assignedTo)
		t.AssignedToID = &uid
	}
	return t, nil
}

// scanTaskWithAssignee scans a task row followed by a LEFT JOINed assignee.
func scanTaskWithAssignee(rows pgx.Rows) (*domain.Task, error) {
	t := &domain.Task{}
	var priority string
	var assignedTo *uuid.UUID
	var assignee nullableProfile
	err := rows.Scan(&t.ID.UUID, &t.ListID.UUID, &t.ProjectID.UUID, &t.Title, &t.Description, &t.Position,
		&priority, &t.EstimatedHours, &t.DueDate, &assignedTo, &t.CreatedByID.UUID, &t.CreatedAt, &t.UpdatedAt,
		&assignee.ID, &assignee.Email, &assignee.FirstName, &assignee.LastName, &assignee.Avatar)
	if err != nil {
		return nil, err
	}
	t.Priority = domain.Priority(priority)
	if assignedTo != nil {
		uid := domain.NewUserID(*assignedTo)
		t.AssignedToID = &uid
	}
	t.AssignedTo = assignee.profile()
	return t, nil
}

var _ ports.TaskRepository = (*TaskRepository)(nil)
