package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
)

type BoardRepository struct {
	pool *pgxpool.Pool
}

func NewBoardRepository(pool *pgxpool.Pool) *BoardRepository {
	return &BoardRepository{pool: pool}
}

func (r *BoardRepository) GetBoard(ctx context.Context, id domain.BoardID) (*domain.Board, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, project_id, name, is_default, position, created_at, updated_at
		FROM boards WHERE id = $1`, id.UUID)
	var b domain.Board
	err := row.Scan(&b.ID.UUID, &b.ProjectID.UUID, &b.Name, &b.IsDefault, &b.Position, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BoardRepository) GetList(ctx context.Context, id domain.ListID) (*domain.List, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, board_id, name, position, created_at, updated_at
		FROM lists WHERE id = $1`, id.UUID)
	var l domain.List
	err := row.Scan(&l.ID.UUID, &l.BoardID.UUID, &l.Name, &l.Position, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *BoardRepository) GetListProject(ctx context.Context, id domain.ListID) (domain.ProjectID, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT b.project_id
		FROM lists l
		JOIN boards b ON b.id = l.board_id
		WHERE l.id = $1`, id.UUID)
	var projectID domain.ProjectID
	err := row.Scan(&projectID.UUID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.ProjectID{}, false, nil
		}
		return domain.ProjectID{}, false, err
	}
	return projectID, true, nil
}

// TreeByProject loads the project's boards, lists and tasks in three queries
// and nests them in memory. Siblings are ordered by position with creation
// time breaking ties, so racing appends that land on the same position still
// render in a stable order.
func (r *BoardRepository) TreeByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.Board, error) {
	boardRows, err := r.pool.Query(ctx, `
		SELECT id, project_id, name, is_default, position, created_at, updated_at
		FROM boards
		WHERE project_id = $1
		ORDER BY position ASC, created_at ASC`, projectID.UUID)
	if err != nil {
		return nil, err
	}
	defer boardRows.Close()

	var boards []*domain.Board
	byBoard := make(map[domain.BoardID]*domain.Board)
	for boardRows.Next() {
		var b domain.Board
		if err := boardRows.Scan(&b.ID.UUID, &b.ProjectID.UUID, &b.Name, &b.IsDefault, &b.Position, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, &b)
		byBoard[b.ID] = &b
	}
	if err := boardRows.Err(); err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return nil, nil
	}

	listRows, err := r.pool.Query(ctx, `
		SELECT l.id, l.board_id, l.name, l.position, l.created_at, l.updated_at
		FROM lists l
		JOIN boards b ON b.id = l.board_id
		WHERE b.project_id = $1
		ORDER BY l.position ASC, l.created_at ASC`, projectID.UUID)
	if err != nil {
		return nil, err
	}
	defer listRows.Close()

	byList := make(map[domain.ListID]*domain.List)
	for listRows.Next() {
		var l domain.List
		if err := listRows.Scan(&l.ID.UUID, &l.BoardID.UUID, &l.Name, &l.Position, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		if b, ok := byBoard[l.BoardID]; ok {
			b.Lists = append(b.Lists, &l)
		}
		byList[l.ID] = &l
	}
	if err := listRows.Err(); err != nil {
		return nil, err
	}

	taskRows, err := r.pool.Query(ctx, `
		SELECT t.id, t.list_id, t.project_id, t.title, t.description, t.position, t.priority,
		       t.estimated_hours, t.due_date, t.assigned_to_id, t.created_by_id, t.created_at, t.updated_at,
		       a.id, a.email, a.first_name, a.last_name, a.avatar
		FROM tasks t
		LEFT JOIN users a ON a.id = t.assigned_to_id
		WHERE t.project_id = $1
		ORDER BY t.position ASC, t.created_at ASC`, projectID.UUID)
	if err != nil {
		return nil, err
	}
	defer taskRows.Close()

	var tasks []*domain.Task
	for taskRows.Next() {
		t, err := scanTaskWithAssignee(taskRows)
		if err != nil {
			return nil, err
		}
		if l, ok := byList[t.ListID]; ok {
			l.Tasks = append(l.Tasks, t)
		}
		tasks = append(tasks, t)
	}
	if err := taskRows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachTaskLabels(ctx, projectID, tasks); err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *BoardRepository) attachTaskLabels(ctx context.Context, projectID domain.ProjectID, tasks []*domain.Task) error {
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

func (r *BoardRepository) MaxListPosition(ctx context.Context, boardID domain.BoardID) (int, bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT MAX(position) FROM lists WHERE board_id = $1`, boardID.UUID)
	var max *int
	if err := row.Scan(&max); err != nil {
		return 0, false, err
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}

func (r *BoardRepository) CreateList(ctx context.Context, list *domain.List) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lists (id, board_id, name, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		list.ID.UUID, list.BoardID.UUID, list.Name, list.Position, list.CreatedAt, list.UpdatedAt,
	)
	return err
}

func (r *BoardRepository) UpdateListPosition(ctx context.Context, id domain.ListID, position int) error {
	_, err := r.pool.Exec(ctx, `UPDATE lists SET position = $1, updated_at = now() WHERE id = $2`, position, id.UUID)
	return err
}

func (r *BoardRepository) DeleteList(ctx context.Context, id domain.ListID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM lists WHERE id = $1`, id.UUID)
	return err
}

func (r *BoardRepository) DeleteBoard(ctx context.Context, id domain.BoardID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM boards WHERE id = $1`, id.UUID)
	return err
}

var _ ports.BoardRepository = (*BoardRepository)(nil)
