package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
)

type LabelRepository struct {
	pool *pgxpool.Pool
}

func NewLabelRepository(pool *pgxpool.Pool) *LabelRepository {
	return &LabelRepository{pool: pool}
}

const labelColumns = `id, project_id, name, color, created_at, updated_at`

func (r *LabelRepository) Create(ctx context.Context, label *domain.Label) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO labels (id, project_id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		label.ID.UUID, label.ProjectID.UUID, label.Name, label.Color, label.CreatedAt, label.UpdatedAt,
	)
	return translateUnique(err, "a label with this name already exists in the project")
}

func (r *LabelRepository) GetByID(ctx context.Context, id domain.LabelID) (*domain.Label, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+labelColumns+` FROM labels WHERE id = $1`, id.UUID)
	return scanLabel(row)
}

func (r *LabelRepository) GetByName(ctx context.Context, projectID domain.ProjectID, name string) (*domain.Label, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+labelColumns+` FROM labels WHERE project_id = $1 AND name = $2`, projectID.UUID, name)
	return scanLabel(row)
}

func (r *LabelRepository) Count(ctx context.Context, projectID domain.ProjectID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM labels WHERE project_id = $1`, projectID.UUID).Scan(&count)
	return count, err
}

func (r *LabelRepository) ListByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.Label, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+labelColumns+` FROM labels WHERE project_id = $1 ORDER BY name ASC`, projectID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLabels(rows)
}

func (r *LabelRepository) Update(ctx context.Context, label *domain.Label) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE labels SET name = $1, color = $2, updated_at = $3 WHERE id = $4`,
		label.Name, label.Color, label.UpdatedAt, label.ID.UUID,
	)
	return translateUnique(err, "a label with this name already exists in the project")
}

func (r *LabelRepository) Delete(ctx context.Context, id domain.LabelID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM labels WHERE id = $1`, id.UUID)
	return err
}

func (r *LabelRepository) Assigned(ctx context.Context, taskID domain.TaskID, labelID domain.LabelID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM task_labels WHERE task_id = $1 AND label_id = $2)`,
		taskID.UUID, labelID.UUID).Scan(&exists)
	return exists, err
}

func (r *LabelRepository) Assign(ctx context.Context, taskID domain.TaskID, labelID domain.LabelID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO task_labels (task_id, label_id, created_at) VALUES ($1, $2, $3)`,
		taskID.UUID, labelID.UUID, time.Now(),
	)
	return translateUnique(err, "label already assigned to this task")
}

func (r *LabelRepository) Unassign(ctx context.Context, taskID domain.TaskID, labelID domain.LabelID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM task_labels WHERE task_id = $1 AND label_id = $2`, taskID.UUID, labelID.UUID)
	return err
}

func (r *LabelRepository) ListByTask(ctx context.Context, taskID domain.TaskID) ([]*domain.Label, error) {
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
	return collectLabels(rows)
}

func scanLabel(row pgx.Row) (*domain.Label, error) {
	var lb domain.Label
	err := row.Scan(&lb.ID.UUID, &lb.ProjectID.UUID, &lb.Name, &lb.Color, &lb.CreatedAt, &lb.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &lb, nil
}

func collectLabels(rows pgx.Rows) ([]*domain.Label, error) {
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

var _ ports.LabelRepository = (*LabelRepository)(nil)
