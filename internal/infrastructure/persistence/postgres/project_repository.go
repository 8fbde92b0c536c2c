package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

const projectColumns = `id, name, description, key, color, status, created_by_id, start_date, end_date, created_at, updated_at`

// CreateWithDefaults persists the project, the OWNER membership, the default
// board and its seeded lists in one transaction.
func (r *ProjectRepository) CreateWithDefaults(ctx context.Context, project *domain.Project, owner *domain.Membership, board *domain.Board) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO projects (id, name, description, key, color, status, created_by_id, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		project.ID.UUID, project.Name, project.Description, project.Key, project.Color, string(project.Status),
		project.CreatedByID.UUID, project.StartDate, project.EndDate, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return translateUnique(err, "project key already exists")
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO project_members (id, project_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		owner.ID.UUID, owner.ProjectID.UUID, owner.UserID.UUID, string(owner.Role), owner.CreatedAt,
	)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO boards (id, project_id, name, is_default, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		board.ID.UUID, board.ProjectID.UUID, board.Name, board.IsDefault, board.Position, board.CreatedAt, board.UpdatedAt,
	)
	if err != nil {
		return err
	}
	for _, list := range board.Lists {
		_, err = tx.Exec(ctx, `
			INSERT INTO lists (id, board_id, name, position, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			list.ID.UUID, list.BoardID.UUID, list.Name, list.Position, list.CreatedAt, list.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id.UUID)
	return scanProject(row)
}

func (r *ProjectRepository) GetByKey(ctx context.Context, key string) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE key = $1`, key)
	return scanProject(row)
}

func (r *ProjectRepository) ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.description, p.key, p.color, p.status, p.created_by_id,
		       p.start_date, p.end_date, p.created_at, p.updated_at,
		       (SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id) AS task_count
		FROM projects p
		JOIN project_members m ON m.project_id = p.id
		WHERE m.user_id = $1
		ORDER BY p.created_at DESC`, userID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Project
	for rows.Next() {
		var p domain.Project
		var status string
		if err := rows.Scan(&p.ID.UUID, &p.Name, &p.Description, &p.Key, &p.Color, &status, &p.CreatedByID.UUID,
			&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt, &p.TaskCount); err != nil {
			return nil, err
		}
		p.Status = domain.ProjectStatus(status)
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE projects
		SET name = $1, description = $2, color = $3, status = $4, start_date = $5, end_date = $6, updated_at = $7
		WHERE id = $8`,
		project.Name, project.Description, project.Color, string(project.Status),
		project.StartDate, project.EndDate, project.UpdatedAt, project.ID.UUID,
	)
	return err
}

func (r *ProjectRepository) Delete(ctx context.Context, id domain.ProjectID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id.UUID)
	return err
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	var status string
	err := row.Scan(&p.ID.UUID, &p.Name, &p.Description, &p.Key, &p.Color, &status, &p.CreatedByID.UUID,
		&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	p.Status = domain.ProjectStatus(status)
	return &p, nil
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)
