package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comments (id, task_id, user_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		comment.ID.UUID, comment.TaskID.UUID, comment.UserID.UUID, comment.Content, comment.CreatedAt, comment.UpdatedAt,
	)
	return err
}

func (r *CommentRepository) GetByID(ctx context.Context, id domain.CommentID) (*domain.Comment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, task_id, user_id, content, created_at, updated_at
		FROM comments WHERE id = $1`, id.UUID)
	var c domain.Comment
	err := row.Scan(&c.ID.UUID, &c.TaskID.UUID, &c.UserID.UUID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) ListByTask(ctx context.Context, taskID domain.TaskID) ([]*domain.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.task_id, c.user_id, c.content, c.created_at, c.updated_at,
		       u.id, u.email, u.first_name, u.last_name, u.avatar
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.task_id = $1
		ORDER BY c.created_at ASC`, taskID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Comment
	for rows.Next() {
		var c domain.Comment
		var p domain.Profile
		if err := rows.Scan(&c.ID.UUID, &c.TaskID.UUID, &c.UserID.UUID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&p.ID.UUID, &p.Email, &p.FirstName, &p.LastName, &p.Avatar); err != nil {
			return nil, err
		}
		c.User = &p
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3`,
		comment.Content, comment.UpdatedAt, comment.ID.UUID,
	)
	return err
}

func (r *CommentRepository) Delete(ctx context.Context, id domain.CommentID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id.UUID)
	return err
}

var _ ports.CommentRepository = (*CommentRepository)(nil)
