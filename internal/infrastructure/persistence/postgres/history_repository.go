package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
)

type HistoryRepository struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// Create appends an entry. History rows are never updated or deleted.
func (r *HistoryRepository) Create(ctx context.Context, entry *domain.TaskHistory) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO task_history (id, task_id, user_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.TaskID.UUID, entry.UserID.UUID, string(entry.Action), entry.Details, entry.CreatedAt,
	)
	return err
}

func (r *HistoryRepository) ListByTask(ctx context.Context, taskID domain.TaskID) ([]*domain.TaskHistory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT h.id, h.task_id, h.user_id, h.action, h.details, h.created_at,
		       u.id, u.email, u.first_name, u.last_name, u.avatar
		FROM task_history h
		JOIN users u ON u.id = h.user_id
		WHERE h.task_id = $1
		ORDER BY h.created_at DESC`, taskID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.TaskHistory
	for rows.Next() {
		var h domain.TaskHistory
		var action string
		var p domain.Profile
		if err := rows.Scan(&h.ID, &h.TaskID.UUID, &h.UserID.UUID, &action, &h.Details, &h.CreatedAt,
			&p.ID.UUID, &p.Email, &p.FirstName, &p.LastName, &p.Avatar); err != nil {
			return nil, err
		}
		h.Action = domain.HistoryAction(action)
		h.User = &p
		out = append(out, &h)
	}
	return out, rows.Err()
}

var _ ports.HistoryRepository = (*HistoryRepository)(nil)
