package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
)

type MembershipRepository struct {
	pool *pgxpool.Pool
}

func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool}
}

func (r *MembershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO project_members (id, project_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID.UUID, m.ProjectID.UUID, m.UserID.UUID, string(m.Role), m.CreatedAt,
	)
	return translateUnique(err, "user is already a member of this project")
}

func (r *MembershipRepository) Get(ctx context.Context, projectID domain.ProjectID, userID domain.UserID) (*domain.Membership, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, project_id, user_id, role, created_at
		FROM project_members
		WHERE project_id = $1 AND user_id = $2`, projectID.UUID, userID.UUID)
	return scanMembership(row)
}

func (r *MembershipRepository) GetByID(ctx context.Context, projectID domain.ProjectID, id domain.MembershipID) (*domain.Membership, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, project_id, user_id, role, created_at
		FROM project_members
		WHERE id = $1 AND project_id = $2`, id.UUID, projectID.UUID)
	return scanMembership(row)
}

func (r *MembershipRepository) Count(ctx context.Context, projectID domain.ProjectID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM project_members WHERE project_id = $1`, projectID.UUID).Scan(&count)
	return count, err
}

func (r *MembershipRepository) ListByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.Membership, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.project_id, m.user_id, m.role, m.created_at,
		       u.id, u.email, u.first_name, u.last_name, u.avatar
		FROM project_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.project_id = $1
		ORDER BY m.created_at ASC`, projectID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Membership
	for rows.Next() {
		var m domain.Membership
		var role string
		var p domain.Profile
		if err := rows.Scan(&m.ID.UUID, &m.ProjectID.UUID, &m.UserID.UUID, &role, &m.CreatedAt,
			&p.ID.UUID, &p.Email, &p.FirstName, &p.LastName, &p.Avatar); err != nil {
			return nil, err
		}
		m.Role = domain.Role(role)
		m.User = &p
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *MembershipRepository) Delete(ctx context.Context, id domain.MembershipID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM project_members WHERE id = $1`, id.UUID)
	return err
}

func scanMembership(row pgx.Row) (*domain.Membership, error) {
	var m domain.Membership
	var role string
	err := row.Scan(&m.ID.UUID, &m.ProjectID.UUID, &m.UserID.UUID, &role, &m.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	m.Role = domain.Role(role)
	return &m, nil
}

var _ ports.MembershipRepository = (*MembershipRepository)(nil)
