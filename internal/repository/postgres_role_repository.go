package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RonUpdate/sitecf-sub001/internal/domain"
)

// PostgresAdminUserRepository implements AdminUserRepository using PostgreSQL
type PostgresAdminUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAdminUserRepository creates a new PostgresAdminUserRepository
func NewPostgresAdminUserRepository(pool *pgxpool.Pool) *PostgresAdminUserRepository {
	return &PostgresAdminUserRepository{pool: pool}
}

// GetByEmail retrieves an allowlist row by exact email match. The
// table enforces at most one row per email.
func (r *PostgresAdminUserRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	query := `SELECT email FROM admin_users WHERE email = $1`
	admin := &domain.AdminUser{}
	err := r.pool.QueryRow(ctx, query, email).Scan(&admin.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return admin, nil
}

// PostgresUserRoleRepository implements UserRoleRepository using PostgreSQL
type PostgresUserRoleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRoleRepository creates a new PostgresUserRoleRepository
func NewPostgresUserRoleRepository(pool *pgxpool.Pool) *PostgresUserRoleRepository {
	return &PostgresUserRoleRepository{pool: pool}
}

// GetByUserID retrieves a role row by exact user id match
func (r *PostgresUserRoleRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserRole, error) {
	query := `SELECT user_id, role FROM user_roles WHERE user_id = $1`
	row := &domain.UserRole{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(&row.UserID, &row.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}
