package repository

import (
	"context"

	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminRepository handles admin account data access.
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// Create inserts a new admin account.
func (r *AdminRepository) Create(ctx context.Context, a *model.AdminAccount) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO admin_accounts (enterprise_id, username, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		a.EnterpriseID, a.Username, a.PasswordHash,
	).Scan(&a.ID, &a.CreatedAt)
}

// GetByUsername retrieves an admin account by its unique username.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*model.AdminAccount, error) {
	a := &model.AdminAccount{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, enterprise_id, username, password_hash, created_at
		 FROM admin_accounts
		 WHERE username = $1`, username,
	).Scan(&a.ID, &a.EnterpriseID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}
