package repository

import (
	"context"

	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnterpriseRepository handles enterprise data access.
type EnterpriseRepository struct {
	pool *pgxpool.Pool
}

// NewEnterpriseRepository creates a new EnterpriseRepository.
func NewEnterpriseRepository(pool *pgxpool.Pool) *EnterpriseRepository {
	return &EnterpriseRepository{pool: pool}
}

// Create inserts a new enterprise.
func (r *EnterpriseRepository) Create(ctx context.Context, e *model.Enterprise) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO enterprises (id, name)
		 VALUES ($1, $2)
		 RETURNING created_at`,
		e.ID, e.Name,
	).Scan(&e.CreatedAt)
}

// GetByName retrieves an enterprise by its unique name.
func (r *EnterpriseRepository) GetByName(ctx context.Context, name string) (*model.Enterprise, error) {
	e := &model.Enterprise{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM enterprises WHERE name = $1`, name,
	).Scan(&e.ID, &e.Name, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}
