package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestRepository handles test and test-question data access.
type TestRepository struct {
	pool *pgxpool.Pool
}

// NewTestRepository creates a new TestRepository.
func NewTestRepository(pool *pgxpool.Pool) *TestRepository {
	return &TestRepository{pool: pool}
}

// Create inserts a test together with its ordered question links in one
// transaction. Positions are taken from the order of questionIDs, starting
// at 1.
func (r *TestRepository) Create(ctx context.Context, t *model.Test, questionIDs []int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO tests (enterprise_id, admin_account_id, name, duration_minutes, is_active, is_public)
		 VALUES ($1, $2, $3, $4, TRUE, FALSE)
		 RETURNING id, is_active, is_public, created_at`,
		t.EnterpriseID, t.AdminAccountID, t.Name, t.DurationMinutes,
	).Scan(&t.ID, &t.IsActive, &t.IsPublic, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert test: %w", err)
	}

	for i, qid := range questionIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO test_questions (test_id, question_id, position)
			 VALUES ($1, $2, $3)`,
			t.ID, qid, i+1,
		); err != nil {
			return fmt.Errorf("link question %d: %w", qid, err)
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a test by id.
func (r *TestRepository) GetByID(ctx context.Context, id int) (*model.Test, error) {
	t := &model.Test{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, enterprise_id, admin_account_id, name, duration_minutes, is_active, is_public, created_at
		 FROM tests
		 WHERE id = $1`, id,
	).Scan(&t.ID, &t.EnterpriseID, &t.AdminAccountID, &t.Name, &t.DurationMinutes, &t.IsActive, &t.IsPublic, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetByIDAndEnterprise retrieves a test only if it belongs to the given
// tenant. Used by admin routes for ownership checks.
func (r *TestRepository) GetByIDAndEnterprise(ctx context.Context, id int, enterpriseID uuid.UUID) (*model.Test, error) {
	t := &model.Test{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, enterprise_id, admin_account_id, name, duration_minutes, is_active, is_public, created_at
		 FROM tests
		 WHERE id = $1 AND enterprise_id = $2`, id, enterpriseID,
	).Scan(&t.ID, &t.EnterpriseID, &t.AdminAccountID, &t.Name, &t.DurationMinutes, &t.IsActive, &t.IsPublic, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListByEnterprise retrieves all tests owned by a tenant.
func (r *TestRepository) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID) ([]model.Test, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, enterprise_id, admin_account_id, name, duration_minutes, is_active, is_public, created_at
		 FROM tests
		 WHERE enterprise_id = $1
		 ORDER BY created_at DESC`, enterpriseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []model.Test
	for rows.Next() {
		var t model.Test
		if err := rows.Scan(&t.ID, &t.EnterpriseID, &t.AdminAccountID, &t.Name, &t.DurationMinutes, &t.IsActive, &t.IsPublic, &t.CreatedAt); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}
