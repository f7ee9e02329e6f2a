package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository handles test session data access.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// CreateBatch inserts a batch of invited sessions in one transaction.
func (r *SessionRepository) CreateBatch(ctx context.Context, sessions []*model.TestSession) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range sessions {
		err = tx.QueryRow(ctx,
			`INSERT INTO test_sessions (test_id, candidate_email, access_code, expires_at, status)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, created_at`,
			s.TestID, s.CandidateEmail, s.AccessCode, s.ExpiresAt, s.Status,
		).Scan(&s.ID, &s.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a session by id.
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.TestSession, error) {
	return r.get(ctx,
		`SELECT id, test_id, candidate_email, access_code, created_at, expires_at, end_time, is_used, status, score
		 FROM test_sessions
		 WHERE id = $1`, id)
}

// GetByAccessCode retrieves a session by its access code.
func (r *SessionRepository) GetByAccessCode(ctx context.Context, code string) (*model.TestSession, error) {
	return r.get(ctx,
		`SELECT id, test_id, candidate_email, access_code, created_at, expires_at, end_time, is_used, status, score
		 FROM test_sessions
		 WHERE access_code = $1`, code)
}

// Activate marks a session used and active. The is_used guard makes the
// transition single-shot: a second activation attempt updates nothing.
func (r *SessionRepository) Activate(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE test_sessions
		 SET is_used = TRUE, status = $1
		 WHERE id = $2 AND is_used = FALSE`,
		model.SessionStatusActive, id,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Finalize records the final score, end time and FINISHED status.
func (r *SessionRepository) Finalize(ctx context.Context, id int64, score float64, endTime time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE test_sessions
		 SET status = $1, score = $2, end_time = $3
		 WHERE id = $4`,
		model.SessionStatusFinished, score, endTime, id,
	)
	return err
}

// ListByTest retrieves session overviews for a test, tenant-scoped through
// the owning test.
func (r *SessionRepository) ListByTest(ctx context.Context, testID int, enterpriseID uuid.UUID) ([]model.SessionOverview, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.candidate_email, s.access_code, s.created_at, s.expires_at, s.is_used, s.status, s.score,
		        t.id, t.name, t.duration_minutes
		 FROM test_sessions s
		 JOIN tests t ON t.id = s.test_id
		 WHERE s.test_id = $1 AND t.enterprise_id = $2
		 ORDER BY s.created_at DESC`, testID, enterpriseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overviews []model.SessionOverview
	for rows.Next() {
		var o model.SessionOverview
		err := rows.Scan(&o.SessionID, &o.CandidateEmail, &o.AccessCode, &o.CreatedAt,
			&o.ExpiresAt, &o.IsUsed, &o.Status, &o.Score,
			&o.TestID, &o.TestName, &o.DurationMinutes)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, o)
	}
	return overviews, rows.Err()
}

// ExpireOverdue finishes every non-finished session whose expiry has passed
// and returns how many rows were updated.
func (r *SessionRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE test_sessions
		 SET status = $1, end_time = $2
		 WHERE status IN ($3, $4, $5) AND expires_at IS NOT NULL AND expires_at < $2`,
		model.SessionStatusFinished, now,
		model.SessionStatusPlanned, model.SessionStatusScheduled, model.SessionStatusActive,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *SessionRepository) get(ctx context.Context, query string, arg any) (*model.TestSession, error) {
	s := &model.TestSession{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.TestID, &s.CandidateEmail, &s.AccessCode, &s.CreatedAt,
		&s.ExpiresAt, &s.EndTime, &s.IsUsed, &s.Status, &s.Score,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
