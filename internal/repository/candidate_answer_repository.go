package repository

import (
	"context"

	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CandidateAnswerRepository handles candidate answer data access.
type CandidateAnswerRepository struct {
	pool *pgxpool.Pool
}

// NewCandidateAnswerRepository creates a new CandidateAnswerRepository.
func NewCandidateAnswerRepository(pool *pgxpool.Pool) *CandidateAnswerRepository {
	return &CandidateAnswerRepository{pool: pool}
}

// Insert records a graded answer. The unique index on
// (test_session_id, question_id) makes the insert idempotent: a duplicate
// is silently skipped and Insert reports false.
func (r *CandidateAnswerRepository) Insert(ctx context.Context, a *model.CandidateAnswer) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO candidate_answers
		   (test_session_id, question_id, selected_answer, open_answer_text, is_correct, points_earned, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (test_session_id, question_id) DO NOTHING`,
		a.TestSessionID, a.QuestionID, a.SelectedAnswer, a.OpenAnswerText,
		a.IsCorrect, a.PointsEarned, a.SubmittedAt,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Exists reports whether the session has any recorded answer.
func (r *CandidateAnswerRepository) Exists(ctx context.Context, sessionID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM candidate_answers WHERE test_session_id = $1)`,
		sessionID,
	).Scan(&exists)
	return exists, err
}

// ListBySession retrieves every recorded answer for a session.
func (r *CandidateAnswerRepository) ListBySession(ctx context.Context, sessionID int64) ([]model.CandidateAnswer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, test_session_id, question_id, selected_answer, open_answer_text, is_correct, points_earned, submitted_at
		 FROM candidate_answers
		 WHERE test_session_id = $1
		 ORDER BY id`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []model.CandidateAnswer
	for rows.Next() {
		var a model.CandidateAnswer
		err := rows.Scan(&a.ID, &a.TestSessionID, &a.QuestionID, &a.SelectedAnswer,
			&a.OpenAnswerText, &a.IsCorrect, &a.PointsEarned, &a.SubmittedAt)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
