package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles question, answer and open-answer data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// Create inserts a question with its answers or open-answer spec in one
// transaction.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO questions (enterprise_id, label, hint, question_type, points)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		q.EnterpriseID, q.Label, q.Hint, q.Type, q.Points,
	).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}

	for i := range q.Answers {
		a := &q.Answers[i]
		a.QuestionID = q.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO answers (question_id, label, is_correct)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			a.QuestionID, a.Label, a.Correct,
		).Scan(&a.ID)
		if err != nil {
			return fmt.Errorf("insert answer: %w", err)
		}
	}

	if q.Open != nil {
		q.Open.QuestionID = q.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO open_answer_specs (question_id, expected_answer, keywords)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			q.Open.QuestionID, q.Open.ExpectedAnswer, q.Open.Keywords,
		).Scan(&q.Open.ID)
		if err != nil {
			return fmt.Errorf("insert open answer spec: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a question with its answers and open-answer spec.
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, enterprise_id, label, COALESCE(hint, ''), question_type, points
		 FROM questions
		 WHERE id = $1`, id,
	).Scan(&q.ID, &q.EnterpriseID, &q.Label, &q.Hint, &q.Type, &q.Points)
	if err != nil {
		return nil, err
	}

	if err := r.loadAnswers(ctx, q); err != nil {
		return nil, err
	}
	if err := r.loadOpenSpec(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ListByEnterprise retrieves all questions owned by a tenant, with their
// answers and open-answer specs.
func (r *QuestionRepository) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, enterprise_id, label, COALESCE(hint, ''), question_type, points
		 FROM questions
		 WHERE enterprise_id = $1
		 ORDER BY id`, enterpriseID,
	)
	if err != nil {
		return nil, err
	}
	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}

	for i := range questions {
		if err := r.loadAnswers(ctx, &questions[i]); err != nil {
			return nil, err
		}
		if err := r.loadOpenSpec(ctx, &questions[i]); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

// ListByTest retrieves a test's questions ordered by position, with their
// answers and open-answer specs.
func (r *QuestionRepository) ListByTest(ctx context.Context, testID int) ([]model.PositionedQuestion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.enterprise_id, q.label, COALESCE(q.hint, ''), q.question_type, q.points, tq.position
		 FROM test_questions tq
		 JOIN questions q ON q.id = tq.question_id
		 WHERE tq.test_id = $1
		 ORDER BY tq.position`, testID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.PositionedQuestion
	for rows.Next() {
		var pq model.PositionedQuestion
		if err := rows.Scan(&pq.ID, &pq.EnterpriseID, &pq.Label, &pq.Hint, &pq.Type, &pq.Points, &pq.Position); err != nil {
			return nil, err
		}
		questions = append(questions, pq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		if err := r.loadAnswers(ctx, &questions[i].Question); err != nil {
			return nil, err
		}
		if err := r.loadOpenSpec(ctx, &questions[i].Question); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

// SumPointsByTest returns the sum of points over every question attached to
// a test, answered or not.
func (r *QuestionRepository) SumPointsByTest(ctx context.Context, testID int) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(q.points), 0)
		 FROM test_questions tq
		 JOIN questions q ON q.id = tq.question_id
		 WHERE tq.test_id = $1`, testID,
	).Scan(&total)
	return total, err
}

func (r *QuestionRepository) loadAnswers(ctx context.Context, q *model.Question) error {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_id, label, is_correct
		 FROM answers
		 WHERE question_id = $1
		 ORDER BY id`, q.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Label, &a.Correct); err != nil {
			return err
		}
		q.Answers = append(q.Answers, a)
	}
	return rows.Err()
}

func (r *QuestionRepository) loadOpenSpec(ctx context.Context, q *model.Question) error {
	spec := &model.OpenAnswerSpec{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, question_id, expected_answer, keywords
		 FROM open_answer_specs
		 WHERE question_id = $1`, q.ID,
	).Scan(&spec.ID, &spec.QuestionID, &spec.ExpectedAnswer, &spec.Keywords)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil
		}
		return err
	}
	q.Open = spec
	return nil
}

func scanQuestions(rows pgx.Rows) ([]model.Question, error) {
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.EnterpriseID, &q.Label, &q.Hint, &q.Type, &q.Points); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
