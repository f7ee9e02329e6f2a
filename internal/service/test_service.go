package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hireproof/hireproof-backend/internal/mailer"
	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrTestNotFound     = errors.New("test not found")
	ErrInvalidQuestion  = errors.New("invalid question")
)

// QuestionAuthoringStore is the question access the authoring side needs.
type QuestionAuthoringStore interface {
	Create(ctx context.Context, q *model.Question) error
	GetByID(ctx context.Context, id int) (*model.Question, error)
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID) ([]model.Question, error)
	ListByTest(ctx context.Context, testID int) ([]model.PositionedQuestion, error)
}

// TestAuthoringStore is the test access the authoring side needs.
type TestAuthoringStore interface {
	Create(ctx context.Context, t *model.Test, questionIDs []int) error
	GetByIDAndEnterprise(ctx context.Context, id int, enterpriseID uuid.UUID) (*model.Test, error)
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID) ([]model.Test, error)
}

// SessionAuthoringStore is the session access the authoring side needs.
type SessionAuthoringStore interface {
	CreateBatch(ctx context.Context, sessions []*model.TestSession) error
	ListByTest(ctx context.Context, testID int, enterpriseID uuid.UUID) ([]model.SessionOverview, error)
}

// TestService covers the admin authoring surface: questions, tests and
// candidate invitations.
type TestService struct {
	questions QuestionAuthoringStore
	tests     TestAuthoringStore
	sessions  SessionAuthoringStore
	mail      mailer.Mailer
	logger    zerolog.Logger
}

// NewTestService creates a new TestService.
func NewTestService(questions QuestionAuthoringStore, tests TestAuthoringStore, sessions SessionAuthoringStore, mail mailer.Mailer) *TestService {
	return &TestService{
		questions: questions,
		tests:     tests,
		sessions:  sessions,
		mail:      mail,
		logger:    log.With().Str("component", "test_service").Logger(),
	}
}

// CreateQuestion validates and stores a new question for a tenant.
func (s *TestService) CreateQuestion(ctx context.Context, enterpriseID uuid.UUID, req model.CreateQuestionRequest) (*model.Question, error) {
	question := &model.Question{
		EnterpriseID: enterpriseID,
		Label:        req.Label,
		Hint:         req.Hint,
		Type:         model.QuestionType(req.QuestionType),
		Points:       req.Points,
	}
	for _, a := range req.Answers {
		question.Answers = append(question.Answers, model.Answer{
			Label:   a.Label,
			Correct: a.Correct,
		})
	}
	if req.OpenAnswer != nil {
		question.Open = &model.OpenAnswerSpec{
			ExpectedAnswer: req.OpenAnswer.ExpectedAnswer,
			Keywords:       req.OpenAnswer.Keywords,
		}
	}

	if err := ValidateQuestion(question); err != nil {
		return nil, err
	}

	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("question_id", question.ID).
		Str("type", string(question.Type)).
		Msg("question created")
	return question, nil
}

// ValidateQuestion enforces the per-type shape rules a question must
// satisfy before it can be attached to a test.
func ValidateQuestion(q *model.Question) error {
	if !q.Type.Valid() {
		return fmt.Errorf("%w: unknown question type %q", ErrInvalidQuestion, q.Type)
	}
	if q.Points <= 0 {
		return fmt.Errorf("%w: points must be positive", ErrInvalidQuestion)
	}

	switch q.Type {
	case model.QuestionTypeQCM:
		if len(q.Answers) < 2 {
			return fmt.Errorf("%w: a multiple choice question needs at least two answers", ErrInvalidQuestion)
		}
		correct := 0
		for _, a := range q.Answers {
			if a.Correct {
				correct++
			}
		}
		if correct == 0 {
			return fmt.Errorf("%w: a multiple choice question needs at least one correct answer", ErrInvalidQuestion)
		}

	case model.QuestionTypeTrueOrFalse:
		if len(q.Answers) != 2 {
			return fmt.Errorf("%w: a true or false question needs exactly two answers", ErrInvalidQuestion)
		}
		trueCount, correctCount := 0, 0
		correctIsTrue := false
		for _, a := range q.Answers {
			isTrue := strings.EqualFold(strings.TrimSpace(a.Label), "true")
			if isTrue {
				trueCount++
			}
			if a.Correct {
				correctCount++
				correctIsTrue = isTrue
			}
		}
		if trueCount != 1 {
			return fmt.Errorf("%w: a true or false question needs exactly one answer labeled \"true\"", ErrInvalidQuestion)
		}
		if correctCount != 1 {
			return fmt.Errorf("%w: a true or false question needs exactly one correct answer", ErrInvalidQuestion)
		}
		if !correctIsTrue {
			return fmt.Errorf("%w: the correct answer of a true or false question must be the one labeled \"true\"", ErrInvalidQuestion)
		}

	case model.QuestionTypeOpen:
		if q.Open == nil || strings.TrimSpace(q.Open.ExpectedAnswer) == "" {
			return fmt.Errorf("%w: an open question needs an expected answer", ErrInvalidQuestion)
		}
		if len(q.Open.Keywords) == 0 {
			return fmt.Errorf("%w: an open question needs at least one keyword", ErrInvalidQuestion)
		}
	}

	return nil
}

// ListQuestions returns every question owned by a tenant.
func (s *TestService) ListQuestions(ctx context.Context, enterpriseID uuid.UUID) ([]model.Question, error) {
	return s.questions.ListByEnterprise(ctx, enterpriseID)
}

// CreateTest assembles a new test from existing questions. Every question
// must belong to the same tenant.
func (s *TestService) CreateTest(ctx context.Context, enterpriseID uuid.UUID, adminID int64, req model.CreateTestRequest) (*model.Test, error) {
	for _, id := range req.QuestionIDs {
		question, err := s.questions.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: question %d", ErrQuestionNotFound, id)
			}
			return nil, err
		}
		if question.EnterpriseID != enterpriseID {
			return nil, fmt.Errorf("%w: question %d", ErrQuestionNotFound, id)
		}
	}

	test := &model.Test{
		EnterpriseID:    enterpriseID,
		AdminAccountID:  adminID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}
	if err := s.tests.Create(ctx, test, req.QuestionIDs); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("test_id", test.ID).
		Int("questions", len(req.QuestionIDs)).
		Msg("test created")
	return test, nil
}

// GetTest returns a tenant's test by id.
func (s *TestService) GetTest(ctx context.Context, testID int, enterpriseID uuid.UUID) (*model.Test, error) {
	test, err := s.tests.GetByIDAndEnterprise(ctx, testID, enterpriseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestNotFound
		}
		return nil, err
	}
	return test, nil
}

// ListTests returns every test owned by a tenant.
func (s *TestService) ListTests(ctx context.Context, enterpriseID uuid.UUID) ([]model.Test, error) {
	return s.tests.ListByEnterprise(ctx, enterpriseID)
}

// ListTestQuestions returns a tenant's test questions in paper order,
// correct answers included.
func (s *TestService) ListTestQuestions(ctx context.Context, enterpriseID uuid.UUID, testID int) ([]model.PositionedQuestion, error) {
	if _, err := s.GetTest(ctx, testID, enterpriseID); err != nil {
		return nil, err
	}
	return s.questions.ListByTest(ctx, testID)
}

// InviteCandidates creates one planned session per email, each with a fresh
// access code, and mails the codes out. Mail failures are logged but do not
// undo the created sessions.
func (s *TestService) InviteCandidates(ctx context.Context, enterpriseID uuid.UUID, testID int, req model.InviteCandidatesRequest) ([]*model.TestSession, error) {
	test, err := s.GetTest(ctx, testID, enterpriseID)
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.TestSession, 0, len(req.Emails))
	for _, email := range req.Emails {
		code, err := GenerateAccessCode()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, &model.TestSession{
			TestID:         test.ID,
			CandidateEmail: strings.TrimSpace(email),
			AccessCode:     code,
			ExpiresAt:      req.ExpiresAt,
			Status:         model.SessionStatusPlanned,
		})
	}

	if err := s.sessions.CreateBatch(ctx, sessions); err != nil {
		return nil, err
	}

	for _, session := range sessions {
		if err := s.mail.SendInvitation(session.CandidateEmail, test.Name, session.AccessCode); err != nil {
			s.logger.Error().Err(err).
				Str("email", session.CandidateEmail).
				Msg("invitation mail failed")
		}
	}

	s.logger.Info().
		Int("test_id", test.ID).
		Int("invitations", len(sessions)).
		Msg("candidates invited")
	return sessions, nil
}

// ListSessions returns session overviews for a tenant's test.
func (s *TestService) ListSessions(ctx context.Context, enterpriseID uuid.UUID, testID int) ([]model.SessionOverview, error) {
	if _, err := s.GetTest(ctx, testID, enterpriseID); err != nil {
		return nil, err
	}
	return s.sessions.ListByTest(ctx, testID, enterpriseID)
}
