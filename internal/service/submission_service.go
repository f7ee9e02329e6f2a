package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hireproof/hireproof-backend/internal/grader"
	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionExpired   = errors.New("session expired")
	ErrSessionNotActive = errors.New("session not active")
	ErrAlreadySubmitted = errors.New("test already submitted")
	ErrResultsNotReady  = errors.New("results not ready")
)

// SessionStore is the session access the submission pipeline needs.
type SessionStore interface {
	GetByID(ctx context.Context, id int64) (*model.TestSession, error)
	Finalize(ctx context.Context, id int64, score float64, endTime time.Time) error
}

// QuestionStore is the question access the submission pipeline needs.
type QuestionStore interface {
	ListByTest(ctx context.Context, testID int) ([]model.PositionedQuestion, error)
	SumPointsByTest(ctx context.Context, testID int) (float64, error)
}

// CandidateAnswerStore is the answer access the submission pipeline needs.
type CandidateAnswerStore interface {
	Insert(ctx context.Context, a *model.CandidateAnswer) (bool, error)
	Exists(ctx context.Context, sessionID int64) (bool, error)
	ListBySession(ctx context.Context, sessionID int64) ([]model.CandidateAnswer, error)
}

// SubmissionService grades submitted answer sheets and aggregates results.
type SubmissionService struct {
	sessions      SessionStore
	questions     QuestionStore
	answers       CandidateAnswerStore
	grader        grader.Grader
	passThreshold float64
	logger        zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService. passThreshold is the
// fraction of a question's points an answer must earn to count as correct.
func NewSubmissionService(sessions SessionStore, questions QuestionStore, answers CandidateAnswerStore, g grader.Grader, passThreshold float64) *SubmissionService {
	return &SubmissionService{
		sessions:      sessions,
		questions:     questions,
		answers:       answers,
		grader:        g,
		passThreshold: passThreshold,
		logger:        log.With().Str("component", "submission_service").Logger(),
	}
}

// SubmitTest grades every answer in the request, persists the per-question
// outcomes and finalizes the session with its total score. A second submit
// for the same session returns ErrAlreadySubmitted; answers referencing
// questions outside the test are skipped rather than failing the whole
// sheet.
func (s *SubmissionService) SubmitTest(ctx context.Context, sessionID int64, req model.SubmitTestRequest) (*model.TestResult, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if session.ExpiresAt != nil && session.ExpiresAt.Before(time.Now()) {
		return nil, ErrSessionExpired
	}
	if session.Status == model.SessionStatusFinished {
		return nil, ErrAlreadySubmitted
	}
	if session.Status != model.SessionStatusActive {
		return nil, ErrSessionNotActive
	}

	alreadySubmitted, err := s.answers.Exists(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if alreadySubmitted {
		return nil, ErrAlreadySubmitted
	}

	positioned, err := s.questions.ListByTest(ctx, session.TestID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*model.Question, len(positioned))
	for i := range positioned {
		byID[positioned[i].ID] = &positioned[i].Question
	}

	now := time.Now()
	seen := make(map[int]bool, len(req.Answers))

	for _, submitted := range req.Answers {
		question, ok := byID[submitted.QuestionID]
		if !ok {
			s.logger.Warn().
				Int64("session_id", sessionID).
				Int("question_id", submitted.QuestionID).
				Msg("answer references question outside the test, skipping")
			continue
		}
		if seen[submitted.QuestionID] {
			continue
		}
		seen[submitted.QuestionID] = true

		answer := s.gradeAnswer(ctx, question, submitted)
		answer.TestSessionID = sessionID
		answer.SubmittedAt = now

		// A concurrent submit may win the race for individual questions;
		// the total below is summed from the rows that actually landed.
		if _, err := s.answers.Insert(ctx, answer); err != nil {
			return nil, err
		}
	}

	persisted, err := s.answers.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	var totalScore float64
	for _, a := range persisted {
		totalScore += a.PointsEarned
	}

	if err := s.sessions.Finalize(ctx, sessionID, totalScore, now); err != nil {
		return nil, err
	}
	session.Status = model.SessionStatusFinished
	session.Score = totalScore
	session.EndTime = &now

	s.logger.Info().
		Int64("session_id", sessionID).
		Float64("score", totalScore).
		Int("answers", len(persisted)).
		Msg("test submitted")

	return s.buildResult(ctx, session)
}

// GetResults returns the aggregated result for a finished session.
func (s *SubmissionService) GetResults(ctx context.Context, sessionID int64) (*model.TestResult, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.Status != model.SessionStatusFinished {
		return nil, ErrResultsNotReady
	}
	return s.buildResult(ctx, session)
}

// gradeAnswer scores one answer. Grading never fails the submission: a
// grader transport error leaves the answer pending manual review with
// IsCorrect unset and zero points.
func (s *SubmissionService) gradeAnswer(ctx context.Context, question *model.Question, submitted model.SubmitAnswerRequest) *model.CandidateAnswer {
	answer := &model.CandidateAnswer{
		QuestionID:     question.ID,
		SelectedAnswer: submitted.SelectedAnswerID,
		OpenAnswerText: submitted.OpenAnswerText,
	}

	switch question.Type {
	case model.QuestionTypeQCM, model.QuestionTypeTrueOrFalse:
		correct := false
		if submitted.SelectedAnswerID != nil {
			for _, opt := range question.Answers {
				if opt.ID == *submitted.SelectedAnswerID && opt.Correct {
					correct = true
					break
				}
			}
		}
		answer.IsCorrect = &correct
		if correct {
			answer.PointsEarned = question.Points
		}

	case model.QuestionTypeOpen:
		if submitted.OpenAnswerText == nil || *submitted.OpenAnswerText == "" {
			correct := false
			answer.IsCorrect = &correct
			return answer
		}

		// Without an expected answer there is nothing to grade against;
		// leave the answer for manual review.
		if question.Open == nil || question.Open.ExpectedAnswer == "" {
			return answer
		}

		result, err := s.grader.Grade(ctx, grader.Request{
			Question:        question.Label,
			ExpectedAnswer:  question.Open.ExpectedAnswer,
			Keywords:        question.Open.Keywords,
			CandidateAnswer: *submitted.OpenAnswerText,
			MaxPoints:       int(math.Floor(question.Points)),
		})
		if err != nil {
			s.logger.Error().Err(err).
				Int("question_id", question.ID).
				Msg("grading failed, answer left for manual review")
			return answer
		}

		answer.PointsEarned = result.Score
		correct := question.Points > 0 && result.Score >= s.passThreshold*question.Points
		answer.IsCorrect = &correct
	}

	return answer
}

// buildResult assembles the per-question breakdown and totals for a session.
func (s *SubmissionService) buildResult(ctx context.Context, session *model.TestSession) (*model.TestResult, error) {
	positioned, err := s.questions.ListByTest(ctx, session.TestID)
	if err != nil {
		return nil, err
	}
	totalPossible, err := s.questions.SumPointsByTest(ctx, session.TestID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answers.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	answerByQuestion := make(map[int]*model.CandidateAnswer, len(answers))
	for i := range answers {
		answerByQuestion[answers[i].QuestionID] = &answers[i]
	}

	result := &model.TestResult{
		SessionID:           session.ID,
		TotalScore:          session.Score,
		TotalPossiblePoints: totalPossible,
		TotalScoreFraction:  fmt.Sprintf("%.1f/%.1f", session.Score, totalPossible),
		TotalQuestions:      len(positioned),
		AnsweredQuestions:   len(answers),
		Status:              session.Status,
		QuestionResults:     make([]model.QuestionResult, 0, len(answers)),
	}
	if totalPossible > 0 {
		result.ScorePercentage = session.Score / totalPossible * 100
	}
	if result.AnsweredQuestions < result.TotalQuestions {
		result.Message = fmt.Sprintf("%d of %d questions answered",
			result.AnsweredQuestions, result.TotalQuestions)
	}

	// Only answered questions appear in the breakdown; an unanswered
	// question's canonical answer stays hidden.
	for i := range positioned {
		question := &positioned[i].Question
		a, ok := answerByQuestion[question.ID]
		if !ok {
			continue
		}

		qr := model.QuestionResult{
			QuestionID:      question.ID,
			QuestionLabel:   question.Label,
			QuestionType:    question.Type.DisplayName(),
			MaxPoints:       question.Points,
			CorrectAnswer:   correctAnswerLabel(question),
			IsCorrect:       a.IsCorrect,
			PointsEarned:    a.PointsEarned,
			CandidateAnswer: candidateAnswerLabel(question, a),
		}
		qr.ScoreFraction = fmt.Sprintf("%.1f/%.1f", qr.PointsEarned, question.Points)

		result.QuestionResults = append(result.QuestionResults, qr)
	}

	return result, nil
}

func correctAnswerLabel(q *model.Question) string {
	switch q.Type {
	case model.QuestionTypeOpen:
		if q.Open != nil && q.Open.ExpectedAnswer != "" {
			return q.Open.ExpectedAnswer
		}
		return "no model answer available"
	default:
		for _, opt := range q.Answers {
			if opt.Correct {
				return opt.Label
			}
		}
	}
	return ""
}

func candidateAnswerLabel(q *model.Question, a *model.CandidateAnswer) string {
	if a.OpenAnswerText != nil {
		return *a.OpenAnswerText
	}
	if a.SelectedAnswer != nil {
		for _, opt := range q.Answers {
			if opt.ID == *a.SelectedAnswer {
				return opt.Label
			}
		}
	}
	return ""
}
