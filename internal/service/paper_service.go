package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hireproof/hireproof-backend/internal/config"
	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TestMetaStore is the test lookup the paper service needs.
type TestMetaStore interface {
	GetByID(ctx context.Context, id int) (*model.Test, error)
}

// PaperService renders the candidate-facing view of a test, with the
// correct-answer flags stripped, and caches the rendered paper in Redis
// since it is identical for every candidate on the same test.
type PaperService struct {
	sessions  SessionStore
	tests     TestMetaStore
	questions QuestionStore
	cache     *redis.Client
	ttl       time.Duration
	logger    zerolog.Logger
}

// NewPaperService creates a new PaperService. cache may be nil, in which
// case every request renders from the database.
func NewPaperService(sessions SessionStore, tests TestMetaStore, questions QuestionStore, cache *redis.Client, ttl time.Duration) *PaperService {
	return &PaperService{
		sessions:  sessions,
		tests:     tests,
		questions: questions,
		cache:     cache,
		ttl:       ttl,
		logger:    log.With().Str("component", "paper_service").Logger(),
	}
}

// GetPaper returns the question paper for a candidate session. The session
// must be active and unexpired.
func (s *PaperService) GetPaper(ctx context.Context, sessionID int64) (*model.CandidatePaper, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.Status == model.SessionStatusFinished {
		return nil, ErrAlreadySubmitted
	}
	if session.ExpiresAt != nil && session.ExpiresAt.Before(time.Now()) {
		return nil, ErrSessionExpired
	}
	if session.Status != model.SessionStatusActive {
		return nil, ErrSessionNotActive
	}

	if paper := s.fromCache(ctx, session.TestID); paper != nil {
		return paper, nil
	}

	paper, err := s.render(ctx, session.TestID)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, session.TestID, paper)
	return paper, nil
}

func (s *PaperService) render(ctx context.Context, testID int) (*model.CandidatePaper, error) {
	test, err := s.tests.GetByID(ctx, testID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestNotFound
		}
		return nil, err
	}

	positioned, err := s.questions.ListByTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	paper := &model.CandidatePaper{
		TestID:          test.ID,
		TestName:        test.Name,
		DurationMinutes: test.DurationMinutes,
		TotalQuestions:  len(positioned),
		Questions:       make([]model.CandidateQuestion, 0, len(positioned)),
	}
	for _, pq := range positioned {
		cq := model.CandidateQuestion{
			ID:       pq.ID,
			Label:    pq.Label,
			Hint:     pq.Hint,
			Type:     pq.Type,
			Points:   pq.Points,
			Position: pq.Position,
		}
		for _, a := range pq.Answers {
			cq.Options = append(cq.Options, model.CandidateOption{ID: a.ID, Label: a.Label})
		}
		paper.Questions = append(paper.Questions, cq)
	}

	return paper, nil
}

func (s *PaperService) fromCache(ctx context.Context, testID int) *model.CandidatePaper {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, config.CacheKey.TestPaperKey(testID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("paper cache read failed")
		}
		return nil
	}
	paper := &model.CandidatePaper{}
	if err := json.Unmarshal(raw, paper); err != nil {
		s.logger.Warn().Err(err).Msg("paper cache entry corrupt")
		return nil
	}
	return paper
}

func (s *PaperService) toCache(ctx context.Context, testID int, paper *model.CandidatePaper) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(paper)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, config.CacheKey.TestPaperKey(testID), raw, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("paper cache write failed")
	}
}
