package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredential = errors.New("invalid credential")
)

// dummyHash is compared against when the account lookup misses, so a failed
// login costs the same whether the username exists or not.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AdminStore is the account lookup the auth service needs.
type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*model.AdminAccount, error)
}

// SessionAuthStore is the session access the auth service needs.
type SessionAuthStore interface {
	GetByAccessCode(ctx context.Context, code string) (*model.TestSession, error)
	Activate(ctx context.Context, id int64) (bool, error)
}

// AuthService authenticates admins and candidates and issues their tokens.
type AuthService struct {
	admins   AdminStore
	sessions SessionAuthStore
	tokens   *TokenService
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(admins AdminStore, sessions SessionAuthStore, tokens *TokenService) *AuthService {
	return &AuthService{
		admins:   admins,
		sessions: sessions,
		tokens:   tokens,
		logger:   log.With().Str("component", "auth_service").Logger(),
	}
}

// AdminLogin verifies a username and password and returns a signed admin
// token. Every failure mode collapses into ErrInvalidCredential.
func (s *AuthService) AdminLogin(ctx context.Context, req model.AdminLoginRequest) (string, *model.AdminAccount, error) {
	account, err := s.admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Burn a compare anyway to keep timing flat.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(req.Password))
			return "", nil, ErrInvalidCredential
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredential
	}

	enterpriseID := account.EnterpriseID
	token, err := s.tokens.Issue(Principal{
		SubjectID:    account.ID,
		Role:         RoleAdmin,
		EnterpriseID: &enterpriseID,
	})
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", account.Username).Msg("admin logged in")
	return token, account, nil
}

// CandidateLogin verifies an access code and email pair, activates the
// session and returns a signed candidate token. A wrong code, wrong email,
// reused session or expired session all return ErrInvalidCredential so the
// caller learns nothing about which check failed.
func (s *AuthService) CandidateLogin(ctx context.Context, req model.CandidateLoginRequest) (string, *model.TestSession, error) {
	code := strings.ToUpper(strings.TrimSpace(req.AccessCode))

	session, err := s.sessions.GetByAccessCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(code))
			return "", nil, ErrInvalidCredential
		}
		return "", nil, err
	}

	if subtle.ConstantTimeCompare([]byte(session.CandidateEmail), []byte(req.Email)) != 1 {
		return "", nil, ErrInvalidCredential
	}

	// An access code activates exactly once. A candidate who loses their
	// connection resumes with the issued token, not by logging in again.
	if session.IsUsed {
		return "", nil, ErrInvalidCredential
	}
	// The sweeper may have force-finished a never-used session.
	if session.Status == model.SessionStatusFinished {
		return "", nil, ErrInvalidCredential
	}
	if session.ExpiresAt != nil && session.ExpiresAt.Before(time.Now()) {
		return "", nil, ErrInvalidCredential
	}

	activated, err := s.sessions.Activate(ctx, session.ID)
	if err != nil {
		return "", nil, err
	}
	if !activated {
		// Lost the race to another login with the same code.
		return "", nil, ErrInvalidCredential
	}
	session.IsUsed = true
	session.Status = model.SessionStatusActive

	token, err := s.tokens.Issue(Principal{
		SubjectID: session.ID,
		Role:      RoleCandidate,
	})
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Int64("session_id", session.ID).Msg("candidate logged in")
	return token, session, nil
}
