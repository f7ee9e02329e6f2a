package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminStore struct {
	accounts map[string]*model.AdminAccount
}

func (s *fakeAdminStore) GetByUsername(_ context.Context, username string) (*model.AdminAccount, error) {
	account, ok := s.accounts[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

type fakeSessionAuthStore struct {
	byCode map[string]*model.TestSession
}

func (s *fakeSessionAuthStore) GetByAccessCode(_ context.Context, code string) (*model.TestSession, error) {
	session, ok := s.byCode[code]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *session
	return &copied, nil
}

func (s *fakeSessionAuthStore) Activate(_ context.Context, id int64) (bool, error) {
	for _, session := range s.byCode {
		if session.ID == id {
			if session.IsUsed {
				return false, nil
			}
			session.IsUsed = true
			session.Status = model.SessionStatusActive
			return true, nil
		}
	}
	return false, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeAdminStore, *fakeSessionAuthStore) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	enterpriseID := uuid.New()

	admins := &fakeAdminStore{accounts: map[string]*model.AdminAccount{
		"alice": {ID: 1, EnterpriseID: enterpriseID, Username: "alice", PasswordHash: string(hash)},
	}}

	future := time.Now().Add(time.Hour)
	sessions := &fakeSessionAuthStore{byCode: map[string]*model.TestSession{
		"ABCD12": {
			ID:             5,
			TestID:         1,
			CandidateEmail: "candidate@example.com",
			AccessCode:     "ABCD12",
			ExpiresAt:      &future,
			Status:         model.SessionStatusPlanned,
		},
	}}

	tokens := NewTokenService("test-secret", time.Hour)
	return NewAuthService(admins, sessions, tokens), admins, sessions
}

func TestAdminLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	token, admin, err := svc.AdminLogin(context.Background(), model.AdminLoginRequest{
		Username: "alice",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if token == "" {
		t.Error("empty token")
	}
	if admin.Username != "alice" {
		t.Errorf("Username = %q, want alice", admin.Username)
	}
}

func TestAdminLoginFailures(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "mallory", "correct-horse"},
		{"wrong password", "alice", "wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.AdminLogin(context.Background(), model.AdminLoginRequest{
				Username: tt.username,
				Password: tt.password,
			})
			if !errors.Is(err, ErrInvalidCredential) {
				t.Errorf("err = %v, want ErrInvalidCredential", err)
			}
		})
	}
}

func TestCandidateLoginActivatesSession(t *testing.T) {
	svc, _, sessions := newAuthFixture(t)

	token, session, err := svc.CandidateLogin(context.Background(), model.CandidateLoginRequest{
		AccessCode: "abcd12", // lowercase input is normalized
		Email:      "candidate@example.com",
	})
	if err != nil {
		t.Fatalf("CandidateLogin: %v", err)
	}
	if token == "" {
		t.Error("empty token")
	}
	if session.Status != model.SessionStatusActive {
		t.Errorf("Status = %v, want ACTIVE", session.Status)
	}
	if !sessions.byCode["ABCD12"].IsUsed {
		t.Error("stored session not marked used")
	}
}

func TestCandidateLoginSingleUse(t *testing.T) {
	// The code burns on first use; a reconnecting candidate presents the
	// issued token instead of logging in again.
	svc, _, _ := newAuthFixture(t)

	req := model.CandidateLoginRequest{AccessCode: "ABCD12", Email: "candidate@example.com"}
	if _, _, err := svc.CandidateLogin(context.Background(), req); err != nil {
		t.Fatalf("first login: %v", err)
	}
	if _, _, err := svc.CandidateLogin(context.Background(), req); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("second login err = %v, want ErrInvalidCredential", err)
	}
}

func TestCandidateLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*fakeSessionAuthStore)
		code   string
		email  string
	}{
		{"unknown code", nil, "ZZZZ99", "candidate@example.com"},
		{"wrong email", nil, "ABCD12", "other@example.com"},
		{"email case mismatch", nil, "ABCD12", "Candidate@Example.com"},
		{
			"expired session",
			func(s *fakeSessionAuthStore) {
				past := time.Now().Add(-time.Minute)
				s.byCode["ABCD12"].ExpiresAt = &past
			},
			"ABCD12", "candidate@example.com",
		},
		{
			"finished session",
			func(s *fakeSessionAuthStore) {
				s.byCode["ABCD12"].Status = model.SessionStatusFinished
			},
			"ABCD12", "candidate@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, sessions := newAuthFixture(t)
			if tt.mutate != nil {
				tt.mutate(sessions)
			}

			_, _, err := svc.CandidateLogin(context.Background(), model.CandidateLoginRequest{
				AccessCode: tt.code,
				Email:      tt.email,
			})
			if !errors.Is(err, ErrInvalidCredential) {
				t.Errorf("err = %v, want ErrInvalidCredential", err)
			}
		})
	}
}
