package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	enterpriseID := uuid.New()

	token, err := svc.Issue(Principal{
		SubjectID:    42,
		Role:         RoleAdmin,
		EnterpriseID: &enterpriseID,
	})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	principal, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if principal.SubjectID != 42 {
		t.Errorf("SubjectID = %d, want 42", principal.SubjectID)
	}
	if principal.Role != RoleAdmin {
		t.Errorf("Role = %q, want admin", principal.Role)
	}
	if principal.EnterpriseID == nil || *principal.EnterpriseID != enterpriseID {
		t.Errorf("EnterpriseID = %v, want %v", principal.EnterpriseID, enterpriseID)
	}
}

func TestTokenWithoutEnterprise(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue(Principal{SubjectID: 7, Role: RoleCandidate})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	principal, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if principal.EnterpriseID != nil {
		t.Errorf("EnterpriseID = %v, want nil", principal.EnterpriseID)
	}
	if principal.Role != RoleCandidate {
		t.Errorf("Role = %q, want candidate", principal.Role)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(Principal{SubjectID: 1, Role: RoleCandidate})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Verify(token); err != ErrTokenInvalid {
		t.Errorf("Verify err = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(Principal{SubjectID: 1, Role: RoleCandidate})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Verify(token); err != ErrTokenInvalid {
		t.Errorf("Verify err = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(token); err != ErrTokenInvalid {
			t.Errorf("Verify(%q) err = %v, want ErrTokenInvalid", token, err)
		}
	}
}
