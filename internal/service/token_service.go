package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role identifies which side of the product a token belongs to.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCandidate Role = "candidate"
)

// Principal is the authenticated identity carried by a verified token.
type Principal struct {
	SubjectID    int64
	Role         Role
	EnterpriseID *uuid.UUID
}

// Claims is the JWT payload for both admin and candidate tokens. Enterprise
// is the string "null" when the subject has no tenant.
type Claims struct {
	Role       Role   `json:"role"`
	Enterprise string `json:"enterprise"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenService issues and verifies signed session tokens.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), expiry: expiry}
}

// Issue signs a token for the principal, expiring after the configured
// lifetime.
func (s *TokenService) Issue(p Principal) (string, error) {
	now := time.Now()

	enterprise := "null"
	if p.EnterpriseID != nil {
		enterprise = p.EnterpriseID.String()
	}

	claims := Claims{
		Role:       p.Role,
		Enterprise: enterprise,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", p.SubjectID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string and returns its principal.
// Expired, malformed or wrongly signed tokens all return ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (*Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	var subjectID int64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &subjectID); err != nil {
		return nil, ErrTokenInvalid
	}

	p := &Principal{
		SubjectID: subjectID,
		Role:      claims.Role,
	}
	if claims.Enterprise != "" && claims.Enterprise != "null" {
		id, err := uuid.Parse(claims.Enterprise)
		if err != nil {
			return nil, ErrTokenInvalid
		}
		p.EnterpriseID = &id
	}

	return p, nil
}
