package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hireproof/hireproof-backend/internal/service"
)

func newAuthRouter(tokens *service.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireAdmin(tokens), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/candidate", RequireCandidate(tokens), func(c *gin.Context) {
		principal, _ := GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"subject": principal.SubjectID})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	enterpriseID := uuid.New()

	adminToken, err := tokens.Issue(service.Principal{SubjectID: 1, Role: service.RoleAdmin, EnterpriseID: &enterpriseID})
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}
	candidateToken, err := tokens.Issue(service.Principal{SubjectID: 5, Role: service.RoleCandidate})
	if err != nil {
		t.Fatalf("issue candidate token: %v", err)
	}

	r := newAuthRouter(tokens)

	tests := []struct {
		name       string
		path       string
		bearer     string
		cookie     string
		wantStatus int
	}{
		{"no token", "/admin", "", "", http.StatusUnauthorized},
		{"garbage bearer", "/admin", "garbage", "", http.StatusUnauthorized},
		{"admin bearer on admin route", "/admin", adminToken, "", http.StatusOK},
		{"admin cookie on admin route", "/admin", "", adminToken, http.StatusOK},
		{"candidate token on admin route", "/admin", candidateToken, "", http.StatusForbidden},
		{"admin token on candidate route", "/candidate", adminToken, "", http.StatusForbidden},
		{"candidate token on candidate route", "/candidate", candidateToken, "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tt.cookie})
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestCookieTakesPrecedenceOverBearer(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	candidateToken, err := tokens.Issue(service.Principal{SubjectID: 5, Role: service.RoleCandidate})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	r := newAuthRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/candidate", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: candidateToken})
	req.Header.Set("Authorization", "Bearer not-a-token")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (cookie should win)", w.Code)
	}
}
