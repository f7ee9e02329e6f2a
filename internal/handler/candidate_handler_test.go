package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hireproof/hireproof-backend/internal/service"
)

func TestFailSessionErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Every session precondition failure is a 400; only unexpected errors
	// surface as 500.
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"session not found", service.ErrSessionNotFound, http.StatusBadRequest},
		{"test not found", service.ErrTestNotFound, http.StatusBadRequest},
		{"session expired", service.ErrSessionExpired, http.StatusBadRequest},
		{"already submitted", service.ErrAlreadySubmitted, http.StatusBadRequest},
		{"session not active", service.ErrSessionNotActive, http.StatusBadRequest},
		{"results not ready", service.ErrResultsNotReady, http.StatusBadRequest},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			failSessionError(c, tt.err)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
