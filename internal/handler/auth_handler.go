package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hireproof/hireproof-backend/internal/middleware"
	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/hireproof/hireproof-backend/internal/response"
	"github.com/hireproof/hireproof-backend/internal/service"
	"github.com/hireproof/hireproof-backend/internal/validator"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService  *service.AuthService
	paperService *service.PaperService
	tokenExpiry  time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, paperService *service.PaperService, tokenExpiry time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		paperService: paperService,
		tokenExpiry:  tokenExpiry,
	}
}

// AdminLogin godoc
// POST /api/v1/auth/admin/login
// Validates username + password and returns an admin JWT.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req model.AdminLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, admin, err := h.authService.AdminLogin(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredential) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredential)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	h.setTokenCookie(c, token)
	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{
			"id":            admin.ID,
			"username":      admin.Username,
			"enterprise_id": admin.EnterpriseID,
		},
	})
}

// CandidateLogin godoc
// POST /api/v1/auth/candidate/login
// Validates access code + email, activates the session and returns a
// candidate JWT.
func (h *AuthHandler) CandidateLogin(c *gin.Context) {
	var req model.CandidateLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, session, err := h.authService.CandidateLogin(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredential) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredential)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	h.setTokenCookie(c, token)
	payload := gin.H{
		"token": token,
		"session": gin.H{
			"id":         session.ID,
			"expires_at": session.ExpiresAt,
		},
	}

	// The access code is consumed at this point, so the token must go out
	// no matter what. The paper block is best effort; rendering it here
	// also warms the cache before the candidate fetches it.
	paper, err := h.paperService.GetPaper(c.Request.Context(), session.ID)
	if err != nil {
		log.Warn().Err(err).Int64("session_id", session.ID).Msg("paper render at login failed")
	} else {
		payload["test"] = gin.H{
			"id":               paper.TestID,
			"name":             paper.TestName,
			"total_questions":  paper.TotalQuestions,
			"duration_minutes": paper.DurationMinutes,
		}
	}

	response.Success(c, http.StatusOK, payload)
}

// Logout godoc
// POST /api/v1/auth/logout
// Clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, gin.H{})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookieName, token, int(h.tokenExpiry.Seconds()), "/", "", false, true)
}
