package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hireproof/hireproof-backend/internal/middleware"
	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/hireproof/hireproof-backend/internal/response"
	"github.com/hireproof/hireproof-backend/internal/service"
	"github.com/hireproof/hireproof-backend/internal/validator"
)

// TestHandler handles the admin authoring endpoints.
type TestHandler struct {
	testService *service.TestService
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(testService *service.TestService) *TestHandler {
	return &TestHandler{testService: testService}
}

// CreateQuestion godoc
// POST /api/v1/admin/questions
func (h *TestHandler) CreateQuestion(c *gin.Context) {
	enterpriseID, ok := adminEnterprise(c)
	if !ok {
		return
	}

	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.testService.CreateQuestion(c.Request.Context(), enterpriseID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuestion) {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidQuestion,
				map[string]string{"detail": err.Error()})
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, question)
}

// ListQuestions godoc
// GET /api/v1/admin/questions
func (h *TestHandler) ListQuestions(c *gin.Context) {
	enterpriseID, ok := adminEnterprise(c)
	if !ok {
		return
	}

	questions, err := h.testService.ListQuestions(c.Request.Context(), enterpriseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// CreateTest godoc
// POST /api/v1/admin/tests
func (h *TestHandler) CreateTest(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	enterpriseID, ok := adminEnterprise(c)
	if !ok {
		return
	}

	var req model.CreateTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	test, err := h.testService.CreateTest(c.Request.Context(), enterpriseID, principal.SubjectID, req)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, test)
}

// ListTests godoc
// GET /api/v1/admin/tests
func (h *TestHandler) ListTests(c *gin.Context) {
	enterpriseID, ok := adminEnterprise(c)
	if !ok {
		return
	}

	tests, err := h.testService.ListTests(c.Request.Context(), enterpriseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tests": tests})
}

// ListTestQuestions godoc
// GET /api/v1/admin/tests/:test_id/questions
func (h *TestHandler) ListTestQuestions(c *gin.Context) {
	enterpriseID, ok := adminEnterprise(c)
	if !ok {
		return
	}
	testID, ok := paramInt(c, "test_id")
	if !ok {
		return
	}

	questions, err := h.testService.ListTestQuestions(c.Request.Context(), enterpriseID, testID)
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// InviteCandidates godoc
// POST /api/v1/admin/tests/:test_id/invitations
func (h *TestHandler) InviteCandidates(c *gin.Context) {
	enterpriseID, ok := adminEnterprise(c)
	if !ok {
		return
	}
	testID, ok := paramInt(c, "test_id")
	if !ok {
		return
	}

	var req model.InviteCandidatesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sessions, err := h.testService.InviteCandidates(c.Request.Context(), enterpriseID, testID, req)
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	invitations := make([]gin.H, 0, len(sessions))
	for _, s := range sessions {
		invitations = append(invitations, gin.H{
			"session_id":      s.ID,
			"candidate_email": s.CandidateEmail,
			"access_code":     s.AccessCode,
			"expires_at":      s.ExpiresAt,
		})
	}

	response.Success(c, http.StatusCreated, gin.H{"invitations": invitations})
}

// ListSessions godoc
// GET /api/v1/admin/tests/:test_id/sessions
func (h *TestHandler) ListSessions(c *gin.Context) {
	enterpriseID, ok := adminEnterprise(c)
	if !ok {
		return
	}
	testID, ok := paramInt(c, "test_id")
	if !ok {
		return
	}

	sessions, err := h.testService.ListSessions(c.Request.Context(), enterpriseID, testID)
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sessions": sessions})
}

// adminEnterprise extracts the tenant of the authenticated admin. Admin
// tokens always carry one; a token without it is rejected.
func adminEnterprise(c *gin.Context) (uuid.UUID, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return uuid.Nil, false
	}
	if principal.EnterpriseID == nil {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return uuid.Nil, false
	}
	return *principal.EnterpriseID, true
}

func paramInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return v, true
}
