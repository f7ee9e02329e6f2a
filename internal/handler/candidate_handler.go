package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hireproof/hireproof-backend/internal/middleware"
	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/hireproof/hireproof-backend/internal/response"
	"github.com/hireproof/hireproof-backend/internal/service"
	"github.com/hireproof/hireproof-backend/internal/validator"
)

// CandidateHandler handles the candidate-facing test endpoints. The
// candidate's session id is the subject of their token, so no ids appear in
// the URLs.
type CandidateHandler struct {
	paperService      *service.PaperService
	submissionService *service.SubmissionService
}

// NewCandidateHandler creates a new CandidateHandler.
func NewCandidateHandler(paperService *service.PaperService, submissionService *service.SubmissionService) *CandidateHandler {
	return &CandidateHandler{
		paperService:      paperService,
		submissionService: submissionService,
	}
}

// GetPaper godoc
// GET /api/v1/candidate/paper
// Returns the question paper for the candidate's session, correct answers
// stripped.
func (h *CandidateHandler) GetPaper(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	paper, err := h.paperService.GetPaper(c.Request.Context(), principal.SubjectID)
	if err != nil {
		failSessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, paper)
}

// SubmitTest godoc
// POST /api/v1/candidate/submission
// Grades the submitted answer sheet, finalizes the session and returns the
// result.
func (h *CandidateHandler) SubmitTest(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.submissionService.SubmitTest(c.Request.Context(), principal.SubjectID, req)
	if err != nil {
		failSessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetResults godoc
// GET /api/v1/candidate/results
// Returns the aggregated result of the candidate's finished session.
func (h *CandidateHandler) GetResults(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	result, err := h.submissionService.GetResults(c.Request.Context(), principal.SubjectID)
	if err != nil {
		failSessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// failSessionError maps every session precondition failure to a 400. The
// candidate addresses their own session through the token, so there is no
// resource to 404 and no state worth distinguishing beyond the error code.
func failSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrTestNotFound):
		response.Fail(c, http.StatusBadRequest, response.ErrNotFound)
	case errors.Is(err, service.ErrSessionExpired):
		response.Fail(c, http.StatusBadRequest, response.ErrSessionExpired)
	case errors.Is(err, service.ErrAlreadySubmitted):
		response.Fail(c, http.StatusBadRequest, response.ErrAlreadySubmitted)
	case errors.Is(err, service.ErrSessionNotActive):
		response.Fail(c, http.StatusBadRequest, response.ErrSessionNotActive)
	case errors.Is(err, service.ErrResultsNotReady):
		response.Fail(c, http.StatusBadRequest, response.ErrResultsNotReady)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
