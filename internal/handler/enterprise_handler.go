package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/hireproof/hireproof-backend/internal/response"
	"github.com/hireproof/hireproof-backend/internal/service"
	"github.com/hireproof/hireproof-backend/internal/validator"
)

// EnterpriseHandler handles tenant registration.
type EnterpriseHandler struct {
	enterpriseService *service.EnterpriseService
}

// NewEnterpriseHandler creates a new EnterpriseHandler.
func NewEnterpriseHandler(enterpriseService *service.EnterpriseService) *EnterpriseHandler {
	return &EnterpriseHandler{enterpriseService: enterpriseService}
}

// Register godoc
// POST /api/v1/enterprises
// Creates an enterprise together with its first admin account.
func (h *EnterpriseHandler) Register(c *gin.Context) {
	var req model.RegisterEnterpriseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enterprise, admin, err := h.enterpriseService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEnterpriseExists) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"enterprise": enterprise,
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
		},
	})
}
