package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/t2-user-service/internal/application"
	"github.com/oksasatya/t2-user-service/pkg/helpers"
	"github.com/oksasatya/t2-user-service/pkg/response"
	"github.com/oksasatya/t2-user-service/pkg/validation"
)

type PasswordHandler struct {
	Svc    *application.PasswordService
	Logger *logrus.Logger
}

func NewPasswordHandler(svc *application.PasswordService, logger *logrus.Logger) *PasswordHandler {
	return &PasswordHandler{Svc: svc, Logger: helpers.OrNop(logger)}
}

// Forgot - POST /api/password/forgot {email}
// Always answers 202 for a well-formed request so emails cannot be enumerated.
func (h *PasswordHandler) Forgot(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if _, err := h.Svc.Forgot(c.Request.Context(), req.Email); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"sent": true}, "if the email exists a reset link was sent", nil)
}

// Reset - POST /api/password/reset {token, password, passwordConfirmation}
func (h *PasswordHandler) Reset(c *gin.Context) {
	var req struct {
		Token                string `json:"token" binding:"required"`
		Password             string `json:"password" binding:"required,pwd"`
		PasswordConfirmation string `json:"passwordConfirmation" binding:"required,eqfield=Password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Reset(c.Request.Context(), req.Token, req.Password); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reset": true}, "password updated", nil)
}
