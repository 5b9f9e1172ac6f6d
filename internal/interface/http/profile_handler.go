package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/t2-user-service/internal/application"
	"github.com/oksasatya/t2-user-service/internal/interface/middleware"
	"github.com/oksasatya/t2-user-service/pkg/helpers"
	"github.com/oksasatya/t2-user-service/pkg/response"
	"github.com/oksasatya/t2-user-service/pkg/validation"
)

type ProfileHandler struct {
	Svc    *application.ProfileService
	URLs   AvatarURLs
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, urls AvatarURLs, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, URLs: urls, Logger: helpers.OrNop(logger)}
}

type updateProfileRequest struct {
	Name                 string `json:"name" binding:"required"`
	Email                string `json:"email" binding:"required,email"`
	Phone                string `json:"phone" binding:"required,brphone"`
	CPF                  string `json:"cpf" binding:"required,cpf"`
	OldPassword          string `json:"oldPassword"`
	Password             string `json:"password" binding:"omitempty,pwd"`
	PasswordConfirmation string `json:"passwordConfirmation" binding:"eqfield=Password"`
}

// Show - GET /api/profile
func (h *ProfileHandler) Show(c *gin.Context) {
	u, err := h.Svc.Show(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(h.URLs, u), "profile", nil)
}

// Update - PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.UpdateProfileInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CPF:         req.CPF,
		OldPassword: req.OldPassword,
		Password:    req.Password,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(h.URLs, u), "profile updated", nil)
}
