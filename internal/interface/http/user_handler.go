package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/t2-user-service/internal/application"
	"github.com/oksasatya/t2-user-service/internal/domain/entity"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/imaging"
	"github.com/oksasatya/t2-user-service/internal/interface/middleware"
	"github.com/oksasatya/t2-user-service/pkg/helpers"
	"github.com/oksasatya/t2-user-service/pkg/response"
	"github.com/oksasatya/t2-user-service/pkg/validation"
)

// UploadConfig bounds avatar uploads and says where they are staged.
type UploadConfig struct {
	TmpFolder    string
	MaxBytes     int64
	MaxDimension int
}

var avatarExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}

type UserHandler struct {
	Users   *application.UserService
	Avatars *application.AvatarService
	URLs    AvatarURLs
	Upload  UploadConfig
	Logger  *logrus.Logger
}

func NewUserHandler(users *application.UserService, avatars *application.AvatarService, urls AvatarURLs, upload UploadConfig, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Avatars: avatars, URLs: urls, Upload: upload, Logger: helpers.OrNop(logger)}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,brphone"`
	CPF      string `json:"cpf" binding:"required,cpf"`
	Password string `json:"password" binding:"required,pwd"`
}

type updateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required,brphone"`
	CPF   string `json:"cpf" binding:"required,cpf"`
}

type listUsersQuery struct {
	Page         int `form:"page" binding:"gte=0"`
	LinesPerPage int `form:"linesPerPage" binding:"gte=0"`
}

type searchQuery struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size" binding:"gte=0,lte=50"`
}

// Create - POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.Create(c.Request.Context(), application.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		CPF:      req.CPF,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserResponse(h.URLs, u), "user created", nil)
}

// List - GET /api/users?page=0&linesPerPage=5
func (h *UserHandler) List(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	page, err := h.Users.List(c.Request.Context(), q.Page, q.LinesPerPage)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := application.MapPage(page, func(u *entity.User) UserResponse { return toUserResponse(h.URLs, u) })
	response.Success(c, http.StatusOK, out, "users", nil)
}

// Update - PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.Update(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"), application.UpdateUserInput{
		Name:  req.Name,
		Phone: req.Phone,
		CPF:   req.CPF,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(h.URLs, u), "user updated", nil)
}

// Delete - DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// Search - GET /api/users/search?q=john&size=10
func (h *UserHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	users, err := h.Users.Search(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponses(h.URLs, users), "search results", nil)
}

// UpdateAvatar - PATCH /api/users/avatar (multipart field "avatar")
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"avatar": "is required"})
		return
	}
	if h.Upload.MaxBytes > 0 && fh.Size > h.Upload.MaxBytes {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "avatar too large", nil)
		return
	}
	orig := filepath.Base(fh.Filename)
	if !avatarExts[strings.ToLower(filepath.Ext(orig))] {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"avatar": "must be a jpg, png or gif image"})
		return
	}

	name, err := uploadName(orig)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	staged := filepath.Join(h.Upload.TmpFolder, name)
	if err := c.SaveUploadedFile(fh, staged); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if err := imaging.FitAvatar(staged, h.Upload.MaxDimension); err != nil {
		_ = os.Remove(staged)
		writeError(c, h.Logger, err)
		return
	}

	u, err := h.Avatars.UpdateAvatar(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), name)
	if err != nil {
		_ = os.Remove(staged)
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(h.URLs, u), "avatar updated", nil)
}

// uploadName prefixes the original file name with 10 random bytes in hex.
func uploadName(orig string) (string, error) {
	b := make([]byte, 10)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b) + "-" + orig, nil
}
