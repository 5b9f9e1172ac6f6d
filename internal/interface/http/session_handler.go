package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/t2-user-service/internal/application"
	"github.com/oksasatya/t2-user-service/internal/interface/middleware"
	"github.com/oksasatya/t2-user-service/pkg/helpers"
	"github.com/oksasatya/t2-user-service/pkg/response"
	"github.com/oksasatya/t2-user-service/pkg/validation"
)

type SessionHandler struct {
	Svc     *application.SessionService
	URLs    AvatarURLs
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewSessionHandler(svc *application.SessionService, urls AvatarURLs, cookieDomain string, cookieSecure bool, logger *logrus.Logger) *SessionHandler {
	return &SessionHandler{Svc: svc, URLs: urls, Cookies: helpers.NewCookie(cookieDomain, cookieSecure), Logger: helpers.OrNop(logger)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	User         UserResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
}

func expiries(pair application.TokenPair) map[string]time.Time {
	return map[string]time.Time{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry}
}

// Create - POST /api/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, sessionResponse{
		User:         toUserResponse(h.URLs, u),
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "login successful", expiries(pair))
}

// Refresh - POST /api/sessions/refresh; the token comes from the cookie or the body.
func (h *SessionHandler) Refresh(c *gin.Context) {
	refresh, _ := c.Cookie(helpers.RefreshTokenCookie)
	if refresh == "" {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.ShouldBindJSON(&req)
		refresh = req.RefreshToken
	}
	if refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"token": pair.AccessToken, "refresh_token": pair.RefreshToken}, "token refreshed", expiries(pair))
}

// Delete - DELETE /api/sessions
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), c.GetString(middleware.CtxUserIDKey)); err != nil {
		h.Logger.WithError(err).Warn("session delete failed")
	}
	h.Cookies.Clear(c)
	response.NoContent(c)
}
