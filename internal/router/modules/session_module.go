package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/t2-user-service/internal/interface/http"
	"github.com/oksasatya/t2-user-service/internal/interface/middleware"
)

// SessionModule wires login, token refresh and logout.
type SessionModule struct {
	Handler *handlers.SessionHandler
	Auth    gin.HandlerFunc
	RDB     *redis.Client
}

func NewSessionModule(h *handlers.SessionHandler, auth gin.HandlerFunc, rdb *redis.Client) *SessionModule {
	return &SessionModule{Handler: h, Auth: auth, RDB: rdb}
}

func (m *SessionModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIPAndPath(), nil)   // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(m.RDB, 60, time.Minute, middleware.KeyByIPAndPath(), nil) // 60 req/min per IP

	rg.POST("/sessions", loginLimiter, m.Handler.Create)
	rg.POST("/sessions/refresh", refreshLimiter, m.Handler.Refresh)
	rg.DELETE("/sessions", m.Auth, m.Handler.Delete)
}
