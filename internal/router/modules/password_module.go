package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/t2-user-service/internal/interface/http"
	"github.com/oksasatya/t2-user-service/internal/interface/middleware"
)

type PasswordModule struct {
	Handler *handlers.PasswordHandler
	RDB     *redis.Client
}

func NewPasswordModule(h *handlers.PasswordHandler, rdb *redis.Client) *PasswordModule {
	return &PasswordModule{Handler: h, RDB: rdb}
}

func (m *PasswordModule) Register(rg *gin.RouterGroup) {
	forgotLimiter := middleware.RateLimit(m.RDB, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(m.RDB, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/password/forgot", forgotLimiter, m.Handler.Forgot)
	rg.POST("/password/reset", resetLimiter, m.Handler.Reset)
}
