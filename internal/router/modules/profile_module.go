package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/t2-user-service/internal/interface/http"
	"github.com/oksasatya/t2-user-service/internal/interface/middleware"
)

type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Auth    gin.HandlerFunc
	RDB     *redis.Client
}

func NewProfileModule(h *handlers.ProfileHandler, auth gin.HandlerFunc, rdb *redis.Client) *ProfileModule {
	return &ProfileModule{Handler: h, Auth: auth, RDB: rdb}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/profile")
	auth.Use(m.Auth, middleware.RateLimit(m.RDB, 60, time.Minute, middleware.KeyByUserID(), nil))
	auth.GET("", m.Handler.Show)
	auth.PUT("", m.Handler.Update)
}
