package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/t2-user-service/internal/interface/http"
	"github.com/oksasatya/t2-user-service/internal/interface/middleware"
)

// UserModule wires the user management routes.
// Public: POST /api/users
// Protected: GET /api/users, GET /api/users/search, PATCH /api/users/avatar,
// PUT /api/users/:id, DELETE /api/users/:id
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
	RDB     *redis.Client
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Auth: auth, RDB: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIPAndPath(), nil) // 10 req/min per IP
	rg.POST("/users", signupLimiter, m.Handler.Create)

	auth := rg.Group("/users")
	auth.Use(m.Auth)
	auth.Use(middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Handler.List)
		auth.GET("/search", m.Handler.Search)
		auth.PATCH("/avatar", m.Handler.UpdateAvatar)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
