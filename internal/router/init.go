package router

import (
	"github.com/oksasatya/t2-user-service/internal/container"
	handlers "github.com/oksasatya/t2-user-service/internal/interface/http"
	"github.com/oksasatya/t2-user-service/internal/interface/middleware"
	"github.com/oksasatya/t2-user-service/internal/router/modules"
)

type Handlers struct {
	Users    *handlers.UserHandler
	Profile  *handlers.ProfileHandler
	Sessions *handlers.SessionHandler
	Password *handlers.PasswordHandler
}

func buildHandlers(c *container.Container) Handlers {
	svc := c.Services()
	cfg := c.Config
	upload := handlers.UploadConfig{
		TmpFolder:    cfg.TmpFolder,
		MaxBytes:     cfg.AvatarMaxBytes,
		MaxDimension: cfg.AvatarMaxDimension,
	}
	return Handlers{
		Users:    handlers.NewUserHandler(svc.Users, svc.Avatars, c.URLs, upload, c.Logger),
		Profile:  handlers.NewProfileHandler(svc.Profile, c.URLs, c.Logger),
		Sessions: handlers.NewSessionHandler(svc.Sessions, c.URLs, cfg.CookieDomain, cfg.CookieSecure, c.Logger),
		Password: handlers.NewPasswordHandler(svc.Password, c.Logger),
	}
}

// InitModules builds the handlers from c and registers every module.
// Call it once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	h := buildHandlers(c)
	auth := middleware.Auth(c.Redis, c.JWT)

	r.Add(modules.NewUserModule(h.Users, auth, c.Redis))
	r.Add(modules.NewProfileModule(h.Profile, auth, c.Redis))
	r.Add(modules.NewSessionModule(h.Sessions, auth, c.Redis))
	r.Add(modules.NewPasswordModule(h.Password, c.Redis))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
