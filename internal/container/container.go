// Package container holds the components built once in main and shared by
// the router modules.
package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/t2-user-service/config"
	"github.com/oksasatya/t2-user-service/internal/application"
	"github.com/oksasatya/t2-user-service/internal/domain/provider"
	"github.com/oksasatya/t2-user-service/internal/domain/repository"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/storage"
	"github.com/oksasatya/t2-user-service/pkg/helpers"
)

// Container carries infrastructure into the router. Redis, Indexer,
// Publisher and Tokens are nil when their backend is not configured.
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
	Hash    provider.HashProvider
	Storage provider.StorageProvider
	URLs    storage.URLBuilder

	Redis     *redis.Client
	Indexer   application.UserIndexer
	Publisher application.EmailPublisher
	Tokens    application.TokenStore
}

// Services are the application services built from a Container.
type Services struct {
	Users    *application.UserService
	Profile  *application.ProfileService
	Avatars  *application.AvatarService
	Sessions *application.SessionService
	Password *application.PasswordService
}

func (c *Container) Services() Services {
	notifier := application.NewNotifier(c.Publisher, c.Config, c.Logger)
	return Services{
		Users:    application.NewUserService(c.Users, c.Hash, c.Indexer, notifier, c.Logger),
		Profile:  application.NewProfileService(c.Users, c.Hash, c.Indexer, notifier, c.Logger),
		Avatars:  application.NewAvatarService(c.Users, c.Storage, c.Indexer, c.Logger),
		Sessions: application.NewSessionService(c.Users, c.Hash, c.JWT, c.Redis, c.Logger),
		Password: application.NewPasswordService(c.Users, c.Hash, c.Tokens, notifier, c.Config.ResetPasswordURL, c.Config.ResetTokenTTL, c.Logger),
	}
}
