package application

import (
	"context"
	"time"

	"github.com/oksasatya/t2-user-service/internal/domain/entity"
)

// EmailPublisher enqueues email jobs; *helpers.RabbitPublisher satisfies it.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserIndexer keeps a search index of users in sync.
type UserIndexer interface {
	Index(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	SearchIDs(ctx context.Context, q string, size int) ([]string, error)
}

// TokenStore keeps one-time tokens. Take consumes the token and returns
// "" when it does not exist or has expired.
type TokenStore interface {
	Put(ctx context.Context, token, userID string, ttl time.Duration) error
	Take(ctx context.Context, token string) (string, error)
}
