// Package cache holds Redis-backed stores.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/t2-user-service/pkg/helpers"
)

const resetTokenPrefix = "user:reset:"

type resetToken struct {
	UserID   string    `json:"user_id"`
	IssuedAt time.Time `json:"issued_at"`
}

// TokenStore keeps password reset tokens in Redis until they are taken or expire.
type TokenStore struct {
	rdb *redis.Client
}

func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

func (s *TokenStore) Put(ctx context.Context, token, userID string, ttl time.Duration) error {
	return helpers.RedisSetJSON(ctx, s.rdb, resetTokenPrefix+token, resetToken{UserID: userID, IssuedAt: time.Now().UTC()}, ttl)
}

// Take returns the user id the token was issued for and deletes it.
func (s *TokenStore) Take(ctx context.Context, token string) (string, error) {
	var rt resetToken
	ok, err := helpers.RedisTakeJSON(ctx, s.rdb, resetTokenPrefix+token, &rt)
	if err != nil || !ok {
		return "", err
	}
	return rt.UserID, nil
}
