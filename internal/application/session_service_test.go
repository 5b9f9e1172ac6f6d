package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/t2-user-service/internal/application"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/memory"
	"github.com/oksasatya/t2-user-service/pkg/helpers"
)

func newSessionService(t *testing.T) (*application.SessionService, *helpers.JWTManager, string) {
	t.Helper()
	r := memory.NewUserRepository()
	u := seedUser(t, r, "johndoe@example.com", "16543219076")
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	return application.NewSessionService(r, fakeHash{}, jwt, nil, nil), jwt, u.ID
}

func TestSessionService_Login(t *testing.T) {
	svc, jwt, userID := newSessionService(t)

	u, pair, err := svc.Login(context.Background(), "johndoe@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)

	claims, err := jwt.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.NotEmpty(t, claims.SessionID)
	assert.True(t, pair.RefreshTokenExpiry.After(pair.AccessTokenExpiry))
}

func TestSessionService_Login_InvalidCredentials(t *testing.T) {
	svc, _, _ := newSessionService(t)

	_, _, err := svc.Login(context.Background(), "johndoe@example.com", "wrong")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "123456")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)
}

func TestSessionService_Refresh(t *testing.T) {
	svc, jwt, userID := newSessionService(t)
	ctx := context.Background()

	_, pair, err := svc.Login(ctx, "johndoe@example.com", "123456")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	claims, err := jwt.ParseRefreshToken(next.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)

	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)
	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)
}

func TestSessionService_LogoutWithoutRedis(t *testing.T) {
	svc, _, userID := newSessionService(t)
	assert.NoError(t, svc.Logout(context.Background(), userID))
}
