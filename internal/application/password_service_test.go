package application_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/t2-user-service/internal/application"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/memory"
)

func TestPasswordService_ForgotAndReset(t *testing.T) {
	r := memory.NewUserRepository()
	u := seedUser(t, r, "johndoe@example.com", "16543219076")
	svc := application.NewPasswordService(r, fakeHash{}, newMemTokens(), nil, "http://app.local/reset-password", time.Minute, nil)
	ctx := context.Background()

	link, err := svc.Forgot(ctx, "johndoe@example.com")
	require.NoError(t, err)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/reset-password", parsed.Path)
	token := parsed.Query().Get("token")
	require.NotEmpty(t, token)

	require.NoError(t, svc.Reset(ctx, token, "newpass"))
	stored, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:newpass", stored.Password)

	assert.ErrorIs(t, svc.Reset(ctx, token, "again"), application.ErrInvalidResetToken)
}

func TestPasswordService_UnknownEmail(t *testing.T) {
	svc := application.NewPasswordService(memory.NewUserRepository(), fakeHash{}, newMemTokens(), nil, "http://app.local/reset", time.Minute, nil)

	link, err := svc.Forgot(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, link)
}

func TestPasswordService_Unavailable(t *testing.T) {
	svc := application.NewPasswordService(memory.NewUserRepository(), fakeHash{}, nil, nil, "http://app.local/reset", 0, nil)

	_, err := svc.Forgot(context.Background(), "johndoe@example.com")
	assert.ErrorIs(t, err, application.ErrResetUnavailable)
	assert.ErrorIs(t, svc.Reset(context.Background(), "t", "p"), application.ErrResetUnavailable)
	assert.Equal(t, 30*time.Minute, svc.TokenTTL)
}
