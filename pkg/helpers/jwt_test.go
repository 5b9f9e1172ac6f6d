package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	access, aexp, err := m.GenerateAccessToken("user-1", "sid-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), aexp, 2*time.Second)

	claims, err := m.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sid-1", claims.SessionID)

	refresh, _, err := m.GenerateRefreshToken("user-1", "sid-1")
	require.NoError(t, err)
	_, err = m.ParseRefreshToken(refresh)
	require.NoError(t, err)
}

func TestJWTManager_RejectsWrongSecretAndExpiry(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)
	access, _, err := m.GenerateAccessToken("user-1", "sid-1")
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(access)
	assert.Error(t, err, "access token must not validate as refresh token")

	expired := NewJWTManager("access", "refresh", -time.Minute, time.Hour)
	old, _, err := expired.GenerateAccessToken("user-1", "sid-1")
	require.NoError(t, err)
	_, err = m.ParseAccessToken(old)
	assert.Error(t, err)
}
