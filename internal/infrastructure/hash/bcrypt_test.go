package hash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/t2-user-service/internal/infrastructure/hash"
)

func TestBCrypt(t *testing.T) {
	h := hash.NewBCrypt(bcrypt.MinCost)

	hashed, err := h.GenerateHash("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hashed)

	assert.True(t, h.Compare("123456", hashed))
	assert.False(t, h.Compare("1234567", hashed))
	assert.False(t, h.Compare("123456", "not-a-hash"))
}

func TestNewBCrypt_FallsBackToDefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, hash.NewBCrypt(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, hash.NewBCrypt(99).Cost)
}
