package hash

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/t2-user-service/internal/domain/provider"
)

// BCrypt hashes passwords with bcrypt at the configured cost.
type BCrypt struct {
	Cost int
}

func NewBCrypt(cost int) *BCrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BCrypt{Cost: cost}
}

func (b *BCrypt) GenerateHash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), b.Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b *BCrypt) Compare(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

var _ provider.HashProvider = (*BCrypt)(nil)
