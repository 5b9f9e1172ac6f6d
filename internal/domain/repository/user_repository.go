package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/t2-user-service/internal/domain/entity"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when the store's unique email index rejects a write.
var ErrDuplicateEmail = errors.New("duplicate email")

// UserRepository defines the interface for user-related persistence.
// Implementations assign ID/CreatedAt/UpdatedAt on Create and refresh UpdatedAt on Save.
// FindAll orders users by creation time and returns the page plus the total count.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context, page, linesPerPage int) ([]*entity.User, int, error)
	Create(ctx context.Context, u *entity.User) error
	Save(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}
