// Package memory keeps users in process memory. It backs DB_DRIVER=memory
// and the service tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/t2-user-service/internal/domain/entity"
	"github.com/oksasatya/t2-user-service/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	users []*entity.User // insertion order
	now   func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{now: time.Now}
}

func (r *UserRepository) indexOf(id string) int {
	for i, u := range r.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.users[i].Clone(), nil
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, repository.ErrNotFound
}

// FindAll skips page*linesPerPage users and returns at most linesPerPage of them.
func (r *UserRepository) FindAll(_ context.Context, page, linesPerPage int) ([]*entity.User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.users)
	out := make([]*entity.User, 0, linesPerPage)
	start := page * linesPerPage
	if page < 0 || linesPerPage <= 0 || start >= total {
		return out, total, nil
	}
	end := start + linesPerPage
	if end > total {
		end = total
	}
	for _, u := range r.users[start:end] {
		out = append(out, u.Clone())
	}
	return out, total, nil
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	now := r.now()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users = append(r.users, u.Clone())
	return nil
}

// Save replaces the stored user with the same ID, or appends it when absent.
func (r *UserRepository) Save(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.ID != u.ID && existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.UpdatedAt = r.now()
	if i := r.indexOf(u.ID); i >= 0 {
		r.users[i] = u.Clone()
		return nil
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = u.UpdatedAt
	}
	r.users = append(r.users, u.Clone())
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
