package application_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/t2-user-service/internal/domain/entity"
)

// fakeHash prefixes the plain text; enough to tell hashed from plain values.
type fakeHash struct{}

func (fakeHash) GenerateHash(plain string) (string, error) { return "hashed:" + plain, nil }
func (fakeHash) Compare(plain, hashed string) bool        { return "hashed:"+plain == hashed }

type mockStorage struct{ mock.Mock }

func (m *mockStorage) SaveFile(ctx context.Context, file string) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) DeleteFile(ctx context.Context, file string) error {
	return m.Called(ctx, file).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishJSON(ctx context.Context, body any) error {
	return m.Called(ctx, body).Error(0)
}

type mockIndexer struct{ mock.Mock }

func (m *mockIndexer) Index(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockIndexer) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockIndexer) SearchIDs(ctx context.Context, q string, size int) ([]string, error) {
	args := m.Called(ctx, q, size)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type memTokens struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemTokens() *memTokens { return &memTokens{m: map[string]string{}} }

func (s *memTokens) Put(_ context.Context, token, userID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[token] = userID
	return nil
}

func (s *memTokens) Take(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.m[token]
	delete(s.m, token)
	return id, nil
}
