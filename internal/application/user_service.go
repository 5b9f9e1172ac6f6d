package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/t2-user-service/internal/domain/entity"
	"github.com/oksasatya/t2-user-service/internal/domain/provider"
	repo "github.com/oksasatya/t2-user-service/internal/domain/repository"
	"github.com/oksasatya/t2-user-service/pkg/document"
	"github.com/oksasatya/t2-user-service/pkg/helpers"
)

// UserService is the administrative user-management service.
type UserService struct {
	Repo     repo.UserRepository
	Hash     provider.HashProvider
	Indexer  UserIndexer // optional
	Notifier *Notifier   // optional
	Logger   *logrus.Logger
}

func NewUserService(r repo.UserRepository, hash provider.HashProvider, indexer UserIndexer, notifier *Notifier, logger *logrus.Logger) *UserService {
	return &UserService{
		Repo:     r,
		Hash:     hash,
		Indexer:  indexer,
		Notifier: notifier,
		Logger:   helpers.OrNop(logger),
	}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Phone    string
	CPF      string
	Password string
}

type UpdateUserInput struct {
	Name  string
	Phone string
	CPF   string
}

// ensureEmailFree fails with ErrDuplicateEmail when email belongs to a user
// other than ownerID.
func ensureEmailFree(ctx context.Context, r repo.UserRepository, email, ownerID string) error {
	existing, err := r.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != ownerID:
		return ErrDuplicateEmail
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if err := ensureEmailFree(ctx, s.Repo, in.Email, ""); err != nil {
		return nil, err
	}
	if !document.ValidateCPF(in.CPF) {
		return nil, ErrInvalidCPF
	}

	hashed, err := s.Hash.GenerateHash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    document.NormalizePhone(in.Phone),
		CPF:      document.NormalizeCPF(in.CPF),
		Password: hashed,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, repoErr(err)
	}

	s.index(ctx, u)
	s.Notifier.Welcome(ctx, u)
	return u, nil
}

// Update edits another user's name, phone and CPF. Email and password are
// only changed through the profile.
func (s *UserService) Update(ctx context.Context, actingUserID, targetID string, in UpdateUserInput) (*entity.User, error) {
	if actingUserID == targetID {
		return nil, ErrSelfEditForbidden
	}

	u, err := s.Repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, repoErr(err)
	}
	if !document.ValidateCPF(in.CPF) {
		return nil, ErrInvalidCPF
	}

	u.Name = in.Name
	u.Phone = document.NormalizePhone(in.Phone)
	u.CPF = document.NormalizeCPF(in.CPF)
	if err := s.Repo.Save(ctx, u); err != nil {
		return nil, repoErr(err)
	}

	s.index(ctx, u)
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, actingUserID, targetID string) error {
	if actingUserID == targetID {
		return ErrSelfDeleteForbidden
	}

	if _, err := s.Repo.FindByID(ctx, targetID); err != nil {
		return repoErr(err)
	}
	if err := s.Repo.Delete(ctx, targetID); err != nil {
		return repoErr(err)
	}

	if s.Indexer != nil {
		if err := s.Indexer.Delete(ctx, targetID); err != nil {
			s.Logger.WithError(err).WithField("user_id", targetID).Warn("search index delete failed")
		}
	}
	return nil
}

// FindAll returns one page of users and the total number of users.
func (s *UserService) FindAll(ctx context.Context, page, linesPerPage int) ([]*entity.User, int, error) {
	page, linesPerPage = NormalizePaging(page, linesPerPage)
	return s.Repo.FindAll(ctx, page, linesPerPage)
}

// List is FindAll wrapped in the page envelope.
func (s *UserService) List(ctx context.Context, page, linesPerPage int) (Page[*entity.User], error) {
	page, linesPerPage = NormalizePaging(page, linesPerPage)
	items, total, err := s.Repo.FindAll(ctx, page, linesPerPage)
	if err != nil {
		return Page[*entity.User]{}, err
	}
	return NewPage(items, page, linesPerPage, total), nil
}

// Search runs a full-text query against the search index and loads the
// matching users. Hits for users deleted since indexing are skipped.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]*entity.User, error) {
	if s.Indexer == nil {
		return []*entity.User{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	ids, err := s.Indexer.SearchIDs(ctx, q, size)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.Repo.FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *UserService) index(ctx context.Context, u *entity.User) {
	indexUser(ctx, s.Indexer, s.Logger, u)
}

// indexUser is best-effort and bounded to 3s.
func indexUser(ctx context.Context, ix UserIndexer, logger *logrus.Logger, u *entity.User) {
	if ix == nil {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := ix.Index(c, u); err != nil {
		logger.WithError(err).WithField("user_id", u.ID).Warn("search index failed")
	}
}
