package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/t2-user-service/internal/domain/entity"
	"github.com/oksasatya/t2-user-service/internal/domain/provider"
	repo "github.com/oksasatya/t2-user-service/internal/domain/repository"
	"github.com/oksasatya/t2-user-service/pkg/document"
	"github.com/oksasatya/t2-user-service/pkg/helpers"
)

// ProfileService lets the authenticated user read and edit their own record.
type ProfileService struct {
	Repo     repo.UserRepository
	Hash     provider.HashProvider
	Indexer  UserIndexer
	Notifier *Notifier
	Logger   *logrus.Logger
}

func NewProfileService(r repo.UserRepository, hash provider.HashProvider, indexer UserIndexer, notifier *Notifier, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Repo: r, Hash: hash, Indexer: indexer, Notifier: notifier, Logger: helpers.OrNop(logger)}
}

type UpdateProfileInput struct {
	Name        string
	Email       string
	Phone       string
	CPF         string
	OldPassword string
	Password    string
}

// Show returns the user without the password hash.
func (s *ProfileService) Show(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return nil, repoErr(err)
	}
	return u.WithoutPassword(), nil
}

func (s *ProfileService) Update(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return nil, repoErr(err)
	}
	if err := ensureEmailFree(ctx, s.Repo, in.Email, u.ID); err != nil {
		return nil, err
	}
	if !document.ValidateCPF(in.CPF) {
		return nil, ErrInvalidCPF
	}

	changes := map[string]string{}
	if in.Password != "" {
		if in.OldPassword == "" {
			return nil, ErrMissingOldPassword
		}
		if !s.Hash.Compare(in.OldPassword, u.Password) {
			return nil, ErrWrongOldPassword
		}
		hashed, err := s.Hash.GenerateHash(in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hashed
		changes["password"] = "changed"
	}

	phone := document.NormalizePhone(in.Phone)
	cpf := document.NormalizeCPF(in.CPF)
	if u.Name != in.Name {
		changes["name"] = in.Name
	}
	if u.Email != in.Email {
		changes["email"] = in.Email
	}
	if u.Phone != phone {
		changes["phone"] = document.FormatPhone(phone)
	}
	if u.CPF != cpf {
		changes["cpf"] = document.FormatCPF(cpf)
	}

	u.Name = in.Name
	u.Email = in.Email
	u.Phone = phone
	u.CPF = cpf
	if err := s.Repo.Save(ctx, u); err != nil {
		return nil, repoErr(err)
	}

	indexUser(ctx, s.Indexer, s.Logger, u)
	s.Notifier.ProfileUpdated(ctx, u, changes)
	return u, nil
}
