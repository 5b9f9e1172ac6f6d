package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/t2-user-service/internal/domain/entity"
	"github.com/oksasatya/t2-user-service/internal/domain/provider"
	repo "github.com/oksasatya/t2-user-service/internal/domain/repository"
	"github.com/oksasatya/t2-user-service/pkg/helpers"
)

type AvatarService struct {
	Repo    repo.UserRepository
	Storage provider.StorageProvider
	Indexer UserIndexer
	Logger  *logrus.Logger
}

func NewAvatarService(r repo.UserRepository, storage provider.StorageProvider, indexer UserIndexer, logger *logrus.Logger) *AvatarService {
	return &AvatarService{Repo: r, Storage: storage, Indexer: indexer, Logger: helpers.OrNop(logger)}
}

// UpdateAvatar replaces the user's avatar with the staged file avatarFile.
// The new file is stored before the previous one is removed, so a failed
// upload leaves the current avatar in place. An already-missing previous
// file is ignored.
func (s *AvatarService) UpdateAvatar(ctx context.Context, userID, avatarFile string) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return nil, repoErr(err)
	}

	name, err := s.Storage.SaveFile(ctx, avatarFile)
	if err != nil {
		return nil, err
	}

	if u.Avatar != nil && *u.Avatar != "" && *u.Avatar != name {
		if err := s.Storage.DeleteFile(ctx, *u.Avatar); err != nil && !errors.Is(err, provider.ErrFileNotFound) {
			s.discard(ctx, name)
			return nil, err
		}
	}
	u.Avatar = &name

	if err := s.Repo.Save(ctx, u); err != nil {
		return nil, repoErr(err)
	}
	indexUser(ctx, s.Indexer, s.Logger, u)
	return u, nil
}

// discard removes a freshly stored file that will not be referenced.
func (s *AvatarService) discard(ctx context.Context, name string) {
	if err := s.Storage.DeleteFile(ctx, name); err != nil && !errors.Is(err, provider.ErrFileNotFound) {
		s.Logger.WithError(err).WithField("file", name).Warn("failed to remove unused avatar")
	}
}
