package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/t2-user-service/internal/domain/provider"
	repo "github.com/oksasatya/t2-user-service/internal/domain/repository"
	"github.com/oksasatya/t2-user-service/pkg/helpers"
)

// PasswordService runs the forgot/reset password flow with one-time tokens.
type PasswordService struct {
	Repo     repo.UserRepository
	Hash     provider.HashProvider
	Tokens   TokenStore // nil disables the flow
	Notifier *Notifier
	ResetURL string
	TokenTTL time.Duration
	Logger   *logrus.Logger
}

func NewPasswordService(r repo.UserRepository, hash provider.HashProvider, tokens TokenStore, notifier *Notifier, resetURL string, ttl time.Duration, logger *logrus.Logger) *PasswordService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &PasswordService{
		Repo:     r,
		Hash:     hash,
		Tokens:   tokens,
		Notifier: notifier,
		ResetURL: resetURL,
		TokenTTL: ttl,
		Logger:   helpers.OrNop(logger),
	}
}

func genToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Forgot issues a reset token for email and enqueues the reset email. It
// returns the reset link, or "" when no user has that email.
func (s *PasswordService) Forgot(ctx context.Context, email string) (string, error) {
	if s.Tokens == nil {
		return "", ErrResetUnavailable
	}
	u, err := s.Repo.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		s.Logger.WithField("email", email).Info("password reset requested for unknown email")
		return "", nil
	}
	if err != nil {
		return "", err
	}

	tok, err := genToken(32)
	if err != nil {
		return "", err
	}
	if err := s.Tokens.Put(ctx, tok, u.ID, s.TokenTTL); err != nil {
		return "", err
	}

	link := s.ResetURL + "?token=" + url.QueryEscape(tok)
	s.Notifier.ForgotPassword(ctx, u, link, s.TokenTTL)
	return link, nil
}

// Reset consumes token and sets the user's password.
func (s *PasswordService) Reset(ctx context.Context, token, password string) error {
	if s.Tokens == nil {
		return ErrResetUnavailable
	}
	userID, err := s.Tokens.Take(ctx, token)
	if err != nil {
		return err
	}
	if userID == "" {
		return ErrInvalidResetToken
	}

	u, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return repoErr(err)
	}
	hashed, err := s.Hash.GenerateHash(password)
	if err != nil {
		return err
	}
	u.Password = hashed
	if err := s.Repo.Save(ctx, u); err != nil {
		return repoErr(err)
	}
	return nil
}
