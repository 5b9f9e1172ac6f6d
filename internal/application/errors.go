package application

import (
	"errors"

	"github.com/oksasatya/t2-user-service/internal/domain/repository"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateEmail      = errors.New("email address already used")
	ErrInvalidCPF          = errors.New("invalid cpf")
	ErrSelfEditForbidden   = errors.New("you can't edit your own user here, use the profile instead")
	ErrSelfDeleteForbidden = errors.New("you can't delete your own user")
	ErrMissingOldPassword  = errors.New("you need to inform the old password to set a new password")
	ErrWrongOldPassword    = errors.New("old password does not match")
	ErrInvalidCredentials  = errors.New("incorrect email/password combination")
	ErrInvalidResetToken   = errors.New("invalid or expired reset token")
	ErrResetUnavailable    = errors.New("password reset unavailable")
)

// repoErr maps repository sentinels onto service errors; anything else passes through.
func repoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrDuplicateEmail
	}
	return err
}
