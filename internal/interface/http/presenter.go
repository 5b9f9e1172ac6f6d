package handlers

import (
	"time"

	"github.com/oksasatya/t2-user-service/internal/domain/entity"
)

// AvatarURLs derives the public URL of a stored avatar.
type AvatarURLs interface {
	AvatarURL(avatar *string) *string
}

// UserResponse is the outbound user; it never carries the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CPF       string    `json:"cpf"`
	Avatar    *string   `json:"avatar"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(urls AvatarURLs, u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CPF:       u.CPF,
		Avatar:    u.Avatar,
		AvatarURL: urls.AvatarURL(u.Avatar),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(urls AvatarURLs, users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(urls, u))
	}
	return out
}
