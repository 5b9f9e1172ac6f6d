package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Phone and CPF are stored normalized (digits only); Password holds a bcrypt hash.
// Avatar is a filename inside the active storage provider, nil when unset.
type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CPF       string
	Password  string
	Avatar    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a copy that does not share the avatar pointer.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Avatar != nil {
		a := *u.Avatar
		c.Avatar = &a
	}
	return &c
}

// WithoutPassword returns a copy with the password hash cleared.
func (u *User) WithoutPassword() *User {
	c := u.Clone()
	if c != nil {
		c.Password = ""
	}
	return c
}
