package user

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrInvalidCreds  = errors.New("invalid email or password")
	ErrInvalidParams = errors.New("invalid user parameters")
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PasswordHash string    `json:"-"`
	AvatarURL    *string   `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateUserParams struct {
	Email        string
	Name         string
	FirstName    string
	LastName     string
	PasswordHash string
	AvatarURL    *string
}

func (p CreateUserParams) Validate() error {
	if p.Email == "" || p.PasswordHash == "" {
		return ErrInvalidParams
	}
	return nil
}

type UpdateUserParams struct {
	Name      *string
	FirstName *string
	LastName  *string
	AvatarURL *string
}
