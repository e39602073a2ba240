// Package userstore is the user database exercised by the feature example.
package userstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNameRequired   = errors.New("please provide name")
	ErrLoginRequired  = errors.New("please provide login")
	ErrDuplicateLogin = errors.New("login is already taken")
	ErrNotFound       = errors.New("user not found")
)

type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Login string    `json:"login"`
}

// Store keeps users. Lookups return ErrNotFound for unknown users.
type Store interface {
	AddUser(ctx context.Context, name, login string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	FindUserByName(ctx context.Context, name string) (*User, error)
}

func validate(name, login string) error {
	if name == "" {
		return ErrNameRequired
	}
	if login == "" {
		return ErrLoginRequired
	}
	return nil
}
