package accounts

import (
	"context"
	"errors"
)

var (
	// ErrNotFound distinguishes an absent user from a storage fault.
	ErrNotFound = errors.New("user not found")
	// ErrExists is returned when the username is already taken.
	ErrExists = errors.New("username already exists")
)

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByUsername(ctx context.Context, username string) (User, error)
}
