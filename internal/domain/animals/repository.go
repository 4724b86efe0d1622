package animals

import (
	"context"
	"errors"
)

// ErrNotFound is returned by every storage backend for absent animals,
// so callers can tell a missing record from a transport fault.
var ErrNotFound = errors.New("animal not found")

type Repository interface {
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]Summary, error)
}
