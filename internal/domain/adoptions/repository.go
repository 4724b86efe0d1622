package adoptions

import (
	"context"

	"animal-shelter-manager/internal/domain/animals"
)

type Repository interface {
	Create(ctx context.Context, r Request) error
	Update(ctx context.Context, r Request) error
	GetByID(ctx context.Context, id string) (Request, error)
	Delete(ctx context.Context, id string) error
	ListByAnimal(ctx context.Context, animalID string) ([]Request, error)
	ListByRequester(ctx context.Context, username string) ([]Request, error)
}

// Store groups animal and request persistence behind one boundary so the
// multi-step lifecycle operations can run atomically where the backend
// supports it. Inside Atomic, fn sees a view whose mutations become visible
// together on success and not at all on error; backends without transactions
// document the weaker guarantee they give instead.
type Store interface {
	Animals() animals.Repository
	Requests() Repository
	Atomic(ctx context.Context, fn func(Store) error) error
}
