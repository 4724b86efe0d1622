// Package memory is the in-memory backend used for dev mode and tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"animal-shelter-manager/internal/domain/accounts"
	"animal-shelter-manager/internal/domain/adoptions"
	"animal-shelter-manager/internal/domain/animals"
)

type Store struct {
	mu sync.RWMutex

	animalsByID  map[string]animals.Animal
	requestsByID map[string]adoptions.Request
	usersByName  map[string]accounts.User
}

func New() *Store {
	return &Store{
		animalsByID:  make(map[string]animals.Animal),
		requestsByID: make(map[string]adoptions.Request),
		usersByName:  make(map[string]accounts.User),
	}
}

func (s *Store) Animals() animals.Repository    { return &animalRepo{s: s} }
func (s *Store) Requests() adoptions.Repository { return &requestRepo{s: s} }
func (s *Store) Users() accounts.Repository     { return &userRepo{s: s} }

// Atomic runs fn against a copy of the maps and swaps the copy in only when
// fn succeeds, so a failed multi-step operation leaves no partial mutation.
func (s *Store) Atomic(ctx context.Context, fn func(adoptions.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{
		animalsByID:  cloneMap(s.animalsByID),
		requestsByID: cloneMap(s.requestsByID),
		usersByName:  cloneMap(s.usersByName),
	}

	if err := fn(tx); err != nil {
		return err
	}

	s.animalsByID = tx.animalsByID
	s.requestsByID = tx.requestsByID
	s.usersByName = tx.usersByName
	return nil
}

func cloneMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// -------------------------
// animals
// -------------------------

type animalRepo struct {
	s *Store
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.s.animalsByID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	r.s.animalsByID[a.ID] = a
	return nil
}

func (r *animalRepo) Update(ctx context.Context, a animals.Animal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.s.animalsByID[a.ID]; !exists {
		return animals.ErrNotFound
	}
	r.s.animalsByID[a.ID] = a
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.animalsByID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (r *animalRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.animalsByID[id]; !ok {
		return animals.ErrNotFound
	}
	delete(r.s.animalsByID, id)
	return nil
}

func (r *animalRepo) List(ctx context.Context, f animals.Filter) ([]animals.Summary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	now := time.Now()
	adoptedStart, boundAdopted := f.Adopted.Start(now)

	out := make([]animals.Summary, 0)
	for _, a := range r.s.animalsByID {
		if !f.Matches(a, now) {
			continue
		}
		if boundAdopted && !r.adoptedSince(a.ID, adoptedStart) {
			continue
		}
		out = append(out, a.Summary())
	}

	// Stable order by admission, then id.
	sort.Slice(out, func(i, j int) bool {
		if out[i].AdmittedAt != out[j].AdmittedAt {
			return out[i].AdmittedAt < out[j].AdmittedAt
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *animalRepo) adoptedSince(animalID string, start int64) bool {
	for _, req := range r.s.requestsByID {
		if req.AnimalID != animalID {
			continue
		}
		if req.Status != adoptions.StatusApproved {
			continue
		}
		if req.AdoptedAt >= start {
			return true
		}
	}
	return false
}

// -------------------------
// adoption requests
// -------------------------

type requestRepo struct {
	s *Store
}

func (r *requestRepo) Create(ctx context.Context, req adoptions.Request) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(req.ID) == "" {
		return errors.New("request id required")
	}
	if _, exists := r.s.requestsByID[req.ID]; exists {
		return errors.New("request already exists")
	}
	r.s.requestsByID[req.ID] = req
	return nil
}

func (r *requestRepo) Update(ctx context.Context, req adoptions.Request) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(req.ID) == "" {
		return errors.New("request id required")
	}
	if _, exists := r.s.requestsByID[req.ID]; !exists {
		return adoptions.ErrNotFound
	}
	r.s.requestsByID[req.ID] = req
	return nil
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, ok := r.s.requestsByID[id]
	if !ok {
		return adoptions.Request{}, adoptions.ErrNotFound
	}
	return req, nil
}

func (r *requestRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.requestsByID[id]; !ok {
		return adoptions.ErrNotFound
	}
	delete(r.s.requestsByID, id)
	return nil
}

func (r *requestRepo) ListByAnimal(ctx context.Context, animalID string) ([]adoptions.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]adoptions.Request, 0)
	for _, req := range r.s.requestsByID {
		if req.AnimalID == animalID {
			out = append(out, req)
		}
	}
	sortRequests(out)
	return out, nil
}

func (r *requestRepo) ListByRequester(ctx context.Context, username string) ([]adoptions.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]adoptions.Request, 0)
	for _, req := range r.s.requestsByID {
		if req.Username == username {
			out = append(out, req)
		}
	}
	sortRequests(out)
	return out, nil
}

func sortRequests(reqs []adoptions.Request) {
	sort.Slice(reqs, func(i, j int) bool {
		if reqs[i].RequestedAt != reqs[j].RequestedAt {
			return reqs[i].RequestedAt < reqs[j].RequestedAt
		}
		return reqs[i].ID < reqs[j].ID
	})
}

// -------------------------
// users
// -------------------------

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, u accounts.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(u.Username) == "" {
		return errors.New("username required")
	}
	if _, exists := r.s.usersByName[u.Username]; exists {
		return accounts.ErrExists
	}
	r.s.usersByName[u.Username] = u
	return nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (accounts.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.usersByName[username]
	if !ok {
		return accounts.User{}, accounts.ErrNotFound
	}
	return u, nil
}
