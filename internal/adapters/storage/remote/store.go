// Package remote backs the repositories with a shared record-store service
// reached over HTTP. Deployments that pair several shelter desks against one
// dataset point RECORD_STORE_URL at it instead of a local database.
package remote

import (
	"context"
	"time"

	"animal-shelter-manager/internal/domain/accounts"
	"animal-shelter-manager/internal/domain/adoptions"
	"animal-shelter-manager/internal/domain/animals"
	"animal-shelter-manager/internal/platform/httpclient"
	"animal-shelter-manager/internal/ports/auth"
)

type Store struct {
	c *httpclient.Client
}

func New(baseURL string, timeout time.Duration) (*Store, error) {
	c, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) Animals() animals.Repository    { return &animalRepo{s: s} }
func (s *Store) Requests() adoptions.Repository { return &requestRepo{s: s} }
func (s *Store) Users() accounts.Repository     { return &userRepo{s: s} }

// Atomic runs fn against the same store. The record-store boundary exposes
// single procedures only, so a failing step leaves the earlier steps applied;
// the service layer orders its writes so that this degrades to a request
// stuck pending rather than a corrupt animal state.
func (s *Store) Atomic(ctx context.Context, fn func(adoptions.Store) error) error {
	return fn(s)
}

func (s *Store) call(ctx context.Context, proc string, in, out any) error {
	return s.c.DoJSON(ctx, "POST", "/rpc/"+proc, nil, in, out)
}

// -------------------------
// wire shapes
// -------------------------

type animalDTO struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Species    string         `json:"species"`
	Breed      string         `json:"breed"`
	Sex        animals.Sex    `json:"sex"`
	BirthMonth int            `json:"birth_month"`
	BirthYear  int            `json:"birth_year"`
	Neutered   bool           `json:"neutered"`
	AdmittedAt int64          `json:"admission_timestamp"`
	Status     animals.Status `json:"status"`
	ImagePath  string         `json:"image_path"`
	Appearance string         `json:"appearance"`
	Bio        string         `json:"bio"`
}

func toAnimalDTO(a animals.Animal) animalDTO {
	return animalDTO{
		ID:         a.ID,
		Name:       a.Name,
		Species:    a.Species,
		Breed:      a.Breed,
		Sex:        a.Sex,
		BirthMonth: a.BirthMonth,
		BirthYear:  a.BirthYear,
		Neutered:   a.Neutered,
		AdmittedAt: a.AdmittedAt,
		Status:     a.Status,
		ImagePath:  a.ImagePath,
		Appearance: a.Appearance,
		Bio:        a.Bio,
	}
}

func (d animalDTO) toModel() animals.Animal {
	return animals.Animal{
		ID:         d.ID,
		Name:       d.Name,
		Species:    d.Species,
		Breed:      d.Breed,
		Sex:        d.Sex,
		BirthMonth: d.BirthMonth,
		BirthYear:  d.BirthYear,
		Neutered:   d.Neutered,
		AdmittedAt: d.AdmittedAt,
		Status:     d.Status,
		ImagePath:  d.ImagePath,
		Appearance: d.Appearance,
		Bio:        d.Bio,
	}
}

type summaryDTO struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Species    string         `json:"species"`
	Breed      string         `json:"breed"`
	Sex        animals.Sex    `json:"sex"`
	AdmittedAt int64          `json:"admission_timestamp"`
	Status     animals.Status `json:"status"`
	ImagePath  string         `json:"image_path"`
}

func (d summaryDTO) toModel() animals.Summary {
	return animals.Summary{
		ID:         d.ID,
		Name:       d.Name,
		Species:    d.Species,
		Breed:      d.Breed,
		Sex:        d.Sex,
		AdmittedAt: d.AdmittedAt,
		Status:     d.Status,
		ImagePath:  d.ImagePath,
	}
}

// filterDTO deliberately carries no omitempty on the multi-value keys:
// a nil slice encodes as null (no constraint) while an empty slice encodes
// as [] (match nothing), and the record store honors the distinction.
type filterDTO struct {
	Statuses []animals.Status    `json:"statuses"`
	Sexes    []animals.Sex       `json:"sexes"`
	Breeds   map[string][]string `json:"breeds"`
	Admitted animals.Period      `json:"admitted_period,omitempty"`
	Adopted  animals.Period      `json:"adopted_period,omitempty"`
}

type requestDTO struct {
	ID           string           `json:"id"`
	AnimalID     string           `json:"animal_id"`
	Username     string           `json:"username"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	TelNumber    string           `json:"tel_number"`
	Address      string           `json:"address"`
	Country      string           `json:"country"`
	Occupation   string           `json:"occupation"`
	AnnualIncome string           `json:"annual_income"`
	NumPeople    int              `json:"num_people"`
	NumChildren  int              `json:"num_children"`
	RequestedAt  int64            `json:"request_timestamp"`
	AdoptedAt    int64            `json:"adoption_timestamp"`
	Status       adoptions.Status `json:"status"`
}

func toRequestDTO(r adoptions.Request) requestDTO {
	return requestDTO{
		ID:           r.ID,
		AnimalID:     r.AnimalID,
		Username:     r.Username,
		Name:         r.Name,
		Email:        r.Email,
		TelNumber:    r.TelNumber,
		Address:      r.Address,
		Country:      r.Country,
		Occupation:   r.Occupation,
		AnnualIncome: r.AnnualIncome,
		NumPeople:    r.NumPeople,
		NumChildren:  r.NumChildren,
		RequestedAt:  r.RequestedAt,
		AdoptedAt:    r.AdoptedAt,
		Status:       r.Status,
	}
}

func (d requestDTO) toModel() adoptions.Request {
	return adoptions.Request{
		ID:           d.ID,
		AnimalID:     d.AnimalID,
		Username:     d.Username,
		Name:         d.Name,
		Email:        d.Email,
		TelNumber:    d.TelNumber,
		Address:      d.Address,
		Country:      d.Country,
		Occupation:   d.Occupation,
		AnnualIncome: d.AnnualIncome,
		NumPeople:    d.NumPeople,
		NumChildren:  d.NumChildren,
		RequestedAt:  d.RequestedAt,
		AdoptedAt:    d.AdoptedAt,
		Status:       d.Status,
	}
}

type foundResponse struct {
	Found bool `json:"found"`
}

// -------------------------
// animals
// -------------------------

type animalRepo struct {
	s *Store
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	in := struct {
		Animal animalDTO `json:"animal"`
	}{toAnimalDTO(a)}
	return r.s.call(ctx, "insert_animal", in, nil)
}

func (r *animalRepo) Update(ctx context.Context, a animals.Animal) error {
	in := struct {
		Animal animalDTO `json:"animal"`
	}{toAnimalDTO(a)}

	var out foundResponse
	if err := r.s.call(ctx, "update_animal", in, &out); err != nil {
		return err
	}
	if !out.Found {
		return animals.ErrNotFound
	}
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	in := struct {
		AnimalID string `json:"animal_id"`
	}{id}

	var out struct {
		Animal *animalDTO `json:"animal"`
	}
	if err := r.s.call(ctx, "query_animal_by_id", in, &out); err != nil {
		return animals.Animal{}, err
	}
	if out.Animal == nil {
		return animals.Animal{}, animals.ErrNotFound
	}
	return out.Animal.toModel(), nil
}

func (r *animalRepo) Delete(ctx context.Context, id string) error {
	in := struct {
		AnimalID string `json:"animal_id"`
	}{id}

	var out foundResponse
	if err := r.s.call(ctx, "delete_animal", in, &out); err != nil {
		return err
	}
	if !out.Found {
		return animals.ErrNotFound
	}
	return nil
}

func (r *animalRepo) List(ctx context.Context, f animals.Filter) ([]animals.Summary, error) {
	in := struct {
		Filter filterDTO `json:"filter"`
	}{filterDTO{
		Statuses: f.Statuses,
		Sexes:    f.Sexes,
		Breeds:   f.Breeds,
		Admitted: f.Admitted,
		Adopted:  f.Adopted,
	}}

	var out struct {
		Animals []summaryDTO `json:"animals"`
	}
	if err := r.s.call(ctx, "query_animals", in, &out); err != nil {
		return nil, err
	}

	summaries := make([]animals.Summary, 0, len(out.Animals))
	for _, d := range out.Animals {
		summaries = append(summaries, d.toModel())
	}
	return summaries, nil
}

// -------------------------
// adoption requests
// -------------------------

type requestRepo struct {
	s *Store
}

func (r *requestRepo) Create(ctx context.Context, req adoptions.Request) error {
	in := struct {
		Request requestDTO `json:"request"`
	}{toRequestDTO(req)}
	return r.s.call(ctx, "insert_adoption_request", in, nil)
}

func (r *requestRepo) Update(ctx context.Context, req adoptions.Request) error {
	in := struct {
		Request requestDTO `json:"request"`
	}{toRequestDTO(req)}

	var out foundResponse
	if err := r.s.call(ctx, "update_adoption_request", in, &out); err != nil {
		return err
	}
	if !out.Found {
		return adoptions.ErrNotFound
	}
	return nil
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	in := struct {
		RequestID string `json:"request_id"`
	}{id}

	var out struct {
		Request *requestDTO `json:"request"`
	}
	if err := r.s.call(ctx, "query_adoption_request_by_id", in, &out); err != nil {
		return adoptions.Request{}, err
	}
	if out.Request == nil {
		return adoptions.Request{}, adoptions.ErrNotFound
	}
	return out.Request.toModel(), nil
}

func (r *requestRepo) Delete(ctx context.Context, id string) error {
	in := struct {
		RequestID string `json:"request_id"`
	}{id}

	var out foundResponse
	if err := r.s.call(ctx, "delete_adoption_request", in, &out); err != nil {
		return err
	}
	if !out.Found {
		return adoptions.ErrNotFound
	}
	return nil
}

func (r *requestRepo) ListByAnimal(ctx context.Context, animalID string) ([]adoptions.Request, error) {
	in := struct {
		AnimalID string `json:"animal_id"`
	}{animalID}
	return r.list(ctx, "query_adoption_requests_by_animal", in)
}

func (r *requestRepo) ListByRequester(ctx context.Context, username string) ([]adoptions.Request, error) {
	in := struct {
		Username string `json:"username"`
	}{username}
	return r.list(ctx, "query_adoption_requests_by_username", in)
}

func (r *requestRepo) list(ctx context.Context, proc string, in any) ([]adoptions.Request, error) {
	var out struct {
		Requests []requestDTO `json:"requests"`
	}
	if err := r.s.call(ctx, proc, in, &out); err != nil {
		return nil, err
	}

	reqs := make([]adoptions.Request, 0, len(out.Requests))
	for _, d := range out.Requests {
		reqs = append(reqs, d.toModel())
	}
	return reqs, nil
}

// -------------------------
// users
// -------------------------

type userRepo struct {
	s *Store
}

type userDTO struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         auth.Role `json:"role"`
}

func (r *userRepo) Create(ctx context.Context, u accounts.User) error {
	in := struct {
		User userDTO `json:"user"`
	}{userDTO{Username: u.Username, PasswordHash: u.PasswordHash, Role: u.Role}}

	var out struct {
		Inserted bool `json:"inserted"`
	}
	if err := r.s.call(ctx, "insert_user", in, &out); err != nil {
		return err
	}
	if !out.Inserted {
		return accounts.ErrExists
	}
	return nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (accounts.User, error) {
	in := struct {
		Username string `json:"username"`
	}{username}

	var out struct {
		User *userDTO `json:"user"`
	}
	if err := r.s.call(ctx, "get_user", in, &out); err != nil {
		return accounts.User{}, err
	}
	if out.User == nil {
		return accounts.User{}, accounts.ErrNotFound
	}
	return accounts.User{
		Username:     out.User.Username,
		PasswordHash: out.User.PasswordHash,
		Role:         out.User.Role,
	}, nil
}
