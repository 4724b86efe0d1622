package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"animal-shelter-manager/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type AdmitInput struct {
	Name       string
	Species    string
	Breed      string
	Sex        Sex
	BirthMonth int
	BirthYear  int
	Neutered   bool
	ImagePath  string
	Appearance string
	Bio        string
}

// Admit registers a new animal as available for adoption.
func (s *Service) Admit(ctx context.Context, actor auth.Claims, in AdmitInput) (Animal, error) {
	if actor.Role != auth.RoleStaff {
		return Animal{}, ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" {
		return Animal{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Species) == "" {
		return Animal{}, ErrInvalidInput
	}
	if in.BirthMonth < 0 || in.BirthMonth > 12 {
		return Animal{}, ErrInvalidInput
	}

	sex := in.Sex
	if sex == "" {
		sex = SexUnknown
	}

	a := Animal{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		Species:    strings.TrimSpace(in.Species),
		Breed:      strings.TrimSpace(in.Breed),
		Sex:        sex,
		BirthMonth: in.BirthMonth,
		BirthYear:  in.BirthYear,
		Neutered:   in.Neutered,
		AdmittedAt: s.now().Unix(),
		Status:     StatusAvailable,
		ImagePath:  strings.TrimSpace(in.ImagePath),
		Appearance: strings.TrimSpace(in.Appearance),
		Bio:        strings.TrimSpace(in.Bio),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Summary, error) {
	return s.repo.List(ctx, f)
}

type UpdateInput struct {
	// Pointers for a real PATCH: nil = leave untouched.
	Name       *string
	Species    *string
	Breed      *string
	Sex        *Sex
	BirthMonth *int
	BirthYear  *int
	Neutered   *bool
	ImagePath  *string
	Appearance *string
	Bio        *string
}

// Update edits the descriptive fields. Status and admission timestamp are
// owned by the adoption lifecycle and cannot be changed here.
func (s *Service) Update(ctx context.Context, actor auth.Claims, id string, in UpdateInput) (Animal, error) {
	if actor.Role != auth.RoleStaff {
		return Animal{}, ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Animal{}, ErrInvalidInput
		}
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		if strings.TrimSpace(*in.Species) == "" {
			return Animal{}, ErrInvalidInput
		}
		a.Species = strings.TrimSpace(*in.Species)
	}
	if in.Breed != nil {
		a.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		a.Sex = *in.Sex
	}
	if in.BirthMonth != nil {
		if *in.BirthMonth < 0 || *in.BirthMonth > 12 {
			return Animal{}, ErrInvalidInput
		}
		a.BirthMonth = *in.BirthMonth
	}
	if in.BirthYear != nil {
		a.BirthYear = *in.BirthYear
	}
	if in.Neutered != nil {
		a.Neutered = *in.Neutered
	}
	if in.ImagePath != nil {
		a.ImagePath = strings.TrimSpace(*in.ImagePath)
	}
	if in.Appearance != nil {
		a.Appearance = strings.TrimSpace(*in.Appearance)
	}
	if in.Bio != nil {
		a.Bio = strings.TrimSpace(*in.Bio)
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}
