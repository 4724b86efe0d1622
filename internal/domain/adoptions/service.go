package adoptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"animal-shelter-manager/internal/domain/animals"
	"animal-shelter-manager/internal/platform/logger"
	"animal-shelter-manager/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
)

// Service keeps an animal's status and the statuses of the adoption requests
// made against it mutually consistent. Every command takes the authenticated
// actor explicitly; there is no ambient current user.
//
// Two clients acting on the same animal concurrently are serialized only as
// far as the store's Atomic allows; there is no optimistic-concurrency check
// on individual records.
type Service struct {
	store Store
	log   logger.Logger
	now   func() time.Time
}

func NewService(store Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.New(logger.Options{Level: logger.Error})
	}
	return &Service{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

type SubmitInput struct {
	AnimalID     string
	Name         string
	Email        string
	TelNumber    string
	Address      string
	Country      string
	Occupation   string
	AnnualIncome string
	NumPeople    int
	NumChildren  int
}

// Submit files a new adoption request and moves the animal to requested.
// The request is not created when the animal is missing or no longer
// adoptable.
func (s *Service) Submit(ctx context.Context, actor auth.Claims, in SubmitInput) (Request, error) {
	if actor.Role != auth.RoleCustomer {
		return Request{}, ErrForbidden
	}
	if strings.TrimSpace(in.AnimalID) == "" {
		return Request{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return Request{}, ErrInvalidInput
	}
	if in.NumPeople < 1 || in.NumChildren < 0 {
		return Request{}, ErrInvalidInput
	}

	var out Request
	err := s.store.Atomic(ctx, func(st Store) error {
		a, err := st.Animals().GetByID(ctx, strings.TrimSpace(in.AnimalID))
		if errors.Is(err, animals.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if a.Status.Terminal() {
			return ErrBadState
		}

		if a.Status == animals.StatusAvailable {
			a.Status = animals.StatusRequested
			if err := st.Animals().Update(ctx, a); err != nil {
				return err
			}
		}

		out = Request{
			ID:           uuid.NewString(),
			AnimalID:     a.ID,
			Username:     actor.Username,
			Name:         strings.TrimSpace(in.Name),
			Email:        strings.TrimSpace(in.Email),
			TelNumber:    strings.TrimSpace(in.TelNumber),
			Address:      strings.TrimSpace(in.Address),
			Country:      strings.TrimSpace(in.Country),
			Occupation:   strings.TrimSpace(in.Occupation),
			AnnualIncome: strings.TrimSpace(in.AnnualIncome),
			NumPeople:    in.NumPeople,
			NumChildren:  in.NumChildren,
			RequestedAt:  s.now().Unix(),
			Status:       StatusPending,
		}
		return st.Requests().Create(ctx, out)
	})
	if err != nil {
		s.log.Error("submit adoption request failed", map[string]any{
			"animal_id": in.AnimalID,
			"actor":     actor.Username,
			"error":     err.Error(),
		})
		return Request{}, err
	}

	s.log.Info("adoption request submitted", map[string]any{
		"request_id": out.ID,
		"animal_id":  out.AnimalID,
		"actor":      actor.Username,
	})
	return out, nil
}

// Approve marks the request approved, the animal adopted, and rejects every
// other still-pending request for the same animal, in one atomic operation.
// Approving an already-approved request is a no-op.
func (s *Service) Approve(ctx context.Context, actor auth.Claims, requestID string) (Request, error) {
	if actor.Role != auth.RoleStaff {
		return Request{}, ErrForbidden
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return Request{}, ErrInvalidInput
	}

	var out Request
	err := s.store.Atomic(ctx, func(st Store) error {
		req, err := st.Requests().GetByID(ctx, requestID)
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if req.Status == StatusApproved {
			out = req
			return nil
		}
		if req.Status != StatusPending {
			return ErrBadState
		}

		a, err := st.Animals().GetByID(ctx, req.AnimalID)
		if errors.Is(err, animals.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		a.Status = animals.StatusAdopted
		if err := st.Animals().Update(ctx, a); err != nil {
			return err
		}

		req.Status = StatusApproved
		req.AdoptedAt = s.now().Unix()
		if err := st.Requests().Update(ctx, req); err != nil {
			return err
		}

		if err := s.rejectPendingSiblings(ctx, st, req.AnimalID, req.ID); err != nil {
			return err
		}

		out = req
		return nil
	})
	if err != nil {
		s.log.Error("approve adoption request failed", map[string]any{
			"request_id": requestID,
			"actor":      actor.Username,
			"error":      err.Error(),
		})
		return Request{}, err
	}

	s.log.Info("adoption request approved", map[string]any{
		"request_id": out.ID,
		"animal_id":  out.AnimalID,
		"actor":      actor.Username,
	})
	return out, nil
}

// Reject marks the request rejected; when no pending requests remain for the
// animal it reverts the animal to available. Rejecting an already-rejected
// request changes nothing.
func (s *Service) Reject(ctx context.Context, actor auth.Claims, requestID string) (Request, error) {
	if actor.Role != auth.RoleStaff {
		return Request{}, ErrForbidden
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return Request{}, ErrInvalidInput
	}

	var out Request
	err := s.store.Atomic(ctx, func(st Store) error {
		req, err := st.Requests().GetByID(ctx, requestID)
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if req.Status == StatusRejected {
			out = req
			return nil
		}
		if req.Status == StatusApproved {
			return ErrBadState
		}

		req.Status = StatusRejected
		if err := st.Requests().Update(ctx, req); err != nil {
			return err
		}
		out = req

		return s.revertIfNonePending(ctx, st, req.AnimalID)
	})
	if err != nil {
		s.log.Error("reject adoption request failed", map[string]any{
			"request_id": requestID,
			"actor":      actor.Username,
			"error":      err.Error(),
		})
		return Request{}, err
	}

	s.log.Info("adoption request rejected", map[string]any{
		"request_id": out.ID,
		"animal_id":  out.AnimalID,
		"actor":      actor.Username,
	})
	return out, nil
}

// Revoke lets a customer withdraw their own still-pending request. The record
// is removed entirely; staff rejection is the audited path.
func (s *Service) Revoke(ctx context.Context, actor auth.Claims, requestID string) error {
	if actor.Role != auth.RoleCustomer {
		return ErrForbidden
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ErrInvalidInput
	}

	err := s.store.Atomic(ctx, func(st Store) error {
		req, err := st.Requests().GetByID(ctx, requestID)
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if req.Username != actor.Username {
			return ErrForbidden
		}
		if req.Status != StatusPending {
			return ErrBadState
		}

		if err := st.Requests().Delete(ctx, req.ID); err != nil {
			return err
		}
		return s.revertIfNonePending(ctx, st, req.AnimalID)
	})
	if err != nil {
		s.log.Error("revoke adoption request failed", map[string]any{
			"request_id": requestID,
			"actor":      actor.Username,
			"error":      err.Error(),
		})
		return err
	}

	s.log.Info("adoption request revoked", map[string]any{
		"request_id": requestID,
		"actor":      actor.Username,
	})
	return nil
}

// RemoveAnimal deletes a non-adopted animal and rejects its still-pending
// requests. Requests already rejected stay in place for the record.
func (s *Service) RemoveAnimal(ctx context.Context, actor auth.Claims, animalID string) error {
	if actor.Role != auth.RoleStaff {
		return ErrForbidden
	}
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return ErrInvalidInput
	}

	err := s.store.Atomic(ctx, func(st Store) error {
		a, err := st.Animals().GetByID(ctx, animalID)
		if errors.Is(err, animals.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if a.Status == animals.StatusAdopted {
			return ErrBadState
		}

		if err := s.rejectPendingSiblings(ctx, st, a.ID, ""); err != nil {
			return err
		}
		return st.Animals().Delete(ctx, a.ID)
	})
	if err != nil {
		s.log.Error("remove animal failed", map[string]any{
			"animal_id": animalID,
			"actor":     actor.Username,
			"error":     err.Error(),
		})
		return err
	}

	s.log.Info("animal removed", map[string]any{
		"animal_id": animalID,
		"actor":     actor.Username,
	})
	return nil
}

// MarkPassedAway forces an animal into its terminal state from any status and
// rejects still-pending requests. Idempotent.
func (s *Service) MarkPassedAway(ctx context.Context, actor auth.Claims, animalID string) (animals.Animal, error) {
	if actor.Role != auth.RoleStaff {
		return animals.Animal{}, ErrForbidden
	}
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return animals.Animal{}, ErrInvalidInput
	}

	var out animals.Animal
	err := s.store.Atomic(ctx, func(st Store) error {
		a, err := st.Animals().GetByID(ctx, animalID)
		if errors.Is(err, animals.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if a.Status == animals.StatusPassedAway {
			out = a
			return nil
		}

		a.Status = animals.StatusPassedAway
		if err := st.Animals().Update(ctx, a); err != nil {
			return err
		}
		if err := s.rejectPendingSiblings(ctx, st, a.ID, ""); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		s.log.Error("mark passed away failed", map[string]any{
			"animal_id": animalID,
			"actor":     actor.Username,
			"error":     err.Error(),
		})
		return animals.Animal{}, err
	}

	s.log.Info("animal marked passed away", map[string]any{
		"animal_id": animalID,
		"actor":     actor.Username,
	})
	return out, nil
}

// PendingByAnimal returns the animal's summary with every pending request
// against it.
func (s *Service) PendingByAnimal(ctx context.Context, actor auth.Claims, animalID string) (AnimalRequests, error) {
	if actor.Role != auth.RoleStaff {
		return AnimalRequests{}, ErrForbidden
	}
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return AnimalRequests{}, ErrInvalidInput
	}

	a, err := s.store.Animals().GetByID(ctx, animalID)
	if errors.Is(err, animals.ErrNotFound) {
		return AnimalRequests{}, ErrNotFound
	}
	if err != nil {
		return AnimalRequests{}, err
	}

	reqs, err := s.store.Requests().ListByAnimal(ctx, a.ID)
	if err != nil {
		return AnimalRequests{}, err
	}

	return AnimalRequests{Animal: a.Summary(), Requests: filterByStatus(reqs, StatusPending)}, nil
}

// Pending returns, for every animal currently in requested status passing the
// filter, that animal's pending requests. Ordering follows the animal query.
func (s *Service) Pending(ctx context.Context, actor auth.Claims, f animals.Filter) ([]AnimalRequests, error) {
	if actor.Role != auth.RoleStaff {
		return nil, ErrForbidden
	}

	f.Statuses = []animals.Status{animals.StatusRequested}
	sums, err := s.store.Animals().List(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]AnimalRequests, 0, len(sums))
	for _, sum := range sums {
		reqs, err := s.store.Requests().ListByAnimal(ctx, sum.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, AnimalRequests{Animal: sum, Requests: filterByStatus(reqs, StatusPending)})
	}
	return out, nil
}

// Reports pairs every adopted animal passing the filter with its approved
// request. Adopted animals with no approved request are skipped.
func (s *Service) Reports(ctx context.Context, actor auth.Claims, f animals.Filter) ([]Report, error) {
	if actor.Role != auth.RoleStaff {
		return nil, ErrForbidden
	}

	f.Statuses = []animals.Status{animals.StatusAdopted}
	sums, err := s.store.Animals().List(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]Report, 0, len(sums))
	for _, sum := range sums {
		reqs, err := s.store.Requests().ListByAnimal(ctx, sum.ID)
		if err != nil {
			return nil, err
		}
		approved := filterByStatus(reqs, StatusApproved)
		if len(approved) == 0 {
			continue
		}
		out = append(out, Report{Animal: sum, Request: approved[0]})
	}
	return out, nil
}

// ListByRequester returns the actor's own requests, any status.
func (s *Service) ListByRequester(ctx context.Context, actor auth.Claims) ([]Request, error) {
	if actor.Role != auth.RoleCustomer {
		return nil, ErrForbidden
	}
	return s.store.Requests().ListByRequester(ctx, actor.Username)
}

// rejectPendingSiblings rejects every pending request for the animal except
// keepID. Used by approval, animal removal and passing.
func (s *Service) rejectPendingSiblings(ctx context.Context, st Store, animalID, keepID string) error {
	reqs, err := st.Requests().ListByAnimal(ctx, animalID)
	if err != nil {
		return err
	}
	for _, sib := range reqs {
		if sib.ID == keepID || sib.Status != StatusPending {
			continue
		}
		sib.Status = StatusRejected
		if err := st.Requests().Update(ctx, sib); err != nil {
			return err
		}
	}
	return nil
}

// revertIfNonePending moves the animal back to available when zero pending
// requests remain and none was approved. A missing animal is fine here: the
// request may outlive its animal.
func (s *Service) revertIfNonePending(ctx context.Context, st Store, animalID string) error {
	reqs, err := st.Requests().ListByAnimal(ctx, animalID)
	if err != nil {
		return err
	}
	for _, r := range reqs {
		if r.Status == StatusPending || r.Status == StatusApproved {
			return nil
		}
	}

	a, err := st.Animals().GetByID(ctx, animalID)
	if errors.Is(err, animals.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if a.Status != animals.StatusRequested {
		return nil
	}

	a.Status = animals.StatusAvailable
	return st.Animals().Update(ctx, a)
}

func filterByStatus(reqs []Request, status Status) []Request {
	out := make([]Request, 0, len(reqs))
	for _, r := range reqs {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}
