package adoptions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"animal-shelter-manager/internal/domain/animals"
	"animal-shelter-manager/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAnimalRoutes attaches the lifecycle handlers that hang off an
// animal; the caller mounts these inside the /animals subrouter so they share
// the tree with the CRUD handlers.
func RegisterAnimalRoutes(r chi.Router, svc *Service) {
	r.Post("/{animalID}/requests", submitRequestHandler(svc))
	r.Get("/{animalID}/requests", pendingByAnimalHandler(svc))
	r.Post("/{animalID}/passing", markPassedAwayHandler(svc))
	r.Delete("/{animalID}", removeAnimalHandler(svc))
}

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/requests/{requestID}", func(rr chi.Router) {
		rr.Post("/approve", approveRequestHandler(svc))
		rr.Post("/reject", rejectRequestHandler(svc))
		rr.Post("/revoke", revokeRequestHandler(svc))
	})

	// Staff review screens
	r.Get("/adoptions/pending", pendingHandler(svc))
	r.Get("/adoptions/reports", reportsHandler(svc))

	// Customer: own requests
	r.Get("/me/requests", myRequestsHandler(svc))
}

type submitRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	TelNumber    string `json:"tel_number"`
	Address      string `json:"address"`
	Country      string `json:"country"`
	Occupation   string `json:"occupation"`
	AnnualIncome string `json:"annual_income"`
	NumPeople    int    `json:"num_people"`
	NumChildren  int    `json:"num_children"`
}

type requestResponse struct {
	ID           string `json:"id"`
	AnimalID     string `json:"animal_id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	TelNumber    string `json:"tel_number"`
	Address      string `json:"address"`
	Country      string `json:"country"`
	Occupation   string `json:"occupation"`
	AnnualIncome string `json:"annual_income"`
	NumPeople    int    `json:"num_people"`
	NumChildren  int    `json:"num_children"`
	RequestedAt  int64  `json:"request_timestamp"`
	AdoptedAt    int64  `json:"adoption_timestamp"`
	Status       Status `json:"status"`
}

type animalSummaryResponse struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Species    string         `json:"species"`
	Breed      string         `json:"breed"`
	Sex        animals.Sex    `json:"sex"`
	AdmittedAt int64          `json:"admission_timestamp"`
	Status     animals.Status `json:"status"`
	ImagePath  string         `json:"image_path,omitempty"`
}

type animalRequestsResponse struct {
	Animal   animalSummaryResponse `json:"animal"`
	Requests []requestResponse     `json:"requests"`
}

type reportResponse struct {
	Animal  animalSummaryResponse `json:"animal"`
	Request requestResponse       `json:"request"`
}

func submitRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		created, err := svc.Submit(r.Context(), claims, SubmitInput{
			AnimalID:     chi.URLParam(r, "animalID"),
			Name:         req.Name,
			Email:        req.Email,
			TelNumber:    req.TelNumber,
			Address:      req.Address,
			Country:      req.Country,
			Occupation:   req.Occupation,
			AnnualIncome: req.AnnualIncome,
			NumPeople:    req.NumPeople,
			NumChildren:  req.NumChildren,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toRequestResponse(created))
	}
}

func pendingByAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		group, err := svc.PendingByAnimal(r.Context(), claims, chi.URLParam(r, "animalID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toGroupResponse(group))
	}
}

func markPassedAwayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.MarkPassedAway(r.Context(), claims, chi.URLParam(r, "animalID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSummaryResponse(a.Summary()))
	}
}

func removeAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.RemoveAnimal(r.Context(), claims, chi.URLParam(r, "animalID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func approveRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		req, err := svc.Approve(r.Context(), claims, chi.URLParam(r, "requestID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(req))
	}
}

func rejectRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		req, err := svc.Reject(r.Context(), claims, chi.URLParam(r, "requestID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(req))
	}
}

func revokeRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Revoke(r.Context(), claims, chi.URLParam(r, "requestID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func pendingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		f, err := animals.ParseFilter(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		groups, err := svc.Pending(r.Context(), claims, f)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]animalRequestsResponse, 0, len(groups))
		for _, g := range groups {
			out = append(out, toGroupResponse(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func reportsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		f, err := animals.ParseFilter(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		reports, err := svc.Reports(r.Context(), claims, f)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]reportResponse, 0, len(reports))
		for _, rep := range reports {
			out = append(out, reportResponse{
				Animal:  toSummaryResponse(rep.Animal),
				Request: toRequestResponse(rep.Request),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func myRequestsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByRequester(r.Context(), claims)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]requestResponse, 0, len(items))
		for _, req := range items {
			out = append(out, toRequestResponse(req))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toRequestResponse(r Request) requestResponse {
	return requestResponse{
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

func toSummaryResponse(s animals.Summary) animalSummaryResponse {
	return animalSummaryResponse{
		ID:         s.ID,
		Name:       s.Name,
		Species:    s.Species,
		Breed:      s.Breed,
		Sex:        s.Sex,
		AdmittedAt: s.AdmittedAt,
		Status:     s.Status,
		ImagePath:  s.ImagePath,
	}
}

func toGroupResponse(g AnimalRequests) animalRequestsResponse {
	reqs := make([]requestResponse, 0, len(g.Requests))
	for _, r := range g.Requests {
		reqs = append(reqs, toRequestResponse(r))
	}
	return animalRequestsResponse{Animal: toSummaryResponse(g.Animal), Requests: reqs}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrBadState):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON is duplicated across the module handlers on purpose; extracting a
// shared helper can wait until a third shape of response writing shows up.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
