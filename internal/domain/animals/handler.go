package animals

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"animal-shelter-manager/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes attaches the animal CRUD handlers. The caller mounts this
// together with the lifecycle routes under one /animals subrouter.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/", admitAnimalHandler(svc))
	r.Get("/", listAnimalsHandler(svc))
	r.Get("/{animalID}", getAnimalHandler(svc))
	r.Patch("/{animalID}", updateAnimalHandler(svc))
}

type admitAnimalRequest struct {
	Name       string `json:"name"`
	Species    string `json:"species"`
	Breed      string `json:"breed"`
	Sex        string `json:"sex"`
	BirthMonth int    `json:"birth_month"`
	BirthYear  int    `json:"birth_year"`
	Neutered   bool   `json:"neutered"`
	ImagePath  string `json:"image_path"`
	Appearance string `json:"appearance"`
	Bio        string `json:"bio"`
}

type animalResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Species    string `json:"species"`
	Breed      string `json:"breed"`
	Sex        Sex    `json:"sex"`
	BirthMonth int    `json:"birth_month,omitempty"`
	BirthYear  int    `json:"birth_year,omitempty"`
	Neutered   bool   `json:"neutered"`
	AdmittedAt int64  `json:"admission_timestamp"`
	Status     Status `json:"status"`
	ImagePath  string `json:"image_path,omitempty"`
	Appearance string `json:"appearance"`
	Bio        string `json:"bio"`
}

type summaryResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Species    string `json:"species"`
	Breed      string `json:"breed"`
	Sex        Sex    `json:"sex"`
	AdmittedAt int64  `json:"admission_timestamp"`
	Status     Status `json:"status"`
	ImagePath  string `json:"image_path,omitempty"`
}

type updateAnimalRequest struct {
	Name       *string `json:"name"`
	Species    *string `json:"species"`
	Breed      *string `json:"breed"`
	Sex        *string `json:"sex"`
	BirthMonth *int    `json:"birth_month"`
	BirthYear  *int    `json:"birth_year"`
	Neutered   *bool   `json:"neutered"`
	ImagePath  *string `json:"image_path"`
	Appearance *string `json:"appearance"`
	Bio        *string `json:"bio"`
}

func admitAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req admitAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Admit(r.Context(), claims, AdmitInput{
			Name:       req.Name,
			Species:    req.Species,
			Breed:      req.Breed,
			Sex:        Sex(strings.TrimSpace(req.Sex)),
			BirthMonth: req.BirthMonth,
			BirthYear:  req.BirthYear,
			Neutered:   req.Neutered,
			ImagePath:  req.ImagePath,
			Appearance: req.Appearance,
			Bio:        req.Bio,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := ParseFilter(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]summaryResponse, 0, len(items))
		for _, sum := range items {
			out = append(out, toSummaryResponse(sum))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Get(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:       req.Name,
			Species:    req.Species,
			Breed:      req.Breed,
			BirthMonth: req.BirthMonth,
			BirthYear:  req.BirthYear,
			Neutered:   req.Neutered,
			ImagePath:  req.ImagePath,
			Appearance: req.Appearance,
			Bio:        req.Bio,
		}
		if req.Sex != nil {
			sex := Sex(strings.TrimSpace(*req.Sex))
			in.Sex = &sex
		}

		a, err := svc.Update(r.Context(), claims, chi.URLParam(r, "animalID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// ParseFilter reads the filter selections from query params:
// - status, sex: CSV; present-but-empty means "match nothing"
// - breed: repeatable "species:breed1|breed2"
// - admitted, adopted: one of all_time|today|this_week|this_month|this_year
func ParseFilter(q url.Values) (Filter, error) {
	var f Filter

	if vals, ok := q["status"]; ok {
		f.Statuses = make([]Status, 0)
		for _, raw := range splitCSV(vals) {
			st := Status(raw)
			if !st.Valid() {
				return Filter{}, fmt.Errorf("unknown status %q", raw)
			}
			f.Statuses = append(f.Statuses, st)
		}
	}

	if vals, ok := q["sex"]; ok {
		f.Sexes = make([]Sex, 0)
		for _, raw := range splitCSV(vals) {
			f.Sexes = append(f.Sexes, Sex(raw))
		}
	}

	if vals, ok := q["breed"]; ok {
		f.Breeds = make(map[string][]string)
		for _, raw := range vals {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			species, breeds, found := strings.Cut(raw, ":")
			species = strings.TrimSpace(species)
			if !found || species == "" {
				return Filter{}, fmt.Errorf("breed filter must be species:breed1|breed2, got %q", raw)
			}
			for _, b := range strings.Split(breeds, "|") {
				if b = strings.TrimSpace(b); b != "" {
					f.Breeds[species] = append(f.Breeds[species], b)
				}
			}
		}
	}

	admitted := Period(strings.TrimSpace(q.Get("admitted")))
	if !admitted.Valid() {
		return Filter{}, fmt.Errorf("unknown admitted period %q", admitted)
	}
	f.Admitted = admitted

	adopted := Period(strings.TrimSpace(q.Get("adopted")))
	if !adopted.Valid() {
		return Filter{}, fmt.Errorf("unknown adopted period %q", adopted)
	}
	f.Adopted = adopted

	return f, nil
}

func splitCSV(vals []string) []string {
	out := make([]string, 0)
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
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

func toSummaryResponse(s Summary) summaryResponse {
	return summaryResponse{
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

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
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
