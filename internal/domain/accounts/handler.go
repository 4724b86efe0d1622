package accounts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"animal-shelter-manager/internal/middleware"
	"animal-shelter-manager/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/signup", signUpHandler(svc))
		ar.Post("/login", logInHandler(svc))
		ar.Get("/me", meHandler(svc))
	})
}

type signUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userResponse struct {
	Username string    `json:"username"`
	Role     auth.Role `json:"role"`
	Token    string    `json:"token,omitempty"`
}

type logInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type logInResponse struct {
	Result   LoginResult `json:"result"`
	Username string      `json:"username,omitempty"`
	Role     auth.Role   `json:"role,omitempty"`
	Token    string      `json:"token,omitempty"`
}

func signUpHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		role := auth.Role(strings.TrimSpace(req.Role))
		if role == "" {
			role = auth.RoleCustomer
		}

		u, token, err := svc.SignUp(r.Context(), req.Username, req.Password, role)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrExists):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, userResponse{Username: u.Username, Role: u.Role, Token: token})
	}
}

func logInHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req logInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		result, token, err := svc.LogIn(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		if result != LoginSuccess {
			// Keep the tri-state result in the body; the UI tells the
			// two failures apart.
			writeJSON(w, http.StatusUnauthorized, logInResponse{Result: result})
			return
		}

		u, err := svc.Me(r.Context(), auth.Claims{Username: strings.TrimSpace(req.Username)})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, logInResponse{
			Result:   result,
			Username: u.Username,
			Role:     u.Role,
			Token:    token,
		})
	}
}

func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Username) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := svc.Me(r.Context(), claims)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, userResponse{Username: u.Username, Role: u.Role})
	}
}

// writeJSON is duplicated across the module handlers on purpose; extracting a
// shared helper can wait until a third shape of response writing shows up.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
