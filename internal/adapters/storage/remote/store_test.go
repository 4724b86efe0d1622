package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"animal-shelter-manager/internal/domain/adoptions"
	"animal-shelter-manager/internal/domain/animals"
)

func newRPCServer(t *testing.T, procs map[string]func(body []byte) any) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	for name, fn := range procs {
		fn := fn
		mux.HandleFunc("/rpc/"+name, func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(fn(body))
		})
	}

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestGetAnimalByIDNullMeansNotFound(t *testing.T) {
	ts := newRPCServer(t, map[string]func([]byte) any{
		"query_animal_by_id": func(body []byte) any {
			var in struct {
				AnimalID string `json:"animal_id"`
			}
			_ = json.Unmarshal(body, &in)
			if in.AnimalID != "a1" {
				return map[string]any{"animal": nil}
			}
			return map[string]any{"animal": map[string]any{
				"id": "a1", "name": "Luna", "species": "dog", "status": "available",
			}}
		},
	})

	st, err := New(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	a, err := st.Animals().GetByID(context.Background(), "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Name != "Luna" || a.Status != animals.StatusAvailable {
		t.Fatalf("animal = %+v", a)
	}

	if _, err := st.Animals().GetByID(context.Background(), "missing"); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateRequestFoundFlag(t *testing.T) {
	ts := newRPCServer(t, map[string]func([]byte) any{
		"update_adoption_request": func(body []byte) any {
			var in struct {
				Request struct {
					ID string `json:"id"`
				} `json:"request"`
			}
			_ = json.Unmarshal(body, &in)
			return map[string]any{"found": in.Request.ID == "r1"}
		},
	})

	st, err := New(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := st.Requests().Update(context.Background(), adoptions.Request{ID: "r1"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := st.Requests().Update(context.Background(), adoptions.Request{ID: "ghost"}); !errors.Is(err, adoptions.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListSendsNilAndEmptyDistinctly(t *testing.T) {
	var captured json.RawMessage
	ts := newRPCServer(t, map[string]func([]byte) any{
		"query_animals": func(body []byte) any {
			captured = append(captured[:0], body...)
			return map[string]any{"animals": []any{}}
		},
	})

	st, err := New(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, err := st.Animals().List(context.Background(), animals.Filter{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	var openFilter struct {
		Filter struct {
			Statuses json.RawMessage `json:"statuses"`
		} `json:"filter"`
	}
	_ = json.Unmarshal(captured, &openFilter)
	if string(openFilter.Filter.Statuses) != "null" {
		t.Fatalf("nil selection encoded as %s, want null", openFilter.Filter.Statuses)
	}

	if _, err := st.Animals().List(context.Background(), animals.Filter{Statuses: []animals.Status{}}); err != nil {
		t.Fatalf("list: %v", err)
	}
	_ = json.Unmarshal(captured, &openFilter)
	if string(openFilter.Filter.Statuses) != "[]" {
		t.Fatalf("empty selection encoded as %s, want []", openFilter.Filter.Statuses)
	}
}
