package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"animal-shelter-manager/internal/adapters/auth/token"
	"animal-shelter-manager/internal/adapters/storage/memory"
	"animal-shelter-manager/internal/router"
)

func newTestServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	if opts.Store == nil {
		opts.Store = memory.New()
	}
	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_AdoptionLifecycle(t *testing.T) {
	ts := newTestServer(t, router.Options{})

	staff := debugUser{"clara", "staff"}
	diego := debugUser{"diego", "customer"}
	eva := debugUser{"eva", "customer"}

	// 1) Staff admits an animal
	animalID := createAnimal(t, ts.URL, staff, map[string]any{
		"name":    "Luna",
		"species": "dog",
		"breed":   "mixed",
		"sex":     "female",
	})

	// 2) Customers cannot admit
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals", diego, map[string]any{
			"name": "Rex", "species": "dog",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 admit by customer, got %d", st)
		}
	}

	// 3) Two customers submit requests; animal goes to requested
	reqDiego := submitRequest(t, ts.URL, diego, animalID)
	reqEva := submitRequest(t, ts.URL, eva, animalID)
	assertAnimalStatus(t, ts.URL, staff, animalID, "requested")

	// 4) Staff sees both pending requests for the animal
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+animalID+"/requests", staff, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pending by animal, got %d body=%s", st, string(body))
		}
		var group struct {
			Requests []struct {
				ID string `json:"id"`
			} `json:"requests"`
		}
		_ = json.Unmarshal(body, &group)
		if len(group.Requests) != 2 {
			t.Fatalf("expected 2 pending requests, got %d body=%s", len(group.Requests), string(body))
		}
	}

	// 5) Customers cannot approve
	{
		st, _ := doReq(t, ts.URL, "POST", "/requests/"+reqDiego+"/approve", eva, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 approve by customer, got %d", st)
		}
	}

	// 6) Staff approves Diego's; animal adopted, Eva's rejected
	{
		st, body := doReq(t, ts.URL, "POST", "/requests/"+reqDiego+"/approve", staff, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 approve, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status    string `json:"status"`
			AdoptedAt int64  `json:"adoption_timestamp"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "approved" || resp.AdoptedAt == 0 {
			t.Fatalf("approve response = %s", string(body))
		}
	}
	assertAnimalStatus(t, ts.URL, staff, animalID, "adopted")

	{
		st, body := doReq(t, ts.URL, "GET", "/me/requests", eva, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 my requests, got %d", st)
		}
		var reqs []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &reqs)
		if len(reqs) != 1 || reqs[0].ID != reqEva || reqs[0].Status != "rejected" {
			t.Fatalf("eva's requests = %s", string(body))
		}
	}

	// 7) The adoption shows up in the reports
	{
		st, body := doReq(t, ts.URL, "GET", "/adoptions/reports", staff, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 reports, got %d body=%s", st, string(body))
		}
		var reports []struct {
			Animal struct {
				ID string `json:"id"`
			} `json:"animal"`
			Request struct {
				ID string `json:"id"`
			} `json:"request"`
		}
		_ = json.Unmarshal(body, &reports)
		if len(reports) != 1 || reports[0].Animal.ID != animalID || reports[0].Request.ID != reqDiego {
			t.Fatalf("reports = %s", string(body))
		}
	}

	// 8) No new requests against an adopted animal
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/requests", eva, requestPayload())
		if st != http.StatusConflict {
			t.Fatalf("expected 409 submit on adopted animal, got %d", st)
		}
	}

	// 9) Adopted animals cannot be removed
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/animals/"+animalID, staff, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 delete adopted animal, got %d", st)
		}
	}
}

func TestHTTP_RejectAndRevokeRevertAnimal(t *testing.T) {
	ts := newTestServer(t, router.Options{})

	staff := debugUser{"clara", "staff"}
	diego := debugUser{"diego", "customer"}
	eva := debugUser{"eva", "customer"}

	animalID := createAnimal(t, ts.URL, staff, map[string]any{
		"name": "Rex", "species": "dog",
	})

	reqDiego := submitRequest(t, ts.URL, diego, animalID)
	reqEva := submitRequest(t, ts.URL, eva, animalID)

	// Rejecting one of two keeps the animal requested
	{
		st, body := doReq(t, ts.URL, "POST", "/requests/"+reqDiego+"/reject", staff, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 reject, got %d body=%s", st, string(body))
		}
	}
	assertAnimalStatus(t, ts.URL, staff, animalID, "requested")

	// A customer cannot revoke someone else's request
	{
		st, _ := doReq(t, ts.URL, "POST", "/requests/"+reqEva+"/revoke", diego, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 revoke foreign request, got %d", st)
		}
	}

	// Revoking the last pending request reverts the animal
	{
		st, _ := doReq(t, ts.URL, "POST", "/requests/"+reqEva+"/revoke", eva, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 revoke, got %d", st)
		}
	}
	assertAnimalStatus(t, ts.URL, staff, animalID, "available")

	// The revoked request is gone from the customer's list
	{
		st, body := doReq(t, ts.URL, "GET", "/me/requests", eva, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 my requests, got %d", st)
		}
		var reqs []json.RawMessage
		_ = json.Unmarshal(body, &reqs)
		if len(reqs) != 0 {
			t.Fatalf("expected no requests after revoke, got %s", string(body))
		}
	}
}

func TestHTTP_PassingRejectsPendingRequests(t *testing.T) {
	ts := newTestServer(t, router.Options{})

	staff := debugUser{"clara", "staff"}
	diego := debugUser{"diego", "customer"}

	animalID := createAnimal(t, ts.URL, staff, map[string]any{
		"name": "Max", "species": "cat",
	})
	submitRequest(t, ts.URL, diego, animalID)

	st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/passing", staff, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 passing, got %d body=%s", st, string(body))
	}
	assertAnimalStatus(t, ts.URL, staff, animalID, "passed-away")

	stDiego, bodyDiego := doReq(t, ts.URL, "GET", "/me/requests", diego, nil)
	if stDiego != http.StatusOK {
		t.Fatalf("expected 200 my requests, got %d", stDiego)
	}
	var reqs []struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(bodyDiego, &reqs)
	if len(reqs) != 1 || reqs[0].Status != "rejected" {
		t.Fatalf("requests after passing = %s", string(bodyDiego))
	}
}

func TestHTTP_TokenAuthFlow(t *testing.T) {
	tok, err := token.New("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token.New: %v", err)
	}
	ts := newTestServer(t, router.Options{Verifier: tok, Issuer: tok})

	// Sign up issues a usable token
	st, body := doJSON(t, ts.URL, "POST", "/auth/signup", "", map[string]any{
		"username": "clara",
		"password": "hunter22",
		"role":     "staff",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 signup, got %d body=%s", st, string(body))
	}
	var signup struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &signup)
	if signup.Token == "" {
		t.Fatalf("signup response missing token: %s", string(body))
	}

	// Without a token, mutations are unauthorized
	st, _ = doJSON(t, ts.URL, "POST", "/animals", "", map[string]any{
		"name": "Luna", "species": "dog",
	})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", st)
	}

	// With the signup token, staff operations work
	st, body = doJSON(t, ts.URL, "POST", "/animals", signup.Token, map[string]any{
		"name": "Luna", "species": "dog",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 with token, got %d body=%s", st, string(body))
	}

	// Wrong password logs in with the tri-state result, no token
	st, body = doJSON(t, ts.URL, "POST", "/auth/login", "", map[string]any{
		"username": "clara",
		"password": "wrong",
	})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 bad login, got %d", st)
	}
	var login struct {
		Result string `json:"result"`
		Token  string `json:"token"`
	}
	_ = json.Unmarshal(body, &login)
	if login.Result != "invalid-password" || login.Token != "" {
		t.Fatalf("login response = %s", string(body))
	}

	// Unknown user is told apart from a wrong password
	st, body = doJSON(t, ts.URL, "POST", "/auth/login", "", map[string]any{
		"username": "ghost",
		"password": "hunter22",
	})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 unknown user, got %d", st)
	}
	_ = json.Unmarshal(body, &login)
	if login.Result != "user-not-found" {
		t.Fatalf("login response = %s", string(body))
	}

	// Good login returns role and token; /auth/me resolves it
	st, body = doJSON(t, ts.URL, "POST", "/auth/login", "", map[string]any{
		"username": "clara",
		"password": "hunter22",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
	}
	_ = json.Unmarshal(body, &login)
	if login.Result != "success" || login.Token == "" {
		t.Fatalf("login response = %s", string(body))
	}

	st, body = doJSON(t, ts.URL, "GET", "/auth/me", login.Token, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 me, got %d body=%s", st, string(body))
	}
	var me struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	_ = json.Unmarshal(body, &me)
	if me.Username != "clara" || me.Role != "staff" {
		t.Fatalf("me response = %s", string(body))
	}
}

func TestHTTP_ListFilterValidation(t *testing.T) {
	ts := newTestServer(t, router.Options{})

	st, _ := doReq(t, ts.URL, "GET", "/animals?status=flying", debugUser{"diego", "customer"}, nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "GET", "/animals?admitted=never", debugUser{"diego", "customer"}, nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown period, got %d", st)
	}
}

type debugUser struct {
	username string
	role     string
}

func createAnimal(t *testing.T, baseURL string, u debugUser, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals", u, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create animal: missing id body=%s", string(body))
	}
	return resp.ID
}

func requestPayload() map[string]any {
	return map[string]any{
		"name":       "Some Person",
		"email":      "person@example.com",
		"num_people": 2,
	}
}

func submitRequest(t *testing.T, baseURL string, u debugUser, animalID string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals/"+animalID+"/requests", u, requestPayload())
	if st != http.StatusCreated {
		t.Fatalf("expected 201 submit request, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("submit request: missing id body=%s", string(body))
	}
	return resp.ID
}

func assertAnimalStatus(t *testing.T, baseURL string, u debugUser, animalID, want string) {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/animals/"+animalID, u, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get animal, got %d body=%s", st, string(body))
	}
	var resp struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Status != want {
		t.Fatalf("animal status = %q, want %q", resp.Status, want)
	}
}

func doReq(t *testing.T, baseURL, method, path string, u debugUser, body any) (int, []byte) {
	t.Helper()

	req := newRequest(t, baseURL, method, path, body)
	if u.username != "" {
		req.Header.Set("X-Debug-Username", u.username)
		req.Header.Set("X-Debug-Role", u.role)
	}
	return send(t, req)
}

func doJSON(t *testing.T, baseURL, method, path, bearer string, body any) (int, []byte) {
	t.Helper()

	req := newRequest(t, baseURL, method, path, body)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return send(t, req)
}

func newRequest(t *testing.T, baseURL, method, path string, body any) *http.Request {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
