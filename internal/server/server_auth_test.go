package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"artisanmarket/internal/app"
	"artisanmarket/internal/storage"
	"artisanmarket/internal/store"
	"artisanmarket/internal/token"
	"artisanmarket/pkg/domain"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	if cfg.App == nil {
		cfg.App = newTestAppForServer(t)
	}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func newTestAppForServer(t *testing.T) *app.App {
	t.Helper()
	tokens, err := token.NewManager(token.Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	blobs, err := storage.NewFileStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	a, err := app.New(app.Config{Store: store.NewMemoryStore(), Tokens: tokens, Blobs: blobs})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func signUp(t *testing.T, baseURL, name, email, role string) (domain.User, string) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"name":     name,
		"email":    email,
		"password": "hunter22",
		"role":     role,
	})
	resp, err := http.Post(baseURL+"/api/signup", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("signup request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup expected 201, got %d", resp.StatusCode)
	}
	var out struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	return out.User, out.Token
}

func TestSignupLoginFlow(t *testing.T) {
	ts := newTestServer(t, Config{})

	user, token := signUp(t, ts.URL, "Meera", "meera@example.com", "artisan")
	if user.Role != domain.RoleArtisan || token == "" {
		t.Fatalf("unexpected signup result: %+v token=%q", user, token)
	}

	body := []byte(`{"email":"meera@example.com","password":"hunter22"}`)
	resp, err := http.Post(ts.URL+"/api/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login expected 200, got %d", resp.StatusCode)
	}

	bad := []byte(`{"email":"meera@example.com","password":"wrong"}`)
	resp, err = http.Post(ts.URL+"/api/login", "application/json", bytes.NewReader(bad))
	if err != nil {
		t.Fatalf("bad login request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login expected 401, got %d", resp.StatusCode)
	}
}

func TestSignupDuplicateEmailConflict(t *testing.T) {
	ts := newTestServer(t, Config{})
	signUp(t, ts.URL, "A", "a@example.com", "buyer")

	body := []byte(`{"name":"B","email":"a@example.com","password":"hunter22"}`)
	resp, err := http.Post(ts.URL+"/api/signup", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("signup request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate signup expected 409, got %d", resp.StatusCode)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/api/artisan/products")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("missing token expected 401, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/artisan/products", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token expected 401, got %d", resp.StatusCode)
	}
}

func TestAuthTokenHeaderFallback(t *testing.T) {
	ts := newTestServer(t, Config{})
	_, token := signUp(t, ts.URL, "Meera", "meera@example.com", "artisan")

	// Older clients send the token in x-auth-token instead of Authorization.
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/artisan/products", nil)
	req.Header.Set("x-auth-token", token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("x-auth-token expected 200, got %d", resp.StatusCode)
	}
}

func TestProductCreateRequiresArtisanRole(t *testing.T) {
	ts := newTestServer(t, Config{})
	_, buyerToken := signUp(t, ts.URL, "Bea", "bea@example.com", "buyer")

	body := []byte(`{"title":"Pot","price":100}`)
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/products", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+buyerToken)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("buyer product create expected 403, got %d", resp.StatusCode)
	}
}

func TestProductOwnerScopedUpdate(t *testing.T) {
	ts := newTestServer(t, Config{})
	_, owner := signUp(t, ts.URL, "Meera", "meera@example.com", "artisan")
	_, intruder := signUp(t, ts.URL, "Ivan", "ivan@example.com", "artisan")

	body := []byte(`{"title":"Clay pot","price":450}`)
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/products", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+owner)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	var created domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created product: %v", err)
	}
	resp.Body.Close()

	update := []byte(`{"title":"Hijacked","price":1}`)
	req, _ = http.NewRequest(http.MethodPut, ts.URL+"/api/products/"+created.ID, bytes.NewReader(update))
	req.Header.Set("Authorization", "Bearer "+intruder)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("foreign update request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign update expected 404, got %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz expected 200, got %d", resp.StatusCode)
	}
}
