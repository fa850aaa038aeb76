package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/registryhq/birth-registry/internal/api/handler"
	"github.com/registryhq/birth-registry/internal/api/middleware"
	"github.com/registryhq/birth-registry/internal/core/domain"
	"github.com/registryhq/birth-registry/internal/core/ports"
	"github.com/registryhq/birth-registry/internal/core/service"
)

// In-memory stand-ins for the Mongo repositories and the Redis cache so the
// full HTTP surface can be exercised without external services.

type memAuthRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func (r *memAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[clone.Email] = &clone
	out := clone
	return &out, nil
}

type memDetailRepo struct {
	mu      sync.Mutex
	details map[string]*domain.BirthDetail
	nextID  int
}

func (r *memDetailRepo) Create(_ context.Context, d *domain.BirthDetail) (*domain.BirthDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *d
	clone.ID = fmt.Sprintf("detail-%d", r.nextID)
	r.details[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memDetailRepo) List(_ context.Context) ([]*domain.BirthDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.BirthDetail, 0, len(r.details))
	for _, d := range r.details {
		clone := *d
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memDetailRepo) Update(_ context.Context, id string, input ports.UpdateDetailInput) (*domain.BirthDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.details[id]
	if !ok {
		return nil, domain.ErrDetailNotFound
	}
	d.Age = input.Age
	d.YearOfBirth = input.YearOfBirth
	d.PlaceOfBirth = input.PlaceOfBirth
	clone := *d
	return &clone, nil
}

func (r *memDetailRepo) Delete(_ context.Context, id string) (*domain.BirthDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.details[id]
	if !ok {
		return nil, domain.ErrDetailNotFound
	}
	delete(r.details, id)
	return d, nil
}

type memPostRepo struct {
	mu     sync.Mutex
	nextID int
}

func (r *memPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("post-%d", r.nextID)
	return &clone, nil
}

type noopCache struct{}

func (noopCache) Get(context.Context) ([]*domain.BirthDetail, bool, error) { return nil, false, nil }
func (noopCache) Set(context.Context, []*domain.BirthDetail) error         { return nil }
func (noopCache) Invalidate(context.Context) error                         { return nil }

// newTestServer wires the routes exactly as NewRouter does, with in-memory
// persistence.
func newTestServer(secret string, ttl time.Duration) *echo.Echo {
	log := zerolog.Nop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	authRepo := &memAuthRepo{users: make(map[string]*domain.User)}
	authHandler := handler.NewAuthHandler(service.NewAuthService(authRepo, secret, ttl, log))

	detailRepo := &memDetailRepo{details: make(map[string]*domain.BirthDetail)}
	detailHandler := handler.NewDetailHandler(service.NewDetailService(detailRepo, noopCache{}, log))

	postHandler := handler.NewPostHandler(service.NewPostService(&memPostRepo{}, log))

	gate := middleware.Auth(secret, log)

	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/protected", authHandler.Protected, gate)
	auth.POST("/post", postHandler.Create)
	auth.POST("/add", detailHandler.Add, gate)
	auth.GET("/get", detailHandler.List)
	auth.PUT("/update/:id", detailHandler.Update, gate)
	auth.DELETE("/delete/:id", detailHandler.Delete, gate)

	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := make(map[string]any)
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestAuthFlow_EndToEnd(t *testing.T) {
	e := newTestServer("test-secret", time.Hour)

	// Signup succeeds exactly once.
	rec := do(t, e, http.MethodPost, "/api/auth/signup", `{"username":"a","email":"a@x.com","password":"p1"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodPost, "/api/auth/signup", `{"username":"b","email":"a@x.com","password":"p2"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate signup: expected 400, got %d", rec.Code)
	}
	if body := decode(t, rec); body["error"] != "User already exists" {
		t.Fatalf("duplicate signup: unexpected error %v", body["error"])
	}

	// Wrong password fails with the generic message.
	rec = do(t, e, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"wrong"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad login: expected 400, got %d", rec.Code)
	}
	if body := decode(t, rec); body["error"] != "Invalid credentials" {
		t.Fatalf("bad login: unexpected error %v", body["error"])
	}

	// Unknown email yields the exact same failure shape.
	rec2 := do(t, e, http.MethodPost, "/api/auth/login", `{"email":"nobody@x.com","password":"p1"}`, "")
	if rec2.Code != http.StatusBadRequest {
		t.Fatalf("unknown email login: expected 400, got %d", rec2.Code)
	}
	if rec.Body.String() != rec2.Body.String() {
		t.Fatalf("login failures must be indistinguishable: %s vs %s", rec.Body.String(), rec2.Body.String())
	}

	// Correct password returns a token.
	rec = do(t, e, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"p1"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	tok, _ := decode(t, rec)["token"].(string)
	if tok == "" {
		t.Fatalf("login: expected token in response")
	}

	// The token is accepted immediately; the decoded subject is the user id.
	rec = do(t, e, http.MethodGet, "/api/auth/protected", "", "Bearer "+tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("protected: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["message"] != "Access granted" || body["user"] != "user-1" {
		t.Fatalf("protected: unexpected payload %v", body)
	}

	// Raw header without Bearer prefix also passes.
	rec = do(t, e, http.MethodGet, "/api/auth/protected", "", tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("protected raw: expected 200, got %d", rec.Code)
	}

	// No header is rejected.
	rec = do(t, e, http.MethodGet, "/api/auth/protected", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("protected without token: expected 401, got %d", rec.Code)
	}
}

func TestDetailFlow_EndToEnd(t *testing.T) {
	e := newTestServer("test-secret", time.Hour)

	do(t, e, http.MethodPost, "/api/auth/signup", `{"username":"a","email":"a@x.com","password":"p1"}`, "")
	rec := do(t, e, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"p1"}`, "")
	tok, _ := decode(t, rec)["token"].(string)
	if tok == "" {
		t.Fatalf("login failed: %s", rec.Body.String())
	}

	// Gated add requires a token.
	rec = do(t, e, http.MethodPost, "/api/auth/add", `{"age":30,"yearOfBirth":1995,"placeOfBirth":"Lagos"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("add without token: expected 401, got %d", rec.Code)
	}

	rec = do(t, e, http.MethodPost, "/api/auth/add", `{"age":30,"yearOfBirth":1995,"placeOfBirth":"Lagos"}`, "Bearer "+tok)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	data, _ := decode(t, rec)["data"].(map[string]any)
	if data == nil {
		t.Fatalf("add: expected data in response")
	}
	id, _ := data["id"].(string)
	if data["userId"] != "user-1" {
		t.Fatalf("add: expected acting user attached, got %v", data["userId"])
	}

	// Listing is not gated.
	rec = do(t, e, http.MethodGet, "/api/auth/get", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
	var listed []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("get: invalid json: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("get: expected 1 record, got %d", len(listed))
	}

	// Any valid token may mutate any record; ownership is not checked.
	do(t, e, http.MethodPost, "/api/auth/signup", `{"username":"z","email":"z@x.com","password":"p2"}`, "")
	rec = do(t, e, http.MethodPost, "/api/auth/login", `{"email":"z@x.com","password":"p2"}`, "")
	otherTok, _ := decode(t, rec)["token"].(string)

	rec = do(t, e, http.MethodPut, "/api/auth/update/"+id, `{"age":31,"yearOfBirth":1994,"placeOfBirth":"Accra"}`, "Bearer "+otherTok)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodPut, "/api/auth/update/missing", `{"age":1,"yearOfBirth":2024,"placeOfBirth":"Oslo"}`, "Bearer "+tok)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update missing: expected 404, got %d", rec.Code)
	}

	rec = do(t, e, http.MethodDelete, "/api/auth/delete/"+id, "", "Bearer "+otherTok)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodDelete, "/api/auth/delete/"+id, "", "Bearer "+tok)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestExpiredToken_Rejected(t *testing.T) {
	// A near-zero ttl lets the clock overtake the expiry within the test.
	e := newTestServer("test-secret", time.Millisecond)

	do(t, e, http.MethodPost, "/api/auth/signup", `{"username":"a","email":"a@x.com","password":"p1"}`, "")
	rec := do(t, e, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"p1"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	tok, _ := decode(t, rec)["token"].(string)

	// exp is second-resolution; 1.1s later the token is past it for sure.
	time.Sleep(1100 * time.Millisecond)

	rec = do(t, e, http.MethodGet, "/api/auth/protected", "", "Bearer "+tok)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired token: expected 401, got %d", rec.Code)
	}
}

func TestPostCreate_Unauthenticated(t *testing.T) {
	e := newTestServer("test-secret", time.Hour)

	rec := do(t, e, http.MethodPost, "/api/auth/post", `{"title":"hello","content":"world"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("post: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["message"] != "Post created successfully" {
		t.Fatalf("post: unexpected message %v", body["message"])
	}
	post, _ := body["post"].(map[string]any)
	if post == nil || post["title"] != "hello" {
		t.Fatalf("post: unexpected payload %v", body)
	}
}
