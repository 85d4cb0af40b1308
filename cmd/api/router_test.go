package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	authdomain "todo-backend/internal/auth/domain"
	authRepo "todo-backend/internal/auth/repository"
	"todo-backend/internal/auth/token"
	authUsecase "todo-backend/internal/auth/usecase"
	tododomain "todo-backend/internal/todo/domain"
	todoRepo "todo-backend/internal/todo/repository"
	todoUsecase "todo-backend/internal/todo/usecase"
	"todo-backend/pkg/config"
	"todo-backend/pkg/database/dbtest"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	clock  time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{t: t, clock: time.Now()}
	db := dbtest.Open(t, &authdomain.User{}, &tododomain.Todo{})
	issuer := token.NewIssuer("test-secret", 30*time.Minute, func() time.Time { return s.clock })

	authUc := authUsecase.NewAuthUsecase(authRepo.NewUserRepository(db), authRepo.NewBcryptHasher(bcrypt.MinCost), issuer)
	todoUc := todoUsecase.NewTodoUsecase(todoRepo.NewGormTodoRepository(db))

	cfg := &config.Config{AppEnv: "development"}
	s.router = NewHandler(authUc, todoUc, cfg).Router()
	return s
}

func (s *testServer) do(method, path, bearer string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()

	if rec := s.do(http.MethodPost, "/signup", "", gin.H{"email": email, "password": password}); rec.Code != http.StatusOK {
		s.t.Fatalf("signup %s: %d %s", email, rec.Code, rec.Body.String())
	}
	rec := s.do(http.MethodPost, "/login", "", gin.H{"email": email, "password": password})
	if rec.Code != http.StatusOK {
		s.t.Fatalf("login %s: %d %s", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decode(s.t, rec, &resp)
	if resp.TokenType != "bearer" || resp.AccessToken == "" {
		s.t.Fatalf("unexpected login response: %s", rec.Body.String())
	}
	return resp.AccessToken
}

type todoJSON struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"due_date"`
}

func (s *testServer) list(bearer, query string) []todoJSON {
	s.t.Helper()
	rec := s.do(http.MethodGet, "/todos"+query, bearer, nil)
	if rec.Code != http.StatusOK {
		s.t.Fatalf("list: %d %s", rec.Code, rec.Body.String())
	}
	var todos []todoJSON
	decode(s.t, rec, &todos)
	return todos
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestBuyMilkScenario(t *testing.T) {
	s := newTestServer(t)
	tok := s.login("a@x.com", "pw1")

	rec := s.do(http.MethodPost, "/todos", tok, gin.H{"title": "buy milk"})
	if rec.Code != http.StatusOK {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}

	todos := s.list(tok, "")
	if len(todos) != 1 {
		t.Fatalf("expected one todo, got %+v", todos)
	}
	if todos[0].Title != "buy milk" || todos[0].Completed || todos[0].DueDate != nil {
		t.Fatalf("unexpected todo: %+v", todos[0])
	}

	rec = s.do(http.MethodPost, "/todos", tok, gin.H{"title": "pay rent", "due_date": "2026-06-01T09:00"})
	if rec.Code != http.StatusOK {
		t.Fatalf("create dated: %d %s", rec.Code, rec.Body.String())
	}

	todos = s.list(tok, "")
	if len(todos) != 2 || todos[0].Title != "pay rent" || todos[1].Title != "buy milk" {
		t.Fatalf("expected dated todo first, got %+v", todos)
	}
	want := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	if todos[0].DueDate == nil || !todos[0].DueDate.Equal(want) {
		t.Fatalf("expected due date %v, got %v", want, todos[0].DueDate)
	}
}

func TestTodoLifecycle(t *testing.T) {
	s := newTestServer(t)
	tok := s.login("a@x.com", "pw1")

	s.do(http.MethodPost, "/todos", tok, gin.H{"title": "draft", "due_date": "2026-01-01"})
	id := s.list(tok, "")[0].ID
	path := "/todos/" + itoa(id)

	if rec := s.do(http.MethodPut, path, tok, nil); rec.Code != http.StatusOK {
		t.Fatalf("toggle: %d %s", rec.Code, rec.Body.String())
	}
	if !s.list(tok, "")[0].Completed {
		t.Fatal("expected completed after toggle")
	}
	if got := s.list(tok, "?status=completed"); len(got) != 1 {
		t.Fatalf("expected one completed todo, got %+v", got)
	}
	if got := s.list(tok, "?status=pending"); len(got) != 0 {
		t.Fatalf("expected no pending todos, got %+v", got)
	}

	if rec := s.do(http.MethodPut, path+"/edit", tok, gin.H{"title": "final"}); rec.Code != http.StatusOK {
		t.Fatalf("edit: %d %s", rec.Code, rec.Body.String())
	}
	edited := s.list(tok, "")[0]
	if edited.Title != "final" || edited.DueDate != nil || !edited.Completed {
		t.Fatalf("unexpected edited todo: %+v", edited)
	}

	if rec := s.do(http.MethodDelete, path, tok, nil); rec.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", rec.Code, rec.Body.String())
	}
	if rec := s.do(http.MethodDelete, path, tok, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
	if got := s.list(tok, ""); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestCrossUserAccessIsNotFound(t *testing.T) {
	s := newTestServer(t)
	alice := s.login("a@x.com", "pw1")
	bob := s.login("b@x.com", "pw2")

	s.do(http.MethodPost, "/todos", alice, gin.H{"title": "alice only"})
	path := "/todos/" + itoa(s.list(alice, "")[0].ID)

	if got := s.list(bob, ""); len(got) != 0 {
		t.Fatalf("bob sees alice's todos: %+v", got)
	}
	for _, tc := range []struct {
		method, path string
		body         any
	}{
		{http.MethodPut, path, nil},
		{http.MethodPut, path + "/edit", gin.H{"title": "hijack"}},
		{http.MethodDelete, path, nil},
	} {
		rec := s.do(tc.method, tc.path, bob, tc.body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", tc.method, tc.path, rec.Code)
		}
	}

	if got := s.list(alice, ""); len(got) != 1 || got[0].Title != "alice only" || got[0].Completed {
		t.Fatalf("alice's todo changed: %+v", got)
	}
}

func TestExpiredTokenMatchesMissingToken(t *testing.T) {
	s := newTestServer(t)
	tok := s.login("a@x.com", "pw1")

	missing := s.do(http.MethodGet, "/todos", "", nil)

	s.clock = s.clock.Add(31 * time.Minute)
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/me"},
		{http.MethodPut, "/me"},
		{http.MethodGet, "/todos"},
		{http.MethodPost, "/todos"},
		{http.MethodPut, "/todos/1"},
		{http.MethodPut, "/todos/1/edit"},
		{http.MethodDelete, "/todos/1"},
	} {
		rec := s.do(route.method, route.path, tok, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, rec.Code)
		}
		if rec.Body.String() != missing.Body.String() {
			t.Fatalf("%s %s: expected body %q, got %q", route.method, route.path, missing.Body.String(), rec.Body.String())
		}
	}
}

func TestSignupAndLoginErrors(t *testing.T) {
	s := newTestServer(t)
	s.login("a@x.com", "pw1")

	if rec := s.do(http.MethodPost, "/signup", "", gin.H{"email": "a@x.com", "password": "other"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate signup: expected 400, got %d", rec.Code)
	}

	wrong := s.do(http.MethodPost, "/login", "", gin.H{"email": "a@x.com", "password": "nope"})
	unknown := s.do(http.MethodPost, "/login", "", gin.H{"email": "z@x.com", "password": "pw1"})
	if wrong.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both, got %d and %d", wrong.Code, unknown.Code)
	}
	if wrong.Body.String() != unknown.Body.String() {
		t.Fatalf("login errors differ: %q vs %q", wrong.Body.String(), unknown.Body.String())
	}

	if rec := s.do(http.MethodPost, "/signup", "", gin.H{"email": "not-an-email", "password": "pw"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid email: expected 400, got %d", rec.Code)
	}
}

func TestProfileRoutes(t *testing.T) {
	s := newTestServer(t)
	tok := s.login("a@x.com", "pw1")

	rec := s.do(http.MethodGet, "/me", tok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get me: %d %s", rec.Code, rec.Body.String())
	}
	var profile struct {
		Email string  `json:"email"`
		Name  *string `json:"name"`
	}
	decode(t, rec, &profile)
	if profile.Email != "a@x.com" || profile.Name != nil {
		t.Fatalf("unexpected profile: %s", rec.Body.String())
	}

	if rec := s.do(http.MethodPut, "/me", tok, gin.H{"name": "Alice"}); rec.Code != http.StatusOK {
		t.Fatalf("put me: %d %s", rec.Code, rec.Body.String())
	}
	decode(t, s.do(http.MethodGet, "/me", tok, nil), &profile)
	if profile.Name == nil || *profile.Name != "Alice" {
		t.Fatalf("expected name Alice, got %v", profile.Name)
	}

	if rec := s.do(http.MethodPut, "/me", tok, gin.H{"name": ""}); rec.Code != http.StatusOK {
		t.Fatalf("clear name: %d %s", rec.Code, rec.Body.String())
	}
	decode(t, s.do(http.MethodGet, "/me", tok, nil), &profile)
	if profile.Name == nil || *profile.Name != "" {
		t.Fatalf("expected empty name, got %v", profile.Name)
	}

	if rec := s.do(http.MethodPut, "/me", tok, gin.H{}); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing name: expected 400, got %d", rec.Code)
	}
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t)
	tok := s.login("a@x.com", "pw1")

	tests := []struct {
		name         string
		method, path string
		body         any
	}{
		{"missing title", http.MethodPost, "/todos", gin.H{"due_date": "2026-01-01"}},
		{"blank title", http.MethodPost, "/todos", gin.H{"title": "   "}},
		{"bad due date", http.MethodPost, "/todos", gin.H{"title": "x", "due_date": "soon"}},
		{"bad id", http.MethodPut, "/todos/abc", nil},
		{"zero id", http.MethodDelete, "/todos/0", nil},
		{"bad status", http.MethodGet, "/todos?status=archived", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(tt.method, tt.path, tok, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestBindErrorsHideValidatorDetails(t *testing.T) {
	s := newTestServer(t)
	tok := s.login("a@x.com", "pw1")

	for _, rec := range []*httptest.ResponseRecorder{
		s.do(http.MethodPost, "/signup", "", gin.H{"email": "not-an-email", "password": "pw"}),
		s.do(http.MethodPost, "/login", "", gin.H{"email": "a@x.com"}),
		s.do(http.MethodPut, "/me", tok, gin.H{}),
		s.do(http.MethodPost, "/todos", tok, gin.H{}),
		s.do(http.MethodPut, "/todos/1/edit", tok, gin.H{}),
	} {
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if got := rec.Body.String(); got != `{"error":"invalid request body"}` {
			t.Fatalf("unexpected body %s", got)
		}
	}
}

func TestHealthAndPreflight(t *testing.T) {
	s := newTestServer(t)

	if rec := s.do(http.MethodGet, "/health", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodOptions, "/todos", nil)
	req.Header.Set("Origin", "http://127.0.0.1:5500")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight: expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://127.0.0.1:5500" {
		t.Fatalf("expected echoed origin, got %q", got)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
