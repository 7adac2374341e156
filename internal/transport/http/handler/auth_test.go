package handler_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/akylbekov/task-tracker/internal/domain"
	"github.com/akylbekov/task-tracker/internal/transport/http/handler"
	"github.com/akylbekov/task-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuthUsecase implements the unexported authUsecaser interface via method matching.
type fakeAuthUsecase struct {
	register      func(ctx context.Context, input usecase.RegisterInput) (*domain.User, string, error)
	login         func(ctx context.Context, email, password string) (*domain.User, string, error)
	profile       func(ctx context.Context, userID string) (*domain.User, error)
	updateProfile func(ctx context.Context, input usecase.UpdateProfileInput) (*domain.User, error)
}

func (f *fakeAuthUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, string, error) {
	return f.register(ctx, input)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAuthUsecase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return f.profile(ctx, userID)
}

func (f *fakeAuthUsecase) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*domain.User, error) {
	return f.updateProfile(ctx, input)
}

var testUser = &domain.User{ID: "user-1", Name: "Ann", Email: "ann@x.com"}

func newAuthEngine(uc *fakeAuthUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewAuthHandler(uc, logger)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)

	// Protected routes: the auth middleware is tested separately, a stub
	// injects the verified user ID here.
	authed := r.Group("/", func(c *gin.Context) { c.Set("userID", testUser.ID) })
	authed.GET("/auth/profile", h.Profile)
	authed.PUT("/auth/profile", h.UpdateProfile)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

// ---- Register ----

func TestRegister_InvalidJSON_Returns400(t *testing.T) {
	w := doJSON(t, newAuthEngine(&fakeAuthUsecase{}), http.MethodPost, "/auth/register", `{bad json}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_ShortPassword_Returns400(t *testing.T) {
	w := doJSON(t, newAuthEngine(&fakeAuthUsecase{}), http.MethodPost, "/auth/register",
		`{"name":"Ann","email":"ann@x.com","password":"12345"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_InvalidEmail_Returns400(t *testing.T) {
	w := doJSON(t, newAuthEngine(&fakeAuthUsecase{}), http.MethodPost, "/auth/register",
		`{"name":"Ann","email":"not-an-email","password":"secret1"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_EmailTaken_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, _ usecase.RegisterInput) (*domain.User, string, error) {
			return nil, "", domain.ErrEmailTaken
		},
	}
	w := doJSON(t, newAuthEngine(uc), http.MethodPost, "/auth/register",
		`{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Email already in use") {
		t.Errorf("body %q does not mention the conflict", w.Body.String())
	}
}

func TestRegister_Success_Returns201WithTokenAndUser(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, _ usecase.RegisterInput) (*domain.User, string, error) {
			return testUser, "signed.jwt.token", nil
		},
	}
	w := doJSON(t, newAuthEngine(uc), http.MethodPost, "/auth/register",
		`{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "signed.jwt.token") {
		t.Errorf("body %q does not contain the token", body)
	}
	if !strings.Contains(body, testUser.Email) {
		t.Errorf("body %q does not contain the user", body)
	}
	if strings.Contains(body, "password") {
		t.Errorf("body %q leaks password material", body)
	}
}

// ---- Login ----

func TestLogin_InvalidCredentials_Returns401(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	w := doJSON(t, newAuthEngine(uc), http.MethodPost, "/auth/login",
		`{"email":"ann@x.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid credentials") {
		t.Errorf("body %q lacks the generic credentials message", w.Body.String())
	}
}

func TestLogin_InternalError_Returns500GenericBody(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return nil, "", errors.New("pq: connection reset")
		},
	}
	w := doJSON(t, newAuthEngine(uc), http.MethodPost, "/auth/login",
		`{"email":"ann@x.com","password":"secret1"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "connection reset") {
		t.Errorf("body %q leaks internal error detail", w.Body.String())
	}
}

func TestLogin_Success_Returns200(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return testUser, "signed.jwt.token", nil
		},
	}
	w := doJSON(t, newAuthEngine(uc), http.MethodPost, "/auth/login",
		`{"email":"ann@x.com","password":"secret1"}`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "signed.jwt.token") {
		t.Errorf("body %q does not contain the token", w.Body.String())
	}
}

// ---- Profile ----

func TestProfile_NotFound_Returns404(t *testing.T) {
	uc := &fakeAuthUsecase{
		profile: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	w := doJSON(t, newAuthEngine(uc), http.MethodGet, "/auth/profile", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestProfile_Success_Returns200(t *testing.T) {
	uc := &fakeAuthUsecase{
		profile: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != testUser.ID {
				t.Errorf("userID = %q, want %q", userID, testUser.ID)
			}
			return testUser, nil
		},
	}
	w := doJSON(t, newAuthEngine(uc), http.MethodGet, "/auth/profile", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), testUser.Email) {
		t.Errorf("body %q does not contain the user", w.Body.String())
	}
}

// ---- UpdateProfile ----

func TestUpdateProfile_NoFields_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		updateProfile: func(_ context.Context, _ usecase.UpdateProfileInput) (*domain.User, error) {
			return nil, domain.ErrNoFieldsToUpdate
		},
	}
	w := doJSON(t, newAuthEngine(uc), http.MethodPut, "/auth/profile", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpdateProfile_EmailTaken_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		updateProfile: func(_ context.Context, _ usecase.UpdateProfileInput) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	w := doJSON(t, newAuthEngine(uc), http.MethodPut, "/auth/profile", `{"email":"taken@x.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpdateProfile_Success_Returns200(t *testing.T) {
	uc := &fakeAuthUsecase{
		updateProfile: func(_ context.Context, input usecase.UpdateProfileInput) (*domain.User, error) {
			if input.UserID != testUser.ID {
				t.Errorf("userID = %q, want %q", input.UserID, testUser.ID)
			}
			updated := *testUser
			updated.Name = *input.Name
			return &updated, nil
		},
	}
	w := doJSON(t, newAuthEngine(uc), http.MethodPut, "/auth/profile", `{"name":"Anna"}`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Anna") {
		t.Errorf("body %q does not contain the updated name", w.Body.String())
	}
}
