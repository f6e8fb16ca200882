package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
	"github.com/mkuznecov/valvecalc-backend/internal/service/auth"
)

type authServiceMock struct {
	RegisterFunc func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	LoginFunc    func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
}

func (m *authServiceMock) Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	return m.LoginFunc(ctx, input)
}

func TestRegister_Created(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &authServiceMock{
		RegisterFunc: func(_ context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
			if input.Username != "anna" {
				t.Errorf("username = %q", input.Username)
			}
			return &auth.AuthResult{
				AccessToken: "token-123",
				User:        domain.User{ID: userID, Username: "anna", Role: domain.UserRoleUser},
			}, nil
		},
	}
	h := NewAuthHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"username":"anna","password":"secret-pass"}`))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var resp authResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccessToken != "token-123" {
		t.Errorf("accessToken = %q", resp.AccessToken)
	}
	if resp.User.ID != userID.String() || resp.User.Role != "user" {
		t.Errorf("user = %+v", resp.User)
	}
}

func TestRegister_InvalidBody(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&authServiceMock{}, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRegister_Conflict(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		RegisterFunc: func(context.Context, auth.RegisterInput) (*auth.AuthResult, error) {
			return nil, domain.ErrAlreadyExists
		},
	}
	h := NewAuthHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"username":"anna","password":"secret-pass"}`))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestLogin_OK(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		LoginFunc: func(_ context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
			return &auth.AuthResult{
				AccessToken: "token-456",
				User:        domain.User{ID: uuid.New(), Username: input.Username, Role: domain.UserRoleSuperadmin},
			}, nil
		},
	}
	h := NewAuthHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"root","password":"secret-pass"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp authResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.Role != "superadmin" {
		t.Errorf("role = %q", resp.User.Role)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		LoginFunc: func(context.Context, auth.LoginInput) (*auth.AuthResult, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := NewAuthHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"root","password":"wrong"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "unauthorized" {
		t.Errorf("error = %q", resp["error"])
	}
}

func TestLogin_ValidationMessagePassedThrough(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		LoginFunc: func(context.Context, auth.LoginInput) (*auth.AuthResult, error) {
			return nil, domain.NewValidationError("username", "required")
		},
	}
	h := NewAuthHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp["error"], "username") {
		t.Errorf("error = %q, want the field name in the message", resp["error"])
	}
}
