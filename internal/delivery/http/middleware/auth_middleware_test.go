package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"smart-clinic-backend/internal/delivery/dto"
	"smart-clinic-backend/internal/usecase"
)

// stubAuth accepts exactly one token/role pair.
type stubAuth struct {
	token string
	role  string
}

func (s *stubAuth) LoginAdmin(context.Context, *dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	return nil, nil
}
func (s *stubAuth) LoginDoctor(context.Context, *dto.LoginRequest) (*dto.TokenResponse, error) {
	return nil, nil
}
func (s *stubAuth) LoginPatient(context.Context, *dto.LoginRequest) (*dto.TokenResponse, error) {
	return nil, nil
}
func (s *stubAuth) ValidateToken(_ context.Context, tokenString, role string) bool {
	return tokenString == s.token && role == s.role
}
func (s *stubAuth) DoctorIDFromToken(context.Context, string) (uint, bool)  { return 0, false }
func (s *stubAuth) PatientIDFromToken(context.Context, string) (uint, bool) { return 0, false }

func runRequireRole(t *testing.T, authHeader string, roles ...string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	m := NewAuthMiddleware(&stubAuth{token: "good-token", role: usecase.RoleDoctor})

	reached := false
	var seenToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		seenToken, _ = TokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	m.RequireRole(roles...)(next).ServeHTTP(rec, req)

	if reached && seenToken != "good-token" {
		t.Fatalf("token in context = %q, want good-token", seenToken)
	}
	return rec, reached
}

func TestRequireRoleMissingHeader(t *testing.T) {
	rec, reached := runRequireRole(t, "", usecase.RoleDoctor)
	if rec.Code != http.StatusUnauthorized || reached {
		t.Fatalf("code = %d, reached = %v; want 401 and no handler call", rec.Code, reached)
	}
}

func TestRequireRoleMalformedHeader(t *testing.T) {
	for _, header := range []string{"good-token", "Basic abc", "Bearer"} {
		rec, reached := runRequireRole(t, header, usecase.RoleDoctor)
		if rec.Code != http.StatusUnauthorized || reached {
			t.Fatalf("header %q: code = %d, reached = %v; want 401", header, rec.Code, reached)
		}
	}
}

func TestRequireRoleWrongRole(t *testing.T) {
	rec, reached := runRequireRole(t, "Bearer good-token", usecase.RolePatient)
	if rec.Code != http.StatusUnauthorized || reached {
		t.Fatalf("code = %d, reached = %v; want 401 for wrong role", rec.Code, reached)
	}
}

func TestRequireRoleAllowsAnyListedRole(t *testing.T) {
	rec, reached := runRequireRole(t, "Bearer good-token", usecase.RolePatient, usecase.RoleDoctor)
	if rec.Code != http.StatusOK || !reached {
		t.Fatalf("code = %d, reached = %v; want 200 and handler call", rec.Code, reached)
	}
}

func TestRequireRoleBadToken(t *testing.T) {
	rec, reached := runRequireRole(t, "Bearer forged", usecase.RoleDoctor)
	if rec.Code != http.StatusUnauthorized || reached {
		t.Fatalf("code = %d, reached = %v; want 401 for bad token", rec.Code, reached)
	}
}
