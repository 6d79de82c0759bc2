package middleware

import (
	"context"
	"net/http"
	"strings"

	"smart-clinic-backend/internal/usecase"
	"smart-clinic-backend/pkg/response"
)

type contextKey string

const tokenKey contextKey = "bearer_token"

type AuthMiddleware struct {
	auth usecase.AuthUsecase
}

func NewAuthMiddleware(auth usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireRole admits the request when the bearer token validates for any of
// the given roles. Tokens carry only an identifier; the role check resolves
// against the matching credential table on every request. A token for the
// wrong role fails the same way as a bad token.
func (m *AuthMiddleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Authorization header is required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}
			tokenString := parts[1]

			allowed := false
			for _, role := range roles {
				if m.auth.ValidateToken(r.Context(), tokenString, role) {
					allowed = true
					break
				}
			}
			if !allowed {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), tokenKey, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromContext returns the bearer token stored by RequireRole.
func TokenFromContext(ctx context.Context) (string, bool) {
	tokenString, ok := ctx.Value(tokenKey).(string)
	return tokenString, ok
}
