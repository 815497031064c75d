package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-task-api/internal/model"
)

// authenticator is the slice of the auth service the guard needs.
type authenticator interface {
	VerifyToken(tokenString string) (*model.TokenClaims, error)
	UserFromClaims(ctx context.Context, claims *model.TokenClaims) (*model.AuthUser, error)
}

type contextKey string

const currentUserContextKey contextKey = "current_user"

type AuthMiddleware struct {
	auth authenticator
}

func NewAuthMiddleware(auth authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth extracts the bearer token, verifies it, re-fetches the
// subject and attaches the resolved user to the request context. Any
// failure aborts the request with 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeGuardError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid authorization header")
			return
		}

		token := strings.TrimSpace(header[7:])
		claims, err := m.auth.VerifyToken(token)
		if err != nil {
			writeGuardError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		user, err := m.auth.UserFromClaims(r.Context(), claims)
		if err != nil {
			writeGuardError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected server error")
			return
		}
		if user == nil {
			writeGuardError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "account not found or deactivated")
			return
		}

		ctx := context.WithValue(r.Context(), currentUserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates a route on role membership. It must be mounted
// after RequireAuth; a request with no resolved user is rejected.
func (m *AuthMiddleware) RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	roleSet := map[string]struct{}{}
	for _, role := range allowedRoles {
		roleSet[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(roleSet) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, ok := UserFromContext(r.Context())
			if !ok {
				writeGuardError(w, r, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
				return
			}

			if _, allowed := roleSet[strings.ToLower(user.Role)]; !allowed {
				writeGuardError(w, r, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func UserFromContext(ctx context.Context) (model.AuthUser, bool) {
	user, ok := ctx.Value(currentUserContextKey).(*model.AuthUser)
	if !ok || user == nil {
		return model.AuthUser{}, false
	}
	return *user, true
}
