package middleware

import (
	"context"
	"net/http"
	"strings"

	"agency-backend/internal/auth"
	"agency-backend/internal/models"
	"agency-backend/pkg/utils"
)

type contextKey string

const userContextKey contextKey = "user"

// Auth validates bearer tokens on the protected API surface.
type Auth struct {
	session *auth.Session
}

func NewAuth(session *auth.Session) *Auth {
	return &Auth{session: session}
}

// RequireAuth rejects requests without a valid bearer token and puts the
// resolved user into the request context.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.RespondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, err := a.session.UserFromToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole guards admin-only operations. Must run inside RequireAuth.
func (a *Auth) RequireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFrom(r.Context())
		if user == nil || user.Role != role {
			utils.RespondError(w, http.StatusForbidden, "insufficient permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFrom returns the authenticated user stored by RequireAuth, nil if absent.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}
