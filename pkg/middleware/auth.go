package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/response"
)

type userIDKey struct{}
type rolesKey struct{}

// Auth validates the bearer token and stores the caller's id and roles in
// the request context for downstream handlers and the rbac middleware.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")

		if token == "" || token == header {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
		ctx = context.WithValue(ctx, rolesKey{}, claims.Roles)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromCtx returns the authenticated user's id set by Auth.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// RolesFromCtx returns the authenticated user's roles set by Auth.
func RolesFromCtx(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(rolesKey{}).([]string)
	return roles, ok
}
