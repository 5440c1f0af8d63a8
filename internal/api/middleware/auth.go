package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers"
)

// Role carried by the portal gateway in the X-User-Role header
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Principal the authenticated caller
type Principal struct {
	UserID int64
	Role   string
}

// IsAdmin reports whether the caller holds the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type principalContextKey struct{}

// Auth validates the X-User-ID and X-User-Role headers set by the portal
// gateway and stores the principal in the request context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, "missing X-User-ID header")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "invalid X-User-ID header")
			return
		}

		role := r.Header.Get("X-User-Role")
		if role != RoleAdmin && role != RoleStudent {
			handlers.RespondUnauthorized(w, "invalid X-User-Role header")
			return
		}

		ctx := context.WithValue(r.Context(), principalContextKey{}, Principal{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects non-admin callers. Must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := GetPrincipal(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, "missing authentication")
			return
		}
		if !principal.IsAdmin() {
			handlers.RespondForbidden(w, "administrator role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetPrincipal extracts the authenticated caller from the context
func GetPrincipal(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(Principal)
	return principal, ok
}

// GetUserID extracts the caller's user id from the context
func GetUserID(ctx context.Context) (int64, bool) {
	principal, ok := GetPrincipal(ctx)
	if !ok {
		return 0, false
	}
	return principal.UserID, true
}
