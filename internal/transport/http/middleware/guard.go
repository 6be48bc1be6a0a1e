package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"crewsite/internal/domain/access"
	"crewsite/internal/transport/http/api"
)

// Resolver yields the caller's effective permissions. Satisfied by
// access.Service.
type Resolver interface {
	Resolve(ctx context.Context, identity access.Identity) access.Resolution
}

// RequirePermission guards a route behind one permission. While the access
// snapshot is still loading the guard answers 503 instead of a denial, so a
// slow store never flashes "access denied" at a legitimate caller. A denial
// names the caller's resolved role.
func RequirePermission(permission string, resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}

			res := resolver.Resolve(r.Context(), access.Identity{UserID: user.UserID, Email: user.Email})
			if res.Loading {
				w.Header().Set("Retry-After", "1")
				api.Fail(w, http.StatusServiceUnavailable, "loading", "permissions still loading", GetRequestID(r.Context()))
				return
			}
			if !res.Can(permission) {
				role := res.EffectiveRole
				if role == "" {
					role = "unassigned"
				}
				api.Fail(w, http.StatusForbidden, "forbidden",
					fmt.Sprintf("Access denied for role %q", role), GetRequestID(r.Context()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// FieldRedirect sends identities without general dashboard access, but with
// field-only access, to the mobile field area instead of a denial screen.
func FieldRedirect(resolver Resolver, fieldPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok || strings.HasPrefix(r.URL.Path, fieldPath) {
				next.ServeHTTP(w, r)
				return
			}

			res := resolver.Resolve(r.Context(), access.Identity{UserID: user.UserID, Email: user.Email})
			if !res.Loading && !res.Can(access.PermDashboardView) && res.Can(access.PermFieldView) {
				http.Redirect(w, r, fieldPath, http.StatusTemporaryRedirect)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
