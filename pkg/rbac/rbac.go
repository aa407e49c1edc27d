// Package rbac restricts routes to bearer tokens carrying an allowed role.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/backoffice/pkg/auth"
	"github.com/shashiranjanraj/backoffice/pkg/response"
)

// HasRole allows the request through only when the verified token's role is
// one of roles. It must run after middleware.Auth; a request without claims
// is forbidden.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.FromCtx(r.Context())
			if claims == nil || !allowed[claims.Role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
