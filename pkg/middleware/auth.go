package middleware

import (
	"net/http"
	"strings"

	"github.com/shashiranjanraj/backoffice/pkg/auth"
	"github.com/shashiranjanraj/backoffice/pkg/logger"
	"github.com/shashiranjanraj/backoffice/pkg/response"
)

// Auth rejects requests without a valid bearer token and stores the
// verified claims on the request context.
func Auth(v *auth.Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				response.Unauthorized(w)
				return
			}

			claims, err := v.Validate(strings.TrimSpace(token))
			if err != nil {
				logger.WithCtx(r.Context()).Warn("auth: token rejected", "error", err)
				response.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
