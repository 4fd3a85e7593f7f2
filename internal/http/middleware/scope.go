package middleware

import (
	"collabdocs/internal/models"
	"context"
	"net/http"
)

// Scope attaches a fresh request scope to every request. The scope
// memoizes query results and lock lookups for the request lifetime and
// is discarded when the request ends.
func Scope() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), models.ScopeContextKey, models.NewRequestScope())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
