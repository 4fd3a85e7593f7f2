package middleware

import (
	"collabdocs/internal/models"
	"context"
	"log/slog"
	"net/http"
)

// MaybeAuth resolves the requester from a token when one is supplied and
// lets the request through as anonymous otherwise. Read endpoints use it
// so that docs readable by anyone stay readable without a session.
func MaybeAuth(log *slog.Logger, storer SessionStorer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			op := pkg + "MaybeAuth"

			token := r.URL.Query().Get("token")
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			requester, err := storer.UserByToken(r.Context(), token)
			if err != nil {
				log.Warn("ignoring invalid token",
					slog.String("op", op),
					slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), models.UserContextKey, requester)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
