package docs

import (
	"collabdocs/internal/models"
	"net/http"
)

// requesterFromContext returns the authenticated user, or nil for an
// anonymous request.
func requesterFromContext(r *http.Request) *models.User {
	requester, ok := r.Context().Value(models.UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return requester
}

func scopeFromContext(r *http.Request) *models.RequestScope {
	scope, ok := r.Context().Value(models.ScopeContextKey).(*models.RequestScope)
	if !ok {
		return models.NewRequestScope()
	}
	return scope
}
