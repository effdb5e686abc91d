package middleware

import (
	"net/http"

	"lodge/shared/failure"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UUIDParam answers not found with message when the route parameter param is not a UUID.
// Mount it inline with chi.Router.With so the parameter has already been matched.
func UUIDParam(param, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := uuid.Validate(chi.URLParam(r, param)); err != nil {
				response.WithError(w, failure.NotFound(message))

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
