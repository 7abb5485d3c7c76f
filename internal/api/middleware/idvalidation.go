// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/validation"
)

type idKey struct{}

// ValidateIDMiddleware validates that the id URL parameter is a positive
// integer and stores the parsed value for IDFromContext.
// Returns 400 Bad Request if the id is missing or malformed.
//
// Example usage in router:
//
//	r.Route("/{id}", func(r chi.Router) {
//	    r.Use(middleware.ValidateIDMiddleware)
//	    r.Get("/", handler.GetOperation)
//	    r.Delete("/", handler.DeleteOperation)
//	})
func ValidateIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "id")
		if raw == "" {
			response.RespondError(w, http.StatusBadRequest, "valid ID is required", "")
			return
		}

		id, err := validation.ValidateID(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid ID format", err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), idKey{}, id)))
	})
}

// IDFromContext returns the id stored by ValidateIDMiddleware.
func IDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(idKey{}).(int64)
	return id, ok
}
