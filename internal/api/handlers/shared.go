package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/validation"
)

// maxUploadSize bounds CSV and archive request bodies.
const maxUploadSize = 32 << 20

// parseJSON decodes the request body into T, rejecting unknown fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}

// readBody reads an upload, bounded by maxUploadSize.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadSize))
}

// pathID returns the {id} URL parameter. Routes carrying it are guarded by
// middleware.ValidateIDMiddleware, which stores the parsed value.
func pathID(r *http.Request) (int64, error) {
	if id, ok := middleware.IDFromContext(r.Context()); ok {
		return id, nil
	}
	return validation.ValidateID(chi.URLParam(r, "id"))
}

// respondServiceError maps a service error onto a status code. Errors that
// match no known kind are reported as 500 with the fallback message.
func respondServiceError(w http.ResponseWriter, err error, fallback error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)

	case errors.Is(err, apperrors.ErrMalformedRecord):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrMalformedRecord.Error(), strings.Split(err.Error(), "\n"))

	case errors.Is(err, apperrors.ErrInvalidCSVHeaders),
		errors.Is(err, apperrors.ErrEmptyImport),
		errors.Is(err, apperrors.ErrInvalidBackup),
		errors.Is(err, apperrors.ErrInvalidID),
		errors.Is(err, apperrors.ErrInvalidTicker),
		errors.Is(err, apperrors.ErrInvalidCurrency),
		errors.Is(err, apperrors.ErrInvalidGranularity),
		errors.Is(err, apperrors.ErrInvalidImportMode):
		response.RespondError(w, http.StatusBadRequest, rootMessage(err), err.Error())

	case errors.Is(err, apperrors.ErrOperationNotFound),
		errors.Is(err, apperrors.ErrSymbolNotFound),
		errors.Is(err, apperrors.ErrAssetNotFound),
		errors.Is(err, apperrors.ErrUnknownCollection),
		errors.Is(err, apperrors.ErrEmptyBackup):
		response.RespondError(w, http.StatusNotFound, rootMessage(err), err.Error())

	case errors.Is(err, apperrors.ErrDuplicateSymbol):
		response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateSymbol.Error(), err.Error())

	default:
		response.RespondError(w, http.StatusInternalServerError, fallback.Error(), err.Error())
	}
}

// rootMessage returns the message of the innermost wrapped error.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
