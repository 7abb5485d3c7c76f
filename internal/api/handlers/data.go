package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/interchange"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/service"
)

// DataHandler moves collections in and out as CSV files and backup archives.
type DataHandler struct {
	transferService *service.TransferService
}

// NewDataHandler creates a new DataHandler
func NewDataHandler(transferService *service.TransferService) *DataHandler {
	return &DataHandler{
		transferService: transferService,
	}
}

// ExportCollection downloads one collection as CSV.
//
// Endpoint: GET /api/data/export/{collection}
// Response: 200 OK with text/csv attachment
// Error: 404 Not Found if the collection is unknown
func (h *DataHandler) ExportCollection(w http.ResponseWriter, r *http.Request) {
	c, err := request.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToExport)
		return
	}

	var buf bytes.Buffer
	if err := h.transferService.ExportCSV(r.Context(), &buf, c); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToExport)
		return
	}

	response.RespondFile(w, "text/csv; charset=utf-8", interchange.FileName(c), buf.Bytes())
}

// ExportArchive downloads every non-empty collection as a ZIP archive.
//
// Endpoint: GET /api/data/export
// Response: 200 OK with application/zip attachment
// Error: 404 Not Found if there is nothing to export
func (h *DataHandler) ExportArchive(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.transferService.ExportArchive(r.Context(), &buf); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToExport)
		return
	}

	name := fmt.Sprintf("portfolio-backup-%s.zip", time.Now().Format("20060102-150405"))
	response.RespondFile(w, "application/zip", name, buf.Bytes())
}

// Import loads a CSV body into a collection. mode=append upserts by key,
// mode=replace swaps the whole collection. Either every row is stored or
// none is.
//
// Endpoint: POST /api/data/import/{collection}?mode=append|replace
// Request Body: CSV file
// Response: 200 OK with ImportResult
// Error: 400 Bad Request if the file is malformed (details list every bad line)
func (h *DataHandler) Import(w http.ResponseWriter, r *http.Request) {
	c, err := request.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToImport)
		return
	}

	mode, err := request.ParseImportMode(r.URL.Query().Get("mode"), c)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToImport)
		return
	}

	result, err := h.transferService.Import(r.Context(), http.MaxBytesReader(w, r.Body, maxUploadSize), c, mode)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RespondError(w, http.StatusRequestEntityTooLarge, "file too large", err.Error())
			return
		}
		respondServiceError(w, err, apperrors.ErrFailedToImport)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Restore replaces every collection present in a backup archive.
//
// Endpoint: POST /api/data/restore
// Request Body: ZIP archive, or a sealed archive when a backup key is configured
// Response: 200 OK with RestoreResult
// Error: 400 Bad Request if the archive cannot be read
func (h *DataHandler) Restore(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		response.RespondError(w, http.StatusRequestEntityTooLarge, "file too large", err.Error())
		return
	}

	result, err := h.transferService.Restore(r.Context(), body)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRestore)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Clear deletes every record of every collection.
//
// Endpoint: DELETE /api/data
// Response: 204 No Content
func (h *DataHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.transferService.Clear(r.Context()); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToClear)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
