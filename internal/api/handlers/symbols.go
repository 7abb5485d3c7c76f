package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/validation"
)

// SymbolHandler handles HTTP requests for the symbol registry.
type SymbolHandler struct {
	symbolService *service.SymbolService
}

// NewSymbolHandler creates a new SymbolHandler
func NewSymbolHandler(symbolService *service.SymbolService) *SymbolHandler {
	return &SymbolHandler{
		symbolService: symbolService,
	}
}

// Symbols lists every listed ticker with its target ratio.
//
// Endpoint: GET /api/symbol
// Response: 200 OK with array of Symbol
func (h *SymbolHandler) Symbols(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.symbolService.GetSymbols(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSymbols.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, symbols)
}

// CreateSymbol lists a ticker.
//
// Endpoint: POST /api/symbol
// Request Body: CreateSymbolRequest (ticker, ratio)
// Response: 201 Created with Symbol
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if the ticker is already listed
func (h *SymbolHandler) CreateSymbol(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateSymbolRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	req.Ticker = validation.NormalizeTicker(req.Ticker)

	if err := validation.ValidateCreateSymbol(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	symbol, err := h.symbolService.CreateSymbol(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToCreateSymbol)
		return
	}

	response.RespondJSON(w, http.StatusCreated, symbol)
}

// DeleteSymbol unlists a ticker.
//
// Endpoint: DELETE /api/symbol/{ticker}
// Response: 204 No Content
// Error: 404 Not Found if the ticker is not listed
func (h *SymbolHandler) DeleteSymbol(w http.ResponseWriter, r *http.Request) {
	ticker := validation.NormalizeTicker(chi.URLParam(r, "ticker"))
	if err := validation.ValidateTicker(ticker); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ticker", err.Error())
		return
	}

	if err := h.symbolService.DeleteSymbol(r.Context(), ticker); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDeleteSymbol)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
