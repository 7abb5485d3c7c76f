package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/validation"
	"github.com/shopspring/decimal"
)

// OperationHandler handles HTTP requests for the operation ledger.
// It parses and validates requests and delegates to the operationService.
type OperationHandler struct {
	operationService *service.OperationService
}

// NewOperationHandler creates a new OperationHandler with the provided service dependency.
func NewOperationHandler(operationService *service.OperationService) *OperationHandler {
	return &OperationHandler{
		operationService: operationService,
	}
}

// Operations returns the whole ledger ordered by date, then id.
//
// Endpoint: GET /api/operation
// Response: 200 OK with array of Operation
// Error: 500 Internal Server Error if retrieval fails
func (h *OperationHandler) Operations(w http.ResponseWriter, r *http.Request) {
	ops, err := h.operationService.GetOperations(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveOperations.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, ops)
}

// GetOperation returns a single operation.
//
// Endpoint: GET /api/operation/{id}
// Response: 200 OK with Operation
// Error: 400 Bad Request if the id is malformed (validated by middleware)
// Error: 404 Not Found if the operation does not exist
func (h *OperationHandler) GetOperation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID", err.Error())
		return
	}

	op, err := h.operationService.GetOperation(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveOperation)
		return
	}

	response.RespondJSON(w, http.StatusOK, op)
}

// LastMEPResponse carries the most recently used exchange rate. MEP is null
// when no operation has a known rate.
type LastMEPResponse struct {
	MEP *decimal.Decimal `json:"mep"`
}

// LastMEP returns the exchange rate of the newest operation that has one,
// used to prefill the next entry.
//
// Endpoint: GET /api/operation/last-mep
// Response: 200 OK with LastMEPResponse
func (h *OperationHandler) LastMEP(w http.ResponseWriter, r *http.Request) {
	mep, ok, err := h.operationService.GetLastMEP(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveOperation.Error(), err.Error())
		return
	}

	var resp LastMEPResponse
	if ok {
		resp.MEP = &mep
	}
	response.RespondJSON(w, http.StatusOK, resp)
}

// CreateOperation records a new operation under a generated id.
//
// Endpoint: POST /api/operation
// Request Body: OperationRequest (ticker, type, qty, date, mep, amount)
// Response: 201 Created with Operation
// Error: 400 Bad Request if validation fails or request body is invalid
func (h *OperationHandler) CreateOperation(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseOperation(w, r)
	if !ok {
		return
	}

	op, err := h.operationService.CreateOperation(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToCreateOperation)
		return
	}

	response.RespondJSON(w, http.StatusCreated, op)
}

// UpdateOperation replaces every field of an existing operation.
//
// Endpoint: PUT /api/operation/{id}
// Request Body: OperationRequest
// Response: 200 OK with the stored Operation
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the operation does not exist
func (h *OperationHandler) UpdateOperation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID", err.Error())
		return
	}

	req, ok := h.parseOperation(w, r)
	if !ok {
		return
	}

	op, err := h.operationService.UpdateOperation(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToUpdateOperation)
		return
	}

	response.RespondJSON(w, http.StatusOK, op)
}

// DeleteOperation removes an operation.
//
// Endpoint: DELETE /api/operation/{id}
// Response: 204 No Content
// Error: 404 Not Found if the operation does not exist
func (h *OperationHandler) DeleteOperation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID", err.Error())
		return
	}

	if err := h.operationService.DeleteOperation(r.Context(), id); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDeleteOperation)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *OperationHandler) parseOperation(w http.ResponseWriter, r *http.Request) (request.OperationRequest, bool) {
	req, err := parseJSON[request.OperationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return req, false
	}
	req.Ticker = validation.NormalizeTicker(req.Ticker)

	if err := validation.ValidateOperation(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return req, false
	}
	return req, true
}
