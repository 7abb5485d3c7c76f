package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/validation"
)

// AssetHandler handles HTTP requests for declared non-portfolio assets.
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// Assets lists every declared asset.
//
// Endpoint: GET /api/asset
// Response: 200 OK with array of Asset
func (h *AssetHandler) Assets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assetService.GetAssets(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// CreateAsset declares an asset valued in USD.
//
// Endpoint: POST /api/asset
// Request Body: CreateAssetRequest (name, value)
// Response: 201 Created with Asset
// Error: 400 Bad Request if validation fails
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.CreateAsset(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToCreateAsset)
		return
	}

	response.RespondJSON(w, http.StatusCreated, asset)
}

// DeleteAsset removes an asset.
//
// Endpoint: DELETE /api/asset/{id}
// Response: 204 No Content
// Error: 404 Not Found if the asset does not exist
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID", err.Error())
		return
	}

	if err := h.assetService.DeleteAsset(r.Context(), id); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDeleteAsset)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
