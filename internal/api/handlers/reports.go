package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/service"
)

// ReportHandler serves the aggregated reports. Every response carries the
// chart series the dashboard draws.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Holdings returns the per-ticker position report.
//
// Endpoint: GET /api/report/holdings?currency=NATIVE|USD
// Response: 200 OK with HoldingsView
// Error: 400 Bad Request if the currency is unknown
func (h *ReportHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	params, ok := h.params(w, r)
	if !ok {
		return
	}

	view, err := h.reportService.Holdings(r.Context(), params.Currency)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToBuildReport)
		return
	}

	response.RespondJSON(w, http.StatusOK, view)
}

// Allocation compares target and actual ratios of listed tickers.
//
// Endpoint: GET /api/report/allocation?currency=NATIVE|USD
// Response: 200 OK with AllocationView
func (h *ReportHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	params, ok := h.params(w, r)
	if !ok {
		return
	}

	view, err := h.reportService.Allocation(r.Context(), params.Currency)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToBuildReport)
		return
	}

	response.RespondJSON(w, http.StatusOK, view)
}

// NetWorth sums the portfolio and declared assets in USD.
//
// Endpoint: GET /api/report/net-worth
// Response: 200 OK with NetWorthView
func (h *ReportHandler) NetWorth(w http.ResponseWriter, r *http.Request) {
	view, err := h.reportService.NetWorth(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToBuildReport)
		return
	}

	response.RespondJSON(w, http.StatusOK, view)
}

// Flows returns buy, sell and net flows per period.
//
// Endpoint: GET /api/report/flows?granularity=YEAR|MONTH
// Response: 200 OK with FlowView
// Error: 400 Bad Request if the granularity is unknown
func (h *ReportHandler) Flows(w http.ResponseWriter, r *http.Request) {
	params, ok := h.params(w, r)
	if !ok {
		return
	}

	view, err := h.reportService.Flows(r.Context(), params.Granularity)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToBuildReport)
		return
	}

	response.RespondJSON(w, http.StatusOK, view)
}

// Dashboard returns every report computed from one snapshot.
//
// Endpoint: GET /api/report/dashboard?currency=&granularity=
// Response: 200 OK with Dashboard
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	params, ok := h.params(w, r)
	if !ok {
		return
	}

	dash, err := h.reportService.Dashboard(r.Context(), params.Currency, params.Granularity)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToBuildReport)
		return
	}

	response.RespondJSON(w, http.StatusOK, dash)
}

func (h *ReportHandler) params(w http.ResponseWriter, r *http.Request) (request.ReportParams, bool) {
	q := r.URL.Query()
	params, err := request.ParseReportParams(q.Get("currency"), q.Get("granularity"), h.reportService.Formatter().NativeCode)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToBuildReport)
		return params, false
	}
	return params, true
}
