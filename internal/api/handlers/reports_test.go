package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/handlers"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/testutil"
)

func newReportHandler(t *testing.T) *handlers.ReportHandler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.SeedScenario(t, db)
	return handlers.NewReportHandler(testutil.NewTestServices(t, db).Reports)
}

func TestReportHandler_Holdings(t *testing.T) {
	handler := newReportHandler(t)

	tests := []struct {
		currency string
		total    string
		chart    string
	}{
		{"", "13500", "ARS"},
		{"ars", "13500", "ARS"},
		{"USD", "14", "USD"},
	}
	for _, tt := range tests {
		t.Run("currency="+tt.currency, func(t *testing.T) {
			req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/report/holdings", map[string]string{"currency": tt.currency})
			w := httptest.NewRecorder()
			handler.Holdings(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
			}

			var view service.HoldingsView
			if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if view.TotalInvested.String() != tt.total {
				t.Errorf("Expected total %s, got %s", tt.total, view.TotalInvested)
			}
			if view.Chart.Currency != tt.chart {
				t.Errorf("Expected chart currency %s, got %s", tt.chart, view.Chart.Currency)
			}
		})
	}

	t.Run("returns 400 for an unknown currency", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/report/holdings", map[string]string{"currency": "EUR"})
		w := httptest.NewRecorder()
		handler.Holdings(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestReportHandler_OtherReports(t *testing.T) {
	handler := newReportHandler(t)

	t.Run("allocation lists every holding", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Allocation(w, httptest.NewRequest(http.MethodGet, "/api/report/allocation", nil))

		var view service.AllocationView
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&view)
		if len(view.Rows) != 3 {
			t.Errorf("Expected 3 allocation rows, got %d", len(view.Rows))
		}
	})

	t.Run("net worth", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.NetWorth(w, httptest.NewRequest(http.MethodGet, "/api/report/net-worth", nil))

		var view service.NetWorthView
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&view)
		if view.TotalNetWorth.String() != "5014" {
			t.Errorf("Expected net worth 5014, got %s", view.TotalNetWorth)
		}
	})

	t.Run("monthly flows", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/report/flows", map[string]string{"granularity": "monthly"})
		w := httptest.NewRecorder()
		handler.Flows(w, req)

		var view service.FlowView
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&view)
		if len(view.Buckets) != 3 {
			t.Errorf("Expected 3 monthly buckets, got %d", len(view.Buckets))
		}
	})

	t.Run("flows reject an unknown granularity", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/report/flows", map[string]string{"granularity": "weekly"})
		w := httptest.NewRecorder()
		handler.Flows(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("dashboard", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/report/dashboard", map[string]string{"currency": "usd"})
		w := httptest.NewRecorder()
		handler.Dashboard(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var dash service.Dashboard
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&dash)
		if dash.Holdings.TotalInvested.String() != "14" {
			t.Errorf("Expected USD holdings total 14, got %s", dash.Holdings.TotalInvested)
		}
		if dash.NetWorth.TotalNetWorth.String() != "5014" {
			t.Errorf("Expected net worth 5014, got %s", dash.NetWorth.TotalNetWorth)
		}
	})
}
