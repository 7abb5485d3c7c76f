package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	t.Run("sets content-type and status code", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondJSON(w, http.StatusCreated, map[string]string{"message": "ok"})

		if w.Code != http.StatusCreated {
			t.Errorf("Expected status 201, got %d", w.Code)
		}
		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", w.Header().Get("Content-Type"))
		}
	})

	t.Run("handles nil data", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondJSON(w, http.StatusNoContent, nil)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("Expected empty body, got %q", w.Body.String())
		}
	})

	t.Run("handles un-encodable data gracefully", func(t *testing.T) {
		w := httptest.NewRecorder()

		// Channels cannot be JSON encoded
		RespondJSON(w, http.StatusOK, map[string]interface{}{"channel": make(chan int)})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()

	RespondError(w, http.StatusNotFound, "asset not found", "id 7")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	var body ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Error != "asset not found" {
		t.Errorf("Expected error 'asset not found', got '%s'", body.Error)
	}
	if body.Details != "id 7" {
		t.Errorf("Expected details 'id 7', got '%v'", body.Details)
	}
}

func TestRespondFile(t *testing.T) {
	w := httptest.NewRecorder()

	RespondFile(w, "text/csv", "portfolio_symbols.csv", []byte("ticker,ratio\n"))

	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="portfolio_symbols.csv"` {
		t.Errorf("Unexpected Content-Disposition %q", got)
	}
	if w.Body.String() != "ticker,ratio\n" {
		t.Errorf("Unexpected body %q", w.Body.String())
	}
}
