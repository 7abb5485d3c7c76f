package request

import (
	"errors"
	"testing"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
)

func TestParseReportParams(t *testing.T) {
	tests := []struct {
		name            string
		currency        string
		granularity     string
		wantCurrency    model.DisplayCurrency
		wantGranularity model.Granularity
		wantErr         error
	}{
		{"defaults", "", "", model.CurrencyNative, model.GranularityYear, nil},
		{"usd monthly", "usd", "monthly", model.CurrencyUSD, model.GranularityMonth, nil},
		{"native code alias", "ARS", "year", model.CurrencyNative, model.GranularityYear, nil},
		{"unknown currency", "EUR", "", "", "", apperrors.ErrInvalidCurrency},
		{"unknown granularity", "", "weekly", "", "", apperrors.ErrInvalidGranularity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReportParams(tt.currency, tt.granularity, "ARS")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Currency != tt.wantCurrency {
				t.Errorf("currency = %s, want %s", got.Currency, tt.wantCurrency)
			}
			if got.Granularity != tt.wantGranularity {
				t.Errorf("granularity = %s, want %s", got.Granularity, tt.wantGranularity)
			}
		})
	}
}

func TestParseImportMode(t *testing.T) {
	tests := []struct {
		mode       string
		collection model.Collection
		want       ImportMode
		wantErr    bool
	}{
		{"", model.CollectionSymbols, ImportReplace, false},
		{"", model.CollectionOperations, ImportAppend, false},
		{"", model.CollectionAssets, ImportAppend, false},
		{"REPLACE", model.CollectionOperations, ImportReplace, false},
		{"append", model.CollectionSymbols, ImportAppend, false},
		{"merge", model.CollectionAssets, "", true},
	}

	for _, tt := range tests {
		got, err := ParseImportMode(tt.mode, tt.collection)
		if tt.wantErr {
			if !errors.Is(err, apperrors.ErrInvalidImportMode) {
				t.Errorf("ParseImportMode(%q) expected ErrInvalidImportMode, got %v", tt.mode, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseImportMode(%q, %s) = %s, %v; want %s", tt.mode, tt.collection, got, err, tt.want)
		}
	}
}

func TestParseCollection(t *testing.T) {
	if c, err := ParseCollection("Operations"); err != nil || c != model.CollectionOperations {
		t.Errorf("ParseCollection(Operations) = %s, %v", c, err)
	}
	if _, err := ParseCollection("funds"); !errors.Is(err, apperrors.ErrUnknownCollection) {
		t.Errorf("expected ErrUnknownCollection, got %v", err)
	}
}
