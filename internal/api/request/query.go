package request

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
)

// ImportMode selects whether an import adds to or replaces a collection.
type ImportMode string

const (
	ImportAppend  ImportMode = "append"
	ImportReplace ImportMode = "replace"
)

// ReportParams holds the parsed query parameters of the report endpoints.
type ReportParams struct {
	Currency    model.DisplayCurrency
	Granularity model.Granularity
}

// ParseReportParams extracts the display currency and flow granularity from
// query parameters. Both are optional: currency defaults to the native
// currency and granularity to yearly buckets. nativeCode is accepted as an
// alias for NATIVE.
func ParseReportParams(currencyParam, granularityParam, nativeCode string) (ReportParams, error) {
	currency, err := model.ParseDisplayCurrency(currencyParam, nativeCode)
	if err != nil {
		return ReportParams{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidCurrency, currencyParam)
	}

	granularity, err := model.ParseGranularity(granularityParam)
	if err != nil {
		return ReportParams{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidGranularity, granularityParam)
	}

	return ReportParams{Currency: currency, Granularity: granularity}, nil
}

// ParseImportMode validates the mode query parameter of an import.
// An empty value selects the collection's default: symbols replace, the
// other collections append.
func ParseImportMode(modeParam string, c model.Collection) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(modeParam))) {
	case "":
		if c == model.CollectionSymbols {
			return ImportReplace, nil
		}
		return ImportAppend, nil
	case ImportAppend:
		return ImportAppend, nil
	case ImportReplace:
		return ImportReplace, nil
	default:
		return "", fmt.Errorf("%w: %s", apperrors.ErrInvalidImportMode, modeParam)
	}
}

// ParseCollection validates a collection path parameter.
func ParseCollection(param string) (model.Collection, error) {
	c, ok := model.ParseCollection(strings.ToLower(param))
	if !ok {
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnknownCollection, param)
	}
	return c, nil
}
