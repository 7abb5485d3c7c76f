package validation

import (
	"fmt"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/request"
	"github.com/shopspring/decimal"
)

var maxRatio = decimal.NewFromInt(100)

// ValidateCreateSymbol checks a normalized ticker and a target ratio between 0 and 100.
func ValidateCreateSymbol(req request.CreateSymbolRequest) error {
	errors := make(map[string]string)

	if err := ValidateTicker(req.Ticker); err != nil {
		errors["ticker"] = err.Error()
	}

	if req.Ratio.IsNegative() || req.Ratio.GreaterThan(maxRatio) {
		errors["ratio"] = "ratio must be between 0 and 100"
	}

	return result(errors)
}

// ValidateCreateAsset requires a name with text left once markup is stripped.
// Values may be negative to record debts.
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if SanitizeText(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > maxNameLength {
		errors["name"] = fmt.Sprintf("name must be %d characters or less", maxNameLength)
	}

	return result(errors)
}
