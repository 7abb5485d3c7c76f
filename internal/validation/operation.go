package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
)

// ValidateOperation validates an operation create or replace request.
// The ticker is expected to be normalized already.
//
// Required fields:
//   - ticker: letters, digits, '.', '_' or '-'
//   - type: BUY or SELL (any case)
//   - date: YYYY-MM-DD
//
// Numeric fields:
//   - qty, amount, mep: must not be negative (a zero mep means the rate is unknown)
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateOperation(req request.OperationRequest) error {
	errors := make(map[string]string)

	if err := ValidateTicker(req.Ticker); err != nil {
		errors["ticker"] = err.Error()
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if _, err := model.ParseOperationType(req.Type); err != nil {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse(dateLayout, req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if req.Qty < 0 {
		errors["qty"] = "qty must not be negative"
	}

	if req.Amount.IsNegative() {
		errors["amount"] = "amount must not be negative"
	}

	if req.MEP.IsNegative() {
		errors["mep"] = "mep must not be negative"
	}

	return result(errors)
}
