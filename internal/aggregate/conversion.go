package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
)

// ToUSD converts a native amount to USD using mep, expressed in native units
// per 1 USD. An unknown rate (zero or negative) contributes zero rather than
// the unconverted amount.
func ToUSD(amount, mep decimal.Decimal) decimal.Decimal {
	if !mep.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(mep)
}

// Contribution returns the unsigned amount of op in the requested currency.
func Contribution(op model.Operation, currency model.DisplayCurrency) decimal.Decimal {
	if currency == model.CurrencyUSD {
		return ToUSD(op.Amount, op.MEP)
	}
	return op.Amount
}

// signed applies the direction of the operation type to v.
func signed(t model.OperationType, v decimal.Decimal) decimal.Decimal {
	if t == model.OperationSell {
		return v.Neg()
	}
	return v
}
