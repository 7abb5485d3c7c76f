package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OperationType is the direction of a trade. Stored amounts and quantities are
// always non-negative; the type alone decides whether they add or subtract.
type OperationType string

const (
	OperationBuy  OperationType = "BUY"
	OperationSell OperationType = "SELL"
)

// ParseOperationType accepts "buy"/"sell" in any case.
func ParseOperationType(s string) (OperationType, error) {
	switch OperationType(strings.ToUpper(strings.TrimSpace(s))) {
	case OperationBuy:
		return OperationBuy, nil
	case OperationSell:
		return OperationSell, nil
	default:
		return "", fmt.Errorf("unknown operation type %q", s)
	}
}

// Sign returns +1 for BUY and -1 for SELL.
func (t OperationType) Sign() int64 {
	if t == OperationSell {
		return -1
	}
	return 1
}

// Operation represents one buy or sell of an instrument.
//
// MEP is the exchange-rate snapshot in native currency units per 1 USD at the
// time of the trade; zero means the rate is unknown.
type Operation struct {
	ID     int64           `json:"id"`
	Ticker string          `json:"ticker"`
	Type   OperationType   `json:"type"`
	Qty    int64           `json:"qty"`
	Date   string          `json:"date"`
	MEP    decimal.Decimal `json:"mep"`
	Amount decimal.Decimal `json:"amount"`
}
