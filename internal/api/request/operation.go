package request

import "github.com/shopspring/decimal"

// OperationRequest is the body of both create and update calls. Updates
// replace every field of the stored operation.
type OperationRequest struct {
	Ticker string          `json:"ticker"`
	Type   string          `json:"type"`
	Qty    int64           `json:"qty"`
	Date   string          `json:"date"`
	MEP    decimal.Decimal `json:"mep"`
	Amount decimal.Decimal `json:"amount"`
}
