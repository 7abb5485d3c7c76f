package request

import "github.com/shopspring/decimal"

type CreateSymbolRequest struct {
	Ticker string          `json:"ticker"`
	Ratio  decimal.Decimal `json:"ratio"`
}

type CreateAssetRequest struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}
