package model

import "github.com/shopspring/decimal"

// Symbol is a configured instrument with its target allocation percentage.
// The ticker is both the identity and the persisted-record key.
type Symbol struct {
	Ticker string          `json:"ticker"`
	Ratio  decimal.Decimal `json:"ratio"`
}

// Asset is a holding declared by hand outside the traded portfolio.
// Value is always denominated in USD.
type Asset struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}
