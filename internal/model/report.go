package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DisplayCurrency selects the currency holdings are reported in.
type DisplayCurrency string

const (
	CurrencyNative DisplayCurrency = "NATIVE"
	CurrencyUSD    DisplayCurrency = "USD"
)

// ParseDisplayCurrency accepts "native", "usd" or the configured native
// currency code (e.g. "ARS"), case-insensitively. An empty string selects
// the native currency.
func ParseDisplayCurrency(s, nativeCode string) (DisplayCurrency, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	switch {
	case v == "" || v == string(CurrencyNative):
		return CurrencyNative, nil
	case v == string(CurrencyUSD):
		return CurrencyUSD, nil
	case nativeCode != "" && v == strings.ToUpper(nativeCode):
		return CurrencyNative, nil
	default:
		return "", fmt.Errorf("unknown currency %q", s)
	}
}

// Granularity is the calendar period used to bucket flow reports.
type Granularity string

const (
	GranularityYear  Granularity = "YEAR"
	GranularityMonth Granularity = "MONTH"
)

// ParseGranularity accepts "year"/"yearly" and "month"/"monthly". An empty
// string selects yearly buckets.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "year", "yearly":
		return GranularityYear, nil
	case "month", "monthly":
		return GranularityMonth, nil
	default:
		return "", fmt.Errorf("unknown granularity %q", s)
	}
}

// HoldingRow is one instrument in the holdings table.
type HoldingRow struct {
	Ticker      string          `json:"ticker"`
	Label       string          `json:"label"`
	Unlisted    bool            `json:"unlisted"`
	Quantity    int64           `json:"quantity"`
	CostBasis   decimal.Decimal `json:"costBasis"`
	TargetRatio decimal.Decimal `json:"targetRatio"`
	ActualRatio decimal.Decimal `json:"actualRatio"`
}

// HoldingsReport is the aggregated view of the ledger in one display currency.
type HoldingsReport struct {
	Currency      DisplayCurrency `json:"currency"`
	TotalInvested decimal.Decimal `json:"totalInvested"`
	Rows          []HoldingRow    `json:"rows"`
}

// ChartRows returns the rows eligible for the allocation chart: those with a
// strictly positive cost basis, in table order.
func (r HoldingsReport) ChartRows() []HoldingRow {
	rows := make([]HoldingRow, 0, len(r.Rows))
	for _, row := range r.Rows {
		if row.CostBasis.IsPositive() {
			rows = append(rows, row)
		}
	}
	return rows
}

// AllocationRow pairs the target and actual allocation of one instrument.
type AllocationRow struct {
	Ticker      string          `json:"ticker"`
	Label       string          `json:"label"`
	Unlisted    bool            `json:"unlisted"`
	TargetRatio decimal.Decimal `json:"targetRatio"`
	ActualRatio decimal.Decimal `json:"actualRatio"`
}

// Deviation is ActualRatio minus TargetRatio, in percentage points.
func (r AllocationRow) Deviation() decimal.Decimal {
	return r.ActualRatio.Sub(r.TargetRatio)
}

// NetWorthSegment is one slice of the net worth breakdown.
type NetWorthSegment struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	Asset bool            `json:"asset"`
}

// NetWorthReport sums the USD-normalised portfolio and declared assets.
// PortfolioUSD is reported as computed; only its breakdown segment is
// floored at zero.
type NetWorthReport struct {
	PortfolioUSD  decimal.Decimal   `json:"portfolioUsd"`
	AssetsUSD     decimal.Decimal   `json:"assetsUsd"`
	TotalNetWorth decimal.Decimal   `json:"totalNetWorth"`
	Segments      []NetWorthSegment `json:"segments"`
}

// FlowBucket holds the gross and net cash flow of one calendar period.
type FlowBucket struct {
	Key        string          `json:"key"`
	BuyNative  decimal.Decimal `json:"buyNative"`
	SellNative decimal.Decimal `json:"sellNative"`
	NetNative  decimal.Decimal `json:"netNative"`
	BuyUSD     decimal.Decimal `json:"buyUsd"`
	SellUSD    decimal.Decimal `json:"sellUsd"`
	NetUSD     decimal.Decimal `json:"netUsd"`
}

// FlowPoint is one (key, net USD) pair of the flow chart series.
type FlowPoint struct {
	Key    string          `json:"key"`
	NetUSD decimal.Decimal `json:"netUsd"`
}

// FlowReport lists buckets in ascending key order.
type FlowReport struct {
	Granularity Granularity  `json:"granularity"`
	Buckets     []FlowBucket `json:"buckets"`
	Series      []FlowPoint  `json:"series"`
}
