package display_test

import (
	"strings"
	"testing"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/aggregate"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/display"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestColor(t *testing.T) {
	tests := map[string]string{
		"a":            "hsl(97, 70%, 60%)",
		"AAPL":         "hsl(196, 70%, 60%)",
		"GGAL":         "hsl(283, 70%, 60%)",
		"House_asset":  "hsl(113, 70%, 60%)",
		"Mañana_asset": "hsl(-112, 70%, 60%)",
		"A very long asset name to overflow_asset": "hsl(-348, 70%, 60%)",
	}
	for seed, want := range tests {
		assert.Equal(t, want, display.Color(seed), "seed %q", seed)
	}
	assert.Equal(t, display.Color("House_asset"), display.AssetColor("House"))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,234.57", display.FormatMoney(d("1234.567"), "USD"))
	assert.Equal(t, "-$12.00", display.FormatMoney(d("-12"), "USD"))
	assert.Equal(t, "12.50%", display.Percent(d("12.5")))
}

func TestFormatter_Defaults(t *testing.T) {
	f := display.NewFormatter("", "", "")
	assert.Equal(t, "ARS", f.Code(model.CurrencyNative))
	assert.Equal(t, "USD", f.Code(model.CurrencyUSD))
	assert.Equal(t, "es-AR", f.Locale(model.CurrencyNative))
	assert.Equal(t, "en-US", f.Locale(model.CurrencyUSD))
}

func ledger() ([]model.Operation, []model.Symbol, []model.Asset) {
	ops := []model.Operation{
		{ID: 1, Ticker: "AAPL", Type: model.OperationBuy, Qty: 10, Date: "2023-03-01", MEP: d("1000"), Amount: d("10000")},
	}
	symbols := []model.Symbol{{Ticker: "AAPL", Ratio: d("60")}, {Ticker: "GGAL", Ratio: d("40")}}
	assets := []model.Asset{{ID: 1, Name: "House", Value: d("5000")}}
	return ops, symbols, assets
}

// flowLedger has a positive 2023 and a negative 2024 in USD.
func flowLedger() []model.Operation {
	return []model.Operation{
		{ID: 1, Ticker: "AAPL", Type: model.OperationBuy, Qty: 10, Date: "2023-03-01", MEP: d("1000"), Amount: d("10000")},
		{ID: 2, Ticker: "MSFT", Type: model.OperationBuy, Qty: 2, Date: "2024-05-20", MEP: d("1000"), Amount: d("2000")},
		{ID: 3, Ticker: "MSFT", Type: model.OperationSell, Qty: 2, Date: "2024-06-20", MEP: d("500"), Amount: d("5000")},
	}
}

func TestHoldingsChart(t *testing.T) {
	ops, symbols, _ := ledger()
	ops = append(ops,
		model.Operation{ID: 2, Ticker: "NEG", Type: model.OperationBuy, Qty: 1, Amount: d("10")},
		model.Operation{ID: 3, Ticker: "NEG", Type: model.OperationSell, Qty: 0, Amount: d("50")},
	)
	f := display.NewFormatter("ARS", "es-AR", "en-US")

	chart := f.HoldingsChart(aggregate.Holdings(ops, symbols, model.CurrencyNative))

	// NEG has a negative basis and GGAL none, so only AAPL is plotted.
	assert.Equal(t, []string{"AAPL"}, chart.Labels)
	assert.Equal(t, []float64{10000}, chart.Values)
	assert.Equal(t, []string{display.Color("AAPL")}, chart.Colors)
	assert.Equal(t, "es-AR", chart.Locale)
	assert.Equal(t, "ARS", chart.Currency)

	usd := f.HoldingsChart(aggregate.Holdings(ops, symbols, model.CurrencyUSD))
	assert.Equal(t, "USD", usd.Currency)
	assert.Equal(t, "en-US", usd.Locale)
}

func TestHoldingsChart_UnlistedColorUsesRawTicker(t *testing.T) {
	ops := []model.Operation{{ID: 1, Ticker: "YPF", Type: model.OperationBuy, Qty: 1, Amount: d("10")}}
	chart := display.NewFormatter("", "", "").HoldingsChart(aggregate.Holdings(ops, nil, model.CurrencyNative))

	require.Len(t, chart.Labels, 1)
	assert.Equal(t, "YPF"+aggregate.UnlistedSuffix, chart.Labels[0])
	assert.Equal(t, display.Color("YPF"), chart.Colors[0])
}

func TestNetWorthChart(t *testing.T) {
	ops, _, assets := ledger()
	chart := display.NewFormatter("", "", "").NetWorthChart(aggregate.NetWorth(ops, assets))

	assert.Equal(t, []string{aggregate.PortfolioSegmentLabel, "House"}, chart.Labels)
	assert.Equal(t, []string{display.PortfolioColor, display.AssetColor("House")}, chart.Colors)
	assert.Equal(t, "USD", chart.Currency)
}

func TestFlowChart(t *testing.T) {
	chart := display.NewFormatter("", "", "").FlowChart(aggregate.Flows(flowLedger(), model.GranularityYear))

	assert.Equal(t, []string{"2023", "2024"}, chart.Labels)
	assert.Equal(t, []float64{10, -8}, chart.Values)
	assert.Equal(t, []string{display.InflowColor, display.OutflowColor}, chart.Colors)
	assert.Equal(t, []string{display.InflowBorder, display.OutflowBorder}, chart.Borders)
}

func TestEmptyCharts(t *testing.T) {
	f := display.NewFormatter("", "", "")

	chart := f.HoldingsChart(aggregate.Holdings(nil, nil, model.CurrencyNative))
	assert.NotNil(t, chart.Labels)
	assert.Empty(t, chart.Values)

	flows := f.FlowChart(aggregate.Flows(nil, model.GranularityMonth))
	assert.NotNil(t, flows.Values)
	assert.Empty(t, flows.Values)
}

func TestMarkdown(t *testing.T) {
	ops, symbols, assets := ledger()
	f := display.NewFormatter("ARS", "es-AR", "en-US")
	holdings := aggregate.Holdings(ops, symbols, model.CurrencyUSD)

	md, err := f.HoldingsMarkdown(holdings)
	require.NoError(t, err)
	assert.Contains(t, md, "# Holdings (USD)")
	assert.Contains(t, md, "| AAPL | 10 | $10.00 | 100.00% | 60.00% |")
	assert.Contains(t, md, "| GGAL | 0 | $0.00 | 0.00% | 40.00% |")

	md, err = f.AllocationMarkdown(aggregate.Allocation(holdings))
	require.NoError(t, err)
	assert.Contains(t, md, "| AAPL | 60.00% | 100.00% | +40.00% |")
	assert.Contains(t, md, "| GGAL | 40.00% | 0.00% | -40.00% |")

	md, err = f.NetWorthMarkdown(aggregate.NetWorth(ops, assets))
	require.NoError(t, err)
	assert.Contains(t, md, "| House | $5,000.00 |")
	assert.Contains(t, md, "**Total net worth:** $5,010.00")

	md, err = f.FlowsMarkdown(aggregate.Flows(flowLedger(), model.GranularityMonth))
	require.NoError(t, err)
	assert.Contains(t, md, "# Flows by month")
	assert.Contains(t, md, "| 2024-06 |")
	assert.Equal(t, 3, strings.Count(md, "\n| 20"), "one line per bucket")
}

func TestMarkdown_Empty(t *testing.T) {
	f := display.NewFormatter("", "", "")

	md, err := f.HoldingsMarkdown(aggregate.Holdings(nil, nil, model.CurrencyNative))
	require.NoError(t, err)
	assert.Contains(t, md, "_No data_")

	md, err = f.AllocationMarkdown(nil)
	require.NoError(t, err)
	assert.Contains(t, md, "_No data_")
}

func TestTerminal(t *testing.T) {
	out, err := display.Terminal("# Title\n\nbody", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}
