package display

import (
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
	"github.com/shopspring/decimal"
)

// Chart is the series a client needs to draw one report: parallel label,
// value and colour slices plus the locale and currency to format values with.
type Chart struct {
	Labels   []string  `json:"labels"`
	Values   []float64 `json:"values"`
	Colors   []string  `json:"colors"`
	Borders  []string  `json:"borders,omitempty"`
	Locale   string    `json:"locale"`
	Currency string    `json:"currency"`
}

func newChart(locale, currency string, n int) Chart {
	return Chart{
		Labels:   make([]string, 0, n),
		Values:   make([]float64, 0, n),
		Colors:   make([]string, 0, n),
		Locale:   locale,
		Currency: currency,
	}
}

func (c *Chart) add(label string, v decimal.Decimal, color string) {
	c.Labels = append(c.Labels, label)
	c.Values = append(c.Values, v.InexactFloat64())
	c.Colors = append(c.Colors, color)
}

// HoldingsChart plots the cost basis of every row with a positive basis,
// coloured by raw ticker.
func (f Formatter) HoldingsChart(r model.HoldingsReport) Chart {
	rows := r.ChartRows()
	c := newChart(f.Locale(r.Currency), f.Code(r.Currency), len(rows))
	for _, row := range rows {
		c.add(row.Label, row.CostBasis, Color(row.Ticker))
	}
	return c
}

// AllocationChart plots actual allocation percentages of rows that hold
// a share of the portfolio. Values are percentages, so Currency is empty.
func (f Formatter) AllocationChart(rows []model.AllocationRow) Chart {
	c := newChart(f.USDLocale, "", len(rows))
	for _, row := range rows {
		if !row.ActualRatio.IsPositive() {
			continue
		}
		c.add(row.Label, row.ActualRatio, Color(row.Ticker))
	}
	return c
}

// NetWorthChart plots the portfolio segment followed by every asset, in USD.
func (f Formatter) NetWorthChart(r model.NetWorthReport) Chart {
	c := newChart(f.USDLocale, f.Code(model.CurrencyUSD), len(r.Segments))
	for _, s := range r.Segments {
		color := PortfolioColor
		if s.Asset {
			color = AssetColor(s.Label)
		}
		c.add(s.Label, s.Value, color)
	}
	return c
}

// FlowChart plots the net USD flow of each bucket, green when money went in
// and red when it came out.
func (f Formatter) FlowChart(r model.FlowReport) Chart {
	c := newChart(f.USDLocale, f.Code(model.CurrencyUSD), len(r.Series))
	c.Borders = make([]string, 0, len(r.Series))
	for _, p := range r.Series {
		if p.NetUSD.IsNegative() {
			c.add(p.Key, p.NetUSD, OutflowColor)
			c.Borders = append(c.Borders, OutflowBorder)
			continue
		}
		c.add(p.Key, p.NetUSD, InflowColor)
		c.Borders = append(c.Borders, InflowBorder)
	}
	return c
}
