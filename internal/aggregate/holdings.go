package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
)

// UnlistedSuffix is appended to the label of a ticker that has holdings but
// no configured symbol.
const UnlistedSuffix = " (unlisted)"

var hundred = decimal.NewFromInt(100)

// Holdings folds the ledger into one row per instrument.
//
// A ticker gets a row when it is configured in symbols or when its net
// quantity is non-zero. Rows are sorted by cost basis, largest first, with
// the ticker as tie-breaker.
func Holdings(ops []model.Operation, symbols []model.Symbol, currency model.DisplayCurrency) model.HoldingsReport {
	qty := make(map[string]int64)
	cost := make(map[string]decimal.Decimal)
	total := decimal.Zero

	for _, op := range ops {
		amount := signed(op.Type, Contribution(op, currency))
		qty[op.Ticker] += op.Type.Sign() * op.Qty
		cost[op.Ticker] = cost[op.Ticker].Add(amount)
		total = total.Add(amount)
	}

	configured := make(map[string]model.Symbol, len(symbols))
	for _, s := range symbols {
		configured[s.Ticker] = s
	}

	tickers := make(map[string]struct{}, len(configured)+len(qty))
	for t := range configured {
		tickers[t] = struct{}{}
	}
	for t := range qty {
		tickers[t] = struct{}{}
	}

	rows := make([]model.HoldingRow, 0, len(tickers))
	for ticker := range tickers {
		sym, listed := configured[ticker]
		if qty[ticker] == 0 && !listed {
			continue
		}

		row := model.HoldingRow{
			Ticker:      ticker,
			Label:       ticker,
			Unlisted:    !listed,
			Quantity:    qty[ticker],
			CostBasis:   cost[ticker],
			TargetRatio: decimal.Zero,
			ActualRatio: actualRatio(cost[ticker], total),
		}
		if listed {
			row.TargetRatio = sym.Ratio
		} else {
			row.Label += UnlistedSuffix
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].CostBasis.Cmp(rows[j].CostBasis); c != 0 {
			return c > 0
		}
		return rows[i].Ticker < rows[j].Ticker
	})

	return model.HoldingsReport{
		Currency:      currency,
		TotalInvested: total,
		Rows:          rows,
	}
}

// actualRatio is cost / total * 100, or zero unless both are positive.
func actualRatio(cost, total decimal.Decimal) decimal.Decimal {
	if !cost.IsPositive() || !total.IsPositive() {
		return decimal.Zero
	}
	return cost.Div(total).Mul(hundred)
}
