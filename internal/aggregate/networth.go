package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
)

// PortfolioSegmentLabel labels the traded-portfolio slice of the net worth
// breakdown.
const PortfolioSegmentLabel = "Stock Portfolio"

// NetWorth sums the USD value of the ledger and every declared asset.
//
// The ledger is always converted to USD regardless of any display setting.
// The first segment is the portfolio, floored at zero; one segment per asset
// follows at its raw value.
func NetWorth(ops []model.Operation, assets []model.Asset) model.NetWorthReport {
	portfolio := decimal.Zero
	for _, op := range ops {
		portfolio = portfolio.Add(signed(op.Type, ToUSD(op.Amount, op.MEP)))
	}

	held := decimal.Zero
	segments := make([]model.NetWorthSegment, 0, len(assets)+1)
	segments = append(segments, model.NetWorthSegment{
		Label: PortfolioSegmentLabel,
		Value: decimal.Max(portfolio, decimal.Zero),
	})
	for _, a := range assets {
		held = held.Add(a.Value)
		segments = append(segments, model.NetWorthSegment{
			Label: a.Name,
			Value: a.Value,
			Asset: true,
		})
	}

	return model.NetWorthReport{
		PortfolioUSD:  portfolio,
		AssetsUSD:     held,
		TotalNetWorth: portfolio.Add(held),
		Segments:      segments,
	}
}
