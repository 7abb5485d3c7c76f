package aggregate

import "github.com/ndewijer/Portfolio-Pro-Backend/internal/model"

// Allocation projects a holdings report onto target vs. actual ratios,
// keeping the row order of the report.
func Allocation(report model.HoldingsReport) []model.AllocationRow {
	rows := make([]model.AllocationRow, 0, len(report.Rows))
	for _, h := range report.Rows {
		rows = append(rows, model.AllocationRow{
			Ticker:      h.Ticker,
			Label:       h.Label,
			Unlisted:    h.Unlisted,
			TargetRatio: h.TargetRatio,
			ActualRatio: h.ActualRatio,
		})
	}
	return rows
}
