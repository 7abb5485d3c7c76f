package aggregate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
)

// dateLayouts are tried in order; the padded ISO form comes first.
var dateLayouts = []string{"2006-01-02", "2006-1-2", time.RFC3339}

// BucketKey returns the flow bucket of an ISO date: "YYYY" for yearly and
// "YYYY-MM" for monthly granularity. Months are always two digits so keys
// sort chronologically as strings. ok is false when no numeric year, or
// month for monthly buckets, can be read from date.
func BucketKey(date string, g model.Granularity) (key string, ok bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, date)
		if err != nil {
			continue
		}
		if g == model.GranularityMonth {
			return t.Format("2006-01"), true
		}
		return t.Format("2006"), true
	}
	return splitBucketKey(date, g)
}

// splitBucketKey reads the year and month from the first dash-separated
// parts of a date that is not a valid calendar date, such as "2023-06" or
// "2023-02-30".
func splitBucketKey(date string, g model.Granularity) (string, bool) {
	parts := strings.Split(date, "-")
	year, ok := digits(parts[0], 9999)
	if !ok || year == 0 {
		return "", false
	}
	if g != model.GranularityMonth {
		return fmt.Sprintf("%04d", year), true
	}
	if len(parts) < 2 {
		return "", false
	}
	month, ok := digits(parts[1], 12)
	if !ok || month == 0 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d", year, month), true
}

// digits parses s when it is made only of ASCII digits and is at most limit.
func digits(s string, limit int) (int, bool) {
	if s == "" || len(s) > 4 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, n <= limit
}

// Flows buckets the ledger by calendar period and reports gross buys, gross
// sells and net flow, both native and USD-normalised. Operations without a
// usable date are left out.
func Flows(ops []model.Operation, g model.Granularity) model.FlowReport {
	groups := make(map[string]*model.FlowBucket)

	for _, op := range ops {
		key, ok := BucketKey(op.Date, g)
		if !ok {
			continue
		}
		b, exists := groups[key]
		if !exists {
			b = &model.FlowBucket{Key: key}
			groups[key] = b
		}

		usd := ToUSD(op.Amount, op.MEP)
		switch op.Type {
		case model.OperationBuy:
			b.BuyNative = b.BuyNative.Add(op.Amount)
			b.BuyUSD = b.BuyUSD.Add(usd)
		case model.OperationSell:
			b.SellNative = b.SellNative.Add(op.Amount)
			b.SellUSD = b.SellUSD.Add(usd)
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	report := model.FlowReport{
		Granularity: g,
		Buckets:     make([]model.FlowBucket, 0, len(keys)),
		Series:      make([]model.FlowPoint, 0, len(keys)),
	}
	for _, k := range keys {
		b := groups[k]
		b.NetNative = b.BuyNative.Sub(b.SellNative)
		b.NetUSD = b.BuyUSD.Sub(b.SellUSD)
		report.Buckets = append(report.Buckets, *b)
		report.Series = append(report.Series, model.FlowPoint{Key: k, NetUSD: b.NetUSD})
	}
	return report
}
