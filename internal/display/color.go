package display

import (
	"fmt"
	"unicode/utf16"
)

// PortfolioColor is the fixed colour of the stock portfolio segment.
const PortfolioColor = "#4f46e5"

// Flow bar colours for non-negative and negative buckets.
const (
	InflowColor   = "rgba(74, 222, 128, 0.6)"
	InflowBorder  = "#4ade80"
	OutflowColor  = "rgba(248, 113, 113, 0.6)"
	OutflowBorder = "#f87171"
)

// Color derives a stable pastel HSL colour from seed. The hash walks the
// UTF-16 code units of seed with 32-bit shift semantics, so a given seed
// always maps to the same hue a browser client computes for it.
func Color(seed string) string {
	var hash int64
	for _, c := range utf16.Encode([]rune(seed)) {
		hash = int64(c) + (int64(int32(hash)<<5) - hash)
	}
	return fmt.Sprintf("hsl(%d, 70%%, 60%%)", hash%360)
}

// AssetColor is the colour of a declared asset in the net worth chart.
func AssetColor(name string) string {
	return Color(name + "_asset")
}
