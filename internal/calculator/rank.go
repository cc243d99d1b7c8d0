package calculator

import (
	"sort"

	"RangeScope/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultTopN is the ranking length shown per direction.
const DefaultTopN = 5

// TopBins returns the n most populated bins, count descending, ties by lower bound ascending.
// Empty bins are never ranked.
func TopBins(bins []model.Bin, n int) []model.RankedBin {
	if n <= 0 {
		return nil
	}
	filled := make([]model.Bin, 0, len(bins))
	for _, b := range bins {
		if b.Count > 0 {
			filled = append(filled, b)
		}
	}
	sort.SliceStable(filled, func(i, j int) bool {
		if filled[i].Count != filled[j].Count {
			return filled[i].Count > filled[j].Count
		}
		return filled[i].Lower < filled[j].Lower
	})
	if len(filled) > n {
		filled = filled[:n]
	}
	ranked := make([]model.RankedBin, len(filled))
	for i, b := range filled {
		ranked[i] = model.RankedBin{Label: FormatRange(b.Lower, b.Upper), Lower: b.Lower, Count: b.Count}
	}
	return ranked
}

// FormatRange renders a bin as "lower-upper" with two decimals.
func FormatRange(lower, upper float64) string {
	return decimal.NewFromFloat(lower).StringFixed(2) + "-" + decimal.NewFromFloat(upper).StringFixed(2)
}
