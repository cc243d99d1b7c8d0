package calculator

import (
	"fmt"
	"math"
	"sort"

	"RangeScope/internal/model"

	"github.com/shopspring/decimal"
)

// MaxBins caps the edge count so a tiny tick on a wide range cannot exhaust memory.
const MaxBins = 10000

// GlobalMax returns the largest rounded range across all samples, 0 if none.
func GlobalMax(samples []model.Sample) float64 {
	m := 0.0
	for _, s := range samples {
		if s.Rounded > m {
			m = s.Rounded
		}
	}
	return m
}

// BinEdges returns 0, tick, 2·tick, ... up to the first edge >= globalMax.
// A zero globalMax still yields one bin [0, tick).
func BinEdges(globalMax, tick float64) ([]float64, error) {
	if err := validateTick(tick); err != nil {
		return nil, err
	}
	if math.IsNaN(globalMax) || math.IsInf(globalMax, 0) || globalMax < 0 {
		return nil, fmt.Errorf("%w: invalid range maximum %v", model.ErrInvalidParameter, globalMax)
	}
	t := decimal.NewFromFloat(tick)
	n := decimal.NewFromFloat(globalMax).Div(t).Ceil().IntPart()
	if n < 1 {
		n = 1
	}
	if n > MaxBins {
		return nil, fmt.Errorf("%w: tick size %v gives %d bins (max %d)", model.ErrTooManyBins, tick, n, MaxBins)
	}
	edges := make([]float64, n+1)
	for k := range edges {
		edges[k] = t.Mul(decimal.NewFromInt(int64(k))).InexactFloat64()
	}
	return edges, nil
}

// CountBins assigns each value to its [lower, upper) bin. The last bin is
// closed on the right; values outside the edges are clamped into the end bins.
func CountBins(values, edges []float64) ([]model.Bin, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("%w: need at least two bin edges, got %d", model.ErrInvalidParameter, len(edges))
	}
	bins := make([]model.Bin, len(edges)-1)
	for i := range bins {
		bins[i] = model.Bin{Lower: edges[i], Upper: edges[i+1]}
	}
	for _, v := range values {
		idx := sort.Search(len(edges), func(i int) bool { return edges[i] > v }) - 1
		if idx < 0 {
			idx = 0
		}
		if idx >= len(bins) {
			idx = len(bins) - 1
		}
		bins[idx].Count++
	}
	return bins, nil
}

// TotalCount sums the counts of all bins.
func TotalCount(bins []model.Bin) int {
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	return total
}
