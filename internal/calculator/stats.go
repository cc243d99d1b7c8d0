package calculator

import (
	"sort"

	"RangeScope/internal/model"

	"github.com/shopspring/decimal"
)

// Summarize computes mean and median of the rounded ranges.
// An empty group yields model.ErrEmptyGroup instead of NaN.
func Summarize(samples []model.Sample) (model.Summary, error) {
	if len(samples) == 0 {
		return model.Summary{}, model.ErrEmptyGroup
	}
	values := roundedValues(samples)
	return model.Summary{
		Count:  len(values),
		Mean:   mean(values),
		Median: median(values),
	}, nil
}

func mean(values []float64) float64 {
	ds := make([]decimal.Decimal, len(values))
	for i, v := range values {
		ds[i] = decimal.NewFromFloat(v)
	}
	return decimal.Avg(ds[0], ds[1:]...).InexactFloat64()
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	a := decimal.NewFromFloat(sorted[n/2-1])
	b := decimal.NewFromFloat(sorted[n/2])
	return a.Add(b).Div(decimal.NewFromInt(2)).InexactFloat64()
}
