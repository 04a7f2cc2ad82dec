package display

import (
	"github.com/shopspring/decimal"
)

// GradeStats summarizes numeric grades.
type GradeStats struct {
	Count        int
	Mean         decimal.Decimal
	Weighted     decimal.Decimal
	WeightedOver int // grades with a positive weight
}

// ComputeStats averages non-cancelled grades that carry a numeric value. The
// weighted mean only counts positive weights. ok is false when nothing counts.
func ComputeStats(rows []GradeRow) (stats GradeStats, ok bool) {
	sum := decimal.Zero
	weightedSum := decimal.Zero
	weightTotal := decimal.Zero

	for _, r := range rows {
		if r.Canceled || r.Value == nil {
			continue
		}
		v := decimal.NewFromFloat(*r.Value)
		sum = sum.Add(v)
		stats.Count++

		if r.Weight > 0 {
			w := decimal.NewFromFloat(r.Weight)
			weightedSum = weightedSum.Add(v.Mul(w))
			weightTotal = weightTotal.Add(w)
			stats.WeightedOver++
		}
	}
	if stats.Count == 0 {
		return GradeStats{}, false
	}

	stats.Mean = sum.Div(decimal.NewFromInt(int64(stats.Count))).Round(2)
	if weightTotal.IsPositive() {
		stats.Weighted = weightedSum.Div(weightTotal).Round(2)
	}
	return stats, true
}
