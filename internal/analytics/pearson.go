package analytics

import (
	"math"

	"github.com/marcusvane/insightdash-backend/internal/types"
)

// Pearson computes the linear correlation coefficient of two paired series.
// Fewer than three pairs, mismatched lengths, or a constant series all
// return 0 — a deliberate degenerate-case policy rather than an error, since
// sparse filter selections routinely produce such inputs.
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n != len(ys) || n < 3 {
		return 0
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}

	denom := math.Sqrt(varX * varY)
	if denom == 0 {
		denom = 1
	}
	return cov / denom
}

// CorrelationMatrix computes the three pairwise coefficients over a record
// window, each rounded to three decimals.
func CorrelationMatrix(records []types.Record) types.CorrelationMatrix {
	n := len(records)
	intensity := make([]float64, n)
	likelihood := make([]float64, n)
	relevance := make([]float64, n)
	for i := range records {
		intensity[i] = SafeNumber(records[i].Intensity)
		likelihood[i] = SafeNumber(records[i].Likelihood)
		relevance[i] = SafeNumber(records[i].Relevance)
	}
	return types.CorrelationMatrix{
		IntensityRelevance:  Round(Pearson(intensity, relevance), 3),
		IntensityLikelihood: Round(Pearson(intensity, likelihood), 3),
		RelevanceLikelihood: Round(Pearson(relevance, likelihood), 3),
	}
}
