package formulas

import (
	"fmt"
	"math"
	"sort"
)

// QuantileHigher returns the empirical q-quantile of values using "higher"
// interpolation: the virtual position q*(n-1) over the ascending-sorted
// sample is rounded up to the next order statistic. q=0 selects the minimum
// and q=1 the maximum. The input slice is not modified.
func QuantileHigher(values []float64, q float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("quantile of empty sample")
	}
	if math.IsNaN(q) || q < 0 || q > 1 {
		return 0, fmt.Errorf("quantile level %v outside [0, 1]", q)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := int(math.Ceil(q * float64(len(sorted)-1)))
	return sorted[idx], nil
}

// RunningMax returns the expanding maximum of values: element i is the
// largest value seen in values[0..i].
func RunningMax(values []float64) []float64 {
	out := make([]float64, len(values))
	peak := math.Inf(-1)
	for i, v := range values {
		if v > peak {
			peak = v
		}
		out[i] = peak
	}
	return out
}

// Drawdowns returns the drawdown series of a return series: the running peak
// up to each point minus the value at that point. Every element is
// non-negative, and a series that never falls below its running peak is all
// zeros.
func Drawdowns(returns []float64) []float64 {
	out := make([]float64, len(returns))
	peak := math.Inf(-1)
	for i, v := range returns {
		if v > peak {
			peak = v
		}
		out[i] = peak - v
	}
	return out
}
