package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Zero(t, Mean(nil))
}

func TestStdDev(t *testing.T) {
	// Sample standard deviation of {2, 4, 4, 4, 5, 5, 7, 9}.
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 2.138, got, 1e-3)
	assert.Zero(t, StdDev(nil))
}

func TestAnnualizedVolatility(t *testing.T) {
	daily := []float64{0.01, -0.02, 0.015, -0.005}
	expected := StdDev(daily) * math.Sqrt(252)
	assert.InDelta(t, expected, AnnualizedVolatility(daily), 1e-12)
	assert.Zero(t, AnnualizedVolatility(nil))
}

func TestCalculateReturns(t *testing.T) {
	returns := CalculateReturns([]float64{100, 110, 99})
	assert.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-12)
	assert.InDelta(t, -0.10, returns[1], 1e-12)

	assert.Empty(t, CalculateReturns([]float64{100}))
}

func TestCalculateReturns_ZeroPriceGuard(t *testing.T) {
	returns := CalculateReturns([]float64{0, 100, 110})
	assert.Zero(t, returns[0], "return after a zero price stays zero")
	assert.InDelta(t, 0.10, returns[1], 1e-12)
}
