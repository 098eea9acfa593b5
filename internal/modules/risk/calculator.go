// Package risk computes point-estimate portfolio risk measures from prepared
// numeric inputs: variance, historical Value at Risk, Expected Shortfall, and
// Conditional Drawdown at Risk. The calculator holds no state between calls
// and performs no I/O, so it is safe to share across goroutines.
package risk

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/aristath/riskmetrics/pkg/formulas"
)

// DefaultConfidenceLevel is the conventional 5% left-tail cut (95% confidence)
// used when a caller has no reason to pick another level.
const DefaultConfidenceLevel = 0.05

// Calculator computes risk measures over historical return series.
type Calculator struct {
	log zerolog.Logger
}

// NewCalculator creates a new risk calculator.
func NewCalculator(log zerolog.Logger) *Calculator {
	return &Calculator{
		log: log.With().Str("component", "risk").Logger(),
	}
}

// Variance computes the portfolio variance w'Σw for covariance matrix Σ and
// weight vector w. The matrix must be square with dimension equal to the
// weight count; a mismatch returns ErrDimensionMismatch before any algebra
// runs. Positive semi-definiteness is the caller's contract — a malformed
// matrix can produce a negative value.
func (c *Calculator) Variance(covariance [][]float64, weights []float64) (float64, error) {
	n := len(weights)
	if n == 0 {
		return 0, fmt.Errorf("%w: empty weight vector", ErrDimensionMismatch)
	}
	if len(covariance) != n {
		return 0, fmt.Errorf("%w: covariance has %d rows for %d weights", ErrDimensionMismatch, len(covariance), n)
	}
	data := make([]float64, 0, n*n)
	for i, row := range covariance {
		if len(row) != n {
			return 0, fmt.Errorf("%w: covariance row %d has %d columns, expected %d", ErrDimensionMismatch, i, len(row), n)
		}
		data = append(data, row...)
	}

	sigma := mat.NewDense(n, n, data)
	w := mat.NewVecDense(n, append([]float64(nil), weights...))

	variance := mat.Inner(w, sigma, w)
	c.log.Debug().Int("assets", n).Float64("variance", variance).Msg("Computed portfolio variance")
	return variance, nil
}

// ValueAtRisk returns the empirical confidence-level quantile of each column,
// using "higher" interpolation so the result is always an observed return.
// The value is the raw quantile — typically negative for the loss tail — and
// is not negated into a loss sign convention.
func (c *Calculator) ValueAtRisk(returns ReturnTable, confidence float64) ([]float64, error) {
	if err := validateConfidence(confidence); err != nil {
		return nil, err
	}
	if err := returns.validate(); err != nil {
		return nil, err
	}

	out := make([]float64, returns.NumColumns())
	for i := range out {
		q, err := formulas.QuantileHigher(returns.Column(i), confidence)
		if err != nil {
			return nil, fmt.Errorf("value at risk for column %s: %w", returns.Columns()[i], err)
		}
		out[i] = q
	}
	return out, nil
}

// ExpectedShortfall computes the mean of all observations strictly below
// their column's VaR cut, pooled across columns. A nil result means no
// observation fell below the cut — a data condition with coarse samples or
// very small confidence levels, not an error.
func (c *Calculator) ExpectedShortfall(returns ReturnTable, confidence float64) (*float64, error) {
	cuts, err := c.ValueAtRisk(returns, confidence)
	if err != nil {
		return nil, err
	}

	var tail []float64
	for i := 0; i < returns.NumColumns(); i++ {
		for _, r := range returns.Column(i) {
			if r < cuts[i] {
				tail = append(tail, r)
			}
		}
	}
	if len(tail) == 0 {
		c.log.Debug().Float64("confidence", confidence).Msg("No observations below the VaR cut")
		return nil, nil
	}

	mean := formulas.Mean(tail)
	return &mean, nil
}

// ConditionalDrawdown computes CDaR: for each column it derives the drawdown
// series (running peak minus value), takes the running maximum of that series
// so the statistic tracks the worst drawdown so far rather than a recovering
// instantaneous one, cuts it at its confidence-level quantile, and averages
// everything strictly above the cut, pooled across columns. A nil result
// means no drawdown exceeded the cut — monotonically rising returns produce
// all-zero drawdowns and land here.
func (c *Calculator) ConditionalDrawdown(returns ReturnTable, confidence float64) (*float64, error) {
	if err := validateConfidence(confidence); err != nil {
		return nil, err
	}
	if err := returns.validate(); err != nil {
		return nil, err
	}

	var tail []float64
	for i := 0; i < returns.NumColumns(); i++ {
		maxDrawdown := formulas.RunningMax(formulas.Drawdowns(returns.Column(i)))
		cut, err := formulas.QuantileHigher(maxDrawdown, confidence)
		if err != nil {
			return nil, fmt.Errorf("drawdown quantile for column %s: %w", returns.Columns()[i], err)
		}
		for _, d := range maxDrawdown {
			if d > cut {
				tail = append(tail, d)
			}
		}
	}
	if len(tail) == 0 {
		c.log.Debug().Float64("confidence", confidence).Msg("No drawdowns above the quantile cut")
		return nil, nil
	}

	mean := formulas.Mean(tail)
	return &mean, nil
}

func validateConfidence(confidence float64) error {
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidConfidence, confidence)
	}
	return nil
}
