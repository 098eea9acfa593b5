// Package history reads daily price history and prepares the aligned return
// series and covariance inputs consumed by the risk calculator. Input loading
// and cleaning live here, on the caller side of the calculator contract.
package history

import (
	"database/sql"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/riskmetrics/pkg/formulas"
)

// TimeSeries holds daily close prices per symbol aligned on a shared,
// ascending date axis. Missing observations are NaN.
type TimeSeries struct {
	Dates []string
	Data  map[string][]float64
}

// Store reads price history from the history database.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewStore creates a new history store.
func NewStore(db *sql.DB, log zerolog.Logger) *Store {
	return &Store{
		db:  db,
		log: log.With().Str("component", "history").Logger(),
	}
}

// Prices fetches up to lookbackDays of daily closes for the given symbols,
// aligned on the union of their trading dates.
func (s *Store) Prices(symbols []string, lookbackDays int) (TimeSeries, error) {
	if len(symbols) == 0 {
		return TimeSeries{}, fmt.Errorf("no symbols provided")
	}
	if lookbackDays <= 0 {
		return TimeSeries{}, fmt.Errorf("invalid lookback days: %d", lookbackDays)
	}

	startDate := time.Now().AddDate(0, 0, -lookbackDays).Format("2006-01-02")

	query := `
		SELECT symbol, date, close
		FROM daily_prices
		WHERE symbol IN (` + placeholders(len(symbols)) + `)
			AND date >= ?
		ORDER BY date ASC
	`
	args := make([]interface{}, 0, len(symbols)+1)
	for _, symbol := range symbols {
		args = append(args, symbol)
	}
	args = append(args, startDate)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return TimeSeries{}, fmt.Errorf("failed to query price history: %w", err)
	}
	defer rows.Close()

	pricesBySymbol := make(map[string]map[string]float64)
	dateSet := make(map[string]bool)

	for rows.Next() {
		var symbol, date string
		var price float64
		if err := rows.Scan(&symbol, &date, &price); err != nil {
			return TimeSeries{}, fmt.Errorf("failed to scan row: %w", err)
		}
		if pricesBySymbol[symbol] == nil {
			pricesBySymbol[symbol] = make(map[string]float64)
		}
		pricesBySymbol[symbol][date] = price
		dateSet[date] = true
	}
	if err := rows.Err(); err != nil {
		return TimeSeries{}, fmt.Errorf("error iterating rows: %w", err)
	}

	dates := make([]string, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	data := make(map[string][]float64, len(symbols))
	for _, symbol := range symbols {
		prices := make([]float64, len(dates))
		for i, date := range dates {
			if price, ok := pricesBySymbol[symbol][date]; ok {
				prices[i] = price
			} else {
				prices[i] = math.NaN()
			}
		}
		data[symbol] = prices
	}

	s.log.Debug().
		Int("num_dates", len(dates)).
		Int("num_symbols", len(symbols)).
		Str("start_date", startDate).
		Msg("Fetched price history")

	return TimeSeries{Dates: dates, Data: data}, nil
}

// FillGaps fills missing closes with forward-fill followed by back-fill, so
// only symbols with no data at all keep NaN entries.
func FillGaps(series TimeSeries) TimeSeries {
	filled := TimeSeries{
		Dates: series.Dates,
		Data:  make(map[string][]float64, len(series.Data)),
	}

	for symbol, prices := range series.Data {
		out := make([]float64, len(prices))
		copy(out, prices)

		var lastValid float64
		hasLastValid := false
		for i := 0; i < len(out); i++ {
			if math.IsNaN(out[i]) {
				if hasLastValid {
					out[i] = lastValid
				}
			} else {
				lastValid = out[i]
				hasLastValid = true
			}
		}

		var nextValid float64
		hasNextValid := false
		for i := len(out) - 1; i >= 0; i-- {
			if math.IsNaN(out[i]) {
				if hasNextValid {
					out[i] = nextValid
				}
			} else {
				nextValid = out[i]
				hasNextValid = true
			}
		}

		filled.Data[symbol] = out
	}

	return filled
}

// Returns converts aligned prices into simple periodic returns per symbol.
// Each return series has one fewer observation than the price series.
func Returns(series TimeSeries) map[string][]float64 {
	returns := make(map[string][]float64, len(series.Data))
	for symbol, prices := range series.Data {
		returns[symbol] = formulas.CalculateReturns(prices)
	}
	return returns
}

// ReturnColumns orders the per-symbol returns into column slices matching the
// symbols order, validating that all series are aligned.
func ReturnColumns(returns map[string][]float64, symbols []string) ([][]float64, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols provided")
	}
	columns := make([][]float64, 0, len(symbols))
	rows := -1
	for _, symbol := range symbols {
		r, ok := returns[symbol]
		if !ok {
			return nil, fmt.Errorf("missing returns for symbol %s", symbol)
		}
		if rows == -1 {
			rows = len(r)
		}
		if len(r) != rows {
			return nil, fmt.Errorf("inconsistent return lengths: %s has %d observations, expected %d", symbol, len(r), rows)
		}
		columns = append(columns, r)
	}
	if rows < 2 {
		return nil, fmt.Errorf("insufficient data: need at least 2 observations, got %d", rows)
	}
	return columns, nil
}

// Covariance computes the sample covariance matrix of the given return
// columns (one column per asset, equal lengths).
func Covariance(columns [][]float64) ([][]float64, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("no return columns provided")
	}
	rows := len(columns[0])
	for i, col := range columns {
		if len(col) != rows {
			return nil, fmt.Errorf("inconsistent return lengths: column %d has %d observations, expected %d", i, len(col), rows)
		}
	}
	if rows < 2 {
		return nil, fmt.Errorf("insufficient data: need at least 2 observations, got %d", rows)
	}

	n := len(columns)
	observations := mat.NewDense(rows, n, nil)
	for j, col := range columns {
		for i, v := range col {
			observations.Set(i, j, v)
		}
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, observations, nil)

	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out[i][j] = cov.At(i, j)
		}
	}
	return out, nil
}

// placeholders builds SQL placeholders for an IN clause.
func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	out := "?"
	for i := 1; i < n; i++ {
		out += ", ?"
	}
	return out
}
