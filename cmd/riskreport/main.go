// Package main is the entry point for riskreport, a command that loads
// prepared return series — from a CSV file or the price history database —
// and prints portfolio risk measures: variance, Value at Risk, Expected
// Shortfall, and Conditional Drawdown at Risk.
//
// The risk calculator itself performs no I/O; this command is the caller the
// library contract talks about, responsible for input loading and
// presentation.
package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/riskmetrics/internal/config"
	"github.com/aristath/riskmetrics/internal/database"
	"github.com/aristath/riskmetrics/internal/history"
	"github.com/aristath/riskmetrics/internal/modules/risk"
	"github.com/aristath/riskmetrics/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.Pretty})
	logger.SetGlobalLogger(log)

	table, covariance, err := loadReturns(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load return series")
	}

	weights := cfg.Weights
	if len(weights) == 0 {
		// Equal-weight portfolio when no weights are configured.
		weights = make([]float64, table.NumColumns())
		for i := range weights {
			weights[i] = 1.0 / float64(len(weights))
		}
	}

	calc := risk.NewCalculator(log)

	variance, err := calc.Variance(covariance, weights)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to compute portfolio variance")
	}
	log.Info().
		Float64("variance", variance).
		Float64("volatility", math.Sqrt(math.Max(variance, 0))).
		Msg("Portfolio variance")

	valueAtRisk, err := calc.ValueAtRisk(table, cfg.Confidence)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to compute value at risk")
	}
	for i, column := range table.Columns() {
		log.Info().
			Str("column", column).
			Float64("confidence", cfg.Confidence).
			Float64("value_at_risk", valueAtRisk[i]).
			Msg("Value at risk")
	}

	expectedShortfall, err := calc.ExpectedShortfall(table, cfg.Confidence)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to compute expected shortfall")
	}
	logTailMeasure(log, "Expected shortfall", cfg.Confidence, expectedShortfall)

	conditionalDrawdown, err := calc.ConditionalDrawdown(table, cfg.Confidence)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to compute conditional drawdown at risk")
	}
	logTailMeasure(log, "Conditional drawdown at risk", cfg.Confidence, conditionalDrawdown)
}

// loadReturns builds the return table and covariance matrix from the
// configured source. The CSV source takes precedence over the history
// database.
func loadReturns(cfg *config.Config, log zerolog.Logger) (risk.ReturnTable, [][]float64, error) {
	if cfg.ReturnsCSV != "" {
		table, err := loadCSV(cfg.ReturnsCSV)
		if err != nil {
			return risk.ReturnTable{}, nil, fmt.Errorf("failed to read %s: %w", cfg.ReturnsCSV, err)
		}
		columns := make([][]float64, table.NumColumns())
		for i := range columns {
			columns[i] = table.Column(i)
		}
		covariance, err := history.Covariance(columns)
		if err != nil {
			return risk.ReturnTable{}, nil, fmt.Errorf("failed to estimate covariance: %w", err)
		}
		log.Info().
			Str("source", cfg.ReturnsCSV).
			Int("columns", table.NumColumns()).
			Int("observations", table.NumRows()).
			Msg("Loaded returns from CSV")
		return table, covariance, nil
	}

	db, err := database.Open(cfg.HistoryDBPath)
	if err != nil {
		return risk.ReturnTable{}, nil, fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	store := history.NewStore(db.Conn(), log)
	prices, err := store.Prices(cfg.Symbols, cfg.LookbackDays)
	if err != nil {
		return risk.ReturnTable{}, nil, err
	}

	returns := history.Returns(history.FillGaps(prices))
	columns, err := history.ReturnColumns(returns, cfg.Symbols)
	if err != nil {
		return risk.ReturnTable{}, nil, err
	}

	table, err := risk.MultiSeries(cfg.Symbols, columns)
	if err != nil {
		return risk.ReturnTable{}, nil, err
	}
	covariance, err := history.Covariance(columns)
	if err != nil {
		return risk.ReturnTable{}, nil, fmt.Errorf("failed to estimate covariance: %w", err)
	}

	log.Info().
		Str("source", db.Path()).
		Int("columns", table.NumColumns()).
		Int("observations", table.NumRows()).
		Msg("Loaded returns from history database")
	return table, covariance, nil
}

// loadCSV reads a return table from a CSV file: header row of column names,
// one numeric return per cell below it.
func loadCSV(path string) (risk.ReturnTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return risk.ReturnTable{}, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return risk.ReturnTable{}, err
	}
	if len(records) < 2 {
		return risk.ReturnTable{}, fmt.Errorf("need a header row and at least one observation")
	}

	header := records[0]
	columns := make([][]float64, len(header))
	for rowIdx, row := range records[1:] {
		if len(row) != len(header) {
			return risk.ReturnTable{}, fmt.Errorf("row %d has %d cells, expected %d", rowIdx+2, len(row), len(header))
		}
		for j, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return risk.ReturnTable{}, fmt.Errorf("row %d column %s: %w", rowIdx+2, header[j], err)
			}
			columns[j] = append(columns[j], v)
		}
	}

	return risk.MultiSeries(header, columns)
}

func logTailMeasure(log zerolog.Logger, name string, confidence float64, value *float64) {
	event := log.Info().Float64("confidence", confidence)
	if value == nil {
		// No qualifying tail observations: a data condition, not a failure.
		event.Bool("defined", false).Msg(name)
		return
	}
	event.Bool("defined", true).Float64("value", *value).Msg(name)
}
