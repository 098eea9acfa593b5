package risk

import "fmt"

// ReturnTable is the canonical shape for historical return input: one named
// column per asset or portfolio, all columns aligned on the same time axis
// (oldest observation first). Single-series and multi-series callers both
// normalize into this shape so the per-column quantile and tail logic never
// special-cases either.
type ReturnTable struct {
	columns []string
	series  [][]float64
}

// SingleSeries wraps a bare return sequence into a one-column table.
func SingleSeries(values []float64) ReturnTable {
	return ReturnTable{
		columns: []string{"portfolio"},
		series:  [][]float64{values},
	}
}

// MultiSeries builds a table from named columns. Every column must have the
// same number of observations.
func MultiSeries(columns []string, series [][]float64) (ReturnTable, error) {
	if len(columns) == 0 {
		return ReturnTable{}, fmt.Errorf("%w: no columns", ErrEmptySeries)
	}
	if len(columns) != len(series) {
		return ReturnTable{}, fmt.Errorf("%w: %d column names for %d series", ErrDimensionMismatch, len(columns), len(series))
	}
	rows := len(series[0])
	for i, s := range series {
		if len(s) != rows {
			return ReturnTable{}, fmt.Errorf("%w: column %s has %d observations, expected %d", ErrDimensionMismatch, columns[i], len(s), rows)
		}
	}
	return ReturnTable{columns: columns, series: series}, nil
}

// Columns returns the column names in table order.
func (t ReturnTable) Columns() []string {
	return t.columns
}

// Column returns the observations of column i, oldest first.
func (t ReturnTable) Column(i int) []float64 {
	return t.series[i]
}

// NumColumns returns the number of columns.
func (t ReturnTable) NumColumns() int {
	return len(t.columns)
}

// NumRows returns the number of observations per column.
func (t ReturnTable) NumRows() int {
	if len(t.series) == 0 {
		return 0
	}
	return len(t.series[0])
}

func (t ReturnTable) validate() error {
	if t.NumColumns() == 0 || t.NumRows() == 0 {
		return fmt.Errorf("%w: table has no observations", ErrEmptySeries)
	}
	return nil
}
