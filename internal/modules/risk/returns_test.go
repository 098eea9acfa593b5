package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleSeries(t *testing.T) {
	table := SingleSeries([]float64{0.01, -0.02, 0.03})

	assert.Equal(t, []string{"portfolio"}, table.Columns())
	assert.Equal(t, 1, table.NumColumns())
	assert.Equal(t, 3, table.NumRows())
	assert.Equal(t, []float64{0.01, -0.02, 0.03}, table.Column(0))
}

func TestMultiSeries(t *testing.T) {
	table, err := MultiSeries(
		[]string{"AAA", "BBB"},
		[][]float64{
			{0.01, 0.02},
			{-0.01, 0.03},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, table.NumColumns())
	assert.Equal(t, 2, table.NumRows())
	assert.Equal(t, []float64{-0.01, 0.03}, table.Column(1))
}

func TestMultiSeries_Errors(t *testing.T) {
	_, err := MultiSeries(nil, nil)
	assert.ErrorIs(t, err, ErrEmptySeries)

	_, err = MultiSeries([]string{"AAA"}, [][]float64{{0.01}, {0.02}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = MultiSeries(
		[]string{"AAA", "BBB"},
		[][]float64{
			{0.01, 0.02},
			{0.03},
		},
	)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
