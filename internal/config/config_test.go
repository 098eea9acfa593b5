package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RISK_RETURNS_CSV", "returns.csv")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Pretty)
	assert.Equal(t, DefaultConfidence, cfg.Confidence)
	assert.Equal(t, DefaultLookbackDays, cfg.LookbackDays)
	assert.Equal(t, DefaultHistoryDB, cfg.HistoryDBPath)
	assert.Equal(t, "returns.csv", cfg.ReturnsCSV)
	assert.Empty(t, cfg.Symbols)
	assert.Empty(t, cfg.Weights)
}

func TestLoad_NoSourceConfigured(t *testing.T) {
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_SymbolsAndWeights(t *testing.T) {
	t.Setenv("RISK_SYMBOLS", "AAA.US, BBB.EU ,CCC.US")
	t.Setenv("RISK_WEIGHTS", "0.5, 0.3, 0.2")
	t.Setenv("RISK_LOOKBACK_DAYS", "126")
	t.Setenv("RISK_CONFIDENCE", "0.01")
	t.Setenv("RISK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"AAA.US", "BBB.EU", "CCC.US"}, cfg.Symbols)
	assert.Equal(t, []float64{0.5, 0.3, 0.2}, cfg.Weights)
	assert.Equal(t, 126, cfg.LookbackDays)
	assert.Equal(t, 0.01, cfg.Confidence)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidConfidence(t *testing.T) {
	t.Setenv("RISK_RETURNS_CSV", "returns.csv")
	t.Setenv("RISK_CONFIDENCE", "1.5")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("RISK_CONFIDENCE", "not-a-number")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_InvalidWeights(t *testing.T) {
	t.Setenv("RISK_SYMBOLS", "AAA.US")
	t.Setenv("RISK_WEIGHTS", "0.5,oops")

	_, err := Load()
	assert.Error(t, err)
}
