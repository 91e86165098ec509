package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "data/all_stocks_predictions.xlsx", cfg.DataFile)
	assert.Equal(t, 30, cfg.DataRefreshMinutes)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_FILE", "data/stocks.csv")
	t.Setenv("DATA_REFRESH_MINUTES", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "data/stocks.csv", cfg.DataFile)
	assert.Equal(t, 5, cfg.DataRefreshMinutes)
}

func TestLoadConfigInvalidIntFallsBack(t *testing.T) {
	t.Setenv("DATA_REFRESH_MINUTES", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.DataRefreshMinutes)
}
