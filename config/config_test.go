package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	require.NoError(t, err)

	assert.Equal(t, 0.35, cfg.Trading.EntryPriceMin)
	assert.Equal(t, 0.50, cfg.Trading.EntryPriceMax)
	assert.Equal(t, 100.0, cfg.Trading.DefaultOrderSize)
	assert.Equal(t, 50.0, cfg.Trading.RebalanceOrderSize)
	assert.Equal(t, 0.2, cfg.Trading.ImbalanceThreshold)
	assert.Equal(t, 1000.0, cfg.Risk.MaxTotalCapital)
	assert.Equal(t, 300.0, cfg.Risk.MaxPosPerWindow)
	assert.Equal(t, 120, cfg.Risk.MaxUnhedgedSeconds)
	assert.Equal(t, 0.98, cfg.Risk.MaxPairCost)
	assert.Equal(t, 60, cfg.Risk.SettlementBufferSeconds)
	assert.Equal(t, "https://clob.polymarket.com", cfg.API.CLOBBase)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ExplicitValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
trading:
  entry_price_min: 0.30
  entry_price_max: 0.55
risk:
  max_unhedged_seconds: 30
log:
  level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, 0.30, cfg.Trading.EntryPriceMin)
	assert.Equal(t, 0.55, cfg.Trading.EntryPriceMax)
	assert.Equal(t, 30, cfg.Risk.MaxUnhedgedSeconds)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	cfg, err := Load(writeConfig(t, "log:\n  level: info\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestDurations(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	require.NoError(t, err)
	assert.Equal(t, "2m0s", cfg.Risk.MaxUnhedged().String())
	assert.Equal(t, "1m0s", cfg.Risk.SettlementBuffer().String())
	assert.Equal(t, "500ms", cfg.TickInterval().String())
}
