package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arivarton/stamp/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("STAMP_DB", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MinimumHours)
	assert.Equal(t, "300", cfg.WagePerHour)
	assert.Equal(t, "NKR", cfg.Currency)
	assert.Equal(t, "08:00-16:00", cfg.Hours)
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("STAMP_DB", "")

	path := filepath.Join(dir, "stamp", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("currency: EUR\nwage_per_hour: \"450.50\"\n"), 0o600))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, 2, cfg.MinimumHours, "unset fields fall back to defaults")

	w, err := cfg.Wage()
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("450.50").Equal(w))
}

func TestDatabaseEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("STAMP_DB", "/tmp/override.db")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", cfg.DatabasePath)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("STAMP_DB", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Set("company.name", "Example Consulting"))
	require.NoError(t, cfg.Set("minimum_hours", "3"))
	require.NoError(t, config.Save(cfg))

	loaded, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "Example Consulting", loaded.Company.Name)
	assert.Equal(t, 3, loaded.MinimumHours)
}

func TestWorkHours(t *testing.T) {
	cfg := config.Config{Hours: "08:00-16:00"}
	from, to, err := cfg.WorkHours()
	require.NoError(t, err)
	assert.Equal(t, config.TimeOfDay{Hour: 8}, from)
	assert.Equal(t, config.TimeOfDay{Hour: 16}, to)

	cfg.Hours = "8-16"
	_, _, err = cfg.WorkHours()
	assert.Error(t, err)
}

func TestSetRejectsBadValues(t *testing.T) {
	var cfg config.Config
	assert.Error(t, cfg.Set("minimum_hours", "soon"))
	assert.Error(t, cfg.Set("wage_per_hour", "lots"))
	assert.Error(t, cfg.Set("hours", "whenever"))
	assert.Error(t, cfg.Set("no_such_key", "x"))
}
