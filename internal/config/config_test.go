package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Foster13/money-month-tracker/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "data", cfg.Storage.Path)
	assert.Equal(t, "finance-storage", cfg.Storage.Key)
	assert.Equal(t, "monthlyBudget", cfg.Storage.BudgetKey)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.Rates.Timeout)
	assert.True(t, cfg.Rates.RefreshOnStart)
	assert.Equal(t, 6, cfg.Report.SeriesMonths)
	assert.Equal(t, 10, cfg.Report.PageSize)

	since, err := cfg.SeriesSince()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), since)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000,https://finance.example")
	t.Setenv("SERIES_SINCE", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://postgres:secret@db:5432/money_month_tracker?sslmode=disable", cfg.ConnectionString())
	assert.Equal(t, []string{"http://localhost:3000", "https://finance.example"}, cfg.Server.CORSOrigins)

	since, err := cfg.SeriesSince()
	require.NoError(t, err)
	assert.True(t, since.IsZero())
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"STORAGE_DRIVER": "mongo",
		"SERIES_SINCE":   "Feb 2026",
		"PORT":           "eighty",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(key, value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
