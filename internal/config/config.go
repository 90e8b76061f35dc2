package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Money Month Tracker"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Storage struct {
		// Driver is one of file, sqlite or postgres.
		Driver     string `envconfig:"STORAGE_DRIVER" default:"file"`
		Path       string `envconfig:"STORAGE_PATH" default:"./data"`
		SQLitePath string `envconfig:"SQLITE_PATH" default:"./data/finance.db"`
		Key        string `envconfig:"STORAGE_KEY" default:"finance-storage"`
		BudgetKey  string `envconfig:"BUDGET_KEY" default:"monthlyBudget"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"money_month_tracker"`
	}

	Rates struct {
		URL            string        `envconfig:"RATES_URL" default:"https://api.exchangerate-api.com/v4/latest/IDR"`
		Timeout        time.Duration `envconfig:"RATES_TIMEOUT" default:"10s"`
		RefreshOnStart bool          `envconfig:"REFRESH_RATES_ON_START" default:"true"`
	}

	Report struct {
		SeriesMonths int    `envconfig:"SERIES_MONTHS" default:"6"`
		SeriesSince  string `envconfig:"SERIES_SINCE" default:"2026-02"`
		PageSize     int    `envconfig:"PAGE_SIZE" default:"10"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// SeriesSince parses the series floor; an empty value means no floor.
func (c *Config) SeriesSince() (time.Time, error) {
	if c.Report.SeriesSince == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse("2006-01", c.Report.SeriesSince)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid SERIES_SINCE %q: expected YYYY-MM", c.Report.SeriesSince)
	}

	return t, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "file", "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: expected file, sqlite or postgres", c.Storage.Driver)
	}

	if _, err := c.SeriesSince(); err != nil {
		return err
	}

	c.Storage.Path = filepath.Clean(c.Storage.Path)

	return nil
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; the environment may be fully set already.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
