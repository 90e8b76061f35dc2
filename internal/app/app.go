// Package app assembles the services every entry point shares from a Config.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Foster13/money-month-tracker/internal/budget"
	"github.com/Foster13/money-month-tracker/internal/config"
	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/database"
	"github.com/Foster13/money-month-tracker/internal/export"
	"github.com/Foster13/money-month-tracker/internal/kv"
	"github.com/Foster13/money-month-tracker/internal/report"
	"github.com/Foster13/money-month-tracker/internal/simulation"
	"github.com/Foster13/money-month-tracker/internal/transaction"
	"github.com/Foster13/money-month-tracker/internal/transaction/store"
	"github.com/Foster13/money-month-tracker/internal/validation"
)

type App struct {
	Config       *config.Config
	Transactions *transaction.Service
	Budget       *budget.Service
	Simulation   *simulation.Service
	Rates        *currency.Provider
	Export       *export.Service
	Validator    *validation.Validator
	Series       report.SeriesOptions

	db *sql.DB
}

// Open connects the configured storage backend and loads the ledger. On the
// first run against an empty backend the default categories are seeded.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	cells, db, err := openCells(cfg)
	if err != nil {
		return nil, err
	}

	txs, err := transaction.Open(ctx, store.New(cells, cfg.Storage.Key))
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	since, err := cfg.SeriesSince()
	if err != nil {
		closeDB(db)
		return nil, err
	}

	series := report.SeriesOptions{Months: cfg.Report.SeriesMonths}
	if !since.IsZero() {
		series.Since = transaction.DateOf(since)
	}

	return &App{
		Config:       cfg,
		Transactions: txs,
		Budget:       budget.NewService(cells, cfg.Storage.BudgetKey),
		Simulation:   simulation.New(),
		Rates:        currency.NewProvider(cfg.Rates.URL, cfg.Rates.Timeout),
		Export:       export.NewService(txs),
		Validator:    validation.New(),
		Series:       series,
		db:           db,
	}, nil
}

func openCells(cfg *config.Config) (kv.Store, *sql.DB, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		return openSQL(database.SQLite, cfg.Storage.SQLitePath, kv.Question)
	case "postgres":
		return openSQL(database.Postgres, cfg.ConnectionString(), kv.Dollar)
	default:
		cells, err := kv.NewFileStore(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open storage directory: %w", err)
		}

		slog.Info("using file storage", "path", cfg.Storage.Path)

		return cells, nil, nil
	}
}

func openSQL(driver database.Driver, dsn, placeholder string) (kv.Store, *sql.DB, error) {
	db, err := database.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(driver, dsn); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("using database storage", "driver", driver)

	return kv.NewSQLStore(db, placeholder), db, nil
}

// RefreshRatesIfStale fetches live rates when the cache has never been filled.
// A fallback result is logged but still applied.
func (a *App) RefreshRatesIfStale(ctx context.Context) {
	if !a.Config.Rates.RefreshOnStart || a.Transactions.LastRateUpdate() != nil {
		return
	}

	res, err := a.Transactions.RefreshRates(ctx, a.Rates)
	if err != nil {
		slog.Error("failed to store exchange rates", "error", err)
		return
	}

	if res.Fallback() {
		slog.Warn("live exchange rates unavailable, using fallback rates", "error", res.Err)
		return
	}

	slog.Info("exchange rates refreshed", "source", res.Source)
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}

	return a.db.Close()
}

func closeDB(db *sql.DB) {
	if db != nil {
		db.Close()
	}
}
