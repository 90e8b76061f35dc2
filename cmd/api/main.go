package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Foster13/money-month-tracker/internal/app"
	"github.com/Foster13/money-month-tracker/internal/config"
	apiHttp "github.com/Foster13/money-month-tracker/internal/http"
	budgetHandler "github.com/Foster13/money-month-tracker/internal/http/budget"
	categoryHandler "github.com/Foster13/money-month-tracker/internal/http/category"
	dashboardHandler "github.com/Foster13/money-month-tracker/internal/http/dashboard"
	dataHandler "github.com/Foster13/money-month-tracker/internal/http/data"
	ratesHandler "github.com/Foster13/money-month-tracker/internal/http/rates"
	simulationHandler "github.com/Foster13/money-month-tracker/internal/http/simulation"
	txHandler "github.com/Foster13/money-month-tracker/internal/http/transaction"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	a.RefreshRatesIfStale(ctx)

	var (
		ledger   = a.Transactions
		pageSize = cfg.Report.PageSize
	)

	router := apiHttp.New(apiHttp.Handlers{
		Transactions: txHandler.NewHandler(ledger, ledger, a.Validator, pageSize),
		Categories:   categoryHandler.NewHandler(ledger, a.Validator),
		Rates:        ratesHandler.NewHandler(ledger, a.Rates),
		Data:         dataHandler.NewHandler(ledger, a.Export),
		Budget:       budgetHandler.NewHandler(a.Budget, a.Validator),
		Dashboard:    dashboardHandler.NewHandler(ledger, ledger, a.Budget, a.Series),
		Simulation:   simulationHandler.NewHandler(a.Simulation, ledger, a.Validator, pageSize, a.Series),
	}, apiHttp.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Timeout:     cfg.Server.Timeout,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "storage", cfg.Storage.Driver)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("server stopped")

	return nil
}
