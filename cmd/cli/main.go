package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Foster13/money-month-tracker/internal/app"
	"github.com/Foster13/money-month-tracker/internal/config"
)

var application *app.App

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mmt",
		Short: "Money Month Tracker command line",
		Long: `mmt manages the money month tracker ledger from the shell: monthly
reports, backups, imports, exchange rates and the monthly budget.`,
		SilenceUsage:       true,
		PersistentPreRunE:  openApp,
		PersistentPostRunE: closeApp,
	}

	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(reportCmd())
	root.AddCommand(transactionsCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(importCmd())
	root.AddCommand(ratesCmd())
	root.AddCommand(budgetCmd())

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}

func openApp(cmd *cobra.Command, _ []string) error {
	levelName, _ := cmd.Flags().GetString("log-level")

	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// PersistentPostRunE does not run after a failed command.
	if err := closeApp(cmd, nil); err != nil {
		slog.Warn("closing previous app", "error", err)
	}

	a, err := app.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	application = a

	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if application == nil {
		return nil
	}

	err := application.Close()
	application = nil

	return err
}
