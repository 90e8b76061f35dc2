package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Foster13/money-month-tracker/internal/encoding"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

const maxImportSize = 10 << 20

func exportCmd() *cobra.Command {
	var (
		dir    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Back up all data to JSON or export transactions as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case "json":
				path, err := application.Export.Backup(dir)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), path)

				return nil
			case "csv":
				return application.Export.CSV(cmd.OutOrStdout())
			}

			return fmt.Errorf("invalid --format %q: expected json or csv", format)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "./exports", "directory the JSON backup is written to")
	cmd.Flags().StringVar(&format, "format", "json", "json (full backup file) or csv (transactions to stdout)")

	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <backup.json>",
		Short: "Replace all data with a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening backup: %w", err)
			}
			defer f.Close()

			data, err := encoding.ReadAll(f, maxImportSize)
			if err != nil {
				return fmt.Errorf("reading backup: %w", err)
			}

			ledger := application.Transactions

			if err := ledger.Import(cmd.Context(), data); err != nil {
				if errors.Is(err, transaction.ErrInvalidImport) {
					return fmt.Errorf("%s is not a valid backup: %w", args[0], err)
				}

				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d transactions and %d categories\n",
				len(ledger.Transactions()), len(ledger.Categories()))

			return nil
		},
	}
}
