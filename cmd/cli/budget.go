package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Foster13/money-month-tracker/internal/currency"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show the monthly budget",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := application.Budget.Get(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), currency.FormatHome(v))

			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <amount>",
		Short: "Set the monthly budget in IDR (0 clears it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var amount float64

			if args[0] != "0" {
				v, err := currency.ParseAmount(args[0])
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", args[0], err)
				}

				amount = v
			}

			if err := application.Budget.Set(cmd.Context(), amount); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "monthly budget set to %s\n", currency.FormatHome(amount))

			return nil
		},
	})

	return cmd
}
