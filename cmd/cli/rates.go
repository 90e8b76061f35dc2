package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Foster13/money-month-tracker/internal/currency"
)

func ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show the exchange-rate cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger := application.Transactions
			rates := ledger.Rates()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, c := range currency.All() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c, c.Name(), currency.FormatRate(rates[c]))
			}

			if err := w.Flush(); err != nil {
				return err
			}

			if ts := ledger.LastRateUpdate(); ts != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "\nlast updated %s\n", ts.Local().Format("2006-01-02 15:04"))
			}

			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Fetch live rates from the provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := application.Transactions.RefreshRates(cmd.Context(), application.Rates)
			if err != nil {
				return err
			}

			if res.Fallback() {
				fmt.Fprintf(cmd.ErrOrStderr(), "live rates unavailable (%v), using fallback rates\n", res.Err)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "exchange rates updated")

			return nil
		},
	})

	return cmd
}
