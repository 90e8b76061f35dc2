package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/Foster13/money-month-tracker/internal/report"
)

func reportCmd() *cobra.Command {
	var (
		month string
		raw   bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the monthly dashboard",
		Long:  `Render income, expenses, budget, top categories and the monthly trend for a month.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()

			if month != "" {
				t, err := time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("invalid --month %q: expected YYYY-MM", month)
				}

				now = t
			}

			monthly, err := application.Budget.Get(cmd.Context())
			if err != nil {
				return err
			}

			ledger := application.Transactions
			cats := ledger.Categories()
			rates := ledger.Rates()

			d := report.BuildDashboard(report.DashboardInput{
				Transactions: ledger.Transactions(),
				Categories:   cats,
				Rates:        rates,
				Budget:       monthly,
				Now:          now,
				Series:       application.Series,
			})

			md := report.Markdown(d, cats, rates)

			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}

			out, err := glamour.Render(md, "auto")
			if err != nil {
				return fmt.Errorf("rendering report: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to report on (YYYY-MM, default current)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")

	return cmd
}
