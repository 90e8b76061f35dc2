package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/report"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

func transactionsCmd() *cobra.Command {
	var (
		typ       string
		sortKey   string
		startDate string
		endDate   string
		page      int
	)

	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := report.ParseSortKey(sortKey)
			if err != nil {
				return err
			}

			var period report.Period

			if startDate != "" {
				if period.Start, err = transaction.ParseDate(startDate); err != nil {
					return fmt.Errorf("invalid --from: %w", err)
				}
			}

			if endDate != "" {
				if period.End, err = transaction.ParseDate(endDate); err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
			}

			ledger := application.Transactions
			cats := ledger.Categories()
			rates := ledger.Rates()

			txs := report.FilterPeriod(ledger.Transactions(), period)

			if typ != "" {
				t := transaction.Type(typ)
				if !t.Valid() {
					return fmt.Errorf("invalid --type %q: expected income or expense", typ)
				}

				txs = report.FilterType(txs, t)
			}

			p := report.Paginate(report.Sort(txs, cats, rates, key), page, application.Config.Report.PageSize)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("Date"),
				headerStyle.Render("Type"),
				headerStyle.Render("Category"),
				headerStyle.Render("Description"),
				headerStyle.Render("Amount"))

			for _, tx := range p.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					tx.Date, tx.Type, report.CategoryLabel(cats, tx.CategoryID), tx.Description,
					currency.FormatAmount(tx.Amount, tx.Currency, true, rates))
			}

			if err := w.Flush(); err != nil {
				return err
			}

			totals := report.ComputeTotals(txs, rates)
			fmt.Fprintf(cmd.ErrOrStderr(), "\npage %d/%d · %d transactions · balance %s\n",
				p.Page, max(p.TotalPages, 1), p.TotalItems, currency.FormatHome(totals.Balance))

			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "only income or expense")
	cmd.Flags().StringVar(&sortKey, "sort", string(report.SortDateDesc), "sort key (date-desc, date-asc, amount-desc, amount-asc, category, alphabetical)")
	cmd.Flags().StringVar(&startDate, "from", "", "first day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "to", "", "last day to include (YYYY-MM-DD)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}
