package report

import (
	"fmt"
	"strings"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

// Markdown renders d as a markdown document for terminal or file output.
func Markdown(d Dashboard, cats []transaction.Category, rates currency.Rates) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", d.Month)

	sb.WriteString("| Income | Expenses | Balance |\n|---:|---:|---:|\n")
	fmt.Fprintf(&sb, "| %s | %s | %s |\n\n",
		currency.FormatHome(d.Totals.Income), currency.FormatHome(d.Totals.Expenses), currency.FormatHome(d.Totals.Balance))

	if d.Budget.Budget > 0 {
		status := "on track"
		if d.Budget.OverBudget() {
			status = "**over budget**"
		}

		fmt.Fprintf(&sb, "## Budget\n\n%s of %s spent (%.1f%%), %s remaining, %s.\n\n",
			currency.FormatHome(d.Budget.Spent), currency.FormatHome(d.Budget.Budget),
			d.Budget.Percentage, currency.FormatHome(d.Budget.Remaining), status)
	}

	sb.WriteString("## Top categories\n\n")

	if len(d.TopCategories) == 0 {
		sb.WriteString("_No transactions this month._\n\n")
	} else {
		sb.WriteString("| Category | Count | Total |\n|---|---:|---:|\n")

		for _, s := range d.TopCategories {
			fmt.Fprintf(&sb, "| %s | %d | %s |\n", escapeCell(s.Name), s.Count, currency.FormatHome(s.Total))
		}

		sb.WriteString("\n")
	}

	if len(d.Latest) > 0 {
		sb.WriteString("## Latest transactions\n\n| Date | Description | Category | Amount |\n|---|---|---|---:|\n")

		for _, tx := range d.Latest {
			sign := "-"
			if tx.Type == transaction.TypeIncome {
				sign = "+"
			}

			fmt.Fprintf(&sb, "| %s | %s | %s | %s%s |\n",
				tx.Date, escapeCell(tx.Description), escapeCell(CategoryLabel(cats, tx.CategoryID)),
				sign, currency.FormatAmount(tx.Amount, tx.Currency, true, rates))
		}

		sb.WriteString("\n")
	}

	if len(d.Series) > 0 {
		sb.WriteString("## Monthly trend\n\n| Month | Income | Expenses | Balance |\n|---|---:|---:|---:|\n")

		for _, b := range d.Series {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", b.Label,
				currency.FormatHome(b.Income), currency.FormatHome(b.Expenses), currency.FormatHome(b.Balance))
		}
	}

	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
