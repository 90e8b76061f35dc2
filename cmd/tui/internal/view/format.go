package view

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

// signedAmount renders amount with its home equivalent, prefixed by the
// direction of the transaction.
func signedAmount(tx transaction.Transaction, rates currency.Rates) string {
	sign := "-"
	if tx.Type == transaction.TypeIncome {
		sign = "+"
	}

	return sign + currency.FormatAmount(tx.Amount, tx.Currency, true, rates)
}

func typeLabel(t transaction.Type) string {
	if t == transaction.TypeIncome {
		return "Income"
	}

	return "Expense"
}

// swatch renders a small block in a category color.
func swatch(color string) string {
	if color == "" {
		return " "
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}

// bar draws a horizontal bar of width cells filled to ratio.
func bar(ratio float64, width int, color string) string {
	ratio = min(max(ratio, 0), 1)
	filled := int(ratio * float64(width))

	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled)) +
		faintStyle.Render(strings.Repeat("░", width-filled))
}

func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}
