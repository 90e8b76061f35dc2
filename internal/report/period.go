// Package report computes the read-side views of a ledger: period filters,
// totals, budget status, category rankings, monthly series, sorting and
// pagination. Every function is pure; none of them mutate their inputs.
package report

import (
	"time"

	"github.com/Foster13/money-month-tracker/internal/transaction"
)

// Period is an inclusive range of calendar days. A zero bound is open.
type Period struct {
	Start transaction.Date
	End   transaction.Date
}

// MonthOf returns the calendar month containing d.
func MonthOf(d transaction.Date) Period {
	first := transaction.NewDate(d.Year(), d.Month(), 1)

	return Period{Start: first, End: first.AddMonths(1).AddDays(-1)}
}

// CurrentMonth returns the calendar month containing now, in now's location.
func CurrentMonth(now time.Time) Period {
	return MonthOf(transaction.DateOf(now))
}

func (p Period) Contains(d transaction.Date) bool {
	if !p.Start.IsZero() && d.Before(p.Start) {
		return false
	}

	if !p.End.IsZero() && d.After(p.End) {
		return false
	}

	return true
}

// FilterPeriod keeps the transactions dated inside p, preserving order.
func FilterPeriod(txs []transaction.Transaction, p Period) []transaction.Transaction {
	return filter(txs, func(tx transaction.Transaction) bool { return p.Contains(tx.Date) })
}

// FilterType keeps the transactions of type t, preserving order.
func FilterType(txs []transaction.Transaction, t transaction.Type) []transaction.Transaction {
	return filter(txs, func(tx transaction.Transaction) bool { return tx.Type == t })
}

func filter(txs []transaction.Transaction, keep func(transaction.Transaction) bool) []transaction.Transaction {
	out := make([]transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if keep(tx) {
			out = append(out, tx)
		}
	}

	return out
}
