package report

import (
	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

const DefaultSeriesMonths = 6

// MonthBucket holds the home-currency totals of one calendar month.
type MonthBucket struct {
	Month    string  `json:"month"` // YYYY-MM
	Label    string  `json:"label"` // Jan 2026
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

type SeriesOptions struct {
	// Months is the window length; <= 0 means DefaultSeriesMonths.
	Months int
	// End is a day in the last month of the window.
	End transaction.Date
	// Since, when set, is a floor: earlier months are never shown and the
	// window ends no earlier than Since's month.
	Since transaction.Date
}

// MonthlySeries buckets txs into the trailing window of calendar months,
// oldest first. Months without transactions are present with zero totals and
// transactions outside the window are ignored.
func MonthlySeries(txs []transaction.Transaction, rates currency.Rates, opts SeriesOptions) []MonthBucket {
	months := opts.Months
	if months <= 0 {
		months = DefaultSeriesMonths
	}

	anchor := MonthOf(opts.End).Start

	var floor transaction.Date
	if !opts.Since.IsZero() {
		floor = MonthOf(opts.Since).Start
		if anchor.Before(floor) {
			anchor = floor
		}
	}

	buckets := make([]MonthBucket, 0, months)
	index := make(map[string]int, months)

	for i := months - 1; i >= 0; i-- {
		m := anchor.AddMonths(-i)
		if !floor.IsZero() && m.Before(floor) {
			continue
		}

		key := m.Format("2006-01")
		index[key] = len(buckets)
		buckets = append(buckets, MonthBucket{Month: key, Label: m.Format("Jan 2006")})
	}

	for _, tx := range txs {
		i, ok := index[tx.Date.Format("2006-01")]
		if !ok || tx.Date.IsZero() {
			continue
		}

		switch tx.Type {
		case transaction.TypeIncome:
			buckets[i].Income += tx.HomeAmount(rates)
		case transaction.TypeExpense:
			buckets[i].Expenses += tx.HomeAmount(rates)
		}
	}

	for i := range buckets {
		buckets[i].Balance = buckets[i].Income - buckets[i].Expenses
	}

	return buckets
}
