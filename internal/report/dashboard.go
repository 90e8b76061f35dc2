package report

import (
	"time"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

const (
	latestCount        = 5
	topCategoriesCount = 3
)

// DashboardInput is everything a dashboard is computed from.
type DashboardInput struct {
	Transactions []transaction.Transaction
	Categories   []transaction.Category
	Rates        currency.Rates
	Budget       float64
	Now          time.Time
	Series       SeriesOptions
}

type Dashboard struct {
	Period        Period                    `json:"-"`
	Month         string                    `json:"month"`
	Totals        Totals                    `json:"totals"`
	AllTime       Totals                    `json:"allTime"`
	Budget        BudgetStatus              `json:"budget"`
	Latest        []transaction.Transaction `json:"latest"`
	TopCategories []CategoryStat            `json:"topCategories"`
	Series        []MonthBucket             `json:"series"`
}

// BuildDashboard summarizes the calendar month containing in.Now. The series
// ends at that month unless in.Series.End is set.
func BuildDashboard(in DashboardInput) Dashboard {
	period := CurrentMonth(in.Now)
	month := FilterPeriod(in.Transactions, period)
	totals := ComputeTotals(month, in.Rates)

	series := in.Series
	if series.End.IsZero() {
		series.End = period.Start
	}

	return Dashboard{
		Period:        period,
		Month:         period.Start.Format("January 2006"),
		Totals:        totals,
		AllTime:       ComputeTotals(in.Transactions, in.Rates),
		Budget:        NewBudgetStatus(in.Budget, totals.Expenses),
		Latest:        Latest(month, latestCount),
		TopCategories: TopCategories(month, in.Categories, in.Rates, topCategoriesCount),
		Series:        MonthlySeries(in.Transactions, in.Rates, series),
	}
}
