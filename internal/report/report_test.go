package report_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/report"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

var (
	salary = transaction.Category{ID: "c-salary", Name: "Salary", Type: transaction.TypeIncome, Color: "#10b981"}
	food   = transaction.Category{ID: "c-food", Name: "Food", Type: transaction.TypeExpense, Color: "#ec4899"}
	travel = transaction.Category{ID: "c-travel", Name: "Transportation", Type: transaction.TypeExpense, Color: "#f59e0b"}
	cats   = []transaction.Category{salary, food, travel}
)

func tx(id string, amount float64, c currency.Code, cat string, d transaction.Date, typ transaction.Type) transaction.Transaction {
	return transaction.Transaction{
		ID: id, Amount: amount, Currency: c, CategoryID: cat, Date: d, Description: id, Type: typ,
	}
}

func ids(txs []transaction.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}

	return out
}

func TestComputeTotals_ConcreteScenario(t *testing.T) {
	rates := currency.Fallback()
	rates[currency.USD] = 15000

	txs := []transaction.Transaction{
		tx("salary", 1000000, currency.IDR, salary.ID, transaction.NewDate(2026, 3, 1), transaction.TypeIncome),
		tx("food", 50, currency.USD, food.ID, transaction.NewDate(2026, 3, 2), transaction.TypeExpense),
	}

	got := report.ComputeTotals(txs, rates)

	assert.Equal(t, report.Totals{Income: 1000000, Expenses: 750000, Balance: 250000}, got)
}

func TestPeriod(t *testing.T) {
	p := report.CurrentMonth(time.Date(2026, 2, 14, 18, 0, 0, 0, time.UTC))

	assert.Equal(t, transaction.NewDate(2026, 2, 1), p.Start)
	assert.Equal(t, transaction.NewDate(2026, 2, 28), p.End)

	txs := []transaction.Transaction{
		tx("jan31", 1, currency.IDR, food.ID, transaction.NewDate(2026, 1, 31), transaction.TypeExpense),
		tx("feb1", 1, currency.IDR, food.ID, transaction.NewDate(2026, 2, 1), transaction.TypeExpense),
		tx("feb28", 1, currency.IDR, food.ID, transaction.NewDate(2026, 2, 28), transaction.TypeIncome),
		tx("mar1", 1, currency.IDR, food.ID, transaction.NewDate(2026, 3, 1), transaction.TypeExpense),
	}

	assert.Equal(t, []string{"feb1", "feb28"}, ids(report.FilterPeriod(txs, p)))
	assert.Equal(t, []string{"feb28"}, ids(report.FilterType(report.FilterPeriod(txs, p), transaction.TypeIncome)))
}

func TestNewBudgetStatus(t *testing.T) {
	tests := []struct {
		name   string
		budget float64
		spent  float64
		want   report.BudgetStatus
	}{
		{
			name:   "ZeroBudget",
			budget: 0, spent: 750000,
			want: report.BudgetStatus{Budget: 0, Spent: 750000, Remaining: -750000, Percentage: 0},
		},
		{
			name:   "HalfSpent",
			budget: 1000000, spent: 500000,
			want: report.BudgetStatus{Budget: 1000000, Spent: 500000, Remaining: 500000, Percentage: 50},
		},
		{
			name:   "Overspent",
			budget: 100, spent: 150,
			want: report.BudgetStatus{Budget: 100, Spent: 150, Remaining: -50, Percentage: 150},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := report.NewBudgetStatus(tt.budget, tt.spent)
			assert.Equal(t, tt.want, got)
			assert.False(t, math.IsNaN(got.Percentage) || math.IsInf(got.Percentage, 0))
		})
	}

	assert.True(t, report.NewBudgetStatus(100, 150).OverBudget())
	assert.False(t, report.NewBudgetStatus(0, 150).OverBudget())
}

func TestTopCategories(t *testing.T) {
	d := transaction.NewDate(2026, 3, 3)
	txs := []transaction.Transaction{
		tx("t1", 10, currency.IDR, travel.ID, d, transaction.TypeExpense),
		tx("t2", 20, currency.IDR, food.ID, d, transaction.TypeExpense),
		tx("t3", 30, currency.IDR, food.ID, d, transaction.TypeExpense),
		tx("t4", 1, currency.USD, "deleted", d, transaction.TypeExpense),
		tx("t5", 40, currency.IDR, salary.ID, d, transaction.TypeIncome),
		tx("t6", 50, currency.IDR, travel.ID, d, transaction.TypeExpense),
	}

	got := report.TopCategories(txs, cats, currency.Fallback(), 3)
	require.Len(t, got, 3)

	// travel and food tie on count; travel appeared first.
	assert.Equal(t, report.CategoryStat{CategoryID: travel.ID, Name: "Transportation", Color: "#f59e0b", Count: 2, Total: 60}, got[0])
	assert.Equal(t, report.CategoryStat{CategoryID: food.ID, Name: "Food", Color: "#ec4899", Count: 2, Total: 50}, got[1])
	assert.Equal(t, report.CategoryStat{CategoryID: "deleted", Name: "Unknown", Color: "#64748b", Count: 1, Total: 15000}, got[2])

	assert.Len(t, report.TopCategories(txs, cats, currency.Fallback(), 0), 4)
	assert.Empty(t, report.TopCategories(nil, cats, currency.Fallback(), 3))
}

func TestMonthlySeries(t *testing.T) {
	m := transaction.NewDate(2026, 5, 10)

	txs := []transaction.Transaction{
		tx("m-3", 100, currency.IDR, salary.ID, m.AddMonths(-3), transaction.TypeIncome),
		tx("m-2", 200, currency.IDR, salary.ID, m.AddMonths(-2), transaction.TypeIncome),
		tx("m", 10, currency.USD, food.ID, m, transaction.TypeExpense),
		tx("m-income", 5, currency.IDR, salary.ID, m, transaction.TypeIncome),
		tx("future", 999, currency.IDR, food.ID, m.AddMonths(1), transaction.TypeExpense),
	}

	got := report.MonthlySeries(txs, currency.Fallback(), report.SeriesOptions{Months: 3, End: m})

	assert.Equal(t, []report.MonthBucket{
		{Month: "2026-03", Label: "Mar 2026", Income: 200, Expenses: 0, Balance: 200},
		{Month: "2026-04", Label: "Apr 2026", Income: 0, Expenses: 0, Balance: 0},
		{Month: "2026-05", Label: "May 2026", Income: 5, Expenses: 150000, Balance: -149995},
	}, got)
}

func TestMonthlySeries_Floor(t *testing.T) {
	since := transaction.NewDate(2026, 2, 1)

	t.Run("AnchorBeforeFloor", func(t *testing.T) {
		got := report.MonthlySeries(nil, currency.Fallback(), report.SeriesOptions{
			End:   transaction.NewDate(2025, 11, 20),
			Since: since,
		})

		require.Len(t, got, 1)
		assert.Equal(t, "2026-02", got[0].Month)
	})

	t.Run("WindowCrossesFloor", func(t *testing.T) {
		got := report.MonthlySeries(nil, currency.Fallback(), report.SeriesOptions{
			End:   transaction.NewDate(2026, 4, 2),
			Since: since,
		})

		months := make([]string, len(got))
		for i, b := range got {
			months[i] = b.Month
		}

		assert.Equal(t, []string{"2026-02", "2026-03", "2026-04"}, months)
	})

	t.Run("DefaultLength", func(t *testing.T) {
		got := report.MonthlySeries(nil, currency.Fallback(), report.SeriesOptions{End: transaction.NewDate(2027, 1, 1)})
		require.Len(t, got, report.DefaultSeriesMonths)
		assert.Equal(t, "2026-08", got[0].Month)
		assert.Equal(t, "2027-01", got[5].Month)
	})
}

func TestSort(t *testing.T) {
	rates := currency.Fallback()
	d1 := transaction.NewDate(2026, 3, 1)
	d2 := transaction.NewDate(2026, 3, 2)

	a := tx("a", 10, currency.USD, food.ID, d1, transaction.TypeExpense) // 150000
	b := tx("b", 200000, currency.IDR, salary.ID, d2, transaction.TypeIncome)
	c := tx("c", 5, currency.IDR, "missing", d2, transaction.TypeExpense)
	a.Description = "zebra"
	b.Description = "Apple"
	c.Description = "mango"

	txs := []transaction.Transaction{a, b, c}

	tests := []struct {
		key  report.SortKey
		want []string
	}{
		{key: report.SortDateDesc, want: []string{"b", "c", "a"}},
		{key: report.SortDateAsc, want: []string{"a", "b", "c"}},
		{key: report.SortAmountDesc, want: []string{"b", "a", "c"}},
		{key: report.SortAmountAsc, want: []string{"c", "a", "b"}},
		{key: report.SortCategory, want: []string{"c", "a", "b"}},
		{key: report.SortAlphabetical, want: []string{"b", "c", "a"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(report.Sort(txs, cats, rates, tt.key)))
		})
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids(txs), "input is not reordered")
}

func TestSort_DateDescIsStable(t *testing.T) {
	d := transaction.NewDate(2026, 3, 5)
	txs := []transaction.Transaction{
		tx("first", 1, currency.IDR, food.ID, d, transaction.TypeExpense),
		tx("older", 1, currency.IDR, food.ID, d.AddDays(-1), transaction.TypeExpense),
		tx("second", 1, currency.IDR, food.ID, d, transaction.TypeExpense),
	}

	assert.Equal(t, []string{"first", "second", "older"}, ids(report.Sort(txs, cats, nil, report.SortDateDesc)))
}

func TestParseSortKey(t *testing.T) {
	k, err := report.ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, report.SortDateDesc, k)

	k, err = report.ParseSortKey("amount-asc")
	require.NoError(t, err)
	assert.Equal(t, report.SortAmountAsc, k)

	_, err = report.ParseSortKey("price")
	assert.ErrorIs(t, err, report.ErrUnknownSortKey)

	assert.Equal(t, report.SortDateDesc, report.SortAlphabetical.Next())
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	p := report.Paginate(items, 3, 10)
	assert.Equal(t, []int{20, 21, 22}, p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 23, p.TotalItems)

	p = report.Paginate(items, 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, report.DefaultPageSize, p.PageSize)
	assert.Len(t, p.Items, 10)

	p = report.Paginate(items, 4, 10)
	assert.Empty(t, p.Items)
	assert.NotNil(t, p.Items)

	empty := report.Paginate([]int{}, 1, 10)
	assert.Zero(t, empty.TotalPages)
}

func TestCategoryLabelAndColor(t *testing.T) {
	assert.Equal(t, "Food", report.CategoryLabel(cats, food.ID))
	assert.Equal(t, "Unknown", report.CategoryLabel(cats, "gone"))
	assert.Equal(t, "#ec4899", report.CategoryColor(cats, food.ID))
	assert.Equal(t, "#64748b", report.CategoryColor(cats, "gone"))
	assert.Equal(t, "#64748b", report.CategoryColor([]transaction.Category{{ID: "x", Name: "X"}}, "x"))
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	rates := currency.Fallback()

	var txs []transaction.Transaction
	for day := 1; day <= 7; day++ {
		txs = append(txs, tx("e"+string(rune('0'+day)), 10, currency.IDR, food.ID, transaction.NewDate(2026, 3, day), transaction.TypeExpense))
	}

	txs = append(txs,
		tx("inc", 1000, currency.IDR, salary.ID, transaction.NewDate(2026, 3, 15), transaction.TypeIncome),
		tx("feb", 500, currency.IDR, salary.ID, transaction.NewDate(2026, 2, 10), transaction.TypeIncome),
	)

	d := report.BuildDashboard(report.DashboardInput{
		Transactions: txs,
		Categories:   cats,
		Rates:        rates,
		Budget:       140,
		Now:          now,
		Series:       report.SeriesOptions{Months: 6, Since: transaction.NewDate(2026, 2, 1)},
	})

	assert.Equal(t, "March 2026", d.Month)
	assert.Equal(t, report.Totals{Income: 1000, Expenses: 70, Balance: 930}, d.Totals)
	assert.Equal(t, report.Totals{Income: 1500, Expenses: 70, Balance: 1430}, d.AllTime)
	assert.Equal(t, report.BudgetStatus{Budget: 140, Spent: 70, Remaining: 70, Percentage: 50}, d.Budget)
	assert.Equal(t, []string{"inc", "e7", "e6", "e5", "e4"}, ids(d.Latest))

	require.Len(t, d.TopCategories, 2)
	assert.Equal(t, food.ID, d.TopCategories[0].CategoryID)

	require.Len(t, d.Series, 2)
	assert.Equal(t, 500.0, d.Series[0].Income)
	assert.Equal(t, 1000.0, d.Series[1].Income)
}

func TestMarkdown(t *testing.T) {
	rates := currency.Fallback()
	march := func(day int) transaction.Date { return transaction.NewDate(2026, 3, day) }

	d := report.BuildDashboard(report.DashboardInput{
		Transactions: []transaction.Transaction{
			tx("Salary", 1000000, currency.IDR, salary.ID, march(1), transaction.TypeIncome),
			tx("Lunch | team", 50, currency.USD, food.ID, march(2), transaction.TypeExpense),
		},
		Categories: cats,
		Rates:      rates,
		Budget:     500000,
		Now:        time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Series:     report.SeriesOptions{Months: 2},
	})

	md := report.Markdown(d, cats, rates)

	assert.Contains(t, md, "# March 2026")
	assert.Contains(t, md, "| Rp 1.000.000 | Rp 750.000 | Rp 250.000 |")
	assert.Contains(t, md, "**over budget**")
	assert.Contains(t, md, `| 2026-03-02 | Lunch \| team | Food | -$50.00 (Rp 750.000) |`)
	assert.Contains(t, md, "| Feb 2026 |")
	assert.Contains(t, md, "| Mar 2026 |")
}

func TestMarkdown_EmptyMonth(t *testing.T) {
	d := report.BuildDashboard(report.DashboardInput{
		Rates: currency.Fallback(),
		Now:   time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	})

	md := report.Markdown(d, nil, currency.Fallback())

	assert.Contains(t, md, "_No transactions this month._")
	assert.NotContains(t, md, "## Budget")
	assert.NotContains(t, md, "## Latest transactions")
}
