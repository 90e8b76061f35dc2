package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/http/respond"
	"github.com/Foster13/money-month-tracker/internal/report"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

type Source interface {
	Transactions() []transaction.Transaction
	Categories() []transaction.Category
}

type RateSource interface {
	Rates() currency.Rates
}

type BudgetSource interface {
	Get(ctx context.Context) (float64, error)
}

type Handler struct {
	source Source
	rates  RateSource
	budget BudgetSource
	series report.SeriesOptions
	now    func() time.Time
}

// NewHandler builds a dashboard over source. budget may be nil, in which case
// the budget section reports no budget.
func NewHandler(source Source, rates RateSource, budget BudgetSource, series report.SeriesOptions) *Handler {
	return &Handler{source: source, rates: rates, budget: budget, series: series, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

type transactionSummary struct {
	transaction.Transaction
	CategoryName  string `json:"categoryName"`
	CategoryColor string `json:"categoryColor"`
	Formatted     string `json:"formatted"`
}

type dashboardResponse struct {
	report.Dashboard
	Latest    []transactionSummary `json:"latest"`
	Formatted formattedTotals      `json:"formatted"`
}

type formattedTotals struct {
	Income    string `json:"totalIncome"`
	Expenses  string `json:"totalExpenses"`
	Balance   string `json:"balance"`
	Budget    string `json:"monthlyBudget"`
	Remaining string `json:"budgetRemaining"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	var monthly float64

	if h.budget != nil {
		v, err := h.budget.Get(r.Context())
		if err != nil {
			respond.Internal(w, r, err)
			return
		}

		monthly = v
	}

	cats := h.source.Categories()
	rates := h.rates.Rates()

	d := report.BuildDashboard(report.DashboardInput{
		Transactions: h.source.Transactions(),
		Categories:   cats,
		Rates:        rates,
		Budget:       monthly,
		Now:          h.now(),
		Series:       h.series,
	})

	resp := dashboardResponse{
		Dashboard: d,
		Latest:    make([]transactionSummary, len(d.Latest)),
		Formatted: formattedTotals{
			Income:    currency.FormatHome(d.Totals.Income),
			Expenses:  currency.FormatHome(d.Totals.Expenses),
			Balance:   currency.FormatHome(d.Totals.Balance),
			Budget:    currency.FormatHome(d.Budget.Budget),
			Remaining: currency.FormatHome(d.Budget.Remaining),
		},
	}

	for i, tx := range d.Latest {
		resp.Latest[i] = transactionSummary{
			Transaction:   tx,
			CategoryName:  report.CategoryLabel(cats, tx.CategoryID),
			CategoryColor: report.CategoryColor(cats, tx.CategoryID),
			Formatted:     currency.FormatAmount(tx.Amount, tx.Currency, true, rates),
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}
