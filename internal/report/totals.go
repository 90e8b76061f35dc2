package report

import (
	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

// Totals are home-currency sums over a set of transactions.
type Totals struct {
	Income   float64 `json:"totalIncome"`
	Expenses float64 `json:"totalExpenses"`
	Balance  float64 `json:"balance"`
}

func ComputeTotals(txs []transaction.Transaction, rates currency.Rates) Totals {
	var t Totals

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeIncome:
			t.Income += tx.HomeAmount(rates)
		case transaction.TypeExpense:
			t.Expenses += tx.HomeAmount(rates)
		}
	}

	t.Balance = t.Income - t.Expenses

	return t
}

// BudgetStatus compares spending against a monthly budget.
type BudgetStatus struct {
	Budget     float64 `json:"monthlyBudget"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"budgetRemaining"`
	Percentage float64 `json:"budgetPercentage"`
}

// NewBudgetStatus computes the remaining budget and the share spent. With a
// budget of zero or less the percentage is 0.
func NewBudgetStatus(budget, spent float64) BudgetStatus {
	s := BudgetStatus{
		Budget:    budget,
		Spent:     spent,
		Remaining: budget - spent,
	}

	if budget > 0 {
		s.Percentage = spent / budget * 100
	}

	return s
}

// OverBudget reports whether spending exceeded a set budget.
func (s BudgetStatus) OverBudget() bool {
	return s.Budget > 0 && s.Spent > s.Budget
}
