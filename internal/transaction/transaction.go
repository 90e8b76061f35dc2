package transaction

import (
	"github.com/Foster13/money-month-tracker/internal/currency"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single income or expense entry. Amount is in units
// of Currency, not of the home currency. CategoryID is not enforced as a
// reference and Type is independent from the category's type.
type Transaction struct {
	ID          string        `json:"id"`
	Amount      float64       `json:"amount"`
	Currency    currency.Code `json:"currency"`
	CategoryID  string        `json:"categoryId"`
	Date        Date          `json:"date"`
	Description string        `json:"description"`
	Type        Type          `json:"type"`
}

// HomeAmount returns the amount converted to the home currency.
func (t Transaction) HomeAmount(rates currency.Rates) float64 {
	return currency.ConvertToHome(t.Amount, t.Currency, rates)
}

type CreateParams struct {
	Amount      float64
	Currency    currency.Code
	CategoryID  string
	Date        Date
	Description string
	Type        Type
}

// New builds a transaction from params under the given id. An empty currency
// defaults to the home currency.
func New(id string, p CreateParams) Transaction {
	c := p.Currency
	if c == "" {
		c = currency.Home
	}

	return Transaction{
		ID:          id,
		Amount:      p.Amount,
		Currency:    c,
		CategoryID:  p.CategoryID,
		Date:        p.Date,
		Description: p.Description,
		Type:        p.Type,
	}
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Amount      *float64
	Currency    *currency.Code
	CategoryID  *string
	Date        *Date
	Description *string
	Type        *Type
}

func (p Patch) Apply(tx Transaction) Transaction {
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}

	if p.Currency != nil {
		tx.Currency = *p.Currency
	}

	if p.CategoryID != nil {
		tx.CategoryID = *p.CategoryID
	}

	if p.Date != nil {
		tx.Date = *p.Date
	}

	if p.Description != nil {
		tx.Description = *p.Description
	}

	if p.Type != nil {
		tx.Type = *p.Type
	}

	return tx
}

// Category groups transactions. Color is an optional hex display hint.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  Type   `json:"type"`
	Color string `json:"color,omitempty"`
}

type CategoryParams struct {
	Name  string
	Type  Type
	Color string
}

type CategoryPatch struct {
	Name  *string
	Type  *Type
	Color *string
}

func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}

	if p.Type != nil {
		c.Type = *p.Type
	}

	if p.Color != nil {
		c.Color = *p.Color
	}

	return c
}

var defaultCategories = []CategoryParams{
	{Name: "Salary", Type: TypeIncome, Color: "#10b981"},
	{Name: "Freelance", Type: TypeIncome, Color: "#3b82f6"},
	{Name: "Investments", Type: TypeIncome, Color: "#8b5cf6"},
	{Name: "Other Income", Type: TypeIncome, Color: "#06b6d4"},
	{Name: "Housing", Type: TypeExpense, Color: "#ef4444"},
	{Name: "Transportation", Type: TypeExpense, Color: "#f59e0b"},
	{Name: "Food", Type: TypeExpense, Color: "#ec4899"},
	{Name: "Utilities", Type: TypeExpense, Color: "#6366f1"},
	{Name: "Healthcare", Type: TypeExpense, Color: "#14b8a6"},
	{Name: "Entertainment", Type: TypeExpense, Color: "#f97316"},
	{Name: "Shopping", Type: TypeExpense, Color: "#a855f7"},
	{Name: "Other Expenses", Type: TypeExpense, Color: "#64748b"},
}

// DefaultCategories returns the first-run categories, income first, with ids from newID.
func DefaultCategories(newID func() string) []Category {
	out := make([]Category, len(defaultCategories))
	for i, p := range defaultCategories {
		out[i] = Category{ID: newID(), Name: p.Name, Type: p.Type, Color: p.Color}
	}

	return out
}
