package transaction

import (
	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/report"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

type transactionResponse struct {
	transaction.Transaction
	CategoryName  string  `json:"categoryName"`
	CategoryColor string  `json:"categoryColor"`
	HomeAmount    float64 `json:"homeAmount"`
	Formatted     string  `json:"formatted"`
}

type listResponse struct {
	report.Page[transactionResponse]
	Totals report.Totals `json:"totals"`
}

func toResponse(tx transaction.Transaction, cats []transaction.Category, rates currency.Rates) transactionResponse {
	return transactionResponse{
		Transaction:   tx,
		CategoryName:  report.CategoryLabel(cats, tx.CategoryID),
		CategoryColor: report.CategoryColor(cats, tx.CategoryID),
		HomeAmount:    tx.HomeAmount(rates),
		Formatted:     currency.FormatAmount(tx.Amount, tx.Currency, true, rates),
	}
}

func toResponseList(txs []transaction.Transaction, cats []transaction.Category, rates currency.Rates) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx, cats, rates)
	}

	return resp
}
