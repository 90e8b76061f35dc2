package simulation

import (
	"context"

	"github.com/Foster13/money-month-tracker/internal/transaction"
)

// Ledger exposes a Service through the same context-aware, fallible method set
// as the persisted ledger so both can be driven by one handler or view.
type Ledger struct {
	sim *Service
}

func NewLedger(sim *Service) Ledger {
	return Ledger{sim: sim}
}

func (l Ledger) Transactions() []transaction.Transaction { return l.sim.Transactions() }
func (l Ledger) Categories() []transaction.Category       { return l.sim.Categories() }

func (l Ledger) Transaction(id string) (transaction.Transaction, bool) {
	return l.sim.Transaction(id)
}

func (l Ledger) AddTransaction(_ context.Context, p transaction.CreateParams) (transaction.Transaction, error) {
	return l.sim.AddTransaction(p), nil
}

func (l Ledger) UpdateTransaction(_ context.Context, id string, patch transaction.Patch) error {
	l.sim.UpdateTransaction(id, patch)
	return nil
}

func (l Ledger) DeleteTransaction(_ context.Context, id string) error {
	l.sim.DeleteTransaction(id)
	return nil
}
