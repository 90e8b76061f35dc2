package simulation_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/simulation"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

func mainLedger() ([]transaction.Transaction, []transaction.Category) {
	cats := []transaction.Category{
		{ID: "c-salary", Name: "Salary", Type: transaction.TypeIncome, Color: "#10b981"},
		{ID: "c-food", Name: "Food", Type: transaction.TypeExpense, Color: "#ec4899"},
	}

	txs := []transaction.Transaction{
		{ID: "t1", Amount: 1000000, Currency: currency.IDR, CategoryID: "c-salary",
			Date: transaction.NewDate(2026, 3, 1), Description: "Salary", Type: transaction.TypeIncome},
		{ID: "t2", Amount: 50, Currency: currency.USD, CategoryID: "c-food",
			Date: transaction.NewDate(2026, 3, 2), Description: "Groceries", Type: transaction.TypeExpense},
	}

	return txs, cats
}

func TestService_LoadFromMain(t *testing.T) {
	txs, cats := mainLedger()
	sim := simulation.New()

	assert.False(t, sim.Active())
	sim.LoadFromMain(txs, cats)
	assert.True(t, sim.Active())

	forked := sim.Transactions()
	require.Len(t, forked, len(txs))

	mainIDs := map[string]bool{}
	for _, tx := range txs {
		mainIDs[tx.ID] = true
	}

	for i, tx := range forked {
		assert.False(t, mainIDs[tx.ID], "id %s collides with main store", tx.ID)
		assert.True(t, strings.HasPrefix(tx.ID, simulation.IDPrefix))

		want := txs[i]
		want.ID = tx.ID
		assert.Equal(t, want, tx)
	}

	assert.NotEqual(t, forked[0].ID, forked[1].ID)
	assert.Equal(t, cats, sim.Categories())
}

func TestService_LoadFromMain_DoesNotAlias(t *testing.T) {
	txs, cats := mainLedger()
	sim := simulation.New()
	sim.LoadFromMain(txs, cats)

	forked := sim.Transactions()
	sim.UpdateTransaction(forked[0].ID, transaction.Patch{Amount: new(1.0)})
	sim.DeleteTransaction(forked[1].ID)
	sim.AddTransaction(transaction.CreateParams{Amount: 3, Type: transaction.TypeExpense, Description: "extra"})

	cats[0].Name = "Changed in main"

	assert.Equal(t, 1000000.0, txs[0].Amount)
	assert.Equal(t, "t1", txs[0].ID)
	assert.Len(t, txs, 2)
	assert.Equal(t, "Salary", sim.Categories()[0].Name)
}

func TestService_CRUD(t *testing.T) {
	n := 0
	sim := simulation.New(simulation.WithIDGenerator(func() string {
		n++
		return string(rune('a' + n - 1))
	}))

	tx := sim.AddTransaction(transaction.CreateParams{
		Amount: 20, CategoryID: "c-food", Description: "Lunch", Type: transaction.TypeExpense,
	})
	assert.Equal(t, "sim-a", tx.ID)
	assert.Equal(t, currency.IDR, tx.Currency)

	sim.UpdateTransaction(tx.ID, transaction.Patch{Description: new("Dinner")})
	got, ok := sim.Transaction(tx.ID)
	require.True(t, ok)
	assert.Equal(t, "Dinner", got.Description)

	sim.UpdateTransaction("missing", transaction.Patch{Description: new("x")})
	sim.DeleteTransaction("missing")
	assert.Len(t, sim.Transactions(), 1)

	sim.DeleteTransaction(tx.ID)
	assert.Empty(t, sim.Transactions())
}

func TestService_Clear(t *testing.T) {
	txs, cats := mainLedger()
	sim := simulation.New()
	sim.LoadFromMain(txs, cats)

	sim.Clear()

	assert.False(t, sim.Active())
	assert.Empty(t, sim.Transactions())
	assert.Empty(t, sim.Categories())
	assert.NotNil(t, sim.Transactions())
}

func TestLedger_DelegatesToService(t *testing.T) {
	ctx := context.Background()
	txs, cats := mainLedger()

	sim := simulation.New()
	sim.LoadFromMain(txs, cats)

	ledger := simulation.NewLedger(sim)

	tx, err := ledger.AddTransaction(ctx, transaction.CreateParams{
		Amount: 20, Currency: currency.SGD, CategoryID: "c-food",
		Date: transaction.NewDate(2026, 3, 3), Description: "Lunch", Type: transaction.TypeExpense,
	})
	require.NoError(t, err)
	assert.Len(t, ledger.Transactions(), 3)

	require.NoError(t, ledger.UpdateTransaction(ctx, tx.ID, transaction.Patch{Description: new("Team lunch")}))

	got, ok := ledger.Transaction(tx.ID)
	require.True(t, ok)
	assert.Equal(t, "Team lunch", got.Description)

	require.NoError(t, ledger.DeleteTransaction(ctx, tx.ID))
	_, ok = ledger.Transaction(tx.ID)
	assert.False(t, ok)
	assert.Equal(t, cats, ledger.Categories())
}
