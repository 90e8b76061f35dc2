package transaction_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0

	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// openSeeded opens a first-run service whose repository accepts every save.
func openSeeded(t *testing.T) *transaction.Service {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(transaction.Snapshot{}, transaction.ErrNoSnapshot)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc, err := transaction.Open(context.Background(), repo,
		transaction.WithClock(func() time.Time { return fixedNow }),
		transaction.WithIDGenerator(sequentialIDs()),
	)
	require.NoError(t, err)

	return svc
}

func categoryByName(t *testing.T, svc *transaction.Service, name string) transaction.Category {
	t.Helper()

	for _, c := range svc.Categories() {
		if c.Name == name {
			return c
		}
	}

	t.Fatalf("category %q not found", name)

	return transaction.Category{}
}

func TestOpen_SeedsDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)

	var saved transaction.Snapshot

	repo.EXPECT().Load(gomock.Any()).Return(transaction.Snapshot{}, transaction.ErrNoSnapshot)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snap transaction.Snapshot) error {
			saved = snap
			return nil
		})

	svc, err := transaction.Open(context.Background(), repo)
	require.NoError(t, err)

	cats := svc.Categories()
	require.Len(t, cats, 12)

	var income, expense int

	for _, c := range cats {
		switch c.Type {
		case transaction.TypeIncome:
			income++
		case transaction.TypeExpense:
			expense++
		}

		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Color)
	}

	assert.Equal(t, 4, income)
	assert.Equal(t, 8, expense)
	assert.Empty(t, svc.Transactions())
	assert.Equal(t, currency.Fallback(), svc.Rates())
	assert.Nil(t, svc.LastRateUpdate())
	assert.Equal(t, svc.Snapshot(), saved)
}

func TestOpen_LoadsPersistedState(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)

	persisted := transaction.Snapshot{
		Transactions: []transaction.Transaction{
			{ID: "t1", Amount: 10, Currency: currency.USD, CategoryID: "c1", Type: transaction.TypeExpense},
		},
		Categories:    []transaction.Category{{ID: "c1", Name: "Food", Type: transaction.TypeExpense}},
		ExchangeRates: currency.Rates{currency.USD: 16000},
	}

	repo.EXPECT().Load(gomock.Any()).Return(persisted, nil)

	svc, err := transaction.Open(context.Background(), repo)
	require.NoError(t, err)

	assert.Equal(t, persisted.Transactions, svc.Transactions())
	assert.Equal(t, persisted.Categories, svc.Categories())

	rates := svc.Rates()
	assert.Len(t, rates, 8)
	assert.Equal(t, 16000.0, rates[currency.USD])
	assert.Equal(t, 1.0, rates[currency.IDR])
}

func TestOpen_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(transaction.Snapshot{}, errors.New("corrupted"))

	svc, err := transaction.Open(context.Background(), repo)
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestService_AddTransaction(t *testing.T) {
	svc := openSeeded(t)
	ctx := context.Background()

	first, err := svc.AddTransaction(ctx, transaction.CreateParams{
		Amount:      1000000,
		CategoryID:  "id-1",
		Date:        transaction.NewDate(2026, 3, 1),
		Description: "March salary",
		Type:        transaction.TypeIncome,
	})
	require.NoError(t, err)

	second, err := svc.AddTransaction(ctx, transaction.CreateParams{
		Amount:      50,
		Currency:    currency.USD,
		CategoryID:  "id-7",
		Date:        transaction.NewDate(2026, 3, 2),
		Description: "Groceries",
		Type:        transaction.TypeExpense,
	})
	require.NoError(t, err)

	assert.Equal(t, currency.IDR, first.Currency, "currency defaults to home")
	assert.Equal(t, currency.USD, second.Currency)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []transaction.Transaction{first, second}, svc.Transactions())
}

func TestService_UpdateTransaction(t *testing.T) {
	svc := openSeeded(t)
	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, transaction.CreateParams{
		Amount:      20,
		Currency:    currency.SGD,
		CategoryID:  "id-7",
		Date:        transaction.NewDate(2026, 3, 5),
		Description: "Lunch",
		Type:        transaction.TypeExpense,
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateTransaction(ctx, tx.ID, transaction.Patch{
		Amount:      new(25.5),
		Description: new("Team lunch"),
	}))

	got, ok := svc.Transaction(tx.ID)
	require.True(t, ok)
	assert.Equal(t, 25.5, got.Amount)
	assert.Equal(t, "Team lunch", got.Description)
	assert.Equal(t, currency.SGD, got.Currency, "untouched fields are kept")
	assert.Equal(t, tx.Date, got.Date)
}

func TestService_MissingIDIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(transaction.Snapshot{}, transaction.ErrNoSnapshot)
	// Only the seeding save is expected.
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	svc, err := transaction.Open(context.Background(), repo)
	require.NoError(t, err)

	before := svc.Snapshot()
	ctx := context.Background()

	assert.NoError(t, svc.UpdateTransaction(ctx, "missing", transaction.Patch{Amount: new(1.0)}))
	assert.NoError(t, svc.DeleteTransaction(ctx, "missing"))
	assert.NoError(t, svc.UpdateCategory(ctx, "missing", transaction.CategoryPatch{Name: new("x")}))

	removed, err := svc.DeleteCategory(ctx, "missing")
	assert.NoError(t, err)
	assert.Zero(t, removed)

	assert.Equal(t, before, svc.Snapshot())
}

func TestService_DeleteTransaction(t *testing.T) {
	svc := openSeeded(t)
	ctx := context.Background()

	a, err := svc.AddTransaction(ctx, transaction.CreateParams{Amount: 1, Type: transaction.TypeExpense, Description: "a"})
	require.NoError(t, err)
	b, err := svc.AddTransaction(ctx, transaction.CreateParams{Amount: 2, Type: transaction.TypeExpense, Description: "b"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, a.ID))

	assert.Equal(t, []transaction.Transaction{b}, svc.Transactions())
}

func TestService_Categories(t *testing.T) {
	svc := openSeeded(t)
	ctx := context.Background()

	c, err := svc.AddCategory(ctx, transaction.CategoryParams{Name: "Food", Type: transaction.TypeExpense})
	require.NoError(t, err)
	assert.Len(t, svc.Categories(), 13, "duplicate names are allowed")

	require.NoError(t, svc.UpdateCategory(ctx, c.ID, transaction.CategoryPatch{Color: new("#000000")}))

	got, ok := svc.Category(c.ID)
	require.True(t, ok)
	assert.Equal(t, "Food", got.Name)
	assert.Equal(t, "#000000", got.Color)
}

func TestService_DeleteCategory_Cascades(t *testing.T) {
	svc := openSeeded(t)
	ctx := context.Background()

	food := categoryByName(t, svc, "Food")
	salary := categoryByName(t, svc, "Salary")

	for i := range 3 {
		_, err := svc.AddTransaction(ctx, transaction.CreateParams{
			Amount: float64(i + 1), CategoryID: food.ID, Type: transaction.TypeExpense, Description: "meal",
		})
		require.NoError(t, err)
	}

	kept, err := svc.AddTransaction(ctx, transaction.CreateParams{
		Amount: 100, CategoryID: salary.ID, Type: transaction.TypeIncome, Description: "pay",
	})
	require.NoError(t, err)

	catsBefore := len(svc.Categories())
	txsBefore := len(svc.Transactions())

	removed, err := svc.DeleteCategory(ctx, food.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, removed)
	assert.Equal(t, catsBefore-1, len(svc.Categories()))
	assert.Equal(t, txsBefore-3, len(svc.Transactions()))
	assert.Equal(t, []transaction.Transaction{kept}, svc.Transactions())

	_, ok := svc.Category(food.ID)
	assert.False(t, ok)
}

func TestService_SaveFailureKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(transaction.Snapshot{}, transaction.ErrNoSnapshot)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).AnyTimes()

	svc, err := transaction.Open(context.Background(), repo)
	require.NoError(t, err)

	before := svc.Snapshot()
	ctx := context.Background()

	_, err = svc.AddTransaction(ctx, transaction.CreateParams{Amount: 1, Type: transaction.TypeExpense})
	assert.Error(t, err)

	_, err = svc.DeleteCategory(ctx, before.Categories[0].ID)
	assert.Error(t, err)

	assert.Error(t, svc.UpdateExchangeRates(ctx, currency.Rates{currency.USD: 1}))

	assert.Equal(t, before, svc.Snapshot())
}

func TestService_UpdateExchangeRates(t *testing.T) {
	svc := openSeeded(t)

	err := svc.UpdateExchangeRates(context.Background(), currency.Rates{
		currency.IDR: 5,
		currency.USD: 16250,
	})
	require.NoError(t, err)

	rates := svc.Rates()
	assert.Len(t, rates, 8)
	assert.Equal(t, 1.0, rates[currency.IDR])
	assert.Equal(t, 16250.0, rates[currency.USD])

	require.NotNil(t, svc.LastRateUpdate())
	assert.True(t, fixedNow.Equal(*svc.LastRateUpdate()))
}

func TestService_RefreshRates_AppliesFallback(t *testing.T) {
	svc := openSeeded(t)

	ctrl := gomock.NewController(t)
	fetcher := transaction.NewMockRateFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any()).Return(currency.FetchResult{
		Rates:  currency.Fallback(),
		Source: currency.SourceFallback,
		Err:    errors.New("offline"),
	})

	res, err := svc.RefreshRates(context.Background(), fetcher)
	require.NoError(t, err)

	assert.True(t, res.Fallback())
	assert.Equal(t, currency.Fallback(), svc.Rates())
	assert.NotNil(t, svc.LastRateUpdate())
}

func TestService_ExportImportRoundTrip(t *testing.T) {
	svc := openSeeded(t)
	ctx := context.Background()

	food := categoryByName(t, svc, "Food")

	_, err := svc.AddTransaction(ctx, transaction.CreateParams{
		Amount: 12.5, Currency: currency.EUR, CategoryID: food.ID,
		Date: transaction.NewDate(2026, 2, 28), Description: "Dinner", Type: transaction.TypeExpense,
	})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateExchangeRates(ctx, currency.Rates{currency.EUR: 17000}))

	before := svc.Snapshot()

	data, err := svc.Export()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "exportDate")
	assert.Contains(t, doc, "lastRateUpdate")

	require.NoError(t, svc.Import(ctx, data))

	assert.Equal(t, before, svc.Snapshot())
}

func TestService_Import_RejectsWithoutMutation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "MissingCategories", data: `{"transactions": []}`},
		{name: "MissingTransactions", data: `{"categories": []}`},
		{name: "NullCategories", data: `{"transactions": [], "categories": null}`},
		{name: "Malformed", data: `{"transactions": [`},
		{name: "NotAnObject", data: `[1,2,3]`},
		{name: "DuplicateIDs", data: `{"transactions": [
			{"id":"a","amount":1,"currency":"IDR","categoryId":"c","date":"2026-01-01","description":"x","type":"income"},
			{"id":"a","amount":2,"currency":"IDR","categoryId":"c","date":"2026-01-02","description":"y","type":"income"}
		], "categories": []}`},
		{name: "UnknownCurrency", data: `{"transactions": [
			{"id":"a","amount":1,"currency":"XYZ","categoryId":"c","date":"2026-01-01","description":"x","type":"income"}
		], "categories": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := openSeeded(t)
			_, err := svc.AddTransaction(context.Background(), transaction.CreateParams{Amount: 1, Type: transaction.TypeIncome})
			require.NoError(t, err)

			before := svc.Snapshot()

			err = svc.Import(context.Background(), []byte(tt.data))
			assert.ErrorIs(t, err, transaction.ErrInvalidImport)
			assert.Equal(t, before, svc.Snapshot())
		})
	}
}

func TestService_Import_DefaultsOptionalFields(t *testing.T) {
	svc := openSeeded(t)
	require.NoError(t, svc.UpdateExchangeRates(context.Background(), currency.Rates{currency.USD: 1}))

	data := `{
		"transactions": [{"id":"t1","amount":5,"categoryId":"c1","date":"2026-01-05","description":"Taxi","type":"expense"}],
		"categories": [{"id":"c1","name":"Transportation","type":"expense"}]
	}`

	require.NoError(t, svc.Import(context.Background(), []byte(data)))

	assert.Equal(t, currency.Fallback(), svc.Rates())
	assert.Nil(t, svc.LastRateUpdate())

	got, ok := svc.Transaction("t1")
	require.True(t, ok)
	assert.Equal(t, currency.IDR, got.Currency)
	assert.Equal(t, transaction.NewDate(2026, 1, 5), got.Date)
}

func TestService_AccessorsReturnCopies(t *testing.T) {
	svc := openSeeded(t)

	cats := svc.Categories()
	cats[0].Name = "mutated"

	rates := svc.Rates()
	rates[currency.USD] = 0

	assert.NotEqual(t, "mutated", svc.Categories()[0].Name)
	assert.Equal(t, 15000.0, svc.Rates()[currency.USD])
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "finance-backup-2026-03-14.json", transaction.ExportFilename(fixedNow))
}
