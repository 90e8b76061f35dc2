package report

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

type SortKey string

const (
	SortDateDesc     SortKey = "date-desc"
	SortDateAsc      SortKey = "date-asc"
	SortAmountDesc   SortKey = "amount-desc"
	SortAmountAsc    SortKey = "amount-asc"
	SortCategory     SortKey = "category"
	SortAlphabetical SortKey = "alphabetical"
)

// SortKeys lists every key in display order.
var SortKeys = []SortKey{SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc, SortCategory, SortAlphabetical}

// ParseSortKey maps a query value to a key; empty selects date-desc.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortDateDesc, nil
	}

	k := SortKey(s)
	if !slices.Contains(SortKeys, k) {
		return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
	}

	return k, nil
}

// Next returns the key after k, wrapping around.
func (k SortKey) Next() SortKey {
	i := slices.Index(SortKeys, k)

	return SortKeys[(i+1)%len(SortKeys)]
}

// Sort returns a sorted copy of txs. The sort is stable, so equal elements
// keep their input order. Amounts compare in the home currency; names and
// descriptions compare with English collation.
func Sort(txs []transaction.Transaction, cats []transaction.Category, rates currency.Rates, key SortKey) []transaction.Transaction {
	out := slices.Clone(txs)

	var compare func(a, b transaction.Transaction) int

	switch key {
	case SortDateAsc:
		compare = func(a, b transaction.Transaction) int { return a.Date.Compare(b.Date) }
	case SortAmountDesc:
		compare = func(a, b transaction.Transaction) int {
			return cmp.Compare(b.HomeAmount(rates), a.HomeAmount(rates))
		}
	case SortAmountAsc:
		compare = func(a, b transaction.Transaction) int {
			return cmp.Compare(a.HomeAmount(rates), b.HomeAmount(rates))
		}
	case SortCategory:
		col := collate.New(language.English)
		names := make(map[string]string, len(cats))

		for _, c := range cats {
			if _, seen := names[c.ID]; !seen {
				names[c.ID] = c.Name
			}
		}

		compare = func(a, b transaction.Transaction) int {
			return col.CompareString(names[a.CategoryID], names[b.CategoryID])
		}
	case SortAlphabetical:
		col := collate.New(language.English)
		compare = func(a, b transaction.Transaction) int {
			return col.CompareString(a.Description, b.Description)
		}
	default:
		compare = func(a, b transaction.Transaction) int { return b.Date.Compare(a.Date) }
	}

	slices.SortStableFunc(out, compare)

	return out
}

// Latest returns up to n transactions, most recent date first.
func Latest(txs []transaction.Transaction, n int) []transaction.Transaction {
	out := Sort(txs, nil, nil, SortDateDesc)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}

	return out
}
