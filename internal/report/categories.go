package report

import (
	"slices"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

// Display fallbacks for transactions whose category no longer exists.
const (
	UnknownCategory = "Unknown"
	UnknownColor    = "#64748b"
)

func findCategory(cats []transaction.Category, id string) (transaction.Category, bool) {
	i := slices.IndexFunc(cats, func(c transaction.Category) bool { return c.ID == id })
	if i < 0 {
		return transaction.Category{}, false
	}

	return cats[i], true
}

// CategoryLabel resolves a category id to its name, or "Unknown" if dangling.
func CategoryLabel(cats []transaction.Category, id string) string {
	c, ok := findCategory(cats, id)
	if !ok || c.Name == "" {
		return UnknownCategory
	}

	return c.Name
}

// CategoryColor resolves a category id to its color, or the neutral fallback.
func CategoryColor(cats []transaction.Category, id string) string {
	c, ok := findCategory(cats, id)
	if !ok || c.Color == "" {
		return UnknownColor
	}

	return c.Color
}

type CategoryStat struct {
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Count      int     `json:"count"`
	Total      float64 `json:"total"`
}

// TopCategories groups txs by category and returns the n groups with the most
// transactions. Groups with equal counts keep the order in which their first
// transaction appears. n <= 0 returns every group.
func TopCategories(txs []transaction.Transaction, cats []transaction.Category, rates currency.Rates, n int) []CategoryStat {
	index := make(map[string]int)
	stats := make([]CategoryStat, 0)

	for _, tx := range txs {
		i, ok := index[tx.CategoryID]
		if !ok {
			i = len(stats)
			index[tx.CategoryID] = i
			stats = append(stats, CategoryStat{
				CategoryID: tx.CategoryID,
				Name:       CategoryLabel(cats, tx.CategoryID),
				Color:      CategoryColor(cats, tx.CategoryID),
			})
		}

		stats[i].Count++
		stats[i].Total += tx.HomeAmount(rates)
	}

	slices.SortStableFunc(stats, func(a, b CategoryStat) int { return b.Count - a.Count })

	if n > 0 && len(stats) > n {
		stats = stats[:n]
	}

	return stats
}
