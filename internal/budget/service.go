// Package budget stores the single monthly spending limit.
package budget

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Foster13/money-month-tracker/internal/kv"
)

// DefaultKey is the cell the budget is persisted under.
const DefaultKey = "monthlyBudget"

var ErrInvalidBudget = errors.New("budget must be a non-negative number")

// Service reads and writes the budget as a plain decimal string in a kv cell.
type Service struct {
	cells kv.Store
	key   string
}

func NewService(cells kv.Store, key string) *Service {
	if key == "" {
		key = DefaultKey
	}

	return &Service{cells: cells, key: key}
}

// Get returns the stored budget, or 0 when none was ever set. An unparsable
// cell also reads as 0.
func (s *Service) Get(ctx context.Context) (float64, error) {
	raw, err := s.cells.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("reading budget: %w", err)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil || !valid(v) {
		return 0, nil
	}

	return v, nil
}

func (s *Service) Set(ctx context.Context, amount float64) error {
	if !valid(amount) {
		return fmt.Errorf("%w: %v", ErrInvalidBudget, amount)
	}

	raw := strconv.FormatFloat(amount, 'f', -1, 64)
	if err := s.cells.Put(ctx, s.key, []byte(raw)); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}

	return nil
}

func valid(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
