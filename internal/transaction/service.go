package transaction

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Foster13/money-month-tracker/internal/currency"
)

// ErrNoSnapshot is returned by a Repository that has never been saved to.
var ErrNoSnapshot = errors.New("no persisted snapshot")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// RateFetcher resolves a complete rate table, falling back when the provider fails.
type RateFetcher interface {
	Fetch(ctx context.Context) currency.FetchResult
}

// Service is the authoritative, persisted store of transactions, categories
// and the exchange-rate cache. Every mutation persists the full snapshot
// before it becomes visible; a failed save leaves the previous state in place.
type Service struct {
	mu    sync.RWMutex
	repo  Repository
	now   func() time.Time
	newID func() string
	state Snapshot
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// Open loads the persisted snapshot. On first run it seeds the default
// categories and the fallback rate table and persists them.
func Open(ctx context.Context, repo Repository, opts ...Option) (*Service, error) {
	s := &Service{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	snap, err := repo.Load(ctx)

	switch {
	case errors.Is(err, ErrNoSnapshot):
		if err := s.commit(ctx, s.initialState()); err != nil {
			return nil, fmt.Errorf("seeding initial state: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("loading snapshot: %w", err)
	default:
		snap = snap.Clone()
		snap.ExchangeRates = snap.ExchangeRates.Normalize()
		s.state = snap
	}

	return s, nil
}

func (s *Service) initialState() Snapshot {
	return Snapshot{
		Transactions:  []Transaction{},
		Categories:    DefaultCategories(s.newID),
		ExchangeRates: currency.Fallback(),
	}
}

// commit persists next and only then makes it the current state.
// Callers must hold the write lock.
func (s *Service) commit(ctx context.Context, next Snapshot) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	s.state = next

	return nil
}

func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}

func (s *Service) Transactions() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.state.Transactions)
}

func (s *Service) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.state.Categories)
}

func (s *Service) Rates() currency.Rates {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.ExchangeRates.Clone()
}

func (s *Service) LastRateUpdate() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.LastRateUpdate == nil {
		return nil
	}

	return new(*s.state.LastRateUpdate)
}

func (s *Service) Transaction(id string) (Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.state.Transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return Transaction{}, false
	}

	return s.state.Transactions[i], true
}

func (s *Service) Category(id string) (Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.state.Categories, func(c Category) bool { return c.ID == id })
	if i < 0 {
		return Category{}, false
	}

	return s.state.Categories[i], true
}

// AddTransaction appends a transaction under a fresh id. Params are trusted;
// validation happens before this call.
func (s *Service) AddTransaction(ctx context.Context, p CreateParams) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := New(s.newID(), p)

	next := s.state.Clone()
	next.Transactions = append(next.Transactions, tx)

	if err := s.commit(ctx, next); err != nil {
		return Transaction{}, err
	}

	return tx, nil
}

// UpdateTransaction merges patch into the transaction with id. An unknown id is a no-op.
func (s *Service) UpdateTransaction(ctx context.Context, id string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.state.Transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return nil
	}

	next := s.state.Clone()
	next.Transactions[i] = patch.Apply(next.Transactions[i])

	return s.commit(ctx, next)
}

// DeleteTransaction removes the transaction with id. An unknown id is a no-op.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.ContainsFunc(s.state.Transactions, func(t Transaction) bool { return t.ID == id }) {
		return nil
	}

	next := s.state.Clone()
	next.Transactions = slices.DeleteFunc(next.Transactions, func(t Transaction) bool { return t.ID == id })

	return s.commit(ctx, next)
}

func (s *Service) AddCategory(ctx context.Context, p CategoryParams) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Category{ID: s.newID(), Name: p.Name, Type: p.Type, Color: p.Color}

	next := s.state.Clone()
	next.Categories = append(next.Categories, c)

	if err := s.commit(ctx, next); err != nil {
		return Category{}, err
	}

	return c, nil
}

// UpdateCategory merges patch into the category with id. An unknown id is a no-op.
func (s *Service) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.state.Categories, func(c Category) bool { return c.ID == id })
	if i < 0 {
		return nil
	}

	next := s.state.Clone()
	next.Categories[i] = patch.Apply(next.Categories[i])

	return s.commit(ctx, next)
}

// DeleteCategory removes the category and every transaction referencing it in
// a single commit. It returns how many transactions were removed.
func (s *Service) DeleteCategory(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.ContainsFunc(s.state.Categories, func(c Category) bool { return c.ID == id }) {
		return 0, nil
	}

	next := s.state.Clone()
	next.Categories = slices.DeleteFunc(next.Categories, func(c Category) bool { return c.ID == id })

	before := len(next.Transactions)
	next.Transactions = slices.DeleteFunc(next.Transactions, func(t Transaction) bool { return t.CategoryID == id })
	removed := before - len(next.Transactions)

	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}

	return removed, nil
}

// UpdateExchangeRates replaces the rate table wholesale and stamps the update time.
func (s *Service) UpdateExchangeRates(ctx context.Context, rates currency.Rates) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	next.ExchangeRates = rates.Normalize()
	next.LastRateUpdate = new(s.now().UTC())

	return s.commit(ctx, next)
}

// RefreshRates fetches rates and applies them, fallback tables included.
func (s *Service) RefreshRates(ctx context.Context, f RateFetcher) (currency.FetchResult, error) {
	res := f.Fetch(ctx)

	if err := s.UpdateExchangeRates(ctx, res.Rates); err != nil {
		return res, err
	}

	return res, nil
}

// Export serializes the full state stamped with the current time.
func (s *Service) Export() ([]byte, error) {
	s.mu.RLock()
	snap := s.state.Clone()
	s.mu.RUnlock()

	return EncodeSnapshot(snap, s.now())
}

// ExportFilename is the suggested name of an export taken at now.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("finance-backup-%s.json", now.UTC().Format(time.DateOnly))
}

// Import replaces the whole state with the decoded document. On any decode
// failure the current state is untouched and the error wraps ErrInvalidImport.
func (s *Service) Import(ctx context.Context, data []byte) error {
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, snap)
}
