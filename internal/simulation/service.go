// Package simulation holds a throwaway fork of the main ledger for what-if
// projections. Nothing in it is ever persisted.
package simulation

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/Foster13/money-month-tracker/internal/transaction"
)

// IDPrefix marks ids minted by the simulation so they can never be mistaken
// for main-store ids.
const IDPrefix = "sim-"

// Service is an in-memory transaction/category store. It has no rate table;
// callers pass the main store's rates into derived views.
type Service struct {
	mu           sync.RWMutex
	newID        func() string
	active       bool
	transactions []transaction.Transaction
	categories   []transaction.Category
}

type Option func(*Service)

// WithIDGenerator overrides the id source. The prefix is added regardless.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func New(opts ...Option) *Service {
	s := &Service{
		newID:        uuid.NewString,
		transactions: []transaction.Transaction{},
		categories:   []transaction.Category{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) id() string {
	return IDPrefix + s.newID()
}

// LoadFromMain replaces the simulation state with a copy of the given
// ledger. Transactions get fresh ids; categories are copied verbatim so
// their references keep resolving.
func (s *Service) LoadFromMain(txs []transaction.Transaction, cats []transaction.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	forked := make([]transaction.Transaction, len(txs))
	for i, tx := range txs {
		tx.ID = s.id()
		forked[i] = tx
	}

	s.transactions = forked
	s.categories = append([]transaction.Category{}, cats...)
	s.active = true
}

// Clear empties the simulation and switches it off.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = []transaction.Transaction{}
	s.categories = []transaction.Category{}
	s.active = false
}

// Active reports whether a fork is loaded.
func (s *Service) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.active
}

func (s *Service) Transactions() []transaction.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.transactions)
}

func (s *Service) Categories() []transaction.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.categories)
}

func (s *Service) Transaction(id string) (transaction.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.transactions, func(t transaction.Transaction) bool { return t.ID == id })
	if i < 0 {
		return transaction.Transaction{}, false
	}

	return s.transactions[i], true
}

func (s *Service) AddTransaction(p transaction.CreateParams) transaction.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := transaction.New(s.id(), p)
	s.transactions = append(s.transactions, tx)

	return tx
}

// UpdateTransaction merges patch into the transaction with id. An unknown id is a no-op.
func (s *Service) UpdateTransaction(id string, patch transaction.Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.transactions, func(t transaction.Transaction) bool { return t.ID == id })
	if i < 0 {
		return
	}

	s.transactions[i] = patch.Apply(s.transactions[i])
}

func (s *Service) DeleteTransaction(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = slices.DeleteFunc(s.transactions, func(t transaction.Transaction) bool { return t.ID == id })
}
