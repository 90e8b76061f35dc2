package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Foster13/money-month-tracker/internal/currency"
)

var ErrInvalidImport = errors.New("invalid import data")

// Snapshot is the full persisted state of the main store.
type Snapshot struct {
	Transactions   []Transaction  `json:"transactions"`
	Categories     []Category     `json:"categories"`
	ExchangeRates  currency.Rates `json:"exchangeRates"`
	LastRateUpdate *time.Time     `json:"lastRateUpdate"`
}

// Clone returns a deep copy so callers never alias store state.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Transactions:  append([]Transaction{}, s.Transactions...),
		Categories:    append([]Category{}, s.Categories...),
		ExchangeRates: s.ExchangeRates.Clone(),
	}

	if s.LastRateUpdate != nil {
		out.LastRateUpdate = new(*s.LastRateUpdate)
	}

	return out
}

type exportDocument struct {
	Snapshot
	ExportDate time.Time `json:"exportDate"`
}

// EncodeSnapshot serializes s; a non-zero exportDate is stamped into the document.
func EncodeSnapshot(s Snapshot, exportDate time.Time) ([]byte, error) {
	s = s.Clone()

	var v any = s
	if !exportDate.IsZero() {
		v = exportDocument{Snapshot: s, ExportDate: exportDate.UTC()}
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	return b, nil
}

type importDocument struct {
	Transactions   *[]Transaction `json:"transactions"`
	Categories     *[]Category    `json:"categories"`
	ExchangeRates  currency.Rates `json:"exchangeRates"`
	LastRateUpdate *time.Time     `json:"lastRateUpdate"`
}

// DecodeSnapshot parses the interchange format. Both transactions and
// categories must be present; exchange rates default to the fallback table
// and are normalized. Any failure wraps ErrInvalidImport.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	if doc.Transactions == nil {
		return Snapshot{}, fmt.Errorf("%w: missing transactions", ErrInvalidImport)
	}

	if doc.Categories == nil {
		return Snapshot{}, fmt.Errorf("%w: missing categories", ErrInvalidImport)
	}

	s := Snapshot{
		Transactions:   *doc.Transactions,
		Categories:     *doc.Categories,
		ExchangeRates:  currency.Fallback(),
		LastRateUpdate: doc.LastRateUpdate,
	}

	if doc.ExchangeRates != nil {
		s.ExchangeRates = doc.ExchangeRates.Normalize()
	}

	if err := s.check(); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	return s, nil
}

// check enforces id uniqueness and known enum values, defaulting an empty
// transaction currency to the home currency.
func (s *Snapshot) check() error {
	txIDs := make(map[string]struct{}, len(s.Transactions))

	for i := range s.Transactions {
		tx := &s.Transactions[i]

		if _, dup := txIDs[tx.ID]; dup {
			return fmt.Errorf("duplicate transaction id %q", tx.ID)
		}

		txIDs[tx.ID] = struct{}{}

		if tx.Currency == "" {
			tx.Currency = currency.Home
		}

		if !tx.Currency.Valid() {
			return fmt.Errorf("transaction %q: %w %q", tx.ID, currency.ErrUnknownCurrency, tx.Currency)
		}

		if !tx.Type.Valid() {
			return fmt.Errorf("transaction %q: unknown type %q", tx.ID, tx.Type)
		}
	}

	catIDs := make(map[string]struct{}, len(s.Categories))

	for _, c := range s.Categories {
		if _, dup := catIDs[c.ID]; dup {
			return fmt.Errorf("duplicate category id %q", c.ID)
		}

		catIDs[c.ID] = struct{}{}

		if !c.Type.Valid() {
			return fmt.Errorf("category %q: unknown type %q", c.ID, c.Type)
		}
	}

	return nil
}
