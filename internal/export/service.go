package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/report"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

// Ledger is the read side of the main store that exports need.
type Ledger interface {
	Transactions() []transaction.Transaction
	Categories() []transaction.Category
	Rates() currency.Rates
	Export() ([]byte, error)
}

// Row is one line of the CSV listing.
type Row struct {
	Date        string  `csv:"date"`
	Type        string  `csv:"type"`
	Category    string  `csv:"category"`
	Description string  `csv:"description"`
	Currency    string  `csv:"currency"`
	Amount      float64 `csv:"amount"`
	HomeAmount  float64 `csv:"amount_idr"`
}

// Service writes backups and listings of the main ledger.
type Service struct {
	ledger Ledger
	now    func() time.Time
}

func NewService(ledger Ledger) *Service {
	return &Service{ledger: ledger, now: time.Now}
}

// Backup writes the full JSON export into dir and returns the file path.
func (s *Service) Backup(dir string) (string, error) {
	data, err := s.ledger.Export()
	if err != nil {
		return "", fmt.Errorf("exporting data: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, transaction.ExportFilename(s.now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}

	return path, nil
}

// Restore reads a backup file written by Backup.
func Restore(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}

	return data, nil
}

// CSV writes every transaction of the ledger, newest first.
func (s *Service) CSV(w io.Writer) error {
	cats := s.ledger.Categories()
	rates := s.ledger.Rates()
	txs := report.Sort(s.ledger.Transactions(), cats, rates, report.SortDateDesc)

	return WriteCSV(w, txs, cats, rates)
}

// Rows maps transactions to CSV rows, resolving category names.
func Rows(txs []transaction.Transaction, cats []transaction.Category, rates currency.Rates) []Row {
	rows := make([]Row, 0, len(txs))

	for _, tx := range txs {
		rows = append(rows, Row{
			Date:        tx.Date.String(),
			Type:        string(tx.Type),
			Category:    report.CategoryLabel(cats, tx.CategoryID),
			Description: tx.Description,
			Currency:    string(tx.Currency),
			Amount:      tx.Amount,
			HomeAmount:  tx.HomeAmount(rates),
		})
	}

	return rows
}

// WriteCSV writes txs in the given order with a header line.
func WriteCSV(w io.Writer, txs []transaction.Transaction, cats []transaction.Category, rates currency.Rates) error {
	rows := Rows(txs, cats, rates)

	if len(rows) == 0 {
		// gocsv cannot derive a header from an empty slice.
		header, err := gocsv.MarshalString([]Row{{}})
		if err != nil {
			return fmt.Errorf("writing csv header: %w", err)
		}

		first, _, _ := strings.Cut(header, "\n")
		_, err = io.WriteString(w, first+"\n")

		return err
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}

	return nil
}

// Summary renders one line per transaction, suitable for pasting into a
// message or note.
func Summary(txs []transaction.Transaction, cats []transaction.Category, rates currency.Rates) string {
	var sb strings.Builder

	for _, tx := range txs {
		sign := "-"
		if tx.Type == transaction.TypeIncome {
			sign = "+"
		}

		amount := currency.FormatAmount(tx.Amount, tx.Currency, true, rates)

		fmt.Fprintf(&sb, "* %s | %s | %s%s | %s\n",
			tx.Date, tx.Description, sign, amount, report.CategoryLabel(cats, tx.CategoryID))
	}

	return sb.String()
}
