package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

const storeTimeout = 5 * time.Second

// timeNow is swapped in tests.
var timeNow = time.Now

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// Ledger is the transaction store a screen edits. Both the persisted ledger
// and a simulation satisfy it.
type Ledger interface {
	Transactions() []transaction.Transaction
	Categories() []transaction.Category
	Transaction(id string) (transaction.Transaction, bool)
	AddTransaction(ctx context.Context, p transaction.CreateParams) (transaction.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, patch transaction.Patch) error
	DeleteTransaction(ctx context.Context, id string) error
}

type RateSource interface {
	Rates() currency.Rates
}

// storeCtx returns a context with a standard timeout for store operations.
func storeCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

var (
	faintStyle = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	boxStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
