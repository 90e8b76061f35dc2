package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/report"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateTimeframe
	txStateForm
	txStateConfirmDelete
)

// txDraft holds the form bindings. It lives behind a pointer so huh writes
// land in the model that survives the value-receiver Update calls.
type txDraft struct {
	Type        string
	CategoryID  string
	Amount      string
	Currency    string
	Date        string
	Description string
	Confirm     bool
}

type TransactionsModel struct {
	CommonModel
	ledger   Ledger
	rates    RateSource
	title    string
	pageSize int

	state  txState
	table  table.Model
	picker TimeframePicker
	form   *huh.Form
	draft  *txDraft
	editID string

	sortKey    report.SortKey
	typeFilter transaction.Type
	timeframe  Timeframe
	period     report.Period
	page       int

	current report.Page[transaction.Transaction]
	totals  report.Totals
	status  string
}

func NewTransactionsModel(ledger Ledger, rates RateSource, title string, pageSize int) TransactionsModel {
	m := TransactionsModel{
		ledger:   ledger,
		rates:    rates,
		title:    title,
		pageSize: pageSize,
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Type", Width: 8},
			{Title: "Category", Width: 16},
			{Title: "Description", Width: 28},
			{Title: "Amount", Width: 30},
		}, 12),
		picker:    NewTimeframePicker(TimeframeThisWeek),
		sortKey:   report.SortDateDesc,
		timeframe: TimeframeAll,
		page:      1,
	}

	m.reload()

	return m
}

func (m TransactionsModel) Title() string { return m.title }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateTimeframe:
		return "Esc: back | Enter: select"
	case txStateForm, txStateConfirmDelete:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | a: add | e: edit | d: delete | s: sort | f: type | t: timeframe | ←/→: page"
}

func (m TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.timeframe = msg.Timeframe
		m.period = msg.Period
		m.page = 1
		m.state = txStateBrowse
		m.table.Focus()
		m.reload()

		return m, nil

	case txSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.closeForm()
		m.reload()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	switch m.state {
	case txStateTimeframe:
		return m.updateTimeframe(msg)
	case txStateForm, txStateConfirmDelete:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.openForm(nil)
		case "e", "enter":
			if tx, ok := m.selected(); ok {
				return m.openForm(&tx)
			}

			return m, nil
		case "d":
			return m.confirmDelete()
		case "s":
			m.sortKey = m.sortKey.Next()
			m.reload()

			return m, nil
		case "f":
			m.typeFilter = nextTypeFilter(m.typeFilter)
			m.page = 1
			m.reload()

			return m, nil
		case "t":
			m.state = txStateTimeframe
			m.picker.Reset()
			m.table.Blur()

			return m, nil
		case "left", "h":
			if m.page > 1 {
				m.page--
				m.reload()
			}

			return m, nil
		case "right", "l":
			if m.page < m.current.TotalPages {
				m.page++
				m.reload()
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
			m.state = txStateBrowse
			m.table.Focus()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.closeForm()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == txStateConfirmDelete {
		if !m.draft.Confirm {
			m.closeForm()
			return m, nil
		}

		return m, m.deleteCmd(m.editID)
	}

	return m, m.saveCmd()
}

func nextTypeFilter(t transaction.Type) transaction.Type {
	switch t {
	case "":
		return transaction.TypeIncome
	case transaction.TypeIncome:
		return transaction.TypeExpense
	}

	return ""
}

// reload recomputes the visible page from the ledger.
func (m *TransactionsModel) reload() {
	rates := m.rates.Rates()
	cats := m.ledger.Categories()

	txs := report.FilterPeriod(m.ledger.Transactions(), m.period)
	if m.typeFilter != "" {
		txs = report.FilterType(txs, m.typeFilter)
	}

	m.totals = report.ComputeTotals(txs, rates)
	m.current = report.Paginate(report.Sort(txs, cats, rates, m.sortKey), m.page, m.pageSize)

	if m.current.TotalPages > 0 && m.page > m.current.TotalPages {
		m.page = m.current.TotalPages
		m.current = report.Paginate(report.Sort(txs, cats, rates, m.sortKey), m.page, m.pageSize)
	}

	rows := make([]table.Row, 0, len(m.current.Items))
	for _, tx := range m.current.Items {
		rows = append(rows, table.Row{
			tx.Date.String(),
			typeLabel(tx.Type),
			report.CategoryLabel(cats, tx.CategoryID),
			tx.Description,
			signedAmount(tx, rates),
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m TransactionsModel) selected() (transaction.Transaction, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.current.Items) {
		return transaction.Transaction{}, false
	}

	return m.current.Items[idx], true
}

func (m *TransactionsModel) closeForm() {
	m.state = txStateBrowse
	m.form = nil
	m.draft = nil
	m.editID = ""
	m.table.Focus()
}

// openForm starts the add form, or the edit form when tx is set.
func (m TransactionsModel) openForm(tx *transaction.Transaction) (tea.Model, tea.Cmd) {
	d := &txDraft{
		Type:     string(transaction.TypeExpense),
		Currency: string(currency.Home),
		Date:     transaction.DateOf(timeNow()).String(),
	}

	m.editID = ""

	if tx != nil {
		m.editID = tx.ID
		d.Type = string(tx.Type)
		d.CategoryID = tx.CategoryID
		d.Amount = strconv.FormatFloat(tx.Amount, 'f', -1, 64)
		d.Currency = string(tx.Currency)
		d.Date = tx.Date.String()
		d.Description = tx.Description
	}

	m.draft = d
	m.form = transactionForm(d, m.ledger.Categories())
	m.state = txStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func transactionForm(d *txDraft, cats []transaction.Category) *huh.Form {
	currencies := make([]huh.Option[string], 0, len(currency.All()))
	for _, c := range currency.All() {
		currencies = append(currencies, huh.NewOption(fmt.Sprintf("%s (%s)", c, c.Name()), string(c)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(transaction.TypeExpense)),
					huh.NewOption("Income", string(transaction.TypeIncome)),
				).
				Value(&d.Type),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				OptionsFunc(func() []huh.Option[string] {
					return categoryOptions(cats, transaction.Type(d.Type))
				}, &d.Type).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("category is required")
					}
					return nil
				}).
				Value(&d.CategoryID),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("50000 or 12.50").
				Value(&d.Amount).
				Validate(func(s string) error {
					v, err := currency.ParseAmount(s)
					if err != nil {
						return err
					}
					if v <= 0 {
						return errors.New("amount must be positive")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("currency").
				Title("Currency").
				Options(currencies...).
				Value(&d.Currency),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&d.Date).
				Validate(func(s string) error {
					_, err := transaction.ParseDate(s)
					return err
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&d.Description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("description cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

// categoryOptions lists the categories of type t, or every category when none match.
func categoryOptions(cats []transaction.Category, t transaction.Type) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(cats))

	for _, c := range cats {
		if c.Type == t {
			opts = append(opts, huh.NewOption(c.Name, c.ID))
		}
	}

	if len(opts) == 0 {
		for _, c := range cats {
			opts = append(opts, huh.NewOption(c.Name, c.ID))
		}
	}

	return opts
}

func (m TransactionsModel) confirmDelete() (tea.Model, tea.Cmd) {
	tx, ok := m.selected()
	if !ok {
		return m, nil
	}

	d := &txDraft{}

	m.draft = d
	m.editID = tx.ID
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", tx.Description)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&d.Confirm),
		),
	).WithWidth(45).WithShowHelp(false)
	m.state = txStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) View() string {
	sortLabel := strings.ReplaceAll(string(m.sortKey), "-", " ")
	filterLabel := "All"
	if m.typeFilter != "" {
		filterLabel = typeLabel(m.typeFilter)
	}

	header := fmt.Sprintf(
		"%s\n\n[s] Sort: %s | [f] Type: %s | [t] Period: %s",
		titleStyle.Render(m.title),
		activeStyle(sortLabel),
		activeStyle(filterLabel),
		activeStyle(m.timeframe.String()),
	)

	if m.state == txStateTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(header + "\n\n" + m.picker.View())
	}

	footer := fmt.Sprintf(
		"Page %d/%d · %d transactions · Income %s · Expenses %s · Balance %s",
		m.current.Page, max(m.current.TotalPages, 1), m.current.TotalItems,
		currency.FormatHome(m.totals.Income),
		currency.FormatHome(m.totals.Expenses),
		currency.FormatHome(m.totals.Balance),
	)

	body := m.table.View()
	if m.current.TotalItems == 0 {
		body = faintStyle.Render("No transactions found. Press a to add one.")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxStyle.Render(body),
		faintStyle.Render(footer),
	)

	if m.form != nil {
		heading := "Add Transaction"
		switch {
		case m.state == txStateConfirmDelete:
			heading = "Delete Transaction"
		case m.editID != "":
			heading = "Edit Transaction"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(heading + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type txSavedMsg struct {
	status string
	err    error
}

func (m TransactionsModel) saveCmd() tea.Cmd {
	d := *m.draft
	id := m.editID

	return func() tea.Msg {
		amount, err := currency.ParseAmount(d.Amount)
		if err != nil {
			return txSavedMsg{err: err}
		}

		date, err := transaction.ParseDate(d.Date)
		if err != nil {
			return txSavedMsg{err: err}
		}

		var (
			typ  = transaction.Type(d.Type)
			code = currency.Code(d.Currency)
			desc = strings.TrimSpace(d.Description)
		)

		ctx, cancel := storeCtx()
		defer cancel()

		if id == "" {
			_, err := m.ledger.AddTransaction(ctx, transaction.CreateParams{
				Amount:      amount,
				Currency:    code,
				CategoryID:  d.CategoryID,
				Date:        date,
				Description: desc,
				Type:        typ,
			})
			if err != nil {
				return txSavedMsg{err: err}
			}

			return txSavedMsg{status: "Transaction added."}
		}

		err = m.ledger.UpdateTransaction(ctx, id, transaction.Patch{
			Amount:      &amount,
			Currency:    &code,
			CategoryID:  &d.CategoryID,
			Date:        &date,
			Description: &desc,
			Type:        &typ,
		})
		if err != nil {
			return txSavedMsg{err: err}
		}

		return txSavedMsg{status: "Transaction updated."}
	}
}

func (m TransactionsModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := storeCtx()
		defer cancel()

		if err := m.ledger.DeleteTransaction(ctx, id); err != nil {
			return txSavedMsg{err: err}
		}

		return txSavedMsg{status: "Transaction deleted."}
	}
}
