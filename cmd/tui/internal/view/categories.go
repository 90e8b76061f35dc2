package view

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Foster13/money-month-tracker/internal/transaction"
)

type CategoryStore interface {
	Categories() []transaction.Category
	Transactions() []transaction.Transaction
	AddCategory(ctx context.Context, p transaction.CategoryParams) (transaction.Category, error)
	UpdateCategory(ctx context.Context, id string, patch transaction.CategoryPatch) error
	DeleteCategory(ctx context.Context, id string) (int, error)
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)

type catState int

const (
	catStateBrowse catState = iota
	catStateForm
	catStateConfirmDelete
)

type catDraft struct {
	Name    string
	Type    string
	Color   string
	Confirm bool
}

type CategoriesModel struct {
	CommonModel
	store CategoryStore

	state  catState
	table  table.Model
	cats   []transaction.Category
	form   *huh.Form
	draft  *catDraft
	editID string
	status string
}

func NewCategoriesModel(store CategoryStore) CategoriesModel {
	m := CategoriesModel{
		store: store,
		table: newTable([]table.Column{
			{Title: "Name", Width: 20},
			{Title: "Type", Width: 9},
			{Title: "Color", Width: 9},
			{Title: "Transactions", Width: 12},
		}, 14),
	}

	m.reload()

	return m
}

func (m CategoriesModel) Title() string { return "Categories" }

func (m CategoriesModel) ShortHelp() string {
	if m.state != catStateBrowse {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | a: add | e: edit | d: delete"
}

func (m CategoriesModel) Init() tea.Cmd {
	return nil
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.closeForm()
		m.reload()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	if m.state != catStateBrowse {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.openForm(nil)
		case "e", "enter":
			if c, ok := m.selected(); ok {
				return m.openForm(&c)
			}

			return m, nil
		case "d":
			return m.confirmDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CategoriesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	if m.state == catStateConfirmDelete {
		if !m.draft.Confirm {
			m.closeForm()
			return m, nil
		}

		return m, m.deleteCmd(m.editID)
	}

	return m, m.saveCmd()
}

// usage counts transactions per category id.
func usage(txs []transaction.Transaction) map[string]int {
	n := make(map[string]int)
	for _, tx := range txs {
		n[tx.CategoryID]++
	}

	return n
}

func (m *CategoriesModel) reload() {
	m.cats = m.store.Categories()
	counts := usage(m.store.Transactions())

	rows := make([]table.Row, 0, len(m.cats))
	for _, c := range m.cats {
		rows = append(rows, table.Row{c.Name, typeLabel(c.Type), c.Color, strconv.Itoa(counts[c.ID])})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m CategoriesModel) selected() (transaction.Category, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.cats) {
		return transaction.Category{}, false
	}

	return m.cats[idx], true
}

func (m *CategoriesModel) closeForm() {
	m.state = catStateBrowse
	m.form = nil
	m.draft = nil
	m.editID = ""
	m.table.Focus()
}

func (m CategoriesModel) openForm(c *transaction.Category) (tea.Model, tea.Cmd) {
	d := &catDraft{Type: string(transaction.TypeExpense), Color: "#64748b"}

	m.editID = ""

	if c != nil {
		m.editID = c.ID
		d.Name, d.Type, d.Color = c.Name, string(c.Type), c.Color
	}

	m.draft = d
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&d.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(transaction.TypeExpense)),
					huh.NewOption("Income", string(transaction.TypeIncome)),
				).
				Value(&d.Type),

			huh.NewInput().
				Key("color").
				Title("Color").
				Placeholder("#64748b").
				Value(&d.Color).
				Validate(func(s string) error {
					if s != "" && !hexColor.MatchString(s) {
						return errors.New("color must be a hex value like #64748b")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
	m.state = catStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m CategoriesModel) confirmDelete() (tea.Model, tea.Cmd) {
	c, ok := m.selected()
	if !ok {
		return m, nil
	}

	title := fmt.Sprintf("Delete %q?", c.Name)
	if n := usage(m.store.Transactions())[c.ID]; n > 0 {
		title = fmt.Sprintf("Delete %q and its %d transaction(s)?", c.Name, n)
	}

	d := &catDraft{}

	m.draft = d
	m.editID = c.ID
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description("Transactions in this category are deleted with it.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&d.Confirm),
		),
	).WithWidth(45).WithShowHelp(false)
	m.state = catStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m CategoriesModel) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(titleStyle.Render("Categories")),
		boxStyle.Render(m.table.View()),
	)

	if m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type catSavedMsg struct {
	status string
	err    error
}

func (m CategoriesModel) saveCmd() tea.Cmd {
	d := *m.draft
	id := m.editID

	return func() tea.Msg {
		ctx, cancel := storeCtx()
		defer cancel()

		var (
			name = strings.TrimSpace(d.Name)
			typ  = transaction.Type(d.Type)
		)

		if id == "" {
			if _, err := m.store.AddCategory(ctx, transaction.CategoryParams{Name: name, Type: typ, Color: d.Color}); err != nil {
				return catSavedMsg{err: err}
			}

			return catSavedMsg{status: fmt.Sprintf("Category %q added.", name)}
		}

		if err := m.store.UpdateCategory(ctx, id, transaction.CategoryPatch{Name: &name, Type: &typ, Color: &d.Color}); err != nil {
			return catSavedMsg{err: err}
		}

		return catSavedMsg{status: fmt.Sprintf("Category %q updated.", name)}
	}
}

func (m CategoriesModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := storeCtx()
		defer cancel()

		removed, err := m.store.DeleteCategory(ctx, id)
		if err != nil {
			return catSavedMsg{err: err}
		}

		return catSavedMsg{status: fmt.Sprintf("Category deleted with %d transaction(s).", removed)}
	}
}
