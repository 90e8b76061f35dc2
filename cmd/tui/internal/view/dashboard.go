package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/report"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

type DashboardSource interface {
	Transactions() []transaction.Transaction
	Categories() []transaction.Category
}

type BudgetStore interface {
	Get(ctx context.Context) (float64, error)
	Set(ctx context.Context, amount float64) error
}

const barWidth = 24

type DashboardModel struct {
	CommonModel
	source DashboardSource
	rates  RateSource
	budget BudgetStore
	series report.SeriesOptions
	title  string

	dash   report.Dashboard
	form   *huh.Form
	value  *string
	status string
}

// NewDashboardModel builds the monthly overview. budget may be nil, in which
// case no budget is shown or editable.
func NewDashboardModel(source DashboardSource, rates RateSource, budget BudgetStore, series report.SeriesOptions, title string) DashboardModel {
	m := DashboardModel{source: source, rates: rates, budget: budget, series: series, title: title}
	m.reload()

	return m
}

func (m DashboardModel) Title() string { return m.title }

func (m DashboardModel) ShortHelp() string {
	if m.form != nil {
		return "Esc: cancel | Enter: save"
	}

	if m.budget == nil {
		return "Esc: back | r: refresh"
	}

	return "Esc: back | r: refresh | b: set budget"
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if saved, ok := msg.(budgetSavedMsg); ok {
		m.status = "Budget saved."
		if saved.err != nil {
			m.status = fmt.Sprintf("Error saving budget: %v", saved.err)
		}

		m.form = nil
		m.reload()

		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.reload()
			m.status = ""
		case "b":
			if m.budget != nil {
				return m.openBudgetForm()
			}
		}
	}

	return m, nil
}

func (m *DashboardModel) reload() {
	var monthly float64

	if m.budget != nil {
		ctx, cancel := storeCtx()
		defer cancel()

		v, err := m.budget.Get(ctx)
		if err != nil {
			m.status = fmt.Sprintf("Error loading budget: %v", err)
		}

		monthly = v
	}

	m.dash = report.BuildDashboard(report.DashboardInput{
		Transactions: m.source.Transactions(),
		Categories:   m.source.Categories(),
		Rates:        m.rates.Rates(),
		Budget:       monthly,
		Now:          timeNow(),
		Series:       m.series,
	})
}

func (m DashboardModel) openBudgetForm() (tea.Model, tea.Cmd) {
	value := strconv.FormatFloat(m.dash.Budget.Budget, 'f', -1, 64)

	m.value = &value
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("budget").
				Title("Monthly budget (IDR)").
				Description("0 clears the budget").
				Value(m.value).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "0" {
						return nil
					}
					if _, err := currency.ParseAmount(s); err != nil {
						return errors.New("enter a positive amount or 0")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	return m, m.form.Init()
}

func (m DashboardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.form = nil
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

	return m, m.saveBudgetCmd(*m.value)
}

func (m DashboardModel) View() string {
	d := m.dash
	rates := m.rates.Rates()
	cats := m.source.Categories()

	summary := lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render("Income\n"+okStyle.Render(currency.FormatHome(d.Totals.Income))),
		boxStyle.Render("Expenses\n"+errorStyle.Render(currency.FormatHome(d.Totals.Expenses))),
		boxStyle.Render("Balance\n"+activeStyle(currency.FormatHome(d.Totals.Balance))),
	)

	sections := []string{
		titleStyle.Render(fmt.Sprintf("%s · %s", m.title, d.Month)),
		"",
		summary,
	}

	if m.budget != nil {
		sections = append(sections, "", m.viewBudget())
	}

	sections = append(sections, "", m.viewTopCategories(), "", m.viewLatest(cats, rates), "", m.viewSeries())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m DashboardModel) viewBudget() string {
	b := m.dash.Budget
	if b.Budget <= 0 {
		return "Budget: " + faintStyle.Render("not set (press b)")
	}

	color := "46"
	if b.OverBudget() {
		color = "196"
	}

	return fmt.Sprintf("Budget  %s %.0f%%\n        %s spent of %s · %s remaining",
		bar(b.Percentage/100, barWidth, color), b.Percentage,
		currency.FormatHome(b.Spent), currency.FormatHome(b.Budget), currency.FormatHome(b.Remaining))
}

func (m DashboardModel) viewTopCategories() string {
	if len(m.dash.TopCategories) == 0 {
		return "Top categories\n" + faintStyle.Render("  no transactions this month")
	}

	var sb strings.Builder
	sb.WriteString("Top categories\n")

	for _, s := range m.dash.TopCategories {
		fmt.Fprintf(&sb, "  %s %-18s %3d × %s\n", swatch(s.Color), s.Name, s.Count, currency.FormatHome(s.Total))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (m DashboardModel) viewLatest(cats []transaction.Category, rates currency.Rates) string {
	if len(m.dash.Latest) == 0 {
		return "Latest transactions\n" + faintStyle.Render("  none yet")
	}

	var sb strings.Builder
	sb.WriteString("Latest transactions\n")

	for _, tx := range m.dash.Latest {
		fmt.Fprintf(&sb, "  %s  %-24s %-16s %s\n",
			tx.Date, tx.Description, report.CategoryLabel(cats, tx.CategoryID), signedAmount(tx, rates))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (m DashboardModel) viewSeries() string {
	var peak float64
	for _, b := range m.dash.Series {
		peak = max(peak, b.Income, b.Expenses)
	}

	var sb strings.Builder
	sb.WriteString("Monthly trend\n")

	for _, b := range m.dash.Series {
		in, out := 0.0, 0.0
		if peak > 0 {
			in, out = b.Income/peak, b.Expenses/peak
		}

		fmt.Fprintf(&sb, "  %-8s %s %s\n", b.Label, bar(in, barWidth/2, "46"), bar(out, barWidth/2, "196"))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// Messages

type budgetSavedMsg struct {
	err error
}

func (m DashboardModel) saveBudgetCmd(value string) tea.Cmd {
	return func() tea.Msg {
		var amount float64

		if strings.TrimSpace(value) != "0" {
			v, err := currency.ParseAmount(value)
			if err != nil {
				return budgetSavedMsg{err: err}
			}

			amount = v
		}

		ctx, cancel := storeCtx()
		defer cancel()

		return budgetSavedMsg{err: m.budget.Set(ctx, amount)}
	}
}
