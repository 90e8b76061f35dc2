package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

type RateStore interface {
	Rates() currency.Rates
	LastRateUpdate() *time.Time
	UpdateExchangeRates(ctx context.Context, rates currency.Rates) error
	RefreshRates(ctx context.Context, f transaction.RateFetcher) (currency.FetchResult, error)
}

const refreshTimeout = 30 * time.Second

type ratesState int

const (
	ratesStateBrowse ratesState = iota
	ratesStateRefreshing
	ratesStateEdit
)

type RatesModel struct {
	CommonModel
	store   RateStore
	fetcher transaction.RateFetcher

	state   ratesState
	table   table.Model
	spinner spinner.Model
	form    *huh.Form
	value   *string
	status  string
}

func NewRatesModel(store RateStore, fetcher transaction.RateFetcher) RatesModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := RatesModel{
		store:   store,
		fetcher: fetcher,
		spinner: s,
		table: newTable([]table.Column{
			{Title: "Currency", Width: 8},
			{Title: "Name", Width: 20},
			{Title: "Rate (IDR per unit)", Width: 22},
		}, len(currency.All())+1),
	}

	m.reload()

	return m
}

func (m RatesModel) Title() string { return "Exchange Rates" }

func (m RatesModel) ShortHelp() string {
	switch m.state {
	case ratesStateRefreshing:
		return "Fetching rates..."
	case ratesStateEdit:
		return "Esc: cancel | Enter: save"
	}

	return "Esc: back | r: refresh from provider | e: edit rate"
}

func (m RatesModel) Init() tea.Cmd {
	return nil
}

func (m RatesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ratesRefreshedMsg:
		m.state = ratesStateBrowse
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.reload()

		return m, nil

	case spinner.TickMsg:
		if m.state != ratesStateRefreshing {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	switch m.state {
	case ratesStateRefreshing:
		return m, nil
	case ratesStateEdit:
		return m.updateEdit(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.state = ratesStateRefreshing
			m.status = ""

			return m, tea.Batch(m.spinner.Tick, m.refreshCmd())
		case "e", "enter":
			return m.openEdit()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *RatesModel) reload() {
	rates := m.store.Rates()

	rows := make([]table.Row, 0, len(currency.All()))
	for _, c := range currency.All() {
		rows = append(rows, table.Row{string(c), c.Name(), currency.FormatRate(rates[c])})
	}

	m.table.SetRows(rows)
}

func (m RatesModel) selectedCode() (currency.Code, bool) {
	all := currency.All()

	idx := m.table.Cursor()
	if idx < 0 || idx >= len(all) {
		return "", false
	}

	return all[idx], true
}

func (m RatesModel) openEdit() (tea.Model, tea.Cmd) {
	code, ok := m.selectedCode()
	if !ok || code == currency.Home {
		m.status = "The home currency rate is always 1."
		return m, nil
	}

	value := strconv.FormatFloat(m.store.Rates()[code], 'f', -1, 64)

	m.value = &value
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("rate").
				Title(fmt.Sprintf("IDR per 1 %s", code)).
				Value(m.value).
				Validate(func(s string) error {
					v, err := currency.ParseAmount(s)
					if err != nil {
						return err
					}
					if v <= 0 {
						return errors.New("rate must be positive")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)
	m.state = ratesStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m RatesModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = ratesStateBrowse
			m.form = nil
			m.table.Focus()

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

	code, _ := m.selectedCode()
	value := *m.value

	m.state = ratesStateRefreshing
	m.form = nil
	m.table.Focus()

	return m, tea.Batch(m.spinner.Tick, m.saveRateCmd(code, value))
}

func (m RatesModel) View() string {
	updated := "never"
	if ts := m.store.LastRateUpdate(); ts != nil {
		updated = ts.Local().Format("2006-01-02 15:04")
	}

	header := fmt.Sprintf("%s\n\nLast updated: %s", titleStyle.Render("Exchange Rates"), activeStyle(updated))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxStyle.Render(m.table.View()),
	)

	switch m.state {
	case ratesStateRefreshing:
		content += "\n" + m.spinner.View() + " Updating exchange rates..."
	case ratesStateEdit:
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

// Messages

type ratesRefreshedMsg struct {
	status string
	err    error
}

func (m RatesModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		res, err := m.store.RefreshRates(ctx, m.fetcher)
		if err != nil {
			return ratesRefreshedMsg{err: err}
		}

		if res.Fallback() {
			return ratesRefreshedMsg{status: fmt.Sprintf("Live rates unavailable (%v), using fallback rates.", res.Err)}
		}

		return ratesRefreshedMsg{status: "Exchange rates updated."}
	}
}

func (m RatesModel) saveRateCmd(code currency.Code, value string) tea.Cmd {
	return func() tea.Msg {
		rate, err := currency.ParseAmount(value)
		if err != nil {
			return ratesRefreshedMsg{err: err}
		}

		ctx, cancel := storeCtx()
		defer cancel()

		rates := m.store.Rates()
		rates[code] = rate

		if err := m.store.UpdateExchangeRates(ctx, rates); err != nil {
			return ratesRefreshedMsg{err: err}
		}

		return ratesRefreshedMsg{status: fmt.Sprintf("%s rate set to %s.", code, currency.FormatRate(rate))}
	}
}
