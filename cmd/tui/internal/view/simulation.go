package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/report"
	"github.com/Foster13/money-month-tracker/internal/simulation"
)

type simState int

const (
	simStateMenu simState = iota
	simStateDashboard
	simStateTransactions
)

// SimulationModel lets the user try out changes on a throwaway copy of the
// main ledger. Nothing done here is persisted.
type SimulationModel struct {
	CommonModel
	sim      *simulation.Service
	main     DashboardSource
	rates    RateSource
	pageSize int
	series   report.SeriesOptions

	state        simState
	dashboard    DashboardModel
	transactions TransactionsModel
	status       string
}

// NewSimulationModel forks main into sim unless a simulation is already running.
func NewSimulationModel(sim *simulation.Service, main DashboardSource, rates RateSource, pageSize int, series report.SeriesOptions) SimulationModel {
	m := SimulationModel{sim: sim, main: main, rates: rates, pageSize: pageSize, series: series}

	if !sim.Active() {
		m.fork()
	}

	return m
}

func (m *SimulationModel) fork() {
	m.sim.LoadFromMain(m.main.Transactions(), m.main.Categories())
	m.status = fmt.Sprintf("Simulation started from %d transactions.", len(m.sim.Transactions()))
}

func (m SimulationModel) Title() string { return "Simulation" }

func (m SimulationModel) ShortHelp() string {
	switch m.state {
	case simStateDashboard:
		return m.dashboard.ShortHelp()
	case simStateTransactions:
		return m.transactions.ShortHelp()
	}

	return "1: dashboard | 2: transactions | r: restart from main | x: end simulation | Esc: back"
}

// Nested reports whether a sub-screen is open, so a BackMsg belongs to this view.
func (m SimulationModel) Nested() bool {
	return m.state != simStateMenu
}

func (m SimulationModel) Init() tea.Cmd {
	return nil
}

func (m SimulationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(BackMsg); ok {
		m.state = simStateMenu
		return m, nil
	}

	var cmd tea.Cmd

	switch m.state {
	case simStateDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboard.Update(msg)
		m.dashboard = newModel.(DashboardModel)

		return m, cmd
	case simStateTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactions.Update(msg)
		m.transactions = newModel.(TransactionsModel)

		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "1":
		m.dashboard = NewDashboardModel(m.sim, m.rates, nil, m.series, "Simulated Dashboard")
		m.state = simStateDashboard
	case "2":
		m.transactions = NewTransactionsModel(simulation.NewLedger(m.sim), m.rates, "Simulated Transactions", m.pageSize)
		m.state = simStateTransactions
	case "r":
		m.fork()
	case "x":
		m.sim.Clear()
		return m, Back
	}

	return m, nil
}

func (m SimulationModel) View() string {
	switch m.state {
	case simStateDashboard:
		return m.dashboard.View()
	case simStateTransactions:
		return m.transactions.View()
	}

	totals := report.ComputeTotals(m.sim.Transactions(), m.rates.Rates())

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Simulation Mode"),
		faintStyle.Render("Changes here never touch your saved data."),
		"",
		fmt.Sprintf("%d transactions · balance %s", len(m.sim.Transactions()), activeStyle(currency.FormatHome(totals.Balance))),
		"",
		"1. Dashboard",
		"2. Transactions",
		"r. Restart from main data",
		"x. End simulation",
	)

	if m.status != "" {
		body = faintStyle.Render(m.status) + "\n\n" + body
	}

	return lipgloss.NewStyle().Padding(2).Render(body)
}
