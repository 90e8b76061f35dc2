package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Foster13/money-month-tracker/cmd/tui/internal/view"
	"github.com/Foster13/money-month-tracker/internal/app"
	"github.com/Foster13/money-month-tracker/internal/config"
)

type model struct {
	app *app.App

	currentView View

	dashboardView    view.DashboardModel
	transactionsView view.TransactionsModel
	categoriesView   view.CategoriesModel
	ratesView        view.RatesModel
	dataView         view.DataModel
	simulationView   view.SimulationModel
}

type View int

const (
	ViewMenu         View = 0
	ViewDashboard    View = 1
	ViewTransactions View = 2
	ViewCategories   View = 3
	ViewRates        View = 4
	ViewData         View = 5
	ViewSimulation   View = 6
)

func initialModel(a *app.App) model {
	return model{
		app:         a,
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	var (
		ledger   = m.app.Transactions
		pageSize = m.app.Config.Report.PageSize
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(ledger, ledger, m.app.Budget, m.app.Series, "Dashboard")

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(ledger, ledger, "Transactions", pageSize)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewCategories
				m.categoriesView = view.NewCategoriesModel(ledger)

				return m, m.categoriesView.Init()
			case "4":
				m.currentView = ViewRates
				m.ratesView = view.NewRatesModel(ledger, m.app.Rates)

				return m, m.ratesView.Init()
			case "5":
				m.currentView = ViewData
				m.dataView = view.NewDataModel(m.app.Export, ledger)

				return m, m.dataView.Init()
			case "6":
				m.currentView = ViewSimulation
				m.simulationView = view.NewSimulationModel(m.app.Simulation, ledger, ledger, pageSize, m.app.Series)

				return m, m.simulationView.Init()
			}
		}
	case view.BackMsg:
		if m.currentView != ViewSimulation || !m.simulationView.Nested() {
			m.currentView = ViewMenu
			return m, nil
		}
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewCategories:
		var newModel tea.Model
		newModel, cmd = m.categoriesView.Update(msg)
		m.categoriesView = newModel.(view.CategoriesModel)
	case ViewRates:
		var newModel tea.Model
		newModel, cmd = m.ratesView.Update(msg)
		m.ratesView = newModel.(view.RatesModel)
	case ViewData:
		var newModel tea.Model
		newModel, cmd = m.dataView.Update(msg)
		m.dataView = newModel.(view.DataModel)
	case ViewSimulation:
		var newModel tea.Model
		newModel, cmd = m.simulationView.Update(msg)
		m.simulationView = newModel.(view.SimulationModel)
	}

	return m, cmd
}

func (m model) View() string {
	var v view.View

	switch m.currentView {
	case ViewMenu:
		sim := ""
		if m.app.Simulation.Active() {
			sim = " (running)"
		}

		return lipgloss.NewStyle().Padding(2).Render(
			m.app.Config.App.Name + "\n\n" +
				"1. Dashboard\n" +
				"2. Transactions\n" +
				"3. Categories\n" +
				"4. Exchange Rates\n" +
				"5. Backup & Restore\n" +
				"6. Simulation" + sim + "\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		v = m.dashboardView
	case ViewTransactions:
		v = m.transactionsView
	case ViewCategories:
		v = m.categoriesView
	case ViewRates:
		v = m.ratesView
	case ViewData:
		v = m.dataView
	case ViewSimulation:
		v = m.simulationView
	default:
		return "Unknown View"
	}

	return v.View() + "\n" + lipgloss.NewStyle().Faint(true).PaddingLeft(2).Render(v.ShortHelp())
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the TUI; send logs to a file instead.
	logFile, err := tea.LogToFile("tui.log", "tui")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))

	ctx := context.Background()

	a, err := app.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open app", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	a.RefreshRatesIfStale(ctx)

	p := tea.NewProgram(initialModel(a))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
