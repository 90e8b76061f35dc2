package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/export"
	"github.com/Foster13/money-month-tracker/internal/report"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

type Exporter interface {
	Backup(dir string) (string, error)
	CSV(w io.Writer) error
}

// Restorer replaces the ledger with an imported backup.
type Restorer interface {
	Import(ctx context.Context, data []byte) error
	Transactions() []transaction.Transaction
	Categories() []transaction.Category
	Rates() currency.Rates
}

const (
	dataActionBackup  = "backup"
	dataActionCSV     = "csv"
	dataActionRestore = "restore"

	summaryCount = 10
)

type dataState int

const (
	dataStateForm dataState = iota
	dataStateRunning
	dataStateResult
)

type dataDraft struct {
	Action  string
	Path    string
	Confirm bool
}

type DataModel struct {
	CommonModel
	exporter Exporter
	restorer Restorer

	state   dataState
	form    *huh.Form
	draft   *dataDraft
	spinner spinner.Model
	err     error
	result  string
	summary string
}

func NewDataModel(exporter Exporter, restorer Restorer) DataModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := DataModel{exporter: exporter, restorer: restorer, spinner: s}
	m.draft = &dataDraft{Action: dataActionBackup, Path: "./exports"}
	m.form = m.buildForm()

	return m
}

func (m DataModel) Title() string { return "Backup & Restore" }

func (m DataModel) ShortHelp() string {
	switch m.state {
	case dataStateResult:
		return "Esc: back to menu"
	case dataStateRunning:
		return "Working..."
	}

	return "Esc: back | Enter: confirm"
}

func (m DataModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m DataModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case dataStateForm:
		return m.updateForm(msg)
	case dataStateRunning:
		return m.updateRunning(msg)
	case dataStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m DataModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.draft.Action == dataActionRestore && !m.draft.Confirm {
		return m, Back
	}

	m.state = dataStateRunning
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runCmd(*m.draft))
}

func (m DataModel) updateRunning(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(dataResultMsg); ok {
		m.state = dataStateResult
		m.err = result.err
		m.result = result.body
		m.summary = result.summary

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m DataModel) buildForm() *huh.Form {
	d := m.draft

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("action").
				Title("Action").
				Options(
					huh.NewOption("Back up everything to JSON", dataActionBackup),
					huh.NewOption("Export transactions as CSV", dataActionCSV),
					huh.NewOption("Restore from a JSON backup", dataActionRestore),
				).
				Value(&d.Action),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				TitleFunc(func() string {
					if d.Action == dataActionRestore {
						return "Backup File"
					}
					return "Output Directory"
				}, &d.Action).
				DescriptionFunc(func() string {
					if d.Action == dataActionRestore {
						return "Path to a finance-backup-*.json file"
					}
					return "Directory will be created if it doesn't exist"
				}, &d.Action).
				Value(&d.Path),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Replace all current data with the backup?").
				Affirmative("Restore").
				Negative("Cancel").
				Value(&d.Confirm),
		).WithHideFunc(func() bool { return d.Action != dataActionRestore }),
	).WithWidth(55).WithShowHelp(false)
}

func (m DataModel) View() string {
	switch m.state {
	case dataStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case dataStateRunning:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Working on %s...", m.spinner.View(), m.draft.Path),
		)

	case dataStateResult:
		return m.viewResult()
	}

	return ""
}

func (m DataModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	lines := []string{okStyle.Bold(true).Render(m.result)}
	if m.summary != "" {
		lines = append(lines, "", "Latest transactions:", "", m.summary)
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

type dataResultMsg struct {
	body    string
	summary string
	err     error
}

const restoreTimeout = 30 * time.Second

func (m DataModel) runCmd(d dataDraft) tea.Cmd {
	return func() tea.Msg {
		path := strings.TrimSpace(d.Path)

		switch d.Action {
		case dataActionBackup:
			file, err := m.exporter.Backup(path)
			if err != nil {
				return dataResultMsg{err: err}
			}

			return dataResultMsg{body: "Backup written to " + file}

		case dataActionCSV:
			file, err := m.writeCSV(path)
			if err != nil {
				return dataResultMsg{err: err}
			}

			return dataResultMsg{body: "CSV written to " + file}

		case dataActionRestore:
			data, err := export.Restore(path)
			if err != nil {
				return dataResultMsg{err: err}
			}

			ctx, cancel := context.WithTimeout(context.Background(), restoreTimeout)
			defer cancel()

			if err := m.restorer.Import(ctx, data); err != nil {
				return dataResultMsg{err: err}
			}

			txs := m.restorer.Transactions()
			cats := m.restorer.Categories()
			latest := report.Latest(txs, summaryCount)

			return dataResultMsg{
				body:    fmt.Sprintf("Restored %d transactions and %d categories.", len(txs), len(cats)),
				summary: export.Summary(latest, cats, m.restorer.Rates()),
			}
		}

		return dataResultMsg{err: fmt.Errorf("unknown action %q", d.Action)}
	}
}

func (m DataModel) writeCSV(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	name := strings.TrimSuffix(transaction.ExportFilename(timeNow()), ".json") + ".csv"
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating csv file: %w", err)
	}
	defer f.Close()

	if err := m.exporter.CSV(f); err != nil {
		return "", err
	}

	return path, f.Close()
}
