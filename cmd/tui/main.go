package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/toolrent/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/toolrent/internal/app"
	"github.com/MrJamesThe3rd/toolrent/internal/config"
)

type model struct {
	services *app.Services

	currentView View

	loansView     view.LoansModel
	finesView     view.FinesModel
	inventoryView view.InventoryModel
	kardexView    view.KardexModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewLoans     View = 1
	ViewFines     View = 2
	ViewInventory View = 3
	ViewKardex    View = 4
	ViewImport    View = 5
	ViewExport    View = 6
)

func initialModel(svcs *app.Services) model {
	return model{
		services:    svcs,
		currentView: ViewMenu,
		importView:  view.NewImportModel(svcs.Importer),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewLoans
				m.loansView = view.NewLoansModel(m.services.Loans)

				return m, m.loansView.Init()
			case "2":
				m.currentView = ViewFines
				m.finesView = view.NewFinesModel(m.services.Fines)

				return m, m.finesView.Init()
			case "3":
				m.currentView = ViewInventory
				m.inventoryView = view.NewInventoryModel(m.services.Inventory, m.services.Loans)

				return m, m.inventoryView.Init()
			case "4":
				m.currentView = ViewKardex
				m.kardexView = view.NewKardexModel(m.services.Inventory)

				return m, m.kardexView.Init()
			case "5":
				m.currentView = ViewImport
				return m, m.importView.Init()
			case "6":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.services.Reports)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLoans:
		var newModel tea.Model
		newModel, cmd = m.loansView.Update(msg)
		m.loansView = newModel.(view.LoansModel)
	case ViewFines:
		var newModel tea.Model
		newModel, cmd = m.finesView.Update(msg)
		m.finesView = newModel.(view.FinesModel)
	case ViewInventory:
		var newModel tea.Model
		newModel, cmd = m.inventoryView.Update(msg)
		m.inventoryView = newModel.(view.InventoryModel)
	case ViewKardex:
		var newModel tea.Model
		newModel, cmd = m.kardexView.Update(msg)
		m.kardexView = newModel.(view.KardexModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"ToolRent TUI\n\n" +
				"1. Loans\n" +
				"2. Collect Fines\n" +
				"3. Inventory & Repairs\n" +
				"4. Kardex\n" +
				"5. Import Inventory\n" +
				"6. Export Reports\n\n" +
				"q. Quit",
		)
	case ViewLoans:
		return m.loansView.View()
	case ViewFines:
		return m.finesView.View()
	case ViewInventory:
		return m.inventoryView.View()
	case ViewKardex:
		return m.kardexView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to stderr and only warnings show.
	slog.SetDefault(app.NewLogger(os.Stderr, "warn", cfg.App.LogFormat))

	repos, closeStore, err := app.Open(cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	p := tea.NewProgram(initialModel(app.NewServices(repos, app.OptionsFrom(cfg))))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		closeStore()
		os.Exit(1)
	}
}
