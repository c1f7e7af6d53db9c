package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
	"github.com/MrJamesThe3rd/toolrent/internal/loan"
)

type inventoryState int

const (
	inventoryStateGroups inventoryState = iota
	inventoryStateRepairs
	inventoryStateAddUnits
)

type InventoryModel struct {
	CommonModel
	inventoryService *inventory.Service
	loanService      *loan.Service

	state   inventoryState
	groups  table.Model
	repairs table.Model
	form    *huh.Form

	groupRows  []*inventory.Group
	repairRows []*loan.RepairItem

	loading bool
	err     error
	status  string
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func NewInventoryModel(invSvc *inventory.Service, loanSvc *loan.Service) InventoryModel {
	return InventoryModel{
		inventoryService: invSvc,
		loanService:      loanSvc,
		loading:          true,
		groups: newTable([]table.Column{
			{Title: "Tool", Width: 28},
			{Title: "Category", Width: 24},
			{Title: "Stock", Width: 8},
			{Title: "Total", Width: 8},
			{Title: "Replacement", Width: 14},
		}),
		repairs: newTable([]table.Column{
			{Title: "Tool", Width: 28},
			{Title: "Returned", Width: 12},
			{Title: "Customer", Width: 24},
			{Title: "Loan status", Width: 22},
		}),
	}
}

func (m InventoryModel) Title() string { return "Inventory" }

func (m InventoryModel) ShortHelp() string {
	switch m.state {
	case inventoryStateRepairs:
		return "Esc: back | Tab: groups | c: complete repair | r: refresh"
	case inventoryStateAddUnits:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Tab: repairs | a: add units | r: refresh"
}

func (m InventoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InventoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInventoryMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.groupRows = msg.groups
		m.repairRows = msg.repairs
		m.refreshTables()

		return m, nil

	case inventoryActionMsg:
		m.status = msg.summary
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		if m.state == inventoryStateAddUnits {
			m.state = inventoryStateGroups
			m.form = nil
			m.groups.Focus()
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.groups.SetHeight(msg.Height - 10)
		m.repairs.SetHeight(msg.Height - 10)

		return m, nil
	}

	switch m.state {
	case inventoryStateGroups:
		return m.updateGroups(msg)
	case inventoryStateRepairs:
		return m.updateRepairs(msg)
	case inventoryStateAddUnits:
		return m.updateAddUnits(msg)
	}

	return m, nil
}

func (m InventoryModel) updateGroups(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "tab":
			m.state = inventoryStateRepairs
			return m, nil
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.openAddUnits()
		}
	}

	var cmd tea.Cmd
	m.groups, cmd = m.groups.Update(msg)

	return m, cmd
}

func (m InventoryModel) updateRepairs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "tab":
			m.state = inventoryStateGroups
			return m, nil
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "c":
			idx := m.repairs.Cursor()
			if idx < 0 || idx >= len(m.repairRows) {
				return m, nil
			}

			return m, m.completeRepairCmd(m.repairRows[idx])
		}
	}

	var cmd tea.Cmd
	m.repairs, cmd = m.repairs.Update(msg)

	return m, cmd
}

func (m InventoryModel) openAddUnits() (tea.Model, tea.Cmd) {
	idx := m.groups.Cursor()
	if idx < 0 || idx >= len(m.groupRows) {
		return m, nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("quantity").
				Title("Units to add").
				Placeholder("1").
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 {
						return fmt.Errorf("enter a quantity of at least 1")
					}

					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = inventoryStateAddUnits
	m.groups.Blur()

	return m, m.form.Init()
}

func (m InventoryModel) updateAddUnits(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = inventoryStateGroups
		m.form = nil
		m.groups.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	quantity, _ := strconv.Atoi(m.form.GetString("quantity"))

	return m, m.addUnitsCmd(m.groupRows[m.groups.Cursor()], quantity)
}

func (m InventoryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading inventory...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	groupsTab, repairsTab := "Groups", fmt.Sprintf("Repairs (%d)", len(m.repairRows))
	current := m.groups

	if m.state == inventoryStateRepairs {
		repairsTab = activeStyle(repairsTab)
		current = m.repairs
	} else {
		groupsTab = activeStyle(groupsTab)
	}

	tabs := fmt.Sprintf("[Tab] %s | %s", groupsTab, repairsTab)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(tabs),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(current.View()),
	)

	if m.state == inventoryStateAddUnits && m.form != nil {
		g := m.groupRows[m.groups.Cursor()]

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render(fmt.Sprintf("Add Units\n\n%s (%s)\n\n%s", g.Name, g.Category.Name, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *InventoryModel) refreshTables() {
	groupRows := make([]table.Row, 0, len(m.groupRows))
	for _, g := range m.groupRows {
		replacement := "global"
		if g.ReplacementValue != nil {
			replacement = FormatPesos(*g.ReplacementValue)
		}

		groupRows = append(groupRows, table.Row{
			g.Name,
			g.Category.Name,
			strconv.Itoa(g.CurrentStock),
			strconv.Itoa(g.TotalTools),
			replacement,
		})
	}

	m.groups.SetRows(groupRows)

	repairRows := make([]table.Row, 0, len(m.repairRows))
	for _, r := range m.repairRows {
		returned := ""
		if r.ReturnedAt != nil {
			returned = FormatDate(*r.ReturnedAt)
		}

		repairRows = append(repairRows, table.Row{r.ToolName, returned, r.CustomerName, string(r.LoanStatus)})
	}

	m.repairs.SetRows(repairRows)
}

// Messages

type loadInventoryMsg struct {
	groups  []*inventory.Group
	repairs []*loan.RepairItem
	err     error
}

func (m InventoryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		groups, err := m.inventoryService.ListGroups(ctx, inventory.GroupFilter{})
		if err != nil {
			return loadInventoryMsg{err: err}
		}

		repairs, err := m.loanService.RepairQueue(ctx)

		return loadInventoryMsg{groups: groups, repairs: repairs, err: err}
	}
}

type inventoryActionMsg struct {
	summary string
	err     error
}

func (m InventoryModel) addUnitsCmd(g *inventory.Group, quantity int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.inventoryService.IntakeExisting(ctx, g.ID, quantity)
		if err != nil {
			return inventoryActionMsg{err: err}
		}

		return inventoryActionMsg{summary: fmt.Sprintf("%s now has %d units in stock", updated.Name, updated.CurrentStock)}
	}
}

func (m InventoryModel) completeRepairCmd(r *loan.RepairItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.inventoryService.CompleteRepair(ctx, r.ToolID); err != nil {
			return inventoryActionMsg{err: err}
		}

		return inventoryActionMsg{summary: fmt.Sprintf("%s is back in stock", r.ToolName)}
	}
}
