package view

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
)

type kardexState int

const (
	kardexStateTimeframe kardexState = iota
	kardexStateList
)

// movementItem wraps a kardex movement to implement list.Item.
type movementItem struct {
	m *inventory.Movement
}

func (i movementItem) Title() string {
	typ := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.m.Type))
	return fmt.Sprintf("%s  %+4d  %s  %s", i.m.Date.Format(time.DateTime), i.m.AffectedAmount, typ, i.m.ToolName)
}

func (i movementItem) Description() string {
	return fmt.Sprintf("by %s · unit %s", i.m.ResponsibleUser, i.m.ToolID)
}

func (i movementItem) FilterValue() string {
	return i.m.ToolName
}

type KardexModel struct {
	CommonModel
	inventoryService *inventory.Service

	state           kardexState
	timeframePicker TimeframePicker
	list            list.Model
	movements       []*inventory.Movement

	startDate time.Time
	endDate   time.Time
	allTime   bool
	loading   bool
	status    string
}

func NewKardexModel(invSvc *inventory.Service) KardexModel {
	l := list.New([]list.Item{}, movementDelegate{}, 0, 0)
	l.Title = "Kardex"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return KardexModel{
		inventoryService: invSvc,
		timeframePicker:  NewTimeframePicker(RangeLastWeek),
		list:             l,
	}
}

func (m KardexModel) Title() string { return "Kardex" }

func (m KardexModel) ShortHelp() string {
	if m.state == kardexStateTimeframe {
		return "Esc: back | Enter: select"
	}

	return "Esc: back | /: filter by tool"
}

func (m KardexModel) Init() tea.Cmd {
	return nil
}

func (m KardexModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.startDate = msg.Start
		m.endDate = msg.End
		m.allTime = msg.All
		m.loading = true
		m.state = kardexStateList

		return m, m.loadMovementsCmd()

	case loadMovementsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.movements = msg.movements
		m.refreshListItems()

		m.status = summarize(msg.movements)
		if len(msg.movements) == 0 {
			m.status = "No movements found."
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	if m.state == kardexStateTimeframe {
		return m.updateTimeframe(msg)
	}

	return m.updateList(msg)
}

func (m KardexModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m KardexModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		if m.list.FilterState() != list.Filtering {
			m.state = kardexStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m KardexModel) View() string {
	if m.state == kardexStateTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading movements...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

// summarize counts units in and out over the listed movements.
func summarize(movements []*inventory.Movement) string {
	var in, out int

	for _, mv := range movements {
		if mv.AffectedAmount > 0 {
			in += mv.AffectedAmount
		} else {
			out -= mv.AffectedAmount
		}
	}

	return fmt.Sprintf("%d movements · %d units in · %d units out", len(movements), in, out)
}

func (m *KardexModel) refreshListItems() {
	items := make([]list.Item, len(m.movements))
	for i, mv := range m.movements {
		items[i] = movementItem{m: mv}
	}

	m.list.SetItems(items)
}

type loadMovementsMsg struct {
	movements []*inventory.Movement
	err       error
}

func (m KardexModel) loadMovementsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		filter := inventory.MovementFilter{}

		if !m.allTime {
			start, end := m.startDate, m.endDate
			filter.StartDate = &start
			filter.EndDate = &end
		}

		movements, err := m.inventoryService.ListMovements(ctx, filter)

		return loadMovementsMsg{movements: movements, err: err}
	}
}

// movementDelegate renders items in the list.
type movementDelegate struct{}

func (d movementDelegate) Height() int                             { return 2 }
func (d movementDelegate) Spacing() int                            { return 0 }
func (d movementDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d movementDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(movementItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
