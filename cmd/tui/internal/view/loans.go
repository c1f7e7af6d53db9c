package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/toolrent/internal/clock"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
	"github.com/MrJamesThe3rd/toolrent/internal/loan"
)

type loansState int

const (
	loansStateBrowse loansState = iota
	loansStateReturn
	loansStateAssess
)

const (
	assessMinor       = "minor"
	assessIrreparable = "irreparable"
)

var loanStatusFilters = []loan.Status{
	"",
	loan.StatusActive,
	loan.StatusOverdue,
	loan.StatusPendingEvaluation,
	loan.StatusFinePending,
	loan.StatusClosed,
	loan.StatusClosedWithFine,
}

type LoansModel struct {
	CommonModel
	loanService *loan.Service

	state loansState
	table table.Model
	loans []*loan.Loan
	today time.Time
	form  *huh.Form

	statusFilterIdx int
	dateFilterIdx   int

	filter  loan.ListFilter
	loading bool
	err     error
	status  string

	assessKind *string
}

func NewLoansModel(loanSvc *loan.Service) LoansModel {
	columns := []table.Column{
		{Title: "Return", Width: 12},
		{Title: "Status", Width: 22},
		{Title: "Customer", Width: 24},
		{Title: "Tool", Width: 28},
		{Title: "Value", Width: 12},
	}

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

	return LoansModel{
		loanService: loanSvc,
		table:       t,
		loading:     true,
	}
}

func (m LoansModel) Title() string { return "Loans" }

func (m LoansModel) ShortHelp() string {
	if m.state != loansStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter: return/assess | s: status filter | d: date filter | r: refresh"
}

func (m LoansModel) Init() tea.Cmd {
	return m.loadLoansCmd()
}

func (m LoansModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadLoansMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.loans = msg.loans
		m.today = msg.today
		m.refreshTable()

		return m, nil

	case loanActionMsg:
		m.status = msg.summary
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = loansStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadLoansCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == loansStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m LoansModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadLoansCmd()
		case "enter":
			return m.openForm()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(loanStatusFilters)
			m.applyFilter()

			return m, m.loadLoansCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % (len(loanDateRanges) + 1)
			m.applyFilter()

			return m, m.loadLoansCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LoansModel) selected() *loan.Loan {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.loans) {
		return nil
	}

	return m.loans[idx]
}

// openForm picks the action the selected loan allows: a return while it is
// out, a damage assessment once it is pending evaluation.
func (m LoansModel) openForm() (tea.Model, tea.Cmd) {
	l := m.selected()
	if l == nil {
		return m, nil
	}

	switch l.Status {
	case loan.StatusActive:
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[inventory.Condition]().
					Key("condition").
					Title("Condition on return").
					Options(
						huh.NewOption("Good condition", inventory.ConditionGood),
						huh.NewOption("Damaged", inventory.ConditionDamaged),
					),
			),
		).WithWidth(45).WithShowHelp(false)
		m.state = loansStateReturn
	case loan.StatusPendingEvaluation:
		m.assessKind = new(assessMinor)
		kind := m.assessKind

		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Key("kind").
					Title("Damage").
					Options(
						huh.NewOption("Minor (repairable)", assessMinor),
						huh.NewOption("Irreparable (write off)", assessIrreparable),
					).
					Value(kind),
			),
			huh.NewGroup(
				huh.NewInput().
					Key("amount").
					Title("Fine amount (CLP)").
					Validate(func(s string) error {
						v, err := strconv.ParseInt(s, 10, 64)
						if err != nil || v <= 0 {
							return fmt.Errorf("enter a positive whole amount")
						}

						return nil
					}),
			).WithHideFunc(func() bool { return *kind != assessMinor }),
		).WithWidth(45).WithShowHelp(false)
		m.state = loansStateAssess
	default:
		m.status = fmt.Sprintf("Nothing to do for a loan in %q", l.DisplayStatus(m.today))
		return m, nil
	}

	m.table.Blur()

	return m, m.form.Init()
}

func (m LoansModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = loansStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == loansStateReturn {
		return m, m.returnCmd()
	}

	return m, m.assessCmd()
}

func (m LoansModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading loans...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabel := "All"
	if s := loanStatusFilters[m.statusFilterIdx]; s != "" {
		statusLabel = string(s)
	}

	dateLabel := "All time"
	if r, ok := loanDateRanges[m.dateFilterIdx]; ok {
		dateLabel = dateRanges[r].Label
	}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [d] Loaned: %s",
		activeStyle(statusLabel),
		activeStyle(dateLabel),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != loansStateBrowse && m.form != nil {
		title := "Return Loan"
		if m.state == loansStateAssess {
			title = "Assess Damage"
		}

		info := ""
		if l := m.selected(); l != nil {
			info = fmt.Sprintf("%s\n%s (%s)", l.ToolName, l.CustomerName, l.CustomerRUT)
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s\n\n%s", title, info, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// loanDateRanges maps the loan date filter positions to presets. Position 0
// shows every loan.
var loanDateRanges = map[int]int{1: RangeThisMonth, 2: RangeLastMonth}

func (m *LoansModel) applyFilter() {
	m.filter.Status = nil
	if s := loanStatusFilters[m.statusFilterIdx]; s != "" {
		m.filter.Status = &s
	}

	m.filter.StartDate, m.filter.EndDate = nil, nil

	if r, ok := loanDateRanges[m.dateFilterIdx]; ok {
		s, e := dateRanges[r].span(clock.Clock(time.Now).Today())
		m.filter.StartDate, m.filter.EndDate = &s, &e
	}
}

func (m *LoansModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.loans))
	for _, l := range m.loans {
		rows = append(rows, table.Row{
			FormatDate(l.ReturnDate),
			string(l.DisplayStatus(m.today)),
			l.CustomerName,
			l.ToolName,
			FormatPesos(l.LoanValue),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadLoansMsg struct {
	loans []*loan.Loan
	today time.Time
	err   error
}

func (m LoansModel) loadLoansCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		loans, err := m.loanService.List(ctx, filter)

		return loadLoansMsg{loans: loans, today: m.loanService.Today(), err: err}
	}
}

type loanActionMsg struct {
	summary string
	err     error
}

func (m LoansModel) returnCmd() tea.Cmd {
	l := m.selected()
	if l == nil {
		return nil
	}

	condition, _ := m.form.Get("condition").(inventory.Condition)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		returned, err := m.loanService.ProcessReturn(ctx, l.ID, condition)
		if err != nil {
			return loanActionMsg{err: err}
		}

		return loanActionMsg{summary: fmt.Sprintf("Returned %s: %s", returned.ToolName, returned.Status)}
	}
}

func (m LoansModel) assessCmd() tea.Cmd {
	l := m.selected()
	if l == nil {
		return nil
	}

	kind := m.form.GetString("kind")
	amount, _ := strconv.ParseInt(m.form.GetString("amount"), 10, 64)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var err error
		if kind == assessIrreparable {
			_, _, err = m.loanService.AssessIrreparableDamage(ctx, l.ID)
		} else {
			_, _, err = m.loanService.AssessMinorDamage(ctx, l.ID, amount)
		}

		if err != nil {
			return loanActionMsg{err: err}
		}

		return loanActionMsg{summary: fmt.Sprintf("Damage assessed for %s", l.ToolName)}
	}
}
