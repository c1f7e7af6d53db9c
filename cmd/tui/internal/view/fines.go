package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/toolrent/internal/fine"
)

// FinesModel walks the unpaid fines one at a time.
type FinesModel struct {
	CommonModel
	fineService *fine.Service

	queue   []*fine.Fine
	current *fine.Fine

	loading    bool
	status     string
	totalCount int
	paidCount  int
	paidTotal  int64
}

func NewFinesModel(fineSvc *fine.Service) FinesModel {
	return FinesModel{
		fineService: fineSvc,
		loading:     true,
	}
}

func (m FinesModel) Title() string { return "Collect Fines" }

func (m FinesModel) ShortHelp() string {
	return "p: mark paid | s: skip | Esc: back"
}

func (m FinesModel) Init() tea.Cmd {
	return m.loadUnpaidCmd()
}

func (m FinesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "p":
			if m.current != nil {
				return m, m.payCmd(m.current)
			}
		case "s":
			if m.current != nil {
				m.next()
			}
		}

	case loadUnpaidMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.queue = msg.fines
		m.totalCount = len(m.queue)
		m.next()

	case finePaidMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error paying: %v", msg.err)
			break
		}

		m.paidCount++
		m.paidTotal += msg.fine.Value
		m.status = ""
		m.next()
	}

	return m, nil
}

func (m FinesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading unpaid fines...")
	}

	if m.current == nil {
		if m.totalCount == 0 {
			return lipgloss.NewStyle().Padding(2).Render("No unpaid fines.\n\n(Esc to back)")
		}

		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf(
			"%s\n\nCollected %d fines for %s.\n\n(Esc to back)",
			m.status, m.paidCount, FormatPesos(m.paidTotal),
		))
	}

	f := m.current
	info := fmt.Sprintf(
		"Customer: %s (%s)\nType:     %s\nAmount:   %s\nIssued:   %s\nLoan:     %s\n",
		f.CustomerName,
		f.CustomerRUT,
		f.Type,
		activeStyle(FormatPesos(f.Value)),
		FormatDate(f.CreatedAt),
		f.LoanID,
	)

	statusLine := ""
	if m.status != "" {
		statusLine = "\n" + errorStyle(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(2).Render(
		fmt.Sprintf("Unpaid Fine (%d remaining)\n\n%s%s\n(p to mark paid, s to skip, Esc to back)",
			len(m.queue)+1, info, statusLine),
	)
}

func (m *FinesModel) next() {
	if len(m.queue) == 0 {
		m.current = nil
		m.status = "All done!"

		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
}

type loadUnpaidMsg struct {
	fines []*fine.Fine
	err   error
}

func (m FinesModel) loadUnpaidCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		fines, err := m.fineService.List(ctx, fine.ListFilter{Status: new(fine.StatusUnpaid)})

		return loadUnpaidMsg{fines: fines, err: err}
	}
}

type finePaidMsg struct {
	fine *fine.Fine
	err  error
}

func (m FinesModel) payCmd(f *fine.Fine) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		paid, err := m.fineService.Pay(ctx, f.ID)

		return finePaidMsg{fine: paid, err: err}
	}
}
