package view

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/toolrent/internal/report"
)

type exportState int

const (
	exportStateReports exportState = iota
	exportStateTimeframe
	exportStatePath
	exportStateExporting
	exportStateResult
)

var reportLabels = map[report.Name]string{
	report.ActiveLoans: "Active loans",
	report.Ranking:     "Most loaned tools",
	report.Delinquent:  "Customers with unpaid fines",
	report.RepairQueue: "Units in repair",
	report.Kardex:      "Kardex movements",
}

type ExportModel struct {
	CommonModel
	reportService *report.Service

	state           exportState
	err             error
	timeframePicker TimeframePicker

	reports []report.Name
	params  report.Params

	form    *huh.Form
	spinner spinner.Model
	files   []string
}

func NewExportModel(svc *report.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ExportModel{
		reportService:   svc,
		state:           exportStateReports,
		timeframePicker: NewTimeframePicker(RangeThisMonth),
		spinner:         s,
	}
	m.form = buildReportsForm()

	return m
}

func (m ExportModel) Title() string { return "Export Reports" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	case exportStateReports:
		return "Esc: back | x: toggle | Enter: confirm"
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		m.params = report.Params{}
		if !tfMsg.All {
			start, end := tfMsg.Start, tfMsg.End
			m.params.From = &start
			m.params.To = &end
		}

		m.form = buildPathForm()
		m.state = exportStatePath

		return m, m.form.Init()
	}

	switch m.state {
	case exportStateReports:
		return m.updateReports(msg)
	case exportStateTimeframe:
		return m.updateTimeframe(msg)
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateReports(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.reports, _ = m.form.Get("reports").([]report.Name)
	m.state = exportStateTimeframe
	m.timeframePicker.Reset()

	return m, nil
}

func (m ExportModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			m.state = exportStateReports
			m.form = buildReportsForm()

			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = exportStateTimeframe
			m.timeframePicker.Reset()

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

	path := m.form.GetString("path")
	if path == "" {
		path = "./exports"
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.reports, m.params, path))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.files = result.files

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func buildReportsForm() *huh.Form {
	options := make([]huh.Option[report.Name], 0, len(report.Names))
	for _, n := range report.Names {
		options = append(options, huh.NewOption(reportLabels[n], n))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[report.Name]().
				Key("reports").
				Title("Reports").
				Options(options...).
				Validate(func(names []report.Name) error {
					if len(names) == 0 {
						return fmt.Errorf("select at least one report")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports"),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateReports, exportStatePath:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Building %d reports...", m.spinner.View(), len(m.reports)),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	lines := make([]string, len(m.files))
	for i, f := range m.files {
		lines[i] = "  " + filepath.Base(f)
	}

	dir := ""
	if len(m.files) > 0 {
		dir = filepath.Dir(m.files[0])
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("Written to %s:", dir),
			"",
			strings.Join(lines, "\n"),
		),
	)
}

type exportResultMsg struct {
	files []string
	err   error
}

const exportTimeout = 2 * time.Minute

func (m ExportModel) runExportCmd(names []report.Name, p report.Params, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		files, err := m.reportService.Export(ctx, names, p, path)

		return exportResultMsg{files: files, err: err}
	}
}
