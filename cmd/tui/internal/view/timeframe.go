package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/toolrent/internal/clock"
)

// DateRange picks a span of calendar dates relative to today.
// A nil span selects everything.
type DateRange struct {
	Label string
	span  func(today time.Time) (time.Time, time.Time)
}

const (
	RangeToday = iota
	RangeLastWeek
	RangeThisMonth
	RangeLastMonth
	RangeYearToDate
	RangeAll
)

var dateRanges = []DateRange{
	RangeToday: {Label: "Today", span: func(d time.Time) (time.Time, time.Time) { return d, d }},
	RangeLastWeek: {Label: "Last 7 days", span: func(d time.Time) (time.Time, time.Time) {
		return d.AddDate(0, 0, -6), d
	}},
	RangeThisMonth: {Label: "This month", span: func(d time.Time) (time.Time, time.Time) {
		return d.AddDate(0, 0, 1-d.Day()), d
	}},
	RangeLastMonth: {Label: "Last month", span: func(d time.Time) (time.Time, time.Time) {
		first := d.AddDate(0, 0, 1-d.Day())
		return first.AddDate(0, -1, 0), first.AddDate(0, 0, -1)
	}},
	RangeYearToDate: {Label: "Year to date", span: func(d time.Time) (time.Time, time.Time) {
		return time.Date(d.Year(), 1, 1, 0, 0, 0, 0, time.UTC), d
	}},
	RangeAll: {Label: "All time"},
}

// customRange is the cursor position after the presets.
var customRange = len(dateRanges)

// TimeframeSelectedMsg carries the chosen calendar dates, both inclusive.
// Start and End are zero values when All is true.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

// TimeframePicker lets the operator choose a preset range or type one in.
type TimeframePicker struct {
	today  clock.Clock
	def    int
	cursor int
	custom bool

	inputs [2]textinput.Model
	focus  int

	err error
}

func NewTimeframePicker(def int) TimeframePicker {
	m := TimeframePicker{today: time.Now, def: def, cursor: def}

	for i, prompt := range []string{"From: ", "To:   "} {
		in := textinput.New()
		in.Placeholder = "YYYY-MM-DD"
		in.CharLimit = len(time.DateOnly)
		in.Width = 12
		in.Prompt = prompt
		m.inputs[i] = in
	}

	return m
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)

	switch {
	case ok && !m.custom:
		return m.updatePresets(key)
	case ok:
		return m.updateCustom(key)
	case m.custom:
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m TimeframePicker) updatePresets(key tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, customRange)
	case "enter":
		if m.cursor == customRange {
			m.custom = true
			m.focus = 0
			m.inputs[0].Focus()

			return m, textinput.Blink
		}

		r := dateRanges[m.cursor]
		if r.span == nil {
			return m, selected(TimeframeSelectedMsg{All: true})
		}

		start, end := r.span(m.today.Today())

		return m, selected(TimeframeSelectedMsg{Start: start, End: end})
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(key tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch key.String() {
	case "tab", "shift+tab":
		m.inputs[m.focus].Blur()
		m.focus = 1 - m.focus
		m.inputs[m.focus].Focus()

		return m, textinput.Blink
	case "esc":
		m.custom = false
		m.err = nil

		return m, nil
	case "enter":
		start, end, err := parseRange(m.inputs[0].Value(), m.inputs[1].Value())
		if err != nil {
			m.err = err
			return m, nil
		}

		m.err = nil

		return m, selected(TimeframeSelectedMsg{Start: start, End: end})
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(key)

	return m, cmd
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	start, err := clock.ParseDate(strings.TrimSpace(from))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid start date (YYYY-MM-DD)")
	}

	end, err := clock.ParseDate(strings.TrimSpace(to))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid end date (YYYY-MM-DD)")
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end date is before start date")
	}

	return start, end, nil
}

func selected(msg TimeframeSelectedMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m TimeframePicker) View() string {
	var b strings.Builder

	if m.custom {
		fmt.Fprintf(&b, "Custom range:\n\n%s\n%s\n\n(enter confirm, tab switch, esc back)", m.inputs[0].View(), m.inputs[1].View())
	} else {
		b.WriteString("Period:\n\n")

		for i := 0; i <= customRange; i++ {
			label := "Custom range"
			if i < customRange {
				label = dateRanges[i].Label
			}

			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}

			b.WriteString(cursor + label + "\n")
		}

		b.WriteString("\n(enter select, esc back)")
	}

	if m.err != nil {
		b.WriteString(errorStyle(fmt.Sprintf("\n\nError: %v", m.err)))
	}

	return b.String()
}

// IsSelecting reports whether the preset list is showing.
func (m TimeframePicker) IsSelecting() bool {
	return !m.custom
}

func (m *TimeframePicker) Reset() {
	m.custom = false
	m.cursor = m.def
	m.err = nil

	for i := range m.inputs {
		m.inputs[i].Blur()
		m.inputs[i].SetValue("")
	}
}
