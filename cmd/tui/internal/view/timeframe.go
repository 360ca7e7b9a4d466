package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
)

// Timeframe is a predefined or custom date range for projections.
type Timeframe int

const (
	TimeframeNext7 Timeframe = iota
	TimeframeThisMonth
	TimeframeNextMonth
	TimeframeNext90
	TimeframeLastMonth
	TimeframeAll
	TimeframeCustom
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeNext7:
		return "Próximos 7 días"
	case TimeframeThisMonth:
		return "Este mes"
	case TimeframeNextMonth:
		return "Próximo mes"
	case TimeframeNext90:
		return "Próximos 90 días"
	case TimeframeLastMonth:
		return "Mes anterior"
	case TimeframeAll:
		return "Todo"
	case TimeframeCustom:
		return "Rango personalizado"
	}

	return "Desconocido"
}

func day(t time.Time) civil.Date {
	return civil.NewDate(t.Year(), t.Month(), t.Day())
}

// Range returns the inclusive dates of tf as seen from now. Both are nil for
// TimeframeAll and TimeframeCustom.
func (t Timeframe) Range(now time.Time) (desde, hasta *civil.Date) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var start, end time.Time

	switch t {
	case TimeframeNext7:
		start, end = now, now.AddDate(0, 0, 6)
	case TimeframeThisMonth:
		start, end = first, first.AddDate(0, 1, -1)
	case TimeframeNextMonth:
		start = first.AddDate(0, 1, 0)
		end = start.AddDate(0, 1, -1)
	case TimeframeNext90:
		start, end = now, now.AddDate(0, 0, 89)
	case TimeframeLastMonth:
		start = first.AddDate(0, -1, 0)
		end = first.AddDate(0, 0, -1)
	default:
		return nil, nil
	}

	d, h := day(start), day(end)

	return &d, &h
}

// TimeframeSelectedMsg is emitted when the user has picked a valid range.
// Desde and Hasta are nil when every date applies.
type TimeframeSelectedMsg struct {
	Frame Timeframe
	Desde *civil.Date
	Hasta *civil.Date
}

// Label describes the selected range for page headers.
func (m TimeframeSelectedMsg) Label() string {
	if m.Desde == nil && m.Hasta == nil {
		return TimeframeAll.String()
	}

	var b strings.Builder

	if m.Frame != TimeframeCustom {
		b.WriteString(m.Frame.String() + ": ")
	}

	if m.Desde != nil {
		b.WriteString(m.Desde.Format("02/01/2006"))
	}

	b.WriteString(" a ")

	if m.Hasta != nil {
		b.WriteString(m.Hasta.Format("02/01/2006"))
	}

	return b.String()
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker is a reusable component for selecting a date range.
type TimeframePicker struct {
	state    timeframeState
	selected Timeframe
	now      func() time.Time

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewTimeframePicker(initial Timeframe) TimeframePicker {
	si := textinput.New()
	si.Placeholder = "AAAA-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Desde: "

	ei := textinput.New()
	ei.Placeholder = "AAAA-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "Hasta: "

	return TimeframePicker{
		state:      timeframeStateSelect,
		selected:   initial,
		now:        time.Now,
		startInput: si,
		endInput:   ei,
	}
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(key)
		case timeframeStateCustom:
			return m.updateCustom(key)
		}
	}

	if m.state == timeframeStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > TimeframeNext7 {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == TimeframeCustom {
			m.state = timeframeStateCustom
			m.focusIndex = 0

			return m, m.startInput.Focus()
		}

		sel := TimeframeSelectedMsg{Frame: m.selected}
		sel.Desde, sel.Hasta = m.selected.Range(m.now())

		return m, func() tea.Msg { return sel }
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			return m, m.startInput.Focus()
		}

		return m, m.endInput.Focus()

	case "enter":
		desde, err := parseDate(m.startInput.Value())
		if err != nil {
			m.err = fmt.Errorf("fecha desde inválida (AAAA-MM-DD)")
			return m, nil
		}

		hasta, err := parseDate(m.endInput.Value())
		if err != nil {
			m.err = fmt.Errorf("fecha hasta inválida (AAAA-MM-DD)")
			return m, nil
		}

		if desde != nil && hasta != nil && desde.After(hasta.Time) {
			m.err = fmt.Errorf("desde es posterior a hasta")
			return m, nil
		}

		m.err = nil
		sel := TimeframeSelectedMsg{Frame: TimeframeCustom, Desde: desde, Hasta: hasta}

		return m, func() tea.Msg { return sel }

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil
	}

	return m.updateInputs(msg)
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	var cmds []tea.Cmd
	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = lipgloss.NewStyle().Foreground(errorColor).Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Rango personalizado:\n\n%s\n%s\n\n(Enter confirma, Tab cambia, Esc vuelve)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	s := "Período:\n\n"
	for i := TimeframeNext7; i <= TimeframeCustom; i++ {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, i.String())
	}

	s += "\n(Enter elige, Esc vuelve)"

	return s + errStr
}

// IsSelecting returns true if the picker is in the selection state.
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}
