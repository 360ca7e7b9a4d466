package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/encoding"
	"github.com/MrJamesThe3rd/tesoreria/internal/export"
)

type exportState int

const (
	exportStateTimeframe exportState = iota
	exportStatePath
	exportStateExporting
	exportStateResult
)

type exportForm struct {
	form    *huh.Form
	path    string
	format  export.Format
	charset string
}

func newExportForm() *exportForm {
	f := &exportForm{path: "./exports", format: export.FormatCSV, charset: encoding.UTF8}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Carpeta de salida").
				Description("Se crea si no existe").
				Placeholder("./exports").
				Value(&f.path),
			huh.NewSelect[export.Format]().
				Title("Formato").
				Options(
					huh.NewOption("CSV (se puede volver a importar)", export.FormatCSV),
					huh.NewOption("Excel (.xlsx)", export.FormatXLSX),
				).
				Value(&f.format),
			huh.NewSelect[string]().
				Title("Codificación (solo CSV)").
				Options(
					huh.NewOption("UTF-8", encoding.UTF8),
					huh.NewOption("Windows-1252 (Excel antiguo)", encoding.Windows1252),
				).
				Value(&f.charset),
		),
	).WithWidth(50).WithShowHelp(false)

	return f
}

// ExportModel writes the cheques due in a chosen period to a CSV file.
type ExportModel struct {
	CommonModel
	exportService *export.Service

	state           exportState
	err             error
	timeframePicker TimeframePicker
	period          TimeframeSelectedMsg

	form    *exportForm
	spinner spinner.Model
	result  *export.Result
}

func NewExportModel(svc *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = activeStyle

	return ExportModel{
		exportService:   svc,
		state:           exportStateTimeframe,
		timeframePicker: NewTimeframePicker(TimeframeThisMonth),
		spinner:         s,
	}
}

func (m ExportModel) Title() string { return "Exportar cheques" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: volver al menú"
	case exportStateExporting:
		return "Exportando..."
	}

	return "Esc: volver | Enter: confirmar"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		m.period = tfMsg
		m.form = newExportForm()
		m.state = exportStatePath

		return m, m.form.form.Init()
	}

	switch m.state {
	case exportStateTimeframe:
		return m.updateTimeframe(msg)
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if isEsc(msg) {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if isEsc(msg) && m.timeframePicker.IsSelecting() {
		return m, Back
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if isEsc(msg) {
		m.state = exportStateTimeframe
		m.timeframePicker = NewTimeframePicker(m.period.Frame)

		return m, nil
	}

	var (
		cmd  tea.Cmd
		done bool
	)

	m.form.form, cmd, done = updateForm(m.form.form, msg)
	if !done {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	filter := cheque.ListFilter{PrevistaDesde: m.period.Desde, PrevistaHasta: m.period.Hasta}

	return m, tea.Batch(m.spinner.Tick, runExportCmd(m.exportService, filter, m.form.path, export.Options{Format: m.form.format, Charset: m.form.charset}))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.result = result.result

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render("Cheques con cobro previsto en el período.\n\n" + m.timeframePicker.View())

	case exportStatePath:
		return lipgloss.NewStyle().Padding(1).Render(faintStyle.Render(m.period.Label()) + "\n\n" + m.form.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Exportando cheques...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(errorColor).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor).
		Render(fmt.Sprintf("Exportados %d cheques", m.result.Count))

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			faintStyle.Render(m.result.Path),
			"",
			export.GenerateSummary(m.result),
		),
	)
}

type exportResultMsg struct {
	result *export.Result
	err    error
}

const exportTimeout = 2 * time.Minute

func runExportCmd(svc *export.Service, filter cheque.ListFilter, dir string, opts export.Options) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		res, err := svc.Export(ctx, filter, dir, opts)

		return exportResultMsg{result: res, err: err}
	}
}
