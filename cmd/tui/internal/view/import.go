package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tesoreria/internal/importer"
	"github.com/MrJamesThe3rd/tesoreria/internal/importer/planilla"
	"github.com/MrJamesThe3rd/tesoreria/internal/present"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateReading
	importStatePreview
	importStateImporting
	importStateResult
)

// ImportModel loads a cheque spreadsheet, previews its rows and creates the
// selected ones.
type ImportModel struct {
	CommonModel
	importService *importer.Service

	state      importState
	filePicker filepicker.Model
	path       string

	batch    *importer.Batch
	rowList  list.Model
	selected map[int]bool

	report *importer.Report
	status string
	err    error
}

func NewImportModel(impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: impSvc,
		filePicker:    fp,
		selected:      make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Importar cheques" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStatePreview:
		return "Espacio: marcar | a: todos | n: ninguno | Enter: importar | Esc: cancelar"
	case importStateResult:
		return "Esc: volver"
	}

	return "Esc: volver | Enter: elegir"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		m.filePicker.SetHeight(max(5, msg.Height-10))

		if m.state == importStatePreview {
			m.rowList.SetSize(msg.Width-4, msg.Height-10)
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStatePreview {
			return m.updatePreview(msg)
		}

	case batchReadMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("No se pudo leer %s", m.path)

			return m, nil
		}

		m.batch = msg.batch
		m.selected = make(map[int]bool, len(msg.batch.Rows))

		items := make([]list.Item, len(msg.batch.Rows))
		for i, r := range msg.batch.Rows {
			items[i] = rowItem{row: r, index: i}
			m.selected[i] = true
		}

		delegate := rowDelegate{selected: &m.selected}
		m.rowList = list.New(items, delegate, max(80, m.Width-4), max(10, m.Height-10))
		m.rowList.Title = fmt.Sprintf("%s · %s · %d cheques", msg.batch.Layout, msg.batch.Charset, len(msg.batch.Rows))
		m.rowList.SetShowStatusBar(false)
		m.rowList.SetFilteringEnabled(false)
		m.rowList.SetShowHelp(false)
		m.state = importStatePreview

		return m, nil

	case importDoneMsg:
		m.state = importStateResult
		m.report = msg.report
		m.err = msg.err

		switch {
		case msg.err != nil:
			m.status = "La importación se interrumpió"
		case len(msg.report.Failed) > 0:
			m.status = fmt.Sprintf("Importados %d cheques, %d con errores", len(msg.report.Created), len(msg.report.Failed))
		default:
			m.status = fmt.Sprintf("Importados %d cheques", len(msg.report.Created))
		}

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.path = path
		m.state = importStateReading
		m.status = fmt.Sprintf("Leyendo %s...", path)

		return m, m.readCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStatePreview, importStateResult:
		m.state = importStateFilePick
		m.batch, m.report = nil, nil
		m.err = nil
		m.status = ""
		m.selected = make(map[int]bool)

		return m, nil
	case importStateReading, importStateImporting:
		return m, nil
	}

	return m, Back
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.rowList.Index()
		m.selected[idx] = !m.selected[idx]

		return m, nil
	case "a":
		for i := range m.batch.Rows {
			m.selected[i] = true
		}

		return m, nil
	case "n":
		for i := range m.batch.Rows {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		m.state = importStateImporting
		m.status = "Importando..."

		return m, m.importCmd()
	}

	var cmd tea.Cmd
	m.rowList, cmd = m.rowList.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Elegí la planilla de cheques (CSV):\n\n" + m.filePicker.View(),
		)
	case importStateReading, importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStatePreview:
		return lipgloss.NewStyle().Padding(1).Render(m.viewPreview())
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewPreview() string {
	s := m.rowList.View()

	if len(m.batch.Unresolved) > 0 {
		s += "\n" + lipgloss.NewStyle().Foreground(warningColor).Render(
			"Bancos sin identificar: "+strings.Join(m.batch.Unresolved, ", "),
		)
	}

	return s
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)

	if m.err != nil {
		return style.Render(
			lipgloss.NewStyle().Foreground(errorColor).Render(m.status) +
				"\n" + faintStyle.Render(m.err.Error()) +
				"\n\n(Esc para volver)",
		)
	}

	color := successColor

	var b strings.Builder

	if m.report != nil && len(m.report.Failed) > 0 {
		color = warningColor

		for _, f := range m.report.Failed {
			b.WriteString(fmt.Sprintf("\n  línea %d (%s): %v", f.Line, f.Numero, f.Err))
		}
	}

	return style.Render(
		lipgloss.NewStyle().Foreground(color).Render(m.status) +
			faintStyle.Render(b.String()) +
			"\n\n(Esc para volver)",
	)
}

// Messages

type batchReadMsg struct {
	batch *importer.Batch
	err   error
}

type importDoneMsg struct {
	report *importer.Report
	err    error
}

func (m ImportModel) readCmd(path string) tea.Cmd {
	svc := m.importService

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return batchReadMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		batch, err := svc.Read(ctx, f)

		return batchReadMsg{batch: batch, err: err}
	}
}

// importCmd creates the selected rows only.
func (m ImportModel) importCmd() tea.Cmd {
	svc := m.importService

	batch := *m.batch
	batch.Rows = nil

	for i, r := range m.batch.Rows {
		if m.selected[i] {
			batch.Rows = append(batch.Rows, r)
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		report, err := svc.Import(ctx, &batch)

		return importDoneMsg{report: report, err: err}
	}
}

// Row list item

type rowItem struct {
	row   planilla.Row
	index int
}

func (i rowItem) Title() string       { return "" }
func (i rowItem) Description() string { return "" }
func (i rowItem) FilterValue() string { return i.row.Params.Numero }

// Row list delegate

type rowDelegate struct {
	selected *map[int]bool
}

func (d rowDelegate) Height() int                             { return 2 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(rowItem)
	if !ok {
		return
	}

	checkbox := "[ ]"
	if (*d.selected)[item.index] {
		checkbox = "[x]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	p := item.row.Params

	line1 := fmt.Sprintf("%s%s %-10s %s  %s  %s",
		cursor, checkbox,
		p.Numero,
		present.Date(p.FechaCobroPrevista),
		present.Money(p.Monto),
		present.Text(p.BeneficiarioNombre),
	)

	banco := present.Text(item.row.Banco)
	if item.row.Banco != "" && p.BancoID == nil {
		banco += " (sin identificar)"
	}

	line2 := faintStyle.Render(fmt.Sprintf("      línea %d · %s · %s", item.row.Line, p.Tipo.Label(), banco))

	fmt.Fprintf(w, "%s\n%s\n", line1, line2)
}
