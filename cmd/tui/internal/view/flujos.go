package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tesoreria/internal/flujo"
	"github.com/MrJamesThe3rd/tesoreria/internal/listing"
	"github.com/MrJamesThe3rd/tesoreria/internal/present"
)

type flujosState int

const (
	flujosTimeframe flujosState = iota
	flujosBrowse
	flujosEdit
	flujosDelete
)

const flujosListID = "flujos"

type flujosList = listing.Controller[flujo.ListFilter, *flujo.ListResult]

// flujoForm creates or edits a projection; the backend takes the full body
// on both.
type flujoForm struct {
	form    *huh.Form
	current *flujo.Flujo

	fecha       string
	signo       flujo.Signo
	monto       string
	origen      flujo.OrigenTipo
	origenID    string
	descripcion string
}

func newFlujoForm(current *flujo.Flujo) *flujoForm {
	ff := &flujoForm{current: current, signo: flujo.SignoIngreso, origen: flujo.OrigenOtro}

	if current != nil {
		ff.fecha = formatDate(&current.Fecha)
		ff.signo = current.Signo
		ff.monto = current.Monto.StringFixed(2)
		ff.origen = current.OrigenTipo
		ff.descripcion = current.Descripcion

		if current.OrigenID != nil {
			ff.origenID = fmt.Sprintf("%d", *current.OrigenID)
		}
	}

	origenes := make([]huh.Option[flujo.OrigenTipo], len(flujo.OrigenTipos))
	for i, o := range flujo.OrigenTipos {
		origenes[i] = huh.NewOption(o.Label(), o)
	}

	ff.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Fecha").Placeholder("AAAA-MM-DD").Value(&ff.fecha).Validate(requiredDate),
		huh.NewSelect[flujo.Signo]().
			Title("Signo").
			Options(
				huh.NewOption(flujo.SignoIngreso.Label(), flujo.SignoIngreso),
				huh.NewOption(flujo.SignoEgreso.Label(), flujo.SignoEgreso),
			).
			Value(&ff.signo),
		huh.NewInput().Title("Monto").Placeholder("1.250,50").Value(&ff.monto).Validate(validAmount),
		huh.NewSelect[flujo.OrigenTipo]().Title("Origen").Options(origenes...).Value(&ff.origen),
		huh.NewInput().Title("Id de origen (opcional)").Value(&ff.origenID).Validate(optionalID),
		huh.NewInput().Title("Descripción").Value(&ff.descripcion),
	)).WithWidth(50).WithShowHelp(false)

	return ff
}

func (ff *flujoForm) params() (flujo.Params, error) {
	fecha, err := parseDate(ff.fecha)
	if err != nil {
		return flujo.Params{}, fmt.Errorf("%w: %w", flujo.ErrInvalid, err)
	}

	monto, err := parseAmount(ff.monto)
	if err != nil {
		return flujo.Params{}, flujo.ErrInvalidMonto
	}

	origenID, err := parseOptionalID(ff.origenID)
	if err != nil {
		return flujo.Params{}, fmt.Errorf("%w: %w", flujo.ErrInvalid, err)
	}

	p := flujo.Params{
		Signo:       ff.signo,
		Monto:       monto,
		OrigenTipo:  ff.origen,
		OrigenID:    origenID,
		Descripcion: strings.TrimSpace(ff.descripcion),
	}

	if fecha != nil {
		p.Fecha = *fecha
	}

	return p, p.Validate()
}

type FlujosModel struct {
	CommonModel
	svc      Services
	settings Settings

	state      flujosState
	picker     TimeframePicker
	period     TimeframeSelectedMsg
	list       flujosList
	table      table.Model
	pager      Pager
	feedback   Feedback
	editForm   *flujoForm
	deleteForm *confirmForm
	deleting   *flujo.Flujo
	saving     bool
}

func NewFlujosModel(svc Services, settings Settings) FlujosModel {
	fetch := func(ctx context.Context, q listing.Query[flujo.ListFilter]) (*flujo.ListResult, error) {
		return svc.Flujos.List(ctx, flujo.ListQuery{Page: q.Page, Limit: q.Limit, ListFilter: q.Filter})
	}

	return FlujosModel{
		svc:      svc,
		settings: settings,
		picker:   NewTimeframePicker(TimeframeThisMonth),
		list:     listing.New(flujosListID, fetch, flujo.ListFilter{}, settings.listOptions()),
		table: newTable([]table.Column{
			{Title: "Fecha", Width: 10},
			{Title: "Signo", Width: 8},
			{Title: "Monto", Width: 16},
			{Title: "Origen", Width: 14},
			{Title: "Descripción", Width: 34},
		}, 12),
		pager: NewPager(flujosListID),
	}
}

func (m FlujosModel) Title() string { return "Flujo de fondos" }

func (m FlujosModel) ShortHelp() string {
	switch m.state {
	case flujosTimeframe:
		return "Esc: volver | Enter: elegir"
	case flujosEdit, flujosDelete:
		return "Esc: cancelar | Enter/Tab: navegar"
	}

	if m.pager.Jumping() {
		return "Enter: ir | Esc: cancelar"
	}

	return "p: período | s: signo | o: origen | n: nuevo | e: editar | x: borrar | [ ] inicio fin: página | g: ir a | Esc: volver"
}

func (m FlujosModel) Init() tea.Cmd {
	return nil
}

func (m FlujosModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		m.table.SetHeight(tableHeight(msg.Height, 14))

		return m, nil

	case TimeframeSelectedMsg:
		m.period = msg
		m.state = flujosBrowse

		f := m.list.Filter()
		f.Desde, f.Hasta = msg.Desde, msg.Hasta
		m.list, cmd = m.list.SetFilter(f)

		return m, cmd

	case listing.FailedMsg:
		if msg.ID != flujosListID {
			return m, nil
		}

		m.feedback, cmd = m.feedback.Failure(msg.Err)

		return m, cmd

	case PageJumpMsg:
		if msg.ID != flujosListID {
			return m, nil
		}

		m.list, cmd = m.list.SetPage(msg.Page)

		return m, cmd

	case flujoSavedMsg:
		m.saving = false

		if msg.err != nil {
			m.feedback, cmd = m.feedback.Failure(msg.err)
			return m, cmd
		}

		var loadCmd tea.Cmd
		m.feedback, cmd = m.feedback.Success(msg.notice)
		m.list, loadCmd = m.list.Reload()

		return m, tea.Batch(cmd, loadCmd)

	case tea.KeyMsg:
		if m.feedback.Blocking() {
			m.feedback = m.feedback.Dismiss()
			return m, nil
		}

		switch {
		case m.state == flujosTimeframe:
			if msg.Type == tea.KeyEsc && m.picker.IsSelecting() {
				if _, loaded := m.list.Result(); loaded {
					m.state = flujosBrowse
					return m, nil
				}

				return m, Back
			}

			m.picker, cmd = m.picker.Update(msg)

			return m, cmd
		case m.state == flujosBrowse && !m.pager.Jumping():
			return m.updateBrowse(msg)
		}

		return m.updateModal(msg)
	}

	var cmds []tea.Cmd

	m.feedback, cmd = m.feedback.Update(msg)
	cmds = append(cmds, cmd)

	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.sync()

	if m.state == flujosTimeframe {
		m.picker, cmd = m.picker.Update(msg)
	} else {
		m, cmd = m.updateModal(msg)
	}

	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m FlujosModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving && isWriteKey(msg) {
		return m, nil
	}

	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		return m, Back
	case "p":
		m.state = flujosTimeframe
		return m, nil
	case "s":
		f := m.list.Filter()
		f.Signo = nextSigno(f.Signo)
		m.list, cmd = m.list.SetFilter(f)

		return m, cmd
	case "o":
		f := m.list.Filter()
		f.OrigenTipo = nextOrigen(f.OrigenTipo)
		m.list, cmd = m.list.SetFilter(f)

		return m, cmd
	case "n":
		m.editForm = newFlujoForm(nil)
		m.state = flujosEdit

		return m, m.editForm.form.Init()
	case "e":
		if f := m.selected(); f != nil {
			m.editForm = newFlujoForm(f)
			m.state = flujosEdit

			return m, m.editForm.form.Init()
		}

		return m, nil
	case "x":
		if f := m.selected(); f != nil {
			m.deleting = f
			m.deleteForm = newConfirm("¿Borrar la proyección?", present.Date(f.Fecha)+" "+present.Money(f.Signed()))
			m.state = flujosDelete

			return m, m.deleteForm.form.Init()
		}

		return m, nil
	case "[":
		m.list, cmd = m.list.PrevPage()
		return m, cmd
	case "]":
		m.list, cmd = m.list.NextPage()
		return m, cmd
	case "home":
		return m, m.pager.First()
	case "end":
		return m, m.pager.Last()
	case "g":
		m.pager, cmd = m.pager.StartJump()
		return m, cmd
	case "r":
		m.list, cmd = m.list.Reload()
		return m, cmd
	}

	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m FlujosModel) updateModal(msg tea.Msg) (FlujosModel, tea.Cmd) {
	var cmd tea.Cmd

	if m.pager.Jumping() {
		m.pager, cmd = m.pager.Update(msg)
		return m, cmd
	}

	switch m.state {
	case flujosEdit:
		if isEsc(msg) {
			m.editForm = nil
			m.state = flujosBrowse

			return m, nil
		}

		var done bool

		m.editForm.form, cmd, done = updateForm(m.editForm.form, msg)
		if !done {
			return m, cmd
		}

		f := m.editForm
		m.editForm = nil
		m.state = flujosBrowse
		m.saving = true

		return m, saveFlujoCmd(m.svc.Flujos, m.settings, f)

	case flujosDelete:
		if isEsc(msg) {
			m.deleteForm, m.deleting = nil, nil
			m.state = flujosBrowse

			return m, nil
		}

		var done bool

		m.deleteForm.form, cmd, done = updateForm(m.deleteForm.form, msg)
		if !done {
			return m, cmd
		}

		ok, f := m.deleteForm.ok, m.deleting
		m.deleteForm, m.deleting = nil, nil
		m.state = flujosBrowse

		if !ok {
			return m, nil
		}

		m.saving = true

		return m, deleteFlujoCmd(m.svc.Flujos, m.settings, f)
	}

	return m, nil
}

func nextSigno(s *flujo.Signo) *flujo.Signo {
	switch {
	case s == nil:
		return new(flujo.SignoIngreso)
	case *s == flujo.SignoIngreso:
		return new(flujo.SignoEgreso)
	}

	return nil
}

func nextOrigen(o *flujo.OrigenTipo) *flujo.OrigenTipo {
	if o == nil {
		return new(flujo.OrigenTipos[0])
	}

	for i, v := range flujo.OrigenTipos {
		if v == *o && i+1 < len(flujo.OrigenTipos) {
			return new(flujo.OrigenTipos[i+1])
		}
	}

	return nil
}

func (m FlujosModel) selected() *flujo.Flujo {
	res, ok := m.list.Result()
	if !ok {
		return nil
	}

	i := m.table.Cursor()
	if i < 0 || i >= len(res.Items) {
		return nil
	}

	return res.Items[i]
}

func (m *FlujosModel) sync() {
	res, ok := m.list.Result()
	if !ok {
		return
	}

	rows := make([]table.Row, len(res.Items))
	for i, f := range res.Items {
		rows[i] = table.Row{
			present.Date(f.Fecha),
			f.Signo.Label(),
			present.Money(f.Signed()),
			f.OrigenTipo.Label(),
			present.Text(f.Descripcion),
		}
	}

	m.table.SetRows(rows)
	m.pager = m.pager.SetMeta(res.Meta)
}

func (m FlujosModel) View() string {
	if m.state == flujosTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(titleStyle.Render("Flujo de fondos") + "\n\n" + m.picker.View())
	}

	var b strings.Builder

	header := titleStyle.Render("Flujo de fondos") + "  " + faintStyle.Render(m.period.Label())

	f := m.list.Filter()
	if f.Signo != nil {
		header += "  " + f.Signo.Label()
	}

	if f.OrigenTipo != nil {
		header += "  " + f.OrigenTipo.Label()
	}

	b.WriteString(header + "\n\n")

	res, loaded := m.list.Result()

	switch {
	case !loaded && m.list.Err() != nil:
		b.WriteString(faintStyle.Render("No se pudo cargar la lista (r para reintentar)") + "\n")
	case !loaded:
		b.WriteString(faintStyle.Render("Cargando proyecciones...") + "\n")
	default:
		body := tableFrame.Render(m.table.View())

		switch m.state {
		case flujosEdit:
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", panelStyle.Render(m.editForm.form.View()))
		case flujosDelete:
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", panelStyle.Render(m.deleteForm.form.View()))
		}

		saldo := flujo.Balance(res.Items)
		style := lipgloss.NewStyle().Foreground(successColor)

		if saldo.IsNegative() {
			style = style.Foreground(errorColor)
		}

		b.WriteString(body + "\n")
		b.WriteString("Saldo de la página: " + style.Render(present.Money(saldo)) + "\n")
		b.WriteString(m.pager.View() + "\n")
	}

	if m.feedback.Visible() {
		b.WriteString("\n" + m.feedback.View())
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

// Messages

type flujoSavedMsg struct {
	notice string
	err    error
}

func saveFlujoCmd(svc *flujo.Service, settings Settings, f *flujoForm) tea.Cmd {
	return func() tea.Msg {
		p, err := f.params()
		if err != nil {
			return flujoSavedMsg{err: err}
		}

		ctx, cancel := apiCtx(settings.Timeout)
		defer cancel()

		if f.current == nil {
			if _, err := svc.Create(ctx, p); err != nil {
				return flujoSavedMsg{err: err}
			}

			return flujoSavedMsg{notice: "Proyección creada"}
		}

		if _, err := svc.Update(ctx, f.current.ID, p); err != nil {
			return flujoSavedMsg{err: err}
		}

		return flujoSavedMsg{notice: "Proyección actualizada"}
	}
}

func deleteFlujoCmd(svc *flujo.Service, settings Settings, f *flujo.Flujo) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx(settings.Timeout)
		defer cancel()

		if err := svc.Delete(ctx, f.ID); err != nil {
			return flujoSavedMsg{err: err}
		}

		return flujoSavedMsg{notice: "Proyección borrada"}
	}
}
