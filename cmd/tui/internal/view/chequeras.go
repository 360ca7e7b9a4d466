package view

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/listing"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
	"github.com/MrJamesThe3rd/tesoreria/internal/present"
)

type chequerasState int

const (
	chequerasBrowse chequerasState = iota
	chequerasSearch
	chequerasEdit
	chequerasDelete
	chequerasDetail
)

const chequerasListID = "chequeras"

type chequerasList = listing.Controller[chequera.ListFilter, *chequera.ListResult]

type ChequerasModel struct {
	CommonModel
	svc      Services
	settings Settings

	state    chequerasState
	list     chequerasList
	table    table.Model
	search   textinput.Model
	pager    Pager
	feedback Feedback

	cuentas []*lookup.Cuenta

	// toggling holds the optimistic estado of checkbooks whose toggle is
	// in flight, keyed by id.
	toggling map[int64]chequera.Estado

	editForm   *chequeraForm
	deleteForm *confirmForm
	deleting   *chequera.Chequera
	detail     ChequeraDetailModel

	saving bool

	initCmd tea.Cmd
}

func NewChequerasModel(svc Services, settings Settings) ChequerasModel {
	fetch := func(ctx context.Context, q listing.Query[chequera.ListFilter]) (*chequera.ListResult, error) {
		return svc.Chequeras.List(ctx, chequera.ListQuery{Page: q.Page, Limit: q.Limit, Q: q.Text, ListFilter: q.Filter})
	}

	list, load := listing.New(chequerasListID, fetch, chequera.ListFilter{}, settings.listOptions()).Reload()

	search := textinput.New()
	search.Prompt = "Buscar: "
	search.Placeholder = "descripción o cuenta"
	search.Width = 40

	return ChequerasModel{
		svc:      svc,
		settings: settings,
		list:     list,
		table: newTable([]table.Column{
			{Title: "Descripción", Width: 22},
			{Title: "Banco", Width: 16},
			{Title: "Cuenta", Width: 14},
			{Title: "Rango", Width: 13},
			{Title: "Próximo", Width: 8},
			{Title: "Uso", Width: 8},
			{Title: "Estado", Width: 10},
		}, 12),
		search:   search,
		pager:    NewPager(chequerasListID),
		toggling: map[int64]chequera.Estado{},
		initCmd:  tea.Batch(load, loadCuentasCmd(svc.Lookups, settings)),
	}
}

func (m ChequerasModel) Title() string { return "Chequeras" }

func (m ChequerasModel) ShortHelp() string {
	switch m.state {
	case chequerasDetail:
		return m.detail.ShortHelp()
	case chequerasSearch:
		return "Enter/Esc: terminar búsqueda"
	case chequerasEdit, chequerasDelete:
		return "Esc: cancelar | Enter/Tab: navegar"
	}

	if m.pager.Jumping() {
		return "Enter: ir | Esc: cancelar"
	}

	return "Enter: cheques | t: bloquear/activar | s: estado | /: buscar | n: nueva | e: editar | x: borrar | [ ] inicio fin: página | g: ir a | Esc: volver"
}

func (m ChequerasModel) Init() tea.Cmd {
	return m.initCmd
}

func (m ChequerasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Write results land here even with the detail open.
	switch msg := msg.(type) {
	case chequeraToggledMsg:
		delete(m.toggling, msg.id)
		m.sync()

		if msg.err != nil {
			// The optimistic estado is gone; the row shows the last
			// confirmed one again.
			m.feedback, cmd = m.feedback.Failure(msg.err)
			return m, cmd
		}

		return m.afterWrite(nil, fmt.Sprintf("Chequera %s", strings.ToLower(msg.estado.Label())))

	case chequeraSavedMsg:
		m.saving = false
		return m.afterWrite(msg.err, msg.notice)

	case chequeraDeletedMsg:
		m.saving = false
		return m.afterWrite(msg.err, msg.notice)
	}

	if m.state == chequerasDetail {
		switch msg := msg.(type) {
		case detailClosedMsg:
			m.state = chequerasBrowse
			m.list, cmd = m.list.Reload()

			return m, cmd
		case tea.WindowSizeMsg:
			m.resize(msg)
			m.table.SetHeight(tableHeight(msg.Height, 14))
		case tea.KeyMsg:
			if m.feedback.Blocking() {
				m.feedback = m.feedback.Dismiss()
				return m, nil
			}
		}

		// The page list and its toast keep receiving their own messages
		// underneath.
		var listCmd tea.Cmd
		m.feedback, _ = m.feedback.Update(msg)
		m.list, listCmd = m.list.Update(msg)
		m.sync()

		m.detail, cmd = m.detail.Update(msg)

		return m, tea.Batch(cmd, listCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		m.table.SetHeight(tableHeight(msg.Height, 14))

		return m, nil

	case cuentasLoadedMsg:
		if msg.err != nil {
			slog.Warn("failed to load cuentas", "error", msg.err)
			return m, nil
		}

		m.cuentas = msg.cuentas

		return m, nil

	case listing.FailedMsg:
		if msg.ID != chequerasListID {
			return m, nil
		}

		m.feedback, cmd = m.feedback.Failure(msg.Err)

		return m, cmd

	case PageJumpMsg:
		if msg.ID != chequerasListID {
			return m, nil
		}

		m.list, cmd = m.list.SetPage(msg.Page)

		return m, cmd

	case tea.KeyMsg:
		if m.feedback.Blocking() {
			m.feedback = m.feedback.Dismiss()
			return m, nil
		}

		if m.pager.Jumping() || m.state != chequerasBrowse {
			return m.updateModal(msg)
		}

		return m.updateBrowse(msg)
	}

	var cmds []tea.Cmd

	m.feedback, cmd = m.feedback.Update(msg)
	cmds = append(cmds, cmd)

	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.sync()

	m, cmd = m.updateModal(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m ChequerasModel) afterWrite(err error, notice string) (tea.Model, tea.Cmd) {
	if err != nil {
		var cmd tea.Cmd
		m.feedback, cmd = m.feedback.Failure(err)

		return m, cmd
	}

	var fbCmd, loadCmd tea.Cmd
	m.feedback, fbCmd = m.feedback.Success(notice)
	m.list, loadCmd = m.list.Reload()

	return m, tea.Batch(fbCmd, loadCmd)
}

func (m ChequerasModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving && isWriteKey(msg) {
		return m, nil
	}

	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		return m, Back
	case "/":
		m.state = chequerasSearch
		return m, m.search.Focus()
	case "enter":
		if ch := m.selected(); ch != nil {
			m.detail, cmd = NewChequeraDetailModel(ch, m.svc, m.settings, m.Height)
			m.state = chequerasDetail

			return m, cmd
		}

		return m, nil
	case "t":
		return m.toggle()
	case "s":
		f := m.list.Filter()
		f.Estado = nextChequeraEstado(f.Estado)
		m.list, cmd = m.list.SetFilter(f)

		return m, cmd
	case "n":
		m.editForm = newChequeraForm(nil, m.cuentas)
		m.state = chequerasEdit

		return m, m.editForm.form.Init()
	case "e":
		if ch := m.selected(); ch != nil {
			m.editForm = newChequeraForm(ch, m.cuentas)
			m.state = chequerasEdit

			return m, m.editForm.form.Init()
		}

		return m, nil
	case "x":
		if ch := m.selected(); ch != nil {
			m.deleting = ch
			m.deleteForm = newConfirm(fmt.Sprintf("¿Borrar la chequera %s?", present.Text(ch.Descripcion)), ch.BancoNombre+" "+ch.CuentaNumero)
			m.state = chequerasDelete

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

// toggle flips the selected checkbook on screen right away and sends the
// change. A failure puts the previous estado back.
func (m ChequerasModel) toggle() (tea.Model, tea.Cmd) {
	ch := m.selected()
	if ch == nil {
		return m, nil
	}

	if _, busy := m.toggling[ch.ID]; busy {
		return m, nil
	}

	next, err := chequera.NextToggle(ch.Estado)
	if err != nil {
		var cmd tea.Cmd
		m.feedback, cmd = m.feedback.Failure(err)

		return m, cmd
	}

	m.toggling[ch.ID] = next
	m.sync()

	svc, timeout := m.svc.Chequeras, m.settings.Timeout
	current := *ch

	return m, func() tea.Msg {
		ctx, cancel := apiCtx(timeout)
		defer cancel()

		updated, err := svc.Toggle(ctx, &current)
		if err != nil {
			slog.Warn("chequera toggle failed", "chequera", current.ID, "error", err)
			return chequeraToggledMsg{id: current.ID, err: err}
		}

		return chequeraToggledMsg{id: current.ID, estado: updated.Estado}
	}
}

func nextChequeraEstado(e *chequera.Estado) *chequera.Estado {
	if e == nil {
		return new(chequera.Estados[0])
	}

	for i, s := range chequera.Estados {
		if s == *e && i+1 < len(chequera.Estados) {
			return new(chequera.Estados[i+1])
		}
	}

	return nil
}

func (m ChequerasModel) updateModal(msg tea.Msg) (ChequerasModel, tea.Cmd) {
	var cmd tea.Cmd

	if m.pager.Jumping() {
		m.pager, cmd = m.pager.Update(msg)
		return m, cmd
	}

	switch m.state {
	case chequerasSearch:
		if key, ok := msg.(tea.KeyMsg); ok && (key.Type == tea.KeyEnter || key.Type == tea.KeyEsc) {
			m.search.Blur()
			m.state = chequerasBrowse

			return m, nil
		}

		var listCmd tea.Cmd
		m.search, cmd = m.search.Update(msg)

		if m.search.Value() != m.list.Text() {
			m.list, listCmd = m.list.SetText(m.search.Value())
		}

		return m, tea.Batch(cmd, listCmd)

	case chequerasEdit:
		if isEsc(msg) {
			m.editForm = nil
			m.state = chequerasBrowse

			return m, nil
		}

		var done bool

		m.editForm.form, cmd, done = updateForm(m.editForm.form, msg)
		if !done {
			return m, cmd
		}

		f := m.editForm
		m.editForm = nil
		m.state = chequerasBrowse
		m.saving = true

		return m, saveChequeraCmd(m.svc.Chequeras, m.settings, f)

	case chequerasDelete:
		if isEsc(msg) {
			m.deleteForm, m.deleting = nil, nil
			m.state = chequerasBrowse

			return m, nil
		}

		var done bool

		m.deleteForm.form, cmd, done = updateForm(m.deleteForm.form, msg)
		if !done {
			return m, cmd
		}

		ok, ch := m.deleteForm.ok, m.deleting
		m.deleteForm, m.deleting = nil, nil
		m.state = chequerasBrowse

		if !ok {
			return m, nil
		}

		m.saving = true

		return m, deleteChequeraCmd(m.svc.Chequeras, m.settings, ch)
	}

	return m, nil
}

func (m ChequerasModel) selected() *chequera.Chequera {
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

// estado is what the row shows: the optimistic value while a toggle is in
// flight, the confirmed one otherwise.
func (m ChequerasModel) estado(ch *chequera.Chequera) chequera.Estado {
	if e, ok := m.toggling[ch.ID]; ok {
		return e
	}

	return ch.Estado
}

func (m *ChequerasModel) sync() {
	res, ok := m.list.Result()
	if !ok {
		return
	}

	rows := make([]table.Row, len(res.Items))
	for i, ch := range res.Items {
		rows[i] = table.Row{
			present.Text(ch.Descripcion),
			present.Text(ch.BancoNombre),
			present.Text(ch.CuentaNumero),
			fmt.Sprintf("%d-%d", ch.NroDesde, ch.NroHasta),
			fmt.Sprintf("%d", ch.ProximoNro),
			present.Percent(ch.PorcentajeUso),
			m.estado(ch).Label(),
		}
	}

	m.table.SetRows(rows)
	m.pager = m.pager.SetMeta(res.Meta)
}

func (m ChequerasModel) View() string {
	if m.state == chequerasDetail {
		body := m.detail.View()
		if m.feedback.Visible() {
			body += "\n" + m.feedback.View()
		}

		return lipgloss.NewStyle().Padding(1).Render(body)
	}

	var b strings.Builder

	header := titleStyle.Render("Chequeras")
	if e := m.list.Filter().Estado; e != nil {
		header += "  " + chequeraBadge(*e)
	}

	b.WriteString(header + "\n")
	b.WriteString(m.search.View() + "\n\n")

	_, loaded := m.list.Result()

	switch {
	case !loaded && m.list.Err() != nil:
		b.WriteString(faintStyle.Render("No se pudo cargar la lista (r para reintentar)") + "\n")
	case !loaded:
		b.WriteString(faintStyle.Render("Cargando chequeras...") + "\n")
	default:
		body := tableFrame.Render(m.table.View())

		switch m.state {
		case chequerasEdit:
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", panelStyle.Render(m.editForm.form.View()))
		case chequerasDelete:
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", panelStyle.Render(m.deleteForm.form.View()))
		}

		b.WriteString(body + "\n" + m.pager.View() + "\n")
	}

	if m.feedback.Visible() {
		b.WriteString("\n" + m.feedback.View())
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

// Messages

type cuentasLoadedMsg struct {
	cuentas []*lookup.Cuenta
	err     error
}

func loadCuentasCmd(svc *lookup.Service, settings Settings) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx(settings.Timeout)
		defer cancel()

		cuentas, err := svc.Cuentas(ctx, nil)

		return cuentasLoadedMsg{cuentas: cuentas, err: err}
	}
}

type chequeraToggledMsg struct {
	id     int64
	estado chequera.Estado
	err    error
}

type chequeraSavedMsg struct {
	notice string
	err    error
}

func saveChequeraCmd(svc *chequera.Service, settings Settings, f *chequeraForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx(settings.Timeout)
		defer cancel()

		if f.current == nil {
			ch, err := svc.Create(ctx, f.createParams())
			if err != nil {
				return chequeraSavedMsg{err: err}
			}

			return chequeraSavedMsg{notice: fmt.Sprintf("Chequera %s creada", present.Text(ch.Descripcion))}
		}

		ch, err := svc.Update(ctx, f.current, f.updateParams())
		if err != nil {
			return chequeraSavedMsg{err: err}
		}

		return chequeraSavedMsg{notice: fmt.Sprintf("Chequera %s actualizada", present.Text(ch.Descripcion))}
	}
}

type chequeraDeletedMsg struct {
	notice string
	err    error
}

func deleteChequeraCmd(svc *chequera.Service, settings Settings, ch *chequera.Chequera) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx(settings.Timeout)
		defer cancel()

		if err := svc.Delete(ctx, ch.ID); err != nil {
			return chequeraDeletedMsg{err: err}
		}

		return chequeraDeletedMsg{notice: "Chequera borrada"}
	}
}
