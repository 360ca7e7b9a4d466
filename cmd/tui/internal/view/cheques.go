package view

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/listing"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
	"github.com/MrJamesThe3rd/tesoreria/internal/present"
)

type chequesState int

const (
	chequesBrowse chequesState = iota
	chequesSearch
	chequesFilter
	chequesCard
	chequesEdit
	chequesDelete
)

const chequesListID = "cheques"

// chequesCapabilities is what the main cheques page may do to a cheque.
var chequesCapabilities = cheque.AllActions

type chequesList = listing.Controller[cheque.ListFilter, *cheque.ListResult]

type ChequesModel struct {
	CommonModel
	svc      Services
	settings Settings

	state    chequesState
	list     chequesList
	table    table.Model
	search   textinput.Model
	pager    Pager
	spinner  spinner.Model
	feedback Feedback

	bancos     []*lookup.Banco
	bancoNames map[int64]string

	filterForm  *chequeFilterForm
	editForm    *chequeForm
	deleteForm  *confirmForm
	deleting    *cheque.Cheque
	card        ChequeCard
	transitions transitioner

	// saving is set while a create, update or delete is in flight.
	saving bool

	initCmd tea.Cmd
}

func NewChequesModel(svc Services, settings Settings) ChequesModel {
	fetch := func(ctx context.Context, q listing.Query[cheque.ListFilter]) (*cheque.ListResult, error) {
		return svc.Cheques.List(ctx, cheque.ListQuery{Page: q.Page, Limit: q.Limit, Q: q.Text, ListFilter: q.Filter})
	}

	list, load := listing.New(chequesListID, fetch, cheque.ListFilter{OrderBy: "created_at", OrderDir: "DESC"}, settings.listOptions()).Reload()

	search := textinput.New()
	search.Prompt = "Buscar: "
	search.Placeholder = "número, beneficiario u observaciones"
	search.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = activeStyle

	return ChequesModel{
		svc:      svc,
		settings: settings,
		list:     list,
		table: newTable([]table.Column{
			{Title: "Número", Width: 10},
			{Title: "Tipo", Width: 9},
			{Title: "Monto", Width: 16},
			{Title: "Estado", Width: 17},
			{Title: "Cobro", Width: 10},
			{Title: "Banco", Width: 16},
			{Title: "Beneficiario", Width: 24},
		}, 12),
		search:      search,
		pager:       NewPager(chequesListID),
		spinner:     sp,
		bancoNames:  map[int64]string{},
		transitions: newTransitioner(svc.Cheques, settings.Timeout),
		initCmd:     tea.Batch(load, loadBancosCmd(svc.Lookups, settings)),
	}
}

func (m ChequesModel) Title() string { return "Cheques" }

func (m ChequesModel) ShortHelp() string {
	switch m.state {
	case chequesSearch:
		return "Enter/Esc: terminar búsqueda"
	case chequesCard:
		return "←/→: acción | Enter: ejecutar | Esc: cerrar"
	case chequesFilter, chequesEdit, chequesDelete:
		return "Esc: cancelar | Enter/Tab: navegar"
	}

	if m.pager.Jumping() {
		return "Enter: ir | Esc: cancelar"
	}

	return "Enter: ver | /: buscar | f: filtros | n: nuevo | e: editar | x: borrar | [ ] inicio fin: página | g: ir a | r: recargar | Esc: volver"
}

func (m ChequesModel) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.spinner.Tick)
}

func (m ChequesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		m.table.SetHeight(tableHeight(msg.Height, 20))

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case bancosLoadedMsg:
		if msg.err != nil {
			slog.Warn("failed to load bancos", "error", msg.err)
			return m, nil
		}

		m.bancos = msg.bancos
		m.bancoNames = lookup.BancoNames(msg.bancos)
		m.sync()

		return m, nil

	case listing.FailedMsg:
		if msg.ID != chequesListID {
			return m, nil
		}

		var cmd tea.Cmd
		m.feedback, cmd = m.feedback.Failure(msg.Err)

		return m, cmd

	case PageJumpMsg:
		if msg.ID != chequesListID {
			return m, nil
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.SetPage(msg.Page)

		return m, cmd

	case TransitionRequestedMsg:
		var cmd tea.Cmd
		m.transitions, cmd = m.transitions.Open(msg)

		return m, cmd

	case TransitionDoneMsg:
		m.transitions = m.transitions.Done()
		return m.afterWrite(msg.Err, transitionNotice(msg))

	case chequeSavedMsg:
		m.saving = false
		return m.afterWrite(msg.err, msg.notice)

	case chequeDeletedMsg:
		m.saving = false
		return m.afterWrite(msg.err, msg.notice)

	case tea.KeyMsg:
		if m.feedback.Blocking() {
			m.feedback = m.feedback.Dismiss()
			return m, nil
		}

		return m.updateKey(msg)
	}

	var cmds []tea.Cmd

	var cmd tea.Cmd
	m.feedback, cmd = m.feedback.Update(msg)
	cmds = append(cmds, cmd)

	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.sync()

	// Open modals advance on their own internal messages.
	m, cmd = m.updateModal(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// afterWrite reports a write and re-fetches the list on success; the state
// on screen never changes before the backend confirms it.
func (m ChequesModel) afterWrite(err error, notice string) (tea.Model, tea.Cmd) {
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

func (m ChequesModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.transitions.Active() || m.pager.Jumping() {
		return m.updateModal(msg)
	}

	switch m.state {
	case chequesBrowse:
		return m.updateBrowse(msg)
	case chequesCard:
		return m.updateCard(msg)
	}

	return m.updateModal(msg)
}

func (m ChequesModel) busy() bool {
	return m.saving || m.transitions.Busy()
}

// updateModal routes msg to whichever modal or input owns the keyboard.
func (m ChequesModel) updateModal(msg tea.Msg) (ChequesModel, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case m.transitions.Active():
		m.transitions, cmd = m.transitions.Update(msg)
		return m, cmd
	case m.pager.Jumping():
		m.pager, cmd = m.pager.Update(msg)
		return m, cmd
	}

	switch m.state {
	case chequesSearch:
		return m.updateSearch(msg)
	case chequesFilter:
		return m.updateFilter(msg)
	case chequesEdit:
		return m.updateEdit(msg)
	case chequesDelete:
		return m.updateDelete(msg)
	}

	return m, nil
}

func isEsc(msg tea.Msg) bool {
	key, ok := msg.(tea.KeyMsg)
	return ok && key.Type == tea.KeyEsc
}

// isWriteKey reports the browse keys that open a form ending in a write.
func isWriteKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "n", "e", "x":
		return true
	}

	return false
}

func (m ChequesModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy() && isWriteKey(msg) {
		return m, nil
	}

	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		return m, Back
	case "/":
		m.state = chequesSearch
		return m, m.search.Focus()
	case "f":
		m.filterForm = newChequeFilterForm(m.list.Filter(), m.bancos)
		m.state = chequesFilter

		return m, m.filterForm.form.Init()
	case "enter":
		if c := m.selected(); c != nil {
			m.card = NewChequeCard(c, chequesCapabilities, m.bancoNames)
			m.state = chequesCard
		}

		return m, nil
	case "n":
		m.editForm = newChequeForm(nil, m.bancos)
		m.state = chequesEdit

		return m, m.editForm.form.Init()
	case "e":
		if c := m.selected(); c != nil {
			m.editForm = newChequeForm(c, m.bancos)
			m.state = chequesEdit

			return m, m.editForm.form.Init()
		}

		return m, nil
	case "x":
		if c := m.selected(); c != nil {
			m.deleting = c
			m.deleteForm = newConfirm(fmt.Sprintf("¿Borrar el cheque %s?", c.Numero), present.Money(c.Monto))
			m.state = chequesDelete

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

func (m ChequesModel) updateSearch(msg tea.Msg) (ChequesModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && (key.Type == tea.KeyEnter || key.Type == tea.KeyEsc) {
		m.search.Blur()
		m.state = chequesBrowse

		return m, nil
	}

	var searchCmd, listCmd tea.Cmd
	m.search, searchCmd = m.search.Update(msg)

	if m.search.Value() != m.list.Text() {
		m.list, listCmd = m.list.SetText(m.search.Value())
	}

	return m, tea.Batch(searchCmd, listCmd)
}

func (m ChequesModel) updateFilter(msg tea.Msg) (ChequesModel, tea.Cmd) {
	if isEsc(msg) {
		m.filterForm = nil
		m.state = chequesBrowse

		return m, nil
	}

	var (
		cmd  tea.Cmd
		done bool
	)

	m.filterForm.form, cmd, done = updateForm(m.filterForm.form, msg)
	if !done {
		return m, cmd
	}

	f, err := m.filterForm.filter()
	m.filterForm = nil
	m.state = chequesBrowse

	if err != nil {
		m.feedback, cmd = m.feedback.Failure(err)
		return m, cmd
	}

	m.list, cmd = m.list.SetFilter(f)

	return m, cmd
}

func (m ChequesModel) updateCard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.state = chequesBrowse
		return m, nil
	case msg.Type == tea.KeyEnter && m.transitions.Busy():
		return m, nil
	}

	var cmd tea.Cmd
	m.card, cmd = m.card.Update(msg)

	return m, cmd
}

func (m ChequesModel) updateEdit(msg tea.Msg) (ChequesModel, tea.Cmd) {
	if isEsc(msg) {
		m.editForm = nil
		m.state = chequesBrowse

		return m, nil
	}

	var (
		cmd  tea.Cmd
		done bool
	)

	m.editForm.form, cmd, done = updateForm(m.editForm.form, msg)
	if !done {
		return m, cmd
	}

	f := m.editForm
	m.editForm = nil
	m.state = chequesBrowse
	m.saving = true

	return m, saveChequeCmd(m.svc.Cheques, m.settings, f)
}

func (m ChequesModel) updateDelete(msg tea.Msg) (ChequesModel, tea.Cmd) {
	if isEsc(msg) {
		m.deleteForm = nil
		m.state = chequesBrowse

		return m, nil
	}

	var (
		cmd  tea.Cmd
		done bool
	)

	m.deleteForm.form, cmd, done = updateForm(m.deleteForm.form, msg)
	if !done {
		return m, cmd
	}

	ok, c := m.deleteForm.ok, m.deleting
	m.deleteForm, m.deleting = nil, nil
	m.state = chequesBrowse

	if !ok {
		return m, nil
	}

	m.saving = true

	return m, deleteChequeCmd(m.svc.Cheques, m.settings, c)
}

func (m ChequesModel) selected() *cheque.Cheque {
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

// sync copies the accepted result into the table, pager and open card.
func (m *ChequesModel) sync() {
	res, ok := m.list.Result()
	if !ok {
		return
	}

	m.table.SetRows(chequeRows(res.Items, m.bancoNames))
	m.pager = m.pager.SetMeta(res.Meta)

	if m.state != chequesCard {
		return
	}

	m.card.bancos = m.bancoNames

	if c := findCheque(res.Items, m.card.Cheque().ID); c != nil {
		m.card = m.card.WithCheque(c)
	} else {
		m.state = chequesBrowse
	}
}

func chequeRows(items []*cheque.Cheque, bancos map[int64]string) []table.Row {
	rows := make([]table.Row, len(items))

	for i, c := range items {
		rows[i] = table.Row{
			c.Numero,
			c.Tipo.Label(),
			present.Money(c.Monto),
			c.Estado.Label(),
			present.Date(c.FechaCobroPrevista),
			present.Ref(bancos, c.BancoID),
			present.Text(c.BeneficiarioNombre),
		}
	}

	return rows
}

func findCheque(items []*cheque.Cheque, id int64) *cheque.Cheque {
	for _, c := range items {
		if c.ID == id {
			return c
		}
	}

	return nil
}

func (m ChequesModel) View() string {
	var b strings.Builder

	header := titleStyle.Render("Cheques")
	if m.list.Loading() || m.busy() {
		header += " " + m.spinner.View()
	}

	if s := describeChequeFilter(m.list.Filter(), m.bancoNames); s != "" {
		header += "  " + faintStyle.Render(s)
	}

	b.WriteString(header + "\n")
	b.WriteString(m.search.View() + "\n\n")

	res, loaded := m.list.Result()

	switch {
	case !loaded && m.list.Err() != nil:
		b.WriteString(faintStyle.Render("No se pudo cargar la lista (r para reintentar)") + "\n")
	case !loaded:
		b.WriteString(faintStyle.Render("Cargando cheques...") + "\n")
	default:
		b.WriteString(kpiBar(cheque.Summarize(res.Resumen)) + "\n")

		body := tableFrame.Render(m.table.View())

		switch {
		case m.transitions.Active():
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.transitions.View())
		case m.state == chequesCard:
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.card.View())
		case m.state == chequesFilter:
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", panelStyle.Render(m.filterForm.form.View()))
		case m.state == chequesEdit:
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", panelStyle.Render(m.editForm.form.View()))
		case m.state == chequesDelete:
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", panelStyle.Render(m.deleteForm.form.View()))
		}

		b.WriteString(body + "\n")
		b.WriteString(m.pager.View() + "\n")
	}

	if m.feedback.Visible() {
		b.WriteString("\n" + m.feedback.View())
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

// describeChequeFilter is the one-line summary of the active filters.
func describeChequeFilter(f cheque.ListFilter, bancos map[int64]string) string {
	var parts []string

	if f.Tipo != nil {
		parts = append(parts, f.Tipo.Label())
	}

	if len(f.Estados) > 0 {
		labels := make([]string, len(f.Estados))
		for i, e := range f.Estados {
			labels[i] = e.Label()
		}

		parts = append(parts, strings.Join(labels, "/"))
	}

	if f.BancoID != nil {
		parts = append(parts, present.Ref(bancos, f.BancoID))
	}

	if f.PrevistaDesde != nil || f.PrevistaHasta != nil {
		desde, hasta := "…", "…"
		if f.PrevistaDesde != nil {
			desde = present.Date(*f.PrevistaDesde)
		}

		if f.PrevistaHasta != nil {
			hasta = present.Date(*f.PrevistaHasta)
		}

		parts = append(parts, "cobro "+desde+" a "+hasta)
	}

	return strings.Join(parts, " · ")
}

// Messages

type bancosLoadedMsg struct {
	bancos []*lookup.Banco
	err    error
}

func loadBancosCmd(svc *lookup.Service, settings Settings) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx(settings.Timeout)
		defer cancel()

		bancos, err := svc.Bancos(ctx)

		return bancosLoadedMsg{bancos: bancos, err: err}
	}
}

type chequeSavedMsg struct {
	notice string
	err    error
}

func saveChequeCmd(svc *cheque.Service, settings Settings, f *chequeForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx(settings.Timeout)
		defer cancel()

		if f.current == nil {
			params, err := f.createParams()
			if err != nil {
				return chequeSavedMsg{err: err}
			}

			c, err := svc.Create(ctx, params)
			if err != nil {
				return chequeSavedMsg{err: err}
			}

			return chequeSavedMsg{notice: fmt.Sprintf("Cheque %s creado", c.Numero)}
		}

		params, err := f.updateParams()
		if err != nil {
			return chequeSavedMsg{err: err}
		}

		c, err := svc.Update(ctx, f.current.ID, params)
		if err != nil {
			return chequeSavedMsg{err: err}
		}

		return chequeSavedMsg{notice: fmt.Sprintf("Cheque %s actualizado", c.Numero)}
	}
}

type chequeDeletedMsg struct {
	notice string
	err    error
}

func deleteChequeCmd(svc *cheque.Service, settings Settings, c *cheque.Cheque) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx(settings.Timeout)
		defer cancel()

		if err := svc.Delete(ctx, c.ID); err != nil {
			return chequeDeletedMsg{err: err}
		}

		return chequeDeletedMsg{notice: fmt.Sprintf("Cheque %s borrado", c.Numero)}
	}
}
