package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/listing"
	"github.com/MrJamesThe3rd/tesoreria/internal/present"
)

const chequeraChequesListID = "chequera-cheques"

// chequeraCapabilities narrows the card actions on a checkbook's cheques to
// the ones that concern issued paper.
var chequeraCapabilities = cheque.NewActionSet(
	cheque.ActionEntregar,
	cheque.ActionCompensar,
	cheque.ActionAnular,
)

type detailClosedMsg struct{}

type chequeraChequesList = listing.Controller[chequera.ChequesFilter, *chequera.ChequesResult]

// ChequeraDetailModel is the cheques sub-list of one checkbook.
type ChequeraDetailModel struct {
	chequera *chequera.Chequera
	svc      Services
	settings Settings

	list        chequeraChequesList
	table       table.Model
	pager       Pager
	feedback    Feedback
	filterForm  *chequeraChequesFilterForm
	card        *ChequeCard
	transitions transitioner
}

func NewChequeraDetailModel(ch *chequera.Chequera, svc Services, settings Settings, height int) (ChequeraDetailModel, tea.Cmd) {
	id := ch.ID
	fetch := func(ctx context.Context, q listing.Query[chequera.ChequesFilter]) (*chequera.ChequesResult, error) {
		return svc.Chequeras.ListCheques(ctx, id, chequera.ChequesQuery{Page: q.Page, Limit: q.Limit, Q: q.Text, ChequesFilter: q.Filter})
	}

	filter := chequera.ChequesFilter{FechaCampo: chequera.FechaEmision, OrderBy: "numero", OrderDir: "ASC"}
	list, load := listing.New(chequeraChequesListID, fetch, filter, settings.listOptions()).Reload()

	return ChequeraDetailModel{
		chequera: ch,
		svc:      svc,
		settings: settings,
		list:     list,
		table: newTable([]table.Column{
			{Title: "Número", Width: 10},
			{Title: "Monto", Width: 16},
			{Title: "Estado", Width: 17},
			{Title: "Emisión", Width: 10},
			{Title: "Vencimiento", Width: 11},
			{Title: "Beneficiario", Width: 24},
		}, tableHeight(height, 22)),
		pager:       NewPager(chequeraChequesListID),
		transitions: newTransitioner(svc.Cheques, settings.Timeout),
	}, load
}

func (m ChequeraDetailModel) ShortHelp() string {
	switch {
	case m.transitions.Active(), m.filterForm != nil:
		return "Esc: cancelar | Enter/Tab: navegar"
	case m.card != nil:
		return "←/→: acción | Enter: ejecutar | Esc: cerrar"
	case m.pager.Jumping():
		return "Enter: ir | Esc: cancelar"
	}

	return "Enter: ver | f: filtros | c: campo de fecha | [ ] inicio fin: página | g: ir a | Esc: volver"
}

func (m ChequeraDetailModel) Update(msg tea.Msg) (ChequeraDetailModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(tableHeight(msg.Height, 22))
		return m, nil

	case listing.FailedMsg:
		if msg.ID != chequeraChequesListID {
			return m, nil
		}

		m.feedback, cmd = m.feedback.Failure(msg.Err)

		return m, cmd

	case PageJumpMsg:
		if msg.ID != chequeraChequesListID {
			return m, nil
		}

		m.list, cmd = m.list.SetPage(msg.Page)

		return m, cmd

	case TransitionRequestedMsg:
		m.transitions, cmd = m.transitions.Open(msg)
		return m, cmd

	case TransitionDoneMsg:
		m.transitions = m.transitions.Done()

		if msg.Err != nil {
			m.feedback, cmd = m.feedback.Failure(msg.Err)
			return m, cmd
		}

		var loadCmd tea.Cmd
		m.feedback, cmd = m.feedback.Success(transitionNotice(msg))
		m.list, loadCmd = m.list.Reload()

		return m, tea.Batch(cmd, loadCmd)

	case tea.KeyMsg:
		if m.feedback.Blocking() {
			m.feedback = m.feedback.Dismiss()
			return m, nil
		}

		return m.updateKey(msg)
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

func (m ChequeraDetailModel) updateKey(msg tea.KeyMsg) (ChequeraDetailModel, tea.Cmd) {
	if m.transitions.Active() || m.pager.Jumping() || m.filterForm != nil {
		return m.updateModal(msg)
	}

	var cmd tea.Cmd

	if m.card != nil {
		switch {
		case msg.Type == tea.KeyEsc:
			m.card = nil
			return m, nil
		case msg.Type == tea.KeyEnter && m.transitions.Busy():
			return m, nil
		}

		var card ChequeCard
		card, cmd = m.card.Update(msg)
		m.card = &card

		return m, cmd
	}

	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return detailClosedMsg{} }
	case "enter":
		if c := m.selected(); c != nil {
			card := NewChequeCard(c, chequeraCapabilities, nil)
			m.card = &card
		}

		return m, nil
	case "f":
		m.filterForm = newChequeraChequesFilterForm(m.list.Filter())
		return m, m.filterForm.form.Init()
	case "c":
		f := m.list.Filter()
		f.FechaCampo = nextFechaCampo(f.FechaCampo)
		m.list, cmd = m.list.SetFilter(f)

		return m, cmd
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
	}

	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ChequeraDetailModel) updateModal(msg tea.Msg) (ChequeraDetailModel, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case m.transitions.Active():
		m.transitions, cmd = m.transitions.Update(msg)
		return m, cmd
	case m.pager.Jumping():
		m.pager, cmd = m.pager.Update(msg)
		return m, cmd
	case m.filterForm == nil:
		return m, nil
	}

	if isEsc(msg) {
		m.filterForm = nil
		return m, nil
	}

	var done bool

	m.filterForm.form, cmd, done = updateForm(m.filterForm.form, msg)
	if !done {
		return m, cmd
	}

	f, err := m.filterForm.filter()
	m.filterForm = nil

	if err != nil {
		m.feedback, cmd = m.feedback.Failure(err)
		return m, cmd
	}

	m.list, cmd = m.list.SetFilter(f)

	return m, cmd
}

func nextFechaCampo(f chequera.FechaCampo) chequera.FechaCampo {
	for i, c := range fechaCampos {
		if c == f {
			return fechaCampos[(i+1)%len(fechaCampos)]
		}
	}

	return fechaCampos[0]
}

func (m ChequeraDetailModel) selected() *cheque.Cheque {
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

func (m *ChequeraDetailModel) sync() {
	res, ok := m.list.Result()
	if !ok {
		return
	}

	// The envelope carries a fresher header than the row we opened.
	if res.Chequera != nil {
		m.chequera = res.Chequera
	}

	rows := make([]table.Row, len(res.Items))
	for i, c := range res.Items {
		rows[i] = table.Row{
			c.Numero,
			present.Money(c.Monto),
			c.Estado.Label(),
			present.Date(c.FechaEmision),
			present.Date(c.FechaVencimiento),
			present.Text(c.BeneficiarioNombre),
		}
	}

	m.table.SetRows(rows)
	m.pager = m.pager.SetMeta(res.Meta)

	if m.card == nil {
		return
	}

	if c := findCheque(res.Items, m.card.Cheque().ID); c != nil {
		card := m.card.WithCheque(c)
		m.card = &card
	} else {
		m.card = nil
	}
}

func (m ChequeraDetailModel) header() string {
	ch := m.chequera

	title := titleStyle.Render(present.Text(ch.Descripcion)) + "  " + chequeraBadge(ch.Estado)
	info := fmt.Sprintf("%s %s · nros %d a %d · próximo %d · uso %s (%d de %d)",
		present.Text(ch.BancoNombre),
		ch.CuentaNumero,
		ch.NroDesde,
		ch.NroHasta,
		ch.ProximoNro,
		present.Percent(ch.PorcentajeUso),
		ch.Usados,
		ch.Rango,
	)

	return title + "\n" + faintStyle.Render(info)
}

func (m ChequeraDetailModel) View() string {
	var b strings.Builder

	b.WriteString(m.header() + "\n")

	f := m.list.Filter()
	filter := "Fecha: " + fechaCampoLabel(f.FechaCampo)

	if f.Estado != nil {
		filter += " · " + f.Estado.Label()
	}

	if f.Desde != nil {
		filter += " · desde " + present.Date(*f.Desde)
	}

	if f.Hasta != nil {
		filter += " · hasta " + present.Date(*f.Hasta)
	}

	b.WriteString(faintStyle.Render(filter) + "\n\n")

	res, loaded := m.list.Result()

	switch {
	case !loaded && m.list.Err() != nil:
		b.WriteString(faintStyle.Render("No se pudo cargar la lista") + "\n")
	case !loaded:
		b.WriteString(faintStyle.Render("Cargando cheques...") + "\n")
	default:
		b.WriteString(kpiBar(cheque.Summarize(res.Resumen)) + "\n")

		body := tableFrame.Render(m.table.View())

		switch {
		case m.transitions.Active():
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.transitions.View())
		case m.filterForm != nil:
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", panelStyle.Render(m.filterForm.form.View()))
		case m.card != nil:
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.card.View())
		}

		b.WriteString(body + "\n" + m.pager.View() + "\n")
	}

	if m.feedback.Visible() {
		b.WriteString("\n" + m.feedback.View())
	}

	return b.String()
}
