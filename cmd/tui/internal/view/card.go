package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/present"
)

// TransitionRequestedMsg is emitted by a card when the user picks one of
// its actions. The page owning the card runs the transition.
type TransitionRequestedMsg struct {
	Cheque *cheque.Cheque
	Action cheque.Action
}

// ChequeCard shows one cheque and offers the transitions that are both
// allowed by its current state and granted to the card by its page.
type ChequeCard struct {
	cheque *cheque.Cheque
	caps   cheque.ActionSet
	bancos map[int64]string
	cursor int
}

func NewChequeCard(c *cheque.Cheque, caps cheque.ActionSet, bancos map[int64]string) ChequeCard {
	return ChequeCard{cheque: c, caps: caps, bancos: bancos}
}

func (c ChequeCard) Cheque() *cheque.Cheque { return c.cheque }

// Actions is re-derived from the record on every call.
func (c ChequeCard) Actions() []cheque.Action {
	if c.cheque == nil {
		return nil
	}

	return c.cheque.Allowed().Intersect(c.caps).Slice()
}

// WithCheque swaps in a fresher copy of the record, keeping the cursor in
// range.
func (c ChequeCard) WithCheque(ch *cheque.Cheque) ChequeCard {
	c.cheque = ch
	c.cursor = min(c.cursor, max(0, len(c.Actions())-1))

	return c
}

func (c ChequeCard) Update(msg tea.Msg) (ChequeCard, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	actions := c.Actions()
	if len(actions) == 0 {
		return c, nil
	}

	switch key.String() {
	case "left", "h", "shift+tab":
		c.cursor = (c.cursor - 1 + len(actions)) % len(actions)
	case "right", "l", "tab":
		c.cursor = (c.cursor + 1) % len(actions)
	case "enter":
		req := TransitionRequestedMsg{Cheque: c.cheque, Action: actions[min(c.cursor, len(actions)-1)]}
		return c, func() tea.Msg { return req }
	}

	return c, nil
}

var (
	buttonStyle       = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(subtleColor)
	activeButtonStyle = buttonStyle.BorderForeground(accentColor).Foreground(accentColor).Bold(true)
)

func (c ChequeCard) View() string {
	ch := c.cheque
	if ch == nil {
		return ""
	}

	rows := [][2]string{
		{"Tipo", ch.Tipo.Label()},
		{"Canal", present.Text(ch.Canal)},
		{"Monto", present.Money(ch.Monto)},
		{"Estado", estadoBadge(ch.Estado)},
		{"Emisión", present.Date(ch.FechaEmision)},
		{"Vencimiento", present.Date(ch.FechaVencimiento)},
		{"Cobro previsto", present.Date(ch.FechaCobroPrevista)},
		{"Banco", present.Ref(c.bancos, ch.BancoID)},
		{"Beneficiario", present.Text(ch.BeneficiarioNombre)},
		{"Observaciones", present.Text(ch.Observaciones)},
	}

	if ch.MotivoEstado != "" {
		rows = append(rows, [2]string{"Motivo", ch.MotivoEstado})
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Cheque %s", ch.Numero)) + "\n\n")

	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n", faintStyle.Width(15).Render(r[0]), r[1]))
	}

	actions := c.Actions()
	if len(actions) == 0 {
		b.WriteString("\n" + faintStyle.Render("Sin acciones disponibles"))
		return panelStyle.Width(52).Render(b.String())
	}

	buttons := make([]string, len(actions))
	for i, a := range actions {
		style := buttonStyle
		if i == c.cursor {
			style = activeButtonStyle
		}

		buttons[i] = style.Render(a.Label())
	}

	b.WriteString("\n" + lipgloss.JoinHorizontal(lipgloss.Top, buttons...))

	return panelStyle.Width(52).Render(b.String())
}
