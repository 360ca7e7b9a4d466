package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
)

const defaultTimeout = 15 * time.Second

// apiCtx returns a context bounded by the configured request timeout.
func apiCtx(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return context.WithTimeout(context.Background(), timeout)
}

var (
	accentColor  = lipgloss.Color("205")
	subtleColor  = lipgloss.Color("240")
	successColor = lipgloss.Color("42")
	warningColor = lipgloss.Color("214")
	errorColor   = lipgloss.Color("196")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	activeStyle = lipgloss.NewStyle().Foreground(accentColor)
	panelStyle  = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
	tableFrame = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(subtleColor)
)

var estadoColors = map[cheque.Estado]lipgloss.Color{
	cheque.EstadoRegistrado:      "250",
	cheque.EstadoEnCartera:       "39",
	cheque.EstadoAplicadoACompra: "141",
	cheque.EstadoEndosado:        "141",
	cheque.EstadoDepositado:      "214",
	cheque.EstadoAcreditado:      "42",
	cheque.EstadoRechazado:       "196",
	cheque.EstadoAnulado:         "240",
	cheque.EstadoEntregado:       "81",
	cheque.EstadoCompensado:      "35",
}

func estadoBadge(e cheque.Estado) string {
	c, ok := estadoColors[e]
	if !ok {
		c = subtleColor
	}

	return lipgloss.NewStyle().Foreground(c).Render(e.Label())
}

func chequeraBadge(e chequera.Estado) string {
	c := subtleColor

	switch e {
	case chequera.EstadoActiva:
		c = successColor
	case chequera.EstadoAgotada:
		c = warningColor
	case chequera.EstadoBloqueada:
		c = errorColor
	}

	return lipgloss.NewStyle().Foreground(c).Render(e.Label())
}
