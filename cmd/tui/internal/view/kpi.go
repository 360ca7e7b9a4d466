package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/present"
)

var kpiStyle = lipgloss.NewStyle().
	Padding(0, 1).
	MarginRight(1).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(subtleColor)

// kpiBar renders the summary counters side by side.
func kpiBar(kpis []cheque.KPI) string {
	boxes := make([]string, len(kpis))

	for i, k := range kpis {
		label := titleStyle.Render(k.Label)
		if k.Estado != "" {
			label = estadoBadge(k.Estado)
		}

		boxes[i] = kpiStyle.Render(label + "\n" + present.Count(k.Cantidad) + "  " + faintStyle.Render(present.Money(k.Monto)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}
