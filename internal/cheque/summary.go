package cheque

import "github.com/shopspring/decimal"

// Resumen is the summary block the backend attaches to list envelopes.
type Resumen struct {
	Totales   Conteo            `json:"totales"`
	PorEstado map[Estado]Conteo `json:"porEstado"`
}

type Conteo struct {
	Cantidad int             `json:"cantidad"`
	Monto    decimal.Decimal `json:"monto"`
}

// KPI is one labeled counter of the summary bar. Estado is empty for the
// totals counter.
type KPI struct {
	Label    string
	Estado   Estado
	Cantidad int
	Monto    decimal.Decimal
}

// TrackedEstados are the states shown in the summary bar, in order.
var TrackedEstados = []Estado{
	EstadoEnCartera,
	EstadoDepositado,
	EstadoAcreditado,
	EstadoRechazado,
	EstadoEntregado,
	EstadoAnulado,
}

// Summarize reduces a summary block to the fixed KPI list. A nil block or
// a missing state yields zero counters.
func Summarize(r *Resumen) []KPI {
	kpis := make([]KPI, 0, len(TrackedEstados)+1)

	var total Conteo
	if r != nil {
		total = r.Totales
	}

	kpis = append(kpis, KPI{Label: "Total", Cantidad: total.Cantidad, Monto: total.Monto})

	for _, e := range TrackedEstados {
		var c Conteo
		if r != nil {
			c = r.PorEstado[e]
		}

		kpis = append(kpis, KPI{Label: e.Label(), Estado: e, Cantidad: c.Cantidad, Monto: c.Monto})
	}

	return kpis
}
