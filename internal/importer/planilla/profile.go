package planilla

import "github.com/MrJamesThe3rd/tesoreria/internal/cheque"

// Profile describes the column layout of one cheque export. Column names
// are compared folded, so accents and case do not matter.
type Profile struct {
	Name  string
	Tipo  cheque.Tipo
	Canal string

	NumeroCol      string
	EmisionCol     string
	CobroCol       string
	MontoCol       string
	ContraparteCol string

	// Optional columns; a missing one leaves the field empty.
	VencimientoCol   string
	BancoCol         string
	ObservacionesCol string
}

func (p Profile) requiredCols() []string {
	return []string{p.NumeroCol, p.EmisionCol, p.CobroCol, p.MontoCol, p.ContraparteCol}
}

// profiles is tried in order; the first whose required columns all appear
// in one row wins. The eCheq layouts only differ in the counterparty column.
var profiles = []Profile{
	{
		Name:           "echeq-recibidos",
		Tipo:           cheque.TipoRecibido,
		Canal:          "echeq",
		NumeroCol:      "Nro. Cheque",
		EmisionCol:     "Fecha Emisión",
		CobroCol:       "Fecha de Pago",
		MontoCol:       "Importe",
		ContraparteCol: "Razón Social Emisor",
		BancoCol:       "Banco Emisor",
	},
	{
		Name:           "echeq-emitidos",
		Tipo:           cheque.TipoEmitido,
		Canal:          "echeq",
		NumeroCol:      "Nro. Cheque",
		EmisionCol:     "Fecha Emisión",
		CobroCol:       "Fecha de Pago",
		MontoCol:       "Importe",
		ContraparteCol: "Razón Social Beneficiario",
	},
	{
		Name:             "cartera",
		Tipo:             cheque.TipoRecibido,
		Canal:            "fisico",
		NumeroCol:        "Número",
		EmisionCol:       "Fecha emisión",
		CobroCol:         "Fecha cobro",
		MontoCol:         "Monto",
		ContraparteCol:   "Librador",
		VencimientoCol:   "Vencimiento",
		BancoCol:         "Banco",
		ObservacionesCol: "Observaciones",
	},
}

// Profiles returns the names of the supported layouts, in detection order.
func Profiles() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}

	return names
}
