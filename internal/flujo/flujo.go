// Package flujo manages treasury flow projections: expected income and
// expense entries, optionally correlated to the record that originates them.
package flujo

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
	"github.com/MrJamesThe3rd/tesoreria/internal/page"
)

type Signo string

const (
	SignoIngreso Signo = "ingreso"
	SignoEgreso  Signo = "egreso"
)

func (s Signo) Valid() bool {
	return s == SignoIngreso || s == SignoEgreso
}

func (s Signo) Label() string {
	return label(string(s))
}

type OrigenTipo string

const (
	OrigenCheque        OrigenTipo = "cheque"
	OrigenTransferencia OrigenTipo = "transferencia"
	OrigenEfectivo      OrigenTipo = "efectivo"
	OrigenOtro          OrigenTipo = "otro"
)

var OrigenTipos = []OrigenTipo{OrigenCheque, OrigenTransferencia, OrigenEfectivo, OrigenOtro}

func (o OrigenTipo) Valid() bool {
	switch o {
	case OrigenCheque, OrigenTransferencia, OrigenEfectivo, OrigenOtro:
		return true
	}

	return false
}

func (o OrigenTipo) Label() string {
	return label(string(o))
}

// label capitalizes a wire value for display; wire values are lowercase
// Spanish words.
func label(s string) string {
	return cases.Title(language.Spanish).String(s)
}

type Flujo struct {
	ID          int64           `json:"id"`
	Fecha       civil.Date      `json:"fecha"`
	Signo       Signo           `json:"signo"`
	Monto       decimal.Decimal `json:"monto"`
	OrigenTipo  OrigenTipo      `json:"origen_tipo"`
	OrigenID    *int64          `json:"origen_id,omitempty"`
	Descripcion string          `json:"descripcion,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// Signed returns the amount with the sign applied, for running balances.
func (f *Flujo) Signed() decimal.Decimal {
	if f.Signo == SignoEgreso {
		return f.Monto.Neg()
	}

	return f.Monto
}

type ListFilter struct {
	Signo      *Signo
	OrigenTipo *OrigenTipo
	Desde      *civil.Date
	Hasta      *civil.Date
}

type ListQuery struct {
	Page  int
	Limit int
	ListFilter
}

type ListResult = page.Result[Flujo]
