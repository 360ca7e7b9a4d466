package cheque

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
	"github.com/MrJamesThe3rd/tesoreria/internal/page"
)

// Tipo tells received cheques (third-party, held in portfolio) from issued
// ones (drawn on our own checkbooks).
type Tipo string

const (
	TipoRecibido Tipo = "recibido"
	TipoEmitido  Tipo = "emitido"
)

func (t Tipo) Valid() bool {
	return t == TipoRecibido || t == TipoEmitido
}

func (t Tipo) Label() string {
	switch t {
	case TipoRecibido:
		return "Recibido"
	case TipoEmitido:
		return "Emitido"
	}

	return string(t)
}

// Estado is the lifecycle state of a cheque.
type Estado string

const (
	EstadoRegistrado      Estado = "registrado"
	EstadoEnCartera       Estado = "en_cartera"
	EstadoAplicadoACompra Estado = "aplicado_a_compra"
	EstadoEndosado        Estado = "endosado"
	EstadoDepositado      Estado = "depositado"
	EstadoAcreditado      Estado = "acreditado"
	EstadoRechazado       Estado = "rechazado"
	EstadoAnulado         Estado = "anulado"
	EstadoEntregado       Estado = "entregado"
	EstadoCompensado      Estado = "compensado"
)

// Estados lists every state in display order.
var Estados = []Estado{
	EstadoRegistrado,
	EstadoEnCartera,
	EstadoAplicadoACompra,
	EstadoEndosado,
	EstadoDepositado,
	EstadoAcreditado,
	EstadoRechazado,
	EstadoAnulado,
	EstadoEntregado,
	EstadoCompensado,
}

var estadoLabels = map[Estado]string{
	EstadoRegistrado:      "Registrado",
	EstadoEnCartera:       "En cartera",
	EstadoAplicadoACompra: "Aplicado a compra",
	EstadoEndosado:        "Endosado",
	EstadoDepositado:      "Depositado",
	EstadoAcreditado:      "Acreditado",
	EstadoRechazado:       "Rechazado",
	EstadoAnulado:         "Anulado",
	EstadoEntregado:       "Entregado",
	EstadoCompensado:      "Compensado",
}

func (e Estado) Valid() bool {
	_, ok := estadoLabels[e]
	return ok
}

func (e Estado) Label() string {
	if l, ok := estadoLabels[e]; ok {
		return l
	}

	return string(e)
}

// Terminal reports whether no further transition, not even void, applies.
func (e Estado) Terminal() bool {
	switch e {
	case EstadoAcreditado, EstadoRechazado, EstadoCompensado, EstadoAnulado:
		return true
	}

	return false
}

// Cheque is a bank check as the backend returns it. Foreign keys are soft:
// the referenced records may not exist.
type Cheque struct {
	ID     int64           `json:"id"`
	Tipo   Tipo            `json:"tipo"`
	Canal  string          `json:"canal"`
	Numero string          `json:"numero"`
	Monto  decimal.Decimal `json:"monto"`
	Estado Estado          `json:"estado"`

	FechaEmision       civil.Date `json:"fecha_emision"`
	FechaVencimiento   civil.Date `json:"fecha_vencimiento"`
	FechaCobroPrevista civil.Date `json:"fecha_cobro_prevista"`

	BancoID     *int64 `json:"banco_id,omitempty"`
	ChequeraID  *int64 `json:"chequera_id,omitempty"`
	ClienteID   *int64 `json:"cliente_id,omitempty"`
	ProveedorID *int64 `json:"proveedor_id,omitempty"`
	VentaID     *int64 `json:"venta_id,omitempty"`
	CompraID    *int64 `json:"compra_id,omitempty"`

	BeneficiarioNombre string `json:"beneficiario_nombre,omitempty"`
	Observaciones      string `json:"observaciones,omitempty"`
	MotivoEstado       string `json:"motivo_estado,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Allowed is the set of transitions offered for the cheque right now.
func (c *Cheque) Allowed() ActionSet {
	return AllowedActions(c.Tipo, c.Estado)
}

// ListFilter carries every typed filter of the cheques page.
type ListFilter struct {
	BancoID       *int64
	ChequeraID    *int64
	Tipo          *Tipo
	Estados       []Estado
	PrevistaDesde *civil.Date
	PrevistaHasta *civil.Date
	OrderBy       string
	OrderDir      string
}

type ListQuery struct {
	Page  int
	Limit int
	Q     string
	ListFilter
}

// ListResult is one page of cheques plus the backend summary, when sent.
type ListResult struct {
	page.Result[Cheque]
	Resumen *Resumen
}
