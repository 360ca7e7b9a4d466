package chequera

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
	"github.com/MrJamesThe3rd/tesoreria/internal/page"
)

// Estado is the lifecycle state of a checkbook.
type Estado string

const (
	EstadoActiva    Estado = "activa"
	EstadoAgotada   Estado = "agotada"
	EstadoBloqueada Estado = "bloqueada"
	EstadoAnulada   Estado = "anulada"
)

var Estados = []Estado{EstadoActiva, EstadoAgotada, EstadoBloqueada, EstadoAnulada}

func (e Estado) Valid() bool {
	switch e {
	case EstadoActiva, EstadoAgotada, EstadoBloqueada, EstadoAnulada:
		return true
	}

	return false
}

func (e Estado) Label() string {
	switch e {
	case EstadoActiva:
		return "Activa"
	case EstadoAgotada:
		return "Agotada"
	case EstadoBloqueada:
		return "Bloqueada"
	case EstadoAnulada:
		return "Anulada"
	}

	return string(e)
}

// Chequera is a checkbook. Usage metrics are computed by the backend.
type Chequera struct {
	ID            int64  `json:"id"`
	Descripcion   string `json:"descripcion"`
	BancoCuentaID int64  `json:"banco_cuenta_id"`
	BancoID       *int64 `json:"banco_id,omitempty"`
	BancoNombre   string `json:"banco_nombre,omitempty"`
	CuentaNumero  string `json:"cuenta_numero,omitempty"`

	NroDesde   int64  `json:"nro_desde"`
	NroHasta   int64  `json:"nro_hasta"`
	ProximoNro int64  `json:"proximo_nro"`
	Estado     Estado `json:"estado"`

	Usados        int64           `json:"usados"`
	Rango         int64           `json:"rango"`
	PorcentajeUso decimal.Decimal `json:"porcentaje_uso"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type ListFilter struct {
	BancoID       *int64
	BancoCuentaID *int64
	Estado        *Estado
	OrderBy       string
	OrderDir      string
}

type ListQuery struct {
	Page  int
	Limit int
	Q     string
	ListFilter
}

type ListResult = page.Result[Chequera]

// FechaCampo selects which cheque date the desde/hasta range applies to.
type FechaCampo string

const (
	FechaEmision       FechaCampo = "emision"
	FechaVencimiento   FechaCampo = "vencimiento"
	FechaCobroPrevista FechaCampo = "cobro_prevista"
)

// ChequesFilter narrows the cheques sub-list of one checkbook.
type ChequesFilter struct {
	Estado     *cheque.Estado
	Tipo       *cheque.Tipo
	FechaCampo FechaCampo
	Desde      *civil.Date
	Hasta      *civil.Date
	OrderBy    string
	OrderDir   string
}

type ChequesQuery struct {
	Page  int
	Limit int
	Q     string
	ChequesFilter
}

// ChequesResult is one page of a checkbook's cheques plus its header.
type ChequesResult struct {
	page.Result[cheque.Cheque]
	Resumen  *cheque.Resumen
	Chequera *Chequera
}
