package cheque

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
)

var (
	ErrNotFound = errors.New("cheque not found")

	// ErrInvalid is wrapped by every error raised before reaching the backend.
	ErrInvalid            = errors.New("invalid cheque operation")
	ErrActionNotAllowed   = fmt.Errorf("%w: action not allowed in current state", ErrInvalid)
	ErrProveedorRequired  = fmt.Errorf("%w: proveedor_id is required", ErrInvalid)
	ErrInvalidTipo        = fmt.Errorf("%w: unknown tipo", ErrInvalid)
	ErrNegativeMonto      = fmt.Errorf("%w: monto must not be negative", ErrInvalid)
	ErrNumeroRequired     = fmt.Errorf("%w: numero is required", ErrInvalid)
	ErrInvalidDateRange   = fmt.Errorf("%w: desde is after hasta", ErrInvalid)
	ErrNoChangesRequested = fmt.Errorf("%w: nothing to update", ErrInvalid)
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=cheque
type Repository interface {
	ListCheques(ctx context.Context, q ListQuery) (*ListResult, error)
	GetCheque(ctx context.Context, id int64) (*Cheque, error)
	CreateCheque(ctx context.Context, params CreateParams) (*Cheque, error)
	UpdateCheque(ctx context.Context, id int64, params UpdateParams) (*Cheque, error)
	DeleteCheque(ctx context.Context, id int64) error
	Transition(ctx context.Context, id int64, action Action, payload TransitionPayload) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Tipo               Tipo            `json:"tipo"`
	Canal              string          `json:"canal,omitempty"`
	Numero             string          `json:"numero"`
	Monto              decimal.Decimal `json:"monto"`
	FechaEmision       civil.Date      `json:"fecha_emision"`
	FechaVencimiento   civil.Date      `json:"fecha_vencimiento"`
	FechaCobroPrevista civil.Date      `json:"fecha_cobro_prevista"`
	BancoID            *int64          `json:"banco_id,omitempty"`
	ChequeraID         *int64          `json:"chequera_id,omitempty"`
	ClienteID          *int64          `json:"cliente_id,omitempty"`
	ProveedorID        *int64          `json:"proveedor_id,omitempty"`
	BeneficiarioNombre string          `json:"beneficiario_nombre,omitempty"`
	Observaciones      string          `json:"observaciones,omitempty"`
}

// UpdateParams is a partial update; nil fields are left untouched.
type UpdateParams struct {
	Canal              *string          `json:"canal,omitempty"`
	Numero             *string          `json:"numero,omitempty"`
	Monto              *decimal.Decimal `json:"monto,omitempty"`
	FechaVencimiento   *civil.Date      `json:"fecha_vencimiento,omitempty"`
	FechaCobroPrevista *civil.Date      `json:"fecha_cobro_prevista,omitempty"`
	BancoID            *int64           `json:"banco_id,omitempty"`
	BeneficiarioNombre *string          `json:"beneficiario_nombre,omitempty"`
	Observaciones      *string          `json:"observaciones,omitempty"`
}

func (p UpdateParams) empty() bool {
	return p == UpdateParams{}
}

// TransitionPayload is the optional body of a transition call.
type TransitionPayload struct {
	Fecha       *civil.Date `json:"fecha,omitempty"`
	Motivo      string      `json:"motivo,omitempty"`
	ProveedorID *int64      `json:"proveedor_id,omitempty"`
	CompraID    *int64      `json:"compra_id,omitempty"`
}

func (s *Service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	if q.PrevistaDesde != nil && q.PrevistaHasta != nil && q.PrevistaDesde.After(q.PrevistaHasta.Time) {
		return nil, ErrInvalidDateRange
	}

	return s.repo.ListCheques(ctx, q)
}

func (s *Service) Get(ctx context.Context, id int64) (*Cheque, error) {
	return s.repo.GetCheque(ctx, id)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Cheque, error) {
	if !params.Tipo.Valid() {
		return nil, ErrInvalidTipo
	}

	if strings.TrimSpace(params.Numero) == "" {
		return nil, ErrNumeroRequired
	}

	if params.Monto.IsNegative() {
		return nil, ErrNegativeMonto
	}

	return s.repo.CreateCheque(ctx, params)
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Cheque, error) {
	if params.empty() {
		return nil, ErrNoChangesRequested
	}

	if params.Monto != nil && params.Monto.IsNegative() {
		return nil, ErrNegativeMonto
	}

	return s.repo.UpdateCheque(ctx, id, params)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteCheque(ctx, id)
}

// PerformTransition validates the action against the cheque's current state
// and issues exactly one remote transition call. Nothing reaches the backend
// when validation fails. Callers re-fetch on success.
func (s *Service) PerformTransition(ctx context.Context, action Action, c *Cheque, payload TransitionPayload) error {
	if c == nil {
		return ErrNotFound
	}

	if !c.Allowed().Has(action) {
		return fmt.Errorf("%w: %s on %s cheque in %s", ErrActionNotAllowed, action, c.Tipo, c.Estado)
	}

	if action == ActionAplicarAProveedor && (payload.ProveedorID == nil || *payload.ProveedorID <= 0) {
		return ErrProveedorRequired
	}

	if err := s.repo.Transition(ctx, c.ID, action, payload); err != nil {
		return fmt.Errorf("%s cheque %d: %w", action, c.ID, err)
	}

	return nil
}
