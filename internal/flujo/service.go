package flujo

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
)

var (
	ErrNotFound = errors.New("flujo not found")

	ErrInvalid           = errors.New("invalid flujo")
	ErrInvalidMonto      = fmt.Errorf("%w: monto must be greater than zero", ErrInvalid)
	ErrInvalidSigno      = fmt.Errorf("%w: signo must be ingreso or egreso", ErrInvalid)
	ErrInvalidOrigenTipo = fmt.Errorf("%w: unknown origen_tipo", ErrInvalid)
	ErrFechaRequired     = fmt.Errorf("%w: fecha is required", ErrInvalid)
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=flujo
type Repository interface {
	ListFlujos(ctx context.Context, q ListQuery) (*ListResult, error)
	CreateFlujo(ctx context.Context, params Params) (*Flujo, error)
	UpdateFlujo(ctx context.Context, id int64, params Params) (*Flujo, error)
	DeleteFlujo(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Params is the full form body for create and edit.
type Params struct {
	Fecha       civil.Date      `json:"fecha"`
	Signo       Signo           `json:"signo"`
	Monto       decimal.Decimal `json:"monto"`
	OrigenTipo  OrigenTipo      `json:"origen_tipo"`
	OrigenID    *int64          `json:"origen_id,omitempty"`
	Descripcion string          `json:"descripcion,omitempty"`
}

func (p Params) Validate() error {
	if p.Fecha.IsZero() {
		return ErrFechaRequired
	}

	if !p.Signo.Valid() {
		return ErrInvalidSigno
	}

	if !p.Monto.IsPositive() {
		return ErrInvalidMonto
	}

	if !p.OrigenTipo.Valid() {
		return ErrInvalidOrigenTipo
	}

	return nil
}

func (s *Service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	return s.repo.ListFlujos(ctx, q)
}

func (s *Service) Create(ctx context.Context, params Params) (*Flujo, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.CreateFlujo(ctx, params)
}

func (s *Service) Update(ctx context.Context, id int64, params Params) (*Flujo, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.UpdateFlujo(ctx, id, params)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteFlujo(ctx, id)
}

// Balance sums the signed amounts of a page of projections.
func Balance(flujos []*Flujo) decimal.Decimal {
	total := decimal.Zero
	for _, f := range flujos {
		total = total.Add(f.Signed())
	}

	return total
}
