package chequera

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("chequera not found")

	ErrInvalid              = errors.New("invalid chequera")
	ErrInvalidRange         = fmt.Errorf("%w: nro_desde must be positive and not above nro_hasta", ErrInvalid)
	ErrProximoOutOfRange    = fmt.Errorf("%w: proximo_nro outside the checkbook range", ErrInvalid)
	ErrProximoDecreasing    = fmt.Errorf("%w: proximo_nro cannot go back", ErrInvalid)
	ErrCuentaRequired       = fmt.Errorf("%w: banco_cuenta_id is required", ErrInvalid)
	ErrInvalidEstado        = fmt.Errorf("%w: unknown estado", ErrInvalid)
	ErrNotToggleable        = fmt.Errorf("%w: only active or blocked checkbooks can be toggled", ErrInvalid)
	ErrNoChangesRequested   = fmt.Errorf("%w: nothing to update", ErrInvalid)
	ErrInvalidChequesFilter = fmt.Errorf("%w: desde is after hasta", ErrInvalid)
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=chequera
type Repository interface {
	ListChequeras(ctx context.Context, q ListQuery) (*ListResult, error)
	GetChequera(ctx context.Context, id int64) (*Chequera, error)
	CreateChequera(ctx context.Context, params CreateParams) (*Chequera, error)
	UpdateChequera(ctx context.Context, id int64, params UpdateParams) (*Chequera, error)
	DeleteChequera(ctx context.Context, id int64) error
	ListCheques(ctx context.Context, id int64, q ChequesQuery) (*ChequesResult, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Descripcion   string `json:"descripcion"`
	BancoCuentaID int64  `json:"banco_cuenta_id"`
	NroDesde      int64  `json:"nro_desde"`
	NroHasta      int64  `json:"nro_hasta"`
	ProximoNro    int64  `json:"proximo_nro"`
}

type UpdateParams struct {
	Descripcion *string `json:"descripcion,omitempty"`
	NroHasta    *int64  `json:"nro_hasta,omitempty"`
	ProximoNro  *int64  `json:"proximo_nro,omitempty"`
	Estado      *Estado `json:"estado,omitempty"`
}

func (p UpdateParams) empty() bool {
	return p == UpdateParams{}
}

// ValidateRange checks a numbering range. proximo may sit one past hasta,
// which marks the checkbook as exhausted.
func ValidateRange(desde, hasta, proximo int64) error {
	if desde <= 0 || desde > hasta {
		return ErrInvalidRange
	}

	if proximo < desde || proximo > hasta+1 {
		return ErrProximoOutOfRange
	}

	return nil
}

func (s *Service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	return s.repo.ListChequeras(ctx, q)
}

func (s *Service) Get(ctx context.Context, id int64) (*Chequera, error) {
	return s.repo.GetChequera(ctx, id)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Chequera, error) {
	if params.BancoCuentaID <= 0 {
		return nil, ErrCuentaRequired
	}

	if params.ProximoNro == 0 {
		params.ProximoNro = params.NroDesde
	}

	if err := ValidateRange(params.NroDesde, params.NroHasta, params.ProximoNro); err != nil {
		return nil, err
	}

	return s.repo.CreateChequera(ctx, params)
}

// Update validates the change against the current record: the range must
// stay consistent and proximo_nro never decreases.
func (s *Service) Update(ctx context.Context, current *Chequera, params UpdateParams) (*Chequera, error) {
	if current == nil {
		return nil, ErrNotFound
	}

	if err := CheckUpdate(current, params); err != nil {
		return nil, err
	}

	return s.repo.UpdateChequera(ctx, current.ID, params)
}

// CheckUpdate is the validation Update applies, shared with the backend.
func CheckUpdate(current *Chequera, params UpdateParams) error {
	if params.empty() {
		return ErrNoChangesRequested
	}

	if params.Estado != nil && !params.Estado.Valid() {
		return ErrInvalidEstado
	}

	hasta, proximo := current.NroHasta, current.ProximoNro
	if params.NroHasta != nil {
		hasta = *params.NroHasta
	}

	if params.ProximoNro != nil {
		if *params.ProximoNro < current.ProximoNro {
			return ErrProximoDecreasing
		}

		proximo = *params.ProximoNro
	}

	return ValidateRange(current.NroDesde, hasta, proximo)
}

// NextToggle returns the state a toggle moves the checkbook to.
func NextToggle(e Estado) (Estado, error) {
	switch e {
	case EstadoActiva:
		return EstadoBloqueada, nil
	case EstadoBloqueada:
		return EstadoActiva, nil
	}

	return e, ErrNotToggleable
}

// Toggle flips an active checkbook to blocked and back.
func (s *Service) Toggle(ctx context.Context, current *Chequera) (*Chequera, error) {
	if current == nil {
		return nil, ErrNotFound
	}

	next, err := NextToggle(current.Estado)
	if err != nil {
		return nil, err
	}

	return s.repo.UpdateChequera(ctx, current.ID, UpdateParams{Estado: &next})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteChequera(ctx, id)
}

func (s *Service) ListCheques(ctx context.Context, id int64, q ChequesQuery) (*ChequesResult, error) {
	if q.Desde != nil && q.Hasta != nil && q.Desde.After(q.Hasta.Time) {
		return nil, ErrInvalidChequesFilter
	}

	return s.repo.ListCheques(ctx, id, q)
}
