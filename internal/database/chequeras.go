package database

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
)

// ChequeraStore implements chequera.Repository over the in-memory tables.
type ChequeraStore struct {
	db *DB
}

var hundred = decimal.NewFromInt(100)

// decorate recomputes the derived columns of a checkbook: bank references
// from its account, usage metrics, and the automatic switch between activa
// and agotada as the next number leaves or re-enters the range.
func (db *DB) decorate(ch *chequera.Chequera) {
	if cuenta, ok := db.cuentas[ch.BancoCuentaID]; ok {
		ch.BancoID = new(cuenta.BancoID)
		ch.CuentaNumero = cuenta.Numero

		if banco, ok := db.bancos[cuenta.BancoID]; ok {
			ch.BancoNombre = banco.Nombre
		}
	}

	ch.Rango = ch.NroHasta - ch.NroDesde + 1
	ch.Usados = min(max(ch.ProximoNro-ch.NroDesde, 0), ch.Rango)

	ch.PorcentajeUso = decimal.Zero
	if ch.Rango > 0 {
		ch.PorcentajeUso = decimal.NewFromInt(ch.Usados).Mul(hundred).Div(decimal.NewFromInt(ch.Rango)).Round(2)
	}

	exhausted := ch.ProximoNro > ch.NroHasta

	switch {
	case exhausted && ch.Estado == chequera.EstadoActiva:
		ch.Estado = chequera.EstadoAgotada
	case !exhausted && ch.Estado == chequera.EstadoAgotada:
		ch.Estado = chequera.EstadoActiva
	}
}

func (s *ChequeraStore) ListChequeras(_ context.Context, q chequera.ListQuery) (*chequera.ListResult, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var items []*chequera.Chequera

	for _, ch := range s.db.chequeras {
		if q.BancoID != nil && !sameID(ch.BancoID, *q.BancoID) {
			continue
		}

		if q.BancoCuentaID != nil && ch.BancoCuentaID != *q.BancoCuentaID {
			continue
		}

		if q.Estado != nil && ch.Estado != *q.Estado {
			continue
		}

		if !containsFold(q.Q, ch.Descripcion, ch.BancoNombre, ch.CuentaNumero) {
			continue
		}

		items = append(items, clone(ch))
	}

	desc := descending(q.OrderDir)
	id := func(ch *chequera.Chequera) int64 { return ch.ID }

	switch q.OrderBy {
	case "descripcion":
		sortBy(items, desc, func(ch *chequera.Chequera) string { return ch.Descripcion }, id)
	case "proximo_nro":
		sortBy(items, desc, func(ch *chequera.Chequera) int64 { return ch.ProximoNro }, id)
	case "porcentaje_uso":
		sortBy(items, desc, func(ch *chequera.Chequera) float64 { return ch.PorcentajeUso.InexactFloat64() }, id)
	default:
		sortBy(items, desc, func(ch *chequera.Chequera) int64 { return ch.CreatedAt.UnixNano() }, id)
	}

	res := paginate(items, q.Page, q.Limit)

	return &res, nil
}

func (s *ChequeraStore) GetChequera(_ context.Context, id int64) (*chequera.Chequera, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	ch, ok := s.db.chequeras[id]
	if !ok {
		return nil, chequera.ErrNotFound
	}

	return clone(ch), nil
}

func (s *ChequeraStore) CreateChequera(_ context.Context, params chequera.CreateParams) (*chequera.Chequera, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return s.db.insertChequera(params)
}

// insertChequera must be called with the write lock held.
func (db *DB) insertChequera(params chequera.CreateParams) (*chequera.Chequera, error) {
	if _, ok := db.cuentas[params.BancoCuentaID]; !ok {
		return nil, fmt.Errorf("%w: unknown banco_cuenta_id %d", chequera.ErrInvalid, params.BancoCuentaID)
	}

	if params.ProximoNro == 0 {
		params.ProximoNro = params.NroDesde
	}

	if err := chequera.ValidateRange(params.NroDesde, params.NroHasta, params.ProximoNro); err != nil {
		return nil, err
	}

	ch := &chequera.Chequera{
		ID:            db.nextID("chequeras"),
		Descripcion:   params.Descripcion,
		BancoCuentaID: params.BancoCuentaID,
		NroDesde:      params.NroDesde,
		NroHasta:      params.NroHasta,
		ProximoNro:    params.ProximoNro,
		Estado:        chequera.EstadoActiva,
		CreatedAt:     db.now(),
	}

	db.decorate(ch)
	db.chequeras[ch.ID] = ch

	return clone(ch), nil
}

func (s *ChequeraStore) UpdateChequera(_ context.Context, id int64, params chequera.UpdateParams) (*chequera.Chequera, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	ch, ok := s.db.chequeras[id]
	if !ok {
		return nil, chequera.ErrNotFound
	}

	if err := chequera.CheckUpdate(ch, params); err != nil {
		return nil, err
	}

	if params.Descripcion != nil {
		ch.Descripcion = *params.Descripcion
	}

	if params.NroHasta != nil {
		ch.NroHasta = *params.NroHasta
	}

	if params.ProximoNro != nil {
		ch.ProximoNro = *params.ProximoNro
	}

	if params.Estado != nil {
		ch.Estado = *params.Estado
	}

	now := s.db.now()
	ch.UpdatedAt = &now

	s.db.decorate(ch)

	return clone(ch), nil
}

func (s *ChequeraStore) DeleteChequera(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.chequeras[id]; !ok {
		return chequera.ErrNotFound
	}

	delete(s.db.chequeras, id)

	return nil
}

func (s *ChequeraStore) ListCheques(_ context.Context, id int64, q chequera.ChequesQuery) (*chequera.ChequesResult, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	ch, ok := s.db.chequeras[id]
	if !ok {
		return nil, chequera.ErrNotFound
	}

	var items []*cheque.Cheque

	for _, c := range s.db.cheques {
		if !sameID(c.ChequeraID, id) {
			continue
		}

		if q.Estado != nil && c.Estado != *q.Estado {
			continue
		}

		if q.Tipo != nil && c.Tipo != *q.Tipo {
			continue
		}

		if !inRange(fechaCampo(c, q.FechaCampo), q.Desde, q.Hasta) {
			continue
		}

		if !containsFold(q.Q, c.Numero, c.BeneficiarioNombre, c.Observaciones) {
			continue
		}

		items = append(items, clone(c))
	}

	sortCheques(items, q.OrderBy, q.OrderDir)

	return &chequera.ChequesResult{
		Result:   paginate(items, q.Page, q.Limit),
		Resumen:  summarize(items),
		Chequera: clone(ch),
	}, nil
}

func fechaCampo(c *cheque.Cheque, campo chequera.FechaCampo) civil.Date {
	switch campo {
	case chequera.FechaVencimiento:
		return c.FechaVencimiento
	case chequera.FechaCobroPrevista:
		return c.FechaCobroPrevista
	}

	return c.FechaEmision
}
