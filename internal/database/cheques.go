package database

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
)

// ChequeStore implements cheque.Repository over the in-memory tables.
type ChequeStore struct {
	db *DB
}

func (s *ChequeStore) ListCheques(_ context.Context, q cheque.ListQuery) (*cheque.ListResult, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var items []*cheque.Cheque

	for _, c := range s.db.cheques {
		if !matchCheque(c, q) {
			continue
		}

		items = append(items, clone(c))
	}

	sortCheques(items, q.OrderBy, q.OrderDir)

	return &cheque.ListResult{
		Result:  paginate(items, q.Page, q.Limit),
		Resumen: summarize(items),
	}, nil
}

func matchCheque(c *cheque.Cheque, q cheque.ListQuery) bool {
	if q.BancoID != nil && !sameID(c.BancoID, *q.BancoID) {
		return false
	}

	if q.ChequeraID != nil && !sameID(c.ChequeraID, *q.ChequeraID) {
		return false
	}

	if q.Tipo != nil && c.Tipo != *q.Tipo {
		return false
	}

	if len(q.Estados) > 0 && !slices.Contains(q.Estados, c.Estado) {
		return false
	}

	if !inRange(c.FechaCobroPrevista, q.PrevistaDesde, q.PrevistaHasta) {
		return false
	}

	return containsFold(q.Q, c.Numero, c.BeneficiarioNombre, c.Observaciones, c.Canal)
}

func sameID(v *int64, want int64) bool {
	return v != nil && *v == want
}

func inRange(d civil.Date, desde, hasta *civil.Date) bool {
	if desde == nil && hasta == nil {
		return true
	}

	if d.IsZero() {
		return false
	}

	if desde != nil && d.Before(desde.Time) {
		return false
	}

	if hasta != nil && d.After(hasta.Time) {
		return false
	}

	return true
}

func sortCheques(items []*cheque.Cheque, orderBy, dir string) {
	desc := descending(dir)
	id := func(c *cheque.Cheque) int64 { return c.ID }

	switch orderBy {
	case "numero":
		sortBy(items, desc, func(c *cheque.Cheque) string { return c.Numero }, id)
	case "monto":
		sortBy(items, desc, func(c *cheque.Cheque) float64 { return c.Monto.InexactFloat64() }, id)
	case "fecha_emision":
		sortBy(items, desc, func(c *cheque.Cheque) int64 { return c.FechaEmision.Unix() }, id)
	case "fecha_vencimiento":
		sortBy(items, desc, func(c *cheque.Cheque) int64 { return c.FechaVencimiento.Unix() }, id)
	case "fecha_cobro_prevista":
		sortBy(items, desc, func(c *cheque.Cheque) int64 { return c.FechaCobroPrevista.Unix() }, id)
	default:
		sortBy(items, desc, func(c *cheque.Cheque) int64 { return c.CreatedAt.UnixNano() }, id)
	}
}

// summarize builds the resumen block over the whole filtered set, not just
// the returned page.
func summarize(items []*cheque.Cheque) *cheque.Resumen {
	r := &cheque.Resumen{PorEstado: map[cheque.Estado]cheque.Conteo{}}

	for _, c := range items {
		r.Totales.Cantidad++
		r.Totales.Monto = r.Totales.Monto.Add(c.Monto)

		e := r.PorEstado[c.Estado]
		e.Cantidad++
		e.Monto = e.Monto.Add(c.Monto)
		r.PorEstado[c.Estado] = e
	}

	return r
}

func (s *ChequeStore) GetCheque(_ context.Context, id int64) (*cheque.Cheque, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	c, ok := s.db.cheques[id]
	if !ok {
		return nil, cheque.ErrNotFound
	}

	return clone(c), nil
}

func (s *ChequeStore) CreateCheque(_ context.Context, params cheque.CreateParams) (*cheque.Cheque, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return s.db.insertCheque(params)
}

// insertCheque must be called with the write lock held. Issuing a cheque
// from a checkbook advances its next number past the cheque's own.
func (db *DB) insertCheque(params cheque.CreateParams) (*cheque.Cheque, error) {
	var book *chequera.Chequera

	if params.ChequeraID != nil {
		ch, ok := db.chequeras[*params.ChequeraID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown chequera_id %d", cheque.ErrInvalid, *params.ChequeraID)
		}

		book = ch
	}

	now := db.now()
	c := &cheque.Cheque{
		ID:                 db.nextID("cheques"),
		Tipo:               params.Tipo,
		Canal:              params.Canal,
		Numero:             strings.TrimSpace(params.Numero),
		Monto:              params.Monto,
		Estado:             cheque.EstadoRegistrado,
		FechaEmision:       params.FechaEmision,
		FechaVencimiento:   params.FechaVencimiento,
		FechaCobroPrevista: params.FechaCobroPrevista,
		BancoID:            copyID(params.BancoID),
		ChequeraID:         copyID(params.ChequeraID),
		ClienteID:          copyID(params.ClienteID),
		ProveedorID:        copyID(params.ProveedorID),
		BeneficiarioNombre: params.BeneficiarioNombre,
		Observaciones:      params.Observaciones,
		CreatedAt:          now,
	}

	if book != nil && c.Tipo == cheque.TipoEmitido {
		if n, err := strconv.ParseInt(c.Numero, 10, 64); err == nil && n >= book.ProximoNro && n <= book.NroHasta {
			book.ProximoNro = n + 1
			book.UpdatedAt = &now
			db.decorate(book)
		}
	}

	db.cheques[c.ID] = c

	return clone(c), nil
}

func (s *ChequeStore) UpdateCheque(_ context.Context, id int64, params cheque.UpdateParams) (*cheque.Cheque, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.cheques[id]
	if !ok {
		return nil, cheque.ErrNotFound
	}

	if params.Canal != nil {
		c.Canal = *params.Canal
	}

	if params.Numero != nil {
		c.Numero = strings.TrimSpace(*params.Numero)
	}

	if params.Monto != nil {
		c.Monto = *params.Monto
	}

	if params.FechaVencimiento != nil {
		c.FechaVencimiento = *params.FechaVencimiento
	}

	if params.FechaCobroPrevista != nil {
		c.FechaCobroPrevista = *params.FechaCobroPrevista
	}

	if params.BancoID != nil {
		c.BancoID = copyID(params.BancoID)
	}

	if params.BeneficiarioNombre != nil {
		c.BeneficiarioNombre = *params.BeneficiarioNombre
	}

	if params.Observaciones != nil {
		c.Observaciones = *params.Observaciones
	}

	now := s.db.now()
	c.UpdatedAt = &now

	return clone(c), nil
}

func (s *ChequeStore) DeleteCheque(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.cheques[id]; !ok {
		return cheque.ErrNotFound
	}

	delete(s.db.cheques, id)

	return nil
}

// Transition enforces the lifecycle table on the server side too; a request
// that is no longer allowed fails with ErrActionNotAllowed.
func (s *ChequeStore) Transition(_ context.Context, id int64, action cheque.Action, payload cheque.TransitionPayload) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.cheques[id]
	if !ok {
		return cheque.ErrNotFound
	}

	target, ok := cheque.Target(c.Tipo, action)
	if !ok || !c.Allowed().Has(action) {
		return fmt.Errorf("%w: %s on %s cheque in %s", cheque.ErrActionNotAllowed, action, c.Tipo, c.Estado)
	}

	if action == cheque.ActionAplicarAProveedor {
		if payload.ProveedorID == nil || *payload.ProveedorID <= 0 {
			return cheque.ErrProveedorRequired
		}

		c.ProveedorID = copyID(payload.ProveedorID)
	}

	if payload.CompraID != nil {
		c.CompraID = copyID(payload.CompraID)
	}

	if action == cheque.ActionDepositar && payload.Fecha != nil {
		c.FechaCobroPrevista = *payload.Fecha
	}

	c.Estado = target
	c.MotivoEstado = strings.TrimSpace(payload.Motivo)

	now := s.db.now()
	c.UpdatedAt = &now

	return nil
}

func copyID(v *int64) *int64 {
	if v == nil {
		return nil
	}

	return new(*v)
}
