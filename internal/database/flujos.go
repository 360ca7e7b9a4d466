package database

import (
	"context"
	"strings"

	"github.com/MrJamesThe3rd/tesoreria/internal/flujo"
)

// FlujoStore implements flujo.Repository over the in-memory tables.
type FlujoStore struct {
	db *DB
}

func (s *FlujoStore) ListFlujos(_ context.Context, q flujo.ListQuery) (*flujo.ListResult, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var items []*flujo.Flujo

	for _, f := range s.db.flujos {
		if q.Signo != nil && f.Signo != *q.Signo {
			continue
		}

		if q.OrigenTipo != nil && f.OrigenTipo != *q.OrigenTipo {
			continue
		}

		if !inRange(f.Fecha, q.Desde, q.Hasta) {
			continue
		}

		items = append(items, clone(f))
	}

	sortBy(items, true, func(f *flujo.Flujo) int64 { return f.Fecha.Unix() }, func(f *flujo.Flujo) int64 { return f.ID })

	res := paginate(items, q.Page, q.Limit)

	return &res, nil
}

func (s *FlujoStore) CreateFlujo(_ context.Context, params flujo.Params) (*flujo.Flujo, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return s.db.insertFlujo(params)
}

// insertFlujo must be called with the write lock held.
func (db *DB) insertFlujo(params flujo.Params) (*flujo.Flujo, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	f := &flujo.Flujo{
		ID:          db.nextID("flujos"),
		Fecha:       params.Fecha,
		Signo:       params.Signo,
		Monto:       params.Monto,
		OrigenTipo:  params.OrigenTipo,
		OrigenID:    copyID(params.OrigenID),
		Descripcion: strings.TrimSpace(params.Descripcion),
		CreatedAt:   db.now(),
	}

	db.flujos[f.ID] = f

	return clone(f), nil
}

func (s *FlujoStore) UpdateFlujo(_ context.Context, id int64, params flujo.Params) (*flujo.Flujo, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	f, ok := s.db.flujos[id]
	if !ok {
		return nil, flujo.ErrNotFound
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	f.Fecha = params.Fecha
	f.Signo = params.Signo
	f.Monto = params.Monto
	f.OrigenTipo = params.OrigenTipo
	f.OrigenID = copyID(params.OrigenID)
	f.Descripcion = strings.TrimSpace(params.Descripcion)

	now := s.db.now()
	f.UpdatedAt = &now

	return clone(f), nil
}

func (s *FlujoStore) DeleteFlujo(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.flujos[id]; !ok {
		return flujo.ErrNotFound
	}

	delete(s.db.flujos, id)

	return nil
}
