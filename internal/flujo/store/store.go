package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/MrJamesThe3rd/tesoreria/internal/api"
	"github.com/MrJamesThe3rd/tesoreria/internal/flujo"
	"github.com/MrJamesThe3rd/tesoreria/internal/page"
)

const basePath = "/tesoreria/flujos"

// Store implements flujo.Repository against the REST backend.
type Store struct {
	client *api.Client
}

func New(client *api.Client) *Store {
	return &Store{client: client}
}

func flujoPath(id int64) string {
	return basePath + "/" + strconv.FormatInt(id, 10)
}

// Query encodes GET /tesoreria/flujos parameters.
func Query(q flujo.ListQuery) url.Values {
	v := url.Values{}

	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}

	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.Signo != nil {
		v.Set("signo", string(*q.Signo))
	}

	if q.OrigenTipo != nil {
		v.Set("origen_tipo", string(*q.OrigenTipo))
	}

	if q.Desde != nil {
		v.Set("desde", q.Desde.String())
	}

	if q.Hasta != nil {
		v.Set("hasta", q.Hasta.String())
	}

	return v
}

func (s *Store) ListFlujos(ctx context.Context, q flujo.ListQuery) (*flujo.ListResult, error) {
	raw, err := s.client.GetRaw(ctx, basePath, Query(q))
	if err != nil {
		return nil, fmt.Errorf("listing flujos: %w", err)
	}

	res, err := page.Decode[flujo.Flujo](raw)
	if err != nil {
		return nil, fmt.Errorf("decoding flujos: %w", err)
	}

	return res, nil
}

func (s *Store) CreateFlujo(ctx context.Context, params flujo.Params) (*flujo.Flujo, error) {
	var f flujo.Flujo
	if err := s.client.Post(ctx, basePath, params, &f); err != nil {
		return nil, mapErr("creating flujo", err)
	}

	return &f, nil
}

func (s *Store) UpdateFlujo(ctx context.Context, id int64, params flujo.Params) (*flujo.Flujo, error) {
	var f flujo.Flujo
	if err := s.client.Patch(ctx, flujoPath(id), params, &f); err != nil {
		return nil, mapErr("updating flujo", err)
	}

	return &f, nil
}

func (s *Store) DeleteFlujo(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, flujoPath(id)); err != nil {
		return mapErr("deleting flujo", err)
	}

	return nil
}

func mapErr(op string, err error) error {
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, errors.Join(flujo.ErrNotFound, err))
	}

	return fmt.Errorf("%s: %w", op, err)
}
