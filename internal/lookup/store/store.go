package store

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/MrJamesThe3rd/tesoreria/internal/api"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
	"github.com/MrJamesThe3rd/tesoreria/internal/page"
)

// Store implements lookup.Repository against the REST backend.
type Store struct {
	client *api.Client
}

func New(client *api.Client) *Store {
	return &Store{client: client}
}

func (s *Store) ListBancos(ctx context.Context) ([]*lookup.Banco, error) {
	raw, err := s.client.GetRaw(ctx, "/bancos", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching bancos: %w", err)
	}

	res, err := page.Decode[lookup.Banco](raw)
	if err != nil {
		return nil, fmt.Errorf("decoding bancos: %w", err)
	}

	return res.Items, nil
}

func (s *Store) ListCuentas(ctx context.Context, bancoID *int64) ([]*lookup.Cuenta, error) {
	var q url.Values
	if bancoID != nil {
		q = url.Values{"banco_id": {strconv.FormatInt(*bancoID, 10)}}
	}

	raw, err := s.client.GetRaw(ctx, "/banco-cuentas", q)
	if err != nil {
		return nil, fmt.Errorf("fetching cuentas: %w", err)
	}

	res, err := page.Decode[lookup.Cuenta](raw)
	if err != nil {
		return nil, fmt.Errorf("decoding cuentas: %w", err)
	}

	return res.Items, nil
}
