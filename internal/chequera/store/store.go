package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/tesoreria/internal/api"
	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/page"
)

// Store implements chequera.Repository against the REST backend.
type Store struct {
	client *api.Client
}

func New(client *api.Client) *Store {
	return &Store{client: client}
}

func chequeraPath(id int64, rest ...string) string {
	return "/" + strings.Join(append([]string{"chequeras", strconv.FormatInt(id, 10)}, rest...), "/")
}

func setPaging(v url.Values, p, limit int, q, orderBy, orderDir string) {
	if p > 0 {
		v.Set("page", strconv.Itoa(p))
	}

	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}

	if s := strings.TrimSpace(q); s != "" {
		v.Set("q", s)
	}

	if orderBy == "" {
		orderBy = "created_at"
	}

	if orderDir == "" {
		orderDir = "DESC"
	}

	v.Set("orderBy", orderBy)
	v.Set("orderDir", orderDir)
}

// Query encodes GET /chequeras parameters.
func Query(q chequera.ListQuery) url.Values {
	v := url.Values{}
	setPaging(v, q.Page, q.Limit, q.Q, q.OrderBy, q.OrderDir)

	if q.BancoID != nil {
		v.Set("banco_id", strconv.FormatInt(*q.BancoID, 10))
	}

	if q.BancoCuentaID != nil {
		v.Set("banco_cuenta_id", strconv.FormatInt(*q.BancoCuentaID, 10))
	}

	if q.Estado != nil {
		v.Set("estado", string(*q.Estado))
	}

	return v
}

// ChequesQuery encodes GET /chequeras/:id/cheques parameters.
func ChequesQuery(q chequera.ChequesQuery) url.Values {
	v := url.Values{}
	setPaging(v, q.Page, q.Limit, q.Q, q.OrderBy, q.OrderDir)

	if q.Estado != nil {
		v.Set("estado", string(*q.Estado))
	}

	if q.Tipo != nil {
		v.Set("tipo", string(*q.Tipo))
	}

	if q.Desde != nil || q.Hasta != nil {
		campo := q.FechaCampo
		if campo == "" {
			campo = chequera.FechaEmision
		}

		v.Set("fechaCampo", string(campo))
	}

	if q.Desde != nil {
		v.Set("desde", q.Desde.String())
	}

	if q.Hasta != nil {
		v.Set("hasta", q.Hasta.String())
	}

	return v
}

func (s *Store) ListChequeras(ctx context.Context, q chequera.ListQuery) (*chequera.ListResult, error) {
	raw, err := s.client.GetRaw(ctx, "/chequeras", Query(q))
	if err != nil {
		return nil, fmt.Errorf("listing chequeras: %w", err)
	}

	res, err := page.Decode[chequera.Chequera](raw)
	if err != nil {
		return nil, fmt.Errorf("decoding chequeras: %w", err)
	}

	return res, nil
}

func (s *Store) GetChequera(ctx context.Context, id int64) (*chequera.Chequera, error) {
	var c chequera.Chequera
	if err := s.client.Get(ctx, chequeraPath(id), nil, &c); err != nil {
		return nil, mapErr("getting chequera", err)
	}

	return &c, nil
}

func (s *Store) CreateChequera(ctx context.Context, params chequera.CreateParams) (*chequera.Chequera, error) {
	var c chequera.Chequera
	if err := s.client.Post(ctx, "/chequeras", params, &c); err != nil {
		return nil, mapErr("creating chequera", err)
	}

	return &c, nil
}

func (s *Store) UpdateChequera(ctx context.Context, id int64, params chequera.UpdateParams) (*chequera.Chequera, error) {
	var c chequera.Chequera
	if err := s.client.Patch(ctx, chequeraPath(id), params, &c); err != nil {
		return nil, mapErr("updating chequera", err)
	}

	return &c, nil
}

func (s *Store) DeleteChequera(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, chequeraPath(id)); err != nil {
		return mapErr("deleting chequera", err)
	}

	return nil
}

func (s *Store) ListCheques(ctx context.Context, id int64, q chequera.ChequesQuery) (*chequera.ChequesResult, error) {
	raw, err := s.client.GetRaw(ctx, chequeraPath(id, "cheques"), ChequesQuery(q))
	if err != nil {
		return nil, mapErr("listing chequera cheques", err)
	}

	res, err := page.Decode[cheque.Cheque](raw)
	if err != nil {
		return nil, fmt.Errorf("decoding chequera cheques: %w", err)
	}

	out := &chequera.ChequesResult{Result: *res}

	if rawResumen, ok := res.Extra["resumen"]; ok {
		var r cheque.Resumen
		if err := json.Unmarshal(rawResumen, &r); err != nil {
			return nil, fmt.Errorf("decoding resumen: %w", err)
		}

		out.Resumen = &r
	}

	if rawHeader, ok := res.Extra["chequera"]; ok {
		var c chequera.Chequera
		if err := json.Unmarshal(rawHeader, &c); err != nil {
			return nil, fmt.Errorf("decoding chequera header: %w", err)
		}

		out.Chequera = &c
	}

	return out, nil
}

func mapErr(op string, err error) error {
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, errors.Join(chequera.ErrNotFound, err))
	}

	return fmt.Errorf("%s: %w", op, err)
}
