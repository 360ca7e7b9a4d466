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
	"github.com/MrJamesThe3rd/tesoreria/internal/page"
)

const (
	defaultOrderBy  = "created_at"
	defaultOrderDir = "DESC"
)

// Store implements cheque.Repository against the REST backend.
type Store struct {
	client *api.Client
}

func New(client *api.Client) *Store {
	return &Store{client: client}
}

func chequePath(id int64, rest ...string) string {
	return "/" + strings.Join(append([]string{"cheques", strconv.FormatInt(id, 10)}, rest...), "/")
}

// Query encodes a list query the way GET /cheques expects it.
func Query(q cheque.ListQuery) url.Values {
	v := url.Values{}

	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}

	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}

	if s := strings.TrimSpace(q.Q); s != "" {
		v.Set("q", s)
	}

	if q.BancoID != nil {
		v.Set("banco_id", strconv.FormatInt(*q.BancoID, 10))
	}

	if q.ChequeraID != nil {
		v.Set("chequera_id", strconv.FormatInt(*q.ChequeraID, 10))
	}

	if q.Tipo != nil {
		v.Set("tipo", string(*q.Tipo))
	}

	if len(q.Estados) > 0 {
		estados := make([]string, len(q.Estados))
		for i, e := range q.Estados {
			estados[i] = string(e)
		}

		v.Set("estado", strings.Join(estados, ","))
	}

	if q.PrevistaDesde != nil {
		v.Set("fecha_prevista_from", q.PrevistaDesde.String())
	}

	if q.PrevistaHasta != nil {
		v.Set("fecha_prevista_to", q.PrevistaHasta.String())
	}

	orderBy, orderDir := q.OrderBy, q.OrderDir
	if orderBy == "" {
		orderBy = defaultOrderBy
	}

	if orderDir == "" {
		orderDir = defaultOrderDir
	}

	v.Set("orderBy", orderBy)
	v.Set("orderDir", orderDir)

	return v
}

func (s *Store) ListCheques(ctx context.Context, q cheque.ListQuery) (*cheque.ListResult, error) {
	raw, err := s.client.GetRaw(ctx, "/cheques", Query(q))
	if err != nil {
		return nil, fmt.Errorf("listing cheques: %w", err)
	}

	return DecodeList(raw)
}

// DecodeList normalizes a cheques list body and pulls out its summary.
func DecodeList(raw []byte) (*cheque.ListResult, error) {
	res, err := page.Decode[cheque.Cheque](raw)
	if err != nil {
		return nil, fmt.Errorf("decoding cheques: %w", err)
	}

	out := &cheque.ListResult{Result: *res}

	if rawResumen, ok := res.Extra["resumen"]; ok {
		var r cheque.Resumen
		if err := json.Unmarshal(rawResumen, &r); err != nil {
			return nil, fmt.Errorf("decoding resumen: %w", err)
		}

		out.Resumen = &r
	}

	return out, nil
}

func (s *Store) GetCheque(ctx context.Context, id int64) (*cheque.Cheque, error) {
	var c cheque.Cheque
	if err := s.client.Get(ctx, chequePath(id), nil, &c); err != nil {
		return nil, mapErr("getting cheque", err)
	}

	return &c, nil
}

func (s *Store) CreateCheque(ctx context.Context, params cheque.CreateParams) (*cheque.Cheque, error) {
	var c cheque.Cheque
	if err := s.client.Post(ctx, "/cheques", params, &c); err != nil {
		return nil, mapErr("creating cheque", err)
	}

	return &c, nil
}

func (s *Store) UpdateCheque(ctx context.Context, id int64, params cheque.UpdateParams) (*cheque.Cheque, error) {
	var c cheque.Cheque
	if err := s.client.Patch(ctx, chequePath(id), params, &c); err != nil {
		return nil, mapErr("updating cheque", err)
	}

	return &c, nil
}

func (s *Store) DeleteCheque(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, chequePath(id)); err != nil {
		return mapErr("deleting cheque", err)
	}

	return nil
}

func (s *Store) Transition(ctx context.Context, id int64, action cheque.Action, payload cheque.TransitionPayload) error {
	if err := s.client.Patch(ctx, chequePath(id, string(action)), payload, nil); err != nil {
		return mapErr("transitioning cheque", err)
	}

	return nil
}

func mapErr(op string, err error) error {
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, errors.Join(cheque.ErrNotFound, err))
	}

	return fmt.Errorf("%s: %w", op, err)
}
