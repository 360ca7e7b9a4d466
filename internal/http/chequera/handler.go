package chequera

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/http/respond"
)

type Handler struct {
	svc *chequera.Service
}

func NewHandler(svc *chequera.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/cheques", h.cheques)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, chequera.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, chequera.ErrInvalid):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()

	p, limit, err := respond.Paging(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := chequera.ListQuery{
		Page:  p,
		Limit: limit,
		Q:     v.Get("q"),
		ListFilter: chequera.ListFilter{
			OrderBy:  v.Get("orderBy"),
			OrderDir: v.Get("orderDir"),
		},
	}

	if q.BancoID, err = respond.Int64(v, "banco_id"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if q.BancoCuentaID, err = respond.Int64(v, "banco_cuenta_id"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if s := v.Get("estado"); s != "" {
		e := chequera.Estado(s)
		if !e.Valid() {
			http.Error(w, fmt.Sprintf("invalid estado %q", s), http.StatusBadRequest)
			return
		}

		q.Estado = &e
	}

	res, err := h.svc.List(r.Context(), q)
	if err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	respond.List(w, *res, nil)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ch, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, ch)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req chequera.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ch, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusCreated, ch)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req chequera.UpdateParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	current, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	ch, err := h.svc.Update(r.Context(), current, req)
	if err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, ch)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) cheques(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q, err := parseChequesQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.ListCheques(r.Context(), id, q)
	if err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	respond.List(w, res.Result, map[string]any{
		"resumen":  res.Resumen,
		"chequera": res.Chequera,
	})
}

func parseChequesQuery(r *http.Request) (chequera.ChequesQuery, error) {
	v := r.URL.Query()

	p, limit, err := respond.Paging(v)
	if err != nil {
		return chequera.ChequesQuery{}, err
	}

	q := chequera.ChequesQuery{
		Page:  p,
		Limit: limit,
		Q:     v.Get("q"),
		ChequesFilter: chequera.ChequesFilter{
			FechaCampo: chequera.FechaCampo(v.Get("fechaCampo")),
			OrderBy:    v.Get("orderBy"),
			OrderDir:   v.Get("orderDir"),
		},
	}

	switch q.FechaCampo {
	case "", chequera.FechaEmision, chequera.FechaVencimiento, chequera.FechaCobroPrevista:
	default:
		return q, fmt.Errorf("invalid fechaCampo %q", q.FechaCampo)
	}

	if s := v.Get("estado"); s != "" {
		e := cheque.Estado(s)
		if !e.Valid() {
			return q, fmt.Errorf("invalid estado %q", s)
		}

		q.Estado = &e
	}

	if s := v.Get("tipo"); s != "" {
		t := cheque.Tipo(s)
		if !t.Valid() {
			return q, fmt.Errorf("invalid tipo %q", s)
		}

		q.Tipo = &t
	}

	if q.Desde, err = respond.Date(v, "desde"); err != nil {
		return q, err
	}

	if q.Hasta, err = respond.Date(v, "hasta"); err != nil {
		return q, err
	}

	return q, nil
}
