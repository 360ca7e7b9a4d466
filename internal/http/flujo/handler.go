package flujo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tesoreria/internal/flujo"
	"github.com/MrJamesThe3rd/tesoreria/internal/http/respond"
)

type Handler struct {
	svc *flujo.Service
}

func NewHandler(svc *flujo.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, flujo.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, flujo.ErrInvalid):
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

	q := flujo.ListQuery{Page: p, Limit: limit}

	if s := v.Get("signo"); s != "" {
		signo := flujo.Signo(s)
		if !signo.Valid() {
			http.Error(w, fmt.Sprintf("invalid signo %q", s), http.StatusBadRequest)
			return
		}

		q.Signo = &signo
	}

	if s := v.Get("origen_tipo"); s != "" {
		origen := flujo.OrigenTipo(s)
		if !origen.Valid() {
			http.Error(w, fmt.Sprintf("invalid origen_tipo %q", s), http.StatusBadRequest)
			return
		}

		q.OrigenTipo = &origen
	}

	if q.Desde, err = respond.Date(v, "desde"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if q.Hasta, err = respond.Date(v, "hasta"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.List(r.Context(), q)
	if err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	respond.List(w, *res, map[string]any{"saldo": flujo.Balance(res.Items)})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req flujo.Params
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusCreated, f)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req flujo.Params
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, f)
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
