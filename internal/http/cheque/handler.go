package cheque

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/http/respond"
)

type Handler struct {
	svc *cheque.Service
}

func NewHandler(svc *cheque.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/{accion}", h.transition)
	r.Patch("/{id}", h.update)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, cheque.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, cheque.ErrActionNotAllowed):
		return http.StatusConflict
	case errors.Is(err, cheque.ErrInvalid):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// ParseListQuery decodes GET /cheques parameters. It is the inverse of the
// client-side query encoder.
func ParseListQuery(r *http.Request) (cheque.ListQuery, error) {
	v := r.URL.Query()

	p, limit, err := respond.Paging(v)
	if err != nil {
		return cheque.ListQuery{}, err
	}

	q := cheque.ListQuery{
		Page:  p,
		Limit: limit,
		Q:     v.Get("q"),
		ListFilter: cheque.ListFilter{
			OrderBy:  v.Get("orderBy"),
			OrderDir: v.Get("orderDir"),
		},
	}

	if q.BancoID, err = respond.Int64(v, "banco_id"); err != nil {
		return q, err
	}

	if q.ChequeraID, err = respond.Int64(v, "chequera_id"); err != nil {
		return q, err
	}

	if s := v.Get("tipo"); s != "" {
		tipo := cheque.Tipo(s)
		if !tipo.Valid() {
			return q, fmt.Errorf("invalid tipo %q", s)
		}

		q.Tipo = &tipo
	}

	for _, s := range respond.CSV(v, "estado") {
		e := cheque.Estado(s)
		if !e.Valid() {
			return q, fmt.Errorf("invalid estado %q", s)
		}

		q.Estados = append(q.Estados, e)
	}

	if q.PrevistaDesde, err = respond.Date(v, "fecha_prevista_from"); err != nil {
		return q, err
	}

	if q.PrevistaHasta, err = respond.Date(v, "fecha_prevista_to"); err != nil {
		return q, err
	}

	return q, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q, err := ParseListQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.List(r.Context(), q)
	if err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	respond.List(w, res.Result, map[string]any{"resumen": res.Resumen})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, c)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req cheque.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusCreated, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req cheque.UpdateParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, c)
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

// transition handles PATCH /cheques/{id}/{accion}. The body is optional.
func (h *Handler) transition(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	action, ok := cheque.ParseAction(chi.URLParam(r, "accion"))
	if !ok {
		http.Error(w, "unknown action", http.StatusNotFound)
		return
	}

	var payload cheque.TransitionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	if err := h.svc.PerformTransition(r.Context(), action, c, payload); err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	updated, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, updated)
}
