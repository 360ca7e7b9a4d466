package lookup

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tesoreria/internal/http/respond"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
)

type Handler struct {
	svc *lookup.Service
}

func NewHandler(svc *lookup.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the catalogs at the API root: /bancos and /banco-cuentas.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/bancos", h.bancos)
	r.Get("/banco-cuentas", h.cuentas)
}

func (h *Handler) bancos(w http.ResponseWriter, r *http.Request) {
	bancos, err := h.svc.Bancos(r.Context())
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, bancos)
}

func (h *Handler) cuentas(w http.ResponseWriter, r *http.Request) {
	bancoID, err := respond.Int64(r.URL.Query(), "banco_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cuentas, err := h.svc.Cuentas(r.Context(), bancoID)
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, cuentas)
}
