package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/tesoreria/internal/api"
	"github.com/MrJamesThe3rd/tesoreria/internal/http/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/http/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/http/flujo"
	"github.com/MrJamesThe3rd/tesoreria/internal/http/lookup"
)

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
}

func New(
	opts Options,
	chequesV1 *cheque.Handler,
	chequerasV1 *chequera.Handler,
	flujosV1 *flujo.Handler,
	lookupsV1 *lookup.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", api.HeaderUserID, api.HeaderRequestID},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))

		r.Route("/cheques", chequesV1.Routes)
		r.Route("/chequeras", chequerasV1.Routes)
		r.Route("/tesoreria/flujos", flujosV1.Routes)

		lookupsV1.Routes(r)
	})

	return router
}
