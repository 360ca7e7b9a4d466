package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/config"
	"github.com/MrJamesThe3rd/tesoreria/internal/database"
	"github.com/MrJamesThe3rd/tesoreria/internal/flujo"
	tesoreriaHttp "github.com/MrJamesThe3rd/tesoreria/internal/http"
	chequeHandler "github.com/MrJamesThe3rd/tesoreria/internal/http/cheque"
	chequeraHandler "github.com/MrJamesThe3rd/tesoreria/internal/http/chequera"
	flujoHandler "github.com/MrJamesThe3rd/tesoreria/internal/http/flujo"
	lookupHandler "github.com/MrJamesThe3rd/tesoreria/internal/http/lookup"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db := database.New()

	if cfg.App.Seed {
		if err := db.Seed(context.Background()); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}

		slog.Info("seeded demo data")
	}

	var (
		chequeService   = cheque.NewService(db.Cheques())
		chequeraService = chequera.NewService(db.Chequeras())
		flujoService    = flujo.NewService(db.Flujos())
		lookupService   = lookup.NewService(db.Lookups())
	)

	var (
		chequeH   = chequeHandler.NewHandler(chequeService)
		chequeraH = chequeraHandler.NewHandler(chequeraService)
		flujoH    = flujoHandler.NewHandler(flujoService)
		lookupH   = lookupHandler.NewHandler(lookupService)
	)

	router := tesoreriaHttp.New(tesoreriaHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
	}, chequeH, chequeraH, flujoH, lookupH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
