package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tesoreria/internal/api"
	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	chequeStore "github.com/MrJamesThe3rd/tesoreria/internal/cheque/store"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	chequeraStore "github.com/MrJamesThe3rd/tesoreria/internal/chequera/store"
	"github.com/MrJamesThe3rd/tesoreria/internal/config"
	"github.com/MrJamesThe3rd/tesoreria/internal/flujo"
	flujoStore "github.com/MrJamesThe3rd/tesoreria/internal/flujo/store"
	"github.com/MrJamesThe3rd/tesoreria/internal/importer"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
	lookupStore "github.com/MrJamesThe3rd/tesoreria/internal/lookup/store"
)

var version = "dev"

// app holds the configuration and the services subcommands share. The API
// client is built on first use so offline commands never need one.
type app struct {
	cfg    *config.Config
	apiURL string
	userID string

	client *api.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "chequectl",
		Short: "Cheques and checkbooks from the terminal",
		Long: `chequectl talks to the treasury API: it lists cheques and checkbooks,
shows which lifecycle actions a cheque allows, runs transitions and
imports cheque exports from bank portals and spreadsheets.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}

	cmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "API base URL (default: $API_BASE_URL)")
	cmd.PersistentFlags().StringVar(&a.userID, "user", "", "user id sent as X-User-Id (default: $API_USER_ID)")

	cmd.AddCommand(a.chequesCmd())
	cmd.AddCommand(a.chequerasCmd())
	cmd.AddCommand(a.flujosCmd())
	cmd.AddCommand(pagesCmd())

	return cmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received interrupt signal, cancelling")
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func (a *app) initConfig(_ *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if a.apiURL != "" {
		cfg.API.BaseURL = a.apiURL
	}

	if a.userID != "" {
		cfg.API.UserID = a.userID
	}

	a.cfg = cfg

	return nil
}

func (a *app) api() (*api.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	c, err := api.New(a.cfg.API.BaseURL, a.cfg.API.UserID, a.cfg.API.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	a.client = c

	return c, nil
}

func (a *app) cheques() (*cheque.Service, error) {
	c, err := a.api()
	if err != nil {
		return nil, err
	}

	return cheque.NewService(chequeStore.New(c)), nil
}

func (a *app) chequeras() (*chequera.Service, error) {
	c, err := a.api()
	if err != nil {
		return nil, err
	}

	return chequera.NewService(chequeraStore.New(c)), nil
}

func (a *app) flujos() (*flujo.Service, error) {
	c, err := a.api()
	if err != nil {
		return nil, err
	}

	return flujo.NewService(flujoStore.New(c)), nil
}

func (a *app) lookups() (*lookup.Service, error) {
	c, err := a.api()
	if err != nil {
		return nil, err
	}

	return lookup.NewService(lookupStore.New(c)), nil
}

func (a *app) importer() (*importer.Service, error) {
	cheques, err := a.cheques()
	if err != nil {
		return nil, err
	}

	lookups, err := a.lookups()
	if err != nil {
		return nil, err
	}

	return importer.NewService(cheques, lookups), nil
}
