package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tesoreria/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tesoreria/internal/api"
	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	chequeStore "github.com/MrJamesThe3rd/tesoreria/internal/cheque/store"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	chequeraStore "github.com/MrJamesThe3rd/tesoreria/internal/chequera/store"
	"github.com/MrJamesThe3rd/tesoreria/internal/config"
	"github.com/MrJamesThe3rd/tesoreria/internal/export"
	"github.com/MrJamesThe3rd/tesoreria/internal/flujo"
	flujoStore "github.com/MrJamesThe3rd/tesoreria/internal/flujo/store"
	"github.com/MrJamesThe3rd/tesoreria/internal/importer"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
	lookupStore "github.com/MrJamesThe3rd/tesoreria/internal/lookup/store"
)

type menuEntry struct {
	key   string
	label string
	open  func() view.View
}

type model struct {
	appName string
	entries []menuEntry

	current view.View
	size    tea.WindowSizeMsg
}

func initialModel(cfg *config.Config) (model, error) {
	client, err := api.New(cfg.API.BaseURL, cfg.API.UserID, cfg.API.Timeout)
	if err != nil {
		return model{}, fmt.Errorf("failed to create API client: %w", err)
	}

	chequeSvc := cheque.NewService(chequeStore.New(client))
	lookupSvc := lookup.NewService(lookupStore.New(client))

	svc := view.Services{
		Cheques:   chequeSvc,
		Chequeras: chequera.NewService(chequeraStore.New(client)),
		Flujos:    flujo.NewService(flujoStore.New(client)),
		Lookups:   lookupSvc,
		Importer:  importer.NewService(chequeSvc, lookupSvc),
		Exporter:  export.NewService(chequeSvc, lookupSvc),
	}

	settings := view.Settings{
		PageSize: cfg.List.PageSize,
		Debounce: cfg.List.Debounce,
		Timeout:  cfg.API.Timeout,
	}

	return model{
		appName: cfg.App.Name,
		entries: []menuEntry{
			{"1", "Cheques", func() view.View { return view.NewChequesModel(svc, settings) }},
			{"2", "Chequeras", func() view.View { return view.NewChequerasModel(svc, settings) }},
			{"3", "Flujo de fondos", func() view.View { return view.NewFlujosModel(svc, settings) }},
			{"4", "Importar cheques", func() view.View { return view.NewImportModel(svc.Importer) }},
			{"5", "Exportar cheques", func() view.View { return view.NewExportModel(svc.Exporter) }},
		},
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == nil {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		m.current = nil
		return m, nil
	}

	if m.current == nil {
		return m, nil
	}

	next, cmd := m.current.Update(msg)
	m.current = next.(view.View)

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return m, tea.Quit
	}

	for _, e := range m.entries {
		if msg.String() != e.key {
			continue
		}

		m.current = e.open()

		// Pages size their tables from the last known window.
		size := m.size

		return m, tea.Batch(m.current.Init(), func() tea.Msg { return size })
	}

	return m, nil
}

func (m model) View() string {
	if m.current != nil {
		help := lipgloss.NewStyle().Faint(true).Render(m.current.ShortHelp())
		return m.current.View() + "\n" + help
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render(m.appName))
	b.WriteString("\n\n")

	for _, e := range m.entries {
		fmt.Fprintf(&b, "%s. %s\n", e.key, e.label)
	}

	b.WriteString("\nq. Salir")

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

func main() {
	if err := run(); err != nil {
		slog.Error("tui failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := tea.LogToFile(cfg.Log.File, "tui")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))

	m, err := initialModel(cfg)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
