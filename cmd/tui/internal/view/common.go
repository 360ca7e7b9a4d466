package view

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/export"
	"github.com/MrJamesThe3rd/tesoreria/internal/flujo"
	"github.com/MrJamesThe3rd/tesoreria/internal/importer"
	"github.com/MrJamesThe3rd/tesoreria/internal/listing"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
)

// View is the interface every top-level page implements.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all pages.
type CommonModel struct {
	Width  int
	Height int
}

func (c *CommonModel) resize(msg tea.WindowSizeMsg) {
	c.Width = msg.Width
	c.Height = msg.Height
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// Services is what the pages call. Every service sits on the same API
// client, so the user id is injected once.
type Services struct {
	Cheques   *cheque.Service
	Chequeras *chequera.Service
	Flujos    *flujo.Service
	Lookups   *lookup.Service
	Importer  *importer.Service
	Exporter  *export.Service
}

// Settings are the list and request knobs shared by every page.
type Settings struct {
	PageSize int
	Debounce time.Duration
	Timeout  time.Duration
}

func (s Settings) listOptions() listing.Options {
	return listing.Options{Limit: s.PageSize, Debounce: s.Debounce, Timeout: s.Timeout}
}
