package view

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
)

var errInvalidAmount = errors.New("monto inválido")

// newTable builds a focused table with the shared header and selection
// styles.
func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(subtleColor).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// tableHeight leaves room for the page chrome around a table.
func tableHeight(total, chrome int) int {
	return max(5, total-chrome)
}

// confirmForm is a yes/no modal.
type confirmForm struct {
	form *huh.Form
	ok   bool
}

func newConfirm(title, description string) *confirmForm {
	c := &confirmForm{}

	c.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Sí").
			Negative("No").
			Value(&c.ok),
	)).WithWidth(50).WithShowHelp(false)

	return c
}

// updateForm feeds msg to a huh form and reports whether it finished.
func updateForm(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd, bool) {
	m, cmd := form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		form = f
	}

	return form, cmd, form.State == huh.StateCompleted
}

// parseAmount accepts both "1250.50" and the local "1.250,50".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, errInvalidAmount
	}

	return d, nil
}

func validAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

func requiredDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("requerido")
	}

	return optionalDate(s)
}

// parseDate reads an optional AAAA-MM-DD field; blank is nil.
func parseDate(s string) (*civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	d, err := civil.Parse(s)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func formatDate(d *civil.Date) string {
	if d == nil || d.IsZero() {
		return ""
	}

	return d.String()
}

// bancoOptions lists the bank catalog for a select, with 0 as "none".
func bancoOptions(bancos []*lookup.Banco, none string) []huh.Option[int64] {
	opts := make([]huh.Option[int64], 0, len(bancos)+1)
	opts = append(opts, huh.NewOption(none, int64(0)))

	for _, b := range bancos {
		opts = append(opts, huh.NewOption(b.Nombre, b.ID))
	}

	return opts
}

func idOrNil(id int64) *int64 {
	if id == 0 {
		return nil
	}

	return &id
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}

	return *id
}
