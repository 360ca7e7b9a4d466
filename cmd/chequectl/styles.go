package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	cellStyle       = lipgloss.NewStyle().PaddingRight(2)
	headerCellStyle = headerStyle.PaddingRight(2)
)

// table collects rows under a styled header and writes them aligned on
// flush. Widths are measured on the rendered cells, so styled text lines
// up with plain text.
type table struct {
	out io.Writer
	t   *ltable.Table
}

func newTable(out io.Writer, headers ...string) (*table, error) {
	if len(headers) == 0 {
		return nil, errors.New("table needs at least one column")
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(subtleStyle).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		Wrap(false).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerCellStyle
			}

			return cellStyle
		})

	return &table{out: out, t: t}, nil
}

func (t *table) row(cells ...string) error {
	t.t.Row(cells...)
	return nil
}

func (t *table) flush() error {
	_, err := fmt.Fprintln(t.out, t.t.Render())
	return err
}
