package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/tesoreria/internal/page"
)

const pagerDelta = 1

// PageJumpMsg asks the owning list to move to Page.
type PageJumpMsg struct {
	ID   string
	Page int
}

// Pager renders the page strip under a list and owns the jump-to-page box.
// It is disabled for unpaginated results.
type Pager struct {
	id      string
	meta    page.Meta
	jumping bool
	input   textinput.Model
}

func NewPager(id string) Pager {
	ti := textinput.New()
	ti.Prompt = "Ir a página: "
	ti.Placeholder = "n°"
	ti.CharLimit = 6
	ti.Width = 8

	return Pager{id: id, input: ti}
}

func (p Pager) SetMeta(m page.Meta) Pager {
	p.meta = m
	return p
}

// Enabled reports whether page navigation applies to the current result.
func (p Pager) Enabled() bool {
	return p.meta.Paginated && p.meta.TotalPages > 1
}

func (p Pager) Jumping() bool { return p.jumping }

func (p Pager) StartJump() (Pager, tea.Cmd) {
	if !p.Enabled() {
		return p, nil
	}

	p.jumping = true
	p.input.SetValue("")

	return p, p.input.Focus()
}

// First and Last ask the owning list for the edge pages. They return nil
// when navigation is disabled or the list already shows that page.
func (p Pager) First() tea.Cmd { return p.jumpTo(1) }

func (p Pager) Last() tea.Cmd { return p.jumpTo(p.meta.TotalPages) }

func (p Pager) jumpTo(target int) tea.Cmd {
	if !p.Enabled() || target == p.meta.Page {
		return nil
	}

	id := p.id

	return func() tea.Msg { return PageJumpMsg{ID: id, Page: target} }
}

func (p Pager) Update(msg tea.Msg) (Pager, tea.Cmd) {
	if !p.jumping {
		return p, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			p.jumping = false
			p.input.Blur()

			return p, nil
		case tea.KeyEnter:
			p.jumping = false
			p.input.Blur()

			id, target := p.id, page.Jump(p.input.Value(), p.meta.TotalPages)

			return p, func() tea.Msg { return PageJumpMsg{ID: id, Page: target} }
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)

	if digits := page.DigitsOnly(p.input.Value()); digits != p.input.Value() {
		p.input.SetValue(digits)
	}

	return p, cmd
}

func (p Pager) View() string {
	total := faintStyle.Render(fmt.Sprintf("%d registros", p.meta.Total))
	if !p.Enabled() {
		return total
	}

	items := page.Window(p.meta.Page, p.meta.TotalPages, pagerDelta)
	parts := make([]string, 0, len(items))

	for _, it := range items {
		switch {
		case it.Ellipsis:
			parts = append(parts, faintStyle.Render("…"))
		case it.Page == p.meta.Page:
			parts = append(parts, activeStyle.Bold(true).Render("["+strconv.Itoa(it.Page)+"]"))
		default:
			parts = append(parts, strconv.Itoa(it.Page))
		}
	}

	view := "‹ " + strings.Join(parts, " ") + " ›  " + total
	if p.jumping {
		view += "   " + p.input.View()
	}

	return view
}
