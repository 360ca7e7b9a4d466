// Package listing holds the query state behind every list page: free text,
// typed filters and the current page. Text changes are debounced, every other
// change fetches immediately, and responses from superseded fetches are
// dropped.
package listing

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/tesoreria/internal/page"
)

const (
	DefaultLimit    = 12
	DefaultDebounce = 350 * time.Millisecond
)

// Query is the state sent to the fetcher.
type Query[F any] struct {
	Page   int
	Limit  int
	Text   string
	Filter F
}

// Fetcher loads one page for the given query.
type Fetcher[F any, R page.Pageable] func(ctx context.Context, q Query[F]) (R, error)

// LoadedMsg carries a fetch result back into the update loop.
type LoadedMsg[R page.Pageable] struct {
	ID     string
	Gen    int
	Result R
	Err    error
}

// FailedMsg is emitted once the controller has accepted a failed fetch, so the
// owning page can raise a blocking alert.
type FailedMsg struct {
	ID  string
	Err error
}

type debounceMsg struct {
	id  string
	seq int
}

type Options struct {
	Limit    int
	Debounce time.Duration
	Timeout  time.Duration
}

type Controller[F any, R page.Pageable] struct {
	id    string
	fetch Fetcher[F, R]
	opts  Options

	query   Query[F]
	pending string
	textSeq int
	gen     int

	loading bool
	loaded  bool
	result  R
	err     error
}

// New builds a controller. id must be unique among the controllers living in
// the same program, since messages are routed by it.
func New[F any, R page.Pageable](id string, fetch Fetcher[F, R], filter F, opts Options) Controller[F, R] {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	return Controller[F, R]{
		id:    id,
		fetch: fetch,
		opts:  opts,
		query: Query[F]{Page: 1, Limit: opts.Limit, Filter: filter},
	}
}

func (c Controller[F, R]) ID() string { return c.id }
func (c Controller[F, R]) Query() Query[F] { return c.query }
func (c Controller[F, R]) Filter() F { return c.query.Filter }
func (c Controller[F, R]) Text() string { return c.pending }
func (c Controller[F, R]) Loading() bool { return c.loading }
func (c Controller[F, R]) Err() error { return c.err }
func (c Controller[F, R]) Result() (R, bool) { return c.result, c.loaded }

// Meta returns the pagination block of the last accepted result.
func (c Controller[F, R]) Meta() page.Meta {
	if !c.loaded {
		return page.Meta{Page: c.query.Page}
	}

	return c.result.PageMeta()
}

// Reload fetches the current query again.
func (c Controller[F, R]) Reload() (Controller[F, R], tea.Cmd) {
	return c.load()
}

// SetText records typed text and schedules a debounced fetch. Only the last
// change inside the debounce window results in a request.
func (c Controller[F, R]) SetText(text string) (Controller[F, R], tea.Cmd) {
	c.pending = text
	c.textSeq++

	id, seq := c.id, c.textSeq

	return c, tea.Tick(c.opts.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id, seq: seq}
	})
}

// SetFilter replaces the typed filters, resets to page 1 and fetches.
func (c Controller[F, R]) SetFilter(filter F) (Controller[F, R], tea.Cmd) {
	c.query.Filter = filter
	c.query.Page = 1

	return c.load()
}

// SetPage moves to page p, clamped to the known page count.
func (c Controller[F, R]) SetPage(p int) (Controller[F, R], tea.Cmd) {
	if c.loaded {
		p = page.Clamp(p, c.result.PageMeta().TotalPages)
	} else if p < 1 {
		p = 1
	}

	if p == c.query.Page && c.loaded {
		return c, nil
	}

	c.query.Page = p

	return c.load()
}

func (c Controller[F, R]) NextPage() (Controller[F, R], tea.Cmd) {
	return c.SetPage(c.query.Page + 1)
}

func (c Controller[F, R]) PrevPage() (Controller[F, R], tea.Cmd) {
	return c.SetPage(c.query.Page - 1)
}

func (c Controller[F, R]) Update(msg tea.Msg) (Controller[F, R], tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.id != c.id || msg.seq != c.textSeq {
			return c, nil
		}

		text := strings.TrimSpace(c.pending)
		if text == c.query.Text && c.loaded {
			return c, nil
		}

		c.query.Text = text
		c.query.Page = 1

		return c.load()

	case LoadedMsg[R]:
		if msg.ID != c.id {
			return c, nil
		}

		if msg.Gen != c.gen {
			slog.Debug("dropping stale list response", "list", c.id, "gen", msg.Gen, "current", c.gen)
			return c, nil
		}

		c.loading = false

		if msg.Err != nil {
			c.err = msg.Err
			slog.Error("failed to load list", "list", c.id, "page", c.query.Page, "error", msg.Err)

			id, err := c.id, msg.Err

			return c, func() tea.Msg { return FailedMsg{ID: id, Err: err} }
		}

		c.err = nil
		c.result = msg.Result
		c.loaded = true

		if meta := msg.Result.PageMeta(); meta.Page > 0 {
			c.query.Page = meta.Page
		}

		return c, nil
	}

	return c, nil
}

func (c Controller[F, R]) load() (Controller[F, R], tea.Cmd) {
	c.gen++
	c.loading = true

	id, gen, q, fetch, timeout := c.id, c.gen, c.query, c.fetch, c.opts.Timeout

	return c, func() tea.Msg {
		ctx := context.Background()

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)

			defer cancel()
		}

		res, err := fetch(ctx, q)

		return LoadedMsg[R]{ID: id, Gen: gen, Result: res, Err: err}
	}
}
