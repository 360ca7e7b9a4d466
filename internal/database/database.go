// Package database is the in-memory backend behind the development API. It
// keeps cheques, checkbooks, flow projections and the bank catalogs in
// mutex-guarded tables and implements every domain Repository over them.
package database

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/flujo"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
	"github.com/MrJamesThe3rd/tesoreria/internal/page"
)

const defaultLimit = 10

type DB struct {
	mu  sync.RWMutex
	now func() time.Time

	seq map[string]int64

	cheques   map[int64]*cheque.Cheque
	chequeras map[int64]*chequera.Chequera
	flujos    map[int64]*flujo.Flujo
	bancos    map[int64]*lookup.Banco
	cuentas   map[int64]*lookup.Cuenta
}

type Option func(*DB)

// WithClock overrides the time source used for audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		db.now = now
	}
}

func New(opts ...Option) *DB {
	db := &DB{
		now:       time.Now,
		seq:       map[string]int64{},
		cheques:   map[int64]*cheque.Cheque{},
		chequeras: map[int64]*chequera.Chequera{},
		flujos:    map[int64]*flujo.Flujo{},
		bancos:    map[int64]*lookup.Banco{},
		cuentas:   map[int64]*lookup.Cuenta{},
	}

	for _, opt := range opts {
		opt(db)
	}

	return db
}

// nextID must be called with the write lock held.
func (db *DB) nextID(table string) int64 {
	db.seq[table]++
	return db.seq[table]
}

func (db *DB) Cheques() *ChequeStore { return &ChequeStore{db: db} }
func (db *DB) Chequeras() *ChequeraStore { return &ChequeraStore{db: db} }
func (db *DB) Flujos() *FlujoStore { return &FlujoStore{db: db} }
func (db *DB) Lookups() *LookupStore { return &LookupStore{db: db} }

// paginate slices items into the requested page and fills the meta block the
// way the production backend does. Out-of-range pages land on the last page.
func paginate[T any](items []*T, p, limit int) page.Result[T] {
	if limit <= 0 {
		limit = defaultLimit
	}

	total := len(items)
	totalPages := max(1, (total+limit-1)/limit)
	p = page.Clamp(p, totalPages)

	start := min((p-1)*limit, total)
	end := min(start+limit, total)

	return page.Result[T]{
		Items: append([]*T{}, items[start:end]...),
		Meta: page.Meta{
			Page:       p,
			TotalPages: totalPages,
			Total:      total,
			HasPrev:    p > 1,
			HasNext:    p < totalPages,
			Paginated:  true,
		},
	}
}

// sortBy orders items by key, breaking ties on id so pages are stable.
func sortBy[T any, K cmp.Ordered](items []*T, desc bool, key func(*T) K, id func(*T) int64) {
	slices.SortStableFunc(items, func(a, b *T) int {
		c := cmp.Compare(key(a), key(b))
		if c == 0 {
			c = cmp.Compare(id(a), id(b))
		}

		if desc {
			return -c
		}

		return c
	})
}

func descending(dir string) bool {
	return !strings.EqualFold(dir, "ASC")
}

func containsFold(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}

	return false
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}
