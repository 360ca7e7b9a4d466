// Package importer loads cheques in bulk from bank and ERP exports.
package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/encoding"
	"github.com/MrJamesThe3rd/tesoreria/internal/importer/planilla"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
)

// Parser turns a UTF-8 export into cheque rows and names the layout it
// recognized.
type Parser interface {
	Parse(r io.Reader) (string, []planilla.Row, error)
}

type Service struct {
	parser  Parser
	cheques *cheque.Service
	lookups *lookup.Service
}

func NewService(cheques *cheque.Service, lookups *lookup.Service) *Service {
	return &Service{
		parser:  planilla.NewParser(),
		cheques: cheques,
		lookups: lookups,
	}
}

// Batch is a parsed file ready to import. Unresolved lists bank names that
// matched no known bank; those rows carry no banco_id.
type Batch struct {
	Charset    string
	Layout     string
	Rows       []planilla.Row
	Unresolved []string
}

// Read decodes and parses r, then resolves bank names against the bank
// catalog. Nothing is created.
func (s *Service) Read(ctx context.Context, r io.Reader) (*Batch, error) {
	utf8r, charset, err := encoding.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	layout, rows, err := s.parser.Parse(utf8r)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	b := &Batch{Charset: charset, Layout: layout, Rows: rows}

	if err := s.resolveBancos(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) resolveBancos(ctx context.Context, b *Batch) error {
	var needed bool

	for _, row := range b.Rows {
		if row.Banco != "" {
			needed = true
			break
		}
	}

	if !needed {
		return nil
	}

	bancos, err := s.lookups.Bancos(ctx)
	if err != nil {
		return fmt.Errorf("loading bancos: %w", err)
	}

	seen := make(map[string]bool)

	for i := range b.Rows {
		name := b.Rows[i].Banco
		if name == "" {
			continue
		}

		if id, ok := matchBanco(bancos, name); ok {
			b.Rows[i].Params.BancoID = &id
			continue
		}

		if !seen[name] {
			seen[name] = true
			b.Unresolved = append(b.Unresolved, name)
		}
	}

	return nil
}

// RowError ties a failed create to its input line.
type RowError struct {
	Line   int
	Numero string
	Err    error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d (cheque %s): %v", e.Line, e.Numero, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

type Report struct {
	Created []*cheque.Cheque
	Failed  []RowError
}

// Import creates every row of the batch, one call each. A failed row does
// not stop the batch; a cancelled context does.
func (s *Service) Import(ctx context.Context, b *Batch) (*Report, error) {
	rep := &Report{}

	for _, row := range b.Rows {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		c, err := s.cheques.Create(ctx, row.Params)
		if err != nil {
			rep.Failed = append(rep.Failed, RowError{Line: row.Line, Numero: row.Params.Numero, Err: err})
			continue
		}

		rep.Created = append(rep.Created, c)
	}

	return rep, nil
}

var bancoPrefixes = []string{"banco de la ", "banco del ", "banco de ", "banco "}

func bancoKey(name string) string {
	k := encoding.Fold(name)

	for _, p := range bancoPrefixes {
		if after, ok := strings.CutPrefix(k, p); ok {
			return after
		}
	}

	return k
}

// matchBanco finds a bank by folded name, ignoring the "Banco (de la)"
// prefix. "BANCO DE LA NACION ARGENTINA" matches "Banco Nación" because one
// key is a word prefix of the other.
func matchBanco(bancos []*lookup.Banco, name string) (int64, bool) {
	key := bancoKey(name)
	if key == "" {
		return 0, false
	}

	for _, b := range bancos {
		if bancoKey(b.Nombre) == key {
			return b.ID, true
		}
	}

	for _, b := range bancos {
		other := bancoKey(b.Nombre)
		if other != "" && (strings.HasPrefix(key, other+" ") || strings.HasPrefix(other, key+" ")) {
			return b.ID, true
		}
	}

	return 0, false
}
