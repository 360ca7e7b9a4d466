package database

import (
	"context"
	"strings"

	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
)

// LookupStore implements lookup.Repository over the in-memory tables.
type LookupStore struct {
	db *DB
}

func (s *LookupStore) ListBancos(_ context.Context) ([]*lookup.Banco, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]*lookup.Banco, 0, len(s.db.bancos))
	for _, b := range s.db.bancos {
		out = append(out, clone(b))
	}

	sortBy(out, false, func(b *lookup.Banco) string { return strings.ToLower(b.Nombre) }, func(b *lookup.Banco) int64 { return b.ID })

	return out, nil
}

func (s *LookupStore) ListCuentas(_ context.Context, bancoID *int64) ([]*lookup.Cuenta, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]*lookup.Cuenta, 0, len(s.db.cuentas))

	for _, c := range s.db.cuentas {
		if bancoID != nil && c.BancoID != *bancoID {
			continue
		}

		cc := clone(c)
		if b, ok := s.db.bancos[c.BancoID]; ok {
			cc.BancoNombre = b.Nombre
		}

		out = append(out, cc)
	}

	sortBy(out, false, func(c *lookup.Cuenta) int64 { return c.ID }, func(c *lookup.Cuenta) int64 { return c.ID })

	return out, nil
}

// AddBanco registers a bank and returns its id.
func (db *DB) AddBanco(nombre string) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()

	b := &lookup.Banco{ID: db.nextID("bancos"), Nombre: nombre}
	db.bancos[b.ID] = b

	return b.ID
}

// AddCuenta registers a bank account and returns its id.
func (db *DB) AddCuenta(bancoID int64, numero, descripcion string) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()

	c := &lookup.Cuenta{ID: db.nextID("cuentas"), BancoID: bancoID, Numero: numero, Descripcion: descripcion}
	db.cuentas[c.ID] = c

	return c.ID
}
