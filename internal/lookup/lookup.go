// Package lookup serves the reference catalogs used to fill selects:
// banks and bank accounts.
package lookup

import (
	"context"
	"fmt"
	"strings"
)

type Banco struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

type Cuenta struct {
	ID          int64  `json:"id"`
	BancoID     int64  `json:"banco_id"`
	BancoNombre string `json:"banco_nombre,omitempty"`
	Numero      string `json:"numero"`
	Descripcion string `json:"descripcion,omitempty"`
}

// Label is the text shown in account selects.
func (c *Cuenta) Label() string {
	parts := []string{}
	if c.BancoNombre != "" {
		parts = append(parts, c.BancoNombre)
	}

	parts = append(parts, c.Numero)

	if c.Descripcion != "" {
		parts = append(parts, "("+c.Descripcion+")")
	}

	return strings.Join(parts, " ")
}

//go:generate mockgen -source=lookup.go -destination=repository_mock.go -package=lookup
type Repository interface {
	ListBancos(ctx context.Context) ([]*Banco, error)
	ListCuentas(ctx context.Context, bancoID *int64) ([]*Cuenta, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Bancos(ctx context.Context) ([]*Banco, error) {
	bancos, err := s.repo.ListBancos(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bancos: %w", err)
	}

	return bancos, nil
}

// Cuentas lists bank accounts, optionally restricted to one bank.
func (s *Service) Cuentas(ctx context.Context, bancoID *int64) ([]*Cuenta, error) {
	cuentas, err := s.repo.ListCuentas(ctx, bancoID)
	if err != nil {
		return nil, fmt.Errorf("listing cuentas: %w", err)
	}

	return cuentas, nil
}

// BancoNames indexes bank names by id for table rendering.
func BancoNames(bancos []*Banco) map[int64]string {
	out := make(map[int64]string, len(bancos))
	for _, b := range bancos {
		out[b.ID] = b.Nombre
	}

	return out
}
