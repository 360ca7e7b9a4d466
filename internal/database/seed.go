package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
	"github.com/MrJamesThe3rd/tesoreria/internal/flujo"
)

const seedCheques = 36

var clientes = []string{
	"Distribuidora del Sur",
	"Agro Pampa SA",
	"Ferretería Centro",
	"Logística Norte SRL",
	"Textil Andina",
	"Panificadora La Espiga",
}

// Seed fills the tables with demo data: banks, accounts, three checkbooks, a
// few dozen cheques spread across every reachable state, and flow
// projections. Dates are relative to the database clock.
func (db *DB) Seed(ctx context.Context) error {
	nacion := db.AddBanco("Banco Nación")
	galicia := db.AddBanco("Banco Galicia")
	macro := db.AddBanco("Banco Macro")
	santander := db.AddBanco("Banco Santander")

	cuentas := []int64{
		db.AddCuenta(nacion, "0011-2233/4", "Cuenta corriente principal"),
		db.AddCuenta(galicia, "4455-6677/1", "Pagos a proveedores"),
		db.AddCuenta(macro, "9988-1122/0", ""),
		db.AddCuenta(santander, "3141-5926/5", "Sueldos"),
	}

	chequeras := db.Chequeras()

	principal, err := chequeras.CreateChequera(ctx, chequera.CreateParams{
		Descripcion: "Chequera principal", BancoCuentaID: cuentas[0], NroDesde: 10001, NroHasta: 10050,
	})
	if err != nil {
		return fmt.Errorf("seeding chequera: %w", err)
	}

	if _, err := chequeras.CreateChequera(ctx, chequera.CreateParams{
		Descripcion: "Proveedores", BancoCuentaID: cuentas[1], NroDesde: 500, NroHasta: 524, ProximoNro: 521,
	}); err != nil {
		return fmt.Errorf("seeding chequera: %w", err)
	}

	bloqueada, err := chequeras.CreateChequera(ctx, chequera.CreateParams{
		Descripcion: "Reserva", BancoCuentaID: cuentas[2], NroDesde: 1, NroHasta: 25,
	})
	if err != nil {
		return fmt.Errorf("seeding chequera: %w", err)
	}

	if _, err := chequeras.UpdateChequera(ctx, bloqueada.ID, chequera.UpdateParams{Estado: new(chequera.EstadoBloqueada)}); err != nil {
		return fmt.Errorf("blocking chequera: %w", err)
	}

	today := civil.Date{Time: db.now().UTC().Truncate(24 * time.Hour)}
	cheques := db.Cheques()
	bancos := []int64{nacion, galicia, macro, santander}

	for i := range seedCheques {
		emision := civil.Date{Time: today.AddDate(0, 0, i-seedCheques)}
		tipo := cheque.TipoRecibido

		params := cheque.CreateParams{
			Canal:              "fisico",
			Numero:             strconv.Itoa(7000 + i*13),
			Monto:              decimal.NewFromInt(12000).Add(decimal.NewFromFloat(1375.5).Mul(decimal.NewFromInt(int64(i)))),
			FechaEmision:       emision,
			FechaVencimiento:   civil.Date{Time: emision.AddDate(0, 0, 30)},
			FechaCobroPrevista: civil.Date{Time: emision.AddDate(0, 0, 30)},
			BancoID:            new(bancos[i%len(bancos)]),
			BeneficiarioNombre: clientes[i%len(clientes)],
		}

		if i%3 == 0 {
			tipo = cheque.TipoEmitido
			params.Canal = "echeq"
			params.ChequeraID = new(principal.ID)
			params.BancoID = principal.BancoID
			params.Numero = strconv.FormatInt(principal.NroDesde+int64(i/3), 10)
		}

		params.Tipo = tipo

		c, err := cheques.CreateCheque(ctx, params)
		if err != nil {
			return fmt.Errorf("seeding cheque: %w", err)
		}

		if err := db.seedHistory(ctx, c, i); err != nil {
			return fmt.Errorf("seeding cheque %d history: %w", c.ID, err)
		}
	}

	return db.seedFlujos(ctx, today)
}

// seedHistory walks a cheque through a short, valid transition path so the
// demo data covers every state.
func (db *DB) seedHistory(ctx context.Context, c *cheque.Cheque, i int) error {
	var path []cheque.Action

	payload := cheque.TransitionPayload{}

	if c.Tipo == cheque.TipoRecibido {
		switch i % 7 {
		case 1:
			path = []cheque.Action{cheque.ActionDepositar}
		case 2:
			path = []cheque.Action{cheque.ActionDepositar, cheque.ActionAcreditar}
		case 4:
			path = []cheque.Action{cheque.ActionDepositar, cheque.ActionRechazar}
			payload.Motivo = "Sin fondos suficientes"
		case 5:
			path = []cheque.Action{cheque.ActionEntregar, cheque.ActionCompensar}
		case 6:
			path = []cheque.Action{cheque.ActionAplicarAProveedor}
			payload.ProveedorID = new(int64(40 + i))
		default:
			db.mu.Lock()
			db.cheques[c.ID].Estado = cheque.EstadoEnCartera
			db.mu.Unlock()
		}
	} else {
		switch i % 4 {
		case 1:
			path = []cheque.Action{cheque.ActionEntregar}
		case 2:
			path = []cheque.Action{cheque.ActionAplicarAProveedor}
			payload.ProveedorID = new(int64(40 + i))
			payload.CompraID = new(int64(900 + i))
		case 3:
			path = []cheque.Action{cheque.ActionAnular}
			payload.Motivo = "Error de emisión"
		}
	}

	for _, a := range path {
		if err := db.Cheques().Transition(ctx, c.ID, a, payload); err != nil {
			return err
		}
	}

	return nil
}

func (db *DB) seedFlujos(ctx context.Context, today civil.Date) error {
	entries := []flujo.Params{
		{Signo: flujo.SignoIngreso, Monto: decimal.RequireFromString("185000"), OrigenTipo: flujo.OrigenCheque, Descripcion: "Cobranza cheques en cartera"},
		{Signo: flujo.SignoEgreso, Monto: decimal.RequireFromString("92000.75"), OrigenTipo: flujo.OrigenTransferencia, Descripcion: "Pago a proveedores"},
		{Signo: flujo.SignoEgreso, Monto: decimal.RequireFromString("410000"), OrigenTipo: flujo.OrigenTransferencia, Descripcion: "Sueldos"},
		{Signo: flujo.SignoIngreso, Monto: decimal.RequireFromString("35500"), OrigenTipo: flujo.OrigenEfectivo, Descripcion: "Ventas mostrador"},
		{Signo: flujo.SignoEgreso, Monto: decimal.RequireFromString("18250.10"), OrigenTipo: flujo.OrigenOtro, Descripcion: "Impuestos municipales"},
		{Signo: flujo.SignoIngreso, Monto: decimal.RequireFromString("260400"), OrigenTipo: flujo.OrigenCheque, Descripcion: "Cheques a depositar"},
	}

	for i, p := range entries {
		p.Fecha = civil.Date{Time: today.AddDate(0, 0, i*5)}

		db.mu.Lock()
		_, err := db.insertFlujo(p)
		db.mu.Unlock()

		if err != nil {
			return fmt.Errorf("seeding flujo: %w", err)
		}
	}

	return nil
}
