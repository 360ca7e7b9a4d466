package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
	"github.com/MrJamesThe3rd/tesoreria/internal/database"
	"github.com/MrJamesThe3rd/tesoreria/internal/flujo"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newDB(t *testing.T) *database.DB {
	t.Helper()
	return database.New(database.WithClock(fixedClock))
}

func createCheque(t *testing.T, db *database.DB, tipo cheque.Tipo, numero string, monto int64) *cheque.Cheque {
	t.Helper()

	c, err := db.Cheques().CreateCheque(context.Background(), cheque.CreateParams{
		Tipo:   tipo,
		Numero: numero,
		Monto:  decimal.NewFromInt(monto),
	})
	require.NoError(t, err)

	return c
}

func TestChequeStore_ListPaginates(t *testing.T) {
	db := newDB(t)
	for i := range 7 {
		createCheque(t, db, cheque.TipoRecibido, string(rune('a'+i)), int64(100*(i+1)))
	}

	res, err := db.Cheques().ListCheques(context.Background(), cheque.ListQuery{Page: 3, Limit: 3})
	require.NoError(t, err)

	assert.Len(t, res.Items, 1)
	assert.Equal(t, 3, res.Meta.Page)
	assert.Equal(t, 3, res.Meta.TotalPages)
	assert.Equal(t, 7, res.Meta.Total)
	assert.True(t, res.Meta.HasPrev)
	assert.False(t, res.Meta.HasNext)

	require.NotNil(t, res.Resumen)
	assert.Equal(t, 7, res.Resumen.Totales.Cantidad)
	assert.True(t, decimal.NewFromInt(2800).Equal(res.Resumen.Totales.Monto))

	// Beyond the last page lands on the last page.
	res, err = db.Cheques().ListCheques(context.Background(), cheque.ListQuery{Page: 9, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Meta.Page)
}

func TestChequeStore_ListFilters(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	a := createCheque(t, db, cheque.TipoRecibido, "1001", 500)
	b := createCheque(t, db, cheque.TipoRecibido, "1002", 700)
	createCheque(t, db, cheque.TipoEmitido, "2001", 900)

	require.NoError(t, db.Cheques().Transition(ctx, a.ID, cheque.ActionDepositar, cheque.TransitionPayload{}))
	require.NoError(t, db.Cheques().Transition(ctx, b.ID, cheque.ActionAnular, cheque.TransitionPayload{Motivo: "duplicado"}))

	res, err := db.Cheques().ListCheques(ctx, cheque.ListQuery{
		ListFilter: cheque.ListFilter{
			Tipo:    new(cheque.TipoRecibido),
			Estados: []cheque.Estado{cheque.EstadoDepositado, cheque.EstadoAnulado},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Meta.Total)
	assert.Equal(t, 1, res.Resumen.PorEstado[cheque.EstadoAnulado].Cantidad)

	res, err = db.Cheques().ListCheques(ctx, cheque.ListQuery{Q: "200"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "2001", res.Items[0].Numero)
}

func TestChequeStore_Transition(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	store := db.Cheques()

	c := createCheque(t, db, cheque.TipoRecibido, "77", 100)

	err := store.Transition(ctx, c.ID, cheque.ActionAcreditar, cheque.TransitionPayload{})
	assert.ErrorIs(t, err, cheque.ErrActionNotAllowed)

	err = store.Transition(ctx, c.ID, cheque.ActionAplicarAProveedor, cheque.TransitionPayload{})
	assert.ErrorIs(t, err, cheque.ErrProveedorRequired)

	err = store.Transition(ctx, c.ID, cheque.ActionAplicarAProveedor, cheque.TransitionPayload{ProveedorID: new(int64(12))})
	require.NoError(t, err)

	got, err := store.GetCheque(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, cheque.EstadoEndosado, got.Estado)
	assert.Equal(t, int64(12), *got.ProveedorID)
	require.NotNil(t, got.UpdatedAt)

	err = store.Transition(ctx, 999, cheque.ActionAnular, cheque.TransitionPayload{})
	assert.ErrorIs(t, err, cheque.ErrNotFound)
}

func TestChequeraStore_Usage(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	banco := db.AddBanco("Galicia")
	cuenta := db.AddCuenta(banco, "123-4", "")

	ch, err := db.Chequeras().CreateChequera(ctx, chequera.CreateParams{BancoCuentaID: cuenta, NroDesde: 1, NroHasta: 4})
	require.NoError(t, err)
	assert.Equal(t, "Galicia", ch.BancoNombre)
	assert.Equal(t, int64(4), ch.Rango)
	assert.Equal(t, int64(0), ch.Usados)

	// Issuing the last number exhausts the checkbook.
	_, err = db.Cheques().CreateCheque(ctx, cheque.CreateParams{
		Tipo: cheque.TipoEmitido, Numero: "4", Monto: decimal.NewFromInt(10), ChequeraID: new(ch.ID),
	})
	require.NoError(t, err)

	ch, err = db.Chequeras().GetChequera(ctx, ch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), ch.ProximoNro)
	assert.Equal(t, chequera.EstadoAgotada, ch.Estado)
	assert.True(t, decimal.NewFromInt(100).Equal(ch.PorcentajeUso))

	// Extending the range reactivates it.
	ch, err = db.Chequeras().UpdateChequera(ctx, ch.ID, chequera.UpdateParams{NroHasta: new(int64(8))})
	require.NoError(t, err)
	assert.Equal(t, chequera.EstadoActiva, ch.Estado)
	assert.True(t, decimal.NewFromInt(50).Equal(ch.PorcentajeUso))

	_, err = db.Chequeras().UpdateChequera(ctx, ch.ID, chequera.UpdateParams{ProximoNro: new(int64(2))})
	assert.ErrorIs(t, err, chequera.ErrProximoDecreasing)

	_, err = db.Chequeras().CreateChequera(ctx, chequera.CreateParams{BancoCuentaID: 99, NroDesde: 1, NroHasta: 4})
	assert.ErrorIs(t, err, chequera.ErrInvalid)
}

func TestChequeraStore_ListCheques(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	cuenta := db.AddCuenta(db.AddBanco("Macro"), "9", "")
	ch, err := db.Chequeras().CreateChequera(ctx, chequera.CreateParams{BancoCuentaID: cuenta, NroDesde: 10, NroHasta: 20})
	require.NoError(t, err)

	for i, d := range []int{1, 10, 20} {
		_, err := db.Cheques().CreateCheque(ctx, cheque.CreateParams{
			Tipo:             cheque.TipoEmitido,
			Numero:           string(rune('0' + i)),
			Monto:            decimal.NewFromInt(100),
			ChequeraID:       new(ch.ID),
			FechaVencimiento: civil.NewDate(2024, 7, d),
		})
		require.NoError(t, err)
	}

	createCheque(t, db, cheque.TipoEmitido, "other", 50)

	desde, hasta := civil.NewDate(2024, 7, 5), civil.NewDate(2024, 7, 31)

	res, err := db.Chequeras().ListCheques(ctx, ch.ID, chequera.ChequesQuery{
		ChequesFilter: chequera.ChequesFilter{FechaCampo: chequera.FechaVencimiento, Desde: &desde, Hasta: &hasta},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Meta.Total)
	require.NotNil(t, res.Chequera)
	assert.Equal(t, ch.ID, res.Chequera.ID)
	assert.Equal(t, 2, res.Resumen.Totales.Cantidad)

	_, err = db.Chequeras().ListCheques(ctx, 404, chequera.ChequesQuery{})
	assert.ErrorIs(t, err, chequera.ErrNotFound)
}

func TestFlujoStore(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	store := db.Flujos()

	_, err := store.CreateFlujo(ctx, flujo.Params{Fecha: civil.NewDate(2024, 1, 1), Signo: flujo.SignoIngreso, OrigenTipo: flujo.OrigenOtro})
	assert.ErrorIs(t, err, flujo.ErrInvalidMonto)

	for _, s := range []flujo.Signo{flujo.SignoIngreso, flujo.SignoEgreso, flujo.SignoIngreso} {
		_, err := store.CreateFlujo(ctx, flujo.Params{
			Fecha: civil.NewDate(2024, 1, 1), Signo: s, Monto: decimal.NewFromInt(10), OrigenTipo: flujo.OrigenEfectivo,
		})
		require.NoError(t, err)
	}

	res, err := store.ListFlujos(ctx, flujo.ListQuery{ListFilter: flujo.ListFilter{Signo: new(flujo.SignoIngreso)}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Meta.Total)

	assert.ErrorIs(t, store.DeleteFlujo(ctx, 42), flujo.ErrNotFound)
}

func TestSeed(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	require.NoError(t, db.Seed(ctx))

	res, err := db.Cheques().ListCheques(ctx, cheque.ListQuery{Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, 36, res.Meta.Total)

	for _, c := range res.Items {
		assert.True(t, c.Estado.Valid(), "cheque %d has estado %q", c.ID, c.Estado)
	}

	for _, e := range []cheque.Estado{
		cheque.EstadoEnCartera, cheque.EstadoDepositado, cheque.EstadoAcreditado,
		cheque.EstadoRechazado, cheque.EstadoEntregado, cheque.EstadoAnulado,
	} {
		assert.Positive(t, res.Resumen.PorEstado[e].Cantidad, "no seeded cheque in %s", e)
	}

	bancos, err := db.Lookups().ListBancos(ctx)
	require.NoError(t, err)
	assert.Len(t, bancos, 4)
	assert.Equal(t, "Banco Galicia", bancos[0].Nombre)

	chequeras, err := db.Chequeras().ListChequeras(ctx, chequera.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, chequeras.Meta.Total)
}
