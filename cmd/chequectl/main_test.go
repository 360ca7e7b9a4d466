package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/database"
	"github.com/MrJamesThe3rd/tesoreria/internal/flujo"
	tesoreriaHttp "github.com/MrJamesThe3rd/tesoreria/internal/http"
	chequeHandler "github.com/MrJamesThe3rd/tesoreria/internal/http/cheque"
	chequeraHandler "github.com/MrJamesThe3rd/tesoreria/internal/http/chequera"
	flujoHandler "github.com/MrJamesThe3rd/tesoreria/internal/http/flujo"
	lookupHandler "github.com/MrJamesThe3rd/tesoreria/internal/http/lookup"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
)

func newServer(t *testing.T) (*database.DB, string) {
	t.Helper()

	db := database.New(database.WithClock(func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}))

	router := tesoreriaHttp.New(
		tesoreriaHttp.Options{},
		chequeHandler.NewHandler(cheque.NewService(db.Cheques())),
		chequeraHandler.NewHandler(chequera.NewService(db.Chequeras())),
		flujoHandler.NewHandler(flujo.NewService(db.Flujos())),
		lookupHandler.NewHandler(lookup.NewService(db.Lookups())),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return db, srv.URL + "/api/v1"
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestPages(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"pages", "5", "10"}, "1 … 4 [5] 6 … 10\n"},
		{[]string{"pages", "1", "3"}, "[1] 2 3\n"},
		{[]string{"pages", "1", "10", "--jump", "p7x"}, "1 … 6 [7] 8 … 10\n"},
		{[]string{"pages", "1", "10", "--jump", "999"}, "1 … 9 [10]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestChequesList(t *testing.T) {
	db, url := newServer(t)
	require.NoError(t, db.Seed(context.Background()))

	out, err := run(t, "--api-url", url, "cheques", "list", "--tipo", "emitido", "--estado", "anulado")
	require.NoError(t, err)

	assert.Contains(t, out, "Emitido")
	assert.Contains(t, out, "Anulado")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "Banco Nación")
	assert.NotContains(t, out, "Recibido")

	_, err = run(t, "--api-url", url, "cheques", "list", "--estado", "perdido")
	assert.ErrorContains(t, err, `unknown estado "perdido"`)
}

func TestChequesTransition(t *testing.T) {
	db, url := newServer(t)

	c, err := db.Cheques().CreateCheque(context.Background(), cheque.CreateParams{
		Tipo: cheque.TipoRecibido, Numero: "881", Monto: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	_, err = run(t, "--api-url", url, "cheques", "transition", "1", "aplicar-a-proveedor")
	assert.ErrorIs(t, err, cheque.ErrProveedorRequired)

	out, err := run(t, "--api-url", url, "cheques", "actions", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "depositar")
	assert.Contains(t, out, "Endosado")

	out, err = run(t, "--api-url", url, "cheques", "transition", "1", "depositar")
	require.NoError(t, err)
	assert.Contains(t, out, "Registrado → Depositado")

	got, err := db.Cheques().GetCheque(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, cheque.EstadoDepositado, got.Estado)

	_, err = run(t, "--api-url", url, "cheques", "transition", "1", "volar")
	assert.ErrorContains(t, err, `unknown action "volar"`)
}

func TestChequesImport(t *testing.T) {
	db, url := newServer(t)
	db.AddBanco("Banco Macro")

	csv := "Número;Fecha emisión;Fecha cobro;Monto;Librador;Banco\n" +
		"7013;02/05/2024;01/06/2024;1.500,25;Ferretería Centro;MACRO\n" +
		"7014;03/05/2024;02/06/2024;800,00;Textil Andina;Banco Patagonia\n"

	path := filepath.Join(t.TempDir(), "cartera.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	out, err := run(t, "--api-url", url, "cheques", "import", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "layout cartera")
	assert.Contains(t, out, "unknown bank: Banco Patagonia")

	res, err := db.Cheques().ListCheques(context.Background(), cheque.ListQuery{})
	require.NoError(t, err)
	assert.Zero(t, res.Meta.Total)

	out, err = run(t, "--api-url", url, "cheques", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 cheques created")

	res, err = db.Cheques().ListCheques(context.Background(), cheque.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Meta.Total)
}

func TestChequerasToggle(t *testing.T) {
	db, url := newServer(t)
	require.NoError(t, db.Seed(context.Background()))

	out, err := run(t, "--api-url", url, "chequeras", "toggle", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Activa → Bloqueada")

	out, err = run(t, "--api-url", url, "chequeras", "list", "--estado", "bloqueada")
	require.NoError(t, err)
	assert.Contains(t, out, "Chequera principal")
	assert.Contains(t, out, "Reserva")
}

func TestChequesExport(t *testing.T) {
	db, url := newServer(t)
	require.NoError(t, db.Seed(context.Background()))

	dir := t.TempDir()

	out, err := run(t, "--api-url", url, "cheques", "export", "--estado", "anulado", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "cheques written to")
	assert.Contains(t, out, "* Anulado |")

	files, err := filepath.Glob(filepath.Join(dir, "cheques_*.csv"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	body, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), "Número;Tipo;Estado")
	assert.NotContains(t, string(body), "Depositado")

	out, err = run(t, "--api-url", url, "cheques", "export", "--format", "xlsx", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, ".xlsx")

	_, err = run(t, "--api-url", url, "cheques", "export", "--charset", "latin9", "--out", dir)
	assert.ErrorContains(t, err, `unknown --charset "latin9"`)
}
