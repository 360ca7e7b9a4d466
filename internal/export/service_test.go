package export_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
	"github.com/MrJamesThe3rd/tesoreria/internal/encoding"
	"github.com/MrJamesThe3rd/tesoreria/internal/export"
	"github.com/MrJamesThe3rd/tesoreria/internal/importer"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
	"github.com/MrJamesThe3rd/tesoreria/internal/page"
)

var bancos = []*lookup.Banco{{ID: 1, Nombre: "Banco Galicia"}}

func listPage(p, total int, items ...*cheque.Cheque) *cheque.ListResult {
	return &cheque.ListResult{Result: page.Result[cheque.Cheque]{
		Items: items,
		Meta:  page.Meta{Page: p, TotalPages: total, Total: 3, HasPrev: p > 1, HasNext: p < total, Paginated: true},
	}}
}

func sample(id int64, numero string, estado cheque.Estado, monto string) *cheque.Cheque {
	return &cheque.Cheque{
		ID:                 id,
		Tipo:               cheque.TipoRecibido,
		Numero:             numero,
		Monto:              decimal.RequireFromString(monto),
		Estado:             estado,
		FechaEmision:       civil.NewDate(2024, 6, 1),
		FechaCobroPrevista: civil.NewDate(2024, 7, 1),
		BancoID:            new(int64(1)),
		BeneficiarioNombre: "Agro Pampa SA",
		Observaciones:      "Descripción; con separador",
	}
}

func newService(t *testing.T) (*export.Service, *cheque.MockRepository, *lookup.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	cheques := cheque.NewMockRepository(ctrl)
	lookups := lookup.NewMockRepository(ctrl)

	return export.NewService(cheque.NewService(cheques), lookup.NewService(lookups)), cheques, lookups
}

func TestService_WriteWalksPages(t *testing.T) {
	svc, cheques, lookups := newService(t)
	ctx := context.Background()

	lookups.EXPECT().ListBancos(gomock.Any()).Return(bancos, nil).Times(2)

	gomock.InOrder(
		cheques.EXPECT().ListCheques(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q cheque.ListQuery) (*cheque.ListResult, error) {
				assert.Equal(t, 1, q.Page)
				return listPage(1, 2,
					sample(1, "100", cheque.EstadoEnCartera, "1500.25"),
					sample(2, "101", cheque.EstadoDepositado, "800"),
				), nil
			}),
		cheques.EXPECT().ListCheques(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q cheque.ListQuery) (*cheque.ListResult, error) {
				assert.Equal(t, 2, q.Page)
				return listPage(2, 2, sample(3, "102", cheque.EstadoEnCartera, "200.5")), nil
			}),
	)

	var buf bytes.Buffer

	res, err := svc.Write(ctx, cheque.ListFilter{}, &buf, encoding.UTF8)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Count)
	assert.True(t, decimal.RequireFromString("2500.75").Equal(res.Totales.Monto))
	assert.Equal(t, 2, res.PorEstado[cheque.EstadoEnCartera].Cantidad)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, buf.String(), "100;Recibido;En cartera;01/06/2024;;01/07/2024;1500,25;Agro Pampa SA;Banco Galicia;")

	// An export reads back as the cartera layout.
	imp := importer.NewService(cheque.NewService(cheques), lookup.NewService(lookups))

	batch, err := imp.Read(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, "cartera", batch.Layout)
	require.Len(t, batch.Rows, 3)
	assert.True(t, decimal.RequireFromString("1500.25").Equal(batch.Rows[0].Params.Monto))
	assert.Equal(t, "Descripción; con separador", batch.Rows[0].Params.Observaciones)
	require.NotNil(t, batch.Rows[0].Params.BancoID)
	assert.Equal(t, int64(1), *batch.Rows[0].Params.BancoID)
}

func TestService_WriteWindows1252(t *testing.T) {
	svc, cheques, lookups := newService(t)

	lookups.EXPECT().ListBancos(gomock.Any()).Return(bancos, nil)
	cheques.EXPECT().ListCheques(gomock.Any(), gomock.Any()).Return(listPage(1, 1, sample(1, "7", cheque.EstadoEnCartera, "10")), nil)

	var buf bytes.Buffer

	_, err := svc.Write(context.Background(), cheque.ListFilter{}, &buf, encoding.Windows1252)
	require.NoError(t, err)

	out := buf.Bytes()
	assert.False(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
	assert.True(t, bytes.HasPrefix(out, []byte("N\xfamero;")), "header should be windows-1252: %q", out[:10])

	r, charset, err := encoding.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Contains(t, []string{encoding.Windows1252, encoding.ISO8859_15}, charset)
	assert.NotNil(t, r)
}

func TestService_WriteUnsupportedCharset(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Write(context.Background(), cheque.ListFilter{}, &bytes.Buffer{}, "koi8-r")
	assert.ErrorContains(t, err, "unsupported charset")
}

func TestService_ExportNamesFileAfterRange(t *testing.T) {
	svc, cheques, lookups := newService(t)
	dir := filepath.Join(t.TempDir(), "out")

	lookups.EXPECT().ListBancos(gomock.Any()).Return(nil, nil)
	cheques.EXPECT().ListCheques(gomock.Any(), gomock.Any()).Return(listPage(1, 1), nil)

	desde, hasta := civil.NewDate(2024, 6, 1), civil.NewDate(2024, 6, 30)

	res, err := svc.Export(context.Background(), cheque.ListFilter{PrevistaDesde: &desde, PrevistaHasta: &hasta}, dir, export.Options{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "cheques_20240601_20240630.csv"), res.Path)
	assert.Equal(t, 0, res.Count)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Número;Tipo;Estado")
}

func TestService_ExportXLSX(t *testing.T) {
	svc, cheques, lookups := newService(t)
	dir := t.TempDir()

	lookups.EXPECT().ListBancos(gomock.Any()).Return(bancos, nil)
	cheques.EXPECT().ListCheques(gomock.Any(), gomock.Any()).Return(listPage(1, 1,
		sample(1, "7001", cheque.EstadoEnCartera, "1500.25"),
		sample(2, "7002", cheque.EstadoRechazado, "800"),
	), nil)

	res, err := svc.Export(context.Background(), cheque.ListFilter{}, dir, export.Options{Format: export.FormatXLSX})
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(res.Path))
	assert.Equal(t, 2, res.Count)
	assert.True(t, decimal.RequireFromString("2300.25").Equal(res.Totales.Monto))

	f, err := excelize.OpenFile(res.Path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows("Cheques")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, export.Header, rows[0])
	assert.Equal(t, "7001", rows[1][0])
	assert.Equal(t, "Banco Galicia", rows[1][8])
	assert.Equal(t, "1500.25", rows[1][6])
}

func TestService_ExportUnsupportedFormat(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Export(context.Background(), cheque.ListFilter{}, t.TempDir(), export.Options{Format: "pdf"})
	assert.ErrorContains(t, err, `unsupported format "pdf"`)
}

func TestGenerateSummary(t *testing.T) {
	res := &export.Result{
		Count:   2,
		Totales: cheque.Conteo{Cantidad: 2, Monto: decimal.NewFromInt(30000)},
		PorEstado: map[cheque.Estado]cheque.Conteo{
			cheque.EstadoRechazado: {Cantidad: 2, Monto: decimal.NewFromInt(30000)},
		},
	}

	summary := export.GenerateSummary(res)
	assert.Contains(t, summary, "* Rechazado | 2 | $ 30.000,00")
	assert.Contains(t, summary, "Total | 2 |")
	assert.NotContains(t, summary, "En cartera")
}
