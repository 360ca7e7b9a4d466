package planilla_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
	"github.com/MrJamesThe3rd/tesoreria/internal/importer/planilla"
)

func TestParser_EcheqRecibidos(t *testing.T) {
	csv := `Consulta de eCheqs recibidos;;;;;
CUIT;30-71234567-8;;;;
Período;01/06/2024 a 30/06/2024;;;;

Nro. Cheque;Fecha Emisión;Fecha de Pago;Importe;Razón Social Emisor;Banco Emisor
00012345;03/06/2024;03/07/2024;$ 1.500,25;AGRO PAMPA SA;BANCO DE LA NACION ARGENTINA
00012399;10/06/2024;15/08/2024;250.000,00;TEXTIL ANDINA;Banco Macro
Total;;;251.500,25;;
`

	name, rows, err := planilla.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, "echeq-recibidos", name)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 6, first.Line)
	assert.Equal(t, "BANCO DE LA NACION ARGENTINA", first.Banco)
	assert.Equal(t, cheque.TipoRecibido, first.Params.Tipo)
	assert.Equal(t, "echeq", first.Params.Canal)
	assert.Equal(t, "12345", first.Params.Numero)
	assert.True(t, decimal.RequireFromString("1500.25").Equal(first.Params.Monto))
	assert.Equal(t, civil.NewDate(2024, 6, 3), first.Params.FechaEmision)
	assert.Equal(t, civil.NewDate(2024, 7, 3), first.Params.FechaCobroPrevista)
	assert.Equal(t, first.Params.FechaCobroPrevista, first.Params.FechaVencimiento)
	assert.Equal(t, "AGRO PAMPA SA", first.Params.BeneficiarioNombre)

	assert.True(t, decimal.NewFromInt(250000).Equal(rows[1].Params.Monto))
}

func TestParser_EcheqEmitidos(t *testing.T) {
	csv := `Nro. Cheque;Fecha Emisión;Fecha de Pago;Importe;Razón Social Beneficiario
501;01/06/2024;01/07/2024;-92.000,75;Logística Norte SRL
`

	name, rows, err := planilla.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, "echeq-emitidos", name)
	require.Len(t, rows, 1)
	assert.Equal(t, cheque.TipoEmitido, rows[0].Params.Tipo)
	assert.True(t, decimal.RequireFromString("92000.75").Equal(rows[0].Params.Monto))
	assert.Empty(t, rows[0].Banco)
}

func TestParser_CarteraWithCommasAndLooseHeaders(t *testing.T) {
	csv := `numero,FECHA EMISION,Fecha  cobro,monto,librador,banco,vencimiento,observaciones
7013,2024-05-02,2024-06-01,1500.25,Ferretería Centro,Galicia,2024-06-30,mostrador
7026,2024-05-03,2024-06-02,12.000,Distribuidora del Sur,,,
`

	name, rows, err := planilla.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, "cartera", name)
	require.Len(t, rows, 2)

	assert.Equal(t, "fisico", rows[0].Params.Canal)
	assert.Equal(t, civil.NewDate(2024, 6, 30), rows[0].Params.FechaVencimiento)
	assert.Equal(t, "mostrador", rows[0].Params.Observaciones)
	assert.Equal(t, "Galicia", rows[0].Banco)

	assert.True(t, decimal.NewFromInt(12000).Equal(rows[1].Params.Monto))
	assert.Equal(t, rows[1].Params.FechaCobroPrevista, rows[1].Params.FechaVencimiento)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr string
	}{
		{
			name:    "unknown layout",
			csv:     "Fecha;Concepto;Importe\n01/06/2024;x;1\n",
			wantErr: "no known cheque layout",
		},
		{
			name:    "missing number",
			csv:     "Número;Fecha emisión;Fecha cobro;Monto;Librador\n;01/06/2024;01/07/2024;10,00;X\n",
			wantErr: "line 2: missing cheque number",
		},
		{
			name:    "bad amount",
			csv:     "Número;Fecha emisión;Fecha cobro;Monto;Librador\n1;01/06/2024;01/07/2024;diez;X\n",
			wantErr: `line 2: invalid amount "diez"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := planilla.NewParser().Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
