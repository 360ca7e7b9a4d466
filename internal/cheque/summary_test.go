package cheque_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
)

func TestSummarize(t *testing.T) {
	raw := `{
		"totales": {"cantidad": 9, "monto": "1250.75"},
		"porEstado": {
			"en_cartera": {"cantidad": 4},
			"rechazado": {"cantidad": 1, "monto": 300}
		}
	}`

	var r cheque.Resumen
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	kpis := cheque.Summarize(&r)
	require.Len(t, kpis, len(cheque.TrackedEstados)+1)

	assert.Equal(t, "Total", kpis[0].Label)
	assert.Equal(t, 9, kpis[0].Cantidad)
	assert.Equal(t, "1250.75", kpis[0].Monto.StringFixed(2))

	byEstado := map[cheque.Estado]cheque.KPI{}
	for _, k := range kpis[1:] {
		byEstado[k.Estado] = k
	}

	assert.Equal(t, 4, byEstado[cheque.EstadoEnCartera].Cantidad)
	assert.Equal(t, 1, byEstado[cheque.EstadoRechazado].Cantidad)
	assert.Equal(t, "300", byEstado[cheque.EstadoRechazado].Monto.String())
	assert.Equal(t, 0, byEstado[cheque.EstadoDepositado].Cantidad)
	assert.Equal(t, "Depositado", byEstado[cheque.EstadoDepositado].Label)
}

func TestSummarize_Nil(t *testing.T) {
	kpis := cheque.Summarize(nil)
	require.Len(t, kpis, len(cheque.TrackedEstados)+1)

	for _, k := range kpis {
		assert.Zero(t, k.Cantidad)
		assert.True(t, k.Monto.IsZero())
	}
}

func TestSummarize_Order(t *testing.T) {
	kpis := cheque.Summarize(&cheque.Resumen{})
	for i, e := range cheque.TrackedEstados {
		assert.Equal(t, e, kpis[i+1].Estado)
	}
}
