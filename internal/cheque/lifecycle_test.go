package cheque_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
)

func TestAllowedActions(t *testing.T) {
	var (
		dep  = cheque.ActionDepositar
		acr  = cheque.ActionAcreditar
		rech = cheque.ActionRechazar
		apl  = cheque.ActionAplicarAProveedor
		ent  = cheque.ActionEntregar
		comp = cheque.ActionCompensar
		anu  = cheque.ActionAnular
	)

	tests := []struct {
		tipo   cheque.Tipo
		estado cheque.Estado
		want   []cheque.Action
	}{
		{cheque.TipoRecibido, cheque.EstadoRegistrado, []cheque.Action{dep, apl, ent, anu}},
		{cheque.TipoRecibido, cheque.EstadoEnCartera, []cheque.Action{dep, apl, ent, anu}},
		{cheque.TipoRecibido, cheque.EstadoAplicadoACompra, []cheque.Action{anu}},
		{cheque.TipoRecibido, cheque.EstadoEndosado, []cheque.Action{anu}},
		{cheque.TipoRecibido, cheque.EstadoDepositado, []cheque.Action{acr, rech, anu}},
		{cheque.TipoRecibido, cheque.EstadoAcreditado, []cheque.Action{}},
		{cheque.TipoRecibido, cheque.EstadoRechazado, []cheque.Action{}},
		{cheque.TipoRecibido, cheque.EstadoAnulado, []cheque.Action{}},
		{cheque.TipoRecibido, cheque.EstadoEntregado, []cheque.Action{comp, anu}},
		{cheque.TipoRecibido, cheque.EstadoCompensado, []cheque.Action{}},

		{cheque.TipoEmitido, cheque.EstadoRegistrado, []cheque.Action{apl, ent, anu}},
		{cheque.TipoEmitido, cheque.EstadoEnCartera, []cheque.Action{apl, ent, anu}},
		{cheque.TipoEmitido, cheque.EstadoAplicadoACompra, []cheque.Action{comp, anu}},
		{cheque.TipoEmitido, cheque.EstadoEndosado, []cheque.Action{anu}},
		{cheque.TipoEmitido, cheque.EstadoDepositado, []cheque.Action{anu}},
		{cheque.TipoEmitido, cheque.EstadoAcreditado, []cheque.Action{}},
		{cheque.TipoEmitido, cheque.EstadoRechazado, []cheque.Action{}},
		{cheque.TipoEmitido, cheque.EstadoAnulado, []cheque.Action{}},
		{cheque.TipoEmitido, cheque.EstadoEntregado, []cheque.Action{comp, anu}},
		{cheque.TipoEmitido, cheque.EstadoCompensado, []cheque.Action{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tipo)+"/"+string(tt.estado), func(t *testing.T) {
			got := cheque.AllowedActions(tt.tipo, tt.estado)
			assert.Equal(t, tt.want, got.Slice())
		})
	}
}

func TestAllowedActions_VoidUnlessTerminal(t *testing.T) {
	for _, tipo := range []cheque.Tipo{cheque.TipoRecibido, cheque.TipoEmitido} {
		for _, estado := range cheque.Estados {
			got := cheque.AllowedActions(tipo, estado).Has(cheque.ActionAnular)
			assert.Equal(t, !estado.Terminal(), got, "%s/%s", tipo, estado)
		}
	}
}

func TestAllowedActions_UnknownInputs(t *testing.T) {
	assert.True(t, cheque.AllowedActions("otro", cheque.EstadoEnCartera).Has(cheque.ActionAnular))
	assert.True(t, cheque.AllowedActions(cheque.TipoRecibido, "perdido").Empty())
}

func TestTarget(t *testing.T) {
	got, ok := cheque.Target(cheque.TipoRecibido, cheque.ActionAplicarAProveedor)
	assert.True(t, ok)
	assert.Equal(t, cheque.EstadoEndosado, got)

	got, ok = cheque.Target(cheque.TipoEmitido, cheque.ActionAplicarAProveedor)
	assert.True(t, ok)
	assert.Equal(t, cheque.EstadoAplicadoACompra, got)

	got, ok = cheque.Target(cheque.TipoEmitido, cheque.ActionDepositar)
	assert.True(t, ok)
	assert.Equal(t, cheque.EstadoDepositado, got)

	_, ok = cheque.Target(cheque.TipoEmitido, "endosar")
	assert.False(t, ok)
}

func TestActionSet(t *testing.T) {
	s := cheque.NewActionSet(cheque.ActionAnular, cheque.ActionDepositar)

	assert.True(t, s.Has(cheque.ActionAnular))
	assert.False(t, s.Has(cheque.ActionEntregar))
	assert.False(t, s.Has("desconocida"))
	assert.Equal(t, []cheque.Action{cheque.ActionDepositar, cheque.ActionAnular}, s.Slice())
	assert.Equal(t, "[depositar anular]", s.String())

	capability := cheque.NewActionSet(cheque.ActionAnular)
	assert.Equal(t, []cheque.Action{cheque.ActionAnular}, s.Intersect(capability).Slice())
	assert.Len(t, cheque.AllActions.Slice(), len(cheque.Actions))
}

func TestParseAction(t *testing.T) {
	a, ok := cheque.ParseAction(" Aplicar-A-Proveedor ")
	assert.True(t, ok)
	assert.Equal(t, cheque.ActionAplicarAProveedor, a)

	_, ok = cheque.ParseAction("endosar")
	assert.False(t, ok)
}
