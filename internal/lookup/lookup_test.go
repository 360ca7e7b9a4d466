package lookup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
)

func TestService_Cuentas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := lookup.NewMockRepository(ctrl)
	svc := lookup.NewService(repo)

	banco := int64(3)
	repo.EXPECT().ListCuentas(gomock.Any(), &banco).Return([]*lookup.Cuenta{{ID: 1, BancoID: 3, Numero: "001-22"}}, nil)

	got, err := svc.Cuentas(context.Background(), &banco)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	repo.EXPECT().ListBancos(gomock.Any()).Return(nil, errors.New("boom"))

	_, err = svc.Bancos(context.Background())
	assert.ErrorContains(t, err, "listing bancos")
}

func TestCuenta_Label(t *testing.T) {
	tests := []struct {
		name   string
		cuenta lookup.Cuenta
		want   string
	}{
		{name: "Full", cuenta: lookup.Cuenta{BancoNombre: "Nación", Numero: "123", Descripcion: "Pagos"}, want: "Nación 123 (Pagos)"},
		{name: "OnlyNumero", cuenta: lookup.Cuenta{Numero: "987"}, want: "987"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cuenta.Label())
		})
	}
}

func TestBancoNames(t *testing.T) {
	names := lookup.BancoNames([]*lookup.Banco{{ID: 1, Nombre: "Galicia"}, {ID: 2, Nombre: "Macro"}})
	assert.Equal(t, map[int64]string{1: "Galicia", 2: "Macro"}, names)
}
