package flujo_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
	"github.com/MrJamesThe3rd/tesoreria/internal/flujo"
)

func validParams() flujo.Params {
	return flujo.Params{
		Fecha:      civil.NewDate(2024, 5, 10),
		Signo:      flujo.SignoIngreso,
		Monto:      decimal.RequireFromString("1500.50"),
		OrigenTipo: flujo.OrigenCheque,
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *flujo.Params)
		wantErr error
	}{
		{name: "Valid", mutate: func(*flujo.Params) {}},
		{name: "NoFecha", mutate: func(p *flujo.Params) { p.Fecha = civil.Date{} }, wantErr: flujo.ErrFechaRequired},
		{name: "BadSigno", mutate: func(p *flujo.Params) { p.Signo = "neutro" }, wantErr: flujo.ErrInvalidSigno},
		{name: "ZeroMonto", mutate: func(p *flujo.Params) { p.Monto = decimal.Zero }, wantErr: flujo.ErrInvalidMonto},
		{name: "NegativeMonto", mutate: func(p *flujo.Params) { p.Monto = decimal.NewFromInt(-3) }, wantErr: flujo.ErrInvalidMonto},
		{name: "BadOrigen", mutate: func(p *flujo.Params) { p.OrigenTipo = "tarjeta" }, wantErr: flujo.ErrInvalidOrigenTipo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, flujo.ErrInvalid)
		})
	}
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := flujo.NewMockRepository(ctrl)
	svc := flujo.NewService(repo)

	params := validParams()
	repo.EXPECT().CreateFlujo(gomock.Any(), params).Return(&flujo.Flujo{ID: 9, Monto: params.Monto}, nil)

	got, err := svc.Create(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)

	bad := validParams()
	bad.Monto = decimal.Zero

	_, err = svc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, flujo.ErrInvalidMonto)
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := flujo.NewMockRepository(ctrl)
	svc := flujo.NewService(repo)

	params := validParams()
	params.Signo = flujo.SignoEgreso
	repo.EXPECT().UpdateFlujo(gomock.Any(), int64(4), params).Return(&flujo.Flujo{ID: 4, Signo: flujo.SignoEgreso}, nil)

	got, err := svc.Update(context.Background(), 4, params)
	require.NoError(t, err)
	assert.Equal(t, flujo.SignoEgreso, got.Signo)
}

func TestBalance(t *testing.T) {
	flujos := []*flujo.Flujo{
		{Signo: flujo.SignoIngreso, Monto: decimal.RequireFromString("100.25")},
		{Signo: flujo.SignoEgreso, Monto: decimal.RequireFromString("40")},
		{Signo: flujo.SignoIngreso, Monto: decimal.RequireFromString("0.75")},
	}

	assert.True(t, decimal.RequireFromString("61").Equal(flujo.Balance(flujos)))
	assert.True(t, flujo.Balance(nil).IsZero())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Egreso", flujo.SignoEgreso.Label())
	assert.Equal(t, "Transferencia", flujo.OrigenTransferencia.Label())
}
