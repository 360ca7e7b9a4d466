package chequera_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
)

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name                  string
		desde, hasta, proximo int64
		wantErr               error
	}{
		{name: "Fresh", desde: 1, hasta: 50, proximo: 1},
		{name: "Middle", desde: 1, hasta: 50, proximo: 20},
		{name: "Exhausted", desde: 1, hasta: 50, proximo: 51},
		{name: "PastExhausted", desde: 1, hasta: 50, proximo: 52, wantErr: chequera.ErrProximoOutOfRange},
		{name: "BeforeRange", desde: 10, hasta: 50, proximo: 9, wantErr: chequera.ErrProximoOutOfRange},
		{name: "Inverted", desde: 50, hasta: 1, proximo: 50, wantErr: chequera.ErrInvalidRange},
		{name: "ZeroDesde", desde: 0, hasta: 10, proximo: 1, wantErr: chequera.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := chequera.ValidateRange(tt.desde, tt.hasta, tt.proximo)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, chequera.ErrInvalid)
		})
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    chequera.CreateParams
		setupMock func(m *chequera.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "DefaultsProximoToDesde",
			params: chequera.CreateParams{BancoCuentaID: 2, NroDesde: 100, NroHasta: 149},
			setupMock: func(m *chequera.MockRepository) {
				m.EXPECT().
					CreateChequera(gomock.Any(), chequera.CreateParams{BancoCuentaID: 2, NroDesde: 100, NroHasta: 149, ProximoNro: 100}).
					Return(&chequera.Chequera{ID: 1}, nil)
			},
		},
		{
			name:    "MissingCuenta",
			params:  chequera.CreateParams{NroDesde: 1, NroHasta: 10},
			wantErr: chequera.ErrCuentaRequired,
		},
		{
			name:    "BadRange",
			params:  chequera.CreateParams{BancoCuentaID: 2, NroDesde: 10, NroHasta: 1},
			wantErr: chequera.ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := chequera.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := chequera.NewService(repo).Create(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(1), got.ID)
		})
	}
}

func TestService_Update(t *testing.T) {
	current := &chequera.Chequera{ID: 5, NroDesde: 1, NroHasta: 50, ProximoNro: 20, Estado: chequera.EstadoActiva}

	tests := []struct {
		name    string
		params  chequera.UpdateParams
		wantErr error
	}{
		{name: "AdvanceProximo", params: chequera.UpdateParams{ProximoNro: new(int64(21))}},
		{name: "ExtendRange", params: chequera.UpdateParams{NroHasta: new(int64(100))}},
		{name: "ProximoBack", params: chequera.UpdateParams{ProximoNro: new(int64(19))}, wantErr: chequera.ErrProximoDecreasing},
		{name: "ShrinkBelowProximo", params: chequera.UpdateParams{NroHasta: new(int64(10))}, wantErr: chequera.ErrProximoOutOfRange},
		{name: "UnknownEstado", params: chequera.UpdateParams{Estado: new(chequera.Estado("rota"))}, wantErr: chequera.ErrInvalidEstado},
		{name: "Empty", params: chequera.UpdateParams{}, wantErr: chequera.ErrNoChangesRequested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := chequera.NewMockRepository(ctrl)
			if tt.wantErr == nil {
				repo.EXPECT().UpdateChequera(gomock.Any(), int64(5), tt.params).Return(current, nil)
			}

			_, err := chequera.NewService(repo).Update(context.Background(), current, tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Toggle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := chequera.NewMockRepository(ctrl)
	svc := chequera.NewService(repo)

	blocked := chequera.EstadoBloqueada
	repo.EXPECT().
		UpdateChequera(gomock.Any(), int64(1), chequera.UpdateParams{Estado: &blocked}).
		Return(&chequera.Chequera{ID: 1, Estado: blocked}, nil)

	got, err := svc.Toggle(context.Background(), &chequera.Chequera{ID: 1, Estado: chequera.EstadoActiva})
	require.NoError(t, err)
	assert.Equal(t, chequera.EstadoBloqueada, got.Estado)

	_, err = svc.Toggle(context.Background(), &chequera.Chequera{ID: 2, Estado: chequera.EstadoAgotada})
	assert.ErrorIs(t, err, chequera.ErrNotToggleable)
}

func TestService_ListCheques(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := chequera.NewMockRepository(ctrl)
	svc := chequera.NewService(repo)

	desde, hasta := civil.NewDate(2024, 3, 2), civil.NewDate(2024, 3, 1)
	_, err := svc.ListCheques(context.Background(), 1, chequera.ChequesQuery{
		ChequesFilter: chequera.ChequesFilter{Desde: &desde, Hasta: &hasta},
	})
	assert.ErrorIs(t, err, chequera.ErrInvalidChequesFilter)

	repo.EXPECT().ListCheques(gomock.Any(), int64(1), gomock.Any()).Return(nil, errors.New("down"))

	_, err = svc.ListCheques(context.Background(), 1, chequera.ChequesQuery{Page: 1})
	assert.Error(t, err)
}
