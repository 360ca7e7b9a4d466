package cheque_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
)

func TestService_PerformTransition(t *testing.T) {
	type args struct {
		action  cheque.Action
		cheque  *cheque.Cheque
		payload cheque.TransitionPayload
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *cheque.MockRepository)
		wantErr   error
	}

	enCartera := &cheque.Cheque{ID: 10, Tipo: cheque.TipoRecibido, Estado: cheque.EstadoEnCartera}
	acreditado := &cheque.Cheque{ID: 11, Tipo: cheque.TipoRecibido, Estado: cheque.EstadoAcreditado}

	tests := []testCase{
		{
			name: "Success",
			args: args{action: cheque.ActionDepositar, cheque: enCartera},
			setupMock: func(m *cheque.MockRepository) {
				m.EXPECT().
					Transition(gomock.Any(), int64(10), cheque.ActionDepositar, cheque.TransitionPayload{}).
					Return(nil)
			},
		},
		{
			name: "ApplyToVendorWithVendor",
			args: args{
				action:  cheque.ActionAplicarAProveedor,
				cheque:  enCartera,
				payload: cheque.TransitionPayload{ProveedorID: new(int64(4))},
			},
			setupMock: func(m *cheque.MockRepository) {
				m.EXPECT().
					Transition(gomock.Any(), int64(10), cheque.ActionAplicarAProveedor, gomock.Any()).
					Return(nil)
			},
		},
		{
			name:    "ApplyToVendorWithoutVendor",
			args:    args{action: cheque.ActionAplicarAProveedor, cheque: enCartera},
			wantErr: cheque.ErrProveedorRequired,
		},
		{
			name: "ApplyToVendorWithZeroVendor",
			args: args{
				action:  cheque.ActionAplicarAProveedor,
				cheque:  enCartera,
				payload: cheque.TransitionPayload{ProveedorID: new(int64(0))},
			},
			wantErr: cheque.ErrProveedorRequired,
		},
		{
			name:    "NotAllowed",
			args:    args{action: cheque.ActionAnular, cheque: acreditado},
			wantErr: cheque.ErrActionNotAllowed,
		},
		{
			name:    "NilCheque",
			args:    args{action: cheque.ActionAnular},
			wantErr: cheque.ErrNotFound,
		},
		{
			name: "RemoteFailure",
			args: args{action: cheque.ActionEntregar, cheque: enCartera},
			setupMock: func(m *cheque.MockRepository) {
				m.EXPECT().
					Transition(gomock.Any(), int64(10), cheque.ActionEntregar, gomock.Any()).
					Return(errors.New("500 internal"))
			},
			wantErr: errors.New("any"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// Cases without setupMock assert zero repository calls.
			repo := cheque.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := cheque.NewService(repo)
			err := svc.PerformTransition(context.Background(), tt.args.action, tt.args.cheque, tt.args.payload)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)

			if errors.Is(tt.wantErr, cheque.ErrInvalid) || errors.Is(tt.wantErr, cheque.ErrNotFound) {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestService_ValidationErrorsAreInvalid(t *testing.T) {
	for _, err := range []error{
		cheque.ErrActionNotAllowed,
		cheque.ErrProveedorRequired,
		cheque.ErrNegativeMonto,
		cheque.ErrInvalidDateRange,
	} {
		assert.ErrorIs(t, err, cheque.ErrInvalid)
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    cheque.CreateParams
		setupMock func(m *cheque.MockRepository)
		wantErr   error
	}

	valid := cheque.CreateParams{
		Tipo:   cheque.TipoRecibido,
		Numero: "00012345",
		Monto:  decimal.RequireFromString("150000.50"),
	}

	tests := []testCase{
		{
			name:   "Success",
			params: valid,
			setupMock: func(m *cheque.MockRepository) {
				m.EXPECT().
					CreateCheque(gomock.Any(), valid).
					Return(&cheque.Cheque{ID: 1, Tipo: valid.Tipo, Numero: valid.Numero, Estado: cheque.EstadoRegistrado}, nil)
			},
		},
		{
			name:    "BadTipo",
			params:  cheque.CreateParams{Tipo: "otro", Numero: "1"},
			wantErr: cheque.ErrInvalidTipo,
		},
		{
			name:    "MissingNumero",
			params:  cheque.CreateParams{Tipo: cheque.TipoEmitido, Numero: "  "},
			wantErr: cheque.ErrNumeroRequired,
		},
		{
			name:    "NegativeMonto",
			params:  cheque.CreateParams{Tipo: cheque.TipoEmitido, Numero: "1", Monto: decimal.NewFromInt(-1)},
			wantErr: cheque.ErrNegativeMonto,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := cheque.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := cheque.NewService(repo).Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(1), got.ID)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := cheque.NewMockRepository(ctrl)
	svc := cheque.NewService(repo)

	_, err := svc.Update(context.Background(), 3, cheque.UpdateParams{})
	assert.ErrorIs(t, err, cheque.ErrNoChangesRequested)

	params := cheque.UpdateParams{Observaciones: new("firmado")}
	repo.EXPECT().UpdateCheque(gomock.Any(), int64(3), params).Return(&cheque.Cheque{ID: 3, Observaciones: "firmado"}, nil)

	got, err := svc.Update(context.Background(), 3, params)
	require.NoError(t, err)
	assert.Equal(t, "firmado", got.Observaciones)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := cheque.NewMockRepository(ctrl)
	svc := cheque.NewService(repo)

	desde := civil.NewDate(2024, 6, 30)
	hasta := civil.NewDate(2024, 6, 1)

	_, err := svc.List(context.Background(), cheque.ListQuery{
		ListFilter: cheque.ListFilter{PrevistaDesde: &desde, PrevistaHasta: &hasta},
	})
	assert.ErrorIs(t, err, cheque.ErrInvalidDateRange)

	q := cheque.ListQuery{Page: 1, Limit: 12}
	repo.EXPECT().ListCheques(gomock.Any(), q).Return(&cheque.ListResult{}, nil)

	_, err = svc.List(context.Background(), q)
	assert.NoError(t, err)
}
