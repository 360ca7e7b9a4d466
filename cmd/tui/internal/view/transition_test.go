package view

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
)

func TestTransitioner_ApplyWithoutVendorNeverCallsRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := cheque.NewMockRepository(ctrl) // no calls expected

	tr := newTransitioner(cheque.NewService(repo), time.Second)
	c := &cheque.Cheque{ID: 4, Numero: "12", Tipo: cheque.TipoRecibido, Estado: cheque.EstadoEnCartera}

	msg := tr.perform(c, cheque.ActionAplicarAProveedor, cheque.TransitionPayload{})()

	done, ok := msg.(TransitionDoneMsg)
	require.True(t, ok)
	assert.ErrorIs(t, done.Err, cheque.ErrProveedorRequired)

	f, _ := Feedback{}.Failure(done.Err)
	assert.Equal(t, FeedbackWarning, f.kind)
}

func TestTransitioner_Perform(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := cheque.NewMockRepository(ctrl)

	c := &cheque.Cheque{ID: 8, Numero: "300", Tipo: cheque.TipoEmitido, Estado: cheque.EstadoEnCartera}
	payload := cheque.TransitionPayload{ProveedorID: new(int64(5))}

	repo.EXPECT().Transition(gomock.Any(), int64(8), cheque.ActionAplicarAProveedor, payload).Return(nil)
	repo.EXPECT().Transition(gomock.Any(), int64(8), cheque.ActionEntregar, cheque.TransitionPayload{}).Return(errors.New("409 conflict"))

	tr := newTransitioner(cheque.NewService(repo), time.Second)

	done := tr.perform(c, cheque.ActionAplicarAProveedor, payload)().(TransitionDoneMsg)
	require.NoError(t, done.Err)
	assert.Equal(t, "Cheque 300: aplicado a compra", transitionNotice(done))

	done = tr.perform(c, cheque.ActionEntregar, cheque.TransitionPayload{})().(TransitionDoneMsg)
	assert.ErrorContains(t, done.Err, "409 conflict")
}

func TestTransitioner_EscCloses(t *testing.T) {
	tr := newTransitioner(nil, time.Second)
	c := &cheque.Cheque{ID: 1, Numero: "1", Tipo: cheque.TipoRecibido, Estado: cheque.EstadoDepositado}

	tr, cmd := tr.Open(TransitionRequestedMsg{Cheque: c, Action: cheque.ActionRechazar})
	require.True(t, tr.Active())

	for _, msg := range drain(t, cmd) {
		tr, _ = tr.Update(msg)
	}

	assert.Contains(t, tr.View(), "Rechazar cheque 1")
	assert.Contains(t, tr.View(), "Depositado → Rechazado")

	tr, cmd = tr.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, tr.Active())
}

func TestTransitioner_OneCallInFlight(t *testing.T) {
	tr := newTransitioner(nil, time.Second)
	c := &cheque.Cheque{ID: 2, Numero: "40", Tipo: cheque.TipoRecibido, Estado: cheque.EstadoEnCartera}
	req := TransitionRequestedMsg{Cheque: c, Action: cheque.ActionDepositar}

	tr, _ = tr.Open(req)
	require.True(t, tr.Active())

	tr.form.form.State = huh.StateCompleted

	tr, cmd := tr.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, tr.Active())
	assert.True(t, tr.Busy())

	tr, cmd = tr.Open(req)
	assert.Nil(t, cmd)
	assert.False(t, tr.Active())

	tr = tr.Done()
	assert.False(t, tr.Busy())

	tr, cmd = tr.Open(req)
	assert.NotNil(t, cmd)
	assert.True(t, tr.Active())
}

func TestTransitionForm_Payload(t *testing.T) {
	tests := []struct {
		name    string
		form    transitionForm
		want    cheque.TransitionPayload
		wantErr bool
	}{
		{
			name: "motivo is trimmed",
			form: transitionForm{motivo: "  sin fondos "},
			want: cheque.TransitionPayload{Motivo: "sin fondos"},
		},
		{
			name: "vendor and purchase",
			form: transitionForm{proveedor: " 12 ", compra: "90"},
			want: cheque.TransitionPayload{ProveedorID: new(int64(12)), CompraID: new(int64(90))},
		},
		{
			name:    "vendor must be a number",
			form:    transitionForm{proveedor: "acme"},
			wantErr: true,
		},
		{
			name:    "bad date",
			form:    transitionForm{fecha: "31/12/2024"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.form.payload()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
